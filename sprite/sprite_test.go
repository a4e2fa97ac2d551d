package sprite

import (
	"image"
	"testing"

	"github.com/gogpu/gg"

	"github.com/bitspittle/game2d"
)

// testImage returns a blank RGBA image buffer of the given size.
func testImage(t *testing.T, w, h int) *gg.ImageBuf {
	t.Helper()
	img, err := gg.NewImageBuf(w, h, gg.FormatRGBA8)
	if err != nil {
		t.Fatalf("NewImageBuf: %v", err)
	}
	return img
}

func TestNewSheet(t *testing.T) {
	tests := []struct {
		name         string
		imgW, imgH   int
		tileW, tileH int
		wantErr      bool
		cols, rows   int
	}{
		{"single tile", 16, 16, 16, 16, false, 1, 1},
		{"grid", 64, 32, 16, 16, false, 4, 2},
		{"non-square tiles", 48, 48, 16, 24, false, 3, 2},
		{"zero tile size", 64, 32, 0, 16, true, 0, 0},
		{"negative tile size", 64, 32, 16, -1, true, 0, 0},
		{"width does not divide", 50, 32, 16, 16, true, 0, 0},
		{"height does not divide", 64, 30, 16, 16, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := NewSheet(testImage(t, tt.imgW, tt.imgH), tt.tileW, tt.tileH)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSheet: %v", err)
			}
			cols, rows := sheet.Tiles()
			if cols != tt.cols || rows != tt.rows {
				t.Errorf("Tiles() = %d, %d, want %d, %d", cols, rows, tt.cols, tt.rows)
			}
			want := game2d.V2(float64(tt.tileW), float64(tt.tileH))
			if sheet.TileSize() != want {
				t.Errorf("TileSize() = %v, want %v", sheet.TileSize(), want)
			}
		})
	}
}

func TestTileRect(t *testing.T) {
	sheet, err := NewSheet(testImage(t, 64, 32), 16, 16)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}

	tests := []struct {
		name     string
		col, row int
		want     image.Rectangle
	}{
		{"top-left", 0, 0, image.Rect(0, 0, 16, 16)},
		{"top-right", 3, 0, image.Rect(48, 0, 64, 16)},
		{"bottom-left", 0, 1, image.Rect(0, 16, 16, 32)},
		{"interior", 2, 1, image.Rect(32, 16, 48, 32)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sheet.TileRect(tt.col, tt.row); got != tt.want {
				t.Errorf("TileRect(%d, %d) = %v, want %v", tt.col, tt.row, got, tt.want)
			}
		})
	}
}

func TestTileRectOutOfRangePanics(t *testing.T) {
	sheet, err := NewSheet(testImage(t, 64, 32), 16, 16)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("TileRect out of range should panic")
		}
	}()
	sheet.TileRect(4, 0)
}

func TestNewSprite(t *testing.T) {
	sheet, err := NewSheet(testImage(t, 64, 32), 16, 16)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}

	s := New(sheet)
	col, row := s.Tile()
	if col != 0 || row != 0 {
		t.Errorf("default tile = (%d, %d), want (0, 0)", col, row)
	}
	if !s.Pos.IsZero() {
		t.Errorf("default pos = %v, want origin", s.Pos)
	}
	if s.Size() != game2d.V2(16, 16) {
		t.Errorf("Size() = %v, want (16, 16)", s.Size())
	}

	s = New(sheet, WithTile(2, 1), WithPos(game2d.Pt(30, 40)))
	col, row = s.Tile()
	if col != 2 || row != 1 {
		t.Errorf("tile = (%d, %d), want (2, 1)", col, row)
	}
	if s.Pos != game2d.Pt(30, 40) {
		t.Errorf("pos = %v, want (30, 40)", s.Pos)
	}
}

func TestSetTile(t *testing.T) {
	sheet, err := NewSheet(testImage(t, 64, 32), 16, 16)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	s := New(sheet)

	s.SetTile(3, 1)
	col, row := s.Tile()
	if col != 3 || row != 1 {
		t.Errorf("tile = (%d, %d), want (3, 1)", col, row)
	}

	defer func() {
		if recover() == nil {
			t.Error("SetTile out of range should panic")
		}
	}()
	s.SetTile(0, 2)
}

func TestDraw(t *testing.T) {
	// Fill one tile of the sheet with solid red, then draw that tile and
	// make sure the color lands at the sprite's position.
	img := testImage(t, 32, 16)
	for y := 0; y < 16; y++ {
		for x := 16; x < 32; x++ {
			img.SetRGBA(x, y, 255, 0, 0, 255)
		}
	}
	sheet, err := NewSheet(img, 16, 16)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}

	dc := gg.NewContext(64, 64)
	dc.ClearWithColor(gg.RGBA{R: 0, G: 0, B: 0, A: 1})

	s := New(sheet, WithTile(1, 0), WithPos(game2d.Pt(20, 20)))
	s.Draw(dc)

	bounds := dc.Image().Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 64 {
		t.Fatalf("context image bounds = %v", bounds)
	}
	r, _, _, _ := dc.Image().At(28, 28).RGBA()
	if r == 0 {
		t.Error("tile pixels missing at sprite position")
	}
	r, _, _, _ = dc.Image().At(5, 5).RGBA()
	if r != 0 {
		t.Error("tile pixels drawn outside sprite position")
	}
}
