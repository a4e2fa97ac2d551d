// Package sprite draws tiles from a sprite sheet onto a gg drawing
// context.
//
// A [Sheet] is a single image divided into uniformly sized tiles; a
// [Sprite] picks one of those tiles and a position to draw it at. Sheets
// are cheap to share between many sprites.
package sprite

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/bitspittle/game2d"
)

// Sheet is an image divided into uniformly sized tiles, addressed by
// (column, row) starting at the top-left.
type Sheet struct {
	img      *gg.ImageBuf
	tileSize game2d.Vec2
	cols     int
	rows     int
}

// NewSheet wraps an already-loaded image. The image dimensions must divide
// evenly into positive tileW x tileH tiles.
func NewSheet(img *gg.ImageBuf, tileW, tileH int) (*Sheet, error) {
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("sprite: tile size %dx%d must be positive", tileW, tileH)
	}
	w, h := img.Bounds()
	if w%tileW != 0 || h%tileH != 0 {
		return nil, fmt.Errorf("sprite: image %dx%d does not divide into %dx%d tiles", w, h, tileW, tileH)
	}
	return &Sheet{
		img:      img,
		tileSize: game2d.V2(float64(tileW), float64(tileH)),
		cols:     w / tileW,
		rows:     h / tileH,
	}, nil
}

// LoadSheet loads an image file (PNG, JPEG, or WebP) and divides it into
// tiles.
func LoadSheet(path string, tileW, tileH int) (*Sheet, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("sprite: load sheet: %w", err)
	}
	sheet, err := NewSheet(img, tileW, tileH)
	if err != nil {
		return nil, err
	}
	game2d.Logger().Info("loaded sprite sheet",
		"path", path, "cols", sheet.cols, "rows", sheet.rows)
	return sheet, nil
}

// TileSize returns the size of a single tile.
func (s *Sheet) TileSize() game2d.Vec2 {
	return s.tileSize
}

// Tiles returns the sheet's tile grid dimensions as columns, rows.
func (s *Sheet) Tiles() (cols, rows int) {
	return s.cols, s.rows
}

// TileRect returns the pixel rectangle of the tile at (col, row) within
// the sheet image. Panics if the tile is out of range.
func (s *Sheet) TileRect(col, row int) image.Rectangle {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		panic(fmt.Sprintf("sprite: tile (%d, %d) out of range for %dx%d sheet", col, row, s.cols, s.rows))
	}
	tw := int(s.tileSize.X)
	th := int(s.tileSize.Y)
	return image.Rect(col*tw, row*th, (col+1)*tw, (row+1)*th)
}

// Sprite is one tile of a [Sheet] positioned somewhere on screen.
type Sprite struct {
	sheet    *Sheet
	col, row int

	// Pos is the top-left corner the sprite draws at.
	Pos game2d.Point
}

// Option configures a Sprite during creation.
type Option func(*Sprite)

// WithTile selects the sheet tile the sprite starts on. The default is
// the top-left tile.
func WithTile(col, row int) Option {
	return func(s *Sprite) {
		s.col, s.row = col, row
	}
}

// WithPos sets the sprite's starting position. The default is the origin.
func WithPos(pos game2d.Point) Option {
	return func(s *Sprite) {
		s.Pos = pos
	}
}

// New creates a sprite over the given sheet.
func New(sheet *Sheet, opts ...Option) *Sprite {
	s := &Sprite{sheet: sheet}
	for _, opt := range opts {
		opt(s)
	}
	s.sheet.TileRect(s.col, s.row) // validate tile up front
	return s
}

// Size returns the sprite's on-screen size, which is one sheet tile.
func (s *Sprite) Size() game2d.Vec2 {
	return s.sheet.TileSize()
}

// Tile returns the sheet tile the sprite currently shows.
func (s *Sprite) Tile() (col, row int) {
	return s.col, s.row
}

// SetTile changes which sheet tile the sprite shows, e.g. to step an
// animation. Panics if the tile is out of range.
func (s *Sprite) SetTile(col, row int) {
	s.sheet.TileRect(col, row)
	s.col, s.row = col, row
}

// Draw renders the sprite's current tile at its position. Tiles are
// blitted at native size; scale the context's transform to magnify.
func (s *Sprite) Draw(dc *gg.Context) {
	src := s.sheet.TileRect(s.col, s.row)
	dc.DrawImageEx(s.sheet.img, gg.DrawImageOptions{
		X:             s.Pos.X,
		Y:             s.Pos.Y,
		DstWidth:      s.sheet.tileSize.X,
		DstHeight:     s.sheet.tileSize.Y,
		SrcRect:       &src,
		Interpolation: gg.InterpNearest,
		Opacity:       1.0,
		BlendMode:     gg.BlendNormal,
	})
}
