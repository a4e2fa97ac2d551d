// Package level loads declarative game level files written in HCL.
//
// A level file names the board, its tile geometry, the player's starting
// state, and rectangular runs of wall tiles:
//
//	level {
//	  name       = "walled room"
//	  tile_size  = [16, 16]
//	  board_size = [160, 144]
//	  background = "#4d4d4d"
//	  scale      = 4
//	}
//
//	player {
//	  start = [4, 4]
//	  speed = 70
//	}
//
//	wall "north" {
//	  at   = [0, 0]
//	  span = [9, 0]
//	}
//
// Wall coordinates are in tiles, anchored at the top-left; a span counts
// extra tiles to the right and down, so a zero span is a single tile.
package level

import (
	"fmt"
	"image/color"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/bitspittle/game2d"
	"github.com/bitspittle/game2d/grid"
)

// Defaults applied when a level file omits the corresponding settings.
// They match the classic Game Boy board: 16px tiles on a 160x144 board,
// drawn 4x, with a player that crosses the screen in a bit over two
// seconds.
const (
	DefaultTileSize    = 16
	DefaultScale       = 4
	DefaultPlayerSpeed = 70
)

// DefaultBackground is the board color used when a level file does not
// set one.
var DefaultBackground = color.RGBA{R: 0x4d, G: 0x4d, B: 0x4d, A: 0xff}

// Wall is a rectangular run of wall tiles.
type Wall struct {
	Name   string
	Region grid.Region
}

// Player is the player's starting state.
type Player struct {
	Start grid.Coord // tile the player starts on
	Speed float64    // movement speed in world units per second
}

// Level is a fully decoded and validated level.
type Level struct {
	Name       string
	TileSize   game2d.Vec2
	BoardSize  game2d.Vec2
	Background color.RGBA
	Scale      int
	Player     Player
	Walls      []Wall
}

// Blocks of a level file. The [x, y] pairs decode as cty tuples and are
// unpacked by pairValue.
type fileRoot struct {
	Level  *levelBlock  `hcl:"level,block"`
	Player *playerBlock `hcl:"player,block"`
	Walls  []wallBlock  `hcl:"wall,block"`
}

type levelBlock struct {
	Name       string    `hcl:"name,optional"`
	TileSize   cty.Value `hcl:"tile_size,optional"`
	BoardSize  cty.Value `hcl:"board_size"`
	Background string    `hcl:"background,optional"`
	Scale      int       `hcl:"scale,optional"`
}

type playerBlock struct {
	Start cty.Value `hcl:"start"`
	Speed float64   `hcl:"speed,optional"`
}

type wallBlock struct {
	Name string    `hcl:"name,label"`
	At   cty.Value `hcl:"at"`
	Span cty.Value `hcl:"span,optional"`
}

// Load reads and decodes a level file.
func Load(path string) (*Level, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("level: parse %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("level: decode %s: %w", path, diags)
	}

	lvl, err := build(&root)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", path, err)
	}
	game2d.Logger().Info("loaded level",
		"path", path, "name", lvl.Name, "walls", len(lvl.Walls))
	return lvl, nil
}

// Parse decodes level source held in memory. The filename only labels
// diagnostics.
func Parse(src []byte, filename string) (*Level, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("level: parse %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("level: decode %s: %w", filename, diags)
	}

	lvl, err := build(&root)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", filename, err)
	}
	return lvl, nil
}

// build assembles and validates a Level from decoded blocks.
func build(root *fileRoot) (*Level, error) {
	if root.Level == nil {
		return nil, fmt.Errorf("missing required level block")
	}

	lvl := &Level{
		Name:       root.Level.Name,
		TileSize:   game2d.V2(DefaultTileSize, DefaultTileSize),
		Background: DefaultBackground,
		Scale:      DefaultScale,
	}

	if root.Level.TileSize != cty.NilVal {
		w, h, err := pairValue(root.Level.TileSize)
		if err != nil {
			return nil, fmt.Errorf("tile_size: %w", err)
		}
		lvl.TileSize = game2d.V2(float64(w), float64(h))
	}
	if lvl.TileSize.X <= 0 || lvl.TileSize.Y <= 0 {
		return nil, fmt.Errorf("tile_size %v must be positive", lvl.TileSize)
	}

	bw, bh, err := pairValue(root.Level.BoardSize)
	if err != nil {
		return nil, fmt.Errorf("board_size: %w", err)
	}
	lvl.BoardSize = game2d.V2(float64(bw), float64(bh))
	if bw <= 0 || bh <= 0 {
		return nil, fmt.Errorf("board_size %v must be positive", lvl.BoardSize)
	}
	if bw%int(lvl.TileSize.X) != 0 || bh%int(lvl.TileSize.Y) != 0 {
		return nil, fmt.Errorf("board_size %v is not a whole number of %v tiles", lvl.BoardSize, lvl.TileSize)
	}

	if root.Level.Background != "" {
		bg, err := parseHexColor(root.Level.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		lvl.Background = bg
	}
	if root.Level.Scale > 0 {
		lvl.Scale = root.Level.Scale
	}

	tilesX, tilesY := lvl.Tiles()

	lvl.Player = Player{
		Start: grid.Coord{X: tilesX / 2, Y: tilesY / 2},
		Speed: DefaultPlayerSpeed,
	}
	if root.Player != nil {
		x, y, err := pairValue(root.Player.Start)
		if err != nil {
			return nil, fmt.Errorf("player start: %w", err)
		}
		lvl.Player.Start = grid.Coord{X: x, Y: y}
		if root.Player.Speed != 0 {
			if root.Player.Speed < 0 {
				return nil, fmt.Errorf("player speed %v must be positive", root.Player.Speed)
			}
			lvl.Player.Speed = root.Player.Speed
		}
	}
	if !lvl.board().Contains(lvl.Player.Start) {
		return nil, fmt.Errorf("player start %v is outside the %dx%d board", lvl.Player.Start, tilesX, tilesY)
	}

	for _, w := range root.Walls {
		x, y, err := pairValue(w.At)
		if err != nil {
			return nil, fmt.Errorf("wall %q at: %w", w.Name, err)
		}
		spanW, spanH := 0, 0
		if w.Span != cty.NilVal {
			spanW, spanH, err = pairValue(w.Span)
			if err != nil {
				return nil, fmt.Errorf("wall %q span: %w", w.Name, err)
			}
			if spanW < 0 || spanH < 0 {
				return nil, fmt.Errorf("wall %q span [%d, %d] cannot be negative", w.Name, spanW, spanH)
			}
		}
		region := grid.NewRegion(grid.Coord{X: x, Y: y}, grid.Span{W: spanW, H: spanH})
		if !lvl.board().Contains(region.Coord) || !lvl.board().Contains(region.Coord.Add(region.Span)) {
			return nil, fmt.Errorf("wall %q %v extends outside the %dx%d board", w.Name, region, tilesX, tilesY)
		}
		lvl.Walls = append(lvl.Walls, Wall{Name: w.Name, Region: region})
	}

	return lvl, nil
}

// pairValue unpacks an HCL [x, y] pair.
func pairValue(v cty.Value) (int, int, error) {
	if v.IsNull() || !v.CanIterateElements() || v.LengthInt() != 2 {
		return 0, 0, fmt.Errorf("expected a pair like [x, y], got %s", v.GoString())
	}

	var pair [2]int
	i := 0
	for it := v.ElementIterator(); it.Next(); i++ {
		_, elem := it.Element()
		if elem.Type() != cty.Number {
			return 0, 0, fmt.Errorf("expected a number, got %s", elem.GoString())
		}
		f, _ := elem.AsBigFloat().Float64()
		n := int(f)
		if float64(n) != f {
			return 0, 0, fmt.Errorf("expected a whole number, got %v", f)
		}
		pair[i] = n
	}
	return pair[0], pair[1], nil
}

// parseHexColor parses "#rgb" and "#rrggbb" colors.
func parseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("bad length %d", len(s))
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q is not a #rrggbb color: %w", s, err)
	}
	return c, nil
}

// Tiles returns the board dimensions in tiles.
func (l *Level) Tiles() (tilesX, tilesY int) {
	return int(l.BoardSize.X / l.TileSize.X), int(l.BoardSize.Y / l.TileSize.Y)
}

// board returns the region of valid tile coordinates.
func (l *Level) board() grid.Region {
	tilesX, tilesY := l.Tiles()
	return grid.NewRegion(grid.Coord{}, grid.Span{W: tilesX - 1, H: tilesY - 1})
}

// TileRect returns the pixel-space rectangle of a single tile.
func (l *Level) TileRect(c grid.Coord) game2d.Rect {
	return game2d.RectAt(
		game2d.Pt(float64(c.X)*l.TileSize.X, float64(c.Y)*l.TileSize.Y),
		l.TileSize,
	)
}

// WallRects expands the level's walls to pixel-space rectangles, one per
// wall block.
func (l *Level) WallRects() []game2d.Rect {
	rects := make([]game2d.Rect, 0, len(l.Walls))
	for _, w := range l.Walls {
		pos := game2d.Pt(
			float64(w.Region.Coord.X)*l.TileSize.X,
			float64(w.Region.Coord.Y)*l.TileSize.Y,
		)
		size := game2d.V2(
			float64(w.Region.Span.W+1)*l.TileSize.X,
			float64(w.Region.Span.H+1)*l.TileSize.Y,
		)
		rects = append(rects, game2d.RectAt(pos, size))
	}
	return rects
}

// PlayerRect returns the pixel-space rectangle the player starts on.
func (l *Level) PlayerRect() game2d.Rect {
	return l.TileRect(l.Player.Start)
}

// WalledRoom generates a level with walls around the border of the board,
// like the classic one-room demo. Panics unless both dimensions are at
// least 3 tiles, the smallest board with any interior.
func WalledRoom(tilesX, tilesY int) *Level {
	if tilesX < 3 || tilesY < 3 {
		panic("level: a walled room needs at least 3x3 tiles")
	}
	lvl := &Level{
		Name:       "walled room",
		TileSize:   game2d.V2(DefaultTileSize, DefaultTileSize),
		BoardSize:  game2d.V2(float64(tilesX*DefaultTileSize), float64(tilesY*DefaultTileSize)),
		Background: DefaultBackground,
		Scale:      DefaultScale,
		Player: Player{
			Start: grid.Coord{X: tilesX / 2, Y: tilesY / 2},
			Speed: DefaultPlayerSpeed,
		},
		Walls: []Wall{
			{Name: "north", Region: grid.NewRegion(grid.Coord{X: 0, Y: 0}, grid.Span{W: tilesX - 1})},
			{Name: "west", Region: grid.NewRegion(grid.Coord{X: 0, Y: 1}, grid.Span{H: tilesY - 3})},
			{Name: "east", Region: grid.NewRegion(grid.Coord{X: tilesX - 1, Y: 1}, grid.Span{H: tilesY - 3})},
			{Name: "south", Region: grid.NewRegion(grid.Coord{X: 0, Y: tilesY - 1}, grid.Span{W: tilesX - 1})},
		},
	}
	return lvl
}
