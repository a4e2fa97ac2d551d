// Command zeldalike renders a top-down demo room to a sequence of PNG
// frames. A player body bounces diagonally around a walled room, sliding
// and rebounding off the walls, and each simulation step is rendered to
// out/frame_NNNN.png at the level's display scale.
//
// With no --level flag a default 10x9 walled room is generated. Passing
// --sheet draws walls and the player from a 16x16 sprite sheet instead of
// flat rectangles.
package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/gg"

	"github.com/bitspittle/game2d"
	"github.com/bitspittle/game2d/collide"
	"github.com/bitspittle/game2d/level"
	"github.com/bitspittle/game2d/sprite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zeldalike:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		levelPath string
		sheetPath string
		outDir    string
		frames    int
		scale     int
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "zeldalike",
		Short: "Render a bouncing-player demo room to PNG frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				game2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}

			lvl, err := loadLevel(levelPath)
			if err != nil {
				return err
			}
			if scale > 0 {
				lvl.Scale = scale
			}

			var sheet *sprite.Sheet
			if sheetPath != "" {
				sheet, err = sprite.LoadSheet(sheetPath, int(lvl.TileSize.X), int(lvl.TileSize.Y))
				if err != nil {
					return err
				}
			}

			return run(lvl, sheet, outDir, frames)
		},
	}

	cmd.Flags().StringVar(&levelPath, "level", "", "level file to load (default: a generated walled room)")
	cmd.Flags().StringVar(&sheetPath, "sheet", "", "sprite sheet image; tiles must match the level's tile size")
	cmd.Flags().StringVar(&outDir, "out", "frames", "directory to write PNG frames to")
	cmd.Flags().IntVar(&frames, "frames", 300, "number of frames to render")
	cmd.Flags().IntVar(&scale, "scale", 0, "integer upscale factor (default: the level's)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func loadLevel(path string) (*level.Level, error) {
	if path == "" {
		return level.WalledRoom(10, 9), nil
	}
	return level.Load(path)
}

// run simulates the level and writes one PNG per frame. Frames are
// simulated and rasterized in order; only PNG encoding is fanned out.
func run(lvl *level.Level, sheet *sprite.Sheet, outDir string, frames int) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	world := collide.NewWorld(collide.WithCellSize(lvl.TileSize.X * 4))
	for _, r := range lvl.WallRects() {
		world.NewBody(r.Pos, r.Size)
	}

	start := lvl.PlayerRect()
	vel := game2d.V2(1, -1).Normalize().Mul(lvl.Player.Speed)
	player := world.NewMovingBody(start.Pos, start.Size, vel)

	game2d.Logger().Info("simulating level",
		"name", lvl.Name, "bodies", world.Len(), "frames", frames)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < frames; i++ {
		advance(world, player)

		frame := render(lvl, sheet, world, player)
		path := filepath.Join(outDir, fmt.Sprintf("frame_%04d.png", i))
		g.Go(func() error {
			return writePNG(path, frame)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("write frames: %w", err)
	}

	game2d.Logger().Info("wrote frames", "dir", outDir, "count", frames)
	return nil
}

// advance steps the world once and rebounds the player off any wall that
// stopped it. A wall strike clamps movement on that axis, so an axis that
// did not move means its velocity should flip.
func advance(world *collide.World, player collide.BodyHandle) {
	body, ok := world.Body(player)
	if !ok {
		return
	}
	prev := body.Pos

	world.ElapseTime(collide.Step)

	if body.Vel.X != 0 && body.Pos.X == prev.X {
		body.Vel.X = -body.Vel.X
	}
	if body.Vel.Y != 0 && body.Pos.Y == prev.Y {
		body.Vel.Y = -body.Vel.Y
	}
}

// render rasterizes the current world state and upscales it to the level's
// display scale.
func render(lvl *level.Level, sheet *sprite.Sheet, world *collide.World, player collide.BodyHandle) image.Image {
	dc := gg.NewContext(int(lvl.BoardSize.X), int(lvl.BoardSize.Y))
	dc.ClearWithColor(gg.RGBA{
		R: float64(lvl.Background.R) / 255,
		G: float64(lvl.Background.G) / 255,
		B: float64(lvl.Background.B) / 255,
		A: 1,
	})

	if sheet != nil {
		drawTiled(dc, lvl, sheet, world, player)
	} else {
		drawFlat(dc, lvl, world, player)
	}

	if lvl.Scale <= 1 {
		return dc.Image()
	}
	return upscale(dc.Image(), lvl.Scale)
}

// drawFlat renders walls and the player as solid rectangles.
func drawFlat(dc *gg.Context, lvl *level.Level, world *collide.World, player collide.BodyHandle) {
	dc.SetColor(gg.RGB(0.55, 0.27, 0.07))
	for _, r := range lvl.WallRects() {
		dc.DrawRectangle(r.Pos.X, r.Pos.Y, r.Size.X, r.Size.Y)
		_ = dc.Fill()
	}

	if body, ok := world.Body(player); ok {
		dc.SetColor(gg.RGB(0.2, 0.8, 0.3))
		dc.DrawRectangle(body.Pos.X, body.Pos.Y, body.Size.X, body.Size.Y)
		_ = dc.Fill()
	}
}

// drawTiled renders walls and the player from a sprite sheet. The first
// sheet tile is the wall, the second (when present) the player.
func drawTiled(dc *gg.Context, lvl *level.Level, sheet *sprite.Sheet, world *collide.World, player collide.BodyHandle) {
	wall := sprite.New(sheet)
	for _, w := range lvl.Walls {
		for c := range w.Region.Coords() {
			wall.Pos = lvl.TileRect(c).Pos
			wall.Draw(dc)
		}
	}

	body, ok := world.Body(player)
	if !ok {
		return
	}
	opts := []sprite.Option{sprite.WithPos(body.Pos)}
	if cols, _ := sheet.Tiles(); cols > 1 {
		opts = append(opts, sprite.WithTile(1, 0))
	}
	sprite.New(sheet, opts...).Draw(dc)
}

// upscale magnifies an image by an integer factor without smoothing, which
// keeps tile edges crisp.
func upscale(src image.Image, factor int) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
