// Package collide provides a collision world that owns bodies and manages
// their interactions.
//
// A [World] advances on a fixed timestep: moving bodies resolve their
// movement against static bodies (those with zero velocity) and slide along
// the surfaces they strike. Static bodies are indexed in a spatial grid so
// each moving body only tests the statics near its path.
package collide

import (
	"iter"
	"math"
	"time"

	"github.com/bitspittle/game2d"
	"github.com/bitspittle/game2d/grid"
	"github.com/bitspittle/game2d/pool"
)

// Step is the world's fixed timestep, roughly 60 updates per second.
// [World.ElapseTime] accumulates smaller durations until a full step is
// available.
const Step = 16666 * time.Microsecond

// DefaultCellSize is the size in world units of the squares the spatial
// index partitions space into.
const DefaultCellSize = 64.0

// Body is an object in space which can interact with other objects. A Body
// should act as the source of truth for a game object's position in the
// world, as it will respect the space taken up by other bodies.
//
// A Body with zero velocity is static: it never moves, and moving bodies
// collide against it. Moving bodies pass through each other.
type Body struct {
	Pos  game2d.Point
	Size game2d.Vec2
	Vel  game2d.Vec2
}

// Bounds returns the body's current bounding rectangle.
func (b *Body) Bounds() game2d.Rect {
	return game2d.RectAt(b.Pos, b.Size)
}

// BodyHandle is issued by a [World] when a body is created, and used to
// safely query or remove the body later.
type BodyHandle struct {
	h pool.Handle // delegates all the work
}

// World owns a collection of bodies. After creating one and adding bodies
// to it, call [World.ElapseTime] to advance its state frame by frame.
//
// Bodies may be added, removed, and mutated through [World.Body] between
// ElapseTime calls.
type World struct {
	acc      time.Duration
	cellSize float64
	bodies   *pool.Pool[Body]
	statics  *grid.Grid[pool.Handle]
}

// Option configures a World during creation.
type Option func(*World)

// WithCellSize sets the cell size of the world's spatial index. Cells
// should be on the order of the largest common body size; the value only
// affects performance, never collision results. Non-positive sizes are
// ignored.
func WithCellSize(size float64) Option {
	return func(w *World) {
		if size > 0 {
			w.cellSize = size
		}
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...Option) *World {
	w := &World{
		cellSize: DefaultCellSize,
		bodies:   pool.New[Body](),
		statics:  grid.New[pool.Handle](),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewBody adds a static body and returns its handle.
func (w *World) NewBody(pos game2d.Point, size game2d.Vec2) BodyHandle {
	return w.NewMovingBody(pos, size, game2d.Vec2{})
}

// NewMovingBody adds a body with non-zero velocity and returns its handle.
func (w *World) NewMovingBody(pos game2d.Point, size game2d.Vec2, vel game2d.Vec2) BodyHandle {
	return BodyHandle{h: w.bodies.Push(Body{Pos: pos, Size: size, Vel: vel})}
}

// RemoveBody deletes a body. Removing one that is already gone is harmless.
func (w *World) RemoveBody(h BodyHandle) {
	w.bodies.Remove(h.h)
}

// Body returns the body for a handle, or false if it was removed. The
// returned pointer may be used to mutate the body's position and velocity
// between [World.ElapseTime] calls.
func (w *World) Body(h BodyHandle) (*Body, bool) {
	return w.bodies.Get(h.h)
}

// Len returns the number of bodies in the world.
func (w *World) Len() int {
	return w.bodies.Len()
}

// Bodies iterates all bodies in the world, in no particular order.
func (w *World) Bodies() iter.Seq[*Body] {
	return func(yield func(*Body) bool) {
		for _, b := range w.bodies.All() {
			if !yield(b) {
				return
			}
		}
	}
}

// region maps a rectangle to the grid cells it covers.
func (w *World) region(r game2d.Rect) grid.Region {
	tl := grid.Coord{
		X: int(math.Floor(r.Left() / w.cellSize)),
		Y: int(math.Floor(r.Top() / w.cellSize)),
	}
	br := grid.Coord{
		X: int(math.Floor(r.Right() / w.cellSize)),
		Y: int(math.Floor(r.Bottom() / w.cellSize)),
	}
	return grid.RegionBetween(tl, br)
}

// reindex rebuilds the static-body index from current positions. Callers
// may mutate bodies directly between public entry points, so cached cell
// assignments cannot be trusted across them.
func (w *World) reindex() {
	w.statics = grid.New[pool.Handle]()
	for h, b := range w.bodies.All() {
		if b.Vel.IsZero() {
			w.statics.Insert(h, w.region(b.Bounds()))
		}
	}
	game2d.Logger().Debug("rebuilt static index",
		"statics", w.statics.Len(), "bodies", w.bodies.Len())
}

// Touching returns the static bodies touching the given body, including
// those that only share an edge or corner. Moving bodies are not
// considered: for now, bodies only collide with non-moving ones.
func (w *World) Touching(h BodyHandle) []*Body {
	body, ok := w.bodies.Get(h.h)
	if !ok {
		return nil
	}

	w.reindex()
	bounds := body.Bounds()

	var touching []*Body
	for _, sh := range w.statics.Query(w.region(bounds)) {
		if sh == h.h {
			continue
		}
		other, ok := w.bodies.Get(sh)
		if !ok {
			continue
		}
		if bounds.Touches(other.Bounds()) {
			touching = append(touching, other)
		}
	}
	return touching
}

// ElapseTime advances the world. Time is accumulated and consumed in fixed
// [Step] increments; a duration shorter than one step only accumulates.
//
// Per step, each moving body's movement is resolved against static bodies
// in two passes, x then y. Splitting the axes keeps bodies from getting
// stuck on corners when moving diagonally, and clamping against each
// struck side lets them slide along walls.
func (w *World) ElapseTime(d time.Duration) {
	w.acc += d
	if w.acc < Step {
		return
	}

	// Bodies cannot change mid-call, so partition them once.
	w.reindex()
	var moving []pool.Handle
	for h, b := range w.bodies.All() {
		if !b.Vel.IsZero() {
			moving = append(moving, h)
		}
	}

	stepSecs := Step.Seconds()
	for w.acc >= Step {
		w.acc -= Step
		for _, h := range moving {
			body, ok := w.bodies.Get(h)
			if !ok {
				continue
			}
			w.stepBody(body, body.Vel.Mul(stepSecs))
		}
	}
}

// stepBody moves one body by delta, clamping against any static body in
// the way.
func (w *World) stepBody(body *Body, delta game2d.Vec2) {
	t0 := body.Bounds()
	t1 := t0

	if delta.X != 0 {
		t1.Pos.X = t0.Pos.X + delta.X
		for _, sh := range w.statics.Query(w.region(t0.Union(t1))) {
			static, ok := w.bodies.Get(sh)
			if !ok {
				continue
			}
			cur := static.Bounds()
			if !cur.Overlaps(t1) {
				continue
			}
			switch cur.CollidedSide(t0, t1) {
			case game2d.SideLeft:
				t1.Pos.X = cur.Left() - t1.Size.X
			case game2d.SideRight:
				t1.Pos.X = cur.Right()
			}
		}
	}

	if delta.Y != 0 {
		t1.Pos.Y = t0.Pos.Y + delta.Y
		for _, sh := range w.statics.Query(w.region(t0.Union(t1))) {
			static, ok := w.bodies.Get(sh)
			if !ok {
				continue
			}
			cur := static.Bounds()
			if !cur.Overlaps(t1) {
				continue
			}
			switch cur.CollidedSide(t0, t1) {
			case game2d.SideTop:
				t1.Pos.Y = cur.Top() - t1.Size.Y
			case game2d.SideBottom:
				t1.Pos.Y = cur.Bottom()
			}
		}
	}

	body.Pos = t1.Pos
}
