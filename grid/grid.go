// Package grid provides a spatial hash grid that associates items with
// regions of space so they can be queried back by location.
//
// This is useful, for example, to a system responsible for managing
// collisions: it can partition the world into squares, register bodies
// against the small set of squares they cover, and vastly reduce the number
// of candidates each collision pass has to consider.
package grid

import "iter"

// Coord addresses a single square in a grid.
type Coord struct {
	X, Y int
}

// Span is the extent of a [Region] beyond its anchor square, in extra
// squares to the right and down. Both components must be non-negative.
type Span struct {
	W, H int
}

// Region is a rectangular section of the grid: an anchor square plus a
// span. A zero span denotes the anchor square alone, so a region can never
// be smaller than a single square: {Coord{x, y}, Span{2, 4}} stretches from
// (x, y) through (x+2, y+4) inclusive.
type Region struct {
	Coord Coord
	Span  Span
}

// Square returns the single-square region at (x, y).
func Square(x, y int) Region {
	return Region{Coord: Coord{X: x, Y: y}}
}

// NewRegion returns the region anchored at coord and extending by span.
// Panics if the span is negative in either dimension.
func NewRegion(coord Coord, span Span) Region {
	if span.W < 0 || span.H < 0 {
		panic("grid: region span cannot be negative")
	}
	return Region{Coord: coord, Span: span}
}

// RegionBetween returns the region covering two corner squares, given in
// any order.
func RegionBetween(a, b Coord) Region {
	tl := Coord{X: min(a.X, b.X), Y: min(a.Y, b.Y)}
	br := Coord{X: max(a.X, b.X), Y: max(a.Y, b.Y)}
	return Region{
		Coord: tl,
		Span:  Span{W: br.X - tl.X, H: br.Y - tl.Y},
	}
}

// Bounding returns the smallest region covering both r1 and r2.
func Bounding(r1, r2 Region) Region {
	if r1 == r2 {
		return r1
	}
	br1 := r1.Coord.Add(r1.Span)
	br2 := r2.Coord.Add(r2.Span)

	tl := Coord{X: min(r1.Coord.X, r2.Coord.X), Y: min(r1.Coord.Y, r2.Coord.Y)}
	br := Coord{X: max(br1.X, br2.X), Y: max(br1.Y, br2.Y)}
	return RegionBetween(tl, br)
}

// Add returns the coordinate offset by a span.
func (c Coord) Add(s Span) Coord {
	return Coord{X: c.X + s.W, Y: c.Y + s.H}
}

// Coords iterates every square covered by the region, row by row.
func (r Region) Coords() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for dy := 0; dy <= r.Span.H; dy++ {
			for dx := 0; dx <= r.Span.W; dx++ {
				if !yield(Coord{X: r.Coord.X + dx, Y: r.Coord.Y + dy}) {
					return
				}
			}
		}
	}
}

// Contains reports whether the region covers the given square.
func (r Region) Contains(c Coord) bool {
	return c.X >= r.Coord.X && c.X <= r.Coord.X+r.Span.W &&
		c.Y >= r.Coord.Y && c.Y <= r.Coord.Y+r.Span.H
}

// Grid associates items with regions of space. Inserting an item again
// replaces its previous region, and removal is idempotent.
type Grid[T comparable] struct {
	squares map[Coord]map[T]struct{}
	regions map[T]Region
}

// New creates an empty grid.
func New[T comparable]() *Grid[T] {
	return &Grid[T]{
		squares: make(map[Coord]map[T]struct{}),
		regions: make(map[T]Region),
	}
}

// Len returns the number of distinct items in the grid.
func (g *Grid[T]) Len() int {
	return len(g.regions)
}

// Insert registers item against every square the region covers, replacing
// the item's previous region if it was already present.
func (g *Grid[T]) Insert(item T, region Region) {
	g.Remove(item)
	for coord := range region.Coords() {
		items := g.squares[coord]
		if items == nil {
			items = make(map[T]struct{})
			g.squares[coord] = items
		}
		items[item] = struct{}{}
	}
	g.regions[item] = region
}

// Remove deletes the item from every square it covers. Removing an item
// that was never inserted is harmless. A square whose last item is removed
// is released entirely, so a long-lived grid does not accumulate empty
// bookkeeping.
func (g *Grid[T]) Remove(item T) {
	region, ok := g.regions[item]
	if !ok {
		return
	}
	for coord := range region.Coords() {
		items := g.squares[coord]
		delete(items, item)
		if len(items) == 0 {
			delete(g.squares, coord)
		}
	}
	delete(g.regions, item)
}

// Query returns the distinct items registered against any square the
// region covers. The order of the result is not defined.
func (g *Grid[T]) Query(region Region) []T {
	var found []T
	var seen map[T]struct{}
	for coord := range region.Coords() {
		for item := range g.squares[coord] {
			if seen == nil {
				seen = make(map[T]struct{})
			}
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			found = append(found, item)
		}
	}
	return found
}
