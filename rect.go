package game2d

// Side identifies one edge of a [Rect].
type Side int

// Sides of a rectangle.
const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// String returns the side's name.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Pos  Point
	Size Vec2
}

// RectAt is a convenience function to create a Rect.
func RectAt(pos Point, size Vec2) Rect {
	return Rect{Pos: pos, Size: size}
}

// Left returns the x coordinate of the rectangle's left edge.
func (r Rect) Left() float64 {
	return r.Pos.X
}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 {
	return r.Pos.X + r.Size.X
}

// Top returns the y coordinate of the rectangle's top edge.
func (r Rect) Top() float64 {
	return r.Pos.Y
}

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 {
	return r.Pos.Y + r.Size.Y
}

// Overlaps reports whether r and other share interior area. Rectangles
// that only share an edge or corner do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return !(r.Right() <= other.Left() ||
		r.Left() >= other.Right() ||
		r.Top() >= other.Bottom() ||
		r.Bottom() <= other.Top())
}

// Touches reports whether r and other overlap or share an edge or corner.
func (r Rect) Touches(other Rect) bool {
	return !(r.Right() < other.Left() ||
		r.Left() > other.Right() ||
		r.Top() > other.Bottom() ||
		r.Bottom() < other.Top())
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	left := min(r.Left(), other.Left())
	top := min(r.Top(), other.Top())
	right := max(r.Right(), other.Right())
	bottom := max(r.Bottom(), other.Bottom())
	return Rect{
		Pos:  Point{X: left, Y: top},
		Size: Vec2{X: right - left, Y: bottom - top},
	}
}

// CollidedSide reports which side of r a moving rectangle crossed, given
// that rectangle's bounds before the movement step (t0, which must not
// overlap r) and after it (t1, which must overlap r). It panics if those
// preconditions do not hold.
func (r Rect) CollidedSide(t0, t1 Rect) Side {
	if r.Overlaps(t0) {
		panic("game2d: CollidedSide requires a non-overlapping start rect")
	}
	if !r.Overlaps(t1) {
		panic("game2d: CollidedSide requires an overlapping end rect")
	}

	switch {
	case t0.Left() >= r.Right() && t1.Left() < r.Right():
		return SideRight
	case t0.Right() <= r.Left() && t1.Right() > r.Left():
		return SideLeft
	case t0.Top() >= r.Bottom() && t1.Top() < r.Bottom():
		return SideBottom
	default:
		if !(t0.Bottom() <= r.Top() && t1.Bottom() > r.Top()) {
			panic("game2d: CollidedSide could not classify the movement")
		}
		return SideTop
	}
}
