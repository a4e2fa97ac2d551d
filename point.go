package game2d

import "math"

// Point represents a location in 2D space.
//
// Points and vectors look identical at first glance, but a Point is a
// position while a [Vec2] is a displacement. Adding a Vec2 to a Point gives
// a new Point; two Points cannot be added, but [Point.To] gives the Vec2
// between them.
//
// Point is two words wide; pass it by value.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the point displaced by v.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the point displaced by the negation of v.
func (p Point) Sub(v Vec2) Point {
	return Point{X: p.X - v.X, Y: p.Y - v.Y}
}

// To returns the displacement that carries p to q.
func (p Point) To(q Point) Vec2 {
	return Vec2{X: q.X - p.X, Y: q.Y - p.Y}
}

// Mul returns the point with both coordinates scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// MulXY returns the point with each coordinate scaled independently.
func (p Point) MulXY(x, y float64) Point {
	return Point{X: p.X * x, Y: p.Y * y}
}

// Div returns the point with both coordinates divided by s.
func (p Point) Div(s float64) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

// DivXY returns the point with each coordinate divided independently.
func (p Point) DivXY(x, y float64) Point {
	return Point{X: p.X / x, Y: p.Y / y}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.To(q).Length()
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q, intermediate values interpolate.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// IsZero returns true if the point is the origin.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Approx returns true if two points are approximately equal within epsilon.
func (p Point) Approx(q Point, epsilon float64) bool {
	return math.Abs(p.X-q.X) < epsilon && math.Abs(p.Y-q.Y) < epsilon
}

// Vec2 converts the point to a displacement from the origin.
// Useful when you have one and need the other.
func (p Point) Vec2() Vec2 {
	return Vec2(p)
}
