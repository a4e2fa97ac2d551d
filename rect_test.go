package game2d

import "testing"

func TestRectEdges(t *testing.T) {
	r := RectAt(Pt(10, 20), V2(30, 40))
	if r.Left() != 10 || r.Right() != 40 || r.Top() != 20 || r.Bottom() != 60 {
		t.Errorf("edges = %v %v %v %v, want 10 40 20 60",
			r.Left(), r.Right(), r.Top(), r.Bottom())
	}
}

func TestRectOverlapsAndTouches(t *testing.T) {
	base := RectAt(Pt(0, 0), V2(10, 10))

	tests := []struct {
		name     string
		other    Rect
		overlaps bool
		touches  bool
	}{
		{"identical", base, true, true},
		{"contained", RectAt(Pt(2, 2), V2(4, 4)), true, true},
		{"partial", RectAt(Pt(5, 5), V2(10, 10)), true, true},
		{"shared edge", RectAt(Pt(10, 0), V2(10, 10)), false, true},
		{"shared corner", RectAt(Pt(10, 10), V2(10, 10)), false, true},
		{"separated", RectAt(Pt(11, 0), V2(10, 10)), false, false},
		{"above touching", RectAt(Pt(0, -5), V2(10, 5)), false, true},
		{"far below", RectAt(Pt(0, 20), V2(10, 10)), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.overlaps {
				t.Errorf("Overlaps = %v, want %v", got, tt.overlaps)
			}
			if got := base.Touches(tt.other); got != tt.touches {
				t.Errorf("Touches = %v, want %v", got, tt.touches)
			}
			// Both relations are symmetric.
			if tt.other.Overlaps(base) != base.Overlaps(tt.other) {
				t.Error("Overlaps is not symmetric")
			}
			if tt.other.Touches(base) != base.Touches(tt.other) {
				t.Error("Touches is not symmetric")
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name   string
		r1, r2 Rect
		want   Rect
	}{
		{
			"disjoint",
			RectAt(Pt(0, 0), V2(10, 10)),
			RectAt(Pt(20, 30), V2(10, 10)),
			RectAt(Pt(0, 0), V2(30, 40)),
		},
		{
			"contained",
			RectAt(Pt(0, 0), V2(10, 10)),
			RectAt(Pt(2, 2), V2(4, 4)),
			RectAt(Pt(0, 0), V2(10, 10)),
		},
		{
			"negative coordinates",
			RectAt(Pt(-5, -5), V2(10, 10)),
			RectAt(Pt(0, 0), V2(10, 10)),
			RectAt(Pt(-5, -5), V2(15, 15)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r1.Union(tt.r2); got != tt.want {
				t.Errorf("Union = %v, want %v", got, tt.want)
			}
			if got := tt.r2.Union(tt.r1); got != tt.want {
				t.Errorf("reversed Union = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollidedSide(t *testing.T) {
	wall := RectAt(Pt(10, 10), V2(10, 10))

	tests := []struct {
		name   string
		t0, t1 Rect
		want   Side
	}{
		{
			"moving left hits right side",
			RectAt(Pt(25, 12), V2(5, 5)),
			RectAt(Pt(17, 12), V2(5, 5)),
			SideRight,
		},
		{
			"moving right hits left side",
			RectAt(Pt(0, 12), V2(5, 5)),
			RectAt(Pt(8, 12), V2(5, 5)),
			SideLeft,
		},
		{
			"moving up hits bottom side",
			RectAt(Pt(12, 25), V2(5, 5)),
			RectAt(Pt(12, 17), V2(5, 5)),
			SideBottom,
		},
		{
			"moving down hits top side",
			RectAt(Pt(12, 0), V2(5, 5)),
			RectAt(Pt(12, 8), V2(5, 5)),
			SideTop,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wall.CollidedSide(tt.t0, tt.t1); got != tt.want {
				t.Errorf("CollidedSide = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollidedSidePanics(t *testing.T) {
	wall := RectAt(Pt(10, 10), V2(10, 10))
	inside := RectAt(Pt(12, 12), V2(5, 5))
	outside := RectAt(Pt(30, 30), V2(5, 5))

	assertPanics := func(name string, fn func()) {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		})
	}

	assertPanics("overlapping start", func() { wall.CollidedSide(inside, inside) })
	assertPanics("non-overlapping end", func() { wall.CollidedSide(outside, outside) })
}

func TestSideString(t *testing.T) {
	tests := []struct {
		side Side
		want string
	}{
		{SideTop, "top"},
		{SideBottom, "bottom"},
		{SideLeft, "left"},
		{SideRight, "right"},
		{Side(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.side.String(); got != tt.want {
			t.Errorf("Side(%d).String() = %q, want %q", tt.side, got, tt.want)
		}
	}
}
