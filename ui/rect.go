package ui

// Rect is an axis-aligned rectangle in screen pixels, top-left origin,
// positive Y going down.
type Rect struct {
	X, Y, W, H float32
}

func NewRect(x, y, w, h float32) Rect { return Rect{x, y, w, h} }

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Intersect returns the overlap of two rectangles. A zero-area Rect is
// returned when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := maxf(r.X, o.X)
	y1 := maxf(r.Y, o.Y)
	x2 := minf(r.X+r.W, o.X+o.W)
	y2 := minf(r.Y+r.H, o.Y+o.H)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return Rect{x1, y1, x2 - x1, y2 - y1}
}

// ContainsRect reports whether o lies fully inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Expand grows the rectangle by n pixels on every side.
func (r Rect) Expand(n float32) Rect {
	return Rect{r.X - n, r.Y - n, r.W + 2*n, r.H + 2*n}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
