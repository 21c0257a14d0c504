package ui

import "testing"

// newTestContext returns a context with zeroed padding/spacing so
// geometry assertions can use exact pixel values.
func newTestContext() *Context {
	c := New(Config{})
	c.Style.Padding = 0
	c.Style.Spacing = 0
	return c
}

func TestLayoutRowWidths(t *testing.T) {
	tests := []struct {
		name   string
		widths []float32
		want   []float32
	}{
		{"fixed plus remainder", []float32{50, 100, -1}, []float32{50, 100, 150}},
		{"remainder split equally", []float32{100, -1, -1}, []float32{100, 100, 100}},
		{"all fixed", []float32{60, 60}, []float32{60, 60}},
		{"single flexible", []float32{-1}, []float32{300}},
		{"zero means container width", []float32{0}, []float32{300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext()
			c.Begin(300, 200)
			c.LayoutRow(tt.widths, 20)
			x := float32(0)
			for i, want := range tt.want {
				r := c.LayoutNext()
				if r.W != want {
					t.Errorf("column %d width = %v, want %v", i, r.W, want)
				}
				if r.X != x {
					t.Errorf("column %d x = %v, want %v", i, r.X, x)
				}
				x += want
			}
			if _, err := c.End(); err != nil {
				t.Fatalf("End() error = %v", err)
			}
		})
	}
}

func TestLayoutRowColumnCap(t *testing.T) {
	// A spec longer than 16 columns is truncated; widgets past the cap
	// wrap onto the next row like any other overflow.
	c := newTestContext()
	c.Begin(300, 200)

	widths := make([]float32, 20)
	for i := range widths {
		widths[i] = 10
	}
	c.LayoutRow(widths, 20)

	for i := 0; i < maxRowColumns; i++ {
		r := c.LayoutNext()
		if r.X != float32(i)*10 || r.Y != 0 {
			t.Fatalf("cell %d at (%v,%v), want (%v,0)", i, r.X, r.Y, i*10)
		}
	}
	r := c.LayoutNext()
	if r.X != 0 || r.Y != 20 {
		t.Errorf("cell past the cap at (%v,%v), want wrap to (0,20)", r.X, r.Y)
	}
	if _, err := c.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}
}

func TestLayoutRowSpacing(t *testing.T) {
	c := newTestContext()
	c.Style.Spacing = 10
	c.Begin(300, 200)
	c.LayoutRow([]float32{50, -1}, 20)
	r1 := c.LayoutNext()
	r2 := c.LayoutNext()
	c.End()

	if r1.W != 50 {
		t.Errorf("fixed column width = %v, want 50", r1.W)
	}
	if r2.X != 60 {
		t.Errorf("second column x = %v, want 60", r2.X)
	}
	// 300 total, minus one 10px gap, minus the 50px fixed column.
	if r2.W != 240 {
		t.Errorf("flexible column width = %v, want 240", r2.W)
	}
}

func TestLayoutRowHeight(t *testing.T) {
	c := newTestContext()
	c.Style.LineHeight = 18
	c.Begin(300, 200)

	c.LayoutRow([]float32{-1}, 40)
	if r := c.LayoutNext(); r.H != 40 {
		t.Errorf("fixed row height = %v, want 40", r.H)
	}
	c.LayoutRow([]float32{-1}, 0)
	if r := c.LayoutNext(); r.H != 18 {
		t.Errorf("default row height = %v, want 18", r.H)
	}
	c.End()
}

func TestLayoutRowWrap(t *testing.T) {
	// Declaring more widgets than columns wraps to a new row with the
	// same width spec.
	c := newTestContext()
	c.Begin(300, 200)
	c.LayoutRow([]float32{100, 100}, 20)
	rects := make([]Rect, 4)
	for i := range rects {
		rects[i] = c.LayoutNext()
	}
	c.End()

	if rects[2].Y != 20 || rects[3].Y != 20 {
		t.Errorf("wrapped row y = %v/%v, want 20", rects[2].Y, rects[3].Y)
	}
	if rects[2].X != 0 || rects[2].W != 100 {
		t.Errorf("wrapped first cell = %+v, want x=0 w=100", rects[2])
	}
	if rects[3].X != 100 {
		t.Errorf("wrapped second cell x = %v, want 100", rects[3].X)
	}
}

func TestLayoutImplicitColumn(t *testing.T) {
	// A widget declared before any LayoutRow gets a single full-width
	// implicit column at the default line height.
	c := newTestContext()
	c.Style.LineHeight = 20
	c.Begin(300, 200)
	r1 := c.LayoutNext()
	r2 := c.LayoutNext()
	c.End()

	if r1.W != 300 || r1.H != 20 || r1.X != 0 || r1.Y != 0 {
		t.Errorf("implicit cell = %+v, want (0,0,300,20)", r1)
	}
	if r2.Y != 20 {
		t.Errorf("second implicit cell y = %v, want 20", r2.Y)
	}
}

func TestLayoutColumns(t *testing.T) {
	c := newTestContext()
	c.Begin(300, 200)
	c.LayoutRow([]float32{120, -1}, 60)

	// Rows inside a column are relative to the cell, not the container.
	c.BeginColumn()
	c.LayoutRow([]float32{-1}, 20)
	inner1 := c.LayoutNext()
	inner2 := c.LayoutNext()
	c.EndColumn()

	right := c.LayoutNext()

	// The next parent row starts below the column's accumulated height.
	c.LayoutRow([]float32{-1}, 20)
	below := c.LayoutNext()
	c.End()

	if inner1.X != 0 || inner1.Y != 0 || inner1.W != 120 {
		t.Errorf("first inner cell = %+v, want (0,0,120,20)", inner1)
	}
	if inner2.Y != 20 {
		t.Errorf("second inner cell y = %v, want 20", inner2.Y)
	}
	if right.X != 120 {
		t.Errorf("right cell x = %v, want 120", right.X)
	}
	if below.Y < 60 {
		t.Errorf("row below column y = %v, want >= 60", below.Y)
	}
}

func TestLayoutPaddingOffsetsOrigin(t *testing.T) {
	c := newTestContext()
	c.Style.Padding = 8
	c.Begin(300, 200)
	c.LayoutRow([]float32{-1}, 20)
	r := c.LayoutNext()
	c.End()

	if r.X != 8 || r.Y != 8 {
		t.Errorf("cell origin = (%v,%v), want (8,8)", r.X, r.Y)
	}
	if r.W != 284 {
		t.Errorf("cell width = %v, want 284", r.W)
	}
}
