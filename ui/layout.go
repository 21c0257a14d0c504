package ui

// The layout engine hands out one rectangle per widget declaration,
// walking a row/column cursor over the current container's content
// box. Row specs are declarative: positive width = fixed pixels,
// negative = an equal share of the remaining row width, zero = the
// container content width. Shares are resolved once when the row is
// declared, not re-derived per widget.

const maxRowColumns = 16

type layout struct {
	body Rect // content box, already offset by the container scroll

	x, y    float32 // cursor, relative to body origin
	widths  [maxRowColumns]float32
	ncols   int
	item    int // next column to consume
	rowH    float32
	rowOpen bool // a cell of the current row has been handed out

	maxX, maxY float32 // content extent, relative to body origin
}

func (c *Context) pushLayout(body Rect, scroll [2]float32) {
	if len(c.layouts) >= c.cfg.ContainerDepth {
		c.fail(ErrStackOverflow)
		return
	}
	c.layouts = append(c.layouts, layout{
		body: Rect{body.X - scroll[0], body.Y - scroll[1], body.W, body.H},
	})
}

func (c *Context) popLayout() *layout {
	if len(c.layouts) == 0 {
		c.fail(ErrUnbalancedContainers)
		return &layout{}
	}
	l := c.layouts[len(c.layouts)-1]
	c.layouts = c.layouts[:len(c.layouts)-1]
	return &l
}

func (c *Context) currentLayout() *layout {
	if len(c.layouts) == 0 {
		// Begin always pushes the root layout; reaching this means the
		// caller declared widgets outside Begin/End.
		c.fail(ErrUnbalancedContainers)
		c.layouts = append(c.layouts, layout{})
	}
	return &c.layouts[len(c.layouts)-1]
}

// LayoutRow declares the next row: one entry in widths per column.
// Positive entries are pixel widths, zero means the container content
// width, and negative entries split the space remaining in the row
// equally among themselves. A non-positive height selects the style's
// default line height. Declaring more widgets than columns wraps to a
// fresh row with the same spec. Rows hold at most 16 columns; entries
// past the cap are dropped and their widgets wrap as usual.
func (c *Context) LayoutRow(widths []float32, height float32) {
	l := c.currentLayout()
	spacing := c.style().Spacing

	if l.rowOpen {
		l.y += l.rowH + spacing
		l.rowOpen = false
	}
	l.x = 0
	l.item = 0

	n := len(widths)
	if n == 0 {
		widths = []float32{0}
		n = 1
	}
	if n > maxRowColumns {
		n = maxRowColumns
		widths = widths[:n]
	}

	avail := l.body.W - spacing*float32(n-1)
	var fixed float32
	var flexible int
	for i, w := range widths {
		switch {
		case w > 0:
			l.widths[i] = w
			fixed += w
		case w == 0:
			l.widths[i] = l.body.W
			fixed += l.body.W
		default:
			l.widths[i] = -1 // resolved below
			flexible++
		}
	}
	if flexible > 0 {
		share := maxf(0, avail-fixed) / float32(flexible)
		for i := 0; i < n; i++ {
			if l.widths[i] < 0 {
				l.widths[i] = share
			}
		}
	}
	l.ncols = n

	if height > 0 {
		l.rowH = height
	} else {
		l.rowH = c.style().LineHeight
	}
}

// LayoutNext consumes and returns the next cell rectangle. Exposed so
// hosts can place custom widgets with the same cursor the built-in
// widgets use.
func (c *Context) LayoutNext() Rect {
	l := c.currentLayout()
	spacing := c.style().Spacing

	if l.ncols == 0 {
		// No row declared yet: a single implicit full-width column.
		l.widths[0] = l.body.W
		l.ncols = 1
		l.rowH = c.style().LineHeight
	}
	if l.item >= l.ncols {
		// Row exhausted: wrap to a new row reusing the same spec.
		l.y += l.rowH + spacing
		l.x = 0
		l.item = 0
	}

	w := l.widths[l.item]
	r := Rect{l.body.X + l.x, l.body.Y + l.y, w, l.rowH}
	l.x += w + spacing
	l.item++
	l.rowOpen = true

	l.maxX = maxf(l.maxX, l.x-spacing)
	l.maxY = maxf(l.maxY, l.y+l.rowH)
	return r
}

// BeginColumn opens a nested layout whose origin is the current cell,
// so rows declared inside lay out relative to that cell rather than
// the container.
func (c *Context) BeginColumn() {
	r := c.LayoutNext()
	c.pushLayout(r, [2]float32{})
}

// EndColumn closes the nested layout and grows the parent row to the
// column's accumulated height so the next parent row starts below it.
func (c *Context) EndColumn() {
	col := c.popLayout()
	parent := c.currentLayout()
	parent.rowH = maxf(parent.rowH, col.maxY)
	parent.maxX = maxf(parent.maxX, col.body.X+col.maxX-parent.body.X)
	parent.maxY = maxf(parent.maxY, col.body.Y+col.maxY-parent.body.Y)
}
