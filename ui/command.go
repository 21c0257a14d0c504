package ui

import "github.com/Kuaralaboratories/microui/colors"

// CommandKind tags the variants of the per-frame draw command list.
type CommandKind uint8

const (
	CommandRect CommandKind = iota
	CommandText
	CommandIcon
	CommandClipPush
	CommandClipPop
)

// Icon selects one of the glyphs the core asks backends to draw
// without going through a font: checkmarks, close boxes and the like.
type Icon uint8

const (
	IconNone Icon = iota
	IconClose
	IconCheck
	IconCollapsed
	IconExpanded
)

// Command is one unit of the ordered rendering instruction list a
// frame produces. Geometry is in absolute screen pixels; Color is
// already resolved from the style table.
type Command struct {
	Kind  CommandKind
	Rect  Rect
	Color colors.Color
	Text  string
	Font  Font
	Icon  Icon
}

// Frame is the read-only result of a completed Begin/End pair. It is
// consumed once by the rendering backend and discarded; the underlying
// storage is reused on the next Begin.
type Frame struct {
	cmds []Command
}

// Commands returns the finalized command sequence in draw order. The
// slice is valid until the next Begin on the owning Context.
func (f Frame) Commands() []Command { return f.cmds }

func (f Frame) Len() int { return len(f.cmds) }

// Each visits every command in draw order.
func (f Frame) Each(fn func(*Command)) {
	for i := range f.cmds {
		fn(&f.cmds[i])
	}
}

// --- emit helpers used by widget dispatch ---

func (c *Context) pushCommand(cmd Command) {
	c.cmds = append(c.cmds, cmd)
}

// drawRect emits a solid rectangle clipped to the current clip rect.
func (c *Context) drawRect(r Rect, col colors.Color) {
	r = r.Intersect(c.clip())
	if r.Empty() || col[3] <= 0 {
		return
	}
	c.pushCommand(Command{Kind: CommandRect, Rect: r, Color: col})
}

// drawBorder emits the four edges of r as thin rectangles.
func (c *Context) drawBorder(r Rect, col colors.Color) {
	if col[3] <= 0 {
		return
	}
	b := c.style().BorderSize
	if b <= 0 {
		return
	}
	c.drawRect(Rect{r.X, r.Y, r.W, b}, col)                 // top
	c.drawRect(Rect{r.X, r.Y + r.H - b, r.W, b}, col)       // bottom
	c.drawRect(Rect{r.X, r.Y + b, b, r.H - 2*b}, col)       // left
	c.drawRect(Rect{r.X + r.W - b, r.Y + b, b, r.H - 2*b}, col) // right
}

// drawFrame is the standard widget background: fill plus border.
func (c *Context) drawFrame(r Rect, role ColorRole) {
	c.drawRect(r, c.style().Colors[role])
	switch role {
	case ColorScrollBase, ColorScrollThumb, ColorTitleBG:
		return // flat elements carry no border
	}
	c.drawBorder(r, c.style().Colors[ColorBorder])
}

// drawText emits a text command at pos, bracketing it with clip
// commands when it spills out of the current clip rect.
func (c *Context) drawText(font Font, s string, x, y float32, col colors.Color) {
	tr := Rect{x, y, font.TextWidth(s), font.TextHeight()}
	clip := c.clip()
	if tr.Intersect(clip).Empty() {
		return
	}
	clipped := !clip.ContainsRect(tr)
	if clipped {
		c.pushCommand(Command{Kind: CommandClipPush, Rect: clip})
	}
	c.pushCommand(Command{Kind: CommandText, Rect: tr, Color: col, Text: s, Font: font})
	if clipped {
		c.pushCommand(Command{Kind: CommandClipPop})
	}
}

// drawIcon emits an icon command centered in r.
func (c *Context) drawIcon(icon Icon, r Rect, col colors.Color) {
	clip := c.clip()
	if r.Intersect(clip).Empty() {
		return
	}
	clipped := !clip.ContainsRect(r)
	if clipped {
		c.pushCommand(Command{Kind: CommandClipPush, Rect: clip})
	}
	c.pushCommand(Command{Kind: CommandIcon, Rect: r, Color: col, Icon: icon})
	if clipped {
		c.pushCommand(Command{Kind: CommandClipPop})
	}
}
