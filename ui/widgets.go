package ui

import (
	"strconv"
	"strings"
)

// widgetResult reports how the input snapshot interacted with one
// widget rectangle this frame.
type widgetResult struct {
	Hovered bool
	Focused bool
	// Clicked means the press originated inside the rectangle and the
	// release landed inside it too, possibly frames later.
	Clicked bool
}

// updateWidget runs the idle/hovered/pressed state machine for the
// widget occupying r. Focus is acquired on press, kept while the
// button is held, and released (producing Clicked when still over the
// rectangle) on release. Input only reaches widgets inside the topmost
// root container under the pointer.
func (c *Context) updateWidget(id ID, r Rect) widgetResult {
	return c.updateWidgetHold(id, r, false)
}

// updateWidgetHold is updateWidget for widgets that keep keyboard
// focus after the pointer is released (textboxes): focus then lasts
// until a press lands elsewhere or the widget gives it up itself.
func (c *Context) updateWidgetHold(id ID, r Rect, holdFocus bool) widgetResult {
	in := &c.in
	mouseover := in.mouseOver(r) && c.clip().Contains(in.mouseX, in.mouseY) && c.inHoverRoot()

	if c.focus == id {
		c.keepFocus = true
	}

	if mouseover && (!in.down[MouseLeft] || in.pressed[MouseLeft] || c.focus == id) {
		c.hover = id
	}

	var res widgetResult
	if c.focus == id {
		if in.pressed[MouseLeft] && !mouseover {
			c.SetFocus(0)
		}
		if in.released[MouseLeft] {
			if mouseover && c.hover == id {
				res.Clicked = true
			}
			if !holdFocus {
				c.SetFocus(0)
			}
		}
	}
	if c.hover == id {
		if in.pressed[MouseLeft] && mouseover {
			c.SetFocus(id)
		} else if !mouseover {
			c.hover = 0
		}
	}

	res.Hovered = c.hover == id
	res.Focused = c.focus == id
	return res
}

func (c *Context) widgetStateFor(id ID) *widgetState {
	if st, ok := c.state[id]; ok {
		return st
	}
	st := &widgetState{}
	c.state[id] = st
	return st
}

// buttonColor picks the background role for an interactive widget from
// its hover/focus state.
func buttonColor(base ColorRole, res widgetResult) ColorRole {
	switch {
	case res.Focused:
		return base + 2
	case res.Hovered:
		return base + 1
	default:
		return base
	}
}

// Label draws text in the next layout cell. Purely visual: labels have
// no identity and no persistent state.
func (c *Context) Label(text string) {
	r := c.LayoutNext()
	font := c.font()
	c.drawText(font, text, r.X, r.Y+(r.H-font.TextHeight())/2, c.style().Colors[ColorText])
}

// Text draws a word-wrapped paragraph, consuming as many full-width
// rows as the wrapped text needs.
func (c *Context) Text(text string) {
	font := c.font()
	col := c.style().Colors[ColorText]
	c.BeginColumn()
	c.LayoutRow([]float32{-1}, font.TextHeight())
	width := c.currentLayout().body.W
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line != "" && font.TextWidth(candidate) > width {
				r := c.LayoutNext()
				c.drawText(font, line, r.X, r.Y, col)
				line = word
				continue
			}
			line = candidate
		}
		r := c.LayoutNext()
		c.drawText(font, line, r.X, r.Y, col)
	}
	c.EndColumn()
}

// Button declares a push button and reports whether it was activated
// this frame: pressed and released over its rectangle.
func (c *Context) Button(label string) bool {
	id := c.widgetID(label)
	r := c.LayoutNext()
	res := c.updateWidget(id, r)

	c.drawFrame(r, buttonColor(ColorButton, res))
	font := c.font()
	tw := font.TextWidth(label)
	c.drawText(font, label, r.X+(r.W-tw)/2, r.Y+(r.H-font.TextHeight())/2, c.style().Colors[ColorText])

	return res.Clicked
}

// Checkbox toggles *state when clicked and reports whether it changed.
func (c *Context) Checkbox(label string, state *bool) bool {
	id := c.widgetID(label)
	r := c.LayoutNext()
	box := Rect{r.X, r.Y, r.H, r.H}
	res := c.updateWidget(id, r)

	changed := false
	if res.Clicked {
		*state = !*state
		changed = true
	}

	c.drawFrame(box, buttonColor(ColorBase, res))
	if *state {
		c.drawIcon(IconCheck, box, c.style().Colors[ColorText])
	}
	font := c.font()
	c.drawText(font, label, box.X+box.W+c.style().Padding, r.Y+(r.H-font.TextHeight())/2, c.style().Colors[ColorText])
	return changed
}

// Slider drags *value across [lo, hi] and reports whether it changed.
// name supplies the widget identity; the current value is drawn inside
// the track.
func (c *Context) Slider(name string, value *float32, lo, hi float32) bool {
	id := c.widgetID(name)
	r := c.LayoutNext()
	res := c.updateWidget(id, r)

	old := *value
	if res.Focused && c.in.down[MouseLeft] && r.W > 0 {
		*value = clampf(lo+(c.in.mouseX-r.X)/r.W*(hi-lo), minf(lo, hi), maxf(lo, hi))
	}

	c.drawFrame(r, buttonColor(ColorBase, res))
	if hi != lo {
		style := c.style()
		t := clampf((*value-lo)/(hi-lo), 0, 1)
		thumbW := style.ThumbSize
		thumb := Rect{r.X + t*(r.W-thumbW), r.Y, thumbW, r.H}
		c.drawFrame(thumb, buttonColor(ColorButton, res))
	}
	font := c.font()
	label := strconv.FormatFloat(float64(*value), 'f', 2, 32)
	c.drawText(font, label, r.X+(r.W-font.TextWidth(label))/2, r.Y+(r.H-font.TextHeight())/2, c.style().Colors[ColorText])

	return *value != old
}

// Textbox edits *buf in place. Only the textbox holding keyboard focus
// consumes queued text and key events; clicking it acquires focus and
// Return releases it, reporting submitted.
func (c *Context) Textbox(name string, buf *string) (changed, submitted bool) {
	id := c.widgetID(name)
	st := c.widgetStateFor(id)
	r := c.LayoutNext()
	res := c.updateWidgetHold(id, r, true)

	runes := []rune(*buf)
	st.cursor = clampi(st.cursor, 0, len(runes))

	if res.Focused {
		if len(c.in.text) > 0 {
			runes = append(runes[:st.cursor], append(append([]rune{}, c.in.text...), runes[st.cursor:]...)...)
			st.cursor += len(c.in.text)
			changed = true
		}
		if c.in.keyPressed[KeyBackspace] && st.cursor > 0 {
			runes = append(runes[:st.cursor-1], runes[st.cursor:]...)
			st.cursor--
			changed = true
		}
		if c.in.keyPressed[KeyLeft] {
			st.cursor = clampi(st.cursor-1, 0, len(runes))
		}
		if c.in.keyPressed[KeyRight] {
			st.cursor = clampi(st.cursor+1, 0, len(runes))
		}
		if c.in.keyPressed[KeyHome] {
			st.cursor = 0
		}
		if c.in.keyPressed[KeyEnd] {
			st.cursor = len(runes)
		}
		if c.in.keyPressed[KeyReturn] {
			c.SetFocus(0)
			submitted = true
		}
		if changed {
			*buf = string(runes)
		}
	}

	style := c.style()
	c.drawFrame(r, buttonColor(ColorBase, res))

	font := c.font()
	tx := r.X + style.Padding
	ty := r.Y + (r.H-font.TextHeight())/2
	c.pushClip(r)
	c.drawText(font, *buf, tx, ty, style.Colors[ColorText])
	if c.focus == id {
		caretX := tx + font.TextWidth(string(runes[:st.cursor]))
		c.drawRect(Rect{caretX, ty, 1, font.TextHeight()}, style.Colors[ColorText])
	}
	c.popClip()

	return changed, submitted
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
