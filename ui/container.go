package ui

// Container is a window/panel-like region: a rectangle, a scroll
// offset and a z-order slot. Containers persist across frames keyed by
// identity, which is how window positions and scroll offsets survive
// redeclaration.
type Container struct {
	id          ID
	Rect        Rect
	Body        Rect
	ContentSize [2]float32
	Scroll      [2]float32
	ZIndex      int
	Open        bool

	// Command-list bookkeeping: the (possibly discontiguous) ranges of
	// the raw command list this container owns. End concatenates them
	// in z order.
	segs     []cmdRange
	segStart int
}

type cmdRange struct{ start, end int }

// WindowOptions tweak BeginWindow behavior.
type WindowOptions uint8

const (
	WindowNoTitle WindowOptions = 1 << iota
	WindowNoClose
	WindowNoScroll
	WindowNoFrame
)

func (c *Context) getContainer(id ID) *Container {
	if cnt, ok := c.containers[id]; ok {
		return cnt
	}
	cnt := &Container{id: id, Open: true}
	c.containers[id] = cnt
	return cnt
}

func (c *Context) currentContainer() *Container {
	if n := len(c.containerStack); n > 0 {
		return c.containerStack[n-1]
	}
	return nil
}

func (c *Context) pushContainer(cnt *Container) {
	if len(c.containerStack) >= c.cfg.ContainerDepth {
		c.fail(ErrStackOverflow)
		return
	}
	c.containerStack = append(c.containerStack, cnt)
}

func (c *Context) popContainer() *Container {
	if len(c.containerStack) == 0 {
		c.fail(ErrUnbalancedContainers)
		return &Container{}
	}
	cnt := c.containerStack[len(c.containerStack)-1]
	c.containerStack = c.containerStack[:len(c.containerStack)-1]
	return cnt
}

// --- root containers and z order ---

func (c *Context) nextZ() int {
	c.lastZ++
	return c.lastZ
}

// BringToFront raises cnt above every other root container.
func (c *Context) BringToFront(cnt *Container) {
	cnt.ZIndex = c.nextZ()
}

func (c *Context) currentRoot() *Container {
	if n := len(c.rootStack); n > 0 {
		return c.rootStack[n-1]
	}
	return nil
}

func (c *Context) openSegment(cnt *Container)  { cnt.segStart = len(c.cmds) }
func (c *Context) closeSegment(cnt *Container) {
	if end := len(c.cmds); end > cnt.segStart {
		cnt.segs = append(cnt.segs, cmdRange{cnt.segStart, end})
	}
}

func (c *Context) beginRootContainer(cnt *Container) {
	if cur := c.currentRoot(); cur != nil {
		c.closeSegment(cur)
	}
	cnt.segs = cnt.segs[:0]
	c.roots = append(c.roots, cnt)
	c.rootStack = append(c.rootStack, cnt)
	c.openSegment(cnt)
}

func (c *Context) endRootContainer() {
	if len(c.rootStack) == 0 {
		c.fail(ErrUnbalancedContainers)
		return
	}
	cnt := c.rootStack[len(c.rootStack)-1]
	c.rootStack = c.rootStack[:len(c.rootStack)-1]
	c.closeSegment(cnt)
	if parent := c.currentRoot(); parent != nil {
		c.openSegment(parent)
	}
}

// --- windows ---

// BeginWindow declares a movable window. rect is only the initial
// placement: position, size, scroll and z-order persist across frames
// under the window's identity. It returns false when the window is
// closed, in which case the matching EndWindow must be skipped too.
func (c *Context) BeginWindow(title string, rect Rect, opts WindowOptions) bool {
	id := c.widgetID(title)
	cnt := c.getContainer(id)
	if !cnt.Open {
		return false
	}
	if cnt.Rect.W == 0 {
		cnt.Rect = rect
		cnt.ZIndex = c.nextZ()
	}

	// Clicking anywhere in the topmost window under the pointer raises it.
	if c.in.pressed[MouseLeft] && c.hoverRoot == cnt && cnt.ZIndex < c.lastZ {
		c.BringToFront(cnt)
	}

	c.beginRootContainer(cnt)
	c.pushContainer(cnt)

	style := c.style()
	body := cnt.Rect

	if opts&WindowNoFrame == 0 {
		c.drawFrame(cnt.Rect, ColorWindowBG)
	}

	if opts&WindowNoTitle == 0 {
		tr := Rect{body.X, body.Y, body.W, style.TitleHeight}
		c.drawFrame(tr, ColorTitleBG)

		// Dragging the title bar moves the window (applies next frame,
		// same as the z-order raise). The press frame itself is skipped
		// so a click after a pointer jump does not teleport the window.
		titleID := c.widgetID("!title")
		res := c.updateWidget(titleID, tr)
		if res.Focused && c.in.down[MouseLeft] && !c.in.pressed[MouseLeft] {
			cnt.Rect.X += c.in.deltaX
			cnt.Rect.Y += c.in.deltaY
		}

		font := c.font()
		c.drawText(font, title, tr.X+style.Padding, tr.Y+(tr.H-font.TextHeight())/2, style.Colors[ColorTitleText])

		if opts&WindowNoClose == 0 {
			br := Rect{tr.X + tr.W - tr.H, tr.Y, tr.H, tr.H}
			closeID := c.widgetID("!close")
			cres := c.updateWidget(closeID, br)
			c.drawIcon(IconClose, br, style.Colors[ColorTitleText])
			if cres.Clicked {
				cnt.Open = false
			}
		}

		body.Y += tr.H
		body.H -= tr.H
	}

	c.pushContainerBody(cnt, body, opts&WindowNoScroll != 0)
	return true
}

// EndWindow closes the window opened by the last successful BeginWindow.
func (c *Context) EndWindow() {
	c.popContainerBody()
	c.popContainer()
	c.endRootContainer()
}

// OpenWindow reopens a closed top-level window by title.
func (c *Context) OpenWindow(title string) {
	cnt := c.getContainer(fold(rootSeed, title))
	cnt.Open = true
	c.BringToFront(cnt)
}

// --- panels ---

// BeginPanel declares an embedded scrollable region occupying the next
// layout cell of the enclosing container.
func (c *Context) BeginPanel(name string) {
	id := c.widgetID(name)
	cnt := c.getContainer(id)
	cnt.Rect = c.LayoutNext()
	c.drawFrame(cnt.Rect, ColorPanelBG)
	c.pushContainer(cnt)
	c.pushContainerBody(cnt, cnt.Rect, false)
}

// EndPanel closes the panel opened by the last BeginPanel.
func (c *Context) EndPanel() {
	c.popContainerBody()
	c.popContainer()
}

// --- shared body/scroll plumbing ---

func (c *Context) pushContainerBody(cnt *Container, body Rect, noScroll bool) {
	if !noScroll {
		c.scrollbars(cnt, &body)
	}
	cnt.Body = body
	pad := c.style().Padding
	c.pushLayout(body.Expand(-pad), cnt.Scroll)
	c.pushClip(body)
}

func (c *Context) popContainerBody() {
	cnt := c.currentContainer()
	if cnt == nil {
		c.fail(ErrUnbalancedContainers)
		return
	}
	l := c.popLayout()
	pad := c.style().Padding
	cnt.ContentSize = [2]float32{l.maxX + 2*pad, l.maxY + 2*pad}
	c.popClip()
}

// scrollbars reserves space for and draws the scrollbars a container
// needs, given the content size measured last frame.
func (c *Context) scrollbars(cnt *Container, body *Rect) {
	style := c.style()
	sz := style.ScrollbarSize
	cs := cnt.ContentSize

	if cs[1] > body.H {
		body.W -= sz
	}
	if cs[0] > body.W {
		body.H -= sz
	}

	// Wheel scrolling targets the smallest container under the pointer.
	if c.in.mouseOver(*body) && c.inHoverRoot() {
		c.scrollTarget = cnt
	}

	if maxScroll := cs[1] - body.H; maxScroll > 0 && body.H > 0 {
		base := Rect{body.X + body.W, body.Y, sz, body.H}
		sid := c.widgetID("!scrollbary")
		res := c.updateWidget(sid, base)
		if res.Focused && c.in.down[MouseLeft] && !c.in.pressed[MouseLeft] {
			cnt.Scroll[1] += c.in.deltaY / base.H * cs[1]
		}
		cnt.Scroll[1] = clampf(cnt.Scroll[1], 0, maxScroll)

		c.drawFrame(base, ColorScrollBase)
		thumb := base
		thumb.H = maxf(style.ThumbSize, base.H*body.H/cs[1])
		thumb.Y += cnt.Scroll[1] / maxScroll * (base.H - thumb.H)
		c.drawFrame(thumb, ColorScrollThumb)
	} else {
		cnt.Scroll[1] = 0
	}

	if maxScroll := cs[0] - body.W; maxScroll > 0 && body.W > 0 {
		base := Rect{body.X, body.Y + body.H, body.W, sz}
		sid := c.widgetID("!scrollbarx")
		res := c.updateWidget(sid, base)
		if res.Focused && c.in.down[MouseLeft] && !c.in.pressed[MouseLeft] {
			cnt.Scroll[0] += c.in.deltaX / base.W * cs[0]
		}
		cnt.Scroll[0] = clampf(cnt.Scroll[0], 0, maxScroll)

		c.drawFrame(base, ColorScrollBase)
		thumb := base
		thumb.W = maxf(style.ThumbSize, base.W*body.W/cs[0])
		thumb.X += cnt.Scroll[0] / maxScroll * (base.W - thumb.W)
		c.drawFrame(thumb, ColorScrollThumb)
	} else {
		cnt.Scroll[0] = 0
	}
}
