// Package ui is an immediate-mode UI core: the host redeclares the
// whole interface every frame between Begin and End, and consumes the
// resulting draw command list with whatever renderer it owns. No
// widget objects are retained; per-widget state (focus, scroll, text
// cursors) lives in the Context keyed by stable widget identities.
//
// The Context is single-threaded by contract: every call runs to
// completion on the thread driving Begin/End, and hosts that receive
// events elsewhere must marshal them onto that thread themselves.
package ui

import (
	"errors"
	"sort"
)

var (
	// ErrUnbalancedContainers is returned by End when a Begin*/End*
	// pair (window, panel, column, id scope) was left open or closed
	// twice during the frame.
	ErrUnbalancedContainers = errors.New("ui: unbalanced container stack")
	// ErrStackOverflow is returned by End when a container or id stack
	// exceeded its configured depth. It indicates a runaway call graph
	// and is not meant to be recovered at runtime.
	ErrStackOverflow = errors.New("ui: stack overflow")
)

var rootSeed = fold(fnvOffset, "!root")

// unclipped is the clip rect in effect outside any container.
var unclipped = Rect{-0x1000000, -0x1000000, 0x2000000, 0x2000000}

// Config bounds the Context's stacks. The zero value selects defaults.
type Config struct {
	ContainerDepth int // max nested containers/columns (default 32)
	IDDepth        int // max pushed id scopes (default 32)
}

func (cfg *Config) applyDefaults() {
	if cfg.ContainerDepth <= 0 {
		cfg.ContainerDepth = 32
	}
	if cfg.IDDepth <= 0 {
		cfg.IDDepth = 32
	}
}

// widgetState is the lazily-created persistent record behind an
// interactive widget. Retained indefinitely: bounded by the number of
// distinct identities ever declared, which suits bounded UIs.
type widgetState struct {
	cursor int // textbox caret, in runes
}

// Context owns all state for one UI instance. Create it once, feed it
// input between frames, and bracket widget declarations with Begin and
// End. It is caller-owned and passed explicitly so multiple instances
// can coexist in one process.
type Context struct {
	Style *Style

	cfg   Config
	in    input
	queue []event

	containers     map[ID]*Container
	containerStack []*Container
	rootStack      []*Container
	roots          []*Container
	prevRoots      []*Container

	layouts   []layout
	idStack   []ID
	idUses    map[ID]idUse
	clipStack []Rect

	state     map[ID]*widgetState
	hover     ID
	focus     ID
	keepFocus bool

	hoverRoot    *Container
	scrollTarget *Container
	lastZ        int

	cmds  []Command
	frame []Command

	width, height float32
	active        bool
	err           error
	warnings      int
}

// New creates a Context with the default style.
func New(cfg Config) *Context {
	cfg.applyDefaults()
	return &Context{
		Style:      DefaultStyle(),
		cfg:        cfg,
		containers: make(map[ID]*Container),
		idUses:     make(map[ID]idUse),
		state:      make(map[ID]*widgetState),
	}
}

func (c *Context) style() *Style {
	if c.Style == nil {
		c.Style = DefaultStyle()
	}
	return c.Style
}

// fail records the first frame error; End reports it.
func (c *Context) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Warnings returns the number of identity collisions detected so far.
// Collisions are a caller bug (two distinct widgets resolving to one
// identity) and leave the colliding widgets' persisted state undefined,
// but they never abort a frame.
func (c *Context) Warnings() int { return c.warnings }

// Begin opens a frame over a viewport of the given pixel size. It
// folds the queued input into the frame snapshot, clears the previous
// command list and pushes the implicit root container.
func (c *Context) Begin(width, height float32) {
	if c.active {
		// Begin without End: surface it on the next End rather than
		// panicking mid-loop.
		c.fail(ErrUnbalancedContainers)
	}
	c.active = true
	c.width, c.height = width, height

	c.cmds = c.cmds[:0]
	c.roots = c.roots[:0]
	c.rootStack = c.rootStack[:0]
	c.containerStack = c.containerStack[:0]
	c.layouts = c.layouts[:0]
	c.idStack = c.idStack[:0]
	c.clipStack = c.clipStack[:0]
	for k := range c.idUses {
		delete(c.idUses, k)
	}
	c.scrollTarget = nil
	c.keepFocus = false

	c.foldInput()
	c.resolveHoverRoot()

	root := c.getContainer(rootSeed)
	root.Rect = Rect{0, 0, width, height}
	root.Body = root.Rect
	root.ZIndex = 0
	c.beginRootContainer(root)
	c.pushContainer(root)
	c.pushLayout(root.Rect.Expand(-c.style().Padding), [2]float32{})
	c.pushClip(root.Rect)
}

// End closes the frame. It verifies stack balance, applies wheel
// scrolling, drops focus owned by widgets that were not redeclared,
// finalizes container z-order and returns the command list ready for
// backend consumption.
func (c *Context) End() (Frame, error) {
	if !c.active {
		c.fail(ErrUnbalancedContainers)
		return Frame{}, c.takeErr()
	}
	c.active = false

	c.popClip()
	c.popLayout()
	c.popContainer()
	c.endRootContainer()

	if len(c.containerStack) != 0 || len(c.rootStack) != 0 ||
		len(c.layouts) != 0 || len(c.idStack) != 0 || len(c.clipStack) != 0 {
		c.fail(ErrUnbalancedContainers)
	}

	if c.scrollTarget != nil {
		c.scrollTarget.Scroll[0] += c.in.scrollX
		c.scrollTarget.Scroll[1] += c.in.scrollY
	}

	// A widget holding focus must re-claim it every frame by being
	// declared; otherwise the focus is stale and dropped.
	if !c.keepFocus {
		c.focus = 0
	}

	// Stable sort keeps declaration order inside equal z groups; the
	// implicit root (z 0) stays behind every window.
	sort.SliceStable(c.roots, func(i, j int) bool {
		return c.roots[i].ZIndex < c.roots[j].ZIndex
	})
	c.frame = c.frame[:0]
	for _, root := range c.roots {
		for _, seg := range root.segs {
			c.frame = append(c.frame, c.cmds[seg.start:seg.end]...)
		}
	}

	c.prevRoots = append(c.prevRoots[:0], c.roots...)

	return Frame{cmds: c.frame}, c.takeErr()
}

func (c *Context) takeErr() error {
	err := c.err
	c.err = nil
	return err
}

// resolveHoverRoot finds the topmost root container under the pointer,
// using last frame's rectangles and z-order. Input routed during this
// frame only reaches widgets inside that root, so occluded windows do
// not react to clicks meant for the window above them.
func (c *Context) resolveHoverRoot() {
	c.hoverRoot = nil
	best := -1
	for _, cnt := range c.prevRoots {
		if !cnt.Open {
			continue
		}
		if cnt.Rect.Contains(c.in.mouseX, c.in.mouseY) && cnt.ZIndex >= best {
			best = cnt.ZIndex
			c.hoverRoot = cnt
		}
	}
}

func (c *Context) inHoverRoot() bool {
	return c.currentRoot() == c.hoverRoot
}

// --- clip stack ---

func (c *Context) pushClip(r Rect) {
	c.clipStack = append(c.clipStack, r.Intersect(c.clip()))
}

func (c *Context) popClip() {
	if len(c.clipStack) == 0 {
		c.fail(ErrUnbalancedContainers)
		return
	}
	c.clipStack = c.clipStack[:len(c.clipStack)-1]
}

func (c *Context) clip() Rect {
	if n := len(c.clipStack); n > 0 {
		return c.clipStack[n-1]
	}
	return unclipped
}

// --- focus ---

// SetFocus hands keyboard focus to id. Widgets call it on click; hosts
// rarely need it directly.
func (c *Context) SetFocus(id ID) {
	c.focus = id
	c.keepFocus = true
}

// Focus returns the identity currently holding keyboard focus, zero if
// none.
func (c *Context) Focus() ID { return c.focus }
