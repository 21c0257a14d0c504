package ui

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle

	mouseButtonCount
)

// Key is the subset of keyboard keys widget dispatch reacts to. Hosts
// translate their native key codes; anything else need not be
// forwarded (printable input arrives through InputText instead).
type Key uint8

const (
	KeyUnknown Key = iota
	KeyShift
	KeyCtrl
	KeyAlt
	KeyBackspace
	KeyReturn
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd

	keyCount
)

type eventKind uint8

const (
	evMouseMove eventKind = iota
	evMouseDown
	evMouseUp
	evKeyDown
	evKeyUp
	evText
	evScroll
)

type event struct {
	kind eventKind
	x, y float32
	btn  MouseButton
	key  Key
	text string
}

// input is the per-frame snapshot widget dispatch reads. Absolute
// state (position, held buttons/keys) persists across frames; deltas
// (pressed, released, text, scroll) are rebuilt from the event queue
// at every Begin.
type input struct {
	mouseX, mouseY   float32
	deltaX, deltaY   float32
	down             [mouseButtonCount]bool
	pressed          [mouseButtonCount]bool
	released         [mouseButtonCount]bool
	keyDown          [keyCount]bool
	keyPressed       [keyCount]bool
	scrollX, scrollY float32
	text             []rune
}

// InputMouseMove queues a pointer move. Like every Input function it
// may be called any number of times between End and the next Begin; the
// queued events touch no widget state until the next frame dispatches.
func (c *Context) InputMouseMove(x, y float32) {
	c.queue = append(c.queue, event{kind: evMouseMove, x: x, y: y})
}

// InputMouseDown queues a button press at (x, y).
func (c *Context) InputMouseDown(x, y float32, btn MouseButton) {
	c.queue = append(c.queue, event{kind: evMouseDown, x: x, y: y, btn: btn})
}

// InputMouseUp queues a button release at (x, y).
func (c *Context) InputMouseUp(x, y float32, btn MouseButton) {
	c.queue = append(c.queue, event{kind: evMouseUp, x: x, y: y, btn: btn})
}

// InputKeyDown queues a key press. Keys outside the recognized set are
// dropped when the queue is folded.
func (c *Context) InputKeyDown(k Key) {
	c.queue = append(c.queue, event{kind: evKeyDown, key: k})
}

// InputKeyUp queues a key release.
func (c *Context) InputKeyUp(k Key) {
	c.queue = append(c.queue, event{kind: evKeyUp, key: k})
}

// InputText queues printable text, typically from the host's text or
// char callback.
func (c *Context) InputText(s string) {
	c.queue = append(c.queue, event{kind: evText, text: s})
}

// InputScroll queues a scroll wheel delta in pixels.
func (c *Context) InputScroll(dx, dy float32) {
	c.queue = append(c.queue, event{kind: evScroll, x: dx, y: dy})
}

// foldInput replays the queued events into the frame snapshot. Called
// once per Begin; the queue is drained afterwards.
func (c *Context) foldInput() {
	in := &c.in
	prevX, prevY := in.mouseX, in.mouseY
	for i := range in.pressed {
		in.pressed[i] = false
		in.released[i] = false
	}
	for i := range in.keyPressed {
		in.keyPressed[i] = false
	}
	in.scrollX, in.scrollY = 0, 0
	in.text = in.text[:0]

	for _, ev := range c.queue {
		switch ev.kind {
		case evMouseMove:
			in.mouseX, in.mouseY = ev.x, ev.y
		case evMouseDown:
			in.mouseX, in.mouseY = ev.x, ev.y
			if ev.btn < mouseButtonCount {
				in.down[ev.btn] = true
				in.pressed[ev.btn] = true
			}
		case evMouseUp:
			in.mouseX, in.mouseY = ev.x, ev.y
			if ev.btn < mouseButtonCount {
				in.down[ev.btn] = false
				in.released[ev.btn] = true
			}
		case evKeyDown:
			if ev.key < keyCount {
				in.keyDown[ev.key] = true
				in.keyPressed[ev.key] = true
			}
		case evKeyUp:
			if ev.key < keyCount {
				in.keyDown[ev.key] = false
			}
		case evText:
			in.text = append(in.text, []rune(ev.text)...)
		case evScroll:
			in.scrollX += ev.x
			in.scrollY += ev.y
		}
	}
	c.queue = c.queue[:0]

	in.deltaX = in.mouseX - prevX
	in.deltaY = in.mouseY - prevY
}

func (in *input) mouseOver(r Rect) bool {
	return r.Contains(in.mouseX, in.mouseY)
}
