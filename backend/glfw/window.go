// Package glfwbackend hosts a ui.Context in a GLFW window with an
// OpenGL 3.3 core context. Window events are translated into the
// context's input queue; the frame loop is driven by Run.
package glfwbackend

import (
	"log"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Kuaralaboratories/microui/ui"
)

// Config describes the host window.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Window wraps a GLFW window bound to one ui.Context.
type Window struct {
	w   *glfw.Window
	ctx *ui.Context
}

// New creates the window and makes its GL context current. Must be
// called on the main goroutine before any GL work.
func New(cfg Config, ctx *ui.Context) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	log.Printf("GL: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	gw := &Window{w: win, ctx: ctx}

	// Callbacks feed the context's input queue; the queue is folded at
	// the next Begin, so callback timing never races widget dispatch.
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		gw.ctx.InputMouseMove(float32(x), float32(y))
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		btn, ok := translateButton(b)
		if !ok {
			return
		}
		x, y := w.GetCursorPos()
		if action == glfw.Press {
			gw.ctx.InputMouseDown(float32(x), float32(y), btn)
		} else {
			gw.ctx.InputMouseUp(float32(x), float32(y), btn)
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		// GLFW reports wheel-up as positive; the context scrolls
		// content down for positive deltas.
		const step = 30
		gw.ctx.InputScroll(float32(-xoff)*step, float32(-yoff)*step)
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := translateKey(key)
		if k == ui.KeyUnknown {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			gw.ctx.InputKeyDown(k)
		case glfw.Release:
			gw.ctx.InputKeyUp(k)
		}
	})
	win.SetCharCallback(func(_ *glfw.Window, ch rune) {
		gw.ctx.InputText(string(ch))
	})

	return gw, nil
}

func (g *Window) ShouldClose() bool           { return g.w.ShouldClose() }
func (g *Window) RequestClose()               { g.w.SetShouldClose(true) }
func (g *Window) PollEvents()                 { glfw.PollEvents() }
func (g *Window) SwapBuffers()                { g.w.SwapBuffers() }
func (g *Window) Size() (int, int)            { return g.w.GetSize() }
func (g *Window) FramebufferSize() (int, int) { return g.w.GetFramebufferSize() }
func (g *Window) SetTitle(t string)           { g.w.SetTitle(t) }

// Destroy tears down the window and the GLFW library.
func (g *Window) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

// Run drives the frame loop until the window closes. declare runs
// between Begin and End every frame; render receives the finalized
// command list. Run returns the first frame error it sees.
func (g *Window) Run(declare func(*ui.Context), render func(w, h float32, frame ui.Frame)) error {
	for !g.w.ShouldClose() {
		glfw.PollEvents()

		w, h := g.w.GetSize()
		g.ctx.Begin(float32(w), float32(h))
		declare(g.ctx)
		frame, err := g.ctx.End()
		if err != nil {
			return err
		}

		render(float32(w), float32(h), frame)
		g.w.SwapBuffers()
	}
	return nil
}

func translateButton(b glfw.MouseButton) (ui.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return ui.MouseLeft, true
	case glfw.MouseButtonRight:
		return ui.MouseRight, true
	case glfw.MouseButtonMiddle:
		return ui.MouseMiddle, true
	}
	return 0, false
}

func translateKey(k glfw.Key) ui.Key {
	switch k {
	case glfw.KeyLeftShift, glfw.KeyRightShift:
		return ui.KeyShift
	case glfw.KeyLeftControl, glfw.KeyRightControl:
		return ui.KeyCtrl
	case glfw.KeyLeftAlt, glfw.KeyRightAlt:
		return ui.KeyAlt
	case glfw.KeyBackspace:
		return ui.KeyBackspace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return ui.KeyReturn
	case glfw.KeyLeft:
		return ui.KeyLeft
	case glfw.KeyRight:
		return ui.KeyRight
	case glfw.KeyHome:
		return ui.KeyHome
	case glfw.KeyEnd:
		return ui.KeyEnd
	default:
		return ui.KeyUnknown
	}
}
