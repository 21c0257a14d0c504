package main

import (
	"fmt"
	"log"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/Kuaralaboratories/microui/backend/gl"
	"github.com/Kuaralaboratories/microui/backend/glfw"
	"github.com/Kuaralaboratories/microui/colors"
	"github.com/Kuaralaboratories/microui/text"
	"github.com/Kuaralaboratories/microui/ui"
)

type demoState struct {
	counter  int
	checks   [3]bool
	volume   float32
	name     string
	logLines []string
}

func (d *demoState) logf(format string, args ...any) {
	d.logLines = append(d.logLines, fmt.Sprintf(format, args...))
	if len(d.logLines) > 200 {
		d.logLines = d.logLines[len(d.logLines)-200:]
	}
}

func (d *demoState) declare(c *ui.Context) {
	if c.BeginWindow("Demo", ui.NewRect(40, 40, 320, 360), 0) {
		c.LayoutRow([]float32{-1}, 0)
		c.Label("immediate mode, retained nothing")

		c.LayoutRow([]float32{100, -1}, 0)
		if c.Button("count") {
			d.counter++
			d.logf("count = %d", d.counter)
		}
		c.Label(fmt.Sprintf("%d", d.counter))

		c.LayoutRow([]float32{-1, -1, -1}, 0)
		for i := range d.checks {
			c.PushIDInt(i)
			if c.Checkbox("opt", &d.checks[i]) {
				d.logf("opt %d = %v", i, d.checks[i])
			}
			c.PopID()
		}

		c.LayoutRow([]float32{60, -1}, 0)
		c.Label("volume")
		if c.Slider("volume", &d.volume, 0, 11) {
			d.logf("volume = %.2f", d.volume)
		}

		c.LayoutRow([]float32{60, -1}, 0)
		c.Label("name")
		if _, submitted := c.Textbox("name", &d.name); submitted {
			d.logf("hello, %s", d.name)
			d.name = ""
		}

		c.LayoutRow([]float32{-1}, 0)
		c.Text("Drag the title bar to move this window, the wheel scrolls " +
			"whatever panel sits under the pointer, and clicking a window " +
			"raises it above the others.")
		c.EndWindow()
	}

	if c.BeginWindow("Log", ui.NewRect(380, 40, 300, 240), 0) {
		c.LayoutRow([]float32{-1}, 180)
		c.BeginPanel("lines")
		c.LayoutRow([]float32{-1}, 0)
		for i, line := range d.logLines {
			c.PushIDInt(i)
			c.Label(line)
			c.PopID()
		}
		c.EndPanel()
		c.EndWindow()
	}
}

func main() {
	face, err := text.Parse(goregular.TTF, 14)
	if err != nil {
		log.Fatal(err)
	}
	defer face.Close()

	ctx := ui.New(ui.Config{})
	ctx.Style.Font = face

	win, err := glfwbackend.New(glfwbackend.Config{
		Title: "microui demo", Width: 720, Height: 440, VSync: true,
	}, ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer win.Destroy()

	renderer, err := glbackend.New(0)
	if err != nil {
		log.Fatal(err)
	}
	defer renderer.Shutdown()

	state := &demoState{volume: 5}
	background := colors.DarkGray

	err = win.Run(state.declare, func(w, h float32, frame ui.Frame) {
		fw, fh := win.FramebufferSize()
		renderer.Resize(fw, fh)
		renderer.Clear(background)
		renderer.Render(w, h, frame)
	})
	if err != nil {
		log.Fatal(err)
	}
}
