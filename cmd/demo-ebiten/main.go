package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Kuaralaboratories/microui/backend/ebiten"
	"github.com/Kuaralaboratories/microui/ui"
)

// sweep bounces a value between lo and hi with an eased tween.
type sweep struct {
	tween    *gween.Tween
	lo       float32
	hi       float32
	duration float32
	up       bool
	value    float32
}

func newSweep(lo, hi, duration float32) *sweep {
	return &sweep{
		tween:    gween.New(lo, hi, duration, ease.InOutQuad),
		lo:       lo,
		hi:       hi,
		duration: duration,
		up:       true,
		value:    lo,
	}
}

func (s *sweep) update(dt float32) {
	v, done := s.tween.Update(dt)
	s.value = v
	if done {
		from, to := s.hi, s.lo
		if !s.up {
			from, to = s.lo, s.hi
		}
		s.up = !s.up
		s.tween = gween.New(from, to, s.duration, ease.InOutQuad)
	}
}

type demo struct {
	auto    bool
	sweep   *sweep
	manual  float32
	clicks  int
	message string
}

func (d *demo) declare(c *ui.Context) {
	if c.BeginWindow("Tween", ui.NewRect(30, 30, 280, 200), 0) {
		c.LayoutRow([]float32{-1}, 0)
		c.Checkbox("animate", &d.auto)

		c.LayoutRow([]float32{60, -1}, 0)
		c.Label("eased")
		if d.auto {
			v := d.sweep.value
			c.Slider("eased", &v, 0, 10)
		} else {
			c.Slider("eased", &d.sweep.value, 0, 10)
		}

		c.Label("manual")
		c.Slider("manual", &d.manual, 0, 10)

		c.LayoutRow([]float32{100, -1}, 0)
		if c.Button("click") {
			d.clicks++
			d.message = fmt.Sprintf("clicked %d times", d.clicks)
		}
		c.Label(d.message)
		c.EndWindow()
	}
}

func (d *demo) tick() {
	if d.auto {
		d.sweep.update(1.0 / 60.0)
	}
}

func main() {
	face, err := ebitenbackend.DefaultFace(14)
	if err != nil {
		log.Fatal(err)
	}

	ctx := ui.New(ui.Config{})
	ctx.Style.Font = face

	d := &demo{auto: true, sweep: newSweep(0, 10, 2)}

	game := ebitenbackend.NewGame(ctx, d.declare)
	game.Tick = d.tick

	ebiten.SetWindowSize(640, 400)
	ebiten.SetWindowTitle("microui ebiten demo")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
