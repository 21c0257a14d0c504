// Package ebitenbackend hosts a ui.Context inside an ebiten game.
// Input is pumped from ebiten's polled state into the context queue on
// every tick; the finalized command list is rendered in Draw.
package ebitenbackend

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	textv2 "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Kuaralaboratories/microui/colors"
	"github.com/Kuaralaboratories/microui/ui"
)

// whitePixel is the shared 1x1 source for solid quads.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(toRGBA(colors.White))
}

// Face adapts a text/v2 face to ui.Font.
type Face struct {
	F textv2.Face
}

func (f Face) TextWidth(s string) float32 {
	w, _ := textv2.Measure(s, f.F, 0)
	return float32(w)
}

func (f Face) TextHeight() float32 {
	m := f.F.Metrics()
	return float32(m.HAscent + m.HDescent)
}

// DefaultFace builds a Go Regular face at the given pixel size.
func DefaultFace(size float64) (Face, error) {
	src, err := textv2.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return Face{}, err
	}
	return Face{F: &textv2.GoTextFace{Source: src, Size: size}}, nil
}

// Game runs one ui.Context as an ebiten.Game. Declare is called every
// tick between Begin and End; Tick, when set, runs before Declare
// (animation state, timers). A frame error stops the game.
type Game struct {
	Ctx     *ui.Context
	Declare func(*ui.Context)
	Tick    func()

	Background colors.Color

	frame         ui.Frame
	width, height int
	err           error
}

func NewGame(ctx *ui.Context, declare func(*ui.Context)) *Game {
	return &Game{Ctx: ctx, Declare: declare, Background: colors.DarkGray}
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	g.pumpInput()
	if g.Tick != nil {
		g.Tick()
	}

	g.Ctx.Begin(float32(g.width), float32(g.height))
	g.Declare(g.Ctx)
	frame, err := g.Ctx.End()
	if err != nil {
		g.err = err
		return err
	}
	g.frame = frame
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(g.Background))

	// The clip stack swaps the draw target for a subimage view.
	target := screen
	var clips []*ebiten.Image

	g.frame.Each(func(cmd *ui.Command) {
		switch cmd.Kind {
		case ui.CommandRect:
			fillRect(target, cmd.Rect, cmd.Color)
		case ui.CommandText:
			drawText(target, cmd)
		case ui.CommandIcon:
			drawIcon(target, cmd.Icon, cmd.Rect, cmd.Color)
		case ui.CommandClipPush:
			r := image.Rect(int(cmd.Rect.X), int(cmd.Rect.Y), int(cmd.Rect.X+cmd.Rect.W), int(cmd.Rect.Y+cmd.Rect.H))
			target = screen.SubImage(r).(*ebiten.Image)
			clips = append(clips, target)
		case ui.CommandClipPop:
			if n := len(clips); n > 0 {
				clips = clips[:n-1]
			}
			if n := len(clips); n > 0 {
				target = clips[n-1]
			} else {
				target = screen
			}
		}
	})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// --- input pump ---

var buttonMap = [...]struct {
	eb ebiten.MouseButton
	ui ui.MouseButton
}{
	{ebiten.MouseButtonLeft, ui.MouseLeft},
	{ebiten.MouseButtonRight, ui.MouseRight},
	{ebiten.MouseButtonMiddle, ui.MouseMiddle},
}

var keyMap = [...]struct {
	eb ebiten.Key
	ui ui.Key
}{
	{ebiten.KeyShift, ui.KeyShift},
	{ebiten.KeyControl, ui.KeyCtrl},
	{ebiten.KeyAlt, ui.KeyAlt},
	{ebiten.KeyBackspace, ui.KeyBackspace},
	{ebiten.KeyEnter, ui.KeyReturn},
	{ebiten.KeyArrowLeft, ui.KeyLeft},
	{ebiten.KeyArrowRight, ui.KeyRight},
	{ebiten.KeyHome, ui.KeyHome},
	{ebiten.KeyEnd, ui.KeyEnd},
}

func (g *Game) pumpInput() {
	x, y := ebiten.CursorPosition()
	fx, fy := float32(x), float32(y)
	g.Ctx.InputMouseMove(fx, fy)

	for _, m := range buttonMap {
		if inpututil.IsMouseButtonJustPressed(m.eb) {
			g.Ctx.InputMouseDown(fx, fy, m.ui)
		}
		if inpututil.IsMouseButtonJustReleased(m.eb) {
			g.Ctx.InputMouseUp(fx, fy, m.ui)
		}
	}

	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.eb) || repeats(m.eb) {
			g.Ctx.InputKeyDown(m.ui)
		}
		if inpututil.IsKeyJustReleased(m.eb) {
			g.Ctx.InputKeyUp(m.ui)
		}
	}

	if chars := ebiten.AppendInputChars(nil); len(chars) > 0 {
		g.Ctx.InputText(string(chars))
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		const step = 30
		g.Ctx.InputScroll(float32(-wx)*step, float32(-wy)*step)
	}
}

// repeats reports key auto-repeat: after half a second held, fire
// every four ticks.
func repeats(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d >= 30 && (d-30)%4 == 0
}

// --- draw helpers ---

func toRGBA(c colors.Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c[0]) * 255),
		G: uint8(clamp01(c[1]) * 255),
		B: uint8(clamp01(c[2]) * 255),
		A: uint8(clamp01(c[3]) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func fillRect(dst *ebiten.Image, r ui.Rect, c colors.Color) {
	quad(dst, r.X+r.W/2, r.Y+r.H/2, r.W, r.H, 0, c)
}

func quad(dst *ebiten.Image, cx, cy, w, h float32, rot float64, c colors.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(-w/2), float64(-h/2))
	if rot != 0 {
		op.GeoM.Rotate(rot)
	}
	op.GeoM.Translate(float64(cx), float64(cy))
	op.ColorScale.Scale(c[0], c[1], c[2], c[3])
	dst.DrawImage(whitePixel, op)
}

func drawText(dst *ebiten.Image, cmd *ui.Command) {
	face, ok := cmd.Font.(Face)
	if !ok {
		return
	}
	op := &textv2.DrawOptions{}
	op.GeoM.Translate(float64(cmd.Rect.X), float64(cmd.Rect.Y))
	op.ColorScale.Scale(cmd.Color[0], cmd.Color[1], cmd.Color[2], cmd.Color[3])
	textv2.Draw(dst, cmd.Text, face.F, op)
}

func drawIcon(dst *ebiten.Image, icon ui.Icon, r ui.Rect, c colors.Color) {
	cx := r.X + r.W/2
	cy := r.Y + r.H/2
	size := r.W
	if r.H < size {
		size = r.H
	}
	arm := size * 0.5
	thick := arm * 0.2
	if thick < 1 {
		thick = 1
	}
	const quarter = math.Pi / 4

	switch icon {
	case ui.IconClose:
		quad(dst, cx, cy, arm, thick, quarter, c)
		quad(dst, cx, cy, arm, thick, -quarter, c)
	case ui.IconCheck:
		quad(dst, cx-arm*0.18, cy+arm*0.1, arm*0.45, thick, quarter, c)
		quad(dst, cx+arm*0.12, cy, arm*0.7, thick, -quarter, c)
	case ui.IconCollapsed:
		quad(dst, cx, cy, arm, thick, 0, c)
		quad(dst, cx, cy, thick, arm, 0, c)
	case ui.IconExpanded:
		quad(dst, cx, cy, arm, thick, 0, c)
	}
}
