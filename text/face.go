// Package text rasterizes TrueType/OpenType fonts into a glyph atlas.
// A Face measures strings for layout and carries the CPU-side atlas
// image so a renderer can upload it once and draw glyphs as textured
// quads.
package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph is one packed glyph: pixel metrics plus its UV rect in the atlas.
type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // distance from baseline to glyph top
	W, H     int     // glyph bitmap size
	U0, V0   float32
	U1, V1   float32
}

// Face is a rasterized font at a fixed pixel size.
type Face struct {
	SizePx  float32
	Ascent  float32
	Descent float32 // negative, below the baseline
	LineGap float32

	Glyphs map[rune]Glyph

	// Atlas is the packed glyph sheet: white glyphs with alpha
	// coverage on a transparent background.
	Atlas          *image.RGBA
	AtlasW, AtlasH int

	face font.Face
}

// Load reads a TTF/OTF file and rasterizes it at sizePx.
func Load(path string, sizePx float32) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return Parse(data, sizePx)
}

// Parse rasterizes TTF/OTF bytes at sizePx. The printable Latin-1
// range (32..255) is packed; missing runes fall back to the space
// advance when measured.
func Parse(ttf []byte, sizePx float32) (*Face, error) {
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	var measure []meas
	for rr := rune(32); rr <= rune(255); rr++ {
		br, adv, ok := face.GlyphBounds(rr)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r:   rr,
			w:   (br.Max.X - br.Min.X).Round(),
			h:   (br.Max.Y - br.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Round()),
			by:  float32(-br.Min.Y.Round()),
		})
	}

	// Shelf packer: rows left to right, grow the atlas until it fits.
	const padding = 2
	atlasSize := 256
	var pos map[rune]image.Point
	for {
		x, y, rowH := padding, padding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))

		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if x+g.w+padding > atlasSize {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if y+g.h+padding > atlasSize {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + padding
			if g.h > rowH {
				rowH = g.h
			}
		}

		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > 4096 {
			return nil, fmt.Errorf("font atlas too large (>%d)", 4096)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.RGBA{}}, image.Point{}, draw.Src)

	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		gl := Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
		}
		if g.w > 0 && g.h > 0 {
			p := pos[g.r]
			// The drawer dot sits on the baseline; place it so the
			// glyph's ink box lands exactly at p.
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))

			gl.U0 = float32(p.X) / float32(atlasSize)
			gl.V0 = float32(p.Y) / float32(atlasSize)
			gl.U1 = float32(p.X+g.w) / float32(atlasSize)
			gl.V1 = float32(p.Y+g.h) / float32(atlasSize)
		}
		glyphs[g.r] = gl
	}

	return &Face{
		SizePx:  sizePx,
		Ascent:  ascent,
		Descent: descent,
		LineGap: lineGap,
		Glyphs:  glyphs,
		Atlas:   dst,
		AtlasW:  atlasSize,
		AtlasH:  atlasSize,
		face:    face,
	}, nil
}

// Close releases the underlying font face.
func (f *Face) Close() error {
	if f.face == nil {
		return nil
	}
	err := f.face.Close()
	f.face = nil
	return err
}

// TextWidth reports the advance width of s in pixels, kerning included.
func (f *Face) TextWidth(s string) float32 {
	var w float32
	prev := rune(-1)
	for _, r := range s {
		g, ok := f.Glyphs[r]
		if !ok {
			g = f.Glyphs[' ']
		}
		if prev >= 0 && f.face != nil {
			w += float32(f.face.Kern(prev, r).Round())
		}
		w += g.Advance
		prev = r
	}
	return w
}

// TextHeight reports the line height in pixels.
func (f *Face) TextHeight() float32 {
	return f.Ascent - f.Descent + f.LineGap
}

// Kern reports the kerning adjustment between two runes in pixels.
func (f *Face) Kern(a, b rune) float32 {
	if f.face == nil {
		return 0
	}
	return float32(f.face.Kern(a, b).Round())
}
