// Package glbackend renders ui command lists with OpenGL 3.3 core.
// Quads are batched into one dynamic mesh and flushed on texture or
// scissor changes.
package glbackend

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/Kuaralaboratories/microui/colors"
	"github.com/Kuaralaboratories/microui/text"
	"github.com/Kuaralaboratories/microui/ui"
)

// Vertex: pos2 + color4 + uv2 => 8 floats
const vStride = 8
const vertsPerQuad = 4
const indsPerQuad = 6

type Renderer struct {
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
	locVP   int32
	locTex  int32

	white   uint32
	atlases map[*text.Face]uint32
	curTex  uint32

	verts     []float32
	inds      []uint32
	quadCount int
	maxQuads  int

	fbW, fbH int
	scaleX   float32
	scaleY   float32
	clips    []ui.Rect

	vp [16]float32
}

// New compiles the quad pipeline and allocates the batch mesh. A GL
// context must be current.
func New(maxQuads int) (*Renderer, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	r := &Renderer{maxQuads: maxQuads, atlases: make(map[*text.Face]uint32)}

	var err error
	r.program, err = makeProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	r.locVP = gl.GetUniformLocation(r.program, gl.Str("uVP\x00"))
	r.locTex = gl.GetUniformLocation(r.program, gl.Str("uTex\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, maxQuads*vertsPerQuad*vStride*4, nil, gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, maxQuads*indsPerQuad*4, nil, gl.DYNAMIC_DRAW)

	const stride = vStride * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(6*4)))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	// 1x1 white texture for solid quads (slot shared with glyph draws).
	whitePix := []byte{255, 255, 255, 255}
	r.white = makeTexture(1, 1, whitePix)

	r.verts = make([]float32, 0, maxQuads*vertsPerQuad*vStride)
	r.inds = make([]uint32, 0, maxQuads*indsPerQuad)
	return r, nil
}

func (r *Renderer) Shutdown() {
	for _, tex := range r.atlases {
		gl.DeleteTextures(1, &tex)
	}
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize sets the framebuffer size in pixels.
func (r *Renderer) Resize(w, h int) {
	r.fbW, r.fbH = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *Renderer) Clear(c colors.Color) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Render executes one finalized frame. w and h are the logical size
// the frame was laid out against; the scissor conversion accounts for
// a larger framebuffer (hidpi).
func (r *Renderer) Render(w, h float32, frame ui.Frame) {
	if w <= 0 || h <= 0 {
		return
	}
	r.scaleX = float32(r.fbW) / w
	r.scaleY = float32(r.fbH) / h
	r.vp = ortho(w, h)
	r.clips = r.clips[:0]
	r.curTex = r.white

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.SCISSOR_TEST)

	frame.Each(func(cmd *ui.Command) {
		switch cmd.Kind {
		case ui.CommandRect:
			r.pushRect(cmd.Rect, cmd.Color)
		case ui.CommandText:
			r.pushText(cmd)
		case ui.CommandIcon:
			r.pushIcon(cmd.Icon, cmd.Rect, cmd.Color)
		case ui.CommandClipPush:
			r.flush()
			r.clips = append(r.clips, cmd.Rect)
			r.applyScissor()
		case ui.CommandClipPop:
			r.flush()
			if n := len(r.clips); n > 0 {
				r.clips = r.clips[:n-1]
			}
			r.applyScissor()
		}
	})
	r.flush()
	gl.Disable(gl.SCISSOR_TEST)
}

func (r *Renderer) applyScissor() {
	if len(r.clips) == 0 {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	c := r.clips[len(r.clips)-1]
	gl.Enable(gl.SCISSOR_TEST)
	// GL scissor origin is the bottom-left corner.
	x := int32(c.X * r.scaleX)
	y := int32(float32(r.fbH) - (c.Y+c.H)*r.scaleY)
	gl.Scissor(x, y, int32(c.W*r.scaleX), int32(c.H*r.scaleY))
}

// --- quad emission ---

func (r *Renderer) pushRect(rect ui.Rect, col colors.Color) {
	r.quad(r.white, rect.X+rect.W/2, rect.Y+rect.H/2, rect.W, rect.H, col, 0, 0, 0, 1, 1)
}

func (r *Renderer) pushText(cmd *ui.Command) {
	face, ok := cmd.Font.(*text.Face)
	if !ok {
		// Unknown font implementation: draw an underline so missing
		// glyph plumbing is visible instead of silent.
		r.pushRect(ui.Rect{X: cmd.Rect.X, Y: cmd.Rect.Y + cmd.Rect.H - 1, W: cmd.Rect.W, H: 1}, cmd.Color)
		return
	}
	tex := r.atlas(face)

	penX := cmd.Rect.X
	baseY := cmd.Rect.Y + face.Ascent
	prev := rune(-1)
	for _, ch := range cmd.Text {
		g, ok := face.Glyphs[ch]
		if !ok {
			if sp, ok2 := face.Glyphs[' ']; ok2 {
				penX += sp.Advance
			}
			prev = ch
			continue
		}
		if prev >= 0 {
			penX += face.Kern(prev, ch)
		}
		if g.W > 0 && g.H > 0 {
			left := penX + g.BearingX
			top := baseY - g.BearingY
			cx := left + float32(g.W)*0.5
			cy := top + float32(g.H)*0.5
			r.quad(tex, cx, cy, float32(g.W), float32(g.H), cmd.Color, 0, g.U0, g.V0, g.U1, g.V1)
		}
		penX += g.Advance
		prev = ch
	}
}

func (r *Renderer) pushIcon(icon ui.Icon, rect ui.Rect, col colors.Color) {
	cx := rect.X + rect.W/2
	cy := rect.Y + rect.H/2
	size := rect.W
	if rect.H < size {
		size = rect.H
	}
	arm := size * 0.5
	thick := maxf(1, size*0.1)
	const quarter = math.Pi / 4

	switch icon {
	case ui.IconClose:
		r.quad(r.white, cx, cy, arm, thick, col, quarter, 0, 0, 1, 1)
		r.quad(r.white, cx, cy, arm, thick, col, -quarter, 0, 0, 1, 1)
	case ui.IconCheck:
		r.quad(r.white, cx-arm*0.18, cy+arm*0.1, arm*0.45, thick, col, quarter, 0, 0, 1, 1)
		r.quad(r.white, cx+arm*0.12, cy, arm*0.7, thick, col, -quarter, 0, 0, 1, 1)
	case ui.IconCollapsed:
		r.quad(r.white, cx, cy, arm, thick, col, 0, 0, 0, 1, 1)
		r.quad(r.white, cx, cy, thick, arm, col, 0, 0, 0, 1, 1)
	case ui.IconExpanded:
		r.quad(r.white, cx, cy, arm, thick, col, 0, 0, 0, 1, 1)
	}
}

func (r *Renderer) quad(tex uint32, cx, cy, w, h float32, col colors.Color, rot float32, u0, v0, u1, v1 float32) {
	if tex != r.curTex || r.quadCount >= r.maxQuads {
		r.flush()
		r.curTex = tex
	}

	halfW := w * 0.5
	halfH := h * 0.5
	corners := [4][4]float32{
		{-halfW, -halfH, u0, v0},
		{halfW, -halfH, u1, v0},
		{-halfW, halfH, u0, v1},
		{halfW, halfH, u1, v1},
	}
	cos, sin := float32(math.Cos(float64(rot))), float32(math.Sin(float64(rot)))

	start := uint32(len(r.verts) / vStride)
	for _, p := range corners {
		rx := p[0]*cos - p[1]*sin + cx
		ry := p[0]*sin + p[1]*cos + cy
		r.verts = append(r.verts,
			rx, ry,
			col[0], col[1], col[2], col[3],
			p[2], p[3],
		)
	}
	r.inds = append(r.inds,
		start+0, start+2, start+1,
		start+1, start+2, start+3,
	)
	r.quadCount++
}

func (r *Renderer) flush() {
	if r.quadCount == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locVP, 1, false, &r.vp[0])
	gl.Uniform1i(r.locTex, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.curTex)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.verts)*4, gl.Ptr(r.verts))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(r.inds)*4, gl.Ptr(r.inds))

	gl.DrawElements(gl.TRIANGLES, int32(len(r.inds)), gl.UNSIGNED_INT, nil)

	gl.BindVertexArray(0)
	gl.UseProgram(0)

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	r.quadCount = 0
}

// atlas returns the GL texture for a face, uploading it on first use.
func (r *Renderer) atlas(face *text.Face) uint32 {
	if tex, ok := r.atlases[face]; ok {
		return tex
	}
	tex := makeTexture(face.AtlasW, face.AtlasH, face.Atlas.Pix)
	r.atlases[face] = tex
	return tex
}

func makeTexture(w, h int, pixels []byte) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// ortho maps (0,0)..(w,h) with Y down onto clip space, column major.
func ortho(w, h float32) [16]float32 {
	return [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// --- shader utilities ---

const vertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec4 aColor;
layout(location=2) in vec2 aUV;
uniform mat4 uVP;
out vec4 vColor;
out vec2 vUV;
void main() {
    vColor = aColor;
    vUV = aUV;
    gl_Position = uVP * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const fragmentSource = `
#version 330 core
in vec4 vColor;
in vec2 vUV;
uniform sampler2D uTex;
out vec4 FragColor;
void main() {
    FragColor = vColor * texture(uTex, vUV);
}
` + "\x00"

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
