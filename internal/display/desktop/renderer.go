package desktop

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"outbreak/internal/sim"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	prog uint32
	vao  uint32
	vbo  uint32

	uScale      int32
	uOffset     int32
	uResolution int32

	buf []float32
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(agentVertSrc, agentFragSrc)
	if err != nil {
		return nil, fmt.Errorf("agent program: %w", err)
	}
	r := &Renderer{prog: prog}

	// Streaming buffer for point sprites, floatsPerSprite floats each.
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(floatsPerSprite * 4)
	// aPlanePos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))

	gl.UseProgram(prog)
	r.uScale = gl.GetUniformLocation(prog, gl.Str("uScale\x00"))
	r.uOffset = gl.GetUniformLocation(prog, gl.Str("uOffset\x00"))
	r.uResolution = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

// Draw clears to the background colour, draws every agent as a disc and
// the population strip along the top edge.
func (r *Renderer) Draw(f sim.Frame, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	br, bg, bb := sim.Palette.Background.Floats()
	gl.ClearColor(br, bg, bb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	v := fitView(f.Width, f.Height, fbW, fbH)
	r.buf = appendSprites(r.buf, f.Agents)
	if n := len(r.buf) / floatsPerSprite; n > 0 {
		gl.UseProgram(r.prog)
		gl.BindVertexArray(r.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.Uniform1f(r.uScale, float32(v.Scale))
		gl.Uniform2f(r.uOffset, float32(v.OffsetX), float32(v.OffsetY))
		gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))

		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.BufferData(gl.ARRAY_BUFFER, len(r.buf)*4, gl.Ptr(r.buf), gl.STREAM_DRAW)
		gl.DrawArrays(gl.POINTS, 0, int32(n))
		gl.Disable(gl.BLEND)
		gl.BindVertexArray(0)
	}

	r.drawStrip(f.Report.Counts, fbW, fbH)
}

// drawStrip paints the population strip with scissored clears; GL's
// window origin is bottom-left, so the strip sits at fbH-hudHeight.
func (r *Renderer) drawStrip(c sim.Counts, fbW, fbH int) {
	gl.Enable(gl.SCISSOR_TEST)
	for _, s := range stripSegments(c, fbW) {
		if s.W <= 0 {
			continue
		}
		cr, cg, cb := s.Color.Floats()
		gl.Scissor(int32(s.X), int32(fbH-hudHeight), int32(s.W), hudHeight)
		gl.ClearColor(cr, cg, cb, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}
	gl.Disable(gl.SCISSOR_TEST)
}
