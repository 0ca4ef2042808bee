//go:build !android

package desktop

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"csethon/internal/canvas"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer draws the intro shader programs and then the composed software
// frame as one blended texture over them.
type Renderer struct {
	quadVAO uint32
	quadVBO uint32

	compProg   uint32
	compUFrame int32

	frameTex   uint32
	texW, texH int

	programs []*program
}

func NewRenderer() (*Renderer, error) {
	compProg, err := linkProgram(quadVertSrc, compositeFragSrc)
	if err != nil {
		return nil, fmt.Errorf("composite program: %w", err)
	}
	r := &Renderer{compProg: compProg}

	// Unit quad, 2 triangles.
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.UseProgram(compProg)
	r.compUFrame = gl.GetUniformLocation(compProg, gl.Str("uFrame\x00"))
	gl.Uniform1i(r.compUFrame, 0)

	gl.GenTextures(1, &r.frameTex)
	gl.BindTexture(gl.TEXTURE_2D, r.frameTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, p := range append([]*program(nil), r.programs...) {
		p.Release()
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.frameTex != 0 {
		gl.DeleteTextures(1, &r.frameTex)
	}
	if r.compProg != 0 {
		gl.DeleteProgram(r.compProg)
	}
}

// Compile links a fullscreen fragment program. It makes the renderer a
// canvas.ShaderContext.
func (r *Renderer) Compile(name, fragSrc string) (canvas.Program, error) {
	id, err := linkProgram(quadVertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}
	p := &program{
		r:     r,
		id:    id,
		uTime: gl.GetUniformLocation(id, gl.Str("uTime\x00")),
		uRes:  gl.GetUniformLocation(id, gl.Str("uResolution\x00")),
	}
	r.programs = append(r.programs, p)
	return p, nil
}

// program is a compiled intro background. Draw only records the request;
// the renderer issues it at the start of the next frame it renders.
type program struct {
	r        *Renderer
	id       uint32
	uTime    int32
	uRes     int32
	pending  bool
	t        float64
	w, h     int
	released bool
}

func (p *program) Draw(t float64, w, h int) {
	p.pending, p.t, p.w, p.h = true, t, w, h
}

func (p *program) Release() {
	if p.released {
		return
	}
	p.released = true
	gl.DeleteProgram(p.id)
	for i, q := range p.r.programs {
		if q == p {
			p.r.programs = append(p.r.programs[:i], p.r.programs[i+1:]...)
			break
		}
	}
}

// Render draws one window frame: pending shader backgrounds, then frame
// blended over them.
func (r *Renderer) Render(frame *image.RGBA, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindVertexArray(r.quadVAO)

	gl.Disable(gl.BLEND)
	for _, p := range r.programs {
		if !p.pending {
			continue
		}
		p.pending = false
		gl.UseProgram(p.id)
		gl.Uniform1f(p.uTime, float32(p.t))
		gl.Uniform2f(p.uRes, float32(p.w), float32(p.h))
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}

	if frame != nil {
		r.upload(frame)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
		gl.UseProgram(r.compProg)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.frameTex)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}
	gl.BindVertexArray(0)
}

// upload copies the frame into the texture, reallocating on size change.
// image.RGBA is premultiplied, matching the blend function.
func (r *Renderer) upload(frame *image.RGBA) {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, r.frameTex)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(frame.Stride/4))
	if w != r.texW || h != r.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
		r.texW, r.texH = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
}
