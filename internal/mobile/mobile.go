//go:build android

package mobile

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"time"

	"go.uber.org/zap"
	mapp "golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/gl"

	"csethon/internal/app"
	"csethon/internal/audio"
	"csethon/internal/config"
)

type Options struct {
	Config config.Config
	App    app.Options
	Logger *zap.Logger
}

const blitVertSrc = `
attribute vec2 aPos;
attribute vec2 aUV;
varying vec2 vUV;
void main() {
  vUV = aUV;
  gl_Position = vec4(aPos, 0.0, 1.0);
}`

const blitFragSrc = `
precision mediump float;
varying vec2 vUV;
uniform sampler2D uTex;
void main() {
  gl_FragColor = texture2D(uTex, vUV);
}`

// blitter draws the composed frame over the whole surface.
type blitter struct {
	prog gl.Program
	vbo  gl.Buffer
	tex  gl.Texture
	aPos gl.Attrib
	aUV  gl.Attrib
	uTex gl.Uniform

	texW, texH int
}

func f32bytes(vals []float32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func compileShader(glctx gl.Context, kind gl.Enum, src string) (gl.Shader, error) {
	sh := glctx.CreateShader(kind)
	glctx.ShaderSource(sh, src)
	glctx.CompileShader(sh)
	if glctx.GetShaderi(sh, gl.COMPILE_STATUS) == 0 {
		log := glctx.GetShaderInfoLog(sh)
		glctx.DeleteShader(sh)
		return gl.Shader{}, fmt.Errorf("shader compile failed: %s", log)
	}
	return sh, nil
}

func linkProgram(glctx gl.Context, vertSrc, fragSrc string) (gl.Program, error) {
	vs, err := compileShader(glctx, gl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return gl.Program{}, err
	}
	fs, err := compileShader(glctx, gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		glctx.DeleteShader(vs)
		return gl.Program{}, err
	}
	prog := glctx.CreateProgram()
	glctx.AttachShader(prog, vs)
	glctx.AttachShader(prog, fs)
	glctx.LinkProgram(prog)
	glctx.DeleteShader(vs)
	glctx.DeleteShader(fs)
	if glctx.GetProgrami(prog, gl.LINK_STATUS) == 0 {
		log := glctx.GetProgramInfoLog(prog)
		glctx.DeleteProgram(prog)
		return gl.Program{}, fmt.Errorf("program link failed: %s", log)
	}
	return prog, nil
}

func newBlitter(glctx gl.Context) (*blitter, error) {
	prog, err := linkProgram(glctx, blitVertSrc, blitFragSrc)
	if err != nil {
		return nil, err
	}
	b := &blitter{prog: prog}

	// Row 0 of the frame is the top of the screen.
	verts := []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		1, 1, 1, 0,
	}
	b.vbo = glctx.CreateBuffer()
	glctx.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	glctx.BufferData(gl.ARRAY_BUFFER, f32bytes(verts), gl.STATIC_DRAW)

	b.tex = glctx.CreateTexture()
	glctx.ActiveTexture(gl.TEXTURE0)
	glctx.BindTexture(gl.TEXTURE_2D, b.tex)
	glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	b.aPos = glctx.GetAttribLocation(prog, "aPos")
	b.aUV = glctx.GetAttribLocation(prog, "aUV")
	b.uTex = glctx.GetUniformLocation(prog, "uTex")
	return b, nil
}

func (b *blitter) destroy(glctx gl.Context) {
	glctx.DeleteBuffer(b.vbo)
	glctx.DeleteTexture(b.tex)
	glctx.DeleteProgram(b.prog)
}

func (b *blitter) draw(glctx gl.Context, frame *image.RGBA, fbW, fbH int) {
	glctx.Viewport(0, 0, fbW, fbH)
	glctx.ClearColor(0, 0, 0, 1)
	glctx.Clear(gl.COLOR_BUFFER_BIT)

	r := frame.Bounds()
	w, h := r.Dx(), r.Dy()
	if w == 0 || h == 0 {
		return
	}
	glctx.ActiveTexture(gl.TEXTURE0)
	glctx.BindTexture(gl.TEXTURE_2D, b.tex)
	// GLES2 has no UNPACK_ROW_LENGTH; the frame is tightly packed.
	if w != b.texW || h != b.texH {
		glctx.TexImage2D(gl.TEXTURE_2D, 0, int(gl.RGBA), w, h, gl.RGBA, gl.UNSIGNED_BYTE, frame.Pix)
		b.texW, b.texH = w, h
	} else {
		glctx.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, frame.Pix)
	}

	glctx.UseProgram(b.prog)
	glctx.Uniform1i(b.uTex, 0)
	glctx.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	glctx.EnableVertexAttribArray(b.aPos)
	glctx.VertexAttribPointer(b.aPos, 2, gl.FLOAT, false, 16, 0)
	glctx.EnableVertexAttribArray(b.aUV)
	glctx.VertexAttribPointer(b.aUV, 2, gl.FLOAT, false, 16, 8)
	glctx.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	glctx.DisableVertexAttribArray(b.aPos)
	glctx.DisableVertexAttribArray(b.aUV)
}

// Run blocks in the x/mobile event loop until the activity dies.
func Run(opts Options) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("mobile")
	cfg := opts.Config

	player := audio.New(audio.Options{
		Enabled:    cfg.Audio.Enabled,
		SampleRate: config.SampleRate,
		Volume:     cfg.Audio.Volume,
		Logger:     log,
	})
	defer player.Close()

	appOpts := opts.App
	appOpts.Config = cfg
	appOpts.Audio = player
	start := time.Now()
	appOpts.Start = start
	a := app.New(appOpts)
	defer a.Close()

	mapp.Main(func(m mapp.App) {
		var (
			glctx    gl.Context
			blit     *blitter
			gesture  Gesture
			fbW, fbH int
			clock    = start
			last     time.Time
		)
		for e := range m.Events() {
			switch e := m.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					ctx, ok := e.DrawContext.(gl.Context)
					if !ok {
						continue
					}
					b, err := newBlitter(ctx)
					if err != nil {
						log.Error("gl setup failed", zap.Error(err))
						continue
					}
					glctx, blit = ctx, b
					last = time.Now()
					a.Start()
					m.Send(paint.Event{})
				case lifecycle.CrossOff:
					if blit != nil {
						blit.destroy(glctx)
					}
					glctx, blit = nil, nil
				}
				if e.To == lifecycle.StageDead {
					return
				}

			case size.Event:
				fbW, fbH = e.WidthPx, e.HeightPx
				a.Resize(fbW, fbH)

			case touch.Event:
				act := gesture.Handle(e)
				if act.Scroll != 0 {
					a.Scroll(act.Scroll)
				}
				if act.Tap {
					if _, err := a.Click(act.X, act.Y); err != nil {
						log.Warn("tap failed", zap.Error(err))
					}
				}

			case paint.Event:
				if blit == nil || fbW <= 0 || fbH <= 0 {
					continue
				}
				now := time.Now()
				clock = clock.Add(min(now.Sub(last), config.MaxFrameDelta))
				last = now
				blit.draw(glctx, a.Frame(clock), fbW, fbH)
				m.Publish()
				m.Send(paint.Event{})
			}
		}
	})
}
