package canvas

// Surface is a drawing target bound to a viewport. Context2D returns nil
// when no 2D context can be acquired.
type Surface interface {
	Context2D() Context
	Viewport() *Viewport
}

// ShaderSurface is a Surface that may also offer a GPU shader context.
// Shader returns nil when none is available.
type ShaderSurface interface {
	Surface
	Shader() ShaderContext
}

// ShaderContext compiles fullscreen fragment programs. The program receives
// uTime (seconds) and uResolution (pixels) uniforms and the vUV varying.
type ShaderContext interface {
	Compile(name, fragSrc string) (Program, error)
}

type Program interface {
	Draw(t float64, w, h int)
	Release()
}

// Layer is a Surface backed by a software Image, optionally paired with a
// shader context supplied by the host.
type Layer struct {
	img    *Image
	vp     *Viewport
	shader ShaderContext
}

func NewLayer(vp *Viewport) *Layer {
	w, h := vp.Size()
	return &Layer{img: NewImage(w, h), vp: vp}
}

// WithShader attaches a shader context to the layer.
func (l *Layer) WithShader(sc ShaderContext) *Layer {
	l.shader = sc
	return l
}

func (l *Layer) Context2D() Context {
	if l.img == nil {
		return nil
	}
	return l.img
}

func (l *Layer) Image() *Image { return l.img }

func (l *Layer) Viewport() *Viewport { return l.vp }

func (l *Layer) Shader() ShaderContext { return l.shader }
