// Package canvastest provides recording contexts and fake surfaces for
// animator tests.
package canvastest

import (
	"csethon/internal/canvas"
)

type OpKind string

const (
	OpClear          OpKind = "clear"
	OpFillRect       OpKind = "fillRect"
	OpFillText       OpKind = "fillText"
	OpStrokePolyline OpKind = "strokePolyline"
	OpStrokePolygon  OpKind = "strokePolygon"
	OpFillPolygon    OpKind = "fillPolygon"
	OpFillCircle     OpKind = "fillCircle"
	OpStrokeCircle   OpKind = "strokeCircle"
)

// Op is one recorded drawing call.
type Op struct {
	Kind   OpKind
	Color  canvas.Color
	Points []canvas.Point
	Rect   [4]float64
	Text   string
	Size   float64
	Radius float64
	Width  float64
}

// Recorder is a canvas.Context that records every call.
type Recorder struct {
	W, H    int
	Ops     []Op
	Resizes int
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Resize(w, h int) {
	r.W, r.H = w, h
	r.Resizes++
}

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) FillRect(x, y, w, h float64, c canvas.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Color: c, Rect: [4]float64{x, y, w, h}})
}

func (r *Recorder) FillText(text string, x, y, size float64, c canvas.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillText, Color: c, Text: text, Size: size, Points: []canvas.Point{{X: x, Y: y}}})
}

func (r *Recorder) StrokePolyline(pts []canvas.Point, width float64, c canvas.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokePolyline, Color: c, Points: clonePts(pts), Width: width})
}

func (r *Recorder) StrokePolygon(pts []canvas.Point, width float64, c canvas.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokePolygon, Color: c, Points: clonePts(pts), Width: width})
}

func (r *Recorder) FillPolygon(pts []canvas.Point, c canvas.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillPolygon, Color: c, Points: clonePts(pts)})
}

func (r *Recorder) FillCircle(center canvas.Point, radius float64, c canvas.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, Color: c, Points: []canvas.Point{center}, Radius: radius})
}

func (r *Recorder) StrokeCircle(center canvas.Point, radius, width float64, c canvas.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeCircle, Color: c, Points: []canvas.Point{center}, Radius: radius, Width: width})
}

// Reset forgets the recorded calls.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Filter returns the recorded calls of the given kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func clonePts(pts []canvas.Point) []canvas.Point {
	return append([]canvas.Point(nil), pts...)
}

// Surface is a fake canvas.ShaderSurface. A nil Ctx models a surface whose
// 2D context cannot be acquired.
type Surface struct {
	Ctx canvas.Context
	VP  *canvas.Viewport
	SC  canvas.ShaderContext
}

func NewSurface(w, h int) (*Surface, *Recorder) {
	rec := NewRecorder(w, h)
	return &Surface{Ctx: rec, VP: canvas.NewViewport(w, h)}, rec
}

// Unavailable returns a surface without a 2D context.
func Unavailable(w, h int) *Surface {
	return &Surface{VP: canvas.NewViewport(w, h)}
}

func (s *Surface) Context2D() canvas.Context { return s.Ctx }

func (s *Surface) Viewport() *canvas.Viewport { return s.VP }

func (s *Surface) Shader() canvas.ShaderContext { return s.SC }

// Shader is a fake shader context. When Err is set every compile fails.
type Shader struct {
	Err      error
	Compiled []string
	Programs []*Program
}

func (s *Shader) Compile(name, fragSrc string) (canvas.Program, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.Compiled = append(s.Compiled, name)
	p := &Program{Name: name, Source: fragSrc}
	s.Programs = append(s.Programs, p)
	return p, nil
}

type Program struct {
	Name     string
	Source   string
	Draws    []float64
	Released bool
}

func (p *Program) Draw(t float64, w, h int) { p.Draws = append(p.Draws, t) }

func (p *Program) Release() { p.Released = true }
