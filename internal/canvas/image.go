package canvas

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// glyphAspect is the basicfont advance relative to its line height.
const glyphAspect = 7.0 / 13.0

type glyphKey struct {
	r  rune
	px int
}

// Image is a software Context over an *image.RGBA. Shapes are rasterized
// with anti-aliased coverage; text uses the 7x13 bitmap face scaled to the
// requested size.
type Image struct {
	img    *image.RGBA
	z      *vector.Rasterizer
	glyphs map[glyphKey]*image.Alpha
}

func NewImage(w, h int) *Image {
	m := &Image{
		z:      vector.NewRasterizer(1, 1),
		glyphs: make(map[glyphKey]*image.Alpha),
	}
	m.Resize(w, h)
	return m
}

// RGBA exposes the backing store. It is replaced on Resize.
func (m *Image) RGBA() *image.RGBA { return m.img }

func (m *Image) Size() (int, int) {
	b := m.img.Bounds()
	return b.Dx(), b.Dy()
}

func (m *Image) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	m.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (m *Image) Clear() {
	clear(m.img.Pix)
}

func (m *Image) FillRect(x, y, w, h float64, c Color) {
	if !c.Visible() {
		return
	}
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(m.img.Bounds())
	if r.Empty() {
		return
	}
	xdraw.Draw(m.img, r, image.NewUniform(c.NRGBA()), image.Point{}, xdraw.Over)
}

func (m *Image) FillText(text string, x, y, size float64, c Color) {
	if !c.Visible() || size <= 0 {
		return
	}
	src := image.NewUniform(c.NRGBA())
	scale := size / float64(basicfont.Face7x13.Height)
	top := int(math.Round(y - float64(basicfont.Face7x13.Ascent)*scale))
	pen := x
	for _, r := range text {
		g := m.glyph(r, size)
		gb := g.Bounds()
		dr := image.Rect(int(math.Round(pen)), top, int(math.Round(pen))+gb.Dx(), top+gb.Dy())
		if dr.Overlaps(m.img.Bounds()) {
			xdraw.DrawMask(m.img, dr, src, image.Point{}, g, image.Point{}, xdraw.Over)
		}
		pen += size * glyphAspect
	}
}

// glyph returns the coverage mask of r scaled to a line height of size.
func (m *Image) glyph(r rune, size float64) *image.Alpha {
	key := glyphKey{r: r, px: int(math.Round(size))}
	if key.px < 1 {
		key.px = 1
	}
	if g, ok := m.glyphs[key]; ok {
		return g
	}
	face := basicfont.Face7x13
	native := image.NewAlpha(image.Rect(0, 0, face.Advance, face.Height))
	d := font.Drawer{Dst: native, Src: image.Opaque, Face: face, Dot: fixed.P(0, face.Ascent)}
	d.DrawString(string(r))

	w := int(math.Round(float64(key.px) * glyphAspect))
	if w < 1 {
		w = 1
	}
	g := image.NewAlpha(image.Rect(0, 0, w, key.px))
	xdraw.ApproxBiLinear.Scale(g, g.Bounds(), native, native.Bounds(), xdraw.Src, nil)
	m.glyphs[key] = g
	return g
}

func (m *Image) StrokePolyline(pts []Point, width float64, c Color) {
	if len(pts) < 2 {
		return
	}
	m.fill(strokeQuads(pts, width, false), c)
}

func (m *Image) StrokePolygon(pts []Point, width float64, c Color) {
	if len(pts) < 2 {
		return
	}
	m.fill(strokeQuads(pts, width, true), c)
}

func (m *Image) FillPolygon(pts []Point, c Color) {
	if len(pts) < 3 {
		return
	}
	m.fill([][]Point{pts}, c)
}

func (m *Image) FillCircle(center Point, r float64, c Color) {
	if r <= 0 {
		return
	}
	m.fill([][]Point{circlePoints(center, r, false)}, c)
}

// StrokeCircle draws a ring centred on the circle of radius r. The inner
// contour winds the opposite way so its area cancels out.
func (m *Image) StrokeCircle(center Point, r, width float64, c Color) {
	if r <= 0 || width <= 0 {
		return
	}
	outer := r + width/2
	inner := r - width/2
	paths := [][]Point{circlePoints(center, outer, false)}
	if inner > 0 {
		paths = append(paths, circlePoints(center, inner, true))
	}
	m.fill(paths, c)
}

// fill rasterizes closed paths restricted to their clipped bounding box.
func (m *Image) fill(paths [][]Point, c Color) {
	if !c.Visible() || len(paths) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range paths {
		for _, q := range p {
			minX = math.Min(minX, q.X)
			minY = math.Min(minY, q.Y)
			maxX = math.Max(maxX, q.X)
			maxY = math.Max(maxY, q.Y)
		}
	}
	r := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(m.img.Bounds())
	if r.Empty() {
		return
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	m.z.Reset(r.Dx(), r.Dy())
	for _, p := range paths {
		if len(p) < 3 {
			continue
		}
		m.z.MoveTo(float32(p[0].X)-ox, float32(p[0].Y)-oy)
		for _, q := range p[1:] {
			m.z.LineTo(float32(q.X)-ox, float32(q.Y)-oy)
		}
		m.z.ClosePath()
	}
	m.z.Draw(m.img, r, image.NewUniform(c.NRGBA()), image.Point{})
}

// strokeQuads expands each segment into a quad of the given width. All
// quads share one winding so overlaps at joints accumulate rather than
// cancel.
func strokeQuads(pts []Point, width float64, closed bool) [][]Point {
	hw := width / 2
	if hw <= 0 {
		hw = 0.5
	}
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	quads := make([][]Point, 0, n)
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		quads = append(quads, []Point{
			{a.X + nx, a.Y + ny},
			{b.X + nx, b.Y + ny},
			{b.X - nx, b.Y - ny},
			{a.X - nx, a.Y - ny},
		})
	}
	return quads
}
