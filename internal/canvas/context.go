// Package canvas provides the drawing surfaces animators render into: a
// 2D context interface modelled on the HTML canvas, a software
// implementation over image.RGBA, and the viewport the host resizes.
package canvas

import "math"

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Context is an immediate-mode 2D drawing context. Coordinates are in
// pixels with the origin at the top-left corner. Text is positioned by its
// baseline-left corner, as with fillText.
type Context interface {
	Size() (w, h int)
	// Resize reallocates the backing store; the content is cleared.
	Resize(w, h int)
	// Clear makes every pixel fully transparent.
	Clear()
	FillRect(x, y, w, h float64, c Color)
	FillText(text string, x, y, size float64, c Color)
	StrokePolyline(pts []Point, width float64, c Color)
	StrokePolygon(pts []Point, width float64, c Color)
	FillPolygon(pts []Point, c Color)
	FillCircle(center Point, r float64, c Color)
	StrokeCircle(center Point, r, width float64, c Color)
}

// TextWidth returns the advance of text at the given font size.
func TextWidth(text string, size float64) float64 {
	n := 0
	for range text {
		n++
	}
	return float64(n) * size * glyphAspect
}

// circleSegments picks a polygon resolution for a circle of radius r.
func circleSegments(r float64) int {
	n := int(r * 0.75)
	if n < 12 {
		return 12
	}
	if n > 256 {
		return 256
	}
	return n
}

func circlePoints(c Point, r float64, ccw bool) []Point {
	n := circleSegments(r)
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		a := float64(i) / float64(n) * 2 * math.Pi
		if ccw {
			a = -a
		}
		pts[i] = Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return pts
}
