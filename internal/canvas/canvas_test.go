package canvas

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alphaAt(m *Image, x, y int) uint8 {
	return m.RGBA().RGBAAt(x, y).A
}

func TestImageResizeClears(t *testing.T) {
	m := NewImage(20, 10)
	m.FillRect(0, 0, 20, 10, Palette.Blue500)
	require.Equal(t, uint8(255), alphaAt(m, 5, 5))

	m.Resize(30, 40)
	w, h := m.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 40, h)
	assert.Equal(t, uint8(0), alphaAt(m, 5, 5))
}

func TestImageResizeNegative(t *testing.T) {
	m := NewImage(-5, 3)
	w, h := m.Size()
	assert.Equal(t, 0, w)
	assert.Equal(t, 3, h)
	// Drawing into an empty image must not panic.
	m.FillRect(0, 0, 10, 10, Palette.White)
	m.FillCircle(Pt(1, 1), 4, Palette.White)
}

func TestFillRectClipsAndBlends(t *testing.T) {
	m := NewImage(10, 10)
	m.FillRect(-5, -5, 8, 8, Palette.White)
	assert.Equal(t, uint8(255), alphaAt(m, 0, 0))
	assert.Equal(t, uint8(255), alphaAt(m, 2, 2))
	assert.Equal(t, uint8(0), alphaAt(m, 3, 3))

	// A 10% black fill darkens but does not erase.
	m.FillRect(0, 0, 10, 10, Palette.Black.WithAlpha(0.1))
	c := m.RGBA().RGBAAt(1, 1)
	assert.Less(t, c.R, uint8(255))
	assert.Greater(t, c.R, uint8(200))
}

func TestInvisibleColorIsNoop(t *testing.T) {
	m := NewImage(10, 10)
	m.FillRect(0, 0, 10, 10, Palette.White.WithAlpha(0))
	m.FillCircle(Pt(5, 5), 3, Palette.White.WithAlpha(0.001))
	for _, b := range m.RGBA().Pix {
		require.Zero(t, b)
	}
}

func TestFillCircleCoverage(t *testing.T) {
	m := NewImage(40, 40)
	m.FillCircle(Pt(20, 20), 8, Palette.Blue500)
	assert.Equal(t, uint8(255), alphaAt(m, 20, 20))
	assert.Equal(t, uint8(0), alphaAt(m, 20, 35))
	assert.Equal(t, uint8(0), alphaAt(m, 2, 2))
}

func TestStrokeCircleLeavesHole(t *testing.T) {
	m := NewImage(60, 60)
	m.StrokeCircle(Pt(30, 30), 20, 2, Palette.Blue500)
	assert.Equal(t, uint8(0), alphaAt(m, 30, 30), "centre of a ring stays empty")
	assert.Greater(t, alphaAt(m, 50, 30), uint8(100), "ring edge is painted")
}

func TestStrokeCircleLargerThanImage(t *testing.T) {
	m := NewImage(50, 50)
	require.NotPanics(t, func() {
		m.StrokeCircle(Pt(25, 25), 400, 2, Palette.Blue500)
	})
}

func TestStrokePolylinePaintsSegment(t *testing.T) {
	m := NewImage(40, 20)
	m.StrokePolyline([]Point{{2, 10}, {38, 10}}, 2, Palette.White)
	assert.Greater(t, alphaAt(m, 20, 10), uint8(100))
	assert.Equal(t, uint8(0), alphaAt(m, 20, 2))
}

func TestStrokePolylineDegenerate(t *testing.T) {
	m := NewImage(10, 10)
	require.NotPanics(t, func() {
		m.StrokePolyline([]Point{{1, 1}}, 1, Palette.White)
		m.StrokePolyline([]Point{{1, 1}, {1, 1}}, 1, Palette.White)
		m.FillPolygon([]Point{{1, 1}, {2, 2}}, Palette.White)
	})
}

func TestFillPolygonPartiallyOutside(t *testing.T) {
	m := NewImage(20, 20)
	m.FillPolygon([]Point{{-10, -10}, {10, -10}, {10, 10}, {-10, 10}}, Palette.White)
	assert.Equal(t, uint8(255), alphaAt(m, 5, 5))
	assert.Equal(t, uint8(0), alphaAt(m, 15, 15))
}

func TestFillTextDrawsGlyphs(t *testing.T) {
	m := NewImage(100, 40)
	m.FillText("01", 10, 25, 14, Palette.Blue500)
	var painted int
	b := m.RGBA().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if alphaAt(m, x, y) > 0 {
				painted++
				require.GreaterOrEqual(t, x, 10)
				require.Less(t, x, 10+int(TextWidth("01", 14))+1)
			}
		}
	}
	assert.Positive(t, painted)
}

func TestFillTextGlyphCache(t *testing.T) {
	m := NewImage(50, 50)
	m.FillText("0", 0, 20, 14, Palette.White)
	m.FillText("0", 20, 20, 14, Palette.White)
	assert.Len(t, m.glyphs, 1)
	m.FillText("0", 0, 40, 20, Palette.White)
	assert.Len(t, m.glyphs, 2)
}

func TestTextWidth(t *testing.T) {
	assert.InDelta(t, 14*7.0/13.0*3, TextWidth("abc", 14), 1e-9)
	assert.Equal(t, 0.0, TextWidth("", 14))
}

func TestColorNRGBA(t *testing.T) {
	assert.Equal(t, uint8(255), RGB(1, 2, 3).NRGBA().A)
	assert.Equal(t, uint8(0), RGB(1, 2, 3).WithAlpha(-1).NRGBA().A)
	assert.Equal(t, uint8(255), RGB(1, 2, 3).WithAlpha(4).NRGBA().A)
	assert.InDelta(t, 0.25, RGB(1, 2, 3).WithAlpha(0.5).Fade(0.5).A, 1e-9)
	assert.False(t, RGB(1, 2, 3).WithAlpha(0).Visible())
}

func TestViewportListeners(t *testing.T) {
	vp := NewViewport(10, 10)
	var calls [][2]int
	release := vp.Listen(func(w, h int) { calls = append(calls, [2]int{w, h}) })
	require.Equal(t, 1, vp.Listeners())

	vp.Resize(10, 10)
	assert.Empty(t, calls, "same size is not a resize")

	vp.Resize(20, 30)
	assert.Equal(t, [][2]int{{20, 30}}, calls)

	release()
	release()
	assert.Equal(t, 0, vp.Listeners())
	vp.Resize(1, 1)
	assert.Len(t, calls, 1)
}

func TestViewportListenerOrder(t *testing.T) {
	vp := NewViewport(1, 1)
	var order []int
	r1 := vp.Listen(func(int, int) { order = append(order, 1) })
	vp.Listen(func(int, int) { order = append(order, 2) })
	vp.Listen(func(int, int) { order = append(order, 3) })
	r1()
	vp.Resize(2, 2)
	assert.Equal(t, []int{2, 3}, order)
}

func TestLayer(t *testing.T) {
	vp := NewViewport(32, 16)
	l := NewLayer(vp)
	require.NotNil(t, l.Context2D())
	w, h := l.Context2D().Size()
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)
	assert.Nil(t, l.Shader())
	assert.Same(t, vp, l.Viewport())
	assert.Equal(t, image.Rect(0, 0, 32, 16), l.Image().RGBA().Bounds())
}

func TestWrapText(t *testing.T) {
	size := 13.0 // 7px per rune
	lines := WrapText("aa bb cc dd", size, 35)
	assert.Equal(t, []string{"aa bb", "cc dd"}, lines)

	assert.Equal(t, []string{"supercalifragilistic", "x"}, WrapText("supercalifragilistic x", size, 20))
	assert.Empty(t, WrapText("   ", size, 100))
}

func TestGradientAt(t *testing.T) {
	stops := []Color{RGB(0, 0, 0), RGB(200, 100, 0)}
	assert.Equal(t, stops[0], GradientAt(stops, -1))
	assert.Equal(t, stops[1], GradientAt(stops, 2))
	mid := GradientAt(stops, 0.5)
	assert.Equal(t, uint8(100), mid.R)
	assert.Equal(t, uint8(50), mid.G)
	assert.Equal(t, Color{}, GradientAt(nil, 0.5))
}

func TestFillTextCentered(t *testing.T) {
	img := NewImage(100, 30)
	FillTextCentered(img, "ab", 50, 20, 13, Palette.White)
	left, right := 100, 0
	for x := 0; x < 100; x++ {
		for y := 0; y < 30; y++ {
			if img.RGBA().RGBAAt(x, y).A > 0 {
				left = min(left, x)
				right = max(right, x)
			}
		}
	}
	assert.GreaterOrEqual(t, left, 43)
	assert.LessOrEqual(t, right, 57)
}
