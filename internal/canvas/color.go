package canvas

import "image/color"

// Color is an 8-bit per channel colour with a float alpha in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Fade multiplies the alpha by k.
func (c Color) Fade(k float64) Color {
	c.A *= k
	return c
}

func (c Color) NRGBA() color.NRGBA {
	a := c.A
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

// Visible reports whether drawing with c would change any pixel.
func (c Color) Visible() bool {
	return c.NRGBA().A > 0
}

func lerpU8(a, b uint8, t float64) uint8 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Lerp blends two colours, alpha included.
func Lerp(a, b Color, t float64) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Color{
		R: lerpU8(a.R, b.R, t),
		G: lerpU8(a.G, b.G, t),
		B: lerpU8(a.B, b.B, t),
		A: a.A + (b.A-a.A)*t,
	}
}

var Palette = struct {
	Black     Color
	White     Color
	Blue300   Color
	Blue400   Color
	Blue500   Color
	Blue600   Color
	Blue700   Color
	Blue800   Color
	Blue900   Color
	Indigo400 Color
	Indigo500 Color
	Indigo600 Color
	Indigo700 Color
	Indigo900 Color
	Cyan500   Color
	Cyan600   Color
	Sky500    Color
	Gray300   Color
	Gray400   Color
	Gray500   Color
	Gray700   Color
	Gray800   Color
	Gray900   Color
	Gray950   Color
	Red400    Color
	Highlight Color
}{
	Black:     RGB(0, 0, 0),
	White:     RGB(255, 255, 255),
	Blue300:   RGB(147, 197, 253),
	Blue400:   RGB(96, 165, 250),
	Blue500:   RGB(59, 130, 246),
	Blue600:   RGB(37, 99, 235),
	Blue700:   RGB(29, 78, 216),
	Blue800:   RGB(30, 64, 175),
	Blue900:   RGB(30, 58, 138),
	Indigo400: RGB(129, 140, 248),
	Indigo500: RGB(99, 102, 241),
	Indigo600: RGB(79, 70, 229),
	Indigo700: RGB(67, 56, 202),
	Indigo900: RGB(49, 46, 129),
	Cyan500:   RGB(6, 182, 212),
	Cyan600:   RGB(8, 145, 178),
	Sky500:    RGB(14, 165, 233),
	Gray300:   RGB(209, 213, 219),
	Gray400:   RGB(156, 163, 175),
	Gray500:   RGB(107, 114, 128),
	Gray700:   RGB(55, 65, 81),
	Gray800:   RGB(31, 41, 55),
	Gray900:   RGB(17, 24, 39),
	Gray950:   RGB(3, 7, 18),
	Red400:    RGB(248, 113, 113),
	Highlight: RGB(96, 165, 250),
}
