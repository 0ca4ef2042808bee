package canvas

import "strings"

// FillTextCentered draws text horizontally centred on cx.
func FillTextCentered(ctx Context, text string, cx, y, size float64, c Color) {
	ctx.FillText(text, cx-TextWidth(text, size)/2, y, size, c)
}

// FillTextGradient draws text one rune at a time, colouring each rune by
// its position along the gradient stops.
func FillTextGradient(ctx Context, text string, x, y, size float64, stops []Color, alpha float64) {
	runes := []rune(text)
	if len(runes) == 0 || len(stops) == 0 {
		return
	}
	advance := size * glyphAspect
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		ctx.FillText(string(r), x+float64(i)*advance, y, size, GradientAt(stops, t).Fade(alpha))
	}
}

// GradientAt samples evenly spaced colour stops at t in [0,1].
func GradientAt(stops []Color, t float64) Color {
	switch len(stops) {
	case 0:
		return Color{}
	case 1:
		return stops[0]
	}
	if t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	seg := t * float64(len(stops)-1)
	i := int(seg)
	return Lerp(stops[i], stops[i+1], seg-float64(i))
}

// StrokeRect outlines the rectangle with a line of the given width.
func StrokeRect(ctx Context, x, y, w, h, width float64, c Color) {
	ctx.StrokePolygon([]Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, width, c)
}

// WrapText breaks text on spaces into lines no wider than maxW at the given
// size. A single word wider than maxW gets a line of its own.
func WrapText(text string, size, maxW float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		next := word
		if line != "" {
			next = line + " " + word
		}
		if line != "" && TextWidth(next, size) > maxW {
			lines = append(lines, line)
			line = word
			continue
		}
		line = next
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// FillHGradient fills a rectangle with a left-to-right gradient drawn as
// vertical bands.
func FillHGradient(ctx Context, x, y, w, h float64, stops []Color, alpha float64) {
	const bands = 24
	step := w / bands
	for i := 0; i < bands; i++ {
		c := GradientAt(stops, (float64(i)+0.5)/bands)
		ctx.FillRect(x+float64(i)*step, y, step, h, c.Fade(alpha))
	}
}

// FillVGradient fills a rectangle with a top-to-bottom gradient drawn as
// horizontal bands.
func FillVGradient(ctx Context, x, y, w, h float64, stops []Color, alpha float64) {
	const bands = 24
	step := h / bands
	for i := 0; i < bands; i++ {
		c := GradientAt(stops, (float64(i)+0.5)/bands)
		ctx.FillRect(x, y+float64(i)*step, w, step, c.Fade(alpha))
	}
}
