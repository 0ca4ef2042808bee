package page

import (
	"math"
	"time"

	"csethon/internal/canvas"
	"csethon/internal/mathutil"
)

const (
	heroIn        = 800 * time.Millisecond
	revealIn      = 500 * time.Millisecond
	floatPeriod   = 4 * time.Second
	bobPeriod     = 2 * time.Second
	cubePeriod    = 20 * time.Second
	glitchBurst   = 200 * time.Millisecond
	underlineGrow = 500 * time.Millisecond
)

// wave is a smooth 0→1→0 cycle over period.
func wave(elapsed, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	phase := float64(elapsed%period) / float64(period)
	return 0.5 - 0.5*math.Cos(2*math.Pi*phase)
}

func progress(elapsed, d time.Duration) float64 {
	return mathutil.ClampF(float64(elapsed)/float64(d), 0, 1)
}

// frameState is what one Draw needs besides the layout.
type frameState struct {
	now      time.Time
	mounted  time.Time
	revealed []time.Time
	glitchAt time.Time
}

// animate returns the alpha and offset an item's effects give it now.
func (fs *frameState) animate(it item) (alpha, dx, dy float64) {
	alpha = 1
	since := fs.now.Sub(fs.mounted)
	if it.fx&fxHeroIn != 0 {
		p := progress(since, heroIn)
		alpha *= p
		dy += (1 - p) * 50
	}
	if it.fx&fxReveal != 0 {
		at := fs.revealed[it.section]
		if at.IsZero() {
			return 0, 0, 0
		}
		p := progress(fs.now.Sub(at)-time.Duration(it.delay*float64(time.Second)), revealIn)
		alpha *= p
		if it.fx&fxSlide != 0 {
			dy += (1 - p) * 50
		}
	}
	if it.fx&fxFloat != 0 {
		amp := 10.0
		if it.size < 30 {
			amp = 5
		}
		dy -= amp * wave(since, floatPeriod)
	}
	if it.fx&fxBob != 0 {
		dy += 10 * wave(since, bobPeriod)
	}
	return alpha, dx, dy
}

func (fs *frameState) glitching() bool {
	return !fs.glitchAt.IsZero() && fs.now.Sub(fs.glitchAt) < glitchBurst
}

// visible reports whether the item's vertical extent intersects the screen.
func visible(it item, y, screenH float64) bool {
	top, bottom := y, y+it.h
	switch it.kind {
	case kindText, kindGradientText:
		top, bottom = y-it.size, y+it.size/3
	case kindCircle:
		top, bottom = y-it.w, y+it.w
	case kindCube:
		top, bottom = y-it.size, y+it.size
	case kindRadial:
		top, bottom = y-it.h/2, y+it.h/2
	}
	return bottom >= 0 && top <= screenH
}

func drawItems(ctx canvas.Context, items []item, fs *frameState, scroll, screenH float64) {
	for _, it := range items {
		alpha, dx, dy := fs.animate(it)
		if alpha <= 0 {
			continue
		}
		y := it.y - scroll + dy
		if !visible(it, y, screenH) {
			continue
		}
		drawItem(ctx, it, it.x+dx, y, alpha, fs)
	}
}

func drawItem(ctx canvas.Context, it item, x, y, alpha float64, fs *frameState) {
	switch it.kind {
	case kindRect:
		ctx.FillRect(x, y, it.w, it.h, it.col.Fade(alpha))
	case kindStrokeRect:
		canvas.StrokeRect(ctx, x, y, it.w, it.h, it.width, it.col.Fade(alpha))
	case kindText:
		ctx.FillText(it.text, x, y, it.size, it.col.Fade(alpha))
	case kindGradientText:
		drawGradientText(ctx, it, x, y, alpha, fs)
	case kindHGradient:
		canvas.FillHGradient(ctx, x, y, it.w, it.h, it.stops, alpha*gradientAlpha(it))
	case kindVGradient:
		canvas.FillVGradient(ctx, x, y, it.w, it.h, it.stops, alpha*gradientAlpha(it))
	case kindCircle:
		ctx.FillCircle(canvas.Pt(x, y), it.w, it.col.Fade(alpha))
	case kindRadial:
		drawRadial(ctx, x, y, it.w, it.h, alpha)
	case kindCube:
		drawCube(ctx, x, y, it.size, fs.now.Sub(fs.mounted), alpha)
	case kindChevron:
		ctx.StrokePolyline([]canvas.Point{{X: x - 8, Y: y - 4}, {X: x, Y: y + 4}, {X: x + 8, Y: y - 4}}, 2, it.col.Fade(alpha))
	case kindUnderline:
		w := it.w
		if at := fs.revealed[it.section]; !at.IsZero() {
			w *= progress(fs.now.Sub(at)-time.Duration(it.delay*float64(time.Second)), underlineGrow)
		}
		if w > 0 {
			canvas.FillHGradient(ctx, x, y, w, it.h, it.stops, alpha)
		}
	}
}

// gradientAlpha reads an optional alpha override from the item colour.
func gradientAlpha(it item) float64 {
	if it.col.A > 0 {
		return it.col.A
	}
	return 1
}

// drawGradientText draws a soft glow behind the text, the glitch copies
// when a burst is active, then the text itself.
func drawGradientText(ctx canvas.Context, it item, x, y, alpha float64, fs *frameState) {
	if it.fx&fxFloat != 0 {
		glow := 0.3 + 0.2*wave(fs.now.Sub(fs.mounted), floatPeriod)
		c := canvas.Palette.Blue500.WithAlpha(glow * 0.25 * alpha)
		for _, o := range [][2]float64{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
			ctx.FillText(it.text, x+o[0], y+o[1], it.size, c)
		}
	}
	if it.fx&fxGlitch != 0 && fs.glitching() {
		t := progress(fs.now.Sub(fs.glitchAt), glitchBurst)
		times := []float64{0, 0.25, 0.5, 0.75, 1}
		bx := mathutil.Keyframes(t, times, []float64{0, -3, 1, -2, 0})
		ba := mathutil.Keyframes(t, times, []float64{1, 0.8, 0.9, 0.7, 1})
		rx := mathutil.Keyframes(t, times, []float64{0, 2, -1, 3, 0})
		ra := mathutil.Keyframes(t, times, []float64{1, 0.7, 0.9, 0.8, 1})
		ctx.FillText(it.text, x+bx, y, it.size, canvas.Palette.Blue400.WithAlpha(ba*alpha))
		ctx.FillText(it.text, x+rx, y, it.size, canvas.Palette.Red400.WithAlpha(ra*alpha))
	}
	canvas.FillTextGradient(ctx, it.text, x, y, it.size, it.stops, alpha)
}

// drawRadial paints the hero backdrop: black with a blue glow fading out
// to 70% of the distance to the corners.
func drawRadial(ctx canvas.Context, cx, cy, w, h, alpha float64) {
	ctx.FillRect(cx-w/2, cy-h/2, w, h, canvas.Palette.Black.WithAlpha(0.85*alpha))
	r := 0.7 * math.Hypot(w/2, h/2)
	const rings = 12
	for i := 0; i < rings; i++ {
		k := 1 - float64(i)/rings
		ctx.FillCircle(canvas.Pt(cx, cy), r*k, canvas.Palette.Blue600.WithAlpha(0.3/rings*alpha))
	}
}

var cubeFaces = [6][4]int{
	{0, 1, 2, 3}, {4, 5, 6, 7},
	{0, 1, 5, 4}, {2, 3, 7, 6},
	{0, 3, 7, 4}, {1, 2, 6, 5},
}

// drawCube draws the slowly tumbling wireframe cube at 20% opacity.
func drawCube(ctx canvas.Context, cx, cy, size float64, elapsed time.Duration, alpha float64) {
	a := 2 * math.Pi * float64(elapsed%cubePeriod) / float64(cubePeriod)
	sa, ca := math.Sincos(a)
	half := size / 2
	var pts [8]canvas.Point
	for i := range pts {
		x := half * float64(1-2*(i&1^(i>>1)&1))
		y := half * float64(1-2*((i>>1)&1))
		z := half * float64(1-2*((i>>2)&1))
		// rotate about Y, then X
		x, z = x*ca+z*sa, -x*sa+z*ca
		y = y*ca - z*sa
		pts[i] = canvas.Pt(cx+x, cy+y)
	}
	fill := canvas.Palette.Blue800.WithAlpha(0.1 * 0.2 * alpha)
	edge := canvas.Palette.Blue500.WithAlpha(0.3 * 0.2 * alpha)
	for _, f := range cubeFaces {
		quad := []canvas.Point{pts[f[0]], pts[f[1]], pts[f[2]], pts[f[3]]}
		ctx.FillPolygon(quad, fill)
		ctx.StrokePolygon(quad, 2, edge)
	}
}
