package intro

import (
	"math"
	"time"

	"csethon/internal/canvas"
	"csethon/internal/mathutil"
)

// OverlayContent is the text shown above the intro background.
type OverlayContent struct {
	Title   string
	Status  string
	Events  []string
	Caption string
}

func DefaultOverlay() OverlayContent {
	return OverlayContent{
		Title:   "CSE-A-THON",
		Status:  "INITIALIZING...",
		Events:  []string{"Codathon", "Hackathon", "C Quiz", "Python Quiz", "Tech Quiz", "Circuit Building"},
		Caption: "GET READY FOR THE ULTIMATE TECH FEST",
	}
}

const (
	orbDuration      = 4 * time.Second
	titleDuration    = 2 * time.Second
	statusDelay      = time.Second
	statusBlink      = 1500 * time.Millisecond
	fadeInDuration   = 500 * time.Millisecond
	eventStagger     = 150 * time.Millisecond
	loadingBarDelay  = 500 * time.Millisecond
	loadingBarLength = 5 * time.Second
)

var titleStops = []canvas.Color{canvas.Palette.Blue400, canvas.Palette.Cyan500, canvas.Palette.Indigo500}

func since(now, t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return now.Sub(t).Seconds()
}

func progress(elapsed float64, d time.Duration) float64 {
	return mathutil.ClampF(elapsed/d.Seconds(), 0, 1)
}

// DrawOverlay renders the orb, the staged text and the loading bar for the
// given sequencer state. fade is the fade-out progress in [0,1].
func DrawOverlay(ctx canvas.Context, st State, now time.Time, fade float64, c OverlayContent) {
	if st.Mode == ModeInert {
		return
	}
	alpha := 1 - mathutil.ClampF(fade, 0, 1)
	if alpha <= 0 {
		return
	}
	w, h := ctx.Size()
	cx, cy := float64(w)/2, float64(h)/2
	mounted := since(now, st.MountedAt)

	drawOrb(ctx, cx, cy, float64(w), float64(h), progress(mounted, orbDuration), alpha)

	if st.ShowTitle {
		y := drawTitle(ctx, c, st, now, cx, cy, float64(w), alpha)
		if st.ShowEvents {
			y = drawEventChips(ctx, c.Events, since(now, st.StageAt[StageEvents]), cx, y, float64(w), alpha)
		}
		if st.ShowFinalTitle {
			a := progress(since(now, st.StageAt[StageFinalTitle]), fadeInDuration)
			canvas.FillTextCentered(ctx, c.Caption, cx, y+40, 20, canvas.Palette.Blue300.Fade(a*alpha))
		}
	}

	drawLoadingBar(ctx, cx, float64(h), mounted, alpha)
}

// drawOrb approximates the blurred central glow with stacked translucent
// discs.
func drawOrb(ctx canvas.Context, cx, cy, w, h, p, alpha float64) {
	times := []float64{0, 0.3, 0.6, 1}
	size := mathutil.Keyframes(p, times, []float64{0, 0.3, 0.5, 0.7})
	opacity := mathutil.Keyframes(p, times, []float64{0, 0.3, 0.5, 0})
	r := size * math.Min(w, h) / 2
	if r <= 0 || opacity <= 0 {
		return
	}
	const rings = 6
	for i := 0; i < rings; i++ {
		k := 1 - float64(i)/rings
		ctx.FillCircle(canvas.Pt(cx, cy), r*k, canvas.Palette.Blue500.WithAlpha(0.2*opacity*alpha/rings))
	}
}

// drawTitle draws the scaling title and the blinking status line and
// returns the baseline below them.
func drawTitle(ctx canvas.Context, c OverlayContent, st State, now time.Time, cx, cy, w, alpha float64) float64 {
	shown := since(now, st.StageAt[StageTitle])
	wrap := progress(shown, fadeInDuration)

	p := progress(shown, titleDuration)
	times := []float64{0, 0.5, 1}
	opacity := mathutil.Keyframes(p, times, []float64{0, 1, 1})
	dy := mathutil.Keyframes(p, times, []float64{50, 0, 0})
	scale := mathutil.Keyframes(p, times, []float64{0.8, 1.2, 1})

	size := math.Min(96, w/8) * scale
	tw := canvas.TextWidth(c.Title, size)
	canvas.FillTextGradient(ctx, c.Title, cx-tw/2, cy+dy, size, titleStops, opacity*wrap*alpha)

	y := cy + 48
	if shown >= statusDelay.Seconds() {
		t := shown - statusDelay.Seconds()
		line := progress(t, fadeInDuration)
		blink := mathutil.Keyframes(progress(t, statusBlink),
			[]float64{0, 0.2, 0.4, 0.6, 0.8, 1}, []float64{0, 1, 0, 1, 0, 1})
		canvas.FillTextCentered(ctx, c.Status, cx, y, 26, canvas.Palette.Blue400.Fade(line*blink*wrap*alpha))
	}
	return y
}

// drawEventChips lays the event names out in centred rows, each chip fading
// and sliding in after its stagger delay.
func drawEventChips(ctx canvas.Context, events []string, shown, cx, y, w, alpha float64) float64 {
	const (
		size   = 16.0
		padX   = 16.0
		chipH  = 36.0
		gap    = 16.0
		margin = 32.0
	)
	maxW := math.Min(672, w-2*margin)

	type chip struct {
		text string
		w    float64
	}
	var rows [][]chip
	var row []chip
	rowW := 0.0
	for _, e := range events {
		cw := canvas.TextWidth(e, size) + 2*padX
		if len(row) > 0 && rowW+gap+cw > maxW {
			rows = append(rows, row)
			row, rowW = nil, 0
		}
		if len(row) > 0 {
			rowW += gap
		}
		row = append(row, chip{e, cw})
		rowW += cw
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	top := y + margin
	i := 0
	for _, r := range rows {
		total := 0.0
		for j, ch := range r {
			if j > 0 {
				total += gap
			}
			total += ch.w
		}
		x := cx - total/2
		for _, ch := range r {
			p := progress(shown-float64(i)*eventStagger.Seconds(), fadeInDuration)
			a := p * alpha
			cy := top + (1-p)*20
			if a > 0 {
				ctx.FillRect(x, cy, ch.w, chipH, canvas.Palette.Blue900.WithAlpha(0.3*a))
				canvas.StrokeRect(ctx, x, cy, ch.w, chipH, 1, canvas.Palette.Blue700.WithAlpha(0.5*a))
				ctx.FillText(ch.text, x+padX, cy+chipH/2+size/3, size, canvas.Palette.Blue300.Fade(a))
			}
			x += ch.w + gap
			i++
		}
		top += chipH + gap
	}
	return top
}

func drawLoadingBar(ctx canvas.Context, cx, h, mounted, alpha float64) {
	if mounted < loadingBarDelay.Seconds() {
		return
	}
	const (
		barW = 256.0
		barH = 8.0
	)
	x := cx - barW/2
	y := h - 40 - barH
	ctx.FillRect(x, y, barW, barH, canvas.Palette.Gray800.Fade(alpha))
	fill := mathutil.EaseInOut(progress(mounted, loadingBarLength)) * barW
	const slices = 16
	step := barW / slices
	for i := 0; i < slices; i++ {
		sx := x + float64(i)*step
		sw := math.Min(step, x+fill-sx)
		if sw <= 0 {
			break
		}
		col := canvas.Lerp(canvas.Palette.Blue500, canvas.Palette.Indigo500, float64(i)/(slices-1))
		ctx.FillRect(sx, y, sw, barH, col.Fade(alpha))
	}
}
