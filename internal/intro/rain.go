package intro

import (
	"math"

	"csethon/internal/canvas"
	"csethon/internal/mathutil"
)

const (
	binaryChars = "01"
	techChars   = "01{}[]()<>/\\|;:+-*=&%$#@!?"
)

var dropShades = []canvas.Color{
	canvas.Palette.Blue500,
	canvas.Palette.Blue600,
	canvas.Palette.Blue700,
	canvas.Palette.Blue800,
	canvas.Palette.Indigo700,
	canvas.Palette.Indigo600,
	canvas.Palette.Indigo500,
	canvas.Palette.Cyan500,
}

// Drop is one falling column of the binary rain. Y is measured in rows of
// the font size.
type Drop struct {
	Column  int
	Y       float64
	Speed   float64
	Color   canvas.Color
	Opacity float64
}

func newDrop(col int, rng *mathutil.Rand) Drop {
	return Drop{
		Column:  col,
		Y:       rng.RangeF(-100, 0),
		Speed:   rng.RangeF(0.5, 2.0),
		Opacity: rng.RangeF(0.5, 1.0),
		Color:   dropShades[rng.Intn(len(dropShades))],
	}
}

type rain struct {
	fontSize        float64
	resetChance     float64
	highlightChance float64
	drops           []Drop
}

func columnsFor(width int, fontSize float64) int {
	if width <= 0 || fontSize <= 0 {
		return 0
	}
	return int(math.Floor(float64(width) / fontSize))
}

// fit grows or shrinks the pool to one drop per column of the given width.
// Existing drops keep their state.
func (r *rain) fit(width int, rng *mathutil.Rand) {
	n := columnsFor(width, r.fontSize)
	if n < len(r.drops) {
		r.drops = r.drops[:n]
		return
	}
	for col := len(r.drops); col < n; col++ {
		r.drops = append(r.drops, newDrop(col, rng))
	}
}

// draw renders one character per drop and moves every drop down. A drop
// past the bottom edge restarts at the top with probability resetChance.
func (r *rain) draw(ctx canvas.Context, h int, tech bool, rng *mathutil.Rand) {
	chars := binaryChars
	if tech {
		chars = techChars
	}
	for i := range r.drops {
		d := &r.drops[i]
		ch := string(chars[rng.Intn(len(chars))])
		x := float64(d.Column) * r.fontSize
		y := d.Y * r.fontSize

		ctx.FillText(ch, x, y, r.fontSize, d.Color.WithAlpha(d.Opacity))
		if rng.Chance(r.highlightChance) {
			ctx.FillText(ch, x, y, r.fontSize, canvas.Palette.Highlight)
		}

		d.Y += d.Speed
		if d.Y*r.fontSize > float64(h) && rng.Chance(r.resetChance) {
			d.Y = 0
			d.Opacity = rng.RangeF(0.5, 1.0)
		}
	}
}
