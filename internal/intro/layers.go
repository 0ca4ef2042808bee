package intro

import (
	"math"

	"csethon/internal/canvas"
	"csethon/internal/mathutil"
)

// frameMillis is the nominal frame period used to derive animation time
// from the frame counter.
const frameMillis = 16

// layer is a decorative effect drawn on every frame after a threshold.
type layer struct {
	name  string
	after int
	draw  func(ctx canvas.Context, w, h, frame int, rng *mathutil.Rand)
}

func layersFor(s Schedule) []layer {
	return []layer{
		{name: "grid", after: s.Grid, draw: drawGrid},
		{name: "circuits", after: s.Circuits, draw: drawCircuits},
		{name: "pulses", after: s.Pulses, draw: drawPulses},
		{name: "hex-grid", after: s.HexGrid, draw: drawHexGrid},
		{name: "streams", after: s.Streams, draw: drawStreams},
	}
}

func drawGrid(ctx canvas.Context, w, h, _ int, _ *mathutil.Rand) {
	col := canvas.Palette.Blue500.WithAlpha(0.1)
	for y := 0; y < h; y += 30 {
		ctx.StrokePolyline([]canvas.Point{{X: 0, Y: float64(y)}, {X: float64(w), Y: float64(y)}}, 1, col)
	}
	for x := 0; x < w; x += 30 {
		ctx.StrokePolyline([]canvas.Point{{X: float64(x), Y: 0}, {X: float64(x), Y: float64(h)}}, 1, col)
	}
}

// drawCircuits draws freshly randomized right-angle traces every frame,
// each ending in a round node.
func drawCircuits(ctx canvas.Context, w, h, _ int, rng *mathutil.Rand) {
	trace := canvas.Palette.Blue500.WithAlpha(0.15)
	node := canvas.Palette.Blue500.WithAlpha(0.3)
	const quarter = math.Pi / 2

	n := w / 200
	for i := 0; i < n; i++ {
		p := canvas.Point{X: rng.RangeF(0, float64(w)), Y: rng.RangeF(0, float64(h))}
		segments := int(math.Ceil(rng.RangeF(3, 8)))
		angle := rng.RangeF(0, 2*math.Pi)
		nodeR := rng.RangeF(1, 3) * 3

		pts := []canvas.Point{p}
		for s := 0; s < segments; s++ {
			length := rng.RangeF(50, 150)
			angle = math.Round(angle/quarter) * quarter
			p.X += math.Cos(angle) * length
			p.Y += math.Sin(angle) * length
			pts = append(pts, p)
			if rng.Chance(0.5) {
				if rng.Chance(0.5) {
					angle += quarter
				} else {
					angle -= quarter
				}
			}
		}
		ctx.StrokePolyline(pts, 2, trace)
		ctx.FillCircle(p, nodeR, node)
	}
}

// drawPulses draws three rings expanding from the centre, staggered by a
// second over a three second cycle.
func drawPulses(ctx canvas.Context, w, h, frame int, _ *mathutil.Rand) {
	const period = 3000
	t := frame * frameMillis
	maxDim := math.Max(float64(w), float64(h))
	center := canvas.Point{X: float64(w) / 2, Y: float64(h) / 2}
	for i := 0; i < 3; i++ {
		pt := (t + i*1000) % period
		size := float64(pt) / period * maxDim * 1.5
		if size <= 0 {
			continue
		}
		opacity := 1 - float64(pt)/period
		ctx.StrokeCircle(center, size, 2, canvas.Palette.Blue500.WithAlpha(opacity*0.5))
	}
}

func drawHexGrid(ctx canvas.Context, w, h, _ int, rng *mathutil.Rand) {
	const size = 30.0
	hexH := size * math.Sqrt(3)
	hexW := size * 2
	rows := int(math.Ceil(float64(h)/hexH)) + 1
	cols := int(math.Ceil(float64(w)/(hexW*0.75))) + 1
	col := canvas.Palette.Blue500.WithAlpha(0.1)

	for row := 0; row < rows; row++ {
		for c := 0; c < cols; c++ {
			cx := float64(c) * hexW * 0.75
			cy := float64(row) * hexH
			if c%2 == 1 {
				cy += hexH / 2
			}
			pts := make([]canvas.Point, 6)
			for i := range pts {
				a := float64(i) * math.Pi / 3
				pts[i] = canvas.Point{X: cx + size*math.Cos(a), Y: cy + size*math.Sin(a)}
			}
			ctx.StrokePolygon(pts, 1, col)
			if rng.Chance(0.05) {
				ctx.FillPolygon(pts, col)
			}
		}
	}
}

// drawStreams draws ten wandering lines whose heads orbit the screen.
func drawStreams(ctx canvas.Context, w, h, frame int, rng *mathutil.Rand) {
	t := float64(frame * frameMillis)
	col := canvas.Palette.Blue500.WithAlpha(0.3)
	for i := 0; i < 10; i++ {
		fi := float64(i)
		steps := int(math.Ceil(rng.RangeF(50, 150)))
		p := canvas.Point{
			X: (math.Sin(t*0.001+fi)*0.5 + 0.5) * float64(w),
			Y: (math.Cos(t*0.001+fi*0.5)*0.5 + 0.5) * float64(h),
		}
		pts := make([]canvas.Point, 0, steps+1)
		pts = append(pts, p)
		for j := 0; j < steps; j++ {
			a := math.Sin(t*0.002+fi+float64(j)*0.1) * 2 * math.Pi
			p.X += math.Cos(a) * 2
			p.Y += math.Sin(a) * 2
			pts = append(pts, p)
		}
		ctx.StrokePolyline(pts, 2, col)
	}
}
