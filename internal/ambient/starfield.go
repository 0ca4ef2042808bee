package ambient

import (
	"go.uber.org/zap"

	"csethon/internal/canvas"
	"csethon/internal/frame"
	"csethon/internal/mathutil"
)

// LinkDistance is the distance under which two stars are joined.
const LinkDistance = 100.0

var starShades = []canvas.Color{
	canvas.Palette.Blue500.WithAlpha(0.7),
	canvas.Palette.Indigo500.WithAlpha(0.7),
	canvas.Palette.Cyan500.WithAlpha(0.7),
	canvas.Palette.Sky500.WithAlpha(0.7),
	canvas.Palette.Indigo600.WithAlpha(0.7),
}

type Star struct {
	X, Y   float64
	Radius float64
	Speed  float64
	Color  canvas.Color
}

type Options struct {
	// Count overrides the default particle count when positive.
	Count  int
	Seed   uint64
	Logger *zap.Logger
}

// Starfield drifts stars down the screen and links nearby pairs with lines
// that fade with distance.
type Starfield struct {
	runner
	count int
	rng   *mathutil.Rand
	stars []Star
}

func NewStarfield(opts Options) *Starfield {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Count <= 0 {
		opts.Count = 100
	}
	s := &Starfield{count: opts.Count, rng: mathutil.NewRand(opts.Seed)}
	s.log = opts.Logger.Named("starfield")
	s.runner.tick = s.Tick
	return s
}

// Mount scatters a fresh set of stars over the viewport and starts
// animating. Without a 2D context it does nothing.
func (s *Starfield) Mount(loop *frame.Loop, surf canvas.Surface) {
	if !s.mount(loop, surf) {
		return
	}
	w, h := s.ctx.Size()
	s.stars = make([]Star, s.count)
	for i := range s.stars {
		s.stars[i] = Star{
			X:      s.rng.RangeF(0, float64(w)),
			Y:      s.rng.RangeF(0, float64(h)),
			Radius: s.rng.RangeF(0.5, 2.5),
			Speed:  s.rng.RangeF(0.1, 0.6),
			Color:  starShades[s.rng.Intn(len(starShades))],
		}
	}
}

func (s *Starfield) Unmount() { s.unmount() }

// Running reports whether a frame is scheduled.
func (s *Starfield) Running() bool { return s.running() }

func (s *Starfield) Stars() []Star { return append([]Star(nil), s.stars...) }

// Tick draws one frame: every star, then the links between close pairs.
func (s *Starfield) Tick() {
	if s.ctx == nil {
		return
	}
	w, h := s.ctx.Size()
	s.ctx.Clear()
	for i := range s.stars {
		st := &s.stars[i]
		s.ctx.FillCircle(canvas.Pt(st.X, st.Y), st.Radius, st.Color)
		st.Y += st.Speed
		if st.Y > float64(h) {
			st.Y = 0
			st.X = s.rng.RangeF(0, float64(w))
		}
	}
	drawLinks(s.ctx, s.stars)
}

// LinkAlpha is the opacity of the line joining two stars d pixels apart,
// zero at or beyond LinkDistance.
func LinkAlpha(d float64) float64 {
	if d >= LinkDistance || d < 0 {
		return 0
	}
	return 0.2 * (1 - d/LinkDistance)
}

func drawLinks(ctx canvas.Context, stars []Star) {
	for i := range stars {
		a := canvas.Pt(stars[i].X, stars[i].Y)
		for j := i + 1; j < len(stars); j++ {
			b := canvas.Pt(stars[j].X, stars[j].Y)
			d := a.Dist(b)
			if d >= LinkDistance {
				continue
			}
			ctx.StrokePolyline([]canvas.Point{a, b}, 0.5, canvas.Palette.Blue500.WithAlpha(LinkAlpha(d)))
		}
	}
}
