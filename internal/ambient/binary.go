package ambient

import (
	"math"

	"go.uber.org/zap"

	"csethon/internal/canvas"
	"csethon/internal/frame"
	"csethon/internal/mathutil"
)

const (
	binaryTimeStep   = 0.01
	binaryRerollRate = 0.005
)

// Symbol is one digit of the binary field.
type Symbol struct {
	X, Y       float64
	Value      byte
	Size       float64
	Opacity    float64
	BlinkSpeed float64
	BlinkPhase float64
}

// AlphaAt is the symbol's blinking alpha at animation time t.
func (s Symbol) AlphaAt(t float64) float64 {
	return s.Opacity * (0.5 + 0.5*math.Sin(t*s.BlinkSpeed*10+s.BlinkPhase))
}

// BinaryField scatters blinking 0/1 digits over the screen. Each frame a
// digit has a small chance of being re-drawn from {0,1}.
type BinaryField struct {
	runner
	count   int
	rng     *mathutil.Rand
	symbols []Symbol
	t       float64
}

func NewBinaryField(opts Options) *BinaryField {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Count <= 0 {
		opts.Count = 150
	}
	b := &BinaryField{count: opts.Count, rng: mathutil.NewRand(opts.Seed)}
	b.log = opts.Logger.Named("binary")
	b.runner.tick = b.Tick
	return b
}

func (b *BinaryField) Mount(loop *frame.Loop, surf canvas.Surface) {
	if !b.mount(loop, surf) {
		return
	}
	w, h := b.ctx.Size()
	b.t = 0
	b.symbols = make([]Symbol, b.count)
	for i := range b.symbols {
		b.symbols[i] = Symbol{
			X:          b.rng.RangeF(0, float64(w)),
			Y:          b.rng.RangeF(0, float64(h)),
			Value:      b.digit(),
			Size:       b.rng.RangeF(10, 26),
			Opacity:    b.rng.RangeF(0.1, 0.4),
			BlinkSpeed: b.rng.RangeF(0.01, 0.06),
			BlinkPhase: b.rng.RangeF(0, 2*math.Pi),
		}
	}
}

func (b *BinaryField) Unmount() { b.unmount() }

func (b *BinaryField) Running() bool { return b.running() }

func (b *BinaryField) Symbols() []Symbol { return append([]Symbol(nil), b.symbols...) }

// Time is the animation clock, advanced by a fixed step per frame.
func (b *BinaryField) Time() float64 { return b.t }

func (b *BinaryField) digit() byte {
	return "01"[b.rng.Intn(2)]
}

func (b *BinaryField) Tick() {
	if b.ctx == nil {
		return
	}
	b.t += binaryTimeStep
	b.ctx.Clear()
	for i := range b.symbols {
		s := &b.symbols[i]
		if b.rng.Chance(binaryRerollRate) {
			s.Value = b.digit()
		}
		b.ctx.FillText(string(s.Value), s.X, s.Y, s.Size, canvas.Palette.Blue500.WithAlpha(s.AlphaAt(b.t)))
	}
}
