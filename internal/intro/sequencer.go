// Package intro plays the splash sequence shown before the main page: a
// binary rain over generative circuit graphics, staged title reveals and a
// single completion signal once the sequence has faded out.
package intro

import (
	"time"

	"go.uber.org/zap"

	"csethon/internal/canvas"
	"csethon/internal/frame"
	"csethon/internal/mathutil"
)

// Mode is the rendering path chosen at mount time.
type Mode int

const (
	ModeInert  Mode = iota // no 2D context; nothing is drawn
	Mode2D                 // software canvas path
	ModeShader             // fragment program background
)

func (m Mode) String() string {
	switch m {
	case Mode2D:
		return "2d"
	case ModeShader:
		return "shader"
	}
	return "inert"
}

type Options struct {
	Schedule        Schedule
	FontSize        float64
	ResetChance     float64
	HighlightChance float64
	// Shader asks for the GPU background when the surface offers one.
	Shader bool
	Seed   uint64
	Logger *zap.Logger
	// OnStage is called on every stage advance, after the state changed.
	OnStage func(Stage)
}

func DefaultOptions() Options {
	return Options{
		Schedule:        DefaultSchedule(),
		FontSize:        14,
		ResetChance:     0.02,
		HighlightChance: 0.02,
		Seed:            1,
	}
}

// State is a snapshot of the sequencer. Show* flags are set once and never
// cleared within a mount.
type State struct {
	Mode  Mode
	Frame int // frames drawn so far
	Stage Stage

	ShowTitle      bool
	ShowEvents     bool
	ShowFinalTitle bool

	Finished  bool // frame callback stopped, fade in progress
	Completed bool // completion callback delivered

	MountedAt  time.Time
	StageAt    [StageHold + 1]time.Time
	FinishedAt time.Time
}

// Sequencer drives the intro on a frame.Loop. It owns its drop pool and the
// surface it is mounted on; nothing is shared with other animators.
type Sequencer struct {
	opts   Options
	log    *zap.Logger
	rng    *mathutil.Rand
	layers []layer
	steps  []stageStep
	rain   rain

	loop       *frame.Loop
	ctx        canvas.Context
	vp         *canvas.Viewport
	program    canvas.Program
	release    func()
	onComplete func()
	frameID    frame.ID
	timerID    frame.ID
	mounted    bool

	state State
}

func New(opts Options) *Sequencer {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Sequencer{
		opts:   opts,
		log:    opts.Logger.Named("intro"),
		rng:    mathutil.NewRand(opts.Seed),
		layers: layersFor(opts.Schedule),
		steps:  opts.Schedule.steps(),
		rain: rain{
			fontSize:        opts.FontSize,
			resetChance:     opts.ResetChance,
			highlightChance: opts.HighlightChance,
		},
	}
}

// Mount binds the sequencer to surf and schedules the first frame.
// onComplete is invoked at most once, FadeOut after the last threshold.
// Without a 2D context the sequencer stays inert and never completes.
func (s *Sequencer) Mount(loop *frame.Loop, surf canvas.Surface, onComplete func()) {
	if s.mounted {
		s.Unmount()
	}
	s.state = State{MountedAt: loop.Now()}
	s.loop = loop
	s.onComplete = onComplete

	if surf == nil || surf.Context2D() == nil {
		s.log.Debug("no 2d context, intro inert")
		s.state.Mode = ModeInert
		s.ctx, s.vp = nil, nil
		return
	}
	s.ctx = surf.Context2D()
	s.vp = surf.Viewport()
	w, h := s.vp.Size()
	s.ctx.Resize(w, h)
	s.rain.drops = nil
	s.rain.fit(w, s.rng)
	s.release = s.vp.Listen(s.resize)

	s.state.Mode = Mode2D
	if s.opts.Shader {
		s.program = s.compileShader(surf)
		if s.program != nil {
			s.state.Mode = ModeShader
		}
	}
	s.mounted = true
	s.log.Debug("intro mounted",
		zap.Stringer("mode", s.state.Mode),
		zap.Int("width", w), zap.Int("height", h),
		zap.Int("drops", len(s.rain.drops)))
	s.frameID = loop.RequestFrame(s.onFrame)
}

func (s *Sequencer) compileShader(surf canvas.Surface) canvas.Program {
	ss, ok := surf.(canvas.ShaderSurface)
	if !ok || ss.Shader() == nil {
		s.log.Info("no shader context, using 2d intro")
		return nil
	}
	prog, err := ss.Shader().Compile("intro", FragmentShader)
	if err != nil {
		s.log.Warn("intro shader failed, using 2d intro", zap.Error(err))
		return nil
	}
	return prog
}

// Unmount cancels the pending frame and completion timer and releases the
// resize listener and shader program. It is safe to call at any time.
func (s *Sequencer) Unmount() {
	if s.loop != nil {
		if s.frameID != 0 {
			s.loop.CancelFrame(s.frameID)
		}
		if s.timerID != 0 {
			s.loop.CancelTimer(s.timerID)
		}
	}
	s.frameID, s.timerID = 0, 0
	if s.release != nil {
		s.release()
		s.release = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	s.onComplete = nil
	s.ctx, s.vp = nil, nil
	s.mounted = false
}

func (s *Sequencer) State() State { return s.state }

// Drops returns a copy of the rain pool.
func (s *Sequencer) Drops() []Drop {
	return append([]Drop(nil), s.rain.drops...)
}

// FadeProgress is 0 until the sequence finishes, then rises to 1 over the
// fade-out delay.
func (s *Sequencer) FadeProgress(now time.Time) float64 {
	if !s.state.Finished {
		return 0
	}
	if s.opts.Schedule.FadeOut <= 0 {
		return 1
	}
	return mathutil.ClampF(float64(now.Sub(s.state.FinishedAt))/float64(s.opts.Schedule.FadeOut), 0, 1)
}

func (s *Sequencer) onFrame(time.Time) {
	s.frameID = 0
	if s.Tick(s.state.Frame) {
		s.frameID = s.loop.RequestFrame(s.onFrame)
		return
	}
	s.state.FinishedAt = s.loop.Now()
	s.log.Debug("intro finished", zap.Int("frame", s.state.Frame))
	s.timerID = s.loop.After(s.opts.Schedule.FadeOut, s.complete)
	if s.program != nil {
		s.frameID = s.loop.RequestFrame(s.holdFrame)
	}
}

// holdFrame repeats the last shader frame while the overlay fades. A GPU
// background only exists for frames it is drawn in.
func (s *Sequencer) holdFrame(time.Time) {
	s.frameID = 0
	if s.program == nil || s.ctx == nil || s.state.Completed {
		return
	}
	w, h := s.ctx.Size()
	s.program.Draw(shaderTime(s.state.Frame-1), w, h)
	s.frameID = s.loop.RequestFrame(s.holdFrame)
}

func shaderTime(frameIndex int) float64 {
	return float64(frameIndex*frameMillis) / 1000
}

func (s *Sequencer) complete() {
	s.timerID = 0
	if s.frameID != 0 {
		s.loop.CancelFrame(s.frameID)
		s.frameID = 0
	}
	if s.state.Completed || s.onComplete == nil {
		return
	}
	s.state.Completed = true
	s.log.Debug("intro complete")
	fn := s.onComplete
	s.onComplete = nil
	fn()
}

// Tick draws frame frameIndex and advances the stage. It returns false once
// the final threshold has been crossed, after which no further frames
// should be requested. An inert or unmounted sequencer draws nothing and
// returns false.
func (s *Sequencer) Tick(frameIndex int) bool {
	if !s.mounted || s.ctx == nil || s.state.Finished {
		return false
	}
	w, h := s.ctx.Size()

	if s.program != nil {
		s.program.Draw(shaderTime(frameIndex), w, h)
	} else {
		s.ctx.FillRect(0, 0, float64(w), float64(h), canvas.Palette.Black.WithAlpha(0.1))
		for _, l := range s.layers {
			if frameIndex > l.after {
				l.draw(s.ctx, w, h, frameIndex, s.rng)
			}
		}
		s.rain.draw(s.ctx, h, frameIndex > s.opts.Schedule.TechChars, s.rng)
	}

	count := frameIndex + 1
	s.state.Frame = count
	return s.advance(count)
}

// advance moves at most one stage forward. It reports false when the
// sequence has run its course.
func (s *Sequencer) advance(count int) bool {
	st := s.state.Stage
	if int(st) < len(s.steps) {
		step := s.steps[st]
		if count > step.after {
			s.enter(step.to)
		}
		return true
	}
	if count > s.opts.Schedule.Complete {
		s.state.Finished = true
		return false
	}
	return true
}

func (s *Sequencer) enter(st Stage) {
	s.state.Stage = st
	switch st {
	case StageTitle:
		s.state.ShowTitle = true
	case StageEvents:
		s.state.ShowEvents = true
	case StageFinalTitle:
		s.state.ShowFinalTitle = true
	}
	if s.loop != nil {
		s.state.StageAt[st] = s.loop.Now()
	}
	s.log.Debug("intro stage", zap.Stringer("stage", st), zap.Int("frame", s.state.Frame))
	if s.opts.OnStage != nil {
		s.opts.OnStage(st)
	}
}

func (s *Sequencer) resize(w, h int) {
	s.ctx.Resize(w, h)
	s.rain.fit(w, s.rng)
}
