// Package app composes the site: it owns the frame loop, runs the intro
// and then swaps in the main page over the two ambient backgrounds. Hosts
// drive it with Frame and feed it input; they never touch the animators.
package app

import (
	"image"
	"image/color"
	"time"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"csethon/internal/ambient"
	"csethon/internal/audio"
	"csethon/internal/canvas"
	"csethon/internal/config"
	"csethon/internal/content"
	"csethon/internal/frame"
	"csethon/internal/intro"
	"csethon/internal/mathutil"
	"csethon/internal/page"
)

// Phase is what the app is currently showing.
type Phase int

const (
	PhaseIntro Phase = iota
	PhasePage
)

func (p Phase) String() string {
	if p == PhasePage {
		return "page"
	}
	return "intro"
}

// Cuer plays audio cues. *audio.Player satisfies it.
type Cuer interface {
	Play(audio.Cue)
}

type Options struct {
	Config  config.Config
	Content *content.Content
	Logger  *zap.Logger
	Opener  page.Opener
	// Shader backs the intro's GPU background when set.
	Shader canvas.ShaderContext
	Audio  Cuer
	Start  time.Time
	// Width and Height override the configured window size.
	Width, Height int
}

type App struct {
	cfg  config.Config
	log  *zap.Logger
	loop *frame.Loop
	vp   *canvas.Viewport
	cues Cuer

	introBG, overlay, pageLayer, stars, binary *canvas.Layer

	intro    *intro.Sequencer
	page     *page.Page
	starf    *ambient.Starfield
	binf     *ambient.BinaryField
	overlayC intro.OverlayContent

	phase   Phase
	started bool
	reload  chan *content.Content
	out     *image.RGBA
}

func New(opts Options) *App {
	cfg := opts.Config
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Content == nil {
		opts.Content = content.Default()
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}
	w, h := cfg.Window.Width, cfg.Window.Height
	if opts.Width > 0 && opts.Height > 0 {
		w, h = opts.Width, opts.Height
	}
	seed := cfg.SeedOr(uint64(opts.Start.UnixNano()))
	log := opts.Logger

	a := &App{
		cfg:    cfg,
		log:    log.Named("app"),
		loop:   frame.NewLoop(opts.Start),
		vp:     canvas.NewViewport(w, h),
		cues:   opts.Audio,
		reload: make(chan *content.Content, 1),
	}
	a.introBG = canvas.NewLayer(a.vp).WithShader(opts.Shader)
	a.overlay = canvas.NewLayer(a.vp)
	a.pageLayer = canvas.NewLayer(a.vp)
	a.stars = canvas.NewLayer(a.vp)
	a.binary = canvas.NewLayer(a.vp)
	a.overlayC = overlayFrom(opts.Content)

	a.intro = intro.New(intro.Options{
		Schedule:        cfg.Intro.Schedule,
		FontSize:        cfg.Intro.FontSize,
		ResetChance:     cfg.Intro.ResetChance,
		HighlightChance: cfg.Intro.HighlightChance,
		Shader:          cfg.Intro.Shader,
		Seed:            seed,
		Logger:          log,
		OnStage:         a.onStage,
	})
	a.page = page.New(opts.Content, page.Options{
		Seed:   mathutil.Mix(seed, 3),
		Logger: log,
		Opener: opts.Opener,
	})
	a.starf = ambient.NewStarfield(ambient.Options{Count: cfg.Ambient.Stars, Seed: mathutil.Mix(seed, 1), Logger: log})
	a.binf = ambient.NewBinaryField(ambient.Options{Count: cfg.Ambient.Symbols, Seed: mathutil.Mix(seed, 2), Logger: log})
	return a
}

func overlayFrom(c *content.Content) intro.OverlayContent {
	o := intro.DefaultOverlay()
	if c.Intro.Title != "" {
		o.Title = c.Intro.Title
	}
	if c.Intro.Status != "" {
		o.Status = c.Intro.Status
	}
	if len(c.Intro.Events) > 0 {
		o.Events = c.Intro.Events
	}
	if c.Intro.Caption != "" {
		o.Caption = c.Intro.Caption
	}
	return o
}

// Start mounts the intro. It is called once; Frame calls it if the host
// did not.
func (a *App) Start() {
	if a.started {
		return
	}
	a.started = true
	a.intro.Mount(a.loop, a.introBG, a.enterPage)
	a.log.Info("intro started", zap.Stringer("mode", a.intro.State().Mode))
}

func (a *App) onStage(st intro.Stage) {
	if a.cues == nil {
		return
	}
	switch st {
	case intro.StageTitle:
		a.cues.Play(audio.CueTitle)
	case intro.StageEvents:
		a.cues.Play(audio.CueEvents)
	case intro.StageFinalTitle:
		a.cues.Play(audio.CueFinal)
	}
}

// enterPage is the intro's completion callback.
func (a *App) enterPage() {
	a.intro.Unmount()
	a.phase = PhasePage
	a.binf.Mount(a.loop, a.binary)
	a.starf.Mount(a.loop, a.stars)
	a.page.Mount(a.loop, a.pageLayer)
	if a.cues != nil {
		a.cues.Play(audio.CueSwell)
	}
	a.log.Info("page shown")
}

func (a *App) Phase() Phase { return a.phase }

func (a *App) Intro() *intro.Sequencer { return a.intro }

func (a *App) Page() *page.Page { return a.page }

func (a *App) Loop() *frame.Loop { return a.loop }

func (a *App) Viewport() *canvas.Viewport { return a.vp }

// Resize is the host's window or terminal size change.
func (a *App) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	a.vp.Resize(w, h)
}

// Reload hands new content to the app from any goroutine. Only the newest
// pending document is kept; it is applied on the next Frame.
func (a *App) Reload(c *content.Content) {
	for {
		select {
		case a.reload <- c:
			return
		default:
		}
		select {
		case <-a.reload:
		default:
		}
	}
}

func (a *App) applyReload() {
	select {
	case c := <-a.reload:
		a.overlayC = overlayFrom(c)
		a.page.SetContent(c)
	default:
	}
}

// Frame advances the loop to now and returns the composed frame. The
// returned image is reused by the next call.
func (a *App) Frame(now time.Time) *image.RGBA {
	a.Start()
	a.applyReload()
	a.loop.Step(now)
	return a.Compose(now)
}

// Compose draws the visible layers into the output image. During the
// shader intro the background is left transparent for the host to fill.
func (a *App) Compose(now time.Time) *image.RGBA {
	w, h := a.vp.Size()
	if a.out == nil || a.out.Bounds().Dx() != w || a.out.Bounds().Dy() != h {
		a.out = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	st := a.intro.State()
	if a.phase == PhaseIntro && st.Mode == intro.ModeShader {
		clear(a.out.Pix)
	} else {
		xdraw.Draw(a.out, a.out.Bounds(), image.NewUniform(color.Black), image.Point{}, xdraw.Src)
	}

	switch a.phase {
	case PhaseIntro:
		if st.Mode == intro.Mode2D {
			a.over(a.introBG)
		}
		ctx := a.overlay.Context2D()
		if cw, ch := ctx.Size(); cw != w || ch != h {
			ctx.Resize(w, h)
		} else {
			ctx.Clear()
		}
		intro.DrawOverlay(ctx, st, now, a.intro.FadeProgress(now), a.overlayC)
		a.over(a.overlay)
	case PhasePage:
		a.over(a.binary)
		a.over(a.stars)
		a.over(a.pageLayer)
	}
	return a.out
}

func (a *App) over(l *canvas.Layer) {
	src := l.Image().RGBA()
	xdraw.Draw(a.out, a.out.Bounds(), src, image.Point{}, xdraw.Over)
}

// Scroll, Activate and Click act on the page and are ignored during the
// intro, which cannot be skipped.
func (a *App) Scroll(dy float64) {
	if a.phase == PhasePage {
		a.page.Scroll(dy)
	}
}

func (a *App) Activate(an page.Anchor) {
	if a.phase == PhasePage {
		a.page.Activate(an)
	}
}

func (a *App) Click(x, y float64) (bool, error) {
	if a.phase != PhasePage {
		return false, nil
	}
	return a.page.Click(x, y)
}

// Register opens event i's registration link.
func (a *App) Register(i int) error {
	return a.page.Register(i)
}

// Close unmounts every animator.
func (a *App) Close() {
	a.intro.Unmount()
	a.page.Unmount()
	a.starf.Unmount()
	a.binf.Unmount()
}
