// Package page renders the scrolling main page shown after the intro: the
// hero, the event cards, the judge panel, the notice and the footer, with
// a fixed navbar on top.
package page

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"csethon/internal/canvas"
	"csethon/internal/content"
	"csethon/internal/frame"
	"csethon/internal/mathutil"
)

var ErrNoEvent = errors.New("no such event")

const (
	glitchMin   = 3 * time.Second
	glitchMax   = 8 * time.Second
	scrollEase  = 0.25
	navSolidAt  = 10.0
	revealShare = 0.9 // a section reveals once its top passes this share of the screen
)

type Options struct {
	Seed   uint64
	Logger *zap.Logger
	Opener Opener
}

func DefaultOptions() Options {
	return Options{Seed: 1, Opener: BrowserOpener{}}
}

type Page struct {
	opts Options
	log  *zap.Logger
	rng  *mathutil.Rand

	content *content.Content
	layout  *layout

	loop    *frame.Loop
	ctx     canvas.Context
	release func()
	frameID frame.ID
	timerID frame.ID

	mountedAt      time.Time
	scroll, target float64
	glitchEvery    time.Duration
	glitchAt       time.Time
	revealed       []time.Time
}

func New(c *content.Content, opts Options) *Page {
	if c == nil {
		c = content.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Opener == nil {
		opts.Opener = BrowserOpener{}
	}
	return &Page{
		opts:    opts,
		log:     opts.Logger.Named("page"),
		rng:     mathutil.NewRand(mathutil.Mix(opts.Seed, 0x9a6e)),
		content: c,
	}
}

// Mount starts drawing into surf on every frame. Without a 2D context the
// page stays inert but still answers input.
func (p *Page) Mount(loop *frame.Loop, surf canvas.Surface) {
	p.Unmount()
	p.loop = loop
	p.mountedAt = loop.Now()
	p.scroll, p.target = 0, 0
	p.glitchAt = time.Time{}
	if surf == nil || surf.Context2D() == nil {
		p.log.Debug("no 2d context, page inert")
		p.layout = nil
		return
	}
	p.ctx = surf.Context2D()
	vp := surf.Viewport()
	w, h := vp.Size()
	p.ctx.Resize(w, h)
	p.relayout(w, h)
	p.release = vp.Listen(func(w, h int) {
		p.ctx.Resize(w, h)
		p.relayout(w, h)
	})

	// The glitch cadence is chosen once per mount.
	span := float64(glitchMax - glitchMin)
	p.glitchEvery = glitchMin + time.Duration(p.rng.Float64()*span)
	p.timerID = loop.After(p.glitchEvery, p.glitch)
	p.frameID = loop.RequestFrame(p.onFrame)
}

func (p *Page) relayout(w, h int) {
	p.layout = build(p.content, w, h, p.loop.Now().Year())
	if len(p.revealed) != len(p.layout.sections) {
		p.revealed = make([]time.Time, len(p.layout.sections))
	}
	p.target = p.clampScroll(p.target)
	p.scroll = p.clampScroll(p.scroll)
}

func (p *Page) Unmount() {
	if p.loop != nil {
		if p.frameID != 0 {
			p.loop.CancelFrame(p.frameID)
		}
		if p.timerID != 0 {
			p.loop.CancelTimer(p.timerID)
		}
	}
	p.frameID, p.timerID = 0, 0
	if p.release != nil {
		p.release()
		p.release = nil
	}
	p.ctx = nil
}

func (p *Page) Running() bool { return p.frameID != 0 }

// SetContent swaps the displayed document, keeping the scroll position.
func (p *Page) SetContent(c *content.Content) {
	if c == nil {
		return
	}
	p.content = c
	if p.layout != nil {
		w, h := int(p.layout.w), int(p.layout.h)
		p.layout = build(c, w, h, p.layout.year)
		p.revealed = make([]time.Time, len(p.layout.sections))
		p.target = p.clampScroll(p.target)
		p.scroll = p.clampScroll(p.scroll)
	}
	p.log.Info("content replaced", zap.String("title", c.Site.Title))
}

func (p *Page) glitch() {
	p.glitchAt = p.loop.Now()
	p.timerID = p.loop.After(p.glitchEvery, p.glitch)
}

// GlitchInterval is the cadence picked at mount.
func (p *Page) GlitchInterval() time.Duration { return p.glitchEvery }

func (p *Page) onFrame(now time.Time) {
	p.frameID = 0
	p.Draw(now)
	p.frameID = p.loop.RequestFrame(p.onFrame)
}

// Draw eases the scroll, marks newly visible sections revealed and paints
// the page. It does nothing while unmounted.
func (p *Page) Draw(now time.Time) {
	if p.ctx == nil || p.layout == nil {
		return
	}
	p.scroll += (p.target - p.scroll) * scrollEase
	if d := p.target - p.scroll; d < 0.5 && d > -0.5 {
		p.scroll = p.target
	}
	p.reveal(now)

	fs := &frameState{now: now, mounted: p.mountedAt, revealed: p.revealed, glitchAt: p.glitchAt}
	p.ctx.Clear()
	drawItems(p.ctx, p.layout.items, fs, p.scroll, p.layout.h)
	if p.NavScrolled() {
		p.ctx.FillRect(0, 0, p.layout.w, navHeight, canvas.Palette.Black.WithAlpha(0.8))
	}
	drawItems(p.ctx, p.layout.nav, fs, 0, p.layout.h)
}

func (p *Page) reveal(now time.Time) {
	edge := p.scroll + p.layout.h*revealShare
	for i, top := range p.layout.sections {
		if p.revealed[i].IsZero() && top <= edge {
			p.revealed[i] = now
		}
	}
}

// Revealed reports whether the section at a has entered view at least once.
func (p *Page) Revealed(a Anchor) bool {
	i := int(a)
	return i >= 0 && i < len(p.revealed) && !p.revealed[i].IsZero()
}

func (p *Page) maxScroll() float64 {
	if p.layout == nil {
		return 0
	}
	return max(0, p.layout.height-p.layout.h)
}

func (p *Page) clampScroll(y float64) float64 {
	return mathutil.ClampF(y, 0, p.maxScroll())
}

// Scroll moves the scroll target by dy pixels.
func (p *Page) Scroll(dy float64) {
	p.target = p.clampScroll(p.target + dy)
}

func (p *Page) ScrollY() float64 { return p.scroll }

func (p *Page) ScrollTarget() float64 { return p.target }

// Height is the laid out document height.
func (p *Page) Height() float64 {
	if p.layout == nil {
		return 0
	}
	return p.layout.height
}

// Activate scrolls smoothly to an anchor.
func (p *Page) Activate(a Anchor) {
	if p.layout == nil || a < 0 || a >= anchorCount {
		return
	}
	y := p.layout.anchors[a]
	if a != AnchorHome {
		y -= navHeight
	}
	p.target = p.clampScroll(y)
	p.log.Debug("anchor", zap.Stringer("anchor", a))
}

// Register opens the registration link of event i.
func (p *Page) Register(i int) error {
	if i < 0 || i >= len(p.content.Events) {
		return fmt.Errorf("register %d: %w", i, ErrNoEvent)
	}
	e := p.content.Events[i]
	p.log.Info("register", zap.String("event", e.Title), zap.String("url", e.RegisterURL))
	if err := p.opts.Opener.Open(e.RegisterURL); err != nil {
		return fmt.Errorf("open register link for %q: %w", e.Title, err)
	}
	return nil
}

// Click runs the action under screen position x,y. It reports whether
// anything was hit.
func (p *Page) Click(x, y float64) (bool, error) {
	if p.layout == nil {
		return false, nil
	}
	for _, fixed := range []bool{true, false} {
		py := y
		if !fixed {
			py += p.scroll
		}
		for _, h := range p.layout.hits {
			if h.fixed != fixed || !h.contains(x, py) {
				continue
			}
			if h.act.register >= 0 {
				return true, p.Register(h.act.register)
			}
			p.Activate(h.act.anchor)
			return true, nil
		}
	}
	return false, nil
}

// NavScrolled reports whether the navbar shows its solid background.
func (p *Page) NavScrolled() bool { return p.scroll > navSolidAt }
