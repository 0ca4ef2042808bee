package page

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csethon/internal/canvas"
	"csethon/internal/canvas/canvastest"
	"csethon/internal/content"
	"csethon/internal/frame"
)

var t0 = time.Date(2026, 3, 29, 9, 0, 0, 0, time.UTC)

type openRecorder struct {
	urls []string
	err  error
}

func (o *openRecorder) Open(url string) error {
	o.urls = append(o.urls, url)
	return o.err
}

func mounted(t *testing.T, w, h int) (*Page, *frame.Loop, *canvastest.Surface, *canvastest.Recorder, *openRecorder) {
	t.Helper()
	op := &openRecorder{}
	p := New(content.Default(), Options{Seed: 7, Opener: op})
	loop := frame.NewLoop(t0)
	surf, rec := canvastest.NewSurface(w, h)
	p.Mount(loop, surf)
	require.True(t, p.Running())
	return p, loop, surf, rec, op
}

func stepTo(l *frame.Loop, at time.Time) {
	for now := l.Now(); now.Before(at); {
		now = now.Add(16 * time.Millisecond)
		if now.After(at) {
			now = at
		}
		l.Step(now)
	}
}

func sameRGB(a, b canvas.Color) bool { return a.R == b.R && a.G == b.G && a.B == b.B }

func textsIn(rec *canvastest.Recorder) []string {
	var out []string
	for _, op := range rec.Filter(canvastest.OpFillText) {
		if op.Color.A > 0 {
			out = append(out, op.Text)
		}
	}
	return out
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want Anchor
		ok   bool
	}{
		{"#", AnchorHome, true},
		{"Home", AnchorHome, true},
		{"#events", AnchorEvents, true},
		{"judges", AnchorJudges, true},
		{"FOOTER", AnchorFooter, true},
		{"#prizes", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAnchor(tt.in)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
	assert.Equal(t, "events", AnchorEvents.String())
	assert.Equal(t, "anchor(9)", Anchor(9).String())
}

func TestLayoutSectionsInOrder(t *testing.T) {
	l := build(content.Default(), 1280, 720, 2026)
	require.Len(t, l.sections, int(anchorCount))
	for i := 1; i < len(l.sections); i++ {
		assert.Greater(t, l.sections[i], l.sections[i-1])
	}
	assert.Equal(t, 720.0, l.anchors[AnchorEvents], "hero fills the first screen")
	assert.Greater(t, l.height, l.sections[AnchorFooter])

	var all []string
	for _, it := range l.items {
		all = append(all, it.text)
	}
	joined := strings.Join(all, "|")
	assert.Contains(t, joined, "CSE-A-THON")
	assert.Contains(t, joined, "Register for Hackathon")
	assert.Contains(t, joined, "Rishi Paul")
	assert.Contains(t, joined, "(c) 2026")
}

func TestLayoutNarrowDropsNavLinks(t *testing.T) {
	wide := build(content.Default(), 1280, 720, 2026)
	narrow := build(content.Default(), 600, 720, 2026)
	assert.Len(t, wide.nav, 3)
	assert.Len(t, narrow.nav, 1)
	assert.Greater(t, narrow.height, wide.height, "single column stacks taller")
}

func TestRegisterOpensEventURL(t *testing.T) {
	p, _, _, _, op := mounted(t, 1280, 720)
	require.NoError(t, p.Register(0))
	assert.Equal(t, []string{"https://your-gform-link-here.com"}, op.urls)
}

func TestRegisterErrors(t *testing.T) {
	p, _, _, _, op := mounted(t, 1280, 720)

	err := p.Register(3)
	assert.ErrorIs(t, err, ErrNoEvent)
	assert.Empty(t, op.urls)

	boom := errors.New("no browser")
	op.err = boom
	err = p.Register(0)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Hackathon")
}

func TestScrollClampsToDocument(t *testing.T) {
	p, _, _, _, _ := mounted(t, 1280, 720)
	p.Scroll(-100)
	assert.Zero(t, p.ScrollTarget())
	p.Scroll(1e9)
	assert.Equal(t, p.Height()-720, p.ScrollTarget())
}

func TestActivateEasesToAnchor(t *testing.T) {
	p, loop, _, _, _ := mounted(t, 1280, 720)
	p.Activate(AnchorEvents)
	want := 720.0 - navHeight
	assert.Equal(t, want, p.ScrollTarget())

	stepTo(loop, t0.Add(16*time.Millisecond))
	first := p.ScrollY()
	assert.InDelta(t, want*scrollEase, first, 1e-9)

	stepTo(loop, t0.Add(2*time.Second))
	assert.Equal(t, want, p.ScrollY())
	assert.True(t, p.NavScrolled())

	p.Activate(AnchorHome)
	stepTo(loop, t0.Add(4*time.Second))
	assert.Zero(t, p.ScrollY())
	assert.False(t, p.NavScrolled())
}

func TestSectionsRevealOnce(t *testing.T) {
	p, loop, _, _, _ := mounted(t, 1280, 720)
	stepTo(loop, t0.Add(100*time.Millisecond))
	assert.True(t, p.Revealed(AnchorHome))
	assert.False(t, p.Revealed(AnchorEvents))

	p.Activate(AnchorEvents)
	stepTo(loop, t0.Add(time.Second))
	require.True(t, p.Revealed(AnchorEvents))
	at := p.revealed[AnchorEvents]

	p.Activate(AnchorHome)
	stepTo(loop, t0.Add(2*time.Second))
	p.Activate(AnchorEvents)
	stepTo(loop, t0.Add(3*time.Second))
	assert.Equal(t, at, p.revealed[AnchorEvents], "reveal time is kept")
}

func TestNavbarBackgroundAfterScroll(t *testing.T) {
	p, loop, _, rec, _ := mounted(t, 1280, 720)
	solid := func() bool {
		for _, op := range rec.Filter(canvastest.OpFillRect) {
			if op.Rect == [4]float64{0, 0, 1280, navHeight} && op.Color.A == 0.8 {
				return true
			}
		}
		return false
	}
	stepTo(loop, t0.Add(16*time.Millisecond))
	assert.False(t, solid())

	p.Scroll(200)
	stepTo(loop, t0.Add(time.Second))
	rec.Reset()
	stepTo(loop, t0.Add(time.Second+16*time.Millisecond))
	assert.True(t, solid())
}

func TestGlitchBursts(t *testing.T) {
	p, loop, _, rec, _ := mounted(t, 1280, 720)
	every := p.GlitchInterval()
	require.GreaterOrEqual(t, every, glitchMin)
	require.Less(t, every, glitchMax)

	redCopies := func() int {
		n := 0
		for _, op := range rec.Filter(canvastest.OpFillText) {
			if sameRGB(op.Color, canvas.Palette.Red400) {
				n++
			}
		}
		return n
	}

	stepTo(loop, t0.Add(every-16*time.Millisecond))
	assert.Zero(t, redCopies())

	rec.Reset()
	stepTo(loop, t0.Add(every))
	assert.Equal(t, 1, redCopies())

	stepTo(loop, t0.Add(every+300*time.Millisecond))
	rec.Reset()
	stepTo(loop, t0.Add(every+316*time.Millisecond))
	assert.Zero(t, redCopies(), "burst is over")

	rec.Reset()
	stepTo(loop, t0.Add(2*every))
	assert.Equal(t, 1, redCopies(), "bursts repeat at the same interval")
}

func TestHeroFadesIn(t *testing.T) {
	_, loop, _, rec, _ := mounted(t, 1280, 720)
	stepTo(loop, t0.Add(16*time.Millisecond))
	early := rec.Filter(canvastest.OpFillText)
	rec.Reset()
	stepTo(loop, t0.Add(time.Second))
	rec.Reset()
	stepTo(loop, t0.Add(time.Second+16*time.Millisecond))

	alphaOf := func(ops []canvastest.Op, text string) float64 {
		for _, op := range ops {
			if op.Text == text {
				return op.Color.A
			}
		}
		return -1
	}
	assert.Less(t, alphaOf(early, "Explore Events"), 0.1)
	assert.Equal(t, 1.0, alphaOf(rec.Filter(canvastest.OpFillText), "Explore Events"))
	assert.Contains(t, textsIn(rec), "March 29 - April 1")
}

func TestClickNavAndRegister(t *testing.T) {
	p, _, _, _, op := mounted(t, 1280, 720)

	var events, register hit
	for _, h := range p.layout.hits {
		switch {
		case h.fixed && h.act.anchor == AnchorEvents:
			events = h
		case h.act.register == 0:
			register = h
		}
	}
	require.NotZero(t, events.w)
	require.NotZero(t, register.w)

	ok, err := p.Click(events.x+1, events.y+1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 720.0-navHeight, p.ScrollTarget())

	ok, err = p.Click(register.x+1, register.y+1-p.ScrollY())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, op.urls, 1)

	ok, err = p.Click(-10, -10)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestResizeRelayouts(t *testing.T) {
	p, _, surf, rec, _ := mounted(t, 1280, 720)
	surf.VP.Resize(640, 480)
	assert.Equal(t, 640, rec.W)
	assert.Equal(t, 640.0, p.layout.w)
	assert.Len(t, p.layout.nav, 1)
}

func TestUnmountStopsEverything(t *testing.T) {
	p, loop, surf, rec, _ := mounted(t, 1280, 720)
	p.Unmount()
	assert.False(t, p.Running())
	assert.Zero(t, loop.Pending(), "frame and glitch timer cancelled")
	assert.Zero(t, surf.VP.Listeners())

	rec.Reset()
	stepTo(loop, t0.Add(10*time.Second))
	assert.Empty(t, rec.Ops)
	p.Unmount()
}

func TestInertPageStillRegisters(t *testing.T) {
	op := &openRecorder{}
	p := New(nil, Options{Opener: op})
	loop := frame.NewLoop(t0)
	p.Mount(loop, canvastest.Unavailable(800, 600))
	assert.False(t, p.Running())
	assert.Zero(t, loop.Pending())
	p.Activate(AnchorEvents)
	p.Draw(t0)
	require.NoError(t, p.Register(0))
	assert.Len(t, op.urls, 1)
}

func TestSetContentKeepsScroll(t *testing.T) {
	p, loop, _, rec, _ := mounted(t, 1280, 720)
	p.Scroll(300)
	stepTo(loop, t0.Add(time.Second))

	c := content.Default()
	c.Site.Title = "CSE-A-THON 2"
	p.SetContent(c)
	assert.Equal(t, 300.0, p.ScrollY())

	found := false
	for _, it := range p.layout.items {
		found = found || it.text == "CSE-A-THON 2"
	}
	assert.True(t, found)

	rec.Reset()
	stepTo(loop, t0.Add(time.Second+16*time.Millisecond))
	assert.NotEmpty(t, rec.Ops)
}
