package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csethon/internal/audio"
	"csethon/internal/canvas/canvastest"
	"csethon/internal/config"
	"csethon/internal/content"
	"csethon/internal/intro"
	"csethon/internal/page"
)

const tick = 16 * time.Millisecond

var t0 = time.Date(2026, 3, 29, 9, 0, 0, 0, time.UTC)

type cueLog struct{ cues []audio.Cue }

func (c *cueLog) Play(cue audio.Cue) { c.cues = append(c.cues, cue) }

type urlLog struct{ urls []string }

func (u *urlLog) Open(url string) error {
	u.urls = append(u.urls, url)
	return nil
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 11
	cfg.Ambient.Stars = 20
	cfg.Ambient.Symbols = 30
	return cfg
}

func newApp(t *testing.T, mutate func(*Options)) (*App, *cueLog, *urlLog) {
	t.Helper()
	cues, urls := &cueLog{}, &urlLog{}
	opts := Options{Config: testConfig(), Audio: cues, Opener: urls, Start: t0, Width: 160, Height: 120}
	if mutate != nil {
		mutate(&opts)
	}
	a := New(opts)
	t.Cleanup(a.Close)
	return a, cues, urls
}

// runUntilPage steps frames until the page shows and returns the number of
// frames it took.
func runUntilPage(t *testing.T, a *App) (int, time.Time) {
	t.Helper()
	now := t0
	for n := 1; n <= 1000; n++ {
		now = now.Add(tick)
		a.Frame(now)
		if a.Phase() == PhasePage {
			return n, now
		}
	}
	t.Fatal("intro never completed")
	return 0, now
}

func TestIntroHandsOverToPage(t *testing.T) {
	a, cues, _ := newApp(t, nil)
	a.Frame(t0.Add(tick))
	require.Equal(t, PhaseIntro, a.Phase())
	assert.Equal(t, intro.Mode2D, a.Intro().State().Mode, "no shader context")
	assert.Equal(t, 1, a.Viewport().Listeners(), "intro only")

	n, at := runUntilPage(t, a)
	sched := intro.DefaultSchedule()
	assert.Greater(t, n, sched.Complete)
	assert.GreaterOrEqual(t, at.Sub(t0), time.Duration(sched.Complete)*tick+sched.FadeOut)

	assert.True(t, a.Page().Running())
	assert.Equal(t, 3, a.Viewport().Listeners(), "page and both ambient layers")
	assert.True(t, a.Intro().State().Completed)
	assert.Equal(t, []audio.Cue{audio.CueTitle, audio.CueEvents, audio.CueFinal, audio.CueSwell}, cues.cues)
	assert.Equal(t, "page", a.Phase().String())
}

func TestComposeMatchesViewport(t *testing.T) {
	a, _, _ := newApp(t, nil)
	img := a.Frame(t0.Add(tick))
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
	assert.Equal(t, uint8(255), img.RGBAAt(0, 0).A, "2d intro composes opaque")

	a.Resize(200, 100)
	img = a.Frame(t0.Add(2 * tick))
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	a.Resize(0, 10)
	w, h := a.Viewport().Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
}

func TestShaderIntroLeavesBackgroundToHost(t *testing.T) {
	sc := &canvastest.Shader{}
	a, _, _ := newApp(t, func(o *Options) { o.Shader = sc })
	img := a.Frame(t0.Add(tick))
	require.Equal(t, intro.ModeShader, a.Intro().State().Mode)
	require.Len(t, sc.Programs, 1)
	assert.NotEmpty(t, sc.Programs[0].Draws)
	assert.Zero(t, img.RGBAAt(0, 0).A)

	runUntilPage(t, a)
	assert.True(t, sc.Programs[0].Released)
	img = a.Frame(a.Loop().Now().Add(tick))
	assert.Equal(t, uint8(255), img.RGBAAt(0, 0).A)
}

func TestShaderFailureFallsBack(t *testing.T) {
	sc := &canvastest.Shader{Err: errors.New("no float textures")}
	a, _, _ := newApp(t, func(o *Options) { o.Shader = sc })
	a.Frame(t0.Add(tick))
	assert.Equal(t, intro.Mode2D, a.Intro().State().Mode)
}

func TestInputIgnoredDuringIntro(t *testing.T) {
	a, _, urls := newApp(t, func(o *Options) { o.Width, o.Height = 1024, 600 })
	a.Frame(t0.Add(tick))
	a.Scroll(500)
	a.Activate(page.AnchorEvents)
	ok, err := a.Click(10, 10)
	assert.False(t, ok)
	assert.NoError(t, err)

	_, now := runUntilPage(t, a)
	assert.Zero(t, a.Page().ScrollTarget())

	a.Scroll(300)
	assert.Equal(t, 300.0, a.Page().ScrollTarget())
	a.Activate(page.AnchorHome)
	assert.Zero(t, a.Page().ScrollTarget())
	a.Frame(now.Add(tick))

	require.NoError(t, a.Register(0))
	assert.Equal(t, []string{"https://your-gform-link-here.com"}, urls.urls)
	assert.ErrorIs(t, a.Register(5), page.ErrNoEvent)
}

func TestReloadKeepsNewest(t *testing.T) {
	a, _, urls := newApp(t, nil)
	first := content.Default()
	first.Events[0].RegisterURL = "https://example.com/first"
	second := content.Default()
	second.Events[0].RegisterURL = "https://example.com/second"
	second.Intro.Caption = "SEE YOU THERE"

	a.Reload(first)
	a.Reload(second)
	a.Frame(t0.Add(tick))

	assert.Equal(t, "SEE YOU THERE", a.overlayC.Caption)
	require.NoError(t, a.Register(0))
	assert.Equal(t, []string{"https://example.com/second"}, urls.urls)
}

func TestOverlayFromFallsBack(t *testing.T) {
	o := overlayFrom(&content.Content{})
	assert.Equal(t, intro.DefaultOverlay(), o)
}

func TestCloseStopsEverything(t *testing.T) {
	a, _, _ := newApp(t, nil)
	runUntilPage(t, a)
	a.Close()
	assert.Zero(t, a.Loop().Pending())
	assert.Zero(t, a.Viewport().Listeners())
}
