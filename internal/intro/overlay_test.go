package intro

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csethon/internal/canvas/canvastest"
)

func overlayState() State {
	st := State{Mode: Mode2D, MountedAt: t0, Stage: StageFinalTitle, ShowTitle: true, ShowEvents: true, ShowFinalTitle: true}
	st.StageAt[StageTitle] = t0.Add(1600 * time.Millisecond)
	st.StageAt[StageEvents] = t0.Add(2400 * time.Millisecond)
	st.StageAt[StageFinalTitle] = t0.Add(3200 * time.Millisecond)
	return st
}

func texts(rec *canvastest.Recorder) string {
	var b strings.Builder
	for _, op := range rec.Filter(canvastest.OpFillText) {
		if op.Color.A > 0 {
			b.WriteString(op.Text)
			b.WriteByte('|')
		}
	}
	return b.String()
}

func TestOverlayInertDrawsNothing(t *testing.T) {
	rec := canvastest.NewRecorder(800, 600)
	DrawOverlay(rec, State{}, t0.Add(10*time.Second), 0, DefaultOverlay())
	assert.Empty(t, rec.Ops)
}

func TestOverlayFullyFadedDrawsNothing(t *testing.T) {
	rec := canvastest.NewRecorder(800, 600)
	DrawOverlay(rec, overlayState(), t0.Add(10*time.Second), 1, DefaultOverlay())
	assert.Empty(t, rec.Ops)
}

func TestOverlayShowsStagedText(t *testing.T) {
	rec := canvastest.NewRecorder(1024, 768)
	c := DefaultOverlay()
	DrawOverlay(rec, overlayState(), t0.Add(6*time.Second), 0, c)
	got := texts(rec)

	assert.Contains(t, got, "C|S|E|-|A|-|T|H|O|N|")
	assert.Contains(t, got, c.Status)
	assert.Contains(t, got, c.Caption)
	for _, e := range c.Events {
		assert.Contains(t, got, e)
	}
}

func TestOverlayHidesUnrevealedText(t *testing.T) {
	rec := canvastest.NewRecorder(1024, 768)
	st := State{Mode: Mode2D, MountedAt: t0}
	c := DefaultOverlay()
	DrawOverlay(rec, st, t0.Add(time.Second), 0, c)
	assert.Empty(t, rec.Filter(canvastest.OpFillText))
	assert.NotEmpty(t, rec.Filter(canvastest.OpFillCircle), "orb")
}

func TestOverlayEventsStagger(t *testing.T) {
	rec := canvastest.NewRecorder(1024, 768)
	st := overlayState()
	c := DefaultOverlay()
	DrawOverlay(rec, st, st.StageAt[StageEvents].Add(200*time.Millisecond), 0, c)
	got := texts(rec)
	assert.Contains(t, got, c.Events[0])
	assert.Contains(t, got, c.Events[1])
	assert.NotContains(t, got, c.Events[2])
}

func TestLoadingBarGrows(t *testing.T) {
	width := func(at time.Duration) float64 {
		rec := canvastest.NewRecorder(800, 600)
		DrawOverlay(rec, State{Mode: Mode2D, MountedAt: t0}, t0.Add(at), 0, DefaultOverlay())
		w := 0.0
		for _, op := range rec.Filter(canvastest.OpFillRect)[1:] {
			w += op.Rect[2]
		}
		return w
	}
	rec := canvastest.NewRecorder(800, 600)
	DrawOverlay(rec, State{Mode: Mode2D, MountedAt: t0}, t0.Add(100*time.Millisecond), 0, DefaultOverlay())
	require.Empty(t, rec.Filter(canvastest.OpFillRect), "bar appears after its delay")

	early, mid, done := width(time.Second), width(2500*time.Millisecond), width(6*time.Second)
	assert.Less(t, early, mid)
	assert.InDelta(t, 128, mid, 1)
	assert.InDelta(t, 256, done, 1e-6)
}
