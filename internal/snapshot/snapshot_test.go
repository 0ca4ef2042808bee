package snapshot

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csethon/internal/app"
	"csethon/internal/config"
)

var t0 = time.Date(2026, 3, 29, 9, 0, 0, 0, time.UTC)

// stripes returns a frame whose red channel counts the calls.
type stripes struct {
	times []time.Time
}

func (s *stripes) Frame(now time.Time) *image.RGBA {
	s.times = append(s.times, now)
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(0, 0, color.RGBA{R: uint8(len(s.times)), A: 255})
	return img
}

func TestRenderWritesEveryKth(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	f := &stripes{}
	paths, err := Render(context.Background(), f, Options{Frames: 10, Every: 3, FPS: 50, Dir: dir, Start: t0})
	require.NoError(t, err)

	require.Len(t, f.times, 10)
	assert.Equal(t, t0.Add(20*time.Millisecond), f.times[0])
	assert.Equal(t, t0.Add(200*time.Millisecond), f.times[9])

	require.Equal(t, []string{
		filepath.Join(dir, "frame-00003.png"),
		filepath.Join(dir, "frame-00006.png"),
		filepath.Join(dir, "frame-00009.png"),
	}, paths)

	file, err := os.Open(paths[1])
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(6), r>>8)
}

func TestRenderRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative frames", Options{Frames: -1, Every: 1, FPS: 60, Dir: "x"}},
		{"zero every", Options{Frames: 1, Every: 0, FPS: 60, Dir: "x"}},
		{"zero fps", Options{Frames: 1, Every: 1, Dir: "x"}},
		{"no dir", Options{Frames: 1, Every: 1, FPS: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(context.Background(), &stripes{}, tt.opts)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestRenderStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &stripes{}
	paths, err := Render(ctx, f, Options{Frames: 5, Every: 1, FPS: 60, Dir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, paths)
	assert.Empty(t, f.times)
}

func TestRenderApp(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 5
	cfg.Audio.Enabled = false
	a := app.New(app.Options{Config: cfg, Start: t0, Width: 96, Height: 64})
	defer a.Close()

	dir := t.TempDir()
	paths, err := Render(context.Background(), a, Options{Frames: 120, Every: 60, FPS: 60, Dir: dir, Start: t0})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	file, err := os.Open(paths[1])
	require.NoError(t, err)
	defer file.Close()
	cfgImg, err := png.DecodeConfig(file)
	require.NoError(t, err)
	assert.Equal(t, 96, cfgImg.Width)
	assert.Equal(t, 64, cfgImg.Height)
}
