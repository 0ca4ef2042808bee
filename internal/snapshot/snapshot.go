// Package snapshot renders frames headlessly on a synthetic clock and
// writes them out as PNG files.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

var ErrInvalid = errors.New("invalid snapshot options")

// Framer produces the frame for a point in time.
type Framer interface {
	Frame(now time.Time) *image.RGBA
}

type Options struct {
	Frames int // frames to step
	Every  int // write every k-th frame
	FPS    int
	Dir    string
	Start  time.Time
	Logger *zap.Logger
}

func (o Options) validate() error {
	switch {
	case o.Frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalid, o.Frames)
	case o.Every <= 0:
		return fmt.Errorf("%w: every %d", ErrInvalid, o.Every)
	case o.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, o.FPS)
	case o.Dir == "":
		return fmt.Errorf("%w: empty output dir", ErrInvalid)
	}
	return nil
}

// FileName is the name frame n is written under.
func FileName(n int) string { return fmt.Sprintf("frame-%05d.png", n) }

// Render steps f through opts.Frames frames, one FPS interval apart, and
// writes frames Every, 2*Every, ... to opts.Dir. It returns the written
// paths.
func Render(ctx context.Context, f Framer, opts Options) ([]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	log := opts.Logger.Named("snapshot")
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", opts.Dir, err)
	}

	step := time.Second / time.Duration(opts.FPS)
	now := opts.Start
	var written []string
	for n := 1; n <= opts.Frames; n++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		now = now.Add(step)
		img := f.Frame(now)
		if n%opts.Every != 0 {
			continue
		}
		path := filepath.Join(opts.Dir, FileName(n))
		if err := writePNG(path, img); err != nil {
			return written, err
		}
		written = append(written, path)
		log.Debug("frame written", zap.Int("frame", n), zap.String("path", path))
	}
	log.Info("snapshot done", zap.Int("frames", opts.Frames), zap.Int("written", len(written)))
	return written, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
