//go:build !android

// Package desktop hosts the site in a GLFW window. The intro background
// runs as a real GL program when it compiles; everything else is drawn in
// software and uploaded as one texture per frame.
package desktop

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"csethon/internal/app"
	"csethon/internal/config"
)

// Options carries what the host needs beyond the app options it builds.
type Options struct {
	Config config.Config
	App    app.Options
	Logger *zap.Logger
	// Reload receives the content watcher's hook once the app exists.
	Reload func(*app.App)
}

// Run opens the window and blocks until it is closed or ctx is done. It
// must be called from the main goroutine.
func Run(ctx context.Context, opts Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("desktop")
	cfg := opts.Config

	window, err := initWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	log.Info("gl ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	fbW, fbH := window.GetFramebufferSize()
	appOpts := opts.App
	appOpts.Config = cfg
	appOpts.Width, appOpts.Height = fbW, fbH
	if cfg.Intro.Shader {
		appOpts.Shader = rend
	}
	start := time.Now()
	appOpts.Start = start
	a := app.New(appOpts)
	defer a.Close()
	if opts.Reload != nil {
		opts.Reload(a)
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		a.Resize(w, h)
	})
	input := NewInput(window)

	a.Start()
	clock, last := start, glfw.GetTime()
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			break
		}
		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			// Minimised.
			time.Sleep(cfg.FrameInterval())
			continue
		}
		input.Apply(window, a, fbW, fbH, log)

		now := glfw.GetTime()
		dt := time.Duration((now - last) * float64(time.Second))
		last = now
		clock = clock.Add(min(dt, config.MaxFrameDelta))
		frame := a.Frame(clock)
		rend.Render(frame, fbW, fbH)
		window.SwapBuffers()
	}
	log.Info("window closed")
	return nil
}
