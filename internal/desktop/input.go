//go:build !android

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"csethon/internal/app"
	"csethon/internal/page"
)

const (
	arrowStep = 48.0
	wheelStep = 60.0
)

// Input tracks key and button edges between polls and the wheel delta
// delivered by the scroll callback.
type Input struct {
	prevMouse map[glfw.MouseButton]bool
	prevKeys  map[glfw.Key]bool
	wheel     float64
}

func NewInput(window *glfw.Window) *Input {
	in := &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		in.wheel += yoff
	})
	return in
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

// cursorPixel converts the cursor position to framebuffer pixels.
func cursorPixel(window *glfw.Window, fbW, fbH int) (float64, float64) {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	if winW <= 0 || winH <= 0 {
		return cx, cy
	}
	return cx * float64(fbW) / float64(winW), cy * float64(fbH) / float64(winH)
}

// Apply forwards this poll's input to the app.
func (in *Input) Apply(window *glfw.Window, a *app.App, fbW, fbH int, log *zap.Logger) {
	if in.wheel != 0 {
		a.Scroll(-in.wheel * wheelStep)
		in.wheel = 0
	}
	// Held arrows keep scrolling.
	if window.GetKey(glfw.KeyDown) == glfw.Press {
		a.Scroll(arrowStep / 4)
	}
	if window.GetKey(glfw.KeyUp) == glfw.Press {
		a.Scroll(-arrowStep / 4)
	}
	_, h := a.Viewport().Size()
	pageDown := in.JustPressed(window, glfw.KeyPageDown)
	if in.JustPressed(window, glfw.KeySpace) {
		pageDown = true
	}
	if pageDown {
		a.Scroll(float64(h) * 0.9)
	}
	if in.JustPressed(window, glfw.KeyPageUp) {
		a.Scroll(-float64(h) * 0.9)
	}
	if in.JustPressed(window, glfw.KeyHome) {
		a.Activate(page.AnchorHome)
	}
	if in.JustPressed(window, glfw.KeyE) {
		a.Activate(page.AnchorEvents)
	}
	register := in.JustPressed(window, glfw.KeyR)
	if in.JustPressed(window, glfw.KeyEnter) {
		register = true
	}
	if register && a.Phase() == app.PhasePage {
		if err := a.Register(0); err != nil {
			log.Warn("register failed", zap.Error(err))
		}
	}
	if in.JustClicked(window, glfw.MouseButtonLeft) {
		x, y := cursorPixel(window, fbW, fbH)
		if _, err := a.Click(x, y); err != nil {
			log.Warn("click failed", zap.Error(err))
		}
	}
}
