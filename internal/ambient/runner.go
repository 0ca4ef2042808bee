// Package ambient holds the page's endless background animators: a drifting
// starfield with proximity links and a field of blinking binary digits.
package ambient

import (
	"time"

	"go.uber.org/zap"

	"csethon/internal/canvas"
	"csethon/internal/frame"
)

// runner is the mount/frame/unmount plumbing shared by the animators.
type runner struct {
	log     *zap.Logger
	loop    *frame.Loop
	ctx     canvas.Context
	release func()
	frameID frame.ID
	tick    func()
}

// mount acquires the surface's 2D context, sizes it to the viewport and
// starts the frame loop. It reports false, and stays inert, when no
// context is available.
func (r *runner) mount(loop *frame.Loop, surf canvas.Surface) bool {
	r.unmount()
	if surf == nil || surf.Context2D() == nil {
		r.log.Debug("no 2d context, animator inert")
		return false
	}
	r.loop = loop
	r.ctx = surf.Context2D()
	vp := surf.Viewport()
	r.ctx.Resize(vp.Size())
	r.release = vp.Listen(func(w, h int) { r.ctx.Resize(w, h) })
	r.frameID = loop.RequestFrame(r.onFrame)
	return true
}

func (r *runner) onFrame(time.Time) {
	r.frameID = 0
	r.tick()
	r.frameID = r.loop.RequestFrame(r.onFrame)
}

func (r *runner) unmount() {
	if r.loop != nil && r.frameID != 0 {
		r.loop.CancelFrame(r.frameID)
	}
	r.frameID = 0
	if r.release != nil {
		r.release()
		r.release = nil
	}
	r.ctx = nil
}

func (r *runner) running() bool { return r.frameID != 0 }
