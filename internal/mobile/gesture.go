// Package mobile hosts the site on Android through golang.org/x/mobile.
// The composed frame is uploaded as one texture per paint; a vertical drag
// scrolls the page and a tap clicks it.
package mobile

import (
	"math"

	"golang.org/x/mobile/event/touch"
)

// tapSlop is how far a touch may wander, in pixels, and still count as a tap.
const tapSlop = 12

// Action is what one touch event asks of the app.
type Action struct {
	Scroll float64
	Tap    bool
	X, Y   float64
}

// Gesture follows the first finger down until it lifts. Other fingers are
// ignored.
type Gesture struct {
	seq            touch.Sequence
	active         bool
	moved          bool
	startX, startY float32
	lastY          float32
}

func (g *Gesture) Handle(e touch.Event) Action {
	switch e.Type {
	case touch.TypeBegin:
		if g.active {
			return Action{}
		}
		g.seq, g.active, g.moved = e.Sequence, true, false
		g.startX, g.startY, g.lastY = e.X, e.Y, e.Y
	case touch.TypeMove:
		if !g.active || e.Sequence != g.seq {
			return Action{}
		}
		if !g.moved {
			if math.Abs(float64(e.X-g.startX)) <= tapSlop && math.Abs(float64(e.Y-g.startY)) <= tapSlop {
				return Action{}
			}
			g.moved = true
		}
		dy := g.lastY - e.Y
		g.lastY = e.Y
		return Action{Scroll: float64(dy)}
	case touch.TypeEnd:
		if !g.active || e.Sequence != g.seq {
			return Action{}
		}
		g.active = false
		if !g.moved {
			return Action{Tap: true, X: float64(g.startX), Y: float64(g.startY)}
		}
	}
	return Action{}
}
