package mobile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/mobile/event/touch"
)

func ev(t touch.Type, seq touch.Sequence, x, y float32) touch.Event {
	return touch.Event{Type: t, Sequence: seq, X: x, Y: y}
}

func TestTapWithinSlop(t *testing.T) {
	var g Gesture
	assert.Equal(t, Action{}, g.Handle(ev(touch.TypeBegin, 1, 100, 200)))
	assert.Equal(t, Action{}, g.Handle(ev(touch.TypeMove, 1, 105, 204)))
	assert.Equal(t, Action{Tap: true, X: 100, Y: 200}, g.Handle(ev(touch.TypeEnd, 1, 105, 204)))
}

func TestDragScrollsOppositeToFinger(t *testing.T) {
	var g Gesture
	g.Handle(ev(touch.TypeBegin, 1, 100, 400))
	a := g.Handle(ev(touch.TypeMove, 1, 100, 350))
	assert.InDelta(t, 50, a.Scroll, 1e-9)
	a = g.Handle(ev(touch.TypeMove, 1, 100, 370))
	assert.InDelta(t, -20, a.Scroll, 1e-9)
	assert.Equal(t, Action{}, g.Handle(ev(touch.TypeEnd, 1, 100, 370)))
}

func TestSecondFingerIgnored(t *testing.T) {
	var g Gesture
	g.Handle(ev(touch.TypeBegin, 1, 10, 10))
	assert.Equal(t, Action{}, g.Handle(ev(touch.TypeBegin, 2, 50, 50)))
	assert.Equal(t, Action{}, g.Handle(ev(touch.TypeMove, 2, 50, 300)))
	assert.Equal(t, Action{}, g.Handle(ev(touch.TypeEnd, 2, 50, 300)))
	assert.True(t, g.Handle(ev(touch.TypeEnd, 1, 10, 10)).Tap)
}

func TestNewGestureAfterLift(t *testing.T) {
	var g Gesture
	g.Handle(ev(touch.TypeBegin, 1, 0, 0))
	g.Handle(ev(touch.TypeMove, 1, 0, 100))
	g.Handle(ev(touch.TypeEnd, 1, 0, 100))

	g.Handle(ev(touch.TypeBegin, 2, 30, 40))
	assert.Equal(t, Action{Tap: true, X: 30, Y: 40}, g.Handle(ev(touch.TypeEnd, 2, 30, 40)))
}
