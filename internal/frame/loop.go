// Package frame is the host's cooperative animation scheduler: per-frame
// callbacks and one-shot timers, both run from a single goroutine that calls
// Step once per displayed frame.
package frame

import (
	"sort"
	"time"
)

// ID identifies a pending frame callback or timer. The zero ID is never
// issued.
type ID uint64

type frameReq struct {
	id ID
	fn func(now time.Time)
}

type timer struct {
	id ID
	at time.Time
	fn func()
}

// Loop is not safe for concurrent use; all calls happen on the host's frame
// goroutine.
type Loop struct {
	now    time.Time
	nextID ID
	frame  uint64

	frames []frameReq
	timers []timer

	// Entries taken for the Step in progress. Cancelling one clears its fn.
	running []frameReq
	firing  []timer
}

func NewLoop(start time.Time) *Loop {
	return &Loop{now: start}
}

// Now is the time passed to the most recent Step (or the start time).
func (l *Loop) Now() time.Time { return l.now }

// Frame counts completed Steps.
func (l *Loop) Frame() uint64 { return l.frame }

// RequestFrame schedules fn for the next Step. Requests made while a Step
// is running are deferred to the Step after it.
func (l *Loop) RequestFrame(fn func(now time.Time)) ID {
	l.nextID++
	l.frames = append(l.frames, frameReq{id: l.nextID, fn: fn})
	return l.nextID
}

func (l *Loop) CancelFrame(id ID) {
	for i := range l.running {
		if l.running[i].id == id {
			l.running[i].fn = nil
			return
		}
	}
	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
}

// After schedules fn to run on the first Step at or past Now()+d.
func (l *Loop) After(d time.Duration, fn func()) ID {
	l.nextID++
	l.timers = append(l.timers, timer{id: l.nextID, at: l.now.Add(d), fn: fn})
	return l.nextID
}

func (l *Loop) CancelTimer(id ID) {
	for i := range l.firing {
		if l.firing[i].id == id {
			l.firing[i].fn = nil
			return
		}
	}
	for i, t := range l.timers {
		if t.id == id {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return
		}
	}
}

// Pending reports the number of scheduled frame callbacks and timers.
func (l *Loop) Pending() int { return len(l.frames) + len(l.timers) }

// Step advances the clock to now (it never goes backwards), fires the
// timers due at that time in deadline order, then runs the frame callbacks
// that were pending when Step began.
func (l *Loop) Step(now time.Time) {
	if now.Before(l.now) {
		now = l.now
	}
	l.now = now

	l.firing = l.takeDue()
	for i := range l.firing {
		if fn := l.firing[i].fn; fn != nil {
			l.firing[i].fn = nil
			fn()
		}
	}
	l.firing = nil

	l.running = l.frames
	l.frames = nil
	for i := range l.running {
		if fn := l.running[i].fn; fn != nil {
			l.running[i].fn = nil
			fn(now)
		}
	}
	l.running = nil
	l.frame++
}

// takeDue removes and returns the timers due at l.now, earliest first.
func (l *Loop) takeDue() []timer {
	var due []timer
	keep := l.timers[:0]
	for _, t := range l.timers {
		if t.at.After(l.now) {
			keep = append(keep, t)
			continue
		}
		due = append(due, t)
	}
	l.timers = keep
	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	return due
}
