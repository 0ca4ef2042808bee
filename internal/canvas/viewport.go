package canvas

// Viewport is the host's visible area. Hosts call Resize when the window
// or terminal changes size; animators Listen to keep their surfaces full
// screen. It is owned by the frame goroutine and is not safe for concurrent
// use.
type Viewport struct {
	w, h      int
	next      int
	listeners map[int]func(w, h int)
	order     []int
}

func NewViewport(w, h int) *Viewport {
	return &Viewport{w: w, h: h, listeners: make(map[int]func(w, h int))}
}

func (v *Viewport) Size() (int, int) { return v.w, v.h }

func (v *Viewport) Resize(w, h int) {
	if w == v.w && h == v.h {
		return
	}
	v.w, v.h = w, h
	for _, id := range v.order {
		if fn, ok := v.listeners[id]; ok {
			fn(w, h)
		}
	}
}

// Listen registers fn for resize notifications. The returned func removes
// it and is safe to call more than once.
func (v *Viewport) Listen(fn func(w, h int)) (release func()) {
	id := v.next
	v.next++
	v.listeners[id] = fn
	v.order = append(v.order, id)
	return func() {
		if _, ok := v.listeners[id]; !ok {
			return
		}
		delete(v.listeners, id)
		for i, o := range v.order {
			if o == id {
				v.order = append(v.order[:i], v.order[i+1:]...)
				break
			}
		}
	}
}

// Listeners reports how many resize listeners are attached.
func (v *Viewport) Listeners() int { return len(v.listeners) }
