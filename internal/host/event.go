// Package host models the environment a mode runs in: a drawing surface and
// a global window, each with its own listener namespace, a frame scheduler
// with timers, a document of injected controls, a status line, temporary
// object URLs and a task queue for completions arriving from other
// goroutines.
//
// Everything except Tasks.Post must be called from the event loop goroutine.
package host

// EventType names an input event.
type EventType string

const (
	PointerDown EventType = "pointerdown"
	PointerMove EventType = "pointermove"
	PointerUp   EventType = "pointerup"
	Wheel       EventType = "wheel"
	KeyDown     EventType = "keydown"
	Resize      EventType = "resize"
)

// Event is delivered to listeners. Pointer coordinates are surface cells.
type Event struct {
	Type   EventType
	X, Y   int
	Delta  int    // wheel direction: -1 up, +1 down
	Key    string // key name as reported by the terminal, e.g. "space", "up", "a"
	Width  int    // resize
	Height int    // resize

	prevented bool
}

// PreventDefault stops the host from running the event's default action.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// Listener handles an event.
type Listener func(*Event)

// ListenerID identifies a registration on a Target.
type ListenerID uint64

type listenerEntry struct {
	id  ListenerID
	typ EventType
	fn  Listener
}

// Target is a listener namespace. The surface and the window each own one.
type Target struct {
	name    string
	seq     ListenerID
	entries []listenerEntry
}

func newTarget(name string) *Target {
	return &Target{name: name}
}

// Name returns the target's name ("surface" or "window").
func (t *Target) Name() string {
	return t.name
}

// AddListener registers fn for events of the given type.
// Every call creates a new registration, even for the same function.
func (t *Target) AddListener(typ EventType, fn Listener) ListenerID {
	t.seq++
	t.entries = append(t.entries, listenerEntry{id: t.seq, typ: typ, fn: fn})
	return t.seq
}

// RemoveListener removes a registration. It returns false if the ID is not
// registered, so removing twice is harmless.
func (t *Target) RemoveListener(id ListenerID) bool {
	for i, e := range t.entries {
		if e.id == id {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// ListenerCount returns the number of listeners registered for typ.
func (t *Target) ListenerCount(typ EventType) int {
	n := 0
	for _, e := range t.entries {
		if e.typ == typ {
			n++
		}
	}
	return n
}

// Len returns the total number of registrations.
func (t *Target) Len() int {
	return len(t.entries)
}

func (t *Target) has(id ListenerID) bool {
	for _, e := range t.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

// dispatch calls every listener registered for the event type, in
// registration order. A listener removed by an earlier listener during the
// same dispatch is not called.
func (t *Target) dispatch(ev *Event) {
	var snapshot []listenerEntry
	for _, e := range t.entries {
		if e.typ == ev.Type {
			snapshot = append(snapshot, e)
		}
	}
	for _, e := range snapshot {
		if t.has(e.id) {
			e.fn(ev)
		}
	}
}

func (t *Target) removeAll() {
	t.entries = nil
}
