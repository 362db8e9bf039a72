package host

import (
	"os"
	"time"
)

// Gesture is a default host behavior that can be suppressed.
type Gesture uint8

const (
	// GestureScroll scrolls the toolbar on wheel, arrow and page keys.
	GestureScroll Gesture = 1 << iota
	// GestureZoom is the double-tap zoom chord.
	GestureZoom
	// GestureSelect is shift-drag text selection.
	GestureSelect
)

// Host bundles everything a mode can touch.
type Host struct {
	Surface  *Surface
	Window   *Window
	Document *Document
	Status   *Status
	URLs     *ObjectURLs
	Tasks    *Tasks

	suppressed Gesture
}

// New creates a host with a width x height surface. Temporary object URL
// files go to the OS temp directory.
func New(width, height int) *Host {
	return NewWithTempDir(width, height, os.TempDir())
}

// NewWithTempDir is New with an explicit directory for object URL copies.
func NewWithTempDir(width, height int, dir string) *Host {
	return &Host{
		Surface:  newSurface(width, height),
		Window:   newWindow(time.Now()),
		Document: &Document{},
		Status:   &Status{},
		URLs:     newObjectURLs(dir),
		Tasks:    &Tasks{},
	}
}

// Frame drains posted tasks, then fires due timers and the pending frame
// requests.
func (h *Host) Frame(now time.Time) {
	h.Tasks.Drain()
	h.Window.advance(now)
}

// Suppress disables default gestures. It cannot be undone.
func (h *Host) Suppress(g Gesture) {
	h.suppressed |= g
}

// Suppressed reports whether every gesture in g is suppressed.
func (h *Host) Suppressed(g Gesture) bool {
	return h.suppressed&g == g
}

// DispatchPointer delivers a pointer or wheel event to the surface listeners
// when it lands on the surface, then to the window listeners.
func (h *Host) DispatchPointer(ev *Event) {
	if ev.X >= 0 && ev.Y >= 0 && ev.X < h.Surface.Width() && ev.Y < h.Surface.Height() {
		h.Surface.dispatch(ev)
	}
	h.Window.dispatch(ev)

	if ev.Type == Wheel && !ev.DefaultPrevented() && !h.Suppressed(GestureScroll) {
		h.Document.Scroll(ev.Delta)
	}
}

// DispatchKey delivers a key event to the window listeners and runs the
// default scroll action for navigation keys.
func (h *Host) DispatchKey(ev *Event) {
	ev.Type = KeyDown
	h.Window.dispatch(ev)

	if ev.DefaultPrevented() || h.Suppressed(GestureScroll) {
		return
	}
	switch ev.Key {
	case "left", "up", "pgup":
		h.Document.Scroll(-1)
	case "right", "down", "pgdown":
		h.Document.Scroll(1)
	}
}

// DispatchResize resizes the surface, keeping its identity, and notifies
// window listeners.
func (h *Host) DispatchResize(width, height int) {
	h.Surface.screen.Resize(width, height)
	h.Window.dispatch(&Event{Type: Resize, Width: width, Height: height})
}
