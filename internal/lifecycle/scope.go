// Package lifecycle records what a mode acquires so it can be given back in
// one call, and broadcasts mode transitions to components that live outside
// any mode.
package lifecycle

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Mygameindie/Zombiepet/internal/host"
)

// Scope collects reversible registrations against a host. Release undoes
// them in reverse order. A Scope is used from the event loop only.
type Scope struct {
	host     *host.Host
	undo     []func() error
	released bool
}

// NewScope returns a live scope bound to h.
func NewScope(h *host.Host) *Scope {
	return &Scope{host: h}
}

// Host returns the host the scope registers against.
func (s *Scope) Host() *host.Host {
	return s.host
}

// Alive reports whether Release has not been called yet. Callbacks that
// arrive late (timers, loads) check it before touching shared state.
func (s *Scope) Alive() bool {
	return !s.released
}

// Len returns the number of registrations still held.
func (s *Scope) Len() int {
	return len(s.undo)
}

func (s *Scope) push(fn func() error) {
	if s.released {
		// registering on a dead scope undoes immediately
		//nolint:errcheck // Nothing to report to
		fn()
		return
	}
	s.undo = append(s.undo, fn)
}

// Defer runs fn on Release.
func (s *Scope) Defer(fn func()) {
	s.push(func() error {
		fn()
		return nil
	})
}

// DeferErr runs fn on Release and reports its error.
func (s *Scope) DeferErr(fn func() error) {
	s.push(fn)
}

// OnSurface adds a surface listener that is removed on Release.
func (s *Scope) OnSurface(typ host.EventType, fn host.Listener) host.ListenerID {
	id := s.host.Surface.AddListener(typ, fn)
	s.push(func() error {
		s.host.Surface.RemoveListener(id)
		return nil
	})
	return id
}

// OnWindow adds a window listener that is removed on Release.
func (s *Scope) OnWindow(typ host.EventType, fn host.Listener) host.ListenerID {
	id := s.host.Window.AddListener(typ, fn)
	s.push(func() error {
		s.host.Window.RemoveListener(id)
		return nil
	})
	return id
}

// Loop calls fn on every frame until Release.
func (s *Scope) Loop(fn host.FrameFunc) {
	var (
		id   host.FrameID
		tick host.FrameFunc
	)
	tick = func(now time.Time) {
		if s.released {
			return
		}
		fn(now)
		if !s.released {
			id = s.host.Window.RequestFrame(tick)
		}
	}
	id = s.host.Window.RequestFrame(tick)
	s.push(func() error {
		s.host.Window.CancelFrame(id)
		return nil
	})
}

// After runs fn once after d unless the scope is released first.
func (s *Scope) After(d time.Duration, fn func()) host.TimerID {
	id := s.host.Window.SetTimeout(d, s.Guard(fn))
	s.push(func() error {
		s.host.Window.ClearTimer(id)
		return nil
	})
	return id
}

// Every runs fn every d until Release.
func (s *Scope) Every(d time.Duration, fn func()) host.TimerID {
	id := s.host.Window.SetInterval(d, s.Guard(fn))
	s.push(func() error {
		s.host.Window.ClearTimer(id)
		return nil
	})
	return id
}

// Control injects c into the document and removes it on Release.
func (s *Scope) Control(c *host.Control) error {
	if err := s.host.Document.Append(c); err != nil {
		return err
	}
	id := c.ID
	s.push(func() error {
		s.host.Document.Remove(id)
		return nil
	})
	return nil
}

// ObjectURL creates a temporary URL for path and revokes it on Release.
func (s *Scope) ObjectURL(path string) (string, error) {
	url, err := s.host.URLs.Create(path)
	if err != nil {
		return "", err
	}
	s.push(func() error {
		s.host.URLs.Revoke(url)
		return nil
	})
	return url, nil
}

// Track closes c on Release.
func (s *Scope) Track(c io.Closer) {
	if c == nil {
		return
	}
	s.push(c.Close)
}

// Guard wraps fn so that it does nothing once the scope is released.
func (s *Scope) Guard(fn func()) func() {
	return func() {
		if s.released {
			return
		}
		fn()
	}
}

// Release undoes every registration, newest first. Every step runs even if
// an earlier one fails or panics. Calling Release again does nothing.
func (s *Scope) Release() error {
	if s.released {
		return nil
	}
	s.released = true

	var errs []error
	for i := len(s.undo) - 1; i >= 0; i-- {
		if err := runStep(s.undo[i]); err != nil {
			errs = append(errs, err)
		}
	}
	s.undo = nil
	return errors.Join(errs...)
}

func runStep(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lifecycle: release panicked: %v", r)
		}
	}()
	return fn()
}
