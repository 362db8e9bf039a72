// Package modetest builds a complete mode context on a silent device for
// mode tests.
package modetest

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/config"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/sound"
)

// Width and Height are the surface size used by tests.
const (
	Width  = 80
	Height = 24
)

// Env is a running test environment.
type Env struct {
	Ctx       *mode.Context
	Requested []string

	t        *testing.T
	teardown mode.Teardown
}

// New creates an environment with the embedded sprites loaded.
func New(t *testing.T) *Env {
	t.Helper()
	h := host.NewWithTempDir(Width, Height, t.TempDir())
	logger := log.New(io.Discard)
	e := &Env{t: t}
	e.Ctx = &mode.Context{
		Host:   h,
		Sound:  sound.NewRegistry(1, false),
		Device: sound.Silent{},
		Assets: assets.NewLoader(assets.Embedded(), sound.Silent{}, h.Tasks, logger),
		Pose:   &mode.PoseSlot{},
		Config: config.Default(),
		Logger: logger,
		RequestMode: func(id string) {
			e.Requested = append(e.Requested, id)
		},
	}
	t.Cleanup(func() {
		if e.teardown != nil {
			//nolint:errcheck // Best effort
			e.teardown()
		}
	})
	return e
}

// Start starts m and fails the test on error. Assets requested during Start
// are loaded before it returns.
func (e *Env) Start(m mode.Mode) mode.Teardown {
	e.t.Helper()
	td, err := m.Start(e.Ctx)
	if err != nil {
		e.t.Fatalf("Start: %v", err)
	}
	e.teardown = td
	e.Load()
	return td
}

// Load waits for pending asset loads and applies them.
func (e *Env) Load() {
	e.Ctx.Assets.Wait()
	e.Ctx.Host.Tasks.Drain()
}

// Frames runs n frames spaced by the given step.
func (e *Env) Frames(n int, step time.Duration) {
	for i := 0; i < n; i++ {
		e.Ctx.Host.Frame(e.Ctx.Host.Window.Now().Add(step))
	}
}

// Frame runs one frame 1/30 s after the previous one.
func (e *Env) Frame() {
	e.Frames(1, time.Second/30)
}

// Wait advances the clock by d in frame-sized steps.
func (e *Env) Wait(d time.Duration) {
	step := time.Second / 30
	e.Frames(int(d/step)+1, step)
}

// Pointer dispatches a pointer event at cell (x, y).
func (e *Env) Pointer(typ host.EventType, x, y int) {
	e.Ctx.Host.DispatchPointer(&host.Event{Type: typ, X: x, Y: y})
}

// Drag presses at (x0, y0), moves to (x1, y1) and releases there.
func (e *Env) Drag(x0, y0, x1, y1 int) {
	e.Pointer(host.PointerDown, x0, y0)
	e.Pointer(host.PointerMove, x1, y1)
	e.Pointer(host.PointerUp, x1, y1)
}

// Key dispatches a key press.
func (e *Env) Key(key string) {
	e.Ctx.Host.DispatchKey(&host.Event{Key: key})
}

// Click clicks the toolbar control with the given ID.
func (e *Env) Click(id string) bool {
	return e.Ctx.Host.Document.Click(id)
}

// Playing returns the number of voices currently tracked.
func (e *Env) Playing() int {
	return e.Ctx.Sound.Len()
}

// AssertClean fails the test if anything a mode registers is left on the
// host after td ran.
func (e *Env) AssertClean(td mode.Teardown) {
	e.t.Helper()
	if err := td(); err != nil {
		e.t.Errorf("teardown: %v", err)
	}
	e.teardown = nil
	h := e.Ctx.Host
	if n := h.Surface.Len(); n != 0 {
		e.t.Errorf("%d surface listeners left", n)
	}
	if n := h.Window.Len(); n != 0 {
		e.t.Errorf("%d window listeners left", n)
	}
	if n := h.Window.PendingFrames(); n != 0 {
		e.t.Errorf("%d frame requests left", n)
	}
	if n := h.Window.ActiveTimers(); n != 0 {
		e.t.Errorf("%d timers left", n)
	}
	if n := h.Document.Len(); n != 0 {
		e.t.Errorf("%d controls left", n)
	}
	if n := h.URLs.Live(); n != 0 {
		e.t.Errorf("%d object URLs left", n)
	}
	if e.Ctx.Pose.Installed() {
		e.t.Error("pose override left installed")
	}
}
