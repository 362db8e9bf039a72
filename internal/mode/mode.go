// Package mode defines the contract between the switchboard and the modes it
// runs, and the context every mode receives.
package mode

import (
	"github.com/charmbracelet/log"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/config"
	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/lifecycle"
	"github.com/Mygameindie/Zombiepet/internal/sound"
)

// Teardown releases everything a mode acquired. It must be safe to call more
// than once.
type Teardown func() error

// Mode is a self-contained interactive behavior.
//
// Start takes ownership of the surface and the window listeners. It must
// not assume anything about what ran before it, and the returned Teardown
// must undo every registration Start (or anything started from it) made.
// A non-nil error means the mode did not start; any partial registrations
// must already be undone.
type Mode interface {
	Start(ctx *Context) (Teardown, error)
}

// Func adapts a function to the Mode interface.
type Func func(ctx *Context) (Teardown, error)

// Start calls f.
func (f Func) Start(ctx *Context) (Teardown, error) {
	return f(ctx)
}

// Descriptor is a selectable mode.
type Descriptor struct {
	ID      string // stable identifier, e.g. "feed"
	Label   string // display name, e.g. "Feeding Mode"
	Key     string // trigger hotkey
	Factory func() Mode
}

// ScoreStore persists best scores. It may be nil.
type ScoreStore interface {
	SaveScore(mode string, score int) error
	BestScore(mode string) (int, error)
}

// Context is the shared environment handed to every mode.
type Context struct {
	Host   *host.Host
	Sound  *sound.Registry
	Device sound.Device
	Assets *assets.Loader
	Pose   *PoseSlot
	Config config.Config
	Logger *log.Logger
	Scores ScoreStore

	// Scope belongs to the mode being started or running. The switchboard
	// releases it after the mode's teardown, or right away if Start fails.
	// It is nil outside the switchboard.
	Scope *lifecycle.Scope

	// RequestMode asks for a switch to the mode with the given ID. The
	// switch happens on the next frame, never inside the caller.
	RequestMode func(id string)
}

// Pose is art that replaces the pet's normal drawing.
type Pose struct {
	Art   []string
	Color core.Color
}

// PoseFunc returns the override for the current frame, or false to draw the
// pet normally.
type PoseFunc func() (Pose, bool)

// PoseSlot holds at most one pose override. Normal mode consults it every
// frame; the sit overlay installs and removes it.
type PoseSlot struct {
	fn PoseFunc
}

// Set installs fn as the override.
func (p *PoseSlot) Set(fn PoseFunc) {
	p.fn = fn
}

// Clear removes any override.
func (p *PoseSlot) Clear() {
	p.fn = nil
}

// Installed reports whether an override is set.
func (p *PoseSlot) Installed() bool {
	return p.fn != nil
}

// Current evaluates the override.
func (p *PoseSlot) Current() (Pose, bool) {
	if p == nil || p.fn == nil {
		return Pose{}, false
	}
	return p.fn()
}
