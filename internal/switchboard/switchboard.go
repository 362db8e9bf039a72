// Package switchboard is the single authority over which mode is active. It
// is the only component that starts or stops modes, and it guarantees that
// the outgoing mode is silenced and torn down before the next one starts.
package switchboard

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/lifecycle"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/registry"
)

// State is the switchboard state.
type State int

const (
	// Idle means no mode is running.
	Idle State = iota
	// Active means exactly one mode is running and owns the handle.
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrSwitching is returned when a switch is requested from inside
	// another switch, e.g. by a mode's Start or teardown.
	ErrSwitching = errors.New("switchboard: switch already in progress")
	// ErrNoFactory is returned for descriptors without a factory.
	ErrNoFactory = errors.New("switchboard: descriptor has no factory")
)

// TriggerID returns the toolbar control ID of a mode's trigger button.
func TriggerID(modeID string) string {
	return "mode:" + modeID
}

// Switchboard sequences mode transitions.
type Switchboard struct {
	ctx    *mode.Context
	bus    *lifecycle.Bus
	reg    *registry.Registry
	logger *log.Logger

	handle    mode.Handle
	state     State
	marked    string // trigger control we highlighted
	switching bool
	triggers  bool
}

// New creates an idle switchboard. It sets ctx.RequestMode so modes can ask
// for a deferred switch.
func New(ctx *mode.Context, bus *lifecycle.Bus, reg *registry.Registry) *Switchboard {
	s := &Switchboard{
		ctx:    ctx,
		bus:    bus,
		reg:    reg,
		logger: ctx.Logger,
	}
	ctx.RequestMode = s.Request
	return s
}

// State returns the current state.
func (s *Switchboard) State() State {
	return s.state
}

// Handle returns the active mode's handle; the zero Handle when idle.
func (s *Switchboard) Handle() mode.Handle {
	return s.handle
}

// ActiveName returns the active mode's ID, or "".
func (s *Switchboard) ActiveName() string {
	return s.handle.Name()
}

// Boot loads the mode with the given ID. It is called once at startup.
func (s *Switchboard) Boot(defaultID string) error {
	return s.LoadByID(defaultID)
}

// LoadByID loads a registered mode.
func (s *Switchboard) LoadByID(id string) error {
	d, err := s.reg.Get(id)
	if err != nil {
		s.ctx.Host.Status.SetError("Error loading " + id)
		return err
	}
	return s.LoadMode(d)
}

// Request schedules a switch to id on the next frame.
func (s *Switchboard) Request(id string) {
	s.ctx.Host.Tasks.Post(func() {
		if err := s.LoadByID(id); err != nil {
			s.logger.Warn("requested mode switch failed", "mode", id, "err", err)
		}
	})
}

// LoadMode silences and tears down the active mode, then starts d.
// Loading the mode that is already active restarts it.
func (s *Switchboard) LoadMode(d mode.Descriptor) error {
	if s.switching {
		return ErrSwitching
	}
	s.switching = true
	defer func() { s.switching = false }()

	s.unload()

	if err := s.start(d); err != nil {
		s.ctx.Host.Status.SetError("Error loading " + d.Label)
		s.logger.Error("mode failed to start", "mode", d.ID, "err", err)
		return fmt.Errorf("switchboard: load %s: %w", d.ID, err)
	}

	s.markTrigger(d.ID)
	s.ctx.Host.Status.Set(d.Label + " Loaded")
	s.logger.Info("mode loaded", "mode", d.ID)
	s.bus.Publish(lifecycle.Activated{Name: d.ID})
	return nil
}

// Shutdown silences and tears down the active mode without starting
// another one.
func (s *Switchboard) Shutdown() {
	if s.switching {
		return
	}
	s.switching = true
	defer func() { s.switching = false }()

	s.unload()
}

// unload runs the outgoing half of a transition. It always completes.
func (s *Switchboard) unload() {
	s.ctx.Sound.StopAll()

	prev := s.handle.Name()
	s.bus.Publish(lifecycle.Unloading{Name: prev})

	if td := s.handle.Teardown(); td != nil {
		if err := runTeardown(td); err != nil {
			s.logger.Warn("mode teardown failed", "mode", prev, "err", err)
		}
	}

	s.handle = mode.Handle{}
	s.ctx.Scope = nil
	s.state = Idle
	s.unmarkTrigger()
}

// start instantiates d and runs its Start inside a fresh scope. On success
// the handle is set; on failure the scope and the surface are cleaned.
func (s *Switchboard) start(d mode.Descriptor) (err error) {
	if d.Factory == nil {
		return ErrNoFactory
	}

	s.ctx.Host.Surface.Screen().Clear()
	scope := lifecycle.NewScope(s.ctx.Host)
	s.ctx.Scope = scope

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mode panicked during start: %v", r)
		}
		if err != nil {
			if rerr := scope.Release(); rerr != nil {
				s.logger.Warn("failed start left a dirty scope", "mode", d.ID, "err", rerr)
			}
			s.ctx.Scope = nil
			s.ctx.Host.Surface.Reset()
		}
	}()

	m := d.Factory()
	if m == nil {
		return ErrNoFactory
	}
	td, err := m.Start(s.ctx)
	if err != nil {
		return err
	}

	s.handle = mode.NewHandle(d.ID, withScope(td, scope))
	s.state = Active
	return nil
}

// withScope runs td and then releases the mode's scope, even if td fails.
func withScope(td mode.Teardown, scope *lifecycle.Scope) mode.Teardown {
	return func() error {
		var err error
		if td != nil {
			err = runTeardown(td)
		}
		return errors.Join(err, scope.Release())
	}
}

func runTeardown(td mode.Teardown) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("teardown panicked: %v", r)
		}
	}()
	return td()
}

func (s *Switchboard) markTrigger(id string) {
	if c := s.ctx.Host.Document.Get(TriggerID(id)); c != nil {
		c.Active = true
		s.marked = c.ID
	}
}

func (s *Switchboard) unmarkTrigger() {
	if s.marked == "" {
		return
	}
	if c := s.ctx.Host.Document.Get(s.marked); c != nil {
		c.Active = false
	}
	s.marked = ""
}

// InstallTriggers adds one toolbar button per registered mode and a window
// key listener for their hotkeys. Triggers are never torn down.
func (s *Switchboard) InstallTriggers() error {
	if s.triggers {
		return nil
	}

	for _, d := range s.reg.List() {
		d := d
		text := d.Label
		if d.Key != "" {
			text = d.Key + " " + d.Label
		}
		err := s.ctx.Host.Document.Append(&host.Control{
			ID:      TriggerID(d.ID),
			Kind:    host.Button,
			Text:    text,
			OnClick: func() { s.trigger(d) },
		})
		if err != nil {
			return fmt.Errorf("switchboard: install trigger %s: %w", d.ID, err)
		}
	}

	s.ctx.Host.Window.AddListener(host.KeyDown, func(ev *host.Event) {
		if d, ok := s.reg.ByKey(ev.Key); ok {
			ev.PreventDefault()
			s.trigger(d)
		}
	})
	s.triggers = true
	return nil
}

func (s *Switchboard) trigger(d mode.Descriptor) {
	if err := s.LoadMode(d); err != nil {
		s.logger.Debug("trigger did not load mode", "mode", d.ID, "err", err)
	}
}
