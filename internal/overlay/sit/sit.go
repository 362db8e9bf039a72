// Package sit adds a "Sit" toggle to the normal mode. It lives outside any
// mode: it follows the lifecycle bus, attaches its button and exit listener
// when normal mode activates and removes them before any mode unloads.
package sit

import (
	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/lifecycle"
	"github.com/Mygameindie/Zombiepet/internal/mode"
)

const (
	// ButtonID is the document ID of the toggle.
	ButtonID = "sit-btn"
	// HostMode is the mode the overlay attaches to.
	HostMode = "normal"

	labelSit    = "Sit"
	labelNormal = "Normal"
)

// Overlay is the sit pose toggle.
type Overlay struct {
	ctx   *mode.Context
	scope *lifecycle.Scope
	btn   *host.Control

	frames [2]*assets.Sprite
	frame  int
	timer  int
	every  int

	sitting     bool
	unsubscribe func()
}

// New creates the overlay and subscribes it to bus. active reports the
// currently running mode so the overlay can attach right away when normal
// mode is already up.
func New(ctx *mode.Context, bus *lifecycle.Bus, active func() string) *Overlay {
	o := &Overlay{
		ctx:   ctx,
		every: ctx.Config.Sit.FrameEvery,
		frames: [2]*assets.Sprite{
			ctx.Assets.Sprite("sit1"),
			ctx.Assets.Sprite("sit2"),
		},
	}
	if o.every <= 0 {
		o.every = 20
	}
	o.unsubscribe = bus.Subscribe(o.handle)

	if active != nil && active() == HostMode {
		o.attach()
	}
	return o
}

func (o *Overlay) handle(ev lifecycle.Event) {
	switch e := ev.(type) {
	case lifecycle.Activated:
		if e.Name == HostMode {
			o.detach()
			o.attach()
		}
	case lifecycle.Unloading:
		o.detach()
	}
}

// Attached reports whether the button and listener are installed.
func (o *Overlay) Attached() bool {
	return o.scope != nil
}

// Sitting reports whether the sit pose is on.
func (o *Overlay) Sitting() bool {
	return o.sitting
}

// Toggle switches the pose on or off. It does nothing while detached.
func (o *Overlay) Toggle() {
	if !o.Attached() {
		return
	}
	if o.sitting {
		o.disable()
	} else {
		o.enable()
	}
}

// Close detaches the overlay and stops following the bus.
func (o *Overlay) Close() {
	o.detach()
	if o.unsubscribe != nil {
		o.unsubscribe()
		o.unsubscribe = nil
	}
}

func (o *Overlay) attach() {
	if o.Attached() {
		return
	}
	scope := lifecycle.NewScope(o.ctx.Host)
	btn := &host.Control{ID: ButtonID, Kind: host.Button, Text: labelSit, OnClick: o.Toggle}
	if err := scope.Control(btn); err != nil {
		o.ctx.Logger.Warn("sit button not added", "err", err)
		//nolint:errcheck // Nothing was registered
		scope.Release()
		return
	}
	scope.OnSurface(host.PointerDown, func(*host.Event) {
		if o.sitting {
			o.disable()
		}
	})
	o.scope = scope
	o.btn = btn
	o.disable()
}

func (o *Overlay) detach() {
	if !o.Attached() {
		return
	}
	o.disable()
	if err := o.scope.Release(); err != nil {
		o.ctx.Logger.Warn("sit overlay release failed", "err", err)
	}
	o.scope = nil
	o.btn = nil
}

func (o *Overlay) enable() {
	o.sitting = true
	o.ctx.Pose.Set(o.pose)
	if o.btn != nil {
		o.btn.Text = labelNormal
		o.btn.Active = true
	}
}

func (o *Overlay) disable() {
	o.sitting = false
	o.ctx.Pose.Clear()
	if o.btn != nil {
		o.btn.Text = labelSit
		o.btn.Active = false
	}
}

// pose is called once per frame by the normal mode.
func (o *Overlay) pose() (mode.Pose, bool) {
	if !o.frames[0].Ready() || !o.frames[1].Ready() {
		return mode.Pose{}, false
	}
	o.timer++
	if o.timer > o.every {
		o.timer = 0
		o.frame = (o.frame + 1) % 2
	}
	return mode.Pose{Art: o.frames[o.frame].Art(), Color: core.ColorBrightGreen}, true
}
