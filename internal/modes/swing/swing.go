// Package swing hangs the pet on a swing. Pull it back, let go and watch it
// swing under adjustable gravity.
package swing

import (
	"fmt"
	"math"
	"time"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/config"
	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/modes/stage"
	"github.com/Mygameindie/Zombiepet/internal/physics"
	"github.com/Mygameindie/Zombiepet/internal/registry"
)

// ID is the mode identifier.
const ID = "swing"

// Toolbar control IDs.
const (
	PullID        = "swing-pull"
	ReleaseID     = "swing-release"
	GravityDownID = "swing-gravity-down"
	GravityUpID   = "swing-gravity-up"
)

const (
	// HintText explains the controls.
	HintText = "Pull left, release, swing"

	gravityStep = 0.5
	// terminal cells are about twice as tall as wide
	aspect       = 2.0
	seatW, seatH = 9, 4
)

// Mode is the swing mode.
type Mode struct {
	s       *stage.Stage
	cfg     config.SwingConfig
	p       physics.Pendulum
	power   float64
	gravity float64
	seat    *assets.Sprite
}

// New creates the mode.
func New() *Mode {
	return &Mode{}
}

// Start implements mode.Mode.
func (m *Mode) Start(ctx *mode.Context) (mode.Teardown, error) {
	s := stage.New(ctx)
	m.s = s
	m.cfg = ctx.Config.Swing
	m.gravity = core.ClampF(m.cfg.Gravity, m.cfg.MinGravity, m.cfg.MaxGravity)
	m.seat = s.Sprite("pet_swing")

	buttons := []struct {
		id, text string
		fn       func()
	}{
		{PullID, "Pull", m.PullMore},
		{ReleaseID, "Release", m.Release},
		{GravityDownID, "Gravity -", func() { m.SetGravity(m.gravity - gravityStep) }},
		{GravityUpID, "Gravity +", func() { m.SetGravity(m.gravity + gravityStep) }},
	}
	for _, b := range buttons {
		if _, err := s.Button(b.id, b.text, b.fn); err != nil {
			//nolint:errcheck // Already failing
			s.Release()
			return nil, err
		}
	}

	s.OnWindow(host.KeyDown, m.key)
	s.Loop(func(time.Time) {
		m.p.Step(m.gravity, m.cfg.Damping)
		m.draw()
	})

	return s.Teardown(), nil
}

func (m *Mode) key(ev *host.Event) {
	switch ev.Key {
	case "left", "a":
		m.PullMore()
	case " ", "space", "enter":
		m.Release()
	case "-", "_":
		m.SetGravity(m.gravity - gravityStep)
	case "+", "=":
		m.SetGravity(m.gravity + gravityStep)
	default:
		return
	}
	ev.PreventDefault()
}

// PullMore pulls the swing one step further back, up to the maximum.
func (m *Mode) PullMore() {
	m.power = math.Min(m.power+m.cfg.PullStep/100, 1)
	m.p.Pull(m.power, m.cfg.MaxPull)
}

// Release lets go of the swing.
func (m *Mode) Release() {
	m.p.Release()
	m.power = 0
}

// SetGravity sets the gravity, clamped to the configured range.
func (m *Mode) SetGravity(g float64) {
	m.gravity = core.ClampF(g, m.cfg.MinGravity, m.cfg.MaxGravity)
}

// Gravity returns the current gravity.
func (m *Mode) Gravity() float64 {
	return m.gravity
}

// Pendulum returns the swing's pendulum.
func (m *Mode) Pendulum() *physics.Pendulum {
	return &m.p
}

// GravityText is the gravity readout under the swing.
func (m *Mode) GravityText() string {
	return fmt.Sprintf("Gravity: %.1f", m.gravity)
}

// AngleText is the angle readout.
func (m *Mode) AngleText() string {
	return fmt.Sprintf("Angle: %.1f°", m.p.Angle)
}

// Seat returns where the seat hangs for the shown angle.
func (m *Mode) Seat() core.Box {
	px, length := m.pivot()
	rad := m.p.Shown() * math.Pi / 180
	return core.Box{
		X: px + math.Sin(rad)*length*aspect,
		Y: math.Cos(rad) * length,
		W: seatW,
		H: seatH,
	}
}

// pivot returns the pivot column and the rope length in rows.
func (m *Mode) pivot() (float64, float64) {
	return m.s.Width() / 2, math.Max(m.s.Ground()-seatH-4, 2)
}

func (m *Mode) draw() {
	scr := m.s.Screen()
	scr.Clear()
	m.s.DrawGround()

	px, _ := m.pivot()
	seat := m.Seat()
	top := seat.Y - seat.H/2
	steps := int(math.Max(math.Abs(top), math.Abs(seat.X-px)))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(max(steps, 1))
		x := px + (seat.X-px)*t
		y := top * t
		scr.SetCell(int(x), int(y), '.', core.ColorGray)
	}
	scr.SetCell(int(px), 0, 'o', core.ColorWhite)
	m.s.Draw(m.seat, seat, core.ColorBrightGreen)

	g := int(m.s.Ground())
	scr.DrawTextCentered(g-3, HintText, core.ColorWhite)
	scr.DrawTextCentered(g-2, m.GravityText(), core.ColorBrightCyan)
	scr.DrawTextCentered(g-1, m.AngleText(), core.ColorBrightYellow)
}

func init() {
	registry.Register(mode.Descriptor{
		ID:    ID,
		Label: "Swing Mode",
		Key:   "8",
		Factory: func() mode.Mode {
			return New()
		},
	})
}
