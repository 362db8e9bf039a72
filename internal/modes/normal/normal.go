// Package normal is the default mode: the pet can be picked up, thrown and
// dropped, falls under gravity and bounces off the ground with a thud.
package normal

import (
	"time"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/modes/stage"
	"github.com/Mygameindie/Zombiepet/internal/physics"
	"github.com/Mygameindie/Zombiepet/internal/registry"
)

// ID is the mode identifier other components refer to.
const ID = "normal"

const (
	petW, petH = 9, 5
	// fallSpeed switches to the falling sprite.
	fallSpeed = 0.6
	// popVolume is used for the thud when a drag ends below ground.
	popVolume   = 0.5
	restitution = 0.5
)

// Mode is the drag-and-drop pet.
type Mode struct {
	s      *stage.Stage
	params physics.Params
	pet    *physics.Body
	drag   physics.Drag

	stand, fall *assets.Sprite
	fly         [2]*assets.Sprite
	thud        *assets.Sound

	frame, timer int
	unlocked     bool
	lastImpact   time.Time
}

// New creates the mode.
func New() *Mode {
	return &Mode{}
}

// Start implements mode.Mode.
func (m *Mode) Start(ctx *mode.Context) (mode.Teardown, error) {
	s := stage.New(ctx)
	m.s = s

	cfg := ctx.Config.Pet
	m.params = physics.Params{
		Gravity:     cfg.Gravity,
		Damping:     cfg.Damping,
		BouncePower: cfg.BouncePower,
		Restitution: restitution,
		MinImpact:   cfg.MinImpact,
	}

	m.stand = s.Sprite("pet")
	m.fall = s.Sprite("pet_fall")
	m.fly = [2]*assets.Sprite{s.Sprite("pet_fly1"), s.Sprite("pet_fly2")}
	m.thud = s.Sound("thud")

	m.pet = physics.NewBody(s.Width()/2, s.Ground()-petH/2, petW, petH)

	s.OnWindow(host.PointerDown, func(*host.Event) {
		m.unlocked = true
	})
	s.OnSurface(host.PointerDown, m.pointerDown)
	s.OnWindow(host.PointerMove, m.pointerMove)
	s.OnWindow(host.PointerUp, m.pointerUp)
	s.OnWindow(host.Resize, func(*host.Event) {
		m.pet.Settle(s.Ground())
		m.pet.ClampX(s.Width())
	})
	s.Loop(m.frameTick)

	return s.Teardown(), nil
}

// Pet returns the pet body.
func (m *Mode) Pet() *physics.Body {
	return m.pet
}

func (m *Mode) pointerDown(ev *host.Event) {
	x, y := stage.Pointer(ev)
	if m.drag.Begin(m.pet.Box(), x, y) {
		m.pet.Dragging = true
		ev.PreventDefault()
	}
}

func (m *Mode) pointerMove(ev *host.Event) {
	x, y, ok := m.drag.Move(stage.Pointer(ev))
	if !ok {
		return
	}
	m.pet.X, m.pet.Y = x, y
}

func (m *Mode) pointerUp(*host.Event) {
	if _, _, ok := m.drag.End(); !ok {
		return
	}
	m.pet.Dragging = false
	m.pet.OldX, m.pet.OldY = m.pet.X, m.pet.Y

	ground := m.s.Ground()
	if m.pet.Bottom() > ground {
		m.pet.Y = ground - m.pet.H/2
		m.pet.Launch(-m.params.BouncePower * 0.6)
		m.impact(popVolume)
	}
}

func (m *Mode) impact(volume float64) {
	now := m.s.Ctx.Host.Window.Now()
	if !m.unlocked || now.Sub(m.lastImpact) <= m.s.Ctx.Config.Pet.ImpactCooldown {
		return
	}
	m.lastImpact = now
	m.s.Play(m.thud, volume)
}

func (m *Mode) frameTick(time.Time) {
	ground := m.s.Ground()
	if hit := m.pet.Step(m.params, ground); hit.Hit {
		m.impact(physics.ImpactVolume(hit.Speed, m.params.BouncePower*2))
	}
	m.pet.ClampX(m.s.Width())
	m.draw(ground)
}

func (m *Mode) draw(ground float64) {
	scr := m.s.Screen()
	scr.Clear()
	m.s.DrawGround()

	if pose, ok := m.s.Ctx.Pose.Current(); ok {
		box := core.Box{X: m.pet.X, Y: m.pet.Bottom() - float64(len(pose.Art))/2}
		m.s.DrawArt(pose.Art, box, pose.Color)
		return
	}
	m.s.Draw(m.sprite(ground), m.pet.Box(), core.ColorBrightGreen)
}

// sprite picks standing, falling or the two-frame flying animation.
func (m *Mode) sprite(ground float64) *assets.Sprite {
	if !m.pet.Airborne(ground) {
		return m.stand
	}
	if m.pet.VY > fallSpeed {
		return m.fall
	}
	every := max(m.s.Ctx.Config.Pet.FlyFrameEvery, 1)
	m.timer++
	if m.timer > every {
		m.timer = 0
		m.frame = (m.frame + 1) % 2
	}
	return m.fly[m.frame]
}

func init() {
	registry.Register(mode.Descriptor{
		ID:    ID,
		Label: "Normal Mode",
		Key:   "1",
		Factory: func() mode.Mode {
			return New()
		},
	})
}
