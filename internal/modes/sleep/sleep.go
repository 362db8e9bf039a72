// Package sleep puts the pet to bed. Drop the pet on the bed, tuck it in
// with the blanket and tap the bed to wake it up again.
package sleep

import (
	"math"
	"time"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/config"
	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/lifecycle"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/modes/stage"
	"github.com/Mygameindie/Zombiepet/internal/physics"
	"github.com/Mygameindie/Zombiepet/internal/registry"
)

// ID is the mode identifier.
const ID = "sleep"

// State is the bed's state.
type State int

const (
	Awake    State = iota // empty bed, pet roaming
	PreSleep              // pet in bed, waiting for the blanket
	Sleeping
)

func (s State) String() string {
	switch s {
	case PreSleep:
		return "preSleep"
	case Sleeping:
		return "sleeping"
	default:
		return "normal"
	}
}

const (
	petW, petH         = 9, 5
	bedW, bedH         = 17, 4
	blanketW, blanketH = 5, 2
	bedMargin          = 2
	wakeGap            = 6

	// drop zones are shrunk to this share of the combined half sizes
	overlapShare = 0.6
	restitution  = 0.25
	fallSpeed    = 0.6
	snoreEvery   = 3 * time.Second
)

// Mode is the sleep mode.
type Mode struct {
	s      *stage.Stage
	cfg    config.SleepConfig
	params physics.Params

	state   State
	pet     *physics.Body
	petShow bool
	bed     core.Box
	blanket *physics.Body
	blShow  bool

	drag     physics.Drag
	dragging *physics.Body

	blocked bool
	night   *lifecycle.Cycle // wake block and snoring of the current sleep

	stand, fall, fly            *assets.Sprite
	bedArt, bedPre, bedSleeping *assets.Sprite
	blanketArt                  *assets.Sprite
	snoreSnd                    *assets.Sound
}

// New creates the mode.
func New() *Mode {
	return &Mode{}
}

// Start implements mode.Mode.
func (m *Mode) Start(ctx *mode.Context) (mode.Teardown, error) {
	s := stage.New(ctx)
	m.s = s
	m.cfg = ctx.Config.Sleep
	m.params = physics.Params{
		Gravity:     m.cfg.Gravity,
		Damping:     m.cfg.Damping,
		BouncePower: 10,
		Restitution: restitution,
		MinImpact:   m.cfg.MinImpact,
	}
	m.state = Awake

	m.stand = s.Sprite("pet")
	m.fall = s.Sprite("pet_fall")
	m.fly = s.Sprite("pet_fly1")
	m.bedArt = s.Sprite("bed")
	m.bedPre = s.Sprite("bed_sleep1")
	m.bedSleeping = s.Sprite("bed_sleep2")
	m.blanketArt = s.Sprite("blanket")
	m.snoreSnd = s.Sound("snore")

	m.placeBed()
	m.pet = physics.NewBody(s.Width()/2, float64(s.Screen().Height())/2-petH, petW, petH)
	m.petShow = true
	m.blanket = physics.NewBody(m.bed.X+m.bed.W/2+wakeGap, m.bed.Y-bedH, blanketW, blanketH)

	s.OnSurface(host.PointerDown, m.pointerDown)
	s.OnWindow(host.PointerMove, m.pointerMove)
	s.OnWindow(host.PointerUp, m.pointerUp)
	s.OnWindow(host.Resize, func(*host.Event) {
		m.placeBed()
		m.pet.Settle(s.Ground())
		m.pet.ClampX(s.Width())
	})
	s.Loop(m.frameTick)
	m.night = s.Cycle()

	return s.Teardown(), nil
}

// placeBed puts the bed on the ground at the left edge.
func (m *Mode) placeBed() {
	m.bed = core.Box{
		X: bedMargin + bedW/2.0,
		Y: m.s.Ground() - bedH/2.0,
		W: bedW,
		H: bedH,
	}
}

// State returns the bed state.
func (m *Mode) State() State {
	return m.state
}

// Pet returns the pet body and whether it is shown.
func (m *Mode) Pet() (*physics.Body, bool) {
	return m.pet, m.petShow
}

// Blanket returns the blanket body and whether it is shown.
func (m *Mode) Blanket() (*physics.Body, bool) {
	return m.blanket, m.blShow
}

// Bed returns the bed's box.
func (m *Mode) Bed() core.Box {
	return m.bed
}

// Snoring reports whether the pet is tucked in and snoring.
func (m *Mode) Snoring() bool {
	return m.night.Active()
}

func (m *Mode) pointerDown(ev *host.Event) {
	x, y := stage.Pointer(ev)
	switch {
	case m.petShow && m.drag.Begin(m.pet.Box(), x, y):
		m.dragging = m.pet
		m.pet.Dragging = true
		m.pet.MoveTo(m.pet.X, m.pet.Y)
		ev.PreventDefault()
	case m.blShow && m.drag.Begin(m.blanket.Box(), x, y):
		m.dragging = m.blanket
		ev.PreventDefault()
	}
}

func (m *Mode) pointerMove(ev *host.Event) {
	x, y, ok := m.drag.Move(stage.Pointer(ev))
	if !ok || m.dragging == nil {
		return
	}
	m.dragging.MoveTo(x, y)
}

func (m *Mode) pointerUp(ev *host.Event) {
	m.drag.End()
	switch m.dragging {
	case m.pet:
		m.dragging = nil
		m.dropPet()
		return
	case m.blanket:
		m.dragging = nil
		m.dropBlanket()
		return
	}

	if m.state != Sleeping || m.blocked {
		return
	}
	if x, y := stage.Pointer(ev); m.bed.Contains(x, y) {
		m.wake()
	}
}

func (m *Mode) dropPet() {
	m.pet.Dragging = false
	m.pet.MoveTo(m.pet.X, m.pet.Y)

	bottom := m.pet.Bottom()
	overlapX := math.Abs(m.pet.X-m.bed.X) < (m.pet.W/2+m.bed.W/2)*overlapShare
	overlapY := bottom > m.bed.Y-m.bed.H/2 && bottom < m.bed.Bottom()
	if m.state == Awake && overlapX && overlapY {
		m.state = PreSleep
		m.petShow = false
		m.blShow = true
	}
}

func (m *Mode) dropBlanket() {
	b := m.blanket
	overlapX := math.Abs(b.X-m.bed.X) < (b.W/2+m.bed.W/2)*overlapShare
	overlapY := math.Abs(b.Y-m.bed.Y) < (b.H/2+m.bed.H/2)*overlapShare
	if m.state != PreSleep || !overlapX || !overlapY {
		return
	}
	m.blShow = false
	m.state = Sleeping

	// The release that tucked the pet in must not also wake it.
	m.blocked = true
	night := m.night.Next()
	night.After(m.cfg.WakeBlock, func() { m.blocked = false })

	m.s.Play(m.snoreSnd, 0.6)
	night.Every(snoreEvery, func() { m.s.Play(m.snoreSnd, 0.6) })
}

// wake gets the pet out of bed to the right with the blanket beside it.
func (m *Mode) wake() {
	m.state = Awake
	m.blocked = false
	//nolint:errcheck // Undo steps here cannot fail
	m.night.End()

	right := m.bed.X + m.bed.W/2
	top := m.bed.Y - m.bed.H/2
	m.pet.MoveTo(right+m.pet.W/2+wakeGap, top-m.pet.H/2)
	m.pet.ClampX(m.s.Width())
	m.petShow = true
	m.blanket.MoveTo(right+m.blanket.W/2+wakeGap/2, top+1)
	m.blShow = true
}

func (m *Mode) frameTick(time.Time) {
	if m.petShow && m.state == Awake {
		m.pet.Step(m.params, m.s.Ground())
	}
	m.draw()
}

func (m *Mode) draw() {
	scr := m.s.Screen()
	scr.Clear()
	m.s.DrawGround()

	bed := m.bedArt
	switch m.state {
	case PreSleep:
		bed = m.bedPre
	case Sleeping:
		bed = m.bedSleeping
	}
	m.s.Draw(bed, m.bed, core.ColorBlue)

	if m.blShow {
		m.s.Draw(m.blanketArt, m.blanket.Box(), core.ColorMagenta)
	}
	if m.petShow {
		sp := m.stand
		switch {
		case m.pet.Dragging:
			sp = m.fly
		case m.pet.VY > fallSpeed:
			sp = m.fall
		}
		m.s.Draw(sp, m.pet.Box(), core.ColorBrightGreen)
	}
}

func init() {
	registry.Register(mode.Descriptor{
		ID:    ID,
		Label: "Sleep Mode",
		Key:   "6",
		Factory: func() mode.Mode {
			return New()
		},
	})
}
