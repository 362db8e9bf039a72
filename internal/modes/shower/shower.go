// Package shower is bath time: scrub the pet with a draggable sponge and
// drop rubber ducks and coneheads into the tub.
package shower

import (
	"math/rand"
	"time"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/modes/stage"
	"github.com/Mygameindie/Zombiepet/internal/physics"
	"github.com/Mygameindie/Zombiepet/internal/registry"
)

// ID is the mode identifier.
const ID = "shower"

// Toolbar control IDs.
const (
	DuckID     = "shower-duck"
	ConeheadID = "shower-conehead"
	BubbleID   = "shower-bubble"
	FoamID     = "shower-foam"
	ClearID    = "shower-clear"
)

// PropKind distinguishes the toys.
type PropKind int

const (
	Duck PropKind = iota
	Conehead
)

const (
	petW, petH = 9, 4
	// hitbox inset of the pet sprite
	hitInsetX, hitInsetY = 2, 1

	propGravity = 0.2
	propBounce  = 0.3
)

// Prop is a toy that falls and can be dragged around.
type Prop struct {
	Kind PropKind
	Body *physics.Body
}

// Mode is the shower mode.
type Mode struct {
	s      *stage.Stage
	rng    *rand.Rand
	params physics.Params

	pet    core.Box
	sponge *physics.Body
	props  []*Prop

	drag     physics.Drag
	dragging *physics.Body

	touching bool
	bubbles  bool
	foam     bool

	dry, wet, spongeArt *assets.Sprite
	propArt             map[PropKind]*assets.Sprite
	sounds              map[string]*stage.Pool
}

// New creates the mode. A zero seed picks one from the clock.
func New(seed int64) *Mode {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Mode{rng: rand.New(rand.NewSource(seed))}
}

// Start implements mode.Mode.
func (m *Mode) Start(ctx *mode.Context) (mode.Teardown, error) {
	s := stage.New(ctx)
	m.s = s
	m.params = physics.Params{
		Gravity:     propGravity,
		Damping:     1,
		BouncePower: 10,
		Restitution: propBounce,
		MinImpact:   0.1,
	}

	m.dry = s.Sprite("pet_bath")
	m.wet = s.Sprite("pet_wet")
	m.spongeArt = s.Sprite("sponge")
	m.propArt = map[PropKind]*assets.Sprite{
		Duck:     s.Sprite("duck"),
		Conehead: s.Sprite("conehead"),
	}
	m.sounds = map[string]*stage.Pool{
		"quack":    s.Pool(0.9, "squeak", "squeak", "squeak"),
		"splash":   s.Pool(0.9, "splash", "splash"),
		"bubble":   s.Pool(0.9, "pop", "pop"),
		"foam":     s.Pool(0.9, "giggle", "giggle"),
		"conehead": s.Pool(0.9, "click", "click"),
	}

	m.placePet()
	m.sponge = physics.NewBody(8, 5, 6, 2)

	buttons := []struct {
		id, text string
		fn       func()
	}{
		{DuckID, "Rubber Duck", func() { m.Spawn(Duck) }},
		{ConeheadID, "Conehead", func() { m.Spawn(Conehead) }},
		{BubbleID, "Bubble", m.Bubble},
		{FoamID, "Foam", m.Foam},
		{ClearID, "Clear", m.Clear},
	}
	for _, b := range buttons {
		if _, err := s.Button(b.id, b.text, b.fn); err != nil {
			//nolint:errcheck // Already failing
			s.Release()
			return nil, err
		}
	}

	s.OnSurface(host.PointerDown, m.pointerDown)
	s.OnWindow(host.PointerMove, m.pointerMove)
	s.OnWindow(host.PointerUp, m.pointerUp)
	s.OnWindow(host.Resize, func(*host.Event) {
		m.placePet()
		for _, p := range m.props {
			p.Body.Settle(s.Ground())
			p.Body.ClampX(s.Width())
		}
	})
	s.Loop(m.frameTick)

	return s.Teardown(), nil
}

func (m *Mode) placePet() {
	m.pet = core.Box{X: m.s.Width() / 2, Y: m.s.Ground() - petH/2, W: petW, H: petH}
}

// Hitbox returns the part of the pet the sponge has to touch.
func (m *Mode) Hitbox() core.Box {
	return core.Box{X: m.pet.X, Y: m.pet.Y, W: m.pet.W - 2*hitInsetX, H: m.pet.H - 2*hitInsetY}
}

// Sponge returns the sponge body.
func (m *Mode) Sponge() *physics.Body {
	return m.sponge
}

// Props returns the toys in the tub.
func (m *Mode) Props() []*Prop {
	return m.props
}

// Wet reports whether the pet shows its wet sprite.
func (m *Mode) Wet() bool {
	return m.touching || m.bubbles || m.foam
}

// Spawn drops a toy at a random column.
func (m *Mode) Spawn(kind PropKind) *Prop {
	box := stage.SpriteBox(m.propArt[kind], 0, 0, 5, 3)
	x := box.W/2 + m.rng.Float64()*max(m.s.Width()-box.W, 0)
	p := &Prop{Kind: kind, Body: physics.NewBody(x, box.H/2, box.W, box.H)}
	m.props = append(m.props, p)

	if kind == Duck {
		m.sounds["quack"].Play()
	} else {
		m.sounds["conehead"].Play()
	}
	return p
}

// Bubble fills the tub with bubbles.
func (m *Mode) Bubble() {
	m.bubbles = true
	m.sounds["bubble"].Play()
}

// Foam lathers the pet.
func (m *Mode) Foam() {
	m.foam = true
	m.sounds["foam"].Play()
}

// Clear removes the toys and the lather.
func (m *Mode) Clear() {
	m.props = nil
	m.bubbles = false
	m.foam = false
	if m.dragging != m.sponge {
		m.drag.Cancel()
		m.dragging = nil
	}
}

func (m *Mode) pointerDown(ev *host.Event) {
	x, y := stage.Pointer(ev)
	ev.PreventDefault()

	if m.drag.Begin(m.sponge.Box(), x, y) {
		m.dragging = m.sponge
		return
	}
	for _, kind := range []PropKind{Duck, Conehead} {
		for i := len(m.props) - 1; i >= 0; i-- {
			p := m.props[i]
			if p.Kind != kind {
				continue
			}
			if m.drag.Begin(p.Body.Box(), x, y) {
				m.dragging = p.Body
				p.Body.Dragging = true
				p.Body.MoveTo(p.Body.X, p.Body.Y)
				return
			}
		}
	}
}

func (m *Mode) pointerMove(ev *host.Event) {
	x, y, ok := m.drag.Move(stage.Pointer(ev))
	if !ok || m.dragging == nil {
		return
	}
	m.dragging.MoveTo(x, y)
}

func (m *Mode) pointerUp(*host.Event) {
	m.drag.End()
	if m.dragging != nil {
		m.dragging.Dragging = false
		m.dragging.MoveTo(m.dragging.X, m.dragging.Y)
	}
	m.dragging = nil
}

func (m *Mode) frameTick(time.Time) {
	touching := m.sponge.Box().Overlaps(m.Hitbox())
	if touching && !m.touching {
		m.sounds["splash"].Play()
	}
	m.touching = touching

	ground := m.s.Ground()
	for _, p := range m.props {
		p.Body.Step(m.params, ground)
	}
	m.draw()
}

func (m *Mode) draw() {
	scr := m.s.Screen()
	scr.Clear()
	m.s.DrawGround()

	pet := m.dry
	if m.Wet() && m.wet.Ready() {
		pet = m.wet
	}
	m.s.Draw(pet, m.pet, core.ColorBrightGreen)

	if m.foam {
		x, y := m.pet.TopLeft()
		scr.DrawTextColor(x+1, y-1, "~~~~~~~", core.ColorBrightWhite)
	}
	if m.bubbles {
		g := int(m.s.Ground())
		for x := 2; x < scr.Width()-2; x += 6 {
			scr.SetCell(x+(x/6)%3, g-1-(x/6)%2, 'o', core.ColorBrightCyan)
		}
	}

	for _, p := range m.props {
		c := core.ColorBrightYellow
		if p.Kind == Conehead {
			c = core.ColorOrange
		}
		m.s.Draw(m.propArt[p.Kind], p.Body.Box(), c)
	}
	m.s.Draw(m.spongeArt, m.sponge.Box(), core.ColorYellow)
}

func init() {
	registry.Register(mode.Descriptor{
		ID:    ID,
		Label: "Shower Mode",
		Key:   "5",
		Factory: func() mode.Mode {
			return New(0)
		},
	})
}
