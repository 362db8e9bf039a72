// Package feed lets the player drop foods from the toolbar and drag them
// into the pet's mouth. The pet reacts to each food with a face, a speech
// bubble and a sound.
package feed

import (
	"math/rand"
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
const ID = "feed"

// Mood is the pet's current face.
type Mood string

const (
	MoodNormal  Mood = "normal"
	MoodHappy   Mood = "happy"
	MoodDisgust Mood = "disgust"
	MoodFreeze  Mood = "freeze"
	MoodSpicy   Mood = "spicy"
)

// Bubble texts.
const (
	SayYummy = "Yummy!"
	SayYuck  = "Yuck!"
	SayBrrr  = "Brrr!"
	SaySpicy = "Spicy!"
)

const (
	petW, petH = 9, 5
	bubbleID   = "feed-bubble"
	clearID    = "feed-clear"
	duckID     = "duck"

	spawnSpread = 10
	spawnAbove  = 10
	restSpeed   = 0.05
	reactVolume = 0.9
)

// ButtonID returns the toolbar ID of the spawn button for a food.
func ButtonID(foodID string) string {
	return "feed-" + foodID
}

// Food is a spawned item.
type Food struct {
	Config  config.FoodConfig
	Body    *physics.Body
	Visible bool
	Fresh   bool // just spawned, cannot be eaten yet

	sprite *assets.Sprite
}

// Mode is the feeding mode.
type Mode struct {
	s      *stage.Stage
	cfg    config.FeedConfig
	rng    *rand.Rand
	params physics.Params

	pet   core.Box
	mood  Mood
	moods map[Mood]*assets.Sprite
	foods []*Food

	drag    physics.Drag
	active  *Food
	moved   bool
	moodTmr host.TimerID

	sounds map[string]*assets.Sound
	quack  *stage.Pool
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
	m.cfg = ctx.Config.Feed
	m.mood = MoodNormal
	m.params = physics.Params{
		Gravity:     m.cfg.Gravity,
		Damping:     1,
		BouncePower: 10,
		Restitution: m.cfg.Bounce,
		MinImpact:   restSpeed,
	}

	m.moods = map[Mood]*assets.Sprite{
		MoodNormal:  s.Sprite("pet"),
		MoodHappy:   s.Sprite("pet_happy"),
		MoodDisgust: s.Sprite("pet_disgust"),
		MoodFreeze:  s.Sprite("pet_freeze"),
		MoodSpicy:   s.Sprite("pet_spicy"),
	}
	m.sounds = map[string]*assets.Sound{
		"yum":    s.Sound("yum"),
		"yuck":   s.Sound("yuck"),
		"bounce": s.Sound("pop"),
		"frozen": s.Sound("shiver"),
		"spicy":  s.Sound("sizzle"),
	}
	m.quack = s.Pool(reactVolume, "squeak", "squeak", "squeak")
	m.placePet()

	for _, f := range m.cfg.Foods {
		food := f
		if _, err := s.Button(ButtonID(f.ID), f.Name, func() { m.Spawn(food.ID) }); err != nil {
			//nolint:errcheck // Already failing
			s.Release()
			return nil, err
		}
		s.Sprite(f.Sprite)
	}
	if _, err := s.Button(clearID, "Clear", m.Clear); err != nil {
		//nolint:errcheck // Already failing
		s.Release()
		return nil, err
	}

	s.OnSurface(host.PointerDown, m.pointerDown)
	s.OnWindow(host.PointerMove, m.pointerMove)
	s.OnWindow(host.PointerUp, m.pointerUp)
	s.OnWindow(host.Resize, func(*host.Event) { m.placePet() })
	s.Loop(m.frameTick)

	return s.Teardown(), nil
}

func (m *Mode) placePet() {
	m.pet = core.Box{X: m.s.Width() / 2, Y: m.s.Ground() - petH/2, W: petW, H: petH}
}

// Mood returns the pet's current face.
func (m *Mode) Mood() Mood {
	return m.mood
}

// Foods returns the visible foods.
func (m *Mode) Foods() []*Food {
	var out []*Food
	for _, f := range m.foods {
		if f.Visible {
			out = append(out, f)
		}
	}
	return out
}

// PetBox returns the pet's bounds.
func (m *Mode) PetBox() core.Box {
	return m.pet
}

// Spawn drops a food above the pet. Unknown IDs are ignored.
func (m *Mode) Spawn(id string) *Food {
	var fc config.FoodConfig
	found := false
	for _, f := range m.cfg.Foods {
		if f.ID == id {
			fc, found = f, true
			break
		}
	}
	if !found {
		return nil
	}

	sp := m.s.Sprite(fc.Sprite)
	box := stage.SpriteBox(sp, 0, 0, 5, 2)
	x := m.pet.X + (m.rng.Float64()*2-1)*spawnSpread
	y := max(m.pet.Y-spawnAbove, box.H/2)

	f := &Food{
		Config:  fc,
		Body:    physics.NewBody(x, y, box.W, box.H),
		Visible: true,
		Fresh:   true,
		sprite:  sp,
	}
	f.Body.ClampX(m.s.Width())
	m.s.After(m.cfg.SpawnGrace, func() { f.Fresh = false })

	m.foods = append(m.foods, f)
	if limit := m.cfg.MaxOnScreen; limit > 0 && len(m.foods) > limit {
		m.foods = m.foods[len(m.foods)-limit:]
	}
	if fc.ID == duckID {
		m.quack.Play()
	}
	return f
}

// Clear removes every food.
func (m *Mode) Clear() {
	m.foods = nil
	m.active = nil
	m.drag.Cancel()
}

func (m *Mode) pointerDown(ev *host.Event) {
	x, y := stage.Pointer(ev)
	for i := len(m.foods) - 1; i >= 0; i-- {
		f := m.foods[i]
		if !f.Visible {
			continue
		}
		if m.drag.Begin(f.Body.Box(), x, y) {
			m.active = f
			m.moved = false
			f.Body.Dragging = true
			f.Body.MoveTo(f.Body.X, f.Body.Y)
			ev.PreventDefault()
			return
		}
	}
}

func (m *Mode) pointerMove(ev *host.Event) {
	x, y, ok := m.drag.Move(stage.Pointer(ev))
	if !ok || m.active == nil {
		return
	}
	m.active.Body.MoveTo(x, y)
	m.moved = true
}

func (m *Mode) pointerUp(*host.Event) {
	m.drag.End()
	f := m.active
	m.active = nil
	if f == nil {
		return
	}
	f.Body.Dragging = false
	if m.moved {
		m.tryEat(f)
	}
}

func (m *Mode) tryEat(f *Food) {
	if !f.Visible || f.Fresh || !f.Body.Box().Overlaps(m.pet) {
		return
	}

	switch {
	case f.Config.Kind == config.FoodIce:
		m.react(MoodFreeze, SayBrrr, "frozen")
	case f.Config.Kind == config.FoodSpicy:
		m.react(MoodSpicy, SaySpicy, "spicy")
	case f.Config.Liked:
		m.react(MoodHappy, SayYummy, "yum")
	default:
		m.react(MoodDisgust, SayYuck, "yuck")
	}
	if f.Config.ID == duckID {
		m.quack.Play()
	}

	f.Visible = false
	m.foods = m.Foods()
}

func (m *Mode) react(mood Mood, say, snd string) {
	m.mood = mood
	x, y := m.pet.TopLeft()
	m.s.Bubble(bubbleID, say, x, max(y-2, 0), m.cfg.BubbleFor)
	m.s.Play(m.sounds[snd], reactVolume)

	m.s.Ctx.Host.Window.ClearTimer(m.moodTmr)
	m.moodTmr = m.s.After(m.cfg.MoodFor, func() { m.mood = MoodNormal })
}

// Bubble returns the speech bubble text, or "" when hidden.
func (m *Mode) Bubble() string {
	return m.s.BubbleText(bubbleID)
}

func (m *Mode) frameTick(time.Time) {
	ground := m.s.Ground()
	for _, f := range m.foods {
		if !f.Visible {
			continue
		}
		if hit := f.Body.Step(m.params, ground); hit.Hit && hit.Speed > m.cfg.Gravity*8 {
			m.s.Play(m.sounds["bounce"], 0.4)
		}
	}
	m.draw()
}

func (m *Mode) draw() {
	scr := m.s.Screen()
	scr.Clear()
	m.s.DrawGround()

	pet := m.moods[m.mood]
	if !pet.Ready() {
		pet = m.moods[MoodNormal]
	}
	m.s.Draw(pet, m.pet, core.ColorBrightGreen)

	for _, f := range m.foods {
		if f.Visible {
			m.s.Draw(f.sprite, f.Body.Box(), foodColor(f.Config))
		}
	}
}

func foodColor(f config.FoodConfig) core.Color {
	switch f.Kind {
	case config.FoodIce:
		return core.ColorBrightCyan
	case config.FoodSpicy:
		return core.ColorBrightRed
	}
	if f.Liked {
		return core.ColorYellow
	}
	return core.ColorMagenta
}

func init() {
	registry.Register(mode.Descriptor{
		ID:    ID,
		Label: "Feeding Mode",
		Key:   "2",
		Factory: func() mode.Mode {
			return New(0)
		},
	})
}
