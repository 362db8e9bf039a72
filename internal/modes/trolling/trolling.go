// Package trolling lets the player pester the pet with a hammer, a pat of
// butter and a watering can.
package trolling

import (
	"time"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/lifecycle"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/modes/stage"
	"github.com/Mygameindie/Zombiepet/internal/physics"
	"github.com/Mygameindie/Zombiepet/internal/registry"
	"github.com/Mygameindie/Zombiepet/internal/sound"
)

// ID is the mode identifier.
const ID = "trolling"

// Toolbar control IDs.
const (
	HammerID = "troll-hammer"
	ButterID = "troll-butter"
	WaterID  = "troll-water"
	RemoveID = "troll-remove"
)

// HammerKey hits the pet from the keyboard. Holding it down keeps the
// hammer face up through key repeat.
const HammerKey = "h"

// StripText is drawn on the row that scrolls the toolbar when dragged.
const StripText = "<< drag here to scroll the tools >>"

const (
	petW, petH = 9, 5
	canW, canH = 6, 3
	canHomeX   = 6
	canHomeY   = 4

	// how long one hammer hit shows the hammer face
	hammerHold = 400 * time.Millisecond

	// toolbar scroll speed and width of one toolbar entry, in cells
	scrollRate = 1.5
	entryCells = 8

	waterVolume = 0.9
)

// Look is the pet's current face.
type Look int

const (
	Plain Look = iota
	Hammered
	Buttered
	Wet
)

func (l Look) String() string {
	switch l {
	case Hammered:
		return "hammered"
	case Buttered:
		return "buttered"
	case Wet:
		return "wet"
	default:
		return "plain"
	}
}

// Mode is the trolling mode.
type Mode struct {
	s *stage.Stage

	look     Look
	pet      core.Box
	can      *physics.Body
	watering bool
	touching bool

	drag     physics.Drag
	dragging bool

	// toolbar drag along the strip row
	scrolling  bool
	scrollX    int
	scrollFrom int

	hold     *lifecycle.Cycle // timer that ends the current hammer hit
	water    sound.Voice      // looping water voice, created on first use
	waterBtn *host.Control

	looks                          map[Look]*assets.Sprite
	canArt                         *assets.Sprite
	hammerSnd, butterSnd, waterSnd *assets.Sound
}

// New creates the mode.
func New() *Mode {
	return &Mode{}
}

// Start implements mode.Mode.
func (m *Mode) Start(ctx *mode.Context) (mode.Teardown, error) {
	s := stage.New(ctx)
	m.s = s

	m.looks = map[Look]*assets.Sprite{
		Plain:    s.Sprite("pet"),
		Hammered: s.Sprite("pet_hammer"),
		Buttered: s.Sprite("pet_butter"),
		Wet:      s.Sprite("pet_wet"),
	}
	m.canArt = s.Sprite("watering_can")
	m.hammerSnd = s.Sound("hammer")
	m.butterSnd = s.Sound("butter")
	m.waterSnd = s.Sound("water")

	buttons := []struct {
		id, text string
		fn       func()
	}{
		{HammerID, "Hammer", m.Hammer},
		{ButterID, "Butter", m.Butter},
		{WaterID, "Water", m.ToggleWater},
		{RemoveID, "Remove", m.Remove},
	}
	for _, b := range buttons {
		btn, err := s.Button(b.id, b.text, b.fn)
		if err != nil {
			//nolint:errcheck // Already failing
			s.Release()
			return nil, err
		}
		if b.id == WaterID {
			m.waterBtn = btn
		}
	}

	m.placePet()
	m.can = physics.NewBody(canHomeX, canHomeY, canW, canH)
	m.hold = s.Cycle()
	s.Defer(m.closeWater)

	s.OnSurface(host.PointerDown, m.pointerDown)
	s.OnWindow(host.PointerMove, m.pointerMove)
	s.OnWindow(host.PointerUp, m.pointerUp)
	s.OnWindow(host.KeyDown, func(ev *host.Event) {
		if ev.Key == HammerKey {
			m.Hammer()
		}
	})
	s.OnWindow(host.Resize, func(*host.Event) { m.placePet() })
	s.Loop(m.frameTick)

	return s.Teardown(), nil
}

func (m *Mode) placePet() {
	m.pet = core.Box{X: m.s.Width() / 2, Y: m.s.Ground() - petH/2.0, W: petW, H: petH}
}

// Look returns the pet's face.
func (m *Mode) Look() Look {
	return m.look
}

// Pet returns the pet's box.
func (m *Mode) Pet() core.Box {
	return m.pet
}

// Can returns the watering can body.
func (m *Mode) Can() *physics.Body {
	return m.can
}

// Watering reports whether the watering can is out.
func (m *Mode) Watering() bool {
	return m.watering
}

// Pouring reports whether water is running onto the pet.
func (m *Mode) Pouring() bool {
	return m.water != nil && m.water.Playing()
}

// Hammer bonks the pet. The hammer face lasts hammerHold after the latest
// hit.
func (m *Mode) Hammer() {
	m.look = Hammered
	m.s.Play(m.hammerSnd, 0.9)
	m.hold.Next().After(hammerHold, func() {
		if m.look == Hammered {
			m.look = Plain
		}
	})
}

// Butter smears butter on the pet.
func (m *Mode) Butter() {
	m.endHold()
	m.look = Buttered
	m.s.Play(m.butterSnd, 0.9)
}

// ToggleWater takes the watering can out or puts it back.
func (m *Mode) ToggleWater() {
	m.watering = !m.watering
	m.waterBtn.Active = m.watering
	if !m.watering {
		m.stowCan()
	}
}

// Remove cleans the pet and puts the watering can away.
func (m *Mode) Remove() {
	m.endHold()
	m.look = Plain
	m.watering = false
	m.waterBtn.Active = false
	m.stowCan()
}

func (m *Mode) endHold() {
	//nolint:errcheck // Undo steps here cannot fail
	m.hold.End()
}

// stowCan stops pouring and sends the can home.
func (m *Mode) stowCan() {
	m.stopWater()
	m.drag.Cancel()
	m.dragging = false
	m.touching = false
	m.can.MoveTo(canHomeX, canHomeY)
}

func (m *Mode) pointerDown(ev *host.Event) {
	if ev.Y == 0 {
		m.scrolling = true
		m.scrollX = ev.X
		m.scrollFrom = m.s.Ctx.Host.Document.ScrollOffset()
		ev.PreventDefault()
		return
	}
	if !m.watering {
		return
	}
	x, y := stage.Pointer(ev)
	if m.drag.Begin(m.can.Box(), x, y) {
		m.dragging = true
		m.stopWater()
		ev.PreventDefault()
	}
}

func (m *Mode) pointerMove(ev *host.Event) {
	if m.scrolling {
		doc := m.s.Ctx.Host.Document
		walk := int(float64(ev.X-m.scrollX) * scrollRate)
		target := m.scrollFrom - walk/entryCells
		doc.Scroll(target - doc.ScrollOffset())
		return
	}
	if !m.dragging {
		return
	}
	x, y, ok := m.drag.Move(stage.Pointer(ev))
	if !ok {
		return
	}
	m.can.MoveTo(x, y)

	hit := m.can.Box().Overlaps(m.pet)
	switch {
	case hit && !m.touching:
		m.look = Wet
		m.touching = true
		m.startWater()
	case !hit && m.touching:
		m.touching = false
		m.stopWater()
	}
}

func (m *Mode) pointerUp(*host.Event) {
	m.scrolling = false
	if m.dragging {
		m.stowCan()
	}
}

// startWater plays the looping water voice from the top. The voice is
// created once and registered with the sound registry so a mode switch
// silences it.
func (m *Mode) startWater() {
	if m.water == nil {
		clip := m.waterSnd.Clip()
		if clip == nil {
			return
		}
		v, err := clip.NewVoice()
		if err != nil {
			m.s.Ctx.Logger.Debug("water voice unavailable", "err", err)
			return
		}
		m.water = v
		m.s.Ctx.Sound.Register(v)
	}
	//nolint:errcheck // Best effort
	m.water.Rewind()
	m.water.SetVolume(m.s.Ctx.Sound.Gain(waterVolume))
	if err := m.water.Play(); err != nil {
		m.s.Ctx.Logger.Debug("water voice did not start", "err", err)
	}
}

func (m *Mode) stopWater() {
	if m.water == nil {
		return
	}
	m.water.Pause()
	//nolint:errcheck // Best effort
	m.water.Rewind()
}

func (m *Mode) closeWater() {
	if m.water == nil {
		return
	}
	m.stopWater()
	if err := m.water.Close(); err != nil {
		m.s.Ctx.Logger.Debug("water voice close", "err", err)
	}
	m.water = nil
}

func (m *Mode) frameTick(time.Time) {
	// loop the trickle while the can is over the pet
	if m.touching && m.water != nil && !m.water.Playing() {
		m.startWater()
	}
	m.draw()
}

func (m *Mode) draw() {
	scr := m.s.Screen()
	scr.Clear()
	m.s.DrawGround()
	scr.DrawTextCentered(0, StripText, core.ColorGray)

	sp := m.looks[m.look]
	if !sp.Ready() {
		sp = m.looks[Plain]
	}
	m.s.Draw(sp, m.pet, core.ColorBrightGreen)

	if !m.watering {
		return
	}
	box := m.can.Box()
	m.s.Draw(m.canArt, box, core.ColorCyan)
	if m.touching {
		x, y := box.TopLeft()
		for i := 0; i < 3; i++ {
			scr.SetCell(x+int(box.W)+i-1, y+int(box.H)+i%2, '\'', core.ColorBrightCyan)
		}
	}
}

func init() {
	registry.Register(mode.Descriptor{
		ID:    ID,
		Label: "Trolling Mode",
		Key:   "9",
		Factory: func() mode.Mode {
			return New()
		},
	})
}
