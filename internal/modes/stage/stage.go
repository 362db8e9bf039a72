// Package stage bundles what every mode needs on top of its lifecycle
// scope: sprite drawing, the ground line, speech bubbles, toolbar buttons
// and sound effects.
package stage

import (
	"time"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/lifecycle"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/sound"
)

// GroundChar fills the ground rows.
const GroundChar = '▒'

// Stage is a mode's working area. It is created in Start and released by
// the mode's teardown.
type Stage struct {
	*lifecycle.Scope
	Ctx *mode.Context

	bubbles map[string]host.TimerID
}

// New opens a stage for ctx. It registers into ctx.Scope when the
// switchboard provides one.
func New(ctx *mode.Context) *Stage {
	scope := ctx.Scope
	if scope == nil {
		scope = lifecycle.NewScope(ctx.Host)
	}
	return &Stage{
		Scope:   scope,
		Ctx:     ctx,
		bubbles: make(map[string]host.TimerID),
	}
}

// Teardown returns the stage's release as a mode teardown.
func (s *Stage) Teardown() mode.Teardown {
	return s.Release
}

// Screen returns the surface buffer.
func (s *Stage) Screen() *core.Screen {
	return s.Ctx.Host.Surface.Screen()
}

// Width returns the surface width.
func (s *Stage) Width() float64 {
	return float64(s.Ctx.Host.Surface.Width())
}

// Ground returns the y of the ground line. Objects rest with their bottom
// on it.
func (s *Stage) Ground() float64 {
	gh := s.Ctx.Config.Pet.GroundHeight
	return float64(s.Ctx.Host.Surface.Height() - gh)
}

// DrawGround fills the rows below the ground line.
func (s *Stage) DrawGround() {
	scr := s.Screen()
	g := int(s.Ground())
	for y := g; y < scr.Height(); y++ {
		scr.DrawHLine(0, y, scr.Width(), GroundChar, core.ColorBrown)
	}
}

// Sprite returns the cached handle for name.
func (s *Stage) Sprite(name string) *assets.Sprite {
	return s.Ctx.Assets.Sprite(name)
}

// Sound returns the cached handle for name.
func (s *Stage) Sound(name string) *assets.Sound {
	return s.Ctx.Assets.Sound(name)
}

// Draw draws sp centered in box. Sprites that are not loaded are skipped.
func (s *Stage) Draw(sp *assets.Sprite, box core.Box, c core.Color) {
	if !sp.Ready() {
		return
	}
	w, h := sp.Size()
	x := int(box.X - float64(w)/2)
	y := int(box.Y - float64(h)/2)
	s.Screen().DrawArt(x, y, sp.Art(), c)
}

// DrawArt draws raw art centered in box.
func (s *Stage) DrawArt(art []string, box core.Box, c core.Color) {
	h := len(art)
	w := 0
	for _, line := range art {
		w = max(w, len([]rune(line)))
	}
	s.Screen().DrawArt(int(box.X-float64(w)/2), int(box.Y-float64(h)/2), art, c)
}

// Play plays snd at volume through the sound registry.
func (s *Stage) Play(snd *assets.Sound, volume float64) {
	snd.Play(s.Ctx.Sound, volume)
}

// Button adds a toolbar button that is removed on release.
func (s *Stage) Button(id, text string, onClick func()) (*host.Control, error) {
	c := &host.Control{ID: id, Kind: host.Button, Text: text, OnClick: onClick}
	if err := s.Control(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Bubble shows text anchored at (x, y) for d. Showing a bubble with the same
// id replaces the previous one and restarts its timer.
func (s *Stage) Bubble(id, text string, x, y int, d time.Duration) {
	doc := s.Ctx.Host.Document
	if c := doc.Get(id); c != nil {
		c.Text = text
		c.AtX, c.AtY = x, y
		c.Hidden = false
	} else {
		c := &host.Control{ID: id, Kind: host.Label, Text: text, Anchored: true, AtX: x, AtY: y}
		if err := s.Control(c); err != nil {
			s.Ctx.Logger.Warn("bubble not shown", "id", id, "err", err)
			return
		}
	}
	if prev, ok := s.bubbles[id]; ok {
		s.Ctx.Host.Window.ClearTimer(prev)
	}
	s.bubbles[id] = s.After(d, func() {
		delete(s.bubbles, id)
		if c := doc.Get(id); c != nil {
			c.Hidden = true
		}
	})
}

// BubbleText returns the visible text of a bubble, or "".
func (s *Stage) BubbleText(id string) string {
	c := s.Ctx.Host.Document.Get(id)
	if c == nil || c.Hidden {
		return ""
	}
	return c.Text
}

// Pointer converts event cell coordinates to a point at the cell center.
func Pointer(ev *host.Event) (float64, float64) {
	return float64(ev.X) + 0.5, float64(ev.Y) + 0.5
}

// SpriteBox is a box of the sprite's size centered at (x, y). Until the
// sprite loads the fallback size is used.
func SpriteBox(sp *assets.Sprite, x, y, fallbackW, fallbackH float64) core.Box {
	w, h := sp.Size()
	if w == 0 || h == 0 {
		return core.Box{X: x, Y: y, W: fallbackW, H: fallbackH}
	}
	return core.Box{X: x, Y: y, W: float64(w), H: float64(h)}
}

// Pool plays a set of sounds in rotation. Sounds join the rotation as they
// finish loading.
type Pool struct {
	s      *Stage
	sounds []*assets.Sound
	volume float64
	pool   *sound.Pool
	ready  int
}

// Pool creates a rotation of the named sounds.
func (s *Stage) Pool(volume float64, names ...string) *Pool {
	p := &Pool{s: s, volume: volume}
	for _, n := range names {
		p.sounds = append(p.sounds, s.Sound(n))
	}
	return p
}

// Play starts the next sound of the rotation.
func (p *Pool) Play() {
	ready := 0
	for _, snd := range p.sounds {
		if snd.Ready() {
			ready++
		}
	}
	if p.pool == nil || ready != p.ready {
		clips := make([]sound.Clip, 0, len(p.sounds))
		for _, snd := range p.sounds {
			clips = append(clips, snd.Clip())
		}
		p.pool = sound.NewPool(p.s.Ctx.Sound, p.volume, clips...)
		p.ready = ready
	}
	p.pool.Play()
}
