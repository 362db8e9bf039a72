// Package karaoke plays a song picked by the player while the pet dances
// along.
package karaoke

import (
	"errors"
	"strings"
	"time"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/lifecycle"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/modes/stage"
	"github.com/Mygameindie/Zombiepet/internal/registry"
	"github.com/Mygameindie/Zombiepet/internal/sound"
)

// ID is the mode identifier.
const ID = "karaoke"

// Control IDs.
const (
	FileID     = "karaoke-file"
	PauseID    = "karaoke-pause"
	ProgressID = "karaoke-progress"
	PromptID   = "karaoke-prompt"
)

// Texts shown on the controls.
const (
	FileHint   = "Song file (.wav)"
	PauseText  = "Pause"
	ResumeText = "Resume"
	PromptText = "Tap to start playback"
)

const (
	danceEvery    = 400 * time.Millisecond
	progressEvery = 100 * time.Millisecond
	petW, petH    = 9, 5
)

// State is the playback state.
type State int

const (
	Idle State = iota
	// PendingGesture waits for a tap before retrying a rejected Play.
	PendingGesture
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case PendingGesture:
		return "pendingGesture"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Mode is the karaoke mode.
type Mode struct {
	s *stage.Stage

	state State
	media sound.Media
	song  *lifecycle.Cycle // URL and timers of the current song
	frame int

	pauseBtn *host.Control
	bar      *host.Control
	prompt   *host.Control

	frames [2]*assets.Sprite
}

// New creates the mode.
func New() *Mode {
	return &Mode{}
}

// Start implements mode.Mode.
func (m *Mode) Start(ctx *mode.Context) (mode.Teardown, error) {
	s := stage.New(ctx)
	m.s = s
	m.frames = [2]*assets.Sprite{s.Sprite("pet_music1"), s.Sprite("pet_music2")}

	controls := []*host.Control{
		{ID: FileID, Kind: host.Input, Text: FileHint, OnSubmit: m.Load},
		{ID: PauseID, Kind: host.Button, Text: PauseText, Hidden: true, OnClick: m.TogglePause},
		{ID: ProgressID, Kind: host.Progress, Hidden: true},
		{ID: PromptID, Kind: host.Label, Text: PromptText, Hidden: true, Anchored: true},
	}
	for _, c := range controls {
		if err := s.Control(c); err != nil {
			//nolint:errcheck // Already failing
			s.Release()
			return nil, err
		}
	}
	m.pauseBtn, m.bar, m.prompt = controls[1], controls[2], controls[3]

	// Runs before the controls are removed on release.
	s.Defer(m.stop)
	m.song = s.Cycle()

	s.OnWindow(host.PointerDown, m.gesture)
	s.OnWindow(host.KeyDown, m.gesture)
	s.Loop(func(time.Time) { m.draw() })

	return s.Teardown(), nil
}

// State returns the playback state.
func (m *Mode) State() State {
	return m.state
}

// Frame returns the index of the dance frame shown.
func (m *Mode) Frame() int {
	return m.frame
}

// Load starts playing the file at path. A blank or unreadable path is
// ignored. A song already playing is replaced.
func (m *Mode) Load(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	log := m.s.Ctx.Logger
	urls := m.s.Ctx.Host.URLs

	url, err := urls.Create(path)
	if err != nil {
		log.Debug("karaoke file ignored", "path", path, "err", err)
		return
	}
	file, err := urls.Resolve(url)
	if err != nil {
		urls.Revoke(url)
		return
	}
	media, err := m.s.Ctx.Device.OpenMedia(file)
	if err != nil {
		log.Warn("karaoke media not playable", "path", path, "err", err)
		urls.Revoke(url)
		return
	}

	m.stop()
	round := m.song.Next()
	round.Defer(func() { urls.Revoke(url) })
	m.media = media
	m.pauseBtn.Hidden = false
	m.pauseBtn.Text = PauseText
	m.bar.Hidden = false
	m.bar.Value = 0
	m.startTimers(round)
	m.play(true)
}

// play starts the media. A rejection that asks for a gesture arms one retry
// when retry is set.
func (m *Mode) play(retry bool) {
	err := m.media.Play()
	switch {
	case err == nil:
		m.state = Playing
	case errors.Is(err, sound.ErrGestureRequired) && retry:
		m.state = PendingGesture
		m.showPrompt()
	default:
		m.s.Ctx.Logger.Warn("karaoke playback failed", "err", err)
		m.state = Paused
		m.pauseBtn.Text = ResumeText
	}
}

func (m *Mode) showPrompt() {
	scr := m.s.Screen()
	m.prompt.AtX = (scr.Width() - len(PromptText)) / 2
	m.prompt.AtY = scr.Height() / 2
	m.prompt.Hidden = false
}

// gesture retries a rejected Play once.
func (m *Mode) gesture(*host.Event) {
	if m.state != PendingGesture {
		return
	}
	m.prompt.Hidden = true
	m.play(false)
}

// TogglePause pauses or resumes the song.
func (m *Mode) TogglePause() {
	switch m.state {
	case Playing:
		m.media.Pause()
		m.state = Paused
		m.pauseBtn.Text = ResumeText
	case Paused:
		m.pauseBtn.Text = PauseText
		m.play(false)
	}
}

func (m *Mode) startTimers(round *lifecycle.Scope) {
	round.Every(danceEvery, func() {
		if m.state == Playing {
			m.frame = 1 - m.frame
		}
	})
	round.Every(progressEvery, m.updateProgress)
}

func (m *Mode) updateProgress() {
	if m.media == nil {
		return
	}
	m.bar.Value = core.ClampF(m.media.Progress(), 0, 1)
	if m.bar.Value >= 1 && !m.media.Playing() {
		m.stop()
	}
}

// stop closes the media and returns to idle.
func (m *Mode) stop() {
	if m.media != nil {
		m.media.Pause()
		if err := m.media.Close(); err != nil {
			m.s.Ctx.Logger.Debug("karaoke media close", "err", err)
		}
		m.media = nil
	}
	if m.song != nil {
		//nolint:errcheck // Undo steps here cannot fail
		m.song.End()
	}
	m.state = Idle
	m.frame = 0
	m.pauseBtn.Hidden = true
	m.bar.Hidden = true
	m.bar.Value = 0
	m.prompt.Hidden = true
}

func (m *Mode) draw() {
	scr := m.s.Screen()
	scr.Clear()
	m.s.DrawGround()

	g := m.s.Ground()
	box := stage.SpriteBox(m.frames[m.frame], m.s.Width()/2, 0, petW, petH)
	box.Y = g - box.H/2
	m.s.Draw(m.frames[m.frame], box, core.ColorBrightMagenta)

	if m.state == Idle {
		scr.DrawTextCentered(int(g)-int(box.H)-2, "Enter a song file in the toolbar", core.ColorGray)
	}
}

func init() {
	registry.Register(mode.Descriptor{
		ID:    ID,
		Label: "Karaoke Mode",
		Key:   "7",
		Factory: func() mode.Mode {
			return New()
		},
	})
}
