// Package game is the flap-through-the-poles mini game. A 3-2-1 countdown
// starts each round; flapping keeps the pet airborne and touching a pole
// or the ground ends the round.
package game

import (
	"strconv"
	"time"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/modes/stage"
	"github.com/Mygameindie/Zombiepet/internal/registry"
)

// ID is the mode identifier.
const ID = "game"

// Toolbar control IDs.
const (
	RestartID = "game-restart"
	ExitID    = "game-exit"
)

// Phase is the game's state.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhasePlaying
	PhaseOver
)

// ReadyText is shown after the countdown numbers.
const ReadyText = "Ready!"

const (
	flapVolume  = 0.7
	failVolume  = 0.9
	pointVolume = 0.5
)

// Mode runs rounds until the player leaves.
type Mode struct {
	s     *stage.Stage
	seed  int64
	round *Round
	phase Phase
	input core.InputFrame

	count     int
	countdown host.TimerID
	best      int

	alive, hit        *assets.Sprite
	flap, fail, point *assets.Sound
	restart           *host.Control
}

// New creates the mode. A zero seed picks one from the clock for every
// round.
func New(seed int64) *Mode {
	return &Mode{seed: seed, input: core.NewInputFrame()}
}

// Start implements mode.Mode.
func (m *Mode) Start(ctx *mode.Context) (mode.Teardown, error) {
	s := stage.New(ctx)
	m.s = s

	m.alive = s.Sprite("pet_play")
	m.hit = s.Sprite("pet_hit")
	m.flap = s.Sound("flap")
	m.fail = s.Sound("hit")
	m.point = s.Sound("point")

	m.round = NewRound(ctx.Config.Poles, m.roundSeed(), int(s.Width()), m.fieldH())
	m.loadBest()

	restart := &host.Control{
		ID:       RestartID,
		Kind:     host.Button,
		Text:     "Restart",
		Hidden:   true,
		Anchored: true,
		OnClick:  m.Restart,
	}
	if err := s.Control(restart); err != nil {
		//nolint:errcheck // Already failing
		s.Release()
		return nil, err
	}
	m.restart = restart
	if _, err := s.Button(ExitID, "Change Mode", func() { ctx.RequestMode("normal") }); err != nil {
		//nolint:errcheck // Already failing
		s.Release()
		return nil, err
	}

	s.OnWindow(host.KeyDown, m.keyDown)
	s.OnSurface(host.PointerDown, func(*host.Event) { m.Flap() })
	s.OnWindow(host.Resize, func(*host.Event) {
		m.round.Resize(int(s.Width()), m.fieldH())
	})
	s.Loop(m.frameTick)

	m.startCountdown()
	return s.Teardown(), nil
}

func (m *Mode) fieldH() int {
	return int(m.s.Ground())
}

func (m *Mode) roundSeed() int64 {
	if m.seed != 0 {
		return m.seed
	}
	return time.Now().UnixNano()
}

// Phase returns the current phase.
func (m *Mode) Phase() Phase {
	return m.phase
}

// Round returns the current round.
func (m *Mode) Round() *Round {
	return m.round
}

// CountdownText returns the text shown during the countdown, or "".
func (m *Mode) CountdownText() string {
	if m.phase != PhaseCountdown {
		return ""
	}
	if m.count > 0 {
		return strconv.Itoa(m.count)
	}
	return ReadyText
}

func (m *Mode) keyDown(ev *host.Event) {
	switch ev.Key {
	case " ", "space", "up", "w", "W":
		ev.PreventDefault()
		m.Flap()
	case "p":
		if m.phase == PhasePlaying {
			m.input.Set(core.ActionPause)
		}
	case "r":
		if m.phase == PhaseOver {
			m.Restart()
		}
	}
}

// Flap queues a flap for the next frame. It does nothing outside a round.
func (m *Mode) Flap() {
	if m.phase != PhasePlaying || m.round.State().Paused {
		return
	}
	m.input.Set(core.ActionFlap)
	m.s.Play(m.flap, flapVolume)
}

// Restart hides the restart button and counts down to a new round.
func (m *Mode) Restart() {
	if m.phase != PhaseOver {
		return
	}
	m.restart.Hidden = true
	m.startCountdown()
}

func (m *Mode) startCountdown() {
	m.phase = PhaseCountdown
	m.count = 3
	m.round.Reset(m.roundSeed(), int(m.s.Width()), m.fieldH())
	m.countdown = m.s.Every(m.s.Ctx.Config.Poles.CountdownStep, m.countdownTick)
}

func (m *Mode) countdownTick() {
	m.count--
	if m.count >= 0 {
		return
	}
	m.s.Ctx.Host.Window.ClearTimer(m.countdown)
	m.input.Clear()
	m.phase = PhasePlaying
}

func (m *Mode) frameTick(time.Time) {
	if m.phase == PhasePlaying {
		before := m.round.State().Score
		res := m.round.Step(m.input)
		m.input.Clear()

		if res.State.Score > before {
			m.s.Play(m.point, pointVolume)
		}
		if res.State.GameOver {
			m.over()
		}
	}
	m.draw()
}

func (m *Mode) over() {
	m.phase = PhaseOver
	m.s.Play(m.fail, failVolume)
	m.saveScore(m.round.State().Score)

	m.restart.Hidden = false
	m.restart.AtX = int(m.s.Width())/2 - 4
	m.restart.AtY = m.fieldH() / 2
}

func (m *Mode) loadBest() {
	if m.s.Ctx.Scores == nil {
		return
	}
	best, err := m.s.Ctx.Scores.BestScore(ID)
	if err != nil {
		m.s.Ctx.Logger.Warn("best score unavailable", "err", err)
		return
	}
	m.best = best
}

func (m *Mode) saveScore(score int) {
	m.best = max(m.best, score)
	if m.s.Ctx.Scores == nil || score == 0 {
		return
	}
	if err := m.s.Ctx.Scores.SaveScore(ID, score); err != nil {
		m.s.Ctx.Logger.Warn("score not saved", "score", score, "err", err)
	}
}

// Best returns the best score known to the mode.
func (m *Mode) Best() int {
	return m.best
}

func (m *Mode) draw() {
	scr := m.s.Screen()
	scr.Clear()
	m.s.DrawGround()

	if m.phase == PhaseCountdown {
		scr.DrawTextCentered(m.fieldH()/2, m.CountdownText(), core.ColorBrightWhite)
		return
	}

	m.round.Render(scr, m.best)

	r := m.round.PlayerRect()
	box := core.Box{
		X: float64(r.X) + float64(r.W)/2,
		Y: float64(r.Y) + float64(r.H)/2,
	}
	sp := m.alive
	if m.phase == PhaseOver {
		sp = m.hit
	}
	m.s.Draw(sp, box, core.ColorBrightGreen)
}

func init() {
	registry.Register(mode.Descriptor{
		ID:    ID,
		Label: "Game Mode",
		Key:   "3",
		Factory: func() mode.Mode {
			return New(0)
		},
	})
}
