package game

import (
	"fmt"

	"github.com/Mygameindie/Zombiepet/internal/config"
	"github.com/Mygameindie/Zombiepet/internal/core"
)

// Visual characters for rendering.
const (
	PoleChar      = '█'
	PoleCapTop    = '▄'
	PoleCapBottom = '▀'
)

// Round is one run through the poles. It is deterministic for a given
// seed and input sequence.
type Round struct {
	cfg    config.PolesConfig
	diff   *config.DifficultyManager
	poles  *PoleManager
	width  int
	fieldH int

	playerY   float64 // top of the hitbox
	playerVel float64
	score     int
	gameOver  bool
	paused    bool
	tickCount int
}

// NewRound creates a round on a field of width x fieldH cells.
func NewRound(cfg config.PolesConfig, seed int64, width, fieldH int) *Round {
	r := &Round{
		cfg:  cfg,
		diff: config.NewDifficultyManager(cfg.Difficulty),
	}
	r.poles = NewPoleManager(seed, width, fieldH, &r.cfg, r.diff)
	r.Reset(seed, width, fieldH)
	return r
}

// Reset restarts the round.
func (r *Round) Reset(seed int64, width, fieldH int) {
	r.width, r.fieldH = width, fieldH
	r.playerY = float64(fieldH-r.cfg.Player.Height) / 2
	r.playerVel = 0
	r.score = 0
	r.gameOver = false
	r.paused = false
	r.tickCount = 0
	r.poles.Resize(width, fieldH)
	r.poles.Reset(seed)
}

// Resize changes the field size without restarting.
func (r *Round) Resize(width, fieldH int) {
	r.width, r.fieldH = width, fieldH
	r.poles.Resize(width, fieldH)
}

// Step advances the round one frame.
func (r *Round) Step(in core.InputFrame) core.StepResult {
	if r.gameOver {
		return core.StepResult{State: r.State()}
	}
	if in.Has(core.ActionPause) {
		r.paused = !r.paused
	}
	if r.paused {
		return core.StepResult{State: r.State()}
	}

	r.tickCount++
	phys := r.cfg.Physics
	if in.Has(core.ActionFlap) {
		r.playerVel = phys.JumpImpulse
	}
	r.playerVel = min(r.playerVel+phys.Gravity, phys.MaxFallSpeed)
	r.playerY += r.playerVel

	player := r.cfg.Player
	r.score += r.poles.Update(player.X+player.Width, r.score, r.tickCount)

	// the ceiling holds the pet, the floor ends the round
	if r.playerY < 0 {
		r.playerY = 0
		r.playerVel = 0
	}
	if int(r.playerY)+player.Height >= r.fieldH {
		r.playerY = float64(r.fieldH - player.Height)
		r.gameOver = true
	}
	if r.poles.CheckCollision(r.PlayerRect()) {
		r.gameOver = true
	}

	return core.StepResult{State: r.State()}
}

// PlayerRect returns the pet's hitbox.
func (r *Round) PlayerRect() core.Rect {
	p := r.cfg.Player
	return core.NewRect(p.X, int(r.playerY), p.Width, p.Height)
}

// State returns the externally visible state.
func (r *Round) State() core.GameState {
	return core.GameState{
		Score:    r.score,
		GameOver: r.gameOver,
		Paused:   r.paused,
	}
}

// Render draws the poles and the score. The pet is drawn by the mode.
func (r *Round) Render(dst *core.Screen, best int) {
	for _, p := range r.poles.Poles() {
		r.drawPole(dst, p)
	}

	hud := fmt.Sprintf(" Score: %d ", r.score)
	if best > 0 {
		hud += fmt.Sprintf(" Best: %d ", best)
	}
	dst.DrawTextColor(2, 0, hud, core.ColorBrightWhite)

	if r.paused {
		dst.DrawTextCentered(r.fieldH/2, "PAUSED  (P to resume)", core.ColorBrightYellow)
	}
}

func (r *Round) drawPole(dst *core.Screen, p Pole) {
	width := r.cfg.Obstacles.PoleWidth
	x := p.Left()
	c := core.ColorGreen

	for y := 0; y < p.GapY; y++ {
		dst.DrawHLine(x, y, width, PoleChar, c)
	}
	if p.GapY > 0 {
		dst.DrawHLine(x, p.GapY-1, width, PoleCapTop, c)
	}

	bottomY := p.GapY + p.GapHeight
	for y := bottomY; y < r.fieldH; y++ {
		dst.DrawHLine(x, y, width, PoleChar, c)
	}
	if bottomY < r.fieldH {
		dst.DrawHLine(x, bottomY, width, PoleCapBottom, c)
	}
}
