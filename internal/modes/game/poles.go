package game

import (
	"math/rand"

	"github.com/Mygameindie/Zombiepet/internal/config"
	"github.com/Mygameindie/Zombiepet/internal/core"
)

// Pole is a vertical obstacle with a gap the pet must fly through.
type Pole struct {
	X         float64 // left edge
	GapY      int     // first row of the gap
	GapHeight int     // rows in the gap
	Passed    bool    // the pet is past this pole
}

// Left returns the column of the pole's left edge.
func (p Pole) Left() int {
	return int(p.X)
}

// TopRect returns the collision rectangle above the gap.
func (p Pole) TopRect(width int) core.Rect {
	return core.NewRect(p.Left(), 0, width, p.GapY)
}

// BottomRect returns the collision rectangle below the gap.
func (p Pole) BottomRect(width, fieldH int) core.Rect {
	bottomY := p.GapY + p.GapHeight
	return core.NewRect(p.Left(), bottomY, width, fieldH-bottomY)
}

// PoleManager spawns, moves and removes poles.
type PoleManager struct {
	poles      []Pole
	rng        *rand.Rand
	screenW    int
	fieldH     int
	cfg        *config.PolesConfig
	difficulty *config.DifficultyManager
}

// NewPoleManager creates a manager for a field of screenW x fieldH cells.
func NewPoleManager(seed int64, screenW, fieldH int, cfg *config.PolesConfig, diff *config.DifficultyManager) *PoleManager {
	pm := &PoleManager{
		poles:      make([]Pole, 0, 8),
		screenW:    screenW,
		fieldH:     fieldH,
		cfg:        cfg,
		difficulty: diff,
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all poles and reseeds the generator.
func (pm *PoleManager) Reset(seed int64) {
	pm.poles = pm.poles[:0]
	pm.rng = rand.New(rand.NewSource(seed))
}

// Resize updates the field dimensions.
func (pm *PoleManager) Resize(screenW, fieldH int) {
	pm.screenW = screenW
	pm.fieldH = fieldH
}

// Update moves poles left and spawns new ones as needed.
// It returns the number of poles passed this frame.
func (pm *PoleManager) Update(playerX, score, ticks int) int {
	speed := pm.difficulty.Speed(pm.cfg.Physics.BaseSpeed, score, ticks)
	for i := range pm.poles {
		pm.poles[i].X -= speed
	}

	width := pm.cfg.Obstacles.PoleWidth
	passed := 0
	for i := range pm.poles {
		if !pm.poles[i].Passed && pm.poles[i].Left()+width < playerX {
			pm.poles[i].Passed = true
			passed++
		}
	}

	visible := pm.poles[:0]
	for _, p := range pm.poles {
		if p.Left()+width > 0 {
			visible = append(visible, p)
		}
	}
	pm.poles = visible

	spacing := pm.difficulty.Spacing(pm.cfg.Obstacles.PoleSpacing, score, ticks)
	if len(pm.poles) == 0 || pm.poles[len(pm.poles)-1].Left() < pm.screenW-spacing {
		pm.spawn(score, ticks)
	}
	return passed
}

func (pm *PoleManager) spawn(score, ticks int) {
	obs := pm.cfg.Obstacles
	minGap := obs.MinGapSize
	currentGap := max(pm.difficulty.GapSize(obs.MaxGapSize, score, ticks), minGap)

	gapHeight := minGap
	if r := currentGap - minGap; r > 0 {
		gapHeight = minGap + pm.rng.Intn(r+1)
	}

	minGapY := obs.TopMargin
	maxGapY := max(pm.fieldH-obs.BottomMargin-gapHeight, minGapY)
	gapY := minGapY
	if maxGapY > minGapY {
		gapY = minGapY + pm.rng.Intn(maxGapY-minGapY+1)
	}

	pm.poles = append(pm.poles, Pole{
		X:         float64(pm.screenW),
		GapY:      gapY,
		GapHeight: gapHeight,
	})
}

// Poles returns the current poles.
func (pm *PoleManager) Poles() []Pole {
	return pm.poles
}

// CheckCollision reports whether r touches any pole.
func (pm *PoleManager) CheckCollision(r core.Rect) bool {
	width := pm.cfg.Obstacles.PoleWidth
	for _, p := range pm.poles {
		if r.Intersects(p.TopRect(width)) || r.Intersects(p.BottomRect(width, pm.fieldH)) {
			return true
		}
	}
	return false
}
