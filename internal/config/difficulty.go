package config

// DifficultyManager derives pole game parameters from the score or the
// number of frames played.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0, 1),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(score, frames int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(frames) / maxAt
	default:
		return d.initialLevel
	}

	// Interpolate from initial level to 1.0
	return d.initialLevel + clampF(progress, 0, 1)*(1.0-d.initialLevel)
}

// Speed returns the scroll speed for the current level.
func (d *DifficultyManager) Speed(baseSpeed float64, score, frames int) float64 {
	return baseSpeed * (1.0 + d.Level(score, frames)*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize returns the widest allowed gap for the current level.
func (d *DifficultyManager) GapSize(baseGap, score, frames int) int {
	reduction := int(d.Level(score, frames) * float64(d.cfg.Scaling.GapReduction))
	return max(baseGap-reduction, 4)
}

// Spacing returns the distance between poles for the current level.
func (d *DifficultyManager) Spacing(baseSpacing, score, frames int) int {
	reduction := int(d.Level(score, frames) * float64(d.cfg.Scaling.SpacingReduction))
	return max(baseSpacing-reduction, 12)
}

func clampF(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
