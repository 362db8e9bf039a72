// Package config provides YAML-based configuration for the pet and its
// modes, with environment overrides and difficulty management for the pole
// game.
package config

import "time"

// Config is the complete runtime configuration.
type Config struct {
	DefaultMode string      `yaml:"default_mode" env:"DEFAULT_MODE"`
	TickRate    int         `yaml:"tick_rate" env:"TICK_RATE"`
	Audio       AudioConfig `yaml:"audio" envPrefix:"AUDIO_"`
	Pet         PetConfig   `yaml:"pet"`
	Feed        FeedConfig  `yaml:"feed"`
	Poles       PolesConfig `yaml:"poles"`
	Sleep       SleepConfig `yaml:"sleep"`
	Swing       SwingConfig `yaml:"swing"`
	Sit         SitConfig   `yaml:"sit"`
}

// AudioConfig controls sound output.
type AudioConfig struct {
	Mute   bool    `yaml:"mute" env:"MUTE"`
	Volume float64 `yaml:"volume" env:"VOLUME"` // master volume, 0..1
}

// PetConfig defines the drag-and-drop physics of the normal mode.
type PetConfig struct {
	Gravity        float64       `yaml:"gravity"`
	Damping        float64       `yaml:"damping"`
	BouncePower    float64       `yaml:"bounce_power"`
	MinImpact      float64       `yaml:"min_impact"`
	ImpactCooldown time.Duration `yaml:"impact_cooldown"`
	GroundHeight   int           `yaml:"ground_height"`
	FlyFrameEvery  int           `yaml:"fly_frame_every"`
}

// FoodKind selects the pet's reaction to a food.
type FoodKind string

const (
	FoodNormal FoodKind = "normal"
	FoodIce    FoodKind = "ice"
	FoodSpicy  FoodKind = "spicy"
)

// FoodConfig describes one spawnable food.
type FoodConfig struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Sprite string   `yaml:"sprite"`
	Liked  bool     `yaml:"liked"`
	Kind   FoodKind `yaml:"kind"`
}

// FeedConfig defines the feeding mode.
type FeedConfig struct {
	Foods       []FoodConfig  `yaml:"foods"`
	BubbleFor   time.Duration `yaml:"bubble_for"`
	MoodFor     time.Duration `yaml:"mood_for"`
	SpawnGrace  time.Duration `yaml:"spawn_grace"`
	Gravity     float64       `yaml:"gravity"`
	Bounce      float64       `yaml:"bounce"`
	MaxOnScreen int           `yaml:"max_on_screen"`
}

// PolesConfig contains all configuration for the flap-through-poles game.
type PolesConfig struct {
	Physics       PolesPhysics     `yaml:"physics"`
	Obstacles     PolesObstacles   `yaml:"obstacles"`
	Player        PolesPlayer      `yaml:"player"`
	Difficulty    DifficultyConfig `yaml:"difficulty"`
	CountdownStep time.Duration    `yaml:"countdown_step"`
}

// PolesPhysics defines physics parameters for the pole game.
type PolesPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// PolesObstacles defines pole parameters.
type PolesObstacles struct {
	PoleWidth    int `yaml:"pole_width"`
	PoleSpacing  int `yaml:"pole_spacing"`
	MinGapSize   int `yaml:"min_gap_size"`
	MaxGapSize   int `yaml:"max_gap_size"`
	TopMargin    int `yaml:"top_margin"`
	BottomMargin int `yaml:"bottom_margin"`
}

// PolesPlayer defines the pet's hitbox in the pole game.
type PolesPlayer struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
}

// SleepConfig defines the sleep mode.
type SleepConfig struct {
	Gravity   float64       `yaml:"gravity"`
	Damping   float64       `yaml:"damping"`
	MinImpact float64       `yaml:"min_impact"`
	WakeBlock time.Duration `yaml:"wake_block"` // taps ignored right after tucking in
}

// SwingConfig defines the pendulum in swing mode.
type SwingConfig struct {
	Gravity    float64 `yaml:"gravity"`
	MinGravity float64 `yaml:"min_gravity"`
	MaxGravity float64 `yaml:"max_gravity"`
	Damping    float64 `yaml:"damping"`
	MaxPull    float64 `yaml:"max_pull"` // degrees
	PullStep   float64 `yaml:"pull_step"`
}

// SitConfig defines the sit pose overlay.
type SitConfig struct {
	FrameEvery int `yaml:"frame_every"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
