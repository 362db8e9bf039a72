package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/pet.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultMode: "normal",
		TickRate:    30,
		Audio: AudioConfig{
			Mute:   false,
			Volume: 0.9,
		},
		Pet: PetConfig{
			Gravity:        0.12,
			Damping:        0.985,
			BouncePower:    1.4,
			MinImpact:      0.15,
			ImpactCooldown: 120 * time.Millisecond,
			GroundHeight:   2,
			FlyFrameEvery:  5,
		},
		Feed: FeedConfig{
			Foods:       DefaultFoods(),
			BubbleFor:   1200 * time.Millisecond,
			MoodFor:     1500 * time.Millisecond,
			SpawnGrace:  800 * time.Millisecond,
			Gravity:     0.06,
			Bounce:      0.4,
			MaxOnScreen: 24,
		},
		Poles: PolesConfig{
			Physics: PolesPhysics{
				Gravity:      0.25,
				JumpImpulse:  -1.8,
				MaxFallSpeed: 3.0,
				BaseSpeed:    0.8,
			},
			Obstacles: PolesObstacles{
				PoleWidth:    5,
				PoleSpacing:  30,
				MinGapSize:   8,
				MaxGapSize:   12,
				TopMargin:    3,
				BottomMargin: 3,
			},
			Player: PolesPlayer{
				X:      10,
				Width:  5,
				Height: 3,
			},
			Difficulty: DifficultyConfig{
				Enabled:      true,
				InitialLevel: 0.0,
				Progression: ProgressionConfig{
					Type:  "score",
					MaxAt: 50,
				},
				Scaling: ScalingConfig{
					SpeedMultiplier:  1.0,
					GapReduction:     4,
					SpacingReduction: 10,
				},
			},
			CountdownStep: 500 * time.Millisecond,
		},
		Sleep: SleepConfig{
			Gravity:   0.1,
			Damping:   0.94,
			MinImpact: 0.15,
			WakeBlock: 100 * time.Millisecond,
		},
		Swing: SwingConfig{
			Gravity:    9.8,
			MinGravity: 1,
			MaxGravity: 25,
			Damping:    0.995,
			MaxPull:    50,
			PullStep:   10,
		},
		Sit: SitConfig{
			FrameEvery: 20,
		},
	}
}

// DefaultFoods returns the built-in food list.
func DefaultFoods() []FoodConfig {
	return []FoodConfig{
		{ID: "fish", Name: "Fish", Sprite: "fish", Liked: true, Kind: FoodNormal},
		{ID: "garlic", Name: "Garlic", Sprite: "garlic", Liked: false, Kind: FoodNormal},
		{ID: "lettuce", Name: "Ice Lettuce", Sprite: "lettuce", Liked: true, Kind: FoodIce},
		{ID: "brain", Name: "Brain", Sprite: "brain", Liked: true, Kind: FoodNormal},
		{ID: "duck", Name: "Rubber Duck", Sprite: "duck", Liked: false, Kind: FoodNormal},
		{ID: "candy", Name: "Candy", Sprite: "candy", Liked: true, Kind: FoodIce},
		{ID: "chili", Name: "Chili", Sprite: "chili", Liked: true, Kind: FoodSpicy},
	}
}
