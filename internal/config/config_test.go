package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := loadFile("")
	if err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	def := Default()

	if cfg.DefaultMode != def.DefaultMode || cfg.TickRate != def.TickRate {
		t.Errorf("top-level mismatch: got %q/%d, want %q/%d",
			cfg.DefaultMode, cfg.TickRate, def.DefaultMode, def.TickRate)
	}
	if cfg.Pet != def.Pet {
		t.Errorf("pet config mismatch:\n got %+v\nwant %+v", cfg.Pet, def.Pet)
	}
	if len(cfg.Feed.Foods) != len(def.Feed.Foods) {
		t.Errorf("foods = %d, want %d", len(cfg.Feed.Foods), len(def.Feed.Foods))
	}
	if cfg.Poles.CountdownStep != 500*time.Millisecond {
		t.Errorf("countdown_step = %v, want 500ms", cfg.Poles.CountdownStep)
	}
}

func TestLoadCustomPathPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.yaml")
	data := "default_mode: feed\naudio:\n  volume: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultMode != "feed" {
		t.Errorf("DefaultMode = %q, want feed", cfg.DefaultMode)
	}
	if cfg.Audio.Volume != 0.5 {
		t.Errorf("Volume = %v, want 0.5", cfg.Audio.Volume)
	}
	if cfg.TickRate != 30 {
		t.Errorf("TickRate = %d, want default 30", cfg.TickRate)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.yaml")
	if err := os.WriteFile(path, []byte("tick_rate: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ZOMBIEPET_AUDIO_MUTE", "true")
	t.Setenv("ZOMBIEPET_TICK_RATE", "45")
	t.Setenv("ZOMBIEPET_DEFAULT_MODE", "swing")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Audio.Mute {
		t.Error("ZOMBIEPET_AUDIO_MUTE not applied")
	}
	if cfg.TickRate != 45 {
		t.Errorf("TickRate = %d, want 45", cfg.TickRate)
	}
	if cfg.DefaultMode != "swing" {
		t.Errorf("DefaultMode = %q, want swing", cfg.DefaultMode)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero tick", func(c *Config) { c.TickRate = 0 }, false},
		{"loud", func(c *Config) { c.Audio.Volume = 1.5 }, false},
		{"gap order", func(c *Config) { c.Poles.Obstacles.MinGapSize = 20 }, false},
		{"sit frames", func(c *Config) { c.Sit.FrameEvery = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestDifficultyLevel(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1, GapReduction: 4, SpacingReduction: 10},
	})

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{5, 0.6},
		{10, 1.0},
		{100, 1.0},
	}
	for _, tt := range tests {
		if got := dm.Level(tt.score, 0); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("Level(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}

	if got := dm.GapSize(6, 10, 0); got != 4 {
		t.Errorf("GapSize at max = %d, want floor 4", got)
	}
	if got := dm.Spacing(30, 10, 0); got != 20 {
		t.Errorf("Spacing at max = %d, want 20", got)
	}
	if got := dm.Speed(1, 10, 0); got != 2 {
		t.Errorf("Speed at max = %v, want 2", got)
	}
}

func TestApplyPolesPreset(t *testing.T) {
	cfg := Default().Poles
	ApplyPolesPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
	ApplyPolesPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", cfg.Difficulty)
	}
}
