package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. ZOMBIEPET_AUDIO_MUTE.
const EnvPrefix = "ZOMBIEPET_"

// Load loads the configuration and applies environment overrides.
// Search order: customPath -> ~/.zombiepet/config.yaml -> ./configs/pet.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	return cfg, cfg.Validate()
}

func loadFile(customPath string) (Config, error) {
	// Start from defaults so partial files keep sensible values
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = Default()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/pet.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = Default()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate rejects values no mode can run with.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("invalid tick_rate %d: must be positive", c.TickRate)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("invalid audio.volume %.2f: must be within [0, 1]", c.Audio.Volume)
	}
	if c.Poles.Obstacles.MinGapSize > c.Poles.Obstacles.MaxGapSize {
		return fmt.Errorf("invalid poles.obstacles: min_gap_size %d exceeds max_gap_size %d",
			c.Poles.Obstacles.MinGapSize, c.Poles.Obstacles.MaxGapSize)
	}
	if c.Sit.FrameEvery <= 0 {
		return fmt.Errorf("invalid sit.frame_every %d: must be positive", c.Sit.FrameEvery)
	}
	return nil
}

// Dir returns ~/.zombiepet, or empty if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".zombiepet")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}

// ApplyPolesPreset modifies the config based on a difficulty preset.
func ApplyPolesPreset(cfg *PolesConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
