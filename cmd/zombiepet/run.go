package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Mygameindie/Zombiepet/internal/app"
	"github.com/Mygameindie/Zombiepet/internal/config"
	"github.com/Mygameindie/Zombiepet/internal/platform/tui"
	"github.com/Mygameindie/Zombiepet/internal/storage"
)

var (
	flagDifficulty string
	flagMode       string
)

func init() {
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Pole game difficulty: easy, normal, hard, fixed")
	rootCmd.Flags().StringVar(&flagMode, "mode", "", "Mode to start in (default: config default_mode)")
}

// loadConfig loads the config file and environment, then applies the
// global flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagMute {
		cfg.Audio.Mute = true
	}
	return cfg, nil
}

// openLog opens the log file. The terminal belongs to the UI, so nothing is
// logged to stderr while the pet runs.
func openLog(path string) (*log.Logger, func(), error) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "zombiepet",
	})
	//nolint:errcheck // Best-effort close on exit
	return logger, func() { f.Close() }, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func runPet(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		config.ApplyPolesPreset(&cfg.Poles, config.DifficultyPreset(flagDifficulty))
	}
	if flagMode != "" {
		cfg.DefaultMode = flagMode
	}

	logger, closeLog, err := openLog(flagLogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	w, h := tui.SurfaceSize(width, height)

	opts := app.Options{
		Width:  w,
		Height: h,
		Config: cfg,
		Logger: logger,
		Device: app.OpenDevice(cfg.Audio.Mute, logger),
	}
	if flagDBPath != "" {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Scores = store
	}

	logger.Info("starting", "mode", cfg.DefaultMode, "size", fmt.Sprintf("%dx%d", w, h), "fps", cfg.TickRate)
	return tui.Run(app.New(opts), cfg.TickRate)
}
