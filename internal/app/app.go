// Package app assembles one pet: the host, the sound facility, the asset
// loader, the switchboard with every registered mode and the sit overlay.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/config"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/inputlock"
	"github.com/Mygameindie/Zombiepet/internal/lifecycle"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/overlay/sit"
	"github.com/Mygameindie/Zombiepet/internal/registry"
	"github.com/Mygameindie/Zombiepet/internal/sound"
	"github.com/Mygameindie/Zombiepet/internal/sound/otoaudio"
	"github.com/Mygameindie/Zombiepet/internal/switchboard"

	// Modes register themselves.
	_ "github.com/Mygameindie/Zombiepet/internal/modes/feed"
	_ "github.com/Mygameindie/Zombiepet/internal/modes/game"
	_ "github.com/Mygameindie/Zombiepet/internal/modes/karaoke"
	_ "github.com/Mygameindie/Zombiepet/internal/modes/normal"
	_ "github.com/Mygameindie/Zombiepet/internal/modes/shower"
	_ "github.com/Mygameindie/Zombiepet/internal/modes/sleep"
	_ "github.com/Mygameindie/Zombiepet/internal/modes/swing"
	_ "github.com/Mygameindie/Zombiepet/internal/modes/trolling"
	_ "github.com/Mygameindie/Zombiepet/internal/modes/xox"
)

// Options configures a new App.
type Options struct {
	Width, Height int
	Config        config.Config
	Logger        *log.Logger

	// Device plays sound. Nil means silent.
	Device sound.Device
	// Scores persists game results. Optional.
	Scores mode.ScoreStore
	// Assets holds the sprites. Nil means the embedded set.
	Assets fs.FS
	// TempDir receives object URL copies. Empty means the OS default.
	TempDir string
	// Registry lists the selectable modes. Nil means registry.Default.
	Registry *registry.Registry
}

// App is a running pet.
type App struct {
	Host        *host.Host
	Ctx         *mode.Context
	Bus         *lifecycle.Bus
	Switchboard *switchboard.Switchboard
	Sit         *sit.Overlay

	cfg     config.Config
	started bool
	closed  bool
}

// New builds an App. Nothing runs until Start.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	device := opts.Device
	if device == nil {
		device = sound.Silent{}
	}
	fsys := opts.Assets
	if fsys == nil {
		fsys = assets.Embedded()
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default
	}

	var h *host.Host
	if opts.TempDir != "" {
		h = host.NewWithTempDir(opts.Width, opts.Height, opts.TempDir)
	} else {
		h = host.New(opts.Width, opts.Height)
	}

	cfg := opts.Config
	ctx := &mode.Context{
		Host:   h,
		Sound:  sound.NewRegistry(cfg.Audio.Volume, cfg.Audio.Mute),
		Device: device,
		Assets: assets.NewLoader(fsys, device, h.Tasks, logger),
		Pose:   &mode.PoseSlot{},
		Config: cfg,
		Logger: logger,
		Scores: opts.Scores,
	}
	bus := lifecycle.NewBus(logger)

	return &App{
		Host:        h,
		Ctx:         ctx,
		Bus:         bus,
		Switchboard: switchboard.New(ctx, bus, reg),
		cfg:         cfg,
	}
}

// Start locks down host gestures, installs the mode triggers, loads the
// default mode and attaches the sit overlay.
func (a *App) Start() error {
	if a.started {
		return errors.New("app: already started")
	}
	a.started = true

	if err := inputlock.Install(a.Host); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := a.Switchboard.InstallTriggers(); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	// A failed default mode leaves the pet idle with an error status; the
	// triggers still work.
	if err := a.Switchboard.Boot(a.cfg.DefaultMode); err != nil {
		a.Ctx.Logger.Error("default mode failed", "mode", a.cfg.DefaultMode, "err", err)
	}
	a.Sit = sit.New(a.Ctx, a.Bus, a.Switchboard.ActiveName)
	return nil
}

// Frame runs one frame at now.
func (a *App) Frame(now time.Time) {
	a.Host.Frame(now)
}

// Close tears down the active mode and the overlay.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.Switchboard.Shutdown()
	if a.Sit != nil {
		a.Sit.Close()
	}
	inputlock.Forget(a.Host)
}

// OpenDevice opens the audio output. It falls back to silence when muted
// or when no audio device is available.
func OpenDevice(mute bool, logger *log.Logger) sound.Device {
	if mute {
		return sound.Silent{}
	}
	dev, err := otoaudio.New(logger)
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return sound.Silent{}
	}
	return dev
}
