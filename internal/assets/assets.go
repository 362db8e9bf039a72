// Package assets loads sprites and sounds in the background. Handles are
// returned immediately and become ready on the event loop once loading
// finishes; a failed load leaves the handle not ready forever.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/sound"
)

//go:embed sprites/*.txt
var embedded embed.FS

// Embedded returns the sprites compiled into the binary.
func Embedded() fs.FS {
	return embedded
}

// Sprite is ASCII art loaded from sprites/<name>.txt. Spaces are transparent.
type Sprite struct {
	name  string
	art   []string
	w     int
	ready bool
}

// Name returns the sprite name.
func (s *Sprite) Name() string { return s.name }

// Ready reports whether the art has been loaded.
func (s *Sprite) Ready() bool { return s != nil && s.ready }

// Art returns the lines of the sprite, or nil until ready.
func (s *Sprite) Art() []string {
	if !s.Ready() {
		return nil
	}
	return s.art
}

// Size returns the sprite size in cells.
func (s *Sprite) Size() (w, h int) {
	if !s.Ready() {
		return 0, 0
	}
	return s.w, len(s.art)
}

// Sound is a named effect loaded through the audio device.
type Sound struct {
	name  string
	clip  sound.Clip
	ready bool
}

// Name returns the sound name.
func (s *Sound) Name() string { return s.name }

// Ready reports whether the clip is available.
func (s *Sound) Ready() bool { return s != nil && s.ready }

// Clip returns the loaded clip, or nil until ready.
func (s *Sound) Clip() sound.Clip {
	if !s.Ready() {
		return nil
	}
	return s.clip
}

// Play starts a tracked clone of the sound. It does nothing until ready.
func (s *Sound) Play(reg *sound.Registry, volume float64) {
	if !s.Ready() {
		return
	}
	reg.PlayClone(s.clip, volume)
}

// Loader hands out cached asset handles.
type Loader struct {
	fsys   fs.FS
	device sound.Device
	tasks  *host.Tasks
	logger *log.Logger

	mu      sync.Mutex
	sprites map[string]*Sprite
	sounds  map[string]*Sound
	wg      sync.WaitGroup
}

// NewLoader creates a loader reading sprites from fsys and sounds from
// device. Completions are posted to tasks.
func NewLoader(fsys fs.FS, device sound.Device, tasks *host.Tasks, logger *log.Logger) *Loader {
	return &Loader{
		fsys:    fsys,
		device:  device,
		tasks:   tasks,
		logger:  logger,
		sprites: make(map[string]*Sprite),
		sounds:  make(map[string]*Sound),
	}
}

// Sprite returns the handle for name, starting the load on first use.
func (l *Loader) Sprite(name string) *Sprite {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.sprites[name]; ok {
		return s
	}
	s := &Sprite{name: name}
	l.sprites[name] = s

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		art, err := readArt(l.fsys, name)
		if err != nil {
			l.logger.Warn("sprite failed to load", "sprite", name, "err", err)
			return
		}
		w := 0
		for _, line := range art {
			w = max(w, len([]rune(line)))
		}
		l.tasks.Post(func() {
			s.art = art
			s.w = w
			s.ready = true
		})
	}()
	return s
}

// Sound returns the handle for name, starting the load on first use.
func (l *Loader) Sound(name string) *Sound {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.sounds[name]; ok {
		return s
	}
	s := &Sound{name: name}
	l.sounds[name] = s

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		clip, err := l.device.Load(name)
		if err != nil {
			l.logger.Warn("sound failed to load", "sound", name, "err", err)
			return
		}
		l.tasks.Post(func() {
			s.clip = clip
			s.ready = true
		})
	}()
	return s
}

// Wait blocks until every started load has finished and posted its
// completion. The completions still run on the next Tasks.Drain.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func readArt(fsys fs.FS, name string) ([]string, error) {
	data, err := fs.ReadFile(fsys, "sprites/"+name+".txt")
	if err != nil {
		return nil, fmt.Errorf("assets: read sprite: %w", err)
	}
	text := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if text == "" {
		return nil, fmt.Errorf("assets: sprite %q is empty", name)
	}
	return strings.Split(text, "\n"), nil
}
