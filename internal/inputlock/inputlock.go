// Package inputlock disables the host's default gestures for the whole
// session so drags and taps only ever reach the modes: no toolbar scrolling
// on wheel or arrow keys, no zoom chords, no terminal text selection and no
// job-control suspend. It is installed once and never removed.
package inputlock

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mygameindie/Zombiepet/internal/host"
)

// ErrAlreadyInstalled is returned when Install is called twice for a host.
var ErrAlreadyInstalled = errors.New("inputlock: already installed")

// Gestures is the set of host defaults the lock suppresses.
const Gestures = host.GestureScroll | host.GestureZoom | host.GestureSelect

var (
	mu        sync.Mutex
	installed = make(map[*host.Host]bool)
)

// Install suppresses the default gestures of h.
func Install(h *host.Host) error {
	mu.Lock()
	defer mu.Unlock()

	if installed[h] {
		return ErrAlreadyInstalled
	}
	installed[h] = true
	h.Suppress(Gestures)
	return nil
}

// Installed reports whether Install has run for h.
func Installed(h *host.Host) bool {
	mu.Lock()
	defer mu.Unlock()
	return installed[h]
}

// Forget drops the record for h once its session has ended.
func Forget(h *host.Host) {
	mu.Lock()
	defer mu.Unlock()
	delete(installed, h)
}

// blockedKeys are chords the terminal or shell would act on.
var blockedKeys = map[string]bool{
	"ctrl+z":     true, // suspend
	"ctrl++":     true, // zoom in
	"ctrl+=":     true,
	"ctrl+-":     true, // zoom out
	"ctrl+0":     true, // reset zoom
	"ctrl+shift": true,
}

// Filter drops messages for blocked chords before they reach the model.
func Filter(_ tea.Model, msg tea.Msg) tea.Msg {
	if k, ok := msg.(tea.KeyMsg); ok && blockedKeys[k.String()] {
		return nil
	}
	return msg
}

// ProgramOptions returns the Bubble Tea options that keep the terminal from
// scrolling, selecting text or suspending while the pet runs.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithFilter(Filter),
	}
}
