package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mygameindie/Zombiepet/internal/app"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/inputlock"
)

// Rows taken by the toolbar above the surface and the status line below it.
const chromeRows = 2

// SurfaceSize returns the surface size for a terminal of the given size.
func SurfaceSize(width, height int) (int, int) {
	return width, max(height-chromeRows, 1)
}

// Model is the Bubble Tea model for a running pet.
type Model struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	input  textinput.Model
	fps    int
	width  int
	height int

	focused  string // ID of the Input control being edited
	pressed  bool
	quitting bool

	toolbarHits []hit
	overlayHits []hit
}

// NewModel creates a model for a started app. The terminal is assumed to be
// the app's surface size plus the toolbar and status rows.
func NewModel(a *app.App, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256

	return Model{
		app:    a,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  ti,
		fps:    fps,
		width:  a.Host.Surface.Width(),
		height: a.Host.Surface.Height() + chromeRows,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey routes a key to the focused input, the terminal bindings or the
// host, in that order.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.app.Close()
		return m, tea.Quit
	}

	if m.focused != "" {
		switch {
		case key.Matches(msg, m.keys.Submit):
			id, value := m.focused, m.input.Value()
			m.blur()
			m.app.Host.Document.Submit(id, value)
			return m, nil
		case key.Matches(msg, m.keys.Blur):
			m.blur()
			return m, nil
		case key.Matches(msg, m.keys.Focus):
			m.focusNext()
			return m, textinput.Blink
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Focus):
		if m.focusNext() {
			return m, textinput.Blink
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	m.app.Host.DispatchKey(&host.Event{Key: hostKey(msg)})
	return m, nil
}

// handleMouse maps terminal mouse events onto the toolbar, the anchored
// controls and the surface.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	h := m.app.Host
	sy := msg.Y - 1

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		h.DispatchPointer(&host.Event{Type: host.Wheel, X: msg.X, Y: sy, Delta: delta})

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y == 0 {
			return m.clickToolbar(msg.X)
		}
		if id, ok := hitAt(m.overlayHits, msg.X, sy); ok {
			h.Document.Click(id)
			return m, nil
		}
		m.pressed = true
		h.DispatchPointer(&host.Event{Type: host.PointerDown, X: msg.X, Y: sy})

	case msg.Action == tea.MouseActionMotion:
		h.DispatchPointer(&host.Event{Type: host.PointerMove, X: msg.X, Y: sy})

	case msg.Action == tea.MouseActionRelease:
		if m.pressed {
			m.pressed = false
			h.DispatchPointer(&host.Event{Type: host.PointerUp, X: msg.X, Y: sy})
		}
	}
	return m, nil
}

func (m Model) clickToolbar(x int) (tea.Model, tea.Cmd) {
	id, ok := hitAt(m.toolbarHits, x, 0)
	if !ok {
		return m, nil
	}
	c := m.app.Host.Document.Get(id)
	if c == nil {
		return m, nil
	}
	if c.Kind == host.Input {
		m.focus(c)
		return m, textinput.Blink
	}
	m.blur()
	m.app.Host.Document.Click(id)
	return m, nil
}

// handleResize resizes the host surface to the terminal minus the chrome rows.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	w, h := SurfaceSize(msg.Width, msg.Height)
	m.app.Host.DispatchResize(w, h)
	return m, nil
}

// handleTick runs one host frame and schedules the next.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.app.Frame(now)

	// Controls can disappear on a mode switch while being edited.
	if m.focused != "" {
		if c := m.app.Host.Document.Get(m.focused); c == nil || c.Hidden {
			m.blur()
		}
	}

	doc := m.app.Host.Document
	_, m.toolbarHits = renderToolbar(doc, m.width, m.focused, m.input.View())
	_, m.overlayHits = overlay(doc, m.app.Host.Surface.Screen())
	return m, tickCmd(m.fps)
}

func (m *Model) focus(c *host.Control) {
	m.focused = c.ID
	m.input.Placeholder = c.Text
	m.input.Reset()
	m.input.Focus()
}

func (m *Model) blur() {
	m.focused = ""
	m.input.Blur()
	m.input.Reset()
}

// focusNext focuses the visible Input after the current one, wrapping
// around. It reports whether an input is focused afterwards.
func (m *Model) focusNext() bool {
	var inputs []*host.Control
	for _, c := range m.app.Host.Document.Controls() {
		if c.Kind == host.Input && !c.Hidden {
			inputs = append(inputs, c)
		}
	}
	if len(inputs) == 0 {
		return false
	}
	next := 0
	for i, c := range inputs {
		if c.ID == m.focused {
			next = (i + 1) % len(inputs)
			break
		}
	}
	m.focus(inputs[next])
	return true
}

// Focused returns the ID of the Input control being edited, if any.
func (m Model) Focused() string {
	return m.focused
}

// saveScreenshot saves the current surface to a file.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".zombiepet", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := m.app.Switchboard.ActiveName()
	if name == "" {
		name = "idle"
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, timestamp))

	screen, _ := overlay(m.app.Host.Document, m.app.Host.Surface.Screen())
	if err := os.WriteFile(path, []byte(screen.String()), 0o600); err != nil {
		m.app.Host.Status.SetError("screenshot failed: " + err.Error())
		return
	}
	m.app.Host.Status.Set("Saved " + path)
}

// View renders the toolbar, the surface with its anchored controls and the
// status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	h := m.app.Host
	toolbar, _ := renderToolbar(h.Document, m.width, m.focused, m.input.View())
	screen, _ := overlay(h.Document, h.Surface.Screen())

	var b strings.Builder
	b.WriteString(toolbar)
	b.WriteByte('\n')
	b.WriteString(RenderScreen(screen))
	b.WriteByte('\n')
	b.WriteString(renderStatus(h.Status, m.help.View(m.keys), m.width))
	return b.String()
}

// Run starts the app and blocks until the user quits.
func Run(a *app.App, fps int) error {
	if err := a.Start(); err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(NewModel(a, fps), inputlock.ProgramOptions()...)
	_, err := p.Run()
	return err
}
