package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/registry"
	"github.com/Mygameindie/Zombiepet/internal/storage"
)

func openScores(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRegistry() *registry.Registry {
	reg := registry.New()
	reg.Register(mode.Descriptor{ID: "game", Label: "Game Mode", Key: "3", Factory: func() mode.Mode { return nil }})
	return reg
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(openScores(t), testRegistry(), 80, 24)

	if m.Mode() != "" {
		t.Errorf("Mode() = %q, want none", m.Mode())
	}
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("empty scoreboard should say so")
	}
}

func TestScoreboardCyclesModes(t *testing.T) {
	store := openScores(t)
	for _, s := range []struct {
		mode  string
		score int
	}{{"game", 7}, {"game", 12}, {"arcade", 3}} {
		if err := store.SaveScore(s.mode, s.score); err != nil {
			t.Fatalf("SaveScore() error: %v", err)
		}
	}

	m := NewScoreboardModel(store, testRegistry(), 80, 24)
	if m.Mode() != "arcade" {
		t.Fatalf("Mode() = %q, want arcade first", m.Mode())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.Mode() != "game" {
		t.Fatalf("Mode() = %q after tab, want game", m.Mode())
	}
	if len(m.scores) != 2 || m.scores[0].Score != 12 {
		t.Errorf("scores = %+v, want best first", m.scores)
	}
	view := m.View()
	if !strings.Contains(view, "Game Mode") {
		t.Error("registered modes should show their label")
	}
	if !strings.Contains(view, "2 rounds, best 12") {
		t.Error("summary line missing")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.Mode() != "arcade" {
		t.Errorf("Mode() = %q after shift+tab, want arcade", m.Mode())
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(openScores(t), testRegistry(), 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if next.(ScoreboardModel).View() != "" {
		t.Error("View() should be empty after quitting")
	}
}
