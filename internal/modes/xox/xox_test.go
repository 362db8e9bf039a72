package xox

import (
	"strings"
	"testing"

	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/modes/modetest"
	"github.com/Mygameindie/Zombiepet/internal/registry"
)

func start(t *testing.T) (*modetest.Env, *Mode) {
	t.Helper()
	env := modetest.New(t)
	m := New(5)
	env.Start(m)
	return env, m
}

// squareCell returns a cell inside square i.
func squareCell(m *Mode, i int) (int, int) {
	ox, oy := m.origin()
	return ox + (i%3)*(cellW+1) + 1, oy + (i/3)*(cellH+1) + 1
}

func TestRegistered(t *testing.T) {
	d, err := registry.Default.Get(ID)
	if err != nil {
		t.Fatal(err)
	}
	if d.Label != "XOX Mode" || d.Key != "4" {
		t.Errorf("descriptor = %+v", d)
	}
}

func TestSquareAt(t *testing.T) {
	_, m := start(t)
	for i := 0; i < 9; i++ {
		x, y := squareCell(m, i)
		if got := m.SquareAt(x, y); got != i {
			t.Errorf("SquareAt(square %d) = %d", i, got)
		}
	}
	if m.SquareAt(0, 0) != -1 {
		t.Error("a corner of the screen is not on the board")
	}
}

func TestTapPlaysAndPetAnswers(t *testing.T) {
	env, m := start(t)
	x, y := squareCell(m, 4)
	env.Pointer(host.PointerDown, x, y)

	b := m.Board()
	if b[4] != X {
		t.Fatal("player mark not placed")
	}
	if len(b.Free()) != 7 {
		t.Errorf("free squares = %d, want 7 after the pet answered", len(b.Free()))
	}

	env.Pointer(host.PointerDown, x, y)
	if len(m.Board().Free()) != 7 {
		t.Error("tapping a taken square should do nothing")
	}
}

func TestDifficultyButtons(t *testing.T) {
	env, m := start(t)
	m.Play(0)

	env.Click(ButtonID(Hard))
	if m.Difficulty() != Hard {
		t.Errorf("difficulty = %s, want Hard", m.Difficulty())
	}
	if len(m.Board().Free()) != 9 {
		t.Error("changing difficulty should reset the board")
	}
	if !env.Ctx.Host.Document.Get(ButtonID(Hard)).Active || env.Ctx.Host.Document.Get(ButtonID(Easy)).Active {
		t.Error("only the selected difficulty should be highlighted")
	}
}

func TestWinPlaysSoundAndRestarts(t *testing.T) {
	env, m := start(t)
	m.board = board("XX.OO....")
	m.Play(2)

	if m.Result() != PlayerWins {
		t.Fatalf("result = %v, want player win", m.Result())
	}
	if env.Playing() != 1 {
		t.Error("a win should play a sound")
	}
	if m.cheer.Name() != "giggle" {
		t.Errorf("win sound = %q, want giggle", m.cheer.Name())
	}

	env.Frame()
	screen := env.Ctx.Host.Surface.Screen().String()
	if !strings.Contains(screen, "You Win!") || !strings.Contains(screen, RestartText) {
		t.Error("result banner not drawn")
	}

	env.Pointer(host.PointerDown, 0, 0)
	if m.Result() != Undecided || len(m.Board().Free()) != 9 {
		t.Error("a tap after the game should restart it")
	}
}

func TestLossPlaysFail(t *testing.T) {
	env, m := start(t)
	env.Click(ButtonID(Hard))
	m.board = board("XX.OO...X")
	m.board[2] = O // block already placed
	m.board[6] = Empty
	m.Play(6)

	if m.Result() != PetWins {
		t.Fatalf("result = %v, want pet win", m.Result())
	}
	if env.Playing() != 1 {
		t.Error("a loss should play the fail sound")
	}
}

func TestKeysPlaySquares(t *testing.T) {
	env, m := start(t)
	env.Key("s")
	if m.Board()[4] != X {
		t.Error("key s should play the center square")
	}
}

func TestTeardownIsClean(t *testing.T) {
	env := modetest.New(t)
	m := New(5)
	td := env.Start(m)
	env.Key("q")
	env.Frame()
	env.AssertClean(td)
}
