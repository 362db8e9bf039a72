// Package xox is tic-tac-toe against the pet, with three difficulty levels.
package xox

import (
	"math/rand"
	"time"

	"github.com/Mygameindie/Zombiepet/internal/assets"
	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/modes/stage"
	"github.com/Mygameindie/Zombiepet/internal/registry"
)

// ID is the mode identifier.
const ID = "xox"

// RestartText is shown under the result banner.
const RestartText = "Tap to restart"

// Board geometry in cells.
const (
	cellW = 7
	cellH = 3
	gridW = cellW*3 + 2
	gridH = cellH*3 + 2
)

// keys maps a 3x3 block of letter keys onto the squares.
var keys = map[string]int{
	"q": 0, "w": 1, "e": 2,
	"a": 3, "s": 4, "d": 5,
	"z": 6, "x": 7, "c": 8,
}

// ButtonID returns the toolbar ID of a difficulty button.
func ButtonID(d Difficulty) string {
	return "xox-" + string(d)
}

// Mode is the tic-tac-toe mode.
type Mode struct {
	s   *stage.Stage
	rng *rand.Rand

	board      Board
	difficulty Difficulty
	result     Result

	base, win, lose *assets.Sprite
	cheer, fail     *assets.Sound
	buttons         map[Difficulty]*host.Control
}

// New creates the mode. A zero seed picks one from the clock.
func New(seed int64) *Mode {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Mode{rng: rand.New(rand.NewSource(seed)), difficulty: Easy}
}

// Start implements mode.Mode.
func (m *Mode) Start(ctx *mode.Context) (mode.Teardown, error) {
	s := stage.New(ctx)
	m.s = s

	m.base = s.Sprite("pet_play")
	m.win = s.Sprite("pet_win")
	m.lose = s.Sprite("pet_lose")
	m.cheer = s.Sound("giggle")
	m.fail = s.Sound("hit")

	m.buttons = make(map[Difficulty]*host.Control)
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		d := d
		btn, err := s.Button(ButtonID(d), string(d), func() { m.SetDifficulty(d) })
		if err != nil {
			//nolint:errcheck // Already failing
			s.Release()
			return nil, err
		}
		m.buttons[d] = btn
	}
	m.SetDifficulty(m.difficulty)

	s.OnSurface(host.PointerDown, m.pointerDown)
	s.OnWindow(host.KeyDown, m.keyDown)
	s.Loop(func(time.Time) { m.draw() })

	return s.Teardown(), nil
}

// Board returns the current board.
func (m *Mode) Board() Board {
	return m.board
}

// Result returns the outcome of the current game.
func (m *Mode) Result() Result {
	return m.result
}

// Difficulty returns the selected difficulty.
func (m *Mode) Difficulty() Difficulty {
	return m.difficulty
}

// SetDifficulty selects a difficulty and starts a new game.
func (m *Mode) SetDifficulty(d Difficulty) {
	m.difficulty = d
	for bd, btn := range m.buttons {
		btn.Active = bd == d
	}
	m.Reset()
}

// Reset clears the board.
func (m *Mode) Reset() {
	m.board = Board{}
	m.result = Undecided
}

// Play puts the player's mark on square i and lets the pet answer. Taken
// squares and finished games are ignored, except that any play after the
// end starts a new game.
func (m *Mode) Play(i int) {
	if m.result != Undecided {
		m.Reset()
		return
	}
	if i < 0 || i >= len(m.board) || m.board[i] != Empty {
		return
	}
	m.board[i] = X
	if m.board.Result() == Undecided {
		if j := AIMove(m.board, m.difficulty, m.rng); j >= 0 {
			m.board[j] = O
		}
	}

	m.result = m.board.Result()
	switch m.result {
	case PlayerWins:
		m.s.Play(m.cheer, 0.9)
	case PetWins:
		m.s.Play(m.fail, 0.9)
	}
}

func (m *Mode) origin() (int, int) {
	scr := m.s.Screen()
	return (scr.Width() - gridW) / 2, (scr.Height() - gridH) / 2
}

// SquareAt returns the square under cell (x, y), or -1.
func (m *Mode) SquareAt(x, y int) int {
	ox, oy := m.origin()
	dx, dy := x-ox, y-oy
	if dx < 0 || dy < 0 || dx >= gridW || dy >= gridH {
		return -1
	}
	col := min(dx/(cellW+1), 2)
	row := min(dy/(cellH+1), 2)
	return row*3 + col
}

func (m *Mode) pointerDown(ev *host.Event) {
	if m.result != Undecided {
		m.Reset()
		return
	}
	if i := m.SquareAt(ev.X, ev.Y); i >= 0 {
		m.Play(i)
	}
}

func (m *Mode) keyDown(ev *host.Event) {
	if i, ok := keys[ev.Key]; ok {
		ev.PreventDefault()
		m.Play(i)
	}
}

func (m *Mode) draw() {
	scr := m.s.Screen()
	scr.Clear()
	ox, oy := m.origin()

	for i := 1; i < 3; i++ {
		scr.DrawVLine(ox+i*(cellW+1)-1, oy, gridH, '│', core.ColorWhite)
		scr.DrawHLine(ox, oy+i*(cellH+1)-1, gridW, '─', core.ColorWhite)
	}
	for i, mark := range m.board {
		if mark == Empty {
			continue
		}
		x := ox + (i%3)*(cellW+1) + cellW/2
		y := oy + (i/3)*(cellH+1) + cellH/2
		c := core.ColorBrightRed
		if mark == O {
			c = core.ColorBrightBlue
		}
		scr.SetCell(x, y, rune(mark), c)
	}

	pet := m.base
	switch m.result {
	case PlayerWins:
		pet = m.win
	case PetWins:
		pet = m.lose
	}
	w, h := pet.Size()
	m.s.Draw(pet, core.Box{X: float64(scr.Width()-w/2-2) - 0.5, Y: float64(h/2 + 1)}, core.ColorBrightGreen)

	if m.result != Undecided {
		mid := scr.Height() / 2
		scr.DrawTextCentered(mid-1, " "+m.result.String()+" ", core.ColorBrightYellow)
		scr.DrawTextCentered(mid+1, " "+RestartText+" ", core.ColorWhite)
	}
}

func init() {
	registry.Register(mode.Descriptor{
		ID:    ID,
		Label: "XOX Mode",
		Key:   "4",
		Factory: func() mode.Mode {
			return New(0)
		},
	})
}
