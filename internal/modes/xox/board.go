package xox

import "math/rand"

// Mark is the content of a square.
type Mark byte

const (
	Empty Mark = 0
	X     Mark = 'X' // the player
	O     Mark = 'O' // the pet
)

// Result is the outcome of a board.
type Result int

const (
	Undecided Result = iota
	PlayerWins
	PetWins
	Draw
)

// String returns the banner shown when a game ends.
func (r Result) String() string {
	switch r {
	case PlayerWins:
		return "You Win!"
	case PetWins:
		return "You Lose!"
	case Draw:
		return "Draw!"
	default:
		return ""
	}
}

// Difficulty selects how the pet plays.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// mediumSmart is the share of medium moves that use the full search.
const mediumSmart = 0.6

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Board is a 3x3 grid indexed row by row.
type Board [9]Mark

// Result reports whether someone has won or the board is full.
func (b Board) Result() Result {
	for _, l := range lines {
		m := b[l[0]]
		if m != Empty && m == b[l[1]] && m == b[l[2]] {
			if m == X {
				return PlayerWins
			}
			return PetWins
		}
	}
	for _, m := range b {
		if m == Empty {
			return Undecided
		}
	}
	return Draw
}

// Free returns the indexes of the empty squares.
func (b Board) Free() []int {
	var out []int
	for i, m := range b {
		if m == Empty {
			out = append(out, i)
		}
	}
	return out
}

// AIMove picks the pet's square for the given difficulty, or -1 if the
// board is full.
func AIMove(b Board, d Difficulty, rng *rand.Rand) int {
	switch d {
	case Easy:
		return randomMove(b, rng)
	case Medium:
		if rng.Float64() < mediumSmart {
			return BestMove(b)
		}
		return randomMove(b, rng)
	default:
		return BestMove(b)
	}
}

func randomMove(b Board, rng *rand.Rand) int {
	free := b.Free()
	if len(free) == 0 {
		return -1
	}
	return free[rng.Intn(len(free))]
}

// BestMove returns the pet's minimax move, preferring faster wins and
// slower losses. It returns -1 if the board is full.
func BestMove(b Board) int {
	best, move := -1<<31, -1
	for _, i := range b.Free() {
		b[i] = O
		score := minimax(&b, 0, false)
		b[i] = Empty
		if score > best {
			best, move = score, i
		}
	}
	return move
}

func minimax(b *Board, depth int, petTurn bool) int {
	switch b.Result() {
	case PetWins:
		return 10 - depth
	case PlayerWins:
		return depth - 10
	case Draw:
		return 0
	}

	if petTurn {
		best := -1 << 31
		for _, i := range b.Free() {
			b[i] = O
			best = max(best, minimax(b, depth+1, false))
			b[i] = Empty
		}
		return best
	}
	best := 1 << 31
	for _, i := range b.Free() {
		b[i] = X
		best = min(best, minimax(b, depth+1, true))
		b[i] = Empty
	}
	return best
}
