package core

// GameState is the externally visible state of a score-keeping simulation.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned after each simulation tick.
type StepResult struct {
	State GameState
}
