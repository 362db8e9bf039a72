package game

import (
	"testing"

	"github.com/Mygameindie/Zombiepet/internal/config"
	"github.com/Mygameindie/Zombiepet/internal/core"
)

const (
	testW      = 80
	testFieldH = 22
)

func newRound(seed int64) *Round {
	return NewRound(config.Default().Poles, seed, testW, testFieldH)
}

func flapEvery(n, frames int) []core.InputFrame {
	seq := make([]core.InputFrame, frames)
	for i := range seq {
		seq[i] = core.NewInputFrame()
		if i%n == 0 {
			seq[i].Set(core.ActionFlap)
		}
	}
	return seq
}

func TestRoundDeterminism(t *testing.T) {
	inputs := flapEvery(8, 400)

	run := func() (core.GameState, int) {
		r := newRound(12345)
		var st core.GameState
		for _, in := range inputs {
			st = r.Step(in).State
			if st.GameOver {
				break
			}
		}
		return st, r.tickCount
	}

	s1, t1 := run()
	s2, t2 := run()
	if s1 != s2 || t1 != t2 {
		t.Errorf("runs differ: %+v/%d vs %+v/%d", s1, t1, s2, t2)
	}
}

func TestRoundReset(t *testing.T) {
	r := newRound(42)
	for _, in := range flapEvery(5, 50) {
		r.Step(in)
	}
	r.Reset(42, testW, testFieldH)

	if r.score != 0 || r.gameOver || r.paused || r.tickCount != 0 {
		t.Errorf("Reset left state behind: %+v ticks=%d", r.State(), r.tickCount)
	}
	if len(r.poles.Poles()) != 0 {
		t.Error("Reset should clear poles")
	}
}

func TestRoundFlap(t *testing.T) {
	r := newRound(1)
	y := r.playerY

	in := core.NewInputFrame()
	in.Set(core.ActionFlap)
	r.Step(in)

	if r.playerY >= y {
		t.Errorf("flap should move the pet up, was %f, now %f", y, r.playerY)
	}
	if r.playerVel >= 0 {
		t.Errorf("flap velocity should be negative, got %f", r.playerVel)
	}
}

func TestRoundGravity(t *testing.T) {
	r := newRound(1)
	r.playerY, r.playerVel = 10, 0
	r.Step(core.NewInputFrame())

	if r.playerY <= 10 || r.playerVel <= 0 {
		t.Errorf("gravity should pull the pet down: y=%f vel=%f", r.playerY, r.playerVel)
	}
}

func TestRoundMaxFallSpeed(t *testing.T) {
	r := newRound(1)
	r.playerY, r.playerVel = 0, 50
	r.Step(core.NewInputFrame())

	if max := config.Default().Poles.Physics.MaxFallSpeed; r.playerVel > max {
		t.Errorf("velocity %f exceeds the max fall speed %f", r.playerVel, max)
	}
}

func TestRoundPause(t *testing.T) {
	r := newRound(1)
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	r.Step(pause)
	if !r.State().Paused {
		t.Fatal("round should be paused")
	}
	y := r.playerY
	r.Step(core.NewInputFrame())
	if r.playerY != y {
		t.Error("pet moved while paused")
	}
	r.Step(pause)
	if r.State().Paused {
		t.Error("round should resume")
	}
}

func TestRoundFloorEndsRound(t *testing.T) {
	r := newRound(1)
	r.playerY = testFieldH - 1
	r.playerVel = 3

	if !r.Step(core.NewInputFrame()).State.GameOver {
		t.Error("touching the ground should end the round")
	}
}

func TestRoundCeilingHolds(t *testing.T) {
	r := newRound(1)
	r.playerY = 0.5
	r.playerVel = -3

	st := r.Step(core.NewInputFrame()).State
	if st.GameOver {
		t.Error("the ceiling should not end the round")
	}
	if r.playerY != 0 {
		t.Errorf("pet should stop at the ceiling, y = %f", r.playerY)
	}
}

func TestRoundPoleCollision(t *testing.T) {
	r := newRound(1)
	p := config.Default().Poles.Player
	r.poles.poles = append(r.poles.poles, Pole{X: float64(p.X), GapY: 0, GapHeight: 3})
	r.playerY = 12

	if !r.Step(core.NewInputFrame()).State.GameOver {
		t.Error("hitting a pole should end the round")
	}
}

func TestRoundRender(t *testing.T) {
	r := newRound(1)
	for i := 0; i < 5; i++ {
		r.Step(core.NewInputFrame())
	}
	screen := core.NewScreen(testW, testFieldH+2)
	r.Render(screen, 7)

	if got := screen.Row(0); got[2:12] != " Score: 0 " {
		t.Errorf("HUD row = %q", got)
	}
}

func TestPoleManagerSpawnsAndScores(t *testing.T) {
	cfg := config.Default().Poles
	cfg.Difficulty.Enabled = false
	pm := NewPoleManager(7, testW, testFieldH, &cfg, config.NewDifficultyManager(cfg.Difficulty))

	pm.Update(15, 0, 0)
	poles := pm.Poles()
	if len(poles) != 1 {
		t.Fatalf("poles = %d, want 1", len(poles))
	}
	gap := poles[0]
	if gap.GapHeight < cfg.Obstacles.MinGapSize || gap.GapHeight > cfg.Obstacles.MaxGapSize {
		t.Errorf("gap height %d outside [%d, %d]", gap.GapHeight, cfg.Obstacles.MinGapSize, cfg.Obstacles.MaxGapSize)
	}
	if gap.GapY < cfg.Obstacles.TopMargin || gap.GapY+gap.GapHeight > testFieldH-cfg.Obstacles.BottomMargin {
		t.Errorf("gap [%d, %d) outside the margins", gap.GapY, gap.GapY+gap.GapHeight)
	}

	passed := 0
	for i := 0; i < 200; i++ {
		passed += pm.Update(15, 0, i)
	}
	if passed == 0 {
		t.Error("poles should pass the player")
	}
	for _, p := range pm.Poles() {
		if p.Left()+cfg.Obstacles.PoleWidth <= 0 {
			t.Error("off-screen pole not removed")
		}
	}
}
