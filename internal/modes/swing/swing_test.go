package swing

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/modes/modetest"
	"github.com/Mygameindie/Zombiepet/internal/registry"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func start(t *testing.T) (*modetest.Env, *Mode) {
	t.Helper()
	env := modetest.New(t)
	m := New()
	env.Start(m)
	return env, m
}

func TestRegistered(t *testing.T) {
	d, err := registry.Default.Get(ID)
	if err != nil {
		t.Fatal(err)
	}
	if d.Label != "Swing Mode" || d.Key != "8" {
		t.Errorf("descriptor = %+v", d)
	}
}

func TestHangsStill(t *testing.T) {
	env, m := start(t)
	env.Frames(30, time.Second/30)

	if a := m.Pendulum().Angle; a != 0 {
		t.Errorf("angle = %f, want 0", a)
	}
	seat := m.Seat()
	if seat.X != modetest.Width/2 {
		t.Errorf("seat x = %f, want centered", seat.X)
	}
}

func TestPullIsCapped(t *testing.T) {
	env, m := start(t)
	cfg := env.Ctx.Config.Swing
	for i := 0; i < 3; i++ {
		env.Click(PullID)
	}
	want := -3 * cfg.PullStep / 100 * cfg.MaxPull
	if got := m.Pendulum().Shown(); !near(got, want) {
		t.Errorf("pulled angle = %f, want %f", got, want)
	}

	for i := 0; i < 50; i++ {
		env.Key("left")
	}
	if got := m.Pendulum().Shown(); got != -cfg.MaxPull {
		t.Errorf("pulled angle = %f, want %f", got, -cfg.MaxPull)
	}
	env.Frames(10, time.Second/30)
	if m.Pendulum().Shown() != -cfg.MaxPull {
		t.Error("held swing should not move")
	}
}

func TestReleaseSwings(t *testing.T) {
	env, m := start(t)
	for i := 0; i < 5; i++ {
		env.Click(PullID)
	}
	env.Key(" ")
	p := m.Pendulum()
	if p.Pulling() {
		t.Fatal("swing still held")
	}
	start := p.Angle
	if start >= 0 {
		t.Fatalf("release angle = %f, want left of center", start)
	}

	maxAngle := start
	for i := 0; i < 60; i++ {
		env.Frame()
		maxAngle = max(maxAngle, p.Angle)
	}
	if maxAngle <= 0 {
		t.Error("swing never crossed to the right")
	}
}

func TestDampingSettles(t *testing.T) {
	env, m := start(t)
	env.Click(PullID)
	env.Click(ReleaseID)
	env.Frames(3000, time.Second/30)

	if a := m.Pendulum().Angle; a > 1 || a < -1 {
		t.Errorf("angle = %f, want close to rest", a)
	}
}

func TestGravityRange(t *testing.T) {
	env, m := start(t)
	cfg := env.Ctx.Config.Swing
	g := m.Gravity()

	env.Click(GravityUpID)
	if !near(m.Gravity(), g+gravityStep) {
		t.Errorf("gravity = %f, want %f", m.Gravity(), g+gravityStep)
	}
	env.Key("-")
	if !near(m.Gravity(), g) {
		t.Errorf("gravity = %f, want %f", m.Gravity(), g)
	}

	for i := 0; i < 200; i++ {
		env.Key("+")
	}
	if m.Gravity() != cfg.MaxGravity {
		t.Errorf("gravity = %f, want max %f", m.Gravity(), cfg.MaxGravity)
	}
	for i := 0; i < 200; i++ {
		env.Click(GravityDownID)
	}
	if m.Gravity() != cfg.MinGravity {
		t.Errorf("gravity = %f, want min %f", m.Gravity(), cfg.MinGravity)
	}
}

func TestReadouts(t *testing.T) {
	env, m := start(t)
	env.Frame()

	screen := env.Ctx.Host.Surface.Screen().String()
	for _, want := range []string{HintText, "Gravity: 9.8", "Angle: 0.0°"} {
		if !strings.Contains(screen, want) {
			t.Errorf("screen missing %q", want)
		}
	}
	if m.GravityText() != "Gravity: 9.8" {
		t.Errorf("gravity text = %q", m.GravityText())
	}
}

func TestHandledKeysPreventDefault(t *testing.T) {
	env, _ := start(t)
	for _, key := range []string{"left", "a", " ", "+", "-"} {
		ev := &host.Event{Key: key}
		env.Ctx.Host.DispatchKey(ev)
		if !ev.DefaultPrevented() {
			t.Errorf("key %q not consumed", key)
		}
	}
	ev := &host.Event{Key: "right"}
	env.Ctx.Host.DispatchKey(ev)
	if ev.DefaultPrevented() {
		t.Error("unrelated key consumed")
	}
}

func TestTeardownIsClean(t *testing.T) {
	env := modetest.New(t)
	m := New()
	td := env.Start(m)
	m.PullMore()
	m.Release()
	env.Frames(10, time.Second/30)

	env.AssertClean(td)
}
