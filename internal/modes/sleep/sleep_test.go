package sleep

import (
	"strings"
	"testing"
	"time"

	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/modes/modetest"
	"github.com/Mygameindie/Zombiepet/internal/registry"
)

func start(t *testing.T) (*modetest.Env, *Mode) {
	t.Helper()
	env := modetest.New(t)
	m := New()
	env.Start(m)
	env.Wait(5 * time.Second)
	return env, m
}

// intoBed drags the resting pet so it lands on the bed.
func intoBed(env *modetest.Env, m *Mode) {
	pet, _ := m.Pet()
	x, y := pet.Box().TopLeft()
	env.Drag(x, y, 5, 16)
}

// tuckIn drags the blanket onto the bed.
func tuckIn(env *modetest.Env, m *Mode) {
	bl, _ := m.Blanket()
	x, y := bl.Box().TopLeft()
	env.Drag(x, y, 7, 19)
}

func tap(env *modetest.Env, x, y int) {
	env.Pointer(host.PointerDown, x, y)
	env.Pointer(host.PointerUp, x, y)
}

func TestRegistered(t *testing.T) {
	d, err := registry.Default.Get(ID)
	if err != nil {
		t.Fatal(err)
	}
	if d.Label != "Sleep Mode" || d.Key != "6" {
		t.Errorf("descriptor = %+v", d)
	}
}

func TestPetRestsAndBedIsOnTheGround(t *testing.T) {
	env, m := start(t)
	ground := float64(modetest.Height - env.Ctx.Config.Pet.GroundHeight)
	pet, shown := m.Pet()
	if !shown {
		t.Fatal("pet should be shown")
	}
	if pet.Bottom() != ground {
		t.Errorf("pet bottom = %f, want %f", pet.Bottom(), ground)
	}
	if m.Bed().Bottom() != ground {
		t.Errorf("bed bottom = %f, want %f", m.Bed().Bottom(), ground)
	}
	if _, shown := m.Blanket(); shown {
		t.Error("blanket should start hidden")
	}
}

func TestPetIntoBed(t *testing.T) {
	env, m := start(t)
	intoBed(env, m)

	if m.State() != PreSleep {
		t.Fatalf("state = %s, want preSleep", m.State())
	}
	if _, shown := m.Pet(); shown {
		t.Error("pet should be hidden in bed")
	}
	if _, shown := m.Blanket(); !shown {
		t.Error("blanket should appear")
	}
}

func TestDropBesideBed(t *testing.T) {
	env, m := start(t)
	pet, _ := m.Pet()
	x, y := pet.Box().TopLeft()
	env.Drag(x, y, x-5, y-5)

	if m.State() != Awake {
		t.Errorf("state = %s, want normal", m.State())
	}
}

func TestBlanketMustReachBed(t *testing.T) {
	env, m := start(t)
	intoBed(env, m)
	bl, _ := m.Blanket()
	x, y := bl.Box().TopLeft()
	env.Drag(x, y, x+10, y-5)

	if m.State() != PreSleep {
		t.Errorf("state = %s, want preSleep", m.State())
	}
}

func TestTuckInAndWake(t *testing.T) {
	env, m := start(t)
	intoBed(env, m)
	before := env.Playing()
	tuckIn(env, m)

	if m.State() != Sleeping {
		t.Fatalf("state = %s, want sleeping", m.State())
	}
	if _, shown := m.Blanket(); shown {
		t.Error("blanket should be on the pet")
	}
	if !m.Snoring() || env.Playing() <= before {
		t.Error("sleeping pet should snore")
	}

	bx, by := m.Bed().TopLeft()
	tap(env, bx+3, by+2)
	if m.State() != Sleeping {
		t.Fatal("tap right after tucking in should be ignored")
	}

	env.Wait(2 * env.Ctx.Config.Sleep.WakeBlock)
	tap(env, bx+3, by+2)
	if m.State() != Awake {
		t.Fatalf("state = %s, want normal after tapping the bed", m.State())
	}
	if m.Snoring() {
		t.Error("snore timer should stop")
	}
	pet, shown := m.Pet()
	if !shown || pet.X <= m.Bed().X+m.Bed().W/2 {
		t.Errorf("pet should appear right of the bed, x = %f", pet.X)
	}
	if _, shown := m.Blanket(); !shown {
		t.Error("blanket should be back")
	}
}

func TestTapOutsideBedKeepsSleeping(t *testing.T) {
	env, m := start(t)
	intoBed(env, m)
	tuckIn(env, m)
	env.Wait(2 * env.Ctx.Config.Sleep.WakeBlock)

	tap(env, 60, 5)
	if m.State() != Sleeping {
		t.Errorf("state = %s, want sleeping", m.State())
	}
}

func TestDrawsBedStates(t *testing.T) {
	env, m := start(t)
	intoBed(env, m)
	tuckIn(env, m)
	env.Frame()

	if got := env.Ctx.Host.Surface.Screen().String(); !strings.Contains(got, "z Z") {
		t.Error("sleeping bed not drawn")
	}
}

func TestTeardownWhileSleeping(t *testing.T) {
	env := modetest.New(t)
	m := New()
	td := env.Start(m)
	env.Wait(5 * time.Second)
	intoBed(env, m)
	tuckIn(env, m)

	env.AssertClean(td)
}

func TestSleepCyclesDoNotGrowScope(t *testing.T) {
	env, m := start(t)
	held := m.s.Len()
	timers := env.Ctx.Host.Window.ActiveTimers()

	for n := 0; n < 4; n++ {
		m.state = PreSleep
		m.blanket.MoveTo(m.bed.X, m.bed.Y)
		m.dropBlanket()
		if !m.Snoring() {
			t.Fatal("tucked in pet should snore")
		}
		m.wake()
	}

	if n := m.s.Len(); n != held {
		t.Errorf("scope holds %d registrations after four nights, want %d", n, held)
	}
	if n := env.Ctx.Host.Window.ActiveTimers(); n != timers {
		t.Errorf("%d timers after four nights, want %d", n, timers)
	}
}
