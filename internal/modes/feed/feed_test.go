package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/Mygameindie/Zombiepet/internal/modes/modetest"
	"github.com/Mygameindie/Zombiepet/internal/registry"
)

func start(t *testing.T) (*modetest.Env, *Mode) {
	t.Helper()
	env := modetest.New(t)
	m := New(1)
	env.Start(m)
	return env, m
}

// feed drags f from a free spot onto the pet.
func feed(env *modetest.Env, m *Mode, f *Food) {
	f.Body.MoveTo(10, 5)
	x, y := f.Body.Box().TopLeft()
	px, py := m.PetBox().TopLeft()
	env.Drag(x, y, px+2, py+2)
}

func TestRegistered(t *testing.T) {
	d, err := registry.Default.Get(ID)
	if err != nil {
		t.Fatal(err)
	}
	if d.Label != "Feeding Mode" || d.Key != "2" {
		t.Errorf("descriptor = %+v", d)
	}
}

func TestToolbar(t *testing.T) {
	env, _ := start(t)
	for _, f := range env.Ctx.Config.Feed.Foods {
		if env.Ctx.Host.Document.Get(ButtonID(f.ID)) == nil {
			t.Errorf("no button for %s", f.ID)
		}
	}
	if env.Ctx.Host.Document.Get(clearID) == nil {
		t.Error("no clear button")
	}
}

func TestSpawnButtonDropsFood(t *testing.T) {
	env, m := start(t)
	env.Click(ButtonID("fish"))

	if len(m.Foods()) != 1 {
		t.Fatalf("foods = %d, want 1", len(m.Foods()))
	}
	env.Wait(3 * time.Second)

	f := m.Foods()[0]
	ground := float64(modetest.Height - env.Ctx.Config.Pet.GroundHeight)
	if f.Body.Bottom() != ground {
		t.Errorf("food bottom = %f, want it resting on %f", f.Body.Bottom(), ground)
	}
}

func TestReactions(t *testing.T) {
	tests := []struct {
		food string
		mood Mood
		say  string
	}{
		{"fish", MoodHappy, SayYummy},
		{"garlic", MoodDisgust, SayYuck},
		{"lettuce", MoodFreeze, SayBrrr},
		{"candy", MoodFreeze, SayBrrr},
		{"chili", MoodSpicy, SaySpicy},
		{"brain", MoodHappy, SayYummy},
	}
	for _, tt := range tests {
		t.Run(tt.food, func(t *testing.T) {
			env, m := start(t)
			f := m.Spawn(tt.food)
			env.Wait(env.Ctx.Config.Feed.SpawnGrace)
			before := env.Playing()

			feed(env, m, f)

			if m.Mood() != tt.mood {
				t.Errorf("mood = %s, want %s", m.Mood(), tt.mood)
			}
			if m.Bubble() != tt.say {
				t.Errorf("bubble = %q, want %q", m.Bubble(), tt.say)
			}
			if len(m.Foods()) != 0 {
				t.Error("eaten food should disappear")
			}
			if got := env.Playing() - before; got != 1 {
				t.Errorf("reaction played %d sounds, want 1", got)
			}
		})
	}
}

func TestDuckQuacks(t *testing.T) {
	env, m := start(t)
	f := m.Spawn("duck")
	if env.Playing() != 1 {
		t.Fatalf("spawning the duck should quack, voices = %d", env.Playing())
	}
	env.Wait(env.Ctx.Config.Feed.SpawnGrace)
	before := env.Playing()
	feed(env, m, f)

	if m.Bubble() != SayYuck {
		t.Errorf("bubble = %q, want %q", m.Bubble(), SayYuck)
	}
	if got := env.Playing() - before; got != 2 {
		t.Errorf("eating the duck played %d sounds, want yuck + quack", got)
	}
}

func TestFreshFoodCannotBeEaten(t *testing.T) {
	env, m := start(t)
	f := m.Spawn("fish")
	feed(env, m, f)

	if m.Mood() != MoodNormal || len(m.Foods()) != 1 {
		t.Error("food should not be eaten during the spawn grace period")
	}
}

func TestMoodAndBubbleExpire(t *testing.T) {
	env, m := start(t)
	f := m.Spawn("fish")
	env.Wait(env.Ctx.Config.Feed.SpawnGrace)
	feed(env, m, f)

	env.Wait(env.Ctx.Config.Feed.BubbleFor)
	if m.Bubble() != "" {
		t.Errorf("bubble still showing %q", m.Bubble())
	}
	if m.Mood() != MoodHappy {
		t.Error("mood should outlast the bubble")
	}
	env.Wait(env.Ctx.Config.Feed.MoodFor - env.Ctx.Config.Feed.BubbleFor)
	if m.Mood() != MoodNormal {
		t.Errorf("mood = %s, want normal", m.Mood())
	}
}

func TestClear(t *testing.T) {
	env, m := start(t)
	m.Spawn("fish")
	m.Spawn("brain")
	env.Click(clearID)

	if len(m.Foods()) != 0 {
		t.Errorf("foods = %d after clear", len(m.Foods()))
	}
}

func TestUnknownFood(t *testing.T) {
	_, m := start(t)
	if m.Spawn("pizza") != nil {
		t.Error("unknown food should not spawn")
	}
}

func TestMaxOnScreen(t *testing.T) {
	env, m := start(t)
	limit := env.Ctx.Config.Feed.MaxOnScreen
	for i := 0; i < limit+5; i++ {
		m.Spawn("fish")
	}
	if len(m.Foods()) != limit {
		t.Errorf("foods = %d, want %d", len(m.Foods()), limit)
	}
}

func TestDrawsPetAndFood(t *testing.T) {
	env, m := start(t)
	m.Spawn("chili")
	env.Frame()

	screen := env.Ctx.Host.Surface.Screen().String()
	if !strings.Contains(screen, "x_x") {
		t.Error("pet not drawn")
	}
}

func TestTeardownIsClean(t *testing.T) {
	env := modetest.New(t)
	m := New(1)
	td := env.Start(m)
	f := m.Spawn("fish")
	env.Wait(env.Ctx.Config.Feed.SpawnGrace)
	feed(env, m, f)

	env.AssertClean(td)
}
