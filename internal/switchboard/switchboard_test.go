package switchboard

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mygameindie/Zombiepet/internal/config"
	"github.com/Mygameindie/Zombiepet/internal/host"
	"github.com/Mygameindie/Zombiepet/internal/lifecycle"
	"github.com/Mygameindie/Zombiepet/internal/mode"
	"github.com/Mygameindie/Zombiepet/internal/registry"
	"github.com/Mygameindie/Zombiepet/internal/sound"
)

// journal records the order of starts and teardowns across modes.
type journal struct {
	events []string
}

func (p *journal) record(s string) { p.events = append(p.events, s) }

// listenerMode registers a resize listener, a frame loop and a control,
// like a typical mode.
func listenerMode(p *journal, id string) func() mode.Mode {
	return func() mode.Mode {
		return mode.Func(func(ctx *mode.Context) (mode.Teardown, error) {
			p.record("start:" + id)
			scope := lifecycle.NewScope(ctx.Host)
			scope.OnWindow(host.Resize, func(*host.Event) {})
			scope.OnSurface(host.PointerDown, func(*host.Event) {})
			scope.Loop(func(time.Time) {})
			if err := scope.Control(&host.Control{ID: id + "-ui", Kind: host.Label}); err != nil {
				return nil, err
			}
			return func() error {
				p.record("teardown:" + id)
				return scope.Release()
			}, nil
		})
	}
}

// noisyMode starts three cloned sounds.
func noisyMode(clip *recordingClip) func() mode.Mode {
	return func() mode.Mode {
		return mode.Func(func(ctx *mode.Context) (mode.Teardown, error) {
			for n := 0; n < 3; n++ {
				ctx.Sound.PlayClone(clip, 0.9)
			}
			return func() error { return nil }, nil
		})
	}
}

type recordingClip struct {
	voices []*sound.SilentVoice
}

func (c *recordingClip) NewVoice() (sound.Voice, error) {
	v := &sound.SilentVoice{}
	c.voices = append(c.voices, v)
	return v, nil
}

type fixture struct {
	sb     *Switchboard
	ctx    *mode.Context
	bus    *lifecycle.Bus
	reg    *registry.Registry
	trail  *journal
	clip   *recordingClip
	events []lifecycle.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := log.New(io.Discard)
	f := &fixture{
		reg:   registry.New(),
		trail: &journal{},
		clip:  &recordingClip{},
	}
	f.ctx = &mode.Context{
		Host:   host.NewWithTempDir(40, 12, t.TempDir()),
		Sound:  sound.NewRegistry(1, false),
		Device: sound.Silent{},
		Pose:   &mode.PoseSlot{},
		Config: config.Default(),
		Logger: logger,
	}
	f.bus = lifecycle.NewBus(logger)
	f.bus.Subscribe(func(ev lifecycle.Event) { f.events = append(f.events, ev) })

	f.reg.Register(mode.Descriptor{ID: "normal", Label: "Normal Mode", Key: "1", Factory: listenerMode(f.trail, "normal")})
	f.reg.Register(mode.Descriptor{ID: "feed", Label: "Feeding Mode", Key: "2", Factory: listenerMode(f.trail, "feed")})
	f.reg.Register(mode.Descriptor{ID: "noisy", Label: "Noisy Mode", Key: "3", Factory: noisyMode(f.clip)})
	f.reg.Register(mode.Descriptor{ID: "broken", Label: "Broken Mode", Key: "4", Factory: func() mode.Mode {
		return mode.Func(func(*mode.Context) (mode.Teardown, error) { panic("init exploded") })
	}})
	f.reg.Register(mode.Descriptor{ID: "failing", Label: "Failing Mode", Key: "5", Factory: func() mode.Mode {
		return mode.Func(func(*mode.Context) (mode.Teardown, error) { return nil, errors.New("missing asset") })
	}})
	f.reg.Register(mode.Descriptor{ID: "leaky", Label: "Leaky Mode", Key: "8", Factory: func() mode.Mode {
		return mode.Func(func(ctx *mode.Context) (mode.Teardown, error) {
			ctx.Scope.OnWindow(host.Resize, func(*host.Event) {})
			ctx.Scope.Loop(func(time.Time) {})
			ctx.Scope.Every(time.Second, func() {})
			panic("half started")
		})
	}})
	f.reg.Register(mode.Descriptor{ID: "grumpy", Label: "Grumpy Mode", Key: "6", Factory: func() mode.Mode {
		return mode.Func(func(ctx *mode.Context) (mode.Teardown, error) {
			ctx.Host.Window.AddListener(host.Resize, func(*host.Event) {})
			return func() error { panic("teardown exploded") }, nil
		})
	}})

	f.sb = New(f.ctx, f.bus, f.reg)
	require.NoError(t, f.sb.InstallTriggers())
	return f
}

func (f *fixture) load(t *testing.T, id string) error {
	t.Helper()
	d, err := f.reg.Get(id)
	require.NoError(t, err)
	return f.sb.LoadMode(d)
}

func (f *fixture) resizeListeners() int {
	return f.ctx.Host.Window.ListenerCount(host.Resize)
}

func TestBootLoadsDefaultMode(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sb.Boot("normal"))

	assert.Equal(t, Active, f.sb.State())
	assert.Equal(t, "normal", f.sb.ActiveName())
	assert.Equal(t, "Normal Mode Loaded", f.ctx.Host.Status.Text())
	assert.True(t, f.ctx.Host.Document.Get(TriggerID("normal")).Active)
}

func TestAtMostOneActiveMode(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{"normal", "feed", "normal", "feed", "noisy", "feed"} {
		require.NoError(t, f.load(t, id))

		assert.True(t, f.sb.Handle().Active(), "after loading %s", id)
		assert.Equal(t, id, f.sb.ActiveName())
		want := 0
		if id != "noisy" {
			want = 1
		}
		assert.Equal(t, want, f.resizeListeners(), "resize listeners after loading %s", id)
		assert.Equal(t, want, f.ctx.Host.Surface.Len(), "surface listeners after loading %s", id)
		assert.Equal(t, want, f.ctx.Host.Window.PendingFrames(), "frame requests after loading %s", id)
	}
}

func TestTeardownBeforeLoad(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.load(t, "normal"))
	require.NoError(t, f.load(t, "feed"))

	assert.Equal(t, []string{"start:normal", "teardown:normal", "start:feed"}, f.trail.events)
}

func TestIdempotentRepeatedLoad(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.load(t, "feed"))
	once := snapshot(f.ctx.Host)

	require.NoError(t, f.load(t, "feed"))
	require.NoError(t, f.load(t, "feed"))

	assert.Equal(t, once, snapshot(f.ctx.Host))
}

type counts struct {
	surface, window, frames, timers, controls int
}

func snapshot(h *host.Host) counts {
	return counts{
		surface:  h.Surface.Len(),
		window:   h.Window.Len(),
		frames:   h.Window.PendingFrames(),
		timers:   h.Window.ActiveTimers(),
		controls: h.Document.Len(),
	}
}

func TestSoundSilencedOnTransition(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.load(t, "noisy"))
	require.Equal(t, 3, f.ctx.Sound.Len())

	require.NoError(t, f.load(t, "feed"))

	assert.Zero(t, f.ctx.Sound.Len())
	require.Len(t, f.clip.voices, 3)
	for i, v := range f.clip.voices {
		assert.False(t, v.Playing(), "voice %d still playing", i)
		assert.Zero(t, v.Position(), "voice %d not rewound", i)
	}
}

func TestTeardownPanicIsContained(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.load(t, "grumpy"))

	require.NoError(t, f.load(t, "normal"))

	assert.Equal(t, Active, f.sb.State())
	assert.Equal(t, "normal", f.sb.ActiveName())
	assert.Equal(t, "Normal Mode Loaded", f.ctx.Host.Status.Text())
}

func TestHappyPathScenario(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sb.Boot("normal"))
	assert.Equal(t, "Normal Mode Loaded", f.ctx.Host.Status.Text())
	assert.NotNil(t, f.ctx.Host.Document.Get("normal-ui"))

	require.NoError(t, f.load(t, "feed"))
	assert.Nil(t, f.ctx.Host.Document.Get("normal-ui"), "previous mode's control left behind")
	assert.Equal(t, 1, f.resizeListeners())
	assert.Equal(t, "Feeding Mode Loaded", f.ctx.Host.Status.Text())
	assert.Zero(t, f.ctx.Sound.Len())
	single := snapshot(f.ctx.Host)

	require.NoError(t, f.load(t, "feed"))
	assert.Equal(t, single, snapshot(f.ctx.Host))
}

func TestFailingModeScenario(t *testing.T) {
	for _, id := range []string{"broken", "failing", "leaky"} {
		t.Run(id, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.sb.Boot("normal"))

			err := f.load(t, id)

			require.Error(t, err)
			assert.Equal(t, Idle, f.sb.State())
			assert.False(t, f.sb.Handle().Active())
			assert.True(t, f.ctx.Host.Status.IsError())
			assert.Contains(t, f.ctx.Host.Status.Text(), "Error loading")
			assert.Zero(t, f.resizeListeners(), "previous mode was not torn down")
			assert.Zero(t, f.ctx.Host.Window.PendingFrames(), "frame loop outlived the failed start")
			assert.Zero(t, f.ctx.Host.Window.ActiveTimers(), "timer outlived the failed start")
			assert.Nil(t, f.ctx.Scope)

			require.NoError(t, f.load(t, "feed"))
			assert.Equal(t, Active, f.sb.State())
			assert.Equal(t, "Feeding Mode Loaded", f.ctx.Host.Status.Text())
			assert.Equal(t, 1, f.resizeListeners())
			assert.Equal(t, 1, f.ctx.Host.Window.PendingFrames())
		})
	}
}

func TestLifecycleEvents(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sb.Boot("normal"))
	require.NoError(t, f.load(t, "feed"))
	require.Error(t, f.load(t, "failing"))

	assert.Equal(t, []lifecycle.Event{
		lifecycle.Unloading{Name: ""},
		lifecycle.Activated{Name: "normal"},
		lifecycle.Unloading{Name: "normal"},
		lifecycle.Activated{Name: "feed"},
		lifecycle.Unloading{Name: "feed"},
	}, f.events)
}

func TestShutdown(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.load(t, "noisy"))
	require.NoError(t, f.load(t, "normal"))

	f.sb.Shutdown()

	assert.Equal(t, Idle, f.sb.State())
	assert.Zero(t, f.resizeListeners())
	assert.Zero(t, f.ctx.Sound.Len())
	assert.False(t, f.ctx.Host.Document.Get(TriggerID("normal")).Active)
}

func TestReentrantLoadIsRejected(t *testing.T) {
	f := newFixture(t)
	var inner error
	f.reg.Register(mode.Descriptor{ID: "eager", Label: "Eager", Key: "7", Factory: func() mode.Mode {
		return mode.Func(func(*mode.Context) (mode.Teardown, error) {
			inner = f.load(t, "feed")
			return nil, nil
		})
	}})

	require.NoError(t, f.load(t, "eager"))

	assert.ErrorIs(t, inner, ErrSwitching)
	assert.Equal(t, "eager", f.sb.ActiveName())
}

func TestRequestModeIsDeferred(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sb.Boot("normal"))

	f.ctx.RequestMode("feed")
	assert.Equal(t, "normal", f.sb.ActiveName())

	f.ctx.Host.Frame(f.ctx.Host.Window.Now().Add(time.Millisecond))
	assert.Equal(t, "feed", f.sb.ActiveName())
}

func TestTriggers(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sb.Boot("normal"))

	f.ctx.Host.DispatchKey(&host.Event{Key: "2"})
	assert.Equal(t, "feed", f.sb.ActiveName())
	assert.True(t, f.ctx.Host.Document.Get(TriggerID("feed")).Active)
	assert.False(t, f.ctx.Host.Document.Get(TriggerID("normal")).Active)

	require.True(t, f.ctx.Host.Document.Click(TriggerID("normal")))
	assert.Equal(t, "normal", f.sb.ActiveName())

	require.NoError(t, f.sb.InstallTriggers())
	assert.Equal(t, 1, f.ctx.Host.Window.ListenerCount(host.KeyDown))
}

func TestUnknownModeID(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sb.Boot("normal"))

	require.Error(t, f.sb.LoadByID("bathtime"))

	assert.Equal(t, "normal", f.sb.ActiveName())
	assert.True(t, f.ctx.Host.Status.IsError())
}

func TestModeScopeReleasedWithoutTeardown(t *testing.T) {
	f := newFixture(t)
	f.reg.Register(mode.Descriptor{ID: "forgetful", Label: "Forgetful Mode", Key: "9", Factory: func() mode.Mode {
		return mode.Func(func(ctx *mode.Context) (mode.Teardown, error) {
			ctx.Scope.OnWindow(host.Resize, func(*host.Event) {})
			ctx.Scope.Loop(func(time.Time) {})
			return nil, nil
		})
	}})
	require.NoError(t, f.load(t, "forgetful"))
	require.NotNil(t, f.ctx.Scope)
	assert.Equal(t, 1, f.resizeListeners())

	f.sb.Shutdown()

	assert.Zero(t, f.resizeListeners())
	assert.Zero(t, f.ctx.Host.Window.PendingFrames())
	assert.Nil(t, f.ctx.Scope)
}
