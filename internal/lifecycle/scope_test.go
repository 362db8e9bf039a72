package lifecycle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mygameindie/Zombiepet/internal/host"
)

func step(h *host.Host, d time.Duration) {
	h.Frame(h.Window.Now().Add(d))
}

func TestReleaseRemovesEverything(t *testing.T) {
	h := host.NewWithTempDir(20, 10, t.TempDir())
	s := NewScope(h)

	s.OnSurface(host.PointerDown, func(*host.Event) {})
	s.OnWindow(host.KeyDown, func(*host.Event) {})
	s.Loop(func(time.Time) {})
	s.After(time.Second, func() {})
	s.Every(time.Second, func() {})
	require.NoError(t, s.Control(&host.Control{ID: "btn", Kind: host.Button}))

	assert.Equal(t, 1, h.Surface.Len())
	assert.Equal(t, 1, h.Window.Len())
	assert.Equal(t, 1, h.Window.PendingFrames())
	assert.Equal(t, 2, h.Window.ActiveTimers())
	assert.Equal(t, 1, h.Document.Len())

	require.NoError(t, s.Release())

	assert.False(t, s.Alive())
	assert.Zero(t, h.Surface.Len())
	assert.Zero(t, h.Window.Len())
	assert.Zero(t, h.Window.PendingFrames())
	assert.Zero(t, h.Window.ActiveTimers())
	assert.Zero(t, h.Document.Len())
}

func TestReleaseIsLIFOAndIdempotent(t *testing.T) {
	s := NewScope(host.New(4, 4))
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		s.Defer(func() { order = append(order, i) })
	}

	require.NoError(t, s.Release())
	require.NoError(t, s.Release())

	assert.Equal(t, []int{2, 1, 0}, order)
}

func TestReleaseContinuesPastFailures(t *testing.T) {
	s := NewScope(host.New(4, 4))
	ran := false
	s.Defer(func() { ran = true })
	s.Defer(func() { panic("boom") })
	s.DeferErr(func() error { return errors.New("close failed") })

	err := s.Release()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "close failed")
	assert.True(t, ran)
}

func TestLoopRunsEachFrameUntilRelease(t *testing.T) {
	h := host.New(4, 4)
	s := NewScope(h)
	frames := 0
	s.Loop(func(time.Time) { frames++ })

	step(h, 16*time.Millisecond)
	step(h, 16*time.Millisecond)
	step(h, 16*time.Millisecond)
	require.Equal(t, 3, frames)

	require.NoError(t, s.Release())
	step(h, 16*time.Millisecond)
	assert.Equal(t, 3, frames)
	assert.Zero(t, h.Window.PendingFrames())
}

func TestLoopStopsWhenReleasedFromInsideFrame(t *testing.T) {
	h := host.New(4, 4)
	s := NewScope(h)
	s.Loop(func(time.Time) { _ = s.Release() })

	step(h, 16*time.Millisecond)

	assert.Zero(t, h.Window.PendingFrames())
}

func TestGuardedTimersDoNotFireAfterRelease(t *testing.T) {
	h := host.New(4, 4)
	s := NewScope(h)
	fired := false
	late := s.Guard(func() { fired = true })
	s.After(10*time.Millisecond, func() { fired = true })

	require.NoError(t, s.Release())
	late()
	step(h, time.Second)

	assert.False(t, fired)
}

func TestRegisteringOnReleasedScopeUndoesImmediately(t *testing.T) {
	h := host.New(4, 4)
	s := NewScope(h)
	require.NoError(t, s.Release())

	s.OnWindow(host.KeyDown, func(*host.Event) {})

	assert.Zero(t, h.Window.Len())
	assert.Zero(t, s.Len())
}

func TestObjectURLRevokedOnRelease(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "song.wav")
	require.NoError(t, os.WriteFile(src, []byte("RIFF"), 0o644))

	h := host.NewWithTempDir(4, 4, dir)
	s := NewScope(h)
	url, err := s.ObjectURL(src)
	require.NoError(t, err)
	require.Equal(t, 1, h.URLs.Live())

	require.NoError(t, s.Release())
	assert.Zero(t, h.URLs.Live())
	_, err = h.URLs.Resolve(url)
	assert.ErrorIs(t, err, host.ErrUnknownURL)
}

type closer struct{ closed int }

func (c *closer) Close() error {
	c.closed++
	return nil
}

func TestTrackClosesOnce(t *testing.T) {
	s := NewScope(host.New(4, 4))
	c := &closer{}
	s.Track(c)
	s.Track(nil)

	require.NoError(t, s.Release())
	require.NoError(t, s.Release())
	assert.Equal(t, 1, c.closed)
}

func TestDuplicateControlIsNotTracked(t *testing.T) {
	h := host.New(4, 4)
	require.NoError(t, h.Document.Append(&host.Control{ID: "sit"}))
	s := NewScope(h)

	err := s.Control(&host.Control{ID: "sit"})

	assert.ErrorIs(t, err, host.ErrDuplicateControl)
	require.NoError(t, s.Release())
	assert.Equal(t, 1, h.Document.Len())
}
