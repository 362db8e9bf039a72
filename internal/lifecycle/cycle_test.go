package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mygameindie/Zombiepet/internal/host"
)

func TestCycleKeepsParentFlat(t *testing.T) {
	h := host.NewWithTempDir(20, 10, t.TempDir())
	s := NewScope(h)
	c := s.Cycle()
	base := s.Len()

	for n := 0; n < 5; n++ {
		round := c.Next()
		round.Every(time.Second, func() {})
		round.After(time.Second, func() {})
	}

	assert.Equal(t, base, s.Len())
	assert.Equal(t, 2, h.Window.ActiveTimers())
	assert.True(t, c.Active())

	require.NoError(t, c.End())
	assert.Zero(t, h.Window.ActiveTimers())
	assert.False(t, c.Active())
}

func TestCycleEndsWithParent(t *testing.T) {
	h := host.NewWithTempDir(20, 10, t.TempDir())
	s := NewScope(h)
	c := s.Cycle()
	round := c.Next()
	round.OnWindow(host.Resize, func(*host.Event) {})

	require.NoError(t, s.Release())

	assert.False(t, round.Alive())
	assert.Zero(t, h.Window.Len())

	late := c.Next()
	assert.False(t, late.Alive())
	late.Every(time.Second, func() {})
	assert.Zero(t, h.Window.ActiveTimers())
}
