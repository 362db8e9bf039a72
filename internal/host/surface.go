package host

import "github.com/Mygameindie/Zombiepet/internal/core"

// Surface is the shared drawing surface. Its identity never changes for the
// lifetime of a Host; modes find it through the Host and draw into its
// screen buffer.
type Surface struct {
	*Target
	screen *core.Screen
}

func newSurface(width, height int) *Surface {
	return &Surface{
		Target: newTarget("surface"),
		screen: core.NewScreen(width, height),
	}
}

// Screen returns the cell buffer modes draw into.
func (s *Surface) Screen() *core.Screen {
	return s.screen
}

// Width returns the surface width in cells.
func (s *Surface) Width() int {
	return s.screen.Width()
}

// Height returns the surface height in cells.
func (s *Surface) Height() int {
	return s.screen.Height()
}

// Reset replaces the surface contents wholesale: every listener is dropped
// and the buffer is cleared. The Surface value itself stays the same, so
// later modes keep finding it. Calling Reset repeatedly is harmless.
func (s *Surface) Reset() {
	s.removeAll()
	s.screen.Clear()
}
