package physics

import (
	"math"

	"github.com/Mygameindie/Zombiepet/internal/core"
)

// Drag follows a pointer that grabbed something. The grab offset is kept so
// the object does not jump to the pointer.
type Drag struct {
	active bool
	offX   float64
	offY   float64
	lastX  float64
	lastY  float64
	vx, vy float64
}

// Begin starts a drag if (px, py) lies inside box. It returns false and
// leaves the tracker idle otherwise.
func (d *Drag) Begin(box core.Box, px, py float64) bool {
	if !contains(box, px, py) {
		return false
	}
	d.active = true
	d.offX = box.X - px
	d.offY = box.Y - py
	d.lastX, d.lastY = px, py
	d.vx, d.vy = 0, 0
	return true
}

// contains tests the cells the box is drawn on.
func contains(b core.Box, px, py float64) bool {
	x, y := b.TopLeft()
	return core.NewRect(x, y, int(math.Ceil(b.W)), int(math.Ceil(b.H))).
		Contains(int(math.Floor(px)), int(math.Floor(py)))
}

// Move returns where the dragged object's center should be for a pointer at
// (px, py). ok is false when no drag is active.
func (d *Drag) Move(px, py float64) (x, y float64, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	d.vx, d.vy = px-d.lastX, py-d.lastY
	d.lastX, d.lastY = px, py
	return px + d.offX, py + d.offY, true
}

// End finishes the drag and returns the pointer speed of the last move, which
// callers use as a throw. ok is false when no drag was active.
func (d *Drag) End() (vx, vy float64, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	d.active = false
	return d.vx, d.vy, true
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}

// Cancel drops the drag without a throw.
func (d *Drag) Cancel() {
	d.active = false
	d.vx, d.vy = 0, 0
}
