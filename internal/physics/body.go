// Package physics holds the motion helpers shared by the modes: a verlet
// body that falls and bounces off the ground, a pointer drag tracker and a
// damped pendulum. Units are cells and frames.
package physics

import "github.com/Mygameindie/Zombiepet/internal/core"

// Params tunes a Body.
type Params struct {
	Gravity     float64 // added to the vertical speed every frame
	Damping     float64 // speed multiplier per frame
	BouncePower float64 // largest upward speed after an impact
	Restitution float64 // share of the impact speed kept by a bounce
	MinImpact   float64 // impacts at or below this speed stop the body
}

// Body is a box integrated with verlet steps. X and Y are the center.
type Body struct {
	X, Y       float64
	OldX, OldY float64
	W, H       float64
	VY         float64 // vertical speed after the last step

	Dragging bool
}

// NewBody places a resting body centered at (x, y).
func NewBody(x, y, w, h float64) *Body {
	return &Body{X: x, Y: y, OldX: x, OldY: y, W: w, H: h}
}

// Box returns the body's bounds.
func (b *Body) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Bottom returns the y of the body's lower edge.
func (b *Body) Bottom() float64 {
	return b.Y + b.H/2
}

// Airborne reports whether the body is above ground.
func (b *Body) Airborne(ground float64) bool {
	return b.Bottom() < ground
}

// Impact describes a ground contact during a step.
type Impact struct {
	Speed float64
	Hit   bool // Speed exceeded MinImpact
}

// Step advances the body one frame. A body being dragged does not move.
// When the body reaches the ground it is placed on it and either bounces
// back up or stops, depending on the impact speed.
func (b *Body) Step(p Params, ground float64) Impact {
	if b.Dragging {
		return Impact{}
	}

	vx := (b.X - b.OldX) * p.Damping
	vy := (b.Y - b.OldY) * p.Damping
	prevBottom := b.Bottom()

	b.OldX, b.OldY = b.X, b.Y
	b.X += vx

	vyNext := vy + p.Gravity
	yNext := b.Y + vyNext
	nextBottom := yNext + b.H/2

	crossing := prevBottom <= ground && nextBottom >= ground && vyNext > 0
	submerged := prevBottom > ground && nextBottom >= ground

	if !crossing && !submerged {
		b.Y = yNext
		if b.Bottom() > ground {
			b.Y = ground - b.H/2
			vyNext = 0
		}
		b.VY = vyNext
		return Impact{}
	}

	b.Y = ground - b.H/2
	speed := vyNext
	if submerged {
		speed = max(vyNext, p.MinImpact+0.01)
	}

	hit := speed > p.MinImpact
	if hit {
		b.VY = -min(p.BouncePower, speed*p.Restitution)
	} else {
		b.VY = 0
	}
	// verlet carries speed in the previous position
	b.OldY = b.Y - b.VY
	b.OldX = b.X - vx
	return Impact{Speed: speed, Hit: hit}
}

// Settle snaps the body onto the ground if it has sunk below it, for example
// after the surface shrank.
func (b *Body) Settle(ground float64) {
	if b.Bottom() > ground {
		b.Y = ground - b.H/2
		b.OldY = b.Y
		b.VY = 0
	}
}

// ClampX keeps the body horizontally inside [0, width).
func (b *Body) ClampX(width float64) {
	lo, hi := b.W/2, width-b.W/2
	if hi < lo {
		hi = lo
	}
	if b.X < lo || b.X > hi {
		x := core.ClampF(b.X, lo, hi)
		b.OldX += x - b.X
		b.X = x
	}
}

// MoveTo places the body without giving it speed.
func (b *Body) MoveTo(x, y float64) {
	b.X, b.Y = x, y
	b.OldX, b.OldY = x, y
	b.VY = 0
}

// Launch gives the body a vertical speed, negative is up.
func (b *Body) Launch(vy float64) {
	b.OldY = b.Y - vy
	b.VY = vy
}

// ImpactVolume maps an impact speed to a playback volume in [0.2, 1].
// fullAt is the speed that plays at full volume.
func ImpactVolume(speed, fullAt float64) float64 {
	if fullAt <= 0 {
		return 1
	}
	return core.ClampF(0.2+0.8*speed/fullAt, 0, 1)
}
