package physics

import "math"

// Pendulum swings in degrees. A positive angle is to the right.
type Pendulum struct {
	Angle    float64
	Velocity float64

	pulling bool
	pull    float64
}

// Pull holds the pendulum at -power*maxPull degrees (to the left) until
// Release. power is clamped to [0, 1].
func (p *Pendulum) Pull(power, maxPull float64) {
	power = math.Max(0, math.Min(power, 1))
	p.pulling = true
	p.pull = -power * maxPull
}

// Pulling reports whether the pendulum is held.
func (p *Pendulum) Pulling() bool {
	return p.pulling
}

// Release lets go from the pulled angle with no speed.
func (p *Pendulum) Release() {
	if !p.pulling {
		return
	}
	p.pulling = false
	p.Angle = p.pull
	p.Velocity = 0
	p.pull = 0
}

// Shown returns the angle to draw, which is the pulled angle while held.
func (p *Pendulum) Shown() float64 {
	if p.pulling {
		return p.pull
	}
	return p.Angle
}

// Step advances one frame. The angle is clamped to [-180, 180].
func (p *Pendulum) Step(gravity, damping float64) {
	if p.pulling {
		return
	}
	accel := -gravity * math.Sin(p.Angle*math.Pi/180)
	p.Velocity += accel
	p.Angle += p.Velocity
	p.Velocity *= damping

	p.Angle = math.Max(-180, math.Min(p.Angle, 180))
}
