// Package annihilator implements Concrete Annihilator, a wave-based brick
// breaker: aim, release a volley of balls, grind the bricks down before they
// reach the limit line.
//
// The package is the simulation only. Frontends feed it semantic actions,
// read Snapshots and listen for Events.
package annihilator

import (
	"math"

	"github.com/vovakirdan/concrete-annihilator/internal/core"
)

// Default aim bounds. The angle never reaches the horizontal, otherwise a
// ball could travel along the floor forever.
const (
	DefaultAimMin  = math.Pi / 20
	DefaultAimMax  = 19 * math.Pi / 20
	DefaultAimStep = math.Pi / 200
)

// Angle is the launch angle in radians, measured from the positive x axis
// with y pointing up. π/2 is straight up.
type Angle struct {
	value float64
	lo    float64
	hi    float64
	step  float64
}

// NewAngle returns an angle pointing straight up with the default bounds.
func NewAngle() Angle {
	return NewAngleWithin(DefaultAimMin, DefaultAimMax, DefaultAimStep)
}

// NewAngleWithin returns an angle pointing straight up (clamped to the
// bounds) that moves by step inside [lo, hi].
func NewAngleWithin(lo, hi, step float64) Angle {
	a := Angle{lo: lo, hi: hi, step: step}
	a.value = a.clamp(math.Pi / 2)
	return a
}

// Increment rotates the aim towards the left wall.
func (a *Angle) Increment() {
	a.value = a.clamp(a.value + a.step)
}

// Decrement rotates the aim towards the right wall.
func (a *Angle) Decrement() {
	a.value = a.clamp(a.value - a.step)
}

// Radians returns the raw angle.
func (a Angle) Radians() float64 { return a.value }

// Cos returns the horizontal projection.
func (a Angle) Cos() float64 { return math.Cos(a.value) }

// Sin returns the vertical projection (positive is up).
func (a Angle) Sin() float64 { return math.Sin(a.value) }

func (a Angle) clamp(v float64) float64 {
	return core.ClampF(v, a.lo, a.hi)
}
