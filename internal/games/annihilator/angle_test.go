package annihilator

import (
	"math"
	"testing"
)

func TestAngleStartsStraightUp(t *testing.T) {
	a := NewAngle()
	if a.Radians() != math.Pi/2 {
		t.Errorf("NewAngle() = %f, expected π/2", a.Radians())
	}
	if math.Abs(a.Cos()) > 1e-12 || a.Sin() != 1 {
		t.Errorf("projections = (%f, %f), expected (0, 1)", a.Cos(), a.Sin())
	}
}

func TestAngleClamps(t *testing.T) {
	a := NewAngle()
	for range 1000 {
		a.Increment()
	}
	if a.Radians() != DefaultAimMax {
		t.Errorf("after many increments = %f, expected %f", a.Radians(), DefaultAimMax)
	}

	for range 1000 {
		a.Decrement()
	}
	if a.Radians() != DefaultAimMin {
		t.Errorf("after many decrements = %f, expected %f", a.Radians(), DefaultAimMin)
	}
}

func TestAngleStep(t *testing.T) {
	a := NewAngle()
	a.Increment()
	if math.Abs(a.Radians()-(math.Pi/2+DefaultAimStep)) > 1e-12 {
		t.Errorf("Increment() = %f", a.Radians())
	}
	a.Decrement()
	a.Decrement()
	if math.Abs(a.Radians()-(math.Pi/2-DefaultAimStep)) > 1e-12 {
		t.Errorf("Decrement() = %f", a.Radians())
	}
}

// Test that a start value outside narrow bounds is pulled inside them.
func TestAngleWithinNarrowBounds(t *testing.T) {
	a := NewAngleWithin(0.1, 1.0, 0.05)
	if a.Radians() != 1.0 {
		t.Errorf("NewAngleWithin clamp = %f, expected 1.0", a.Radians())
	}
	a.Decrement()
	if math.Abs(a.Radians()-0.95) > 1e-12 {
		t.Errorf("Decrement() = %f, expected 0.95", a.Radians())
	}
}
