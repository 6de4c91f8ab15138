package core

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right corner", 30, 25, true},
		{"right edge", 30, 12, true},
		{"just past the right edge", 31, 12, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 26, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdgesAndTranslate(t *testing.T) {
	r := NewRect(108, 150, 32, 32)

	if r.Right() != 140 || r.Bottom() != 182 {
		t.Errorf("edges = (%d, %d), expected (140, 182)", r.Right(), r.Bottom())
	}
	moved := r.Translate(0, 32)
	if moved.Y != 182 || r.Y != 150 {
		t.Errorf("Translate should return a copy, got moved.Y=%d r.Y=%d", moved.Y, r.Y)
	}
}

func TestRectOriginDistance(t *testing.T) {
	a := NewRect(108, 150, 32, 32)
	b := NewRect(108+96, 150, 32, 32)
	c := NewRect(108+32, 150+32, 32, 32)

	if d := a.OriginDistance(b); d != 96 {
		t.Errorf("OriginDistance straight = %f, expected 96", d)
	}
	if d := a.OriginDistance(c); math.Abs(d-32*math.Sqrt2) > 1e-9 {
		t.Errorf("OriginDistance diagonal = %f, expected %f", d, 32*math.Sqrt2)
	}
}

func TestBoxOverlap(t *testing.T) {
	brick := NewRect(100, 100, 32, 32).Box()

	tests := []struct {
		name           string
		probe          Box
		intersects     bool
		penX, penY     float32
		overlapX, ovrY bool
	}{
		{"inside from below", BoxAt(Vec2{X: 110, Y: 128}, 10), true, 10, 4, true, true},
		{"left side graze", BoxAt(Vec2{X: 92, Y: 110}, 10), true, 2, 10, true, true},
		{"below, not touching", BoxAt(Vec2{X: 110, Y: 132}, 10), false, 10, 0, true, false},
		{"far right", BoxAt(Vec2{X: 200, Y: 110}, 10), false, 0, 10, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.probe.Intersects(brick); got != tc.intersects {
				t.Errorf("Intersects() = %v, expected %v", got, tc.intersects)
			}
			if got := tc.probe.OverlapsX(brick); got != tc.overlapX {
				t.Errorf("OverlapsX() = %v, expected %v", got, tc.overlapX)
			}
			if got := tc.probe.OverlapsY(brick); got != tc.ovrY {
				t.Errorf("OverlapsY() = %v, expected %v", got, tc.ovrY)
			}
			if got := tc.probe.PenetrationX(brick); got != tc.penX {
				t.Errorf("PenetrationX() = %v, expected %v", got, tc.penX)
			}
			if got := tc.probe.PenetrationY(brick); got != tc.penY {
				t.Errorf("PenetrationY() = %v, expected %v", got, tc.penY)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := ClampF(math.Pi, math.Pi/20, 19*math.Pi/20); got != 19*math.Pi/20 {
		t.Errorf("ClampF above range = %f", got)
	}
}
