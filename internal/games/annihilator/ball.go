package annihilator

import (
	"github.com/vovakirdan/concrete-annihilator/internal/config"
	"github.com/vovakirdan/concrete-annihilator/internal/core"
)

// BallStatus is the outcome of advancing a ball by one tick.
type BallStatus int

const (
	BallExpired BallStatus = -1 // left through the bottom, remove it
	BallAlive   BallStatus = 0
)

// Bounds are the wall surfaces a ball bounces off, and the floor it leaves through.
type Bounds struct {
	Left  float32
	Right float32
	Top   float32
	Floor float32
}

// BoundsFrom derives the wall surfaces from the arena config.
func BoundsFrom(a config.ArenaConfig) Bounds {
	return Bounds{
		Left:  float32(a.InnerLeft()),
		Right: float32(a.InnerRight()),
		Top:   float32(a.InnerTop()),
		Floor: float32(a.Height),
	}
}

// Ball is a projectile. It has no identity beyond its slot in the live list.
type Ball struct {
	Pos core.Vec2
	Vel core.Vec2
}

// NewBall launches a ball from pos along angle at the given speed.
func NewBall(pos core.Vec2, angle Angle, speed float64) Ball {
	return Ball{
		Pos: pos,
		Vel: core.Vec2{
			X: float32(angle.Cos() * speed),
			Y: float32(-angle.Sin() * speed),
		},
	}
}

// Box returns the ball's current bounding box.
func (b *Ball) Box(size float32) core.Box {
	return core.BoxAt(b.Pos, size)
}

// Advance moves the ball by one tick and resolves at most one collision.
//
// Walls and the ceiling flip the velocity of a ball heading into them, but
// the ball still moves by the velocity it had this tick. A brick hit loses damage hit points, flips one
// velocity component and the ball moves by the updated velocity. Only the
// first brick in storage order that the probe box touches is resolved.
//
// The returned brick is the one that was hit, or nil.
func (b *Ball) Advance(bounds Bounds, bricks []*Brick, size float32, damage int) (BallStatus, *Brick) {
	if b.Pos.Y >= bounds.Floor {
		return BallExpired, nil
	}

	next := b.Pos.Add(b.Vel)

	// A wall only turns a ball that moves into it. A ball a brick pushed
	// past a wall surface flies back under its own velocity.
	if (next.X <= bounds.Left && b.Vel.X < 0) || (next.X+size >= bounds.Right && b.Vel.X > 0) {
		b.Pos = next
		b.Vel.X = -b.Vel.X
		return BallAlive, nil
	}
	if next.Y <= bounds.Top && b.Vel.Y < 0 {
		b.Pos = next
		b.Vel.Y = -b.Vel.Y
		return BallAlive, nil
	}

	probe := core.BoxAt(next, size)
	for _, brick := range bricks {
		target := brick.Rect.Box()
		if !probe.Intersects(target) {
			continue
		}
		brick.Hit(damage)
		if b.reflectsHorizontally(size, probe, target) {
			b.Vel.X = -b.Vel.X
		} else {
			b.Vel.Y = -b.Vel.Y
		}
		b.Pos = b.Pos.Add(b.Vel)
		return BallAlive, brick
	}

	b.Pos = next
	return BallAlive, nil
}

// reflectsHorizontally picks the axis to reflect on a brick hit.
//
// The ball bounces off a side face when its current box already shares rows
// with the brick and it is moving towards the brick's centre. It bounces off
// the top or bottom face when the current box shares columns with the brick.
// When neither holds the ball is hitting a corner: the axis with the smaller
// penetration of the probe is the face it grazed. Ties go to the vertical axis.
func (b *Ball) reflectsHorizontally(size float32, probe, target core.Box) bool {
	cur := b.Box(size)

	if cur.OverlapsY(target) {
		switch {
		case b.Vel.X > 0 && probe.CenterX() < target.CenterX():
			return true
		case b.Vel.X < 0 && probe.CenterX() > target.CenterX():
			return true
		}
	}
	if cur.OverlapsX(target) {
		return false
	}
	return probe.PenetrationX(target) < probe.PenetrationY(target)
}
