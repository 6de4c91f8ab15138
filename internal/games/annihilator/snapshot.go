package annihilator

import (
	"fmt"
	"math"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// BallState is a ball as seen by a renderer.
type BallState struct {
	X, Y   float32
	VX, VY float32
}

// BrickState is a brick as seen by a renderer.
type BrickState struct {
	X, Y, W, H int
	HP         int
	Type       BrickType
}

// Snapshot is the read-only view of a game that renderers consume each
// frame. It holds values only, so it can be kept, compared and encoded.
type Snapshot struct {
	Frame uint64
	Mode  Mode

	Started bool
	Paused  bool
	Lost    bool
	Round   bool

	Angle        float64
	Wave         int
	BallsInRound int

	Damage   int
	BallSize int
	MaxBalls int

	Balls  []BallState
	Bricks []BrickState

	Announcement  string
	AnnounceUntil time.Time

	LastScore int
	BestScore int
	LoadError string
	RNGState  uint64
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Frame:        g.frame,
		Mode:         g.Mode(),
		Started:      g.started,
		Paused:       g.paused,
		Lost:         g.lost,
		Round:        g.round,
		Angle:        g.angle.Radians(),
		Wave:         g.wave.Number,
		BallsInRound: g.ballsInRound,
		Damage:       g.stats.Damage,
		BallSize:     g.stats.BallSize,
		MaxBalls:     g.stats.MaxBalls,
		Balls:        make([]BallState, len(g.balls)),
		Bricks:       make([]BrickState, len(g.wave.Bricks)),
		LastScore:    g.lastScore,
		BestScore:    g.bestScore,
	}

	for i, b := range g.balls {
		s.Balls[i] = BallState{X: b.Pos.X, Y: b.Pos.Y, VX: b.Vel.X, VY: b.Vel.Y}
	}
	for i, b := range g.wave.Bricks {
		s.Bricks[i] = BrickState{X: b.Rect.X, Y: b.Rect.Y, W: b.Rect.W, H: b.Rect.H, HP: b.HP, Type: b.Type}
	}
	if g.announce.Active(g.now()) {
		s.Announcement = g.announce.Text
		s.AnnounceUntil = g.announce.Until
	}
	if err := g.LoadErr(); err != nil {
		s.LoadError = err.Error()
	}
	if g.rng != nil {
		s.RNGState = g.rng.State()
	}
	return s
}

// Hash returns a simple hash of the snapshot for determinism testing.
// The announcement deadline is left out since it follows the wall clock.
func (s Snapshot) Hash() uint64 {
	h := s.Frame
	mix := func(v uint64) { h = h*31 + v }
	flag := func(b bool) uint64 {
		if b {
			return 1
		}
		return 0
	}

	mix(uint64(s.Mode)) //#nosec G115 -- hash computation
	mix(flag(s.Started))
	mix(flag(s.Paused))
	mix(flag(s.Lost))
	mix(flag(s.Round))
	mix(math.Float64bits(s.Angle))
	mix(uint64(s.Wave))         //#nosec G115 -- hash computation
	mix(uint64(s.BallsInRound)) //#nosec G115 -- hash computation
	mix(uint64(s.Damage))       //#nosec G115 -- hash computation
	mix(uint64(s.BallSize))     //#nosec G115 -- hash computation
	mix(uint64(s.MaxBalls))     //#nosec G115 -- hash computation

	for _, b := range s.Balls {
		mix(uint64(math.Float32bits(b.X)))
		mix(uint64(math.Float32bits(b.Y)))
		mix(uint64(math.Float32bits(b.VX)))
		mix(uint64(math.Float32bits(b.VY)))
	}
	for _, b := range s.Bricks {
		mix(uint64(b.X))    //#nosec G115 -- hash computation
		mix(uint64(b.Y))    //#nosec G115 -- hash computation
		mix(uint64(b.HP))   //#nosec G115 -- hash computation
		mix(uint64(b.Type)) //#nosec G115 -- hash computation
	}

	mix(uint64(s.LastScore)) //#nosec G115 -- hash computation
	mix(uint64(s.BestScore)) //#nosec G115 -- hash computation
	mix(s.RNGState)
	return h
}

// snapshotWire has Snapshot's fields without its methods, so msgpack
// encodes the struct instead of calling MarshalBinary again.
type snapshotWire Snapshot

// MarshalBinary encodes the snapshot with msgpack.
func (s Snapshot) MarshalBinary() ([]byte, error) {
	data, err := msgpack.Marshal((*snapshotWire)(&s))
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes a snapshot written by MarshalBinary.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	if err := msgpack.Unmarshal(data, (*snapshotWire)(s)); err != nil {
		return fmt.Errorf("snapshot: decode: %w", err)
	}
	return nil
}

// UnmarshalSnapshot decodes a snapshot dump.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	err := s.UnmarshalBinary(data)
	return s, err
}
