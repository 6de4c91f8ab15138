package annihilator

import (
	"time"

	"github.com/vovakirdan/concrete-annihilator/internal/config"
)

// Stats are the tunables a life accumulates through pickups.
// They survive wave changes and go back to the defaults on a loss.
type Stats struct {
	Damage   int
	BallSize int
	MaxBalls int
}

// DefaultStats returns the starting tunables.
func DefaultStats(cfg config.BallConfig) Stats {
	return Stats{Damage: cfg.Damage, BallSize: cfg.Size, MaxBalls: cfg.MaxBalls}
}

// Announcement is the bonus text on screen. Only the latest one is kept.
type Announcement struct {
	Text  string
	Until time.Time
}

// Active reports whether the announcement is still showing at now.
func (a Announcement) Active(now time.Time) bool {
	return a.Text != "" && now.Before(a.Until)
}

// Pickup texts.
const (
	TextMoreBalls   = "More bullets!"
	TextMoreDamage  = "More damage!"
	TextBiggerBalls = "Bigger balls!"
)

// applyPickup grants the bonus of a removed special brick and announces it.
// Bombs are handled by the wave removal pass.
func (g *Game) applyPickup(t BrickType) {
	var (
		text string
		kind EventKind
	)
	switch t {
	case BrickMoreBalls:
		g.stats.MaxBalls += g.cfg.Pickups.MoreBalls
		text, kind = TextMoreBalls, EventPickupMoreBalls
	case BrickMoreDamage:
		g.stats.Damage += g.cfg.Pickups.MoreDamage
		text, kind = TextMoreDamage, EventPickupMoreDamage
	case BrickBiggerBalls:
		g.stats.BallSize = min(g.stats.BallSize+g.cfg.Pickups.BiggerBalls, g.cfg.Ball.MaxSize)
		text, kind = TextBiggerBalls, EventPickupBiggerBalls
	default:
		return
	}

	g.announce = Announcement{Text: text, Until: g.now().Add(g.cfg.Pickups.AnnounceFor())}
	g.emit(Event{Kind: kind})
}
