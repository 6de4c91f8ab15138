package annihilator

import "github.com/vovakirdan/concrete-annihilator/internal/core"

// EventKind identifies something that happened during a transition or a tick.
type EventKind int

const (
	EventBallSpawned EventKind = iota
	EventBrickDamaged          // hit points changed; Rect and HP describe the brick
	EventBrickBroken
	EventBombExploded
	EventWaveAdvanced
	EventBricksShifted
	EventPickupMoreBalls
	EventPickupMoreDamage
	EventPickupBiggerBalls
	EventStarted
	EventPaused
	EventResumed
	EventGaveUp
	EventRetried
	EventLost
	EventLoadFailed
)

var eventNames = map[EventKind]string{
	EventBallSpawned:       "ball-spawned",
	EventBrickDamaged:      "brick-damaged",
	EventBrickBroken:       "brick-broken",
	EventBombExploded:      "bomb-exploded",
	EventWaveAdvanced:      "wave-advanced",
	EventBricksShifted:     "bricks-shifted",
	EventPickupMoreBalls:   "pickup-more-balls",
	EventPickupMoreDamage:  "pickup-more-damage",
	EventPickupBiggerBalls: "pickup-bigger-balls",
	EventStarted:           "started",
	EventPaused:            "paused",
	EventResumed:           "resumed",
	EventGaveUp:            "gave-up",
	EventRetried:           "retried",
	EventLost:              "lost",
	EventLoadFailed:        "load-failed",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is a notification for frontends: audio cues, render cache
// invalidation, logging. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind
	Rect core.Rect // brick events
	HP   int       // EventBrickDamaged
	Wave int       // wave number at the time of the event
	Err  error     // EventLoadFailed
}

// Listener receives events synchronously from inside the tick.
// It must not call back into the Game.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Listeners fans an event out to several listeners, in order.
type Listeners []Listener

// OnEvent forwards e to every non-nil listener.
func (ls Listeners) OnEvent(e Event) {
	for _, l := range ls {
		if l != nil {
			l.OnEvent(e)
		}
	}
}
