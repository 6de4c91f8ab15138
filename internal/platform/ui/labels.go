package ui

import (
	"github.com/vovakirdan/concrete-annihilator/internal/core"
	"github.com/vovakirdan/concrete-annihilator/internal/games/annihilator"
)

// LabelCache keeps one rendered brick label per brick rectangle. An entry
// lives until an event says the brick under it changed: a hit or a removal
// drops that rect, anything that moves or reloads bricks drops them all.
type LabelCache[T any] struct {
	render  func(b annihilator.BrickState) T
	entries map[core.Rect]T
	renders int
}

// NewLabelCache creates a cache that calls render on a miss.
func NewLabelCache[T any](render func(b annihilator.BrickState) T) *LabelCache[T] {
	return &LabelCache[T]{
		render:  render,
		entries: make(map[core.Rect]T),
	}
}

// Get returns the label of b, rendering it on a miss.
func (c *LabelCache[T]) Get(b annihilator.BrickState) T {
	key := core.NewRect(b.X, b.Y, b.W, b.H)
	if v, ok := c.entries[key]; ok {
		return v
	}
	v := c.render(b)
	c.entries[key] = v
	c.renders++
	return v
}

// Len returns the number of cached labels.
func (c *LabelCache[T]) Len() int { return len(c.entries) }

// Renders returns how many labels have been rendered so far.
func (c *LabelCache[T]) Renders() int { return c.renders }

// Reset drops every entry.
func (c *LabelCache[T]) Reset() {
	clear(c.entries)
}

// OnEvent invalidates entries; it makes the cache a game Listener.
func (c *LabelCache[T]) OnEvent(e annihilator.Event) {
	switch e.Kind {
	case annihilator.EventBrickDamaged, annihilator.EventBrickBroken:
		delete(c.entries, e.Rect)
	case annihilator.EventWaveAdvanced, annihilator.EventBricksShifted,
		annihilator.EventStarted, annihilator.EventRetried,
		annihilator.EventLost, annihilator.EventLoadFailed:
		c.Reset()
	}
}
