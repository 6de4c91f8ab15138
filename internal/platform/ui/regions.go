// Package ui holds the frontend-neutral parts of the pixel frontend:
// clickable regions and the brick label cache.
package ui

import (
	"github.com/vovakirdan/concrete-annihilator/internal/core"
	"github.com/vovakirdan/concrete-annihilator/internal/games/annihilator"
)

// Region is a clickable button. It is drawn and hit-tested only in the
// modes it lists; a click resolves to Action.
type Region struct {
	Name   string
	Label  string
	Modes  []annihilator.Mode
	Box    core.Rect
	Action core.Action
}

// ActiveIn reports whether the region is shown in mode m.
func (r Region) ActiveIn(m annihilator.Mode) bool {
	for _, mode := range r.Modes {
		if mode == m {
			return true
		}
	}
	return false
}

// DefaultRegions returns the buttons of a 600x700 arena.
func DefaultRegions() []Region {
	return []Region{
		{
			Name: "menu_start", Label: "Start",
			Modes:  []annihilator.Mode{annihilator.ModeMenu},
			Box:    core.NewRect(200, 200, 200, 100),
			Action: core.ActionConfirm,
		},
		{
			Name: "pause_button", Label: "Pause",
			Modes:  []annihilator.Mode{annihilator.ModeInRound},
			Box:    core.NewRect(420, 15, 150, 40),
			Action: core.ActionPause,
		},
		{
			Name: "pause_resume", Label: "Resume",
			Modes:  []annihilator.Mode{annihilator.ModePaused},
			Box:    core.NewRect(200, 200, 200, 100),
			Action: core.ActionPause,
		},
		{
			Name: "pause_giveup", Label: "Give up",
			Modes:  []annihilator.Mode{annihilator.ModePaused},
			Box:    core.NewRect(200, 350, 200, 100),
			Action: core.ActionBack,
		},
		{
			Name: "retry_button", Label: "Retry",
			Modes:  []annihilator.Mode{annihilator.ModeLoss},
			Box:    core.NewRect(200, 475, 200, 100),
			Action: core.ActionConfirm,
		},
	}
}

// HitTest returns the first region active in mode m whose box contains
// (x, y), edges included.
func HitTest(regions []Region, m annihilator.Mode, x, y int) (Region, bool) {
	for _, r := range regions {
		if !r.ActiveIn(m) {
			continue
		}
		if r.Box.Contains(x, y) {
			return r, true
		}
	}
	return Region{}, false
}
