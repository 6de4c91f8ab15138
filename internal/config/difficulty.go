package config

import "github.com/vovakirdan/concrete-annihilator/internal/core"

// DifficultyManager turns a wave number into generation odds and brick HP.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) for a wave.
// Wave 1 always sits at the initial level.
func (d *DifficultyManager) Level(wave int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	if d.cfg.Progression.Type != "wave" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 1 {
		maxAt = 2
	}
	progress := core.ClampF(float64(wave-1)/(maxAt-1), 0.0, 1.0)

	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// BrickChance returns the presence probability of a brick in an unlocked cell.
func (d *DifficultyManager) BrickChance(base float64, wave int) float64 {
	return core.ClampF(base+d.Level(wave)*d.cfg.Scaling.ChanceBonus, 0.0, 1.0)
}

// SpecialChance returns the probability that a present brick is special.
func (d *DifficultyManager) SpecialChance(base float64, wave int) float64 {
	return core.ClampF(base+d.Level(wave)*d.cfg.Scaling.SpecialBonus, 0.0, 1.0)
}

// BrickHP returns the starting hit points of generated bricks.
func (d *DifficultyManager) BrickHP(base int, wave int) int {
	return max(1, base+int(d.Level(wave)*float64(d.cfg.Scaling.HPBonus)))
}

