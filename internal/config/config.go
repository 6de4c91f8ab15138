// Package config provides YAML-based configuration loading and difficulty
// management for the annihilator.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// AnnihilatorConfig contains every tunable of the simulation.
type AnnihilatorConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Ball       BallConfig       `yaml:"ball"`
	Bricks     BricksConfig     `yaml:"bricks"`
	Pickups    PickupsConfig    `yaml:"pickups"`
	Aim        AimConfig        `yaml:"aim"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig describes the playfield in logical pixels.
// The inner walls sit BarWidth inside Left, Right and Top.
type ArenaConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"` // balls expire once y reaches it
	Left     int `yaml:"left"`
	Right    int `yaml:"right"`
	Top      int `yaml:"top"`
	BarWidth int `yaml:"bar_width"`
	LimitY   int `yaml:"limit_y"` // a brick whose bottom passes it ends the run
}

// InnerLeft returns the x-coordinate of the left wall surface.
func (a ArenaConfig) InnerLeft() int { return a.Left + a.BarWidth }

// InnerRight returns the x-coordinate of the right wall surface.
func (a ArenaConfig) InnerRight() int { return a.Right - a.BarWidth }

// InnerTop returns the y-coordinate of the ceiling surface.
func (a ArenaConfig) InnerTop() int { return a.Top + a.BarWidth }

// BallConfig holds the launch parameters and the per-life tunable defaults.
type BallConfig struct {
	Size        int     `yaml:"size"`
	Damage      int     `yaml:"damage"`
	MaxBalls    int     `yaml:"max_balls"`
	MaxSize     int     `yaml:"max_size"`
	LaunchSpeed float64 `yaml:"launch_speed"`
	SpawnEvery  int     `yaml:"spawn_every"` // ticks between spawns within a volley
}

// BricksConfig describes the brick grid and procedural generation odds.
type BricksConfig struct {
	CellSize        int     `yaml:"cell_size"`
	OriginX         int     `yaml:"origin_x"`
	OriginY         int     `yaml:"origin_y"`
	Columns         int     `yaml:"columns"`
	Rows            int     `yaml:"rows"`
	HP              int     `yaml:"hp"`
	Chance          float64 `yaml:"chance"`
	SpecialChance   float64 `yaml:"special_chance"`
	BombRadiusCells float64 `yaml:"bomb_radius_cells"`
}

// BombRadius returns the blast radius in pixels.
func (b BricksConfig) BombRadius() float64 {
	return b.BombRadiusCells * float64(b.CellSize)
}

// PickupsConfig holds the increments granted by special bricks.
type PickupsConfig struct {
	MoreBalls   int `yaml:"more_balls"`
	MoreDamage  int `yaml:"more_damage"`
	BiggerBalls int `yaml:"bigger_balls"`
	AnnounceMS  int `yaml:"announce_ms"`
}

// AnnounceFor returns how long a bonus announcement stays on screen.
func (p PickupsConfig) AnnounceFor() time.Duration {
	return time.Duration(p.AnnounceMS) * time.Millisecond
}

// AimConfig bounds the launch angle. Values are fractions of pi.
type AimConfig struct {
	MinPi  float64 `yaml:"min_pi"`
	MaxPi  float64 `yaml:"max_pi"`
	StepPi float64 `yaml:"step_pi"`
}

// Bounds returns min, max and step in radians.
func (a AimConfig) Bounds() (lo, hi, step float64) {
	return a.MinPi * math.Pi, a.MaxPi * math.Pi, a.StepPi * math.Pi
}

// DifficultyConfig defines how brick layouts get denser as waves go by.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives the difficulty level.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "wave" or "none"
	MaxAt int    `yaml:"max_at"` // wave at which the maximum is reached
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	ChanceBonus  float64 `yaml:"chance_bonus"`  // added to bricks.chance
	SpecialBonus float64 `yaml:"special_bonus"` // added to bricks.special_chance
	HPBonus      int     `yaml:"hp_bonus"`      // added to bricks.hp
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings give "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.2
	case DifficultyHard:
		return 0.6
	default:
		return 0.0
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the geometric and probabilistic sanity of the config.
func (c AnnihilatorConfig) Validate() error {
	a := c.Arena
	switch {
	case a.Width <= 0 || a.Height <= 0:
		return fmt.Errorf("config: arena %dx%d: %w", a.Width, a.Height, ErrInvalidConfig)
	case a.InnerLeft() >= a.InnerRight():
		return fmt.Errorf("config: arena walls %d..%d do not leave room: %w", a.InnerLeft(), a.InnerRight(), ErrInvalidConfig)
	case a.LimitY <= a.InnerTop() || a.LimitY > a.Height:
		return fmt.Errorf("config: limit_y %d outside the arena: %w", a.LimitY, ErrInvalidConfig)
	}

	b := c.Ball
	if b.Size <= 0 || b.Damage <= 0 || b.MaxBalls <= 0 || b.LaunchSpeed <= 0 {
		return fmt.Errorf("config: ball size, damage, max_balls and launch_speed must be positive: %w", ErrInvalidConfig)
	}
	if b.MaxSize < b.Size {
		return fmt.Errorf("config: ball max_size %d below size %d: %w", b.MaxSize, b.Size, ErrInvalidConfig)
	}

	k := c.Bricks
	if k.CellSize <= 0 || k.Columns <= 0 || k.Rows <= 0 || k.HP <= 0 {
		return fmt.Errorf("config: brick grid must have positive cell_size, columns, rows and hp: %w", ErrInvalidConfig)
	}
	if k.Chance < 0 || k.Chance > 1 || k.SpecialChance < 0 || k.SpecialChance > 1 {
		return fmt.Errorf("config: brick chances must lie in [0, 1]: %w", ErrInvalidConfig)
	}

	lo, hi, step := c.Aim.Bounds()
	if lo <= 0 || hi >= math.Pi || lo >= hi || step <= 0 {
		return fmt.Errorf("config: aim bounds [%g, %g] step %g: %w", lo, hi, step, ErrInvalidConfig)
	}
	return nil
}
