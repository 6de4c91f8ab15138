package config

import (
	_ "embed"
)

//go:embed defaults/annihilator.yaml
var defaultAnnihilatorYAML []byte

// DefaultAnnihilatorConfig returns the built-in configuration. It mirrors
// defaults/annihilator.yaml and is the last fallback when YAML cannot be read.
func DefaultAnnihilatorConfig() AnnihilatorConfig {
	return AnnihilatorConfig{
		Arena: ArenaConfig{
			Width:    600,
			Height:   700,
			Left:     100,
			Right:    500,
			Top:      75,
			BarWidth: 5,
			LimitY:   585,
		},
		Ball: BallConfig{
			Size:        10,
			Damage:      1,
			MaxBalls:    10,
			MaxSize:     30,
			LaunchSpeed: 8.0,
			SpawnEvery:  2,
		},
		Bricks: BricksConfig{
			CellSize:        32,
			OriginX:         108,
			OriginY:         150,
			Columns:         12,
			Rows:            12,
			HP:              10,
			Chance:          0.40,
			SpecialChance:   0.15,
			BombRadiusCells: 3,
		},
		Pickups: PickupsConfig{
			MoreBalls:   3,
			MoreDamage:  1,
			BiggerBalls: 2,
			AnnounceMS:  2000,
		},
		Aim: AimConfig{
			MinPi:  0.05,
			MaxPi:  0.95,
			StepPi: 0.005,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "wave",
				MaxAt: 30,
			},
			Scaling: ScalingConfig{
				ChanceBonus:  0.25,
				SpecialBonus: 0.05,
				HPBonus:      20,
			},
		},
	}
}
