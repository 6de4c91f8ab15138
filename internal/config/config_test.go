package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// Test that the embedded YAML and the hard-coded defaults agree.
func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	var fromYAML AnnihilatorConfig
	if err := yaml.Unmarshal(defaultAnnihilatorYAML, &fromYAML); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if fromYAML != DefaultAnnihilatorConfig() {
		t.Errorf("embedded yaml = %+v\nexpected %+v", fromYAML, DefaultAnnihilatorConfig())
	}
	if err := fromYAML.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestArenaHelpers(t *testing.T) {
	cfg := DefaultAnnihilatorConfig()

	if cfg.Arena.InnerLeft() != 105 || cfg.Arena.InnerRight() != 495 || cfg.Arena.InnerTop() != 80 {
		t.Errorf("inner walls = %d/%d/%d, expected 105/495/80",
			cfg.Arena.InnerLeft(), cfg.Arena.InnerRight(), cfg.Arena.InnerTop())
	}
	if cfg.Bricks.BombRadius() != 96 {
		t.Errorf("BombRadius() = %f, expected 96", cfg.Bricks.BombRadius())
	}
	if cfg.Pickups.AnnounceFor().Seconds() != 2 {
		t.Errorf("AnnounceFor() = %v, expected 2s", cfg.Pickups.AnnounceFor())
	}

	lo, hi, step := cfg.Aim.Bounds()
	if math.Abs(lo-math.Pi/20) > 1e-12 || math.Abs(hi-19*math.Pi/20) > 1e-12 || math.Abs(step-math.Pi/200) > 1e-12 {
		t.Errorf("Bounds() = %f %f %f", lo, hi, step)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AnnihilatorConfig)
	}{
		{"zero arena", func(c *AnnihilatorConfig) { c.Arena.Width = 0 }},
		{"walls crossed", func(c *AnnihilatorConfig) { c.Arena.Left = 600 }},
		{"limit below floor", func(c *AnnihilatorConfig) { c.Arena.LimitY = 900 }},
		{"no damage", func(c *AnnihilatorConfig) { c.Ball.Damage = 0 }},
		{"max size too small", func(c *AnnihilatorConfig) { c.Ball.MaxSize = 4 }},
		{"chance above one", func(c *AnnihilatorConfig) { c.Bricks.Chance = 1.5 }},
		{"horizontal aim", func(c *AnnihilatorConfig) { c.Aim.MinPi = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultAnnihilatorConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

// Test that a partial file only overrides the keys it names.
func TestLoadCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("ball:\n  max_balls: 25\nbricks:\n  hp: 3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAnnihilator(path)
	if err != nil {
		t.Fatalf("LoadAnnihilator: %v", err)
	}
	if cfg.Ball.MaxBalls != 25 || cfg.Bricks.HP != 3 {
		t.Errorf("overrides not applied: max_balls=%d hp=%d", cfg.Ball.MaxBalls, cfg.Bricks.HP)
	}
	if cfg.Ball.Size != 10 || cfg.Arena.LimitY != 585 {
		t.Errorf("defaults lost: size=%d limit=%d", cfg.Ball.Size, cfg.Arena.LimitY)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadAnnihilator(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v, expected os.ErrNotExist", err)
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("ball: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAnnihilator(broken); err == nil {
		t.Error("broken yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("ball:\n  damage: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAnnihilator(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid values: got %v, expected ErrInvalidConfig", err)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultAnnihilatorConfig()
	ApplyAnnihilatorPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultAnnihilatorConfig()
	ApplyAnnihilatorPreset(&cfg, DifficultyHard)
	if cfg.Ball.MaxBalls != 8 || cfg.Difficulty.InitialLevel != 0.6 {
		t.Errorf("hard preset: max_balls=%d level=%f", cfg.Ball.MaxBalls, cfg.Difficulty.InitialLevel)
	}

	cfg = DefaultAnnihilatorConfig()
	ApplyAnnihilatorPreset(&cfg, "")
	if cfg != DefaultAnnihilatorConfig() {
		t.Error("empty preset should leave the config untouched")
	}

	if ParsePreset("easy") != DifficultyEasy || ParsePreset("brutal") != "" {
		t.Error("ParsePreset mapping is wrong")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultAnnihilatorConfig()
	d := NewDifficultyManager(cfg.Difficulty)

	if d.Level(1) != 0 {
		t.Errorf("Level(1) = %f, expected 0", d.Level(1))
	}
	if d.Level(30) != 1 || d.Level(100) != 1 {
		t.Errorf("Level should saturate at max_at, got %f / %f", d.Level(30), d.Level(100))
	}
	if d.BrickChance(cfg.Bricks.Chance, 1) != 0.40 {
		t.Errorf("BrickChance(wave 1) = %f, expected 0.40", d.BrickChance(cfg.Bricks.Chance, 1))
	}
	if d.BrickHP(cfg.Bricks.HP, 30) != 30 {
		t.Errorf("BrickHP(wave 30) = %d, expected 30", d.BrickHP(cfg.Bricks.HP, 30))
	}

	// Progression off pins the level
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.InitialLevel = 0.5
	fixed := NewDifficultyManager(cfg.Difficulty)
	if fixed.Level(1) != 0.5 || fixed.Level(50) != 0.5 {
		t.Errorf("disabled manager should stay at initial level, got %f / %f", fixed.Level(1), fixed.Level(50))
	}
	if fixed.BrickChance(0.9, 1) != 1.0 {
		t.Errorf("BrickChance should clamp to 1, got %f", fixed.BrickChance(0.9, 1))
	}
}
