package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const annihilatorFile = "annihilator.yaml"

// LoadAnnihilator loads the game configuration.
// Search order: customPath -> ~/.annihilator/configs/annihilator.yaml ->
// ./configs/annihilator.yaml -> embedded default.
// Only a broken customPath is reported; the other locations are optional.
func LoadAnnihilator(customPath string) (AnnihilatorConfig, error) {
	if customPath != "" {
		cfg, err := readConfig(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(annihilatorFile), filepath.Join("configs", annihilatorFile)} {
		if path == "" {
			continue
		}
		if cfg, err := readConfig(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg := DefaultAnnihilatorConfig()
	if err := yaml.Unmarshal(defaultAnnihilatorYAML, &cfg); err != nil {
		return DefaultAnnihilatorConfig(), nil
	}
	return cfg, nil
}

// readConfig decodes a YAML file on top of the built-in defaults, so a file
// only needs to name the values it changes.
func readConfig(path string) (AnnihilatorConfig, error) {
	cfg := DefaultAnnihilatorConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".annihilator", "configs", filename)
}

// ApplyAnnihilatorPreset modifies the config based on a difficulty preset.
func ApplyAnnihilatorPreset(cfg *AnnihilatorConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Ball.MaxBalls = 15
		cfg.Bricks.Chance = 0.30
	case DifficultyHard:
		cfg.Ball.MaxBalls = 8
		cfg.Bricks.Chance = 0.50
	}
}
