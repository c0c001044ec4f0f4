package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ModifierAction names what a modifier rule does to its target cooldown.
type ModifierAction string

const (
	ActionReduce  ModifierAction = "reduce"
	ActionReset   ModifierAction = "reset"
	ActionRefresh ModifierAction = "refresh"
)

// AbilityEntry is one configured ability in abilities.yaml.
type AbilityEntry struct {
	ID              int     `yaml:"id"`
	Name            string  `yaml:"name"`
	CooldownSeconds float64 `yaml:"cooldown_seconds"`
	Charges         int     `yaml:"charges"`
	HasteScaled     bool    `yaml:"haste_scaled"`
}

// Abilities holds the ability catalog data
type Abilities struct {
	Abilities []AbilityEntry `yaml:"abilities"`
}

// Player holds the tracked actor
type Player struct {
	Character struct {
		ID   int    `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"character"`
	Stats struct {
		HastePercent float64 `yaml:"haste_percent"`
	} `yaml:"stats"`
}

// ModifierRule triggers a cooldown change on another ability when the actor
// performs an event with the trigger ability.
type ModifierRule struct {
	Name            string         `yaml:"name"`
	On              string         `yaml:"on"`
	Trigger         int            `yaml:"trigger"`
	Target          int            `yaml:"target"`
	Action          ModifierAction `yaml:"action"`
	AmountSeconds   float64        `yaml:"amount_seconds"`
	DurationSeconds float64        `yaml:"duration_seconds"`
}

// Logging controls the diagnostic logger.
type Logging struct {
	Level string `yaml:"level"`
}

// Replay holds replay.yaml
type Replay struct {
	Player    Player         `yaml:"player"`
	Logging   Logging        `yaml:"logging"`
	Modifiers []ModifierRule `yaml:"modifiers"`
}

// Config holds all configuration
type Config struct {
	Abilities Abilities
	Replay    Replay
}

// DefaultReplay returns replay settings used when fields are left out.
func DefaultReplay() Replay {
	return Replay{
		Logging: Logging{Level: "info"},
	}
}

// LoadConfig loads all YAML configuration files
func LoadConfig(configDir string) (*Config, error) {
	cfg := &Config{
		Replay: DefaultReplay(),
	}

	if err := loadFile(filepath.Join(configDir, "abilities.yaml"), &cfg.Abilities); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(configDir, "replay.yaml"), &cfg.Replay); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
