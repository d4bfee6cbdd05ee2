package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level bankfold.yaml configuration.
type Config struct {
	User  UserConfig   `yaml:"user"`
	Rules []AssignRule `yaml:"rules,omitempty"`
}

// UserConfig identifies the single local user. Every published event
// records this user as its publisher.
type UserConfig struct {
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
}

// AssignRule auto-assigns a category to imported transactions whose
// description contains the match string (case-insensitive).
type AssignRule struct {
	Match    string `yaml:"match"`
	Category string `yaml:"category"`
}

// Load reads a bankfold.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config for a new setup.
func Default(email string) *Config {
	return &Config{
		User: UserConfig{
			ID:    "6f798809-b7c1-4d3f-a21b-e1d3390a0b2e",
			Email: email,
		},
	}
}
