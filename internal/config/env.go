// Package config loads CLI settings from the environment and config.yaml.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/mesh-intelligence/registers/pkg/types"
)

// Env holds settings read from environment variables. They act as defaults
// underneath config.yaml.
type Env struct {
	Format  string `env:"REGISTERS_FORMAT" envDefault:"json"`
	Verbose bool   `env:"REGISTERS_VERBOSE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	cfg := Env{Format: types.FormatJSON}
	if err := ParseEnv(&cfg); err != nil {
		return Env{}, err
	}
	return cfg, nil
}
