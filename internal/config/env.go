package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides are read from the process environment and win over the
// project file.
type EnvOverrides struct {
	DSN            string `env:"RULESAIDE_DSN"`
	EnforceTargets *bool  `env:"RULESAIDE_ENFORCE_TARGETS"`
	EnforceRange   *bool  `env:"RULESAIDE_ENFORCE_RANGE"`
	RelayAddr      string `env:"RULESAIDE_RELAY_ADDR"`
	JournalDir     string `env:"RULESAIDE_JOURNAL_DIR"`
}

func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func ApplyEnv(cfg *ProjectConfig) error {
	var overrides EnvOverrides
	if err := ParseEnv(&overrides); err != nil {
		return err
	}
	overrides.apply(cfg)
	return nil
}

func (o EnvOverrides) apply(cfg *ProjectConfig) {
	if o.DSN != "" {
		cfg.Database.DSN = o.DSN
	}
	if o.EnforceTargets != nil {
		cfg.Settings.EnforceTargetSelection = o.EnforceTargets
	}
	if o.EnforceRange != nil {
		cfg.Settings.EnforceRangeChecking = o.EnforceRange
	}
	if o.RelayAddr != "" {
		cfg.Relay.Addr = o.RelayAddr
	}
	if o.JournalDir != "" {
		cfg.Journal.Dir = o.JournalDir
	}
}
