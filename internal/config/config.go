package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"rulesaide/internal/classify"
)

const (
	defaultAttackRollTimeoutMs = 120000
	defaultDamageRollTimeoutMs = 30000
	defaultCellSize            = 100
	defaultUnitPerCell         = 2
	defaultMeleeMax            = 2
	defaultReachMax            = 4
	defaultJournalDir          = "./journal"
	defaultRelayAddr           = ":8787"
)

type ProjectConfig struct {
	Project   string           `yaml:"project"`
	Version   int              `yaml:"version"`
	Database  DatabaseConfig   `yaml:"database"`
	Settings  Settings         `yaml:"settings"`
	Grid      GridConfig       `yaml:"grid"`
	Range     RangeConfig      `yaml:"range"`
	Markers   classify.Markers `yaml:"markers"`
	Reminders RemindersConfig  `yaml:"reminders"`
	Exclude   []string         `yaml:"exclude"`
	Journal   JournalConfig    `yaml:"journal"`
	Relay     RelayConfig      `yaml:"relay"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Settings is the option surface a host exposes to the table.
type Settings struct {
	EnforceTargetSelection *bool `yaml:"enforce_target_selection"`
	EnforceRangeChecking   *bool `yaml:"enforce_range_checking"`
	MaxTargets             int   `yaml:"max_targets"`
	AttackRollTimeoutMs    int   `yaml:"attack_roll_timeout_ms"`
	DamageRollTimeoutMs    int   `yaml:"damage_roll_timeout_ms"`
}

type GridConfig struct {
	CellSize    float64 `yaml:"cell_size"`
	UnitPerCell float64 `yaml:"unit_per_cell"`
}

type RangeConfig struct {
	MeleeMax float64 `yaml:"melee_max"`
	ReachMax float64 `yaml:"reach_max"`
}

type RemindersConfig struct {
	Paths []string `yaml:"paths"`
}

type JournalConfig struct {
	Dir      string `yaml:"dir"`
	Disabled bool   `yaml:"disabled"`
}

type RelayConfig struct {
	Addr string `yaml:"addr"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	cfg, err := ParseProjectConfig(data)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	return cfg, nil
}

// ParseProjectConfig decodes, defaults, applies environment overrides and
// validates a project file.
func ParseProjectConfig(data []byte) (*ProjectConfig, error) {
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := validateProjectConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Settings.EnforceTargetSelection == nil {
		cfg.Settings.EnforceTargetSelection = boolPtr(true)
	}
	if cfg.Settings.EnforceRangeChecking == nil {
		cfg.Settings.EnforceRangeChecking = boolPtr(true)
	}
	if cfg.Settings.MaxTargets == 0 {
		cfg.Settings.MaxTargets = 1
	}
	if cfg.Settings.AttackRollTimeoutMs == 0 {
		cfg.Settings.AttackRollTimeoutMs = defaultAttackRollTimeoutMs
	}
	if cfg.Settings.DamageRollTimeoutMs == 0 {
		cfg.Settings.DamageRollTimeoutMs = defaultDamageRollTimeoutMs
	}
	if cfg.Grid.CellSize == 0 {
		cfg.Grid.CellSize = defaultCellSize
	}
	if cfg.Grid.UnitPerCell == 0 {
		cfg.Grid.UnitPerCell = defaultUnitPerCell
	}
	if cfg.Range.MeleeMax == 0 {
		cfg.Range.MeleeMax = defaultMeleeMax
	}
	if cfg.Range.ReachMax == 0 {
		cfg.Range.ReachMax = defaultReachMax
	}
	if strings.TrimSpace(cfg.Journal.Dir) == "" {
		cfg.Journal.Dir = defaultJournalDir
	}
	if strings.TrimSpace(cfg.Relay.Addr) == "" {
		cfg.Relay.Addr = defaultRelayAddr
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	if cfg.Settings.MaxTargets < 1 {
		return fmt.Errorf("max_targets must be at least 1")
	}
	if cfg.Settings.AttackRollTimeoutMs < 0 || cfg.Settings.DamageRollTimeoutMs < 0 {
		return fmt.Errorf("roll timeouts must not be negative")
	}
	if cfg.Grid.CellSize < 0 || cfg.Grid.UnitPerCell < 0 {
		return fmt.Errorf("grid cell_size and unit_per_cell must be positive")
	}
	if cfg.Range.MeleeMax < 0 || cfg.Range.ReachMax < cfg.Range.MeleeMax {
		return fmt.Errorf("range reach_max must be at least melee_max")
	}
	for i, path := range cfg.Reminders.Paths {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("reminder path %d is empty", i)
		}
	}
	return nil
}

func (s Settings) AttackRollTimeout() time.Duration {
	return time.Duration(s.AttackRollTimeoutMs) * time.Millisecond
}

func (s Settings) DamageRollTimeout() time.Duration {
	return time.Duration(s.DamageRollTimeoutMs) * time.Millisecond
}

func (s Settings) TargetsEnforced() bool {
	return s.EnforceTargetSelection == nil || *s.EnforceTargetSelection
}

func (s Settings) RangeEnforced() bool {
	return s.EnforceRangeChecking == nil || *s.EnforceRangeChecking
}

func boolPtr(v bool) *bool {
	return &v
}
