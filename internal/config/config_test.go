package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads with defaults", func(t *testing.T) {
		cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "test-table" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.Settings.TargetsEnforced() {
			t.Fatalf("expected target enforcement disabled")
		}
		if !cfg.Settings.RangeEnforced() {
			t.Fatalf("expected range enforcement to default on")
		}
		if cfg.Settings.AttackRollTimeout() != 90*time.Second {
			t.Fatalf("unexpected attack timeout: %v", cfg.Settings.AttackRollTimeout())
		}
		if cfg.Settings.DamageRollTimeout() != 30*time.Second {
			t.Fatalf("unexpected damage timeout: %v", cfg.Settings.DamageRollTimeout())
		}
		if cfg.Grid.CellSize != 50 || cfg.Grid.UnitPerCell != 2 {
			t.Fatalf("unexpected grid: %+v", cfg.Grid)
		}
		if cfg.Range.MeleeMax != 2 || cfg.Range.ReachMax != 4 {
			t.Fatalf("unexpected range: %+v", cfg.Range)
		}
		if len(cfg.Markers.Success) != 1 {
			t.Fatalf("expected marker override, got %+v", cfg.Markers.Success)
		}
		if cfg.Settings.MaxTargets != 1 || cfg.Relay.Addr != ":8787" || cfg.Journal.Dir != "./journal" {
			t.Fatalf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\ndatabase:\n  dsn: \"sqlite://:memory:\"\n")
		_, err := LoadProjectConfig(path)
		if err == nil || !strings.Contains(err.Error(), "project name is required") {
			t.Fatalf("expected project name is required error, got %v", err)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempConfig(t, "project: t\nversion: 2\ndatabase:\n  dsn: \"sqlite://:memory:\"\n")
		_, err := LoadProjectConfig(path)
		if err == nil || !strings.Contains(err.Error(), "unsupported version: 2") {
			t.Fatalf("expected unsupported version: 2 error, got %v", err)
		}
	})

	t.Run("missing dsn", func(t *testing.T) {
		path := writeTempConfig(t, "project: t\nversion: 1\n")
		_, err := LoadProjectConfig(path)
		if err == nil || !strings.Contains(err.Error(), "database dsn is required") {
			t.Fatalf("expected database dsn is required error, got %v", err)
		}
	})

	t.Run("reach below melee", func(t *testing.T) {
		path := writeTempConfig(t, "project: t\nversion: 1\ndatabase:\n  dsn: \"sqlite://:memory:\"\nrange:\n  melee_max: 4\n  reach_max: 2\n")
		_, err := LoadProjectConfig(path)
		if err == nil || !strings.Contains(err.Error(), "reach_max must be at least melee_max") {
			t.Fatalf("expected reach_max must be at least melee_max error, got %v", err)
		}
	})

	t.Run("negative timeout", func(t *testing.T) {
		path := writeTempConfig(t, "project: t\nversion: 1\ndatabase:\n  dsn: \"sqlite://:memory:\"\nsettings:\n  damage_roll_timeout_ms: -5\n")
		_, err := LoadProjectConfig(path)
		if err == nil || !strings.Contains(err.Error(), "roll timeouts must not be negative") {
			t.Fatalf("expected roll timeouts must not be negative error, got %v", err)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "project: [\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestLoadProjectConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RULESAIDE_DSN", "postgres://localhost/rules")
	t.Setenv("RULESAIDE_ENFORCE_RANGE", "false")
	t.Setenv("RULESAIDE_RELAY_ADDR", "127.0.0.1:9000")

	path := writeTempConfig(t, "project: t\nversion: 1\n")
	cfg, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("expected env DSN to satisfy validation, got %v", err)
	}
	if cfg.Database.DSN != "postgres://localhost/rules" {
		t.Fatalf("unexpected dsn: %q", cfg.Database.DSN)
	}
	if cfg.Settings.RangeEnforced() {
		t.Fatalf("expected range enforcement overridden off")
	}
	if cfg.Relay.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected relay addr: %q", cfg.Relay.Addr)
	}
}

func TestLoadProjectConfig_BadEnv(t *testing.T) {
	t.Setenv("RULESAIDE_ENFORCE_TARGETS", "sometimes")
	path := writeTempConfig(t, "project: t\nversion: 1\ndatabase:\n  dsn: \"sqlite://:memory:\"\n")
	_, err := LoadProjectConfig(path)
	if err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Fatalf("expected env parse error, got %v", err)
	}
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rulesaide.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
