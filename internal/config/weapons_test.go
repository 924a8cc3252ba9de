package config

import (
	"os"
	"path/filepath"
	"testing"

	"rulesaide/internal/rangecheck"
)

func TestLoadWeapons(t *testing.T) {
	t.Run("valid catalogue loads", func(t *testing.T) {
		catalog, err := LoadWeapons(filepath.Join("testdata", "valid_weapons.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(catalog.Weapons) != 4 {
			t.Fatalf("expected 4 weapons, got %d", len(catalog.Weapons))
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		path := writeTempWeapons(t, "version: 1\nweapons:\n  - name: Trebuchet\n    category: siege\n")
		if _, err := LoadWeapons(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("duplicate names", func(t *testing.T) {
		path := writeTempWeapons(t, "version: 1\nweapons:\n  - name: Club\n    category: melee\n  - name: club\n    category: melee\n")
		if _, err := LoadWeapons(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("negative range", func(t *testing.T) {
		path := writeTempWeapons(t, "version: 1\nweapons:\n  - name: Sling\n    category: ranged\n    base_range: -1\n")
		if _, err := LoadWeapons(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestWeaponCatalogProfile(t *testing.T) {
	catalog, err := LoadWeapons(filepath.Join("testdata", "valid_weapons.yaml"))
	if err != nil {
		t.Fatalf("loading weapons: %v", err)
	}

	t.Run("case-insensitive lookup", func(t *testing.T) {
		profile, ok := catalog.Profile("  GLAIVE ")
		if !ok {
			t.Fatalf("expected to find glaive")
		}
		if !profile.HasReach() {
			t.Fatalf("expected glaive to have reach")
		}
	})

	t.Run("ranged profile", func(t *testing.T) {
		profile, ok := catalog.Profile("Longbow")
		if !ok || profile.Category != rangecheck.CategoryRanged || profile.BaseRange != 30 {
			t.Fatalf("unexpected profile: %+v", profile)
		}
	})

	t.Run("unknown weapon", func(t *testing.T) {
		if _, ok := catalog.Profile("Lightsaber"); ok {
			t.Fatalf("expected miss")
		}
		var empty *WeaponCatalog
		if _, ok := empty.ByName("Dagger"); ok {
			t.Fatalf("expected nil catalogue to miss")
		}
	})
}

func writeTempWeapons(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "weapons.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp weapons: %v", err)
	}
	return path
}
