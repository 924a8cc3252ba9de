package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"rulesaide/internal/rangecheck"
)

// WeaponCatalog is the table's item list as far as range rules care.
type WeaponCatalog struct {
	Version int      `yaml:"version"`
	Weapons []Weapon `yaml:"weapons"`

	index map[string]*Weapon
}

type Weapon struct {
	Name      string   `yaml:"name"`
	Category  string   `yaml:"category"`
	BaseRange float64  `yaml:"base_range"`
	Traits    []string `yaml:"traits"`
}

func LoadWeapons(path string) (*WeaponCatalog, error) {
	catalog, err := ReadWeapons(path)
	if err != nil {
		return nil, err
	}
	if err := validateWeapons(catalog); err != nil {
		return nil, fmt.Errorf("loading weapons: %w", err)
	}
	return catalog, nil
}

// ReadWeapons decodes a catalogue without validating it, so that a report
// can list every problem instead of stopping at the first.
func ReadWeapons(path string) (*WeaponCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading weapons: %w", err)
	}

	var catalog WeaponCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("loading weapons: %w", err)
	}

	catalog.buildIndex()
	return &catalog, nil
}

// NewWeaponCatalog builds an indexed catalogue from already validated weapons.
func NewWeaponCatalog(weapons []Weapon) *WeaponCatalog {
	catalog := &WeaponCatalog{Version: 1, Weapons: weapons}
	catalog.buildIndex()
	return catalog
}

func (c *WeaponCatalog) buildIndex() {
	c.index = make(map[string]*Weapon, len(c.Weapons))
	for i := range c.Weapons {
		weapon := &c.Weapons[i]
		c.index[strings.ToLower(strings.TrimSpace(weapon.Name))] = weapon
	}
}

func validateWeapons(c *WeaponCatalog) error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported version: %d", c.Version)
	}

	seen := make(map[string]struct{})
	for i, weapon := range c.Weapons {
		if strings.TrimSpace(weapon.Name) == "" {
			return fmt.Errorf("weapon %d name is required", i)
		}
		key := strings.ToLower(strings.TrimSpace(weapon.Name))
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate weapon name: %s", weapon.Name)
		}
		seen[key] = struct{}{}
		if _, err := rangecheck.ParseCategory(weapon.Category); err != nil {
			return fmt.Errorf("weapon %s: %w", weapon.Name, err)
		}
		if weapon.BaseRange < 0 {
			return fmt.Errorf("weapon %s has negative base_range", weapon.Name)
		}
	}
	return nil
}

func (c *WeaponCatalog) ByName(name string) (*Weapon, bool) {
	if c == nil {
		return nil, false
	}
	weapon, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	return weapon, ok
}

// Profile resolves a named weapon into its range profile.
func (c *WeaponCatalog) Profile(name string) (rangecheck.WeaponProfile, bool) {
	weapon, ok := c.ByName(name)
	if !ok {
		return rangecheck.WeaponProfile{}, false
	}
	profile, err := weapon.Profile()
	if err != nil {
		return rangecheck.WeaponProfile{}, false
	}
	return profile, true
}

func (w Weapon) Profile() (rangecheck.WeaponProfile, error) {
	category, err := rangecheck.ParseCategory(w.Category)
	if err != nil {
		return rangecheck.WeaponProfile{}, err
	}
	return rangecheck.WeaponProfile{
		Name:      w.Name,
		Category:  category,
		BaseRange: w.BaseRange,
		Traits:    append([]string(nil), w.Traits...),
	}, nil
}
