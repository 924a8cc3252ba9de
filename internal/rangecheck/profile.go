// Package rangecheck decides whether an attack is legal at a given distance.
package rangecheck

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryMelee     Category = "melee"
	CategoryLongMelee Category = "longMelee"
	CategoryThrown    Category = "thrown"
	CategoryRanged    Category = "ranged"
	CategoryTouch     Category = "touch"
)

const TraitReach = "reach"

// WeaponProfile is the range-relevant view of an item. BaseRange only matters
// for ranged and thrown categories.
type WeaponProfile struct {
	Name      string
	Category  Category
	BaseRange float64
	Traits    []string
}

// HasReach reports whether the profile itself grants reach. Callers may still
// grant reach from other sources when calling Validate.
func (p WeaponProfile) HasReach() bool {
	if p.Category == CategoryLongMelee {
		return true
	}
	for _, trait := range p.Traits {
		if strings.EqualFold(strings.TrimSpace(trait), TraitReach) {
			return true
		}
	}
	return false
}

func ParseCategory(value string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "melee":
		return CategoryMelee, nil
	case "longmelee", "long-melee", "long_melee":
		return CategoryLongMelee, nil
	case "thrown":
		return CategoryThrown, nil
	case "ranged":
		return CategoryRanged, nil
	case "touch":
		return CategoryTouch, nil
	default:
		return "", fmt.Errorf("unknown weapon category: %q", value)
	}
}
