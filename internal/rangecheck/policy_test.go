package rangecheck

import "testing"

func TestValidate_Melee(t *testing.T) {
	policy := DefaultPolicy()
	sword := WeaponProfile{Name: "Longsword", Category: CategoryMelee}

	tests := []struct {
		name     string
		distance float64
		reach    bool
		allowed  bool
	}{
		{name: "contact", distance: 0, allowed: true},
		{name: "one ring out without reach", distance: 4, allowed: false},
		{name: "one ring out with reach", distance: 4, reach: true, allowed: true},
		{name: "between contact and reach", distance: 3, reach: true, allowed: false},
		{name: "melee max is not a threshold", distance: 2, reach: false, allowed: false},
		{name: "beyond reach", distance: 6, reach: true, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := policy.Validate(tt.distance, sword, tt.reach)
			if outcome.Allowed != tt.allowed {
				t.Fatalf("Validate(%v, reach=%v) allowed=%v, want %v", tt.distance, tt.reach, outcome.Allowed, tt.allowed)
			}
			if !outcome.Allowed && outcome.Reason != ReasonMeleeTooFar {
				t.Fatalf("expected melee reason, got %q", outcome.Reason)
			}
		})
	}
}

func TestValidate_RangedDoublesBaseRange(t *testing.T) {
	policy := DefaultPolicy()
	bow := WeaponProfile{Name: "Shortbow", Category: CategoryRanged, BaseRange: 10}

	for d := 0.0; d <= 40; d += 0.5 {
		outcome := policy.Validate(d, bow, false)
		if outcome.Allowed != (d <= 20) {
			t.Fatalf("distance %v: allowed=%v", d, outcome.Allowed)
		}
		if !outcome.Allowed {
			if outcome.Reason != ReasonRangedTooFar {
				t.Fatalf("expected ranged reason, got %q", outcome.Reason)
			}
			if outcome.MaxRange != 20 || outcome.Distance != d {
				t.Fatalf("unexpected failure details: %+v", outcome)
			}
		}
	}
}

func TestValidate_Thrown(t *testing.T) {
	policy := DefaultPolicy()
	dagger := WeaponProfile{Name: "Dagger", Category: CategoryThrown, BaseRange: 6}

	t.Run("contact throw uses melee rule", func(t *testing.T) {
		if !policy.Validate(0, dagger, false).Allowed {
			t.Fatalf("expected contact throw to be allowed")
		}
	})

	t.Run("inside melee max but not contact", func(t *testing.T) {
		outcome := policy.Validate(2, dagger, false)
		if outcome.Allowed || outcome.Reason != ReasonMeleeTooFar {
			t.Fatalf("expected melee denial, got %+v", outcome)
		}
	})

	t.Run("reach widens the melee band", func(t *testing.T) {
		if !policy.Validate(4, dagger, true).Allowed {
			t.Fatalf("expected reach throw to be allowed")
		}
	})

	t.Run("beyond melee uses doubled range", func(t *testing.T) {
		if !policy.Validate(12, dagger, false).Allowed {
			t.Fatalf("expected throw at 12 to be allowed")
		}
		outcome := policy.Validate(14, dagger, false)
		if outcome.Allowed || outcome.Reason != ReasonRangedTooFar || outcome.MaxRange != 12 {
			t.Fatalf("expected ranged denial, got %+v", outcome)
		}
	})
}

func TestValidate_TouchIgnoresReach(t *testing.T) {
	policy := DefaultPolicy()
	touch := WeaponProfile{Name: "Shocking Grasp", Category: CategoryTouch}
	if !policy.Validate(0, touch, true).Allowed {
		t.Fatalf("expected touch in contact to be allowed")
	}
	if policy.Validate(4, touch, true).Allowed {
		t.Fatalf("expected touch at 4 to be denied")
	}
}

func TestHasReach(t *testing.T) {
	if !(WeaponProfile{Category: CategoryLongMelee}).HasReach() {
		t.Fatalf("expected long melee to have reach")
	}
	if !(WeaponProfile{Category: CategoryMelee, Traits: []string{"Reach"}}).HasReach() {
		t.Fatalf("expected reach trait to grant reach")
	}
	if (WeaponProfile{Category: CategoryMelee, Traits: []string{"finesse"}}).HasReach() {
		t.Fatalf("expected no reach")
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"melee":      CategoryMelee,
		"Long-Melee": CategoryLongMelee,
		"longMelee":  CategoryLongMelee,
		" thrown ":   CategoryThrown,
		"RANGED":     CategoryRanged,
		"touch":      CategoryTouch,
	}
	for input, want := range cases {
		got, err := ParseCategory(input)
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseCategory(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParseCategory("siege"); err == nil {
		t.Fatalf("expected error")
	}
}
