package classify

import (
	"fmt"
	"regexp"
)

// Markers lists the regular expressions recognised in raw event text. Every
// field may be overridden from configuration; empty fields fall back to the
// defaults.
type Markers struct {
	AttackRoll        []string `yaml:"attack_roll" json:"attack_roll"`
	DamageRoll        []string `yaml:"damage_roll" json:"damage_roll"`
	DamageApplication []string `yaml:"damage_application" json:"damage_application"`
	Success           []string `yaml:"success" json:"success"`
	// DamageSuccess plays the role of Success for damage rolls and
	// applications, which carry a total rather than a hit/miss outcome.
	DamageSuccess []string `yaml:"damage_success" json:"damage_success"`
	Failure       []string `yaml:"failure" json:"failure"`
	Critical      []string `yaml:"critical" json:"critical"`

	// Capture patterns: the first submatch is used.
	Actor  []string `yaml:"actor" json:"actor"`
	Target []string `yaml:"target" json:"target"`
	Amount []string `yaml:"amount" json:"amount"`
}

func DefaultMarkers() Markers {
	return Markers{
		AttackRoll: []string{
			`data-roll-type="attack"`,
			`(?i)\battack roll\b`,
		},
		DamageRoll: []string{
			`data-roll-type="damage"`,
			`(?i)\bdamage roll\b`,
		},
		DamageApplication: []string{
			`data-action="apply-damage"`,
			`(?i)\btakes \d+ damage\b`,
		},
		Success: []string{
			`data-outcome="(success|critical-success)"`,
			`(?i)\b(critical )?success\b`,
		},
		DamageSuccess: []string{
			`data-total="-?\d+"`,
			`(?i)\btakes \d+ damage\b`,
		},
		Failure: []string{
			`data-outcome="(failure|critical-failure)"`,
			`(?i)\bfail(ure|ed)?\b`,
		},
		Critical: []string{
			`data-critical="true"`,
			`(?i)\bcritical (success|hit)\b`,
		},
		Actor: []string{
			`data-actor-id="([^"]+)"`,
		},
		Target: []string{
			`data-target-id="([^"]+)"`,
		},
		Amount: []string{
			`data-total="(-?\d+)"`,
			`(?i)\btakes (\d+) damage\b`,
		},
	}
}

// Merge returns m with empty fields filled from defaults.
func (m Markers) Merge(defaults Markers) Markers {
	pick := func(value, fallback []string) []string {
		if len(value) == 0 {
			return fallback
		}
		return value
	}
	return Markers{
		AttackRoll:        pick(m.AttackRoll, defaults.AttackRoll),
		DamageRoll:        pick(m.DamageRoll, defaults.DamageRoll),
		DamageApplication: pick(m.DamageApplication, defaults.DamageApplication),
		Success:           pick(m.Success, defaults.Success),
		DamageSuccess:     pick(m.DamageSuccess, defaults.DamageSuccess),
		Failure:           pick(m.Failure, defaults.Failure),
		Critical:          pick(m.Critical, defaults.Critical),
		Actor:             pick(m.Actor, defaults.Actor),
		Target:            pick(m.Target, defaults.Target),
		Amount:            pick(m.Amount, defaults.Amount),
	}
}

type patternSet []*regexp.Regexp

func compileSet(field string, patterns []string) (patternSet, error) {
	set := make(patternSet, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling %s marker %q: %w", field, pattern, err)
		}
		set = append(set, re)
	}
	return set, nil
}

func (s patternSet) match(text string) bool {
	for _, re := range s {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func (s patternSet) capture(text string) (string, bool) {
	for _, re := range s {
		groups := re.FindStringSubmatch(text)
		if len(groups) > 1 && groups[1] != "" {
			return groups[1], true
		}
	}
	return "", false
}
