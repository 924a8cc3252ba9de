// Package validate reports consistency problems across a project file, its
// weapon catalogue and its rule reminders.
package validate

import (
	"fmt"
	"math"
	"strings"

	"rulesaide/internal/config"
	"rulesaide/internal/rangecheck"
	"rulesaide/internal/reminder"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeUnknownTrigger    = "unknown_trigger"
	codeDuplicateReminder = "duplicate_reminder"
	codeMissingBaseRange  = "missing_base_range"
	codeReachMismatch     = "reach_mismatch"
	codeUnknownCategory   = "unknown_category"
	codeReachOffGrid      = "reach_off_grid"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Subject  string
	FilePath string
}

type Report struct {
	Issues []Issue
}

// HasErrors reports whether any issue is an error rather than a warning.
func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

func Run(cfg *config.ProjectConfig, weapons *config.WeaponCatalog, reminders *reminder.Catalog) (*Report, error) {
	if cfg == nil {
		return nil, fmt.Errorf("project config is required")
	}

	issues := make([]Issue, 0)
	issues = append(issues, validateGrid(cfg)...)
	if weapons != nil {
		for _, weapon := range weapons.Weapons {
			issues = append(issues, validateWeapon(weapon)...)
		}
	}
	issues = append(issues, validateReminders(reminders)...)

	return &Report{Issues: issues}, nil
}

// validateGrid checks that the reach distance is one the grid can produce.
// Beyond contact, distances are whole cells of at least two times unit per
// cell, so any other reach_max can never be matched.
func validateGrid(cfg *config.ProjectConfig) []Issue {
	unit := cfg.Grid.UnitPerCell
	if unit <= 0 {
		return nil
	}
	cells := cfg.Range.ReachMax / unit
	if cells >= 2 && cells == math.Trunc(cells) {
		return nil
	}
	return []Issue{{
		Severity: SeverityWarn,
		Code:     codeReachOffGrid,
		Message:  fmt.Sprintf("reach_max %g is not a distance the grid produces with unit_per_cell %g", cfg.Range.ReachMax, unit),
		Subject:  "range.reach_max",
	}}
}

func validateWeapon(weapon config.Weapon) []Issue {
	category, err := rangecheck.ParseCategory(weapon.Category)
	if err != nil {
		return []Issue{{
			Severity: SeverityError,
			Code:     codeUnknownCategory,
			Message:  fmt.Sprintf("unknown weapon category: %s", weapon.Category),
			Subject:  weapon.Name,
		}}
	}

	var issues []Issue
	if (category == rangecheck.CategoryRanged || category == rangecheck.CategoryThrown) && weapon.BaseRange <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeMissingBaseRange,
			Message:  fmt.Sprintf("%s weapon needs a positive base_range", category),
			Subject:  weapon.Name,
		})
	}

	if hasReachTrait(weapon.Traits) && (category == rangecheck.CategoryRanged || category == rangecheck.CategoryTouch) {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeReachMismatch,
			Message:  fmt.Sprintf("reach trait has no effect on %s weapons", category),
			Subject:  weapon.Name,
		})
	} else if category == rangecheck.CategoryLongMelee && hasReachTrait(weapon.Traits) {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeReachMismatch,
			Message:  "longMelee weapons already have reach",
			Subject:  weapon.Name,
		})
	}
	return issues
}

func validateReminders(catalog *reminder.Catalog) []Issue {
	var issues []Issue
	seen := make(map[string]string)
	for _, r := range catalog.All() {
		if !reminder.IsKnownTrigger(string(r.Trigger)) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeUnknownTrigger,
				Message:  fmt.Sprintf("unknown trigger: %s", r.Trigger),
				Subject:  r.Title,
				FilePath: r.SourceFile,
			})
			continue
		}
		key := string(r.Trigger) + "\x00" + strings.ToLower(strings.TrimSpace(r.Title))
		if first, ok := seen[key]; ok {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeDuplicateReminder,
				Message:  fmt.Sprintf("duplicate reminder for %s, first defined in %s", r.Trigger, first),
				Subject:  r.Title,
				FilePath: r.SourceFile,
			})
			continue
		}
		seen[key] = r.SourceFile
	}
	return issues
}

func hasReachTrait(traits []string) bool {
	for _, trait := range traits {
		if strings.EqualFold(strings.TrimSpace(trait), rangecheck.TraitReach) {
			return true
		}
	}
	return false
}
