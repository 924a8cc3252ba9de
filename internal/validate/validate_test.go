package validate

import (
	"testing"

	"rulesaide/internal/config"
	"rulesaide/internal/reminder"
)

func projectConfig() *config.ProjectConfig {
	return &config.ProjectConfig{
		Project: "test",
		Version: 1,
		Grid:    config.GridConfig{CellSize: 100, UnitPerCell: 2},
		Range:   config.RangeConfig{MeleeMax: 2, ReachMax: 4},
	}
}

func codes(report *Report) map[string]int {
	out := make(map[string]int)
	for _, issue := range report.Issues {
		out[issue.Code]++
	}
	return out
}

func TestRun_Clean(t *testing.T) {
	weapons := config.NewWeaponCatalog([]config.Weapon{
		{Name: "Longsword", Category: "melee"},
		{Name: "Glaive", Category: "melee", Traits: []string{"reach"}},
		{Name: "Shortbow", Category: "ranged", BaseRange: 6},
	})

	report, err := Run(projectConfig(), weapons, reminder.Builtin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", report.Issues)
	}
	if report.HasErrors() {
		t.Fatalf("expected no errors")
	}
}

func TestRun_Weapons(t *testing.T) {
	weapons := config.NewWeaponCatalog([]config.Weapon{
		{Name: "Trebuchet", Category: "siege"},
		{Name: "Sling", Category: "ranged"},
		{Name: "Javelin", Category: "thrown"},
		{Name: "Longbow", Category: "ranged", BaseRange: 10, Traits: []string{"Reach"}},
		{Name: "Pike", Category: "longMelee", Traits: []string{"reach"}},
	})

	report, err := Run(projectConfig(), weapons, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := codes(report)
	if got[codeUnknownCategory] != 1 {
		t.Fatalf("expected 1 unknown_category, got %v", got)
	}
	if got[codeMissingBaseRange] != 2 {
		t.Fatalf("expected 2 missing_base_range, got %v", got)
	}
	if got[codeReachMismatch] != 2 {
		t.Fatalf("expected 2 reach_mismatch, got %v", got)
	}
	if !report.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestRun_Reminders(t *testing.T) {
	catalog := reminder.NewCatalog([]reminder.Reminder{
		{Title: "Flanking", Trigger: reminder.TriggerAttackRoll, SourceFile: "a.md"},
		{Title: "flanking", Trigger: reminder.TriggerAttackRoll, SourceFile: "b.md"},
		{Title: "Flanking", Trigger: reminder.TriggerDamageRoll, SourceFile: "c.md"},
		{Title: "Initiative", Trigger: reminder.Trigger("initiative"), SourceFile: "d.md"},
	})

	report, err := Run(projectConfig(), nil, catalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := codes(report)
	if got[codeDuplicateReminder] != 1 {
		t.Fatalf("expected 1 duplicate_reminder, got %v", got)
	}
	if got[codeUnknownTrigger] != 1 {
		t.Fatalf("expected 1 unknown_trigger, got %v", got)
	}
	for _, issue := range report.Issues {
		if issue.Code == codeUnknownTrigger && issue.FilePath != "d.md" {
			t.Fatalf("expected file path on unknown trigger, got %+v", issue)
		}
	}
}

func TestRun_ReachOffGrid(t *testing.T) {
	tests := []struct {
		name     string
		reachMax float64
		want     int
	}{
		{"two cells", 4, 0},
		{"three cells", 6, 0},
		{"one cell", 2, 1},
		{"fractional", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := projectConfig()
			cfg.Range.ReachMax = tt.reachMax
			report, err := Run(cfg, nil, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := codes(report)[codeReachOffGrid]; got != tt.want {
				t.Fatalf("expected %d reach_off_grid, got %d", tt.want, got)
			}
		})
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if _, err := Run(nil, nil, nil); err == nil {
		t.Fatalf("expected error")
	}
}
