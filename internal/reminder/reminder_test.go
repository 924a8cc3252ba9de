package reminder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "combat", "flanking.md"), "---\ntitle: Flanking\ntrigger: attack_roll\n---\nFlanking grants +2.\n")
	writeFile(t, filepath.Join(root, "combat", "crits.md"), "---\ntitle: Crits\ntrigger: damage_roll\n---\nDouble dice.\n")
	writeFile(t, filepath.Join(root, "notes.md"), "plain notes\n")
	writeFile(t, filepath.Join(root, "broken.md"), "---\ntitle: Broken\n---\n")
	writeFile(t, filepath.Join(root, "drafts", "wip.md"), "---\ntitle: WIP\ntrigger: attack_roll\n---\n")
	writeFile(t, filepath.Join(root, "readme.txt"), "---\ntitle: Not markdown\ntrigger: attack_roll\n---\n")

	catalog, result, err := Load([]string{root}, []string{filepath.Join(root, "drafts")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Loaded != 2 || result.Skipped != 1 || len(result.Errors) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := catalog.For(TriggerAttackRoll); len(got) != 1 || got[0].Title != "Flanking" {
		t.Fatalf("unexpected attack reminders: %+v", got)
	}
	if got := catalog.For(TriggerRangeViolation); len(got) != 0 {
		t.Fatalf("expected no range reminders, got %+v", got)
	}
	if all := catalog.All(); len(all) != 2 || all[0].Title != "Crits" {
		t.Fatalf("expected title-sorted catalogue, got %+v", all)
	}
}

func TestLoad_MissingRoot(t *testing.T) {
	if _, _, err := Load([]string{filepath.Join(t.TempDir(), "nope")}, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRender(t *testing.T) {
	got := Render(Reminder{Title: "Reach", Body: "Strike one\nsquare further."})
	if got != "Rule reminder: Reach. Strike one square further." {
		t.Fatalf("unexpected render: %q", got)
	}
	if got := Render(Reminder{Title: "Bare"}); !strings.HasSuffix(got, "Bare") {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestIsKnownTrigger(t *testing.T) {
	if !IsKnownTrigger(" Attack_Roll ") {
		t.Fatalf("expected attack_roll to be known")
	}
	if IsKnownTrigger("initiative") {
		t.Fatalf("expected initiative to be unknown")
	}
}

func TestBuiltin(t *testing.T) {
	catalog := Builtin()
	if len(catalog.For(TriggerRangeViolation)) == 0 {
		t.Fatalf("expected a builtin range reminder")
	}
	var nilCatalog *Catalog
	if nilCatalog.For(TriggerAttackRoll) != nil || nilCatalog.Len() != 0 {
		t.Fatalf("expected nil catalogue to be empty")
	}
}
