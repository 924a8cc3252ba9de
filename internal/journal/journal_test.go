package journal

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

func TestWriter_RecordAndRead(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "session")
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	w.now = func() time.Time { return at }

	if _, err := w.Record("outcome", map[string]any{"allowed": false}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := w.Record("reaction", map[string]any{"critical": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	path := filepath.Join(dir, "session-2026-03-14-09.jsonl.zst")
	entries, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].ID != second.ID || entries[1].Kind != "reaction" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
	var payload map[string]bool
	if err := json.Unmarshal(entries[1].Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if !payload["critical"] {
		t.Fatalf("expected critical payload, got %v", payload)
	}
}

func TestWriter_RotatesHourly(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "session")
	at := time.Date(2026, 3, 14, 9, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return at }

	if _, err := w.Record("outcome", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	at = at.Add(2 * time.Minute)
	if _, err := w.Record("outcome", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	files, err := Files(dir, "session")
	if err != nil {
		t.Fatalf("files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if filepath.Base(files[0]) != "session-2026-03-14-09.jsonl.zst" {
		t.Fatalf("expected oldest file first, got %s", files[0])
	}
}

func TestWriter_AppendsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		w := NewWriter(dir, "session")
		w.now = func() time.Time { return at }
		if _, err := w.Record("outcome", i); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	entries, err := ReadFile(filepath.Join(dir, "session-2026-03-14-09.jsonl.zst"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries across frames, got %d", len(entries))
	}
}
