package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rulesaide/internal/store"
	"rulesaide/internal/store/sqlite"
)

func TestParseParamPairs(t *testing.T) {
	named, positional, err := parseParamPairs([]string{"victim = Brom", ":attacker=Kobold", "1=7", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if named["victim"] != "Brom" || named["attacker"] != "Kobold" {
		t.Fatalf("unexpected named params: %v", named)
	}
	if positional["1"] != "7" || len(positional) != 1 {
		t.Fatalf("unexpected positional params: %v", positional)
	}
	if _, _, err := parseParamPairs([]string{"novalue"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBindNamed(t *testing.T) {
	named := map[string]any{"victim": "grog", "attacker": "Kobold"}

	t.Run("sqlite", func(t *testing.T) {
		query, params, err := bindNamed("SELECT * FROM grudges WHERE victim_normalized = :victim AND (attacker = :attacker OR victim = :victim)", store.DriverSQLite, named, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "SELECT * FROM grudges WHERE victim_normalized = ?1 AND (attacker = ?2 OR victim = ?1)"
		if query != want {
			t.Fatalf("expected %q, got %q", want, query)
		}
		if len(params) != 2 || params["1"] != "grog" || params["2"] != "Kobold" {
			t.Fatalf("unexpected params: %v", params)
		}
	})

	t.Run("postgres keeps casts", func(t *testing.T) {
		query, params, err := bindNamed("SELECT amount::text FROM grudges WHERE victim_normalized = :victim", store.DriverPostgres, named, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if query != "SELECT amount::text FROM grudges WHERE victim_normalized = $1" {
			t.Fatalf("unexpected query: %q", query)
		}
		if params["1"] != "grog" {
			t.Fatalf("unexpected params: %v", params)
		}
	})

	t.Run("unbound", func(t *testing.T) {
		_, _, err := bindNamed("SELECT * FROM grudges WHERE attacker = :foe", store.DriverSQLite, named, nil)
		if err == nil || !strings.Contains(err.Error(), ":foe") {
			t.Fatalf("expected unbound parameter error, got %v", err)
		}
	})

	t.Run("mixed", func(t *testing.T) {
		_, _, err := bindNamed("SELECT * FROM grudges WHERE victim = :victim AND amount > ?", store.DriverSQLite, named, map[string]any{"1": "5"})
		if err == nil || !strings.Contains(err.Error(), "cannot mix") {
			t.Fatalf("expected mixed parameter error, got %v", err)
		}
	})

	t.Run("positional passthrough", func(t *testing.T) {
		positional := map[string]any{"1": "5"}
		query, params, err := bindNamed("SELECT * FROM grudges WHERE amount > ?", store.DriverSQLite, nil, positional)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if query != "SELECT * FROM grudges WHERE amount > ?" || params["1"] != "5" {
			t.Fatalf("expected query and params untouched, got %q %v", query, params)
		}
	})
}

func TestTableQuery(t *testing.T) {
	query, err := tableQuery("grudges", map[string]any{"victim": "grog"}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT victim, attacker, amount, critical, source_message, recorded_at FROM grudges WHERE victim_normalized = :victim ORDER BY recorded_at DESC LIMIT :limit"
	if query != want {
		t.Fatalf("expected %q, got %q", want, query)
	}

	query, err = tableQuery("Encumbrance", map[string]any{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query != "SELECT actor, load, capacity, level, updated_at FROM encumbrance ORDER BY actor" {
		t.Fatalf("unexpected query: %q", query)
	}

	if _, err := tableQuery("players", nil, 0); err == nil || !strings.Contains(err.Error(), "unknown table") {
		t.Fatalf("expected unknown table error, got %v", err)
	}
}

func TestGrudgeListing_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.New(ctx, "sqlite://"+filepath.Join(t.TempDir(), "rules.db"))
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close(ctx) })
	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}

	base := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	for i, input := range []store.GrudgeInput{
		{Victim: "Grog", Attacker: "Goblin Boss", Amount: 7},
		{Victim: "Grog", Attacker: "Kobold", Amount: 3},
		{Victim: "Pike", Attacker: "Kobold", Amount: 4},
	} {
		input.RecordedAt = base.Add(time.Duration(i) * time.Second)
		if _, err := db.RecordGrudge(ctx, input); err != nil {
			t.Fatalf("recording grudge: %v", err)
		}
	}

	named := map[string]any{"victim": store.Normalize("  GROG "), "limit": 1}
	query, err := tableQuery("grudges", named, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	query, params, err := bindNamed(query, store.DriverSQLite, named, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, err := db.RunSQL(ctx, query, params)
	if err != nil {
		t.Fatalf("running listing: %v", err)
	}
	if len(rows) != 1 || rows[0]["attacker"] != "Kobold" || rows[0]["victim"] != "Grog" {
		t.Fatalf("expected latest grudge against Grog, got %v", rows)
	}
}
