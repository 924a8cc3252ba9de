package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "memory", input: "sqlite://:memory:", expected: ":memory:"},
		{name: "absolute", input: "sqlite:///var/lib/rules.db", expected: "/var/lib/rules.db"},
		{name: "explicit relative", input: "sqlite://./rules.db", expected: "./rules.db"},
		{name: "parent relative", input: "sqlite://../rules.db", expected: "../rules.db"},
		{name: "bare relative", input: "sqlite://rules.db", expected: "./rules.db"},
		{name: "escaped with query", input: "sqlite://my%20table.db?_pragma=busy_timeout(500)", expected: "./my table.db?_pragma=busy_timeout(500)"},
		{name: "wrong scheme", input: "postgres://localhost/rules", wantErr: true},
		{name: "empty path", input: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDSN(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("parseDSN(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
