package store

import "time"

type GrudgeInput struct {
	Victim        string
	Attacker      string
	Amount        int
	Critical      bool
	SourceMessage string
	RecordedAt    time.Time
}

type GrudgeEntry struct {
	ID            string    `json:"id"`
	Victim        string    `json:"victim"`
	Attacker      string    `json:"attacker"`
	Amount        int       `json:"amount"`
	Critical      bool      `json:"critical"`
	SourceMessage string    `json:"source_message,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// GrudgeTotal aggregates everything one attacker has done to a victim.
type GrudgeTotal struct {
	Attacker  string `json:"attacker"`
	Total     int    `json:"total"`
	Hits      int    `json:"hits"`
	Criticals int    `json:"criticals"`
}

type EncumbranceSnapshot struct {
	Actor     string    `json:"actor"`
	Load      float64   `json:"load"`
	Capacity  float64   `json:"capacity"`
	Level     string    `json:"level"`
	UpdatedAt time.Time `json:"updated_at"`
}
