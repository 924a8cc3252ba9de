// Package encumbrance computes carried load against a character's capacity.
package encumbrance

import (
	"errors"
	"fmt"
)

type Level string

const (
	LevelUnencumbered Level = "unencumbered"
	LevelEncumbered   Level = "encumbered"
	LevelOverloaded   Level = "overloaded"
)

var ErrInvalidCapacity = errors.New("capacity must be positive")

type Item struct {
	Name     string  `json:"name" yaml:"name"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Quantity int     `json:"quantity,omitempty" yaml:"quantity"`
}

type Status struct {
	Load     float64 `json:"load"`
	Capacity float64 `json:"capacity"`
	Level    Level   `json:"level"`
}

// Compute sums item weights. A zero quantity counts as one item. Load above
// capacity is encumbered; above twice capacity is overloaded.
func Compute(items []Item, capacity float64) (Status, error) {
	if capacity <= 0 {
		return Status{}, ErrInvalidCapacity
	}

	var load float64
	for _, item := range items {
		if item.Weight < 0 || item.Quantity < 0 {
			return Status{}, fmt.Errorf("item %q has negative weight or quantity", item.Name)
		}
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		load += item.Weight * float64(qty)
	}

	status := Status{Load: load, Capacity: capacity, Level: LevelUnencumbered}
	switch {
	case load > capacity*2:
		status.Level = LevelOverloaded
	case load > capacity:
		status.Level = LevelEncumbered
	}
	return status, nil
}
