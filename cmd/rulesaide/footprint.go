package main

import (
	"fmt"
	"strconv"
	"strings"

	"rulesaide/internal/geometry"
)

// parseFootprint reads "x,y,width,height" with x and y in scene units.
func parseFootprint(value string) (geometry.Footprint, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return geometry.Footprint{}, fmt.Errorf("invalid footprint %q: expected x,y,width,height", value)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Footprint{}, fmt.Errorf("invalid footprint x %q: %w", parts[0], err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Footprint{}, fmt.Errorf("invalid footprint y %q: %w", parts[1], err)
	}
	width, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return geometry.Footprint{}, fmt.Errorf("invalid footprint width %q: %w", parts[2], err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return geometry.Footprint{}, fmt.Errorf("invalid footprint height %q: %w", parts[3], err)
	}
	return geometry.Footprint{X: x, Y: y, Width: width, Height: height}, nil
}
