package sand

import (
	"strconv"

	"sandfall/internal/material"
)

// Params holds the tunable simulation and brush settings.
type Params struct {
	BrushRadius   int
	BrushMaterial int

	// FlowChance is the probability a blocked fluid attempts a lateral move.
	FlowChance float64
}

// Config controls the sand simulation dimensions and world seed.
type Config struct {
	Width     int
	Height    int
	ChunkSize int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:     256,
		Height:    256,
		ChunkSize: 32,
		Seed:      1337,
		Params: Params{
			BrushRadius:   4,
			BrushMaterial: int(material.Sand),
			FlowChance:    1.0,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["chunk"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ChunkSize = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["brush_radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.BrushRadius = parsed
		}
	}
	if v, ok := cfg["brush_material"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed < 256 {
			c.Params.BrushMaterial = parsed
		}
	}
	if v, ok := cfg["flow_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.FlowChance = parsed
		}
	}
	return c
}
