package sand

import (
	"image/color"

	"sandfall/internal/material"
	"sandfall/pkg/grid"
)

// Palette maps material IDs to display colors.
func (w *World) Palette() []color.RGBA {
	return material.Palette()
}

// Shader returns a per-cell shader that breaks up flat material colors with
// a small position-keyed brightness jitter and darkens wet powder.
func Shader() grid.Shader {
	return func(m uint8, x, y int, base color.RGBA, c grid.Cell) color.RGBA {
		if m == material.Empty {
			return base
		}
		h := uint32(x)*2654435761 ^ uint32(y)*2246822519
		jitter := int(h>>28) - 8
		out := base
		out.R = dim(out.R, jitter)
		out.G = dim(out.G, jitter)
		out.B = dim(out.B, jitter)
		if c.HasFlags(grid.FlagWet) {
			out.R = dim(out.R, -24)
			out.G = dim(out.G, -24)
		}
		return out
	}
}

func dim(v uint8, delta int) uint8 {
	n := int(v) + delta
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
