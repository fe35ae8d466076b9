package noise

import "math"

// Cellular is seeded Worley noise over an implicit point lattice. Each
// lattice cell holds one feature point at a position hashed from the cell
// coordinates and the seed, so sampling never allocates and is fully
// reproducible.
type Cellular struct {
	seed     int64
	cellSize float64
}

// NewCellular builds a Worley generator. Density is feature points per unit
// of input space; higher density means smaller cells. Non-positive density
// falls back to one point per 32 units.
func NewCellular(seed int64, density float64) *Cellular {
	cellSize := 32.0
	if density > 0 {
		cellSize = 1.0 / density
	}
	return &Cellular{seed: seed, cellSize: cellSize}
}

// Sample returns the distance to the nearest feature point (f1), the distance
// to the second nearest (f2), and a deterministic ID of the nearest point's
// cell, scanning the 3x3 lattice neighborhood around the query point.
// Distances are in units of the lattice cell size, so f1 is roughly in [0, 1].
// Typical uses: cellID selects a biome bucket, f2-f1 detects region edges.
func (c *Cellular) Sample(x, y float64) (f1, f2 float64, cellID uint32) {
	qx := x / c.cellSize
	qy := y / c.cellSize
	cx := int(math.Floor(qx))
	cy := int(math.Floor(qy))

	f1 = math.MaxFloat64
	f2 = math.MaxFloat64
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx := cx + dx
			ny := cy + dy
			h := cellHash(c.seed, nx, ny)
			px := float64(nx) + hashUnit(h)
			py := float64(ny) + hashUnit(h*6364136223846793005+1442695040888963407)

			ddx := qx - px
			ddy := qy - py
			d := math.Sqrt(ddx*ddx + ddy*ddy)
			if d < f1 {
				f2 = f1
				f1 = d
				cellID = uint32(h >> 32)
			} else if d < f2 {
				f2 = d
			}
		}
	}
	return f1, f2, cellID
}

// CellID returns only the nearest-cell ID at (x, y).
func (c *Cellular) CellID(x, y float64) uint32 {
	_, _, id := c.Sample(x, y)
	return id
}

// cellHash mixes lattice coordinates and the seed into a 64-bit hash.
func cellHash(seed int64, cx, cy int) uint64 {
	h := uint64(seed) ^ uint64(int64(cx)*341873128712+int64(cy)*132897987541)
	h = h*6364136223846793005 + 1442695040888963407
	h ^= h >> 29
	h = h * 0xbf58476d1ce4e5b9
	h ^= h >> 32
	return h
}

// hashUnit maps a hash to [0, 1).
func hashUnit(h uint64) float64 {
	return float64(h>>11) / float64(1<<53)
}
