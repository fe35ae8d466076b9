package terrain

import (
	"sandfall/internal/material"
	"sandfall/pkg/core"
	"sandfall/pkg/grid"
	"sandfall/pkg/noise"
)

// Noise seed salts keep the generator's noise fields independent.
const (
	saltSurface = 11
	saltCave    = 23
	saltVein    = 37
	saltBiome   = 53
)

const (
	// surfaceBaseY is the world Y of the nominal terrain surface.
	surfaceBaseY = 48.0
	// biomeRegionSize is the rough diameter of one biome region in world pixels.
	biomeRegionSize = 384.0

	poolAttempts     = 6
	platformAttempts = 4
)

// Generator carves terrain into a grid. It owns a noise cache so repeated
// chunk generation for the same seed reuses permutation tables; independent
// worlds should construct independent generators.
type Generator struct {
	seed    int64
	cache   *noise.Cache
	biomes  []*Biome
	regions *noise.Cellular
}

// NewGenerator builds a generator for a world seed. A nil or empty biome
// slice falls back to Builtins().
func NewGenerator(seed int64, biomes []*Biome) *Generator {
	if len(biomes) == 0 {
		biomes = Builtins()
	}
	cache := noise.NewCache()
	return &Generator{
		seed:    seed,
		cache:   cache,
		biomes:  biomes,
		regions: cache.Cellular(seed+saltBiome, 1.0/biomeRegionSize),
	}
}

// Seed returns the world seed the generator was built with.
func (g *Generator) Seed() int64 { return g.seed }

// BiomeAt selects the biome for a world chunk. Selection samples the Worley
// region field at the chunk center, so neighboring chunks inside the same
// region share a biome.
func (g *Generator) BiomeAt(worldChunkX, worldChunkY, chunkSize int) *Biome {
	cx := (float64(worldChunkX) + 0.5) * float64(chunkSize)
	cy := (float64(worldChunkY) + 0.5) * float64(chunkSize)
	id := g.regions.CellID(cx, cy)
	return g.biomes[int(id)%len(g.biomes)]
}

// SurfaceY returns the terrain surface height in world pixels for a world
// column, shaped by the biome's surface noise.
func (g *Generator) SurfaceY(wx float64, b *Biome) float64 {
	n := g.cache.Gradient(g.seed+saltSurface, noise.DefaultOptions())
	return surfaceBaseY + (n.FBM(wx*b.SurfaceFreq, 0)-0.5)*2*b.SurfaceVariation
}

// GenerateWorld fills the whole grid as a standalone world whose world chunk
// coordinates coincide with its grid chunk coordinates.
func (g *Generator) GenerateWorld(gr *grid.Grid) {
	for cy := 0; cy < gr.ChunkCountY; cy++ {
		for cx := 0; cx < gr.ChunkCountX; cx++ {
			g.GenerateChunk(gr, cx, cy, cx, cy)
		}
	}
}

// GenerateChunk carves one chunk. World coordinates drive every noise sample,
// grid coordinates drive every cell write; keeping the two apart is what lets
// the streaming window relocate a chunk without visible seams. The generated
// chunk is marked active and dirty.
func (g *Generator) GenerateChunk(gr *grid.Grid, worldCX, worldCY, gridCX, gridCY int) {
	if gridCX < 0 || gridCX >= gr.ChunkCountX || gridCY < 0 || gridCY >= gr.ChunkCountY {
		return
	}
	cs := gr.ChunkSize
	gx0 := gridCX * cs
	gy0 := gridCY * cs
	w := cs
	if gx0+w > gr.W {
		w = gr.W - gx0
	}
	h := cs
	if gy0+h > gr.H {
		h = gr.H - gy0
	}

	b := g.BiomeAt(worldCX, worldCY, cs)
	shape, fill := strategiesFor(b.Kind)
	caveOpts := noise.DefaultOptions()
	caveOpts.Octaves = b.CaveOctaves
	caveNoise := g.cache.Gradient(g.seed+saltCave, caveOpts)

	wx0 := worldCX * cs
	wy0 := worldCY * cs

	for x := 0; x < w; x++ {
		wx := float64(wx0 + x)
		surface := g.SurfaceY(wx, b)
		for y := 0; y < h; y++ {
			wy := float64(wy0 + y)
			gx := gx0 + x
			gy := gy0 + y

			depth := wy - surface
			if depth < 0 {
				gr.SetXY(gx, gy, grid.MakeMaterial(material.Empty))
				continue
			}
			if shape.Carve(caveNoise, wx, wy, b, depth) {
				gr.SetXY(gx, gy, grid.MakeMaterial(b.CaveFill))
				continue
			}
			gr.SetXY(gx, gy, grid.MakeMaterial(fill.Material(caveNoise, wx, wy, b, depth)))
		}
	}

	smoothRegion(gr, gx0, gy0, w, h, b.SmoothPasses, b.Base)

	rng := core.NewRNG(chunkSeed(g.seed, worldCX, worldCY))
	g.placeVeins(gr, b, gx0, gy0, w, h, wx0, wy0, rng)
	g.growSpikes(gr, b, gx0, gy0, w, h, rng)
	g.placePools(gr, b, gx0, gy0, w, h, rng)
	g.placePlatforms(gr, b, gx0, gy0, w, h, rng)

	chunk := gridCY*gr.ChunkCountX + gridCX
	gr.MarkChunkActive(chunk)
	gr.MarkChunkDirty(chunk)
}

// chunkSeed derives a per-chunk seed from the world seed and world chunk
// coordinates, so feature placement is stable under streaming.
func chunkSeed(seed int64, cx, cy int) int64 {
	return seed ^ (int64(cx)*341873128712 + int64(cy)*132897987541)
}

// placeVeins substitutes the vein material into solid cells where the vein
// noise field exceeds the biome threshold.
func (g *Generator) placeVeins(gr *grid.Grid, b *Biome, gx0, gy0, w, h, wx0, wy0 int, rng *core.RNG) {
	if !rng.Chance(b.VeinChance) {
		return
	}
	n := g.cache.Gradient(g.seed+saltVein, noise.DefaultOptions())
	const veinFreq = 0.09
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := gr.GetXY(gx0+x, gy0+y)
			m := cell.Material()
			if m != b.Base && m != b.Secondary {
				continue
			}
			if n.FBM(float64(wx0+x)*veinFreq, float64(wy0+y)*veinFreq) > b.VeinThreshold {
				gr.SetXY(gx0+x, gy0+y, grid.MakeMaterial(b.VeinMaterial))
			}
		}
	}
}

// growSpikes grows stalactites down from solid-over-empty transitions and
// stalagmites up from empty-over-solid transitions. Candidates are collected
// before any growth so new spikes never seed further spikes in the same pass.
func (g *Generator) growSpikes(gr *grid.Grid, b *Biome, gx0, gy0, w, h int, rng *core.RNG) {
	type spike struct {
		x, y int
		down bool
	}
	var candidates []spike
	for x := 0; x < w; x++ {
		for y := 0; y < h-1; y++ {
			gx := gx0 + x
			gy := gy0 + y
			above := material.IsSolid(gr.GetXY(gx, gy).Material())
			below := material.IsSolid(gr.GetXY(gx, gy+1).Material())
			if above && !below && gr.GetXY(gx, gy+1).Empty() {
				candidates = append(candidates, spike{x: gx, y: gy + 1, down: true})
			} else if !above && below && gr.GetXY(gx, gy).Empty() {
				candidates = append(candidates, spike{x: gx, y: gy, down: false})
			}
		}
	}

	for _, s := range candidates {
		if !rng.Chance(b.StalactiteChance) {
			continue
		}
		length := rng.IntRange(2, 7)
		x, y := s.x, s.y
		for i := 0; i < length; i++ {
			// Growth stops at the chunk rect so generation stays chunk-local.
			if y < gy0 || y >= gy0+h {
				break
			}
			if !gr.GetXY(x, y).Empty() {
				break
			}
			gr.SetXY(x, y, grid.MakeMaterial(b.StalactiteMaterial))
			if s.down {
				y++
			} else {
				y--
			}
		}
	}
}

// placePools fills circular fluid pools at random candidate points. Each
// attempt is validated (point empty, solid floor beneath) and silently
// dropped on failure; this is a best-effort aesthetic pass.
func (g *Generator) placePools(gr *grid.Grid, b *Biome, gx0, gy0, w, h int, rng *core.RNG) {
	for attempt := 0; attempt < poolAttempts; attempt++ {
		if !rng.Chance(b.PoolChance) {
			continue
		}
		r := rng.IntRange(b.PoolRadiusMin, b.PoolRadiusMax)
		// The pool and its floor check must fit inside the chunk rect, so
		// placement never depends on neighbors that may not be generated yet.
		if w < 2*r+2 || h < 2*r+3 {
			continue
		}
		px := gx0 + rng.IntRange(r, w-1-r)
		py := gy0 + rng.IntRange(r, h-2-r)
		if !gr.GetXY(px, py).Empty() {
			continue
		}
		if !material.IsSolid(gr.GetXY(px, py+r+1).Material()) {
			continue
		}
		fluid := b.PrimaryFluid
		if rng.Chance(0.25) {
			fluid = b.SecondaryFluid
		}
		rr := r * r
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > rr {
					continue
				}
				if gr.GetXY(px+dx, py+dy).Empty() {
					gr.SetXY(px+dx, py+dy, grid.MakeMaterial(fluid))
				}
			}
		}
	}
}

// placePlatforms lays horizontal platforms into fully empty pockets.
func (g *Generator) placePlatforms(gr *grid.Grid, b *Biome, gx0, gy0, w, h int, rng *core.RNG) {
	for attempt := 0; attempt < platformAttempts; attempt++ {
		if !rng.Chance(b.PlatformChance) {
			continue
		}
		pw := rng.IntRange(6, 12)
		if pw >= w {
			pw = w - 1
		}
		px := gx0 + rng.IntRange(0, w-1-pw)
		py := gy0 + rng.IntRange(1, h-2)

		clear := true
		for dx := 0; dx < pw && clear; dx++ {
			for dy := 0; dy < 2; dy++ {
				if !gr.GetXY(px+dx, py+dy).Empty() {
					clear = false
					break
				}
			}
		}
		if !clear {
			continue
		}
		for dx := 0; dx < pw; dx++ {
			gr.SetXY(px+dx, py, grid.MakeMaterial(b.PlatformMaterial))
		}
	}
}
