// Package terrain carves procedural worlds into a chunked cell grid. Noise is
// always sampled at world coordinates while cells are written at grid
// coordinates, so a chunk generates identically wherever the streaming window
// currently places it.
package terrain

import "sandfall/internal/material"

// Kind is the biome discriminant used to select carve and fill strategies.
type Kind int

const (
	KindCaverns Kind = iota
	KindSediment
	KindMolten
	KindCrystal
	KindFungal
)

// Biome is a static terrain parameter record. Biomes are immutable after
// definition; the generator selects one per chunk and only ever reads it.
type Biome struct {
	Kind Kind
	Name string

	// Terrain materials.
	Base      uint8
	Secondary uint8
	Surface   uint8
	CaveFill  uint8

	// Cave carving.
	CaveFreq      float64
	CaveThreshold float64
	CaveOctaves   int
	SmoothPasses  int

	// Surface shaping.
	SurfaceFreq      float64
	SurfaceVariation float64

	// Fluids.
	PrimaryFluid   uint8
	SecondaryFluid uint8
	PoolChance     float64
	PoolRadiusMin  int
	PoolRadiusMax  int

	// Features.
	StalactiteChance   float64
	StalactiteMaterial uint8
	VeinChance         float64
	VeinThreshold      float64
	VeinMaterial       uint8
	PlatformChance     float64
	PlatformMaterial   uint8

	Difficulty int
}

// Builtins returns the standard biome set, ordered by difficulty.
func Builtins() []*Biome {
	return []*Biome{
		{
			Kind: KindCaverns, Name: "caverns",
			Base: material.Rock, Secondary: material.Dirt,
			Surface: material.Grass, CaveFill: material.Empty,
			CaveFreq: 0.045, CaveThreshold: 0.62, CaveOctaves: 4, SmoothPasses: 2,
			SurfaceFreq: 0.012, SurfaceVariation: 14,
			PrimaryFluid: material.Water, SecondaryFluid: material.Oil,
			PoolChance: 0.45, PoolRadiusMin: 3, PoolRadiusMax: 6,
			StalactiteChance: 0.10, StalactiteMaterial: material.Rock,
			VeinChance: 0.7, VeinThreshold: 0.68, VeinMaterial: material.Coal,
			PlatformChance: 0.35, PlatformMaterial: material.Wood,
			Difficulty: 1,
		},
		{
			Kind: KindSediment, Name: "sediment",
			Base: material.Stone, Secondary: material.Sand,
			Surface: material.Sand, CaveFill: material.Empty,
			CaveFreq: 0.035, CaveThreshold: 0.66, CaveOctaves: 3, SmoothPasses: 1,
			SurfaceFreq: 0.008, SurfaceVariation: 22,
			PrimaryFluid: material.Water, SecondaryFluid: material.Oil,
			PoolChance: 0.3, PoolRadiusMin: 2, PoolRadiusMax: 5,
			StalactiteChance: 0.04, StalactiteMaterial: material.Stone,
			VeinChance: 0.5, VeinThreshold: 0.72, VeinMaterial: material.Gold,
			PlatformChance: 0.2, PlatformMaterial: material.Wood,
			Difficulty: 2,
		},
		{
			Kind: KindCrystal, Name: "crystal",
			Base: material.Stone, Secondary: material.Rock,
			Surface: material.Ice, CaveFill: material.Empty,
			CaveFreq: 0.05, CaveThreshold: 0.6, CaveOctaves: 4, SmoothPasses: 2,
			SurfaceFreq: 0.015, SurfaceVariation: 10,
			PrimaryFluid: material.Water, SecondaryFluid: material.Acid,
			PoolChance: 0.35, PoolRadiusMin: 2, PoolRadiusMax: 4,
			StalactiteChance: 0.18, StalactiteMaterial: material.Crystal,
			VeinChance: 0.8, VeinThreshold: 0.64, VeinMaterial: material.Crystal,
			PlatformChance: 0.15, PlatformMaterial: material.Platform,
			Difficulty: 3,
		},
		{
			Kind: KindFungal, Name: "fungal",
			Base: material.Dirt, Secondary: material.Rock,
			Surface: material.Grass, CaveFill: material.Empty,
			CaveFreq: 0.04, CaveThreshold: 0.58, CaveOctaves: 5, SmoothPasses: 3,
			SurfaceFreq: 0.02, SurfaceVariation: 8,
			PrimaryFluid: material.Acid, SecondaryFluid: material.Water,
			PoolChance: 0.5, PoolRadiusMin: 3, PoolRadiusMax: 7,
			StalactiteChance: 0.12, StalactiteMaterial: material.Wood,
			VeinChance: 0.6, VeinThreshold: 0.7, VeinMaterial: material.Coal,
			PlatformChance: 0.4, PlatformMaterial: material.Wood,
			Difficulty: 3,
		},
		{
			Kind: KindMolten, Name: "molten",
			Base: material.Stone, Secondary: material.Rock,
			Surface: material.Rock, CaveFill: material.Empty,
			CaveFreq: 0.03, CaveThreshold: 0.55, CaveOctaves: 4, SmoothPasses: 1,
			SurfaceFreq: 0.01, SurfaceVariation: 18,
			PrimaryFluid: material.Lava, SecondaryFluid: material.Lava,
			PoolChance: 0.55, PoolRadiusMin: 3, PoolRadiusMax: 8,
			StalactiteChance: 0.08, StalactiteMaterial: material.Stone,
			VeinChance: 0.75, VeinThreshold: 0.66, VeinMaterial: material.Iron,
			PlatformChance: 0.1, PlatformMaterial: material.Stone,
			Difficulty: 4,
		},
	}
}
