// Command worldgen generates a world headlessly, optionally settles it for a
// number of simulation steps, writes a PNG snapshot and prints material and
// biome statistics.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"sort"

	"sandfall/internal/material"
	"sandfall/internal/render"
	"sandfall/internal/sims/sand"
)

func main() {
	cfg := sand.DefaultConfig()
	out := "world.png"
	steps := 0
	flat := false
	flag.IntVar(&cfg.Width, "w", 512, "grid width in cells")
	flag.IntVar(&cfg.Height, "h", 256, "grid height in cells")
	flag.IntVar(&cfg.ChunkSize, "chunk", cfg.ChunkSize, "chunk size in cells")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&out, "out", out, "output PNG path")
	flag.IntVar(&steps, "steps", steps, "simulation steps to run before export")
	flag.BoolVar(&flat, "flat", flat, "disable the per-cell shader")
	flag.Parse()

	world := sand.NewWithConfig(cfg)
	for i := 0; i < steps; i++ {
		world.Step()
	}

	g := world.Grid()
	shader := sand.Shader()
	if flat {
		shader = nil
	}
	img := render.Snapshot(g, world.Palette(), shader)

	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("create %s: %v", out, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		log.Fatalf("encode %s: %v", out, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close %s: %v", out, err)
	}

	fmt.Printf("seed %d, %dx%d cells, %d chunks -> %s\n",
		cfg.Seed, g.W, g.H, g.ChunkCount(), out)
	printMaterialStats(world)
	printBiomeStats(world)
}

type countEntry struct {
	name  string
	count int
}

func printMaterialStats(world *sand.World) {
	g := world.Grid()
	var counts [256]int
	for _, c := range g.Cells() {
		counts[c.Material()]++
	}
	entries := make([]countEntry, 0, 16)
	for id, n := range counts {
		if n == 0 {
			continue
		}
		name := material.Get(uint8(id)).Name
		if name == "" {
			name = fmt.Sprintf("material %d", id)
		}
		entries = append(entries, countEntry{name: name, count: n})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].count > entries[j].count })

	total := g.W * g.H
	fmt.Println("materials:")
	for _, e := range entries {
		fmt.Printf("  %-10s %8d  %5.1f%%\n", e.name, e.count, 100*float64(e.count)/float64(total))
	}
}

func printBiomeStats(world *sand.World) {
	g := world.Grid()
	mgr := world.Manager()
	counts := map[string]int{}
	for cy := 0; cy < g.ChunkCountY; cy++ {
		for cx := 0; cx < g.ChunkCountX; cx++ {
			wcx, wcy := mgr.GridPosToWorldChunk(cx*g.ChunkSize, cy*g.ChunkSize)
			if b := mgr.BiomeAtWorldChunk(wcx, wcy); b != nil {
				counts[b.Name]++
			}
		}
	}
	entries := make([]countEntry, 0, len(counts))
	for name, n := range counts {
		entries = append(entries, countEntry{name: name, count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	fmt.Println("biomes (chunks):")
	for _, e := range entries {
		fmt.Printf("  %-10s %6d\n", e.name, e.count)
	}
}
