package sand

import (
	"slices"
	"testing"

	"sandfall/internal/material"
	"sandfall/pkg/grid"
)

// newBlankWorld builds a world and wipes the generated terrain so rule tests
// start from a known-empty grid. The wipe marks every chunk active.
func newBlankWorld(w, h, chunk int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.ChunkSize = chunk
	world := NewWithConfig(cfg)
	world.Grid().PaintRect(0, 0, w, h, 0)
	return world
}

func materialAt(g *grid.Grid, x, y int) uint8 {
	return g.GetXY(x, y).Material()
}

func TestSandColumnFallsOneRowPerStep(t *testing.T) {
	w := newBlankWorld(16, 16, 8)
	g := w.Grid()
	for y := 10; y <= 12; y++ {
		g.SetXY(8, y, grid.MakeMaterial(material.Sand))
	}

	w.Step()

	for y := 11; y <= 13; y++ {
		if got := materialAt(g, 8, y); got != material.Sand {
			t.Fatalf("after one step, expected sand at (8,%d), got material %d", y, got)
		}
	}
	if got := materialAt(g, 8, 10); got != material.Empty {
		t.Fatalf("top of column should have vacated, got material %d", got)
	}
	if got := materialAt(g, 8, 14); got != material.Empty {
		t.Fatalf("no grain may skip a row, found material %d at (8,14)", got)
	}
}

func TestSandColumnSettlesAndQuiesces(t *testing.T) {
	w := newBlankWorld(16, 16, 8)
	g := w.Grid()
	for y := 10; y <= 12; y++ {
		g.SetXY(8, y, grid.MakeMaterial(material.Sand))
	}

	for i := 0; i < 24; i++ {
		w.Step()
	}

	grains := 0
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if materialAt(g, x, y) != material.Sand {
				continue
			}
			grains++
			if y != g.H-1 {
				t.Fatalf("grain at (%d,%d) did not reach the bottom row", x, y)
			}
		}
	}
	if grains != 3 {
		t.Fatalf("expected 3 grains, found %d", grains)
	}

	w.Step()
	for i, v := range g.ActiveFlags() {
		if v == grid.ChunkActive {
			t.Fatalf("chunk %d still active after the pile settled", i)
		}
	}
}

func TestWaterLevelsInBasin(t *testing.T) {
	w := newBlankWorld(16, 16, 8)
	g := w.Grid()
	rock := grid.MakeMaterial(material.Rock)
	// Basin: floor at y=12, walls at x=5 and x=10, interior x=6..9.
	g.PaintRect(4, 12, 8, 1, rock)
	g.PaintRect(5, 8, 1, 4, rock)
	g.PaintRect(10, 8, 1, 4, rock)
	for y := 8; y <= 11; y++ {
		g.SetXY(7, y, grid.MakeMaterial(material.Water))
	}
	g.MarkAllChunks()

	for i := 0; i < 80; i++ {
		w.Step()
	}

	for x := 6; x <= 9; x++ {
		if got := materialAt(g, x, 11); got != material.Water {
			t.Fatalf("expected water at (%d,11), got material %d", x, got)
		}
	}
	w.Step()
	for i, v := range g.ActiveFlags() {
		if v == grid.ChunkActive {
			t.Fatalf("chunk %d still active after the basin leveled", i)
		}
	}
}

func TestGasRisesOneRowPerStep(t *testing.T) {
	w := newBlankWorld(16, 16, 8)
	g := w.Grid()
	g.SetXY(8, 12, grid.MakeMaterial(material.Steam))

	w.Step()
	if got := materialAt(g, 8, 11); got != material.Steam {
		t.Fatalf("expected steam at (8,11) after one step, got material %d", got)
	}
	for i := 0; i < 11; i++ {
		w.Step()
	}
	found := false
	for x := 0; x < g.W; x++ {
		if materialAt(g, x, 0) == material.Steam {
			found = true
		}
	}
	if !found {
		t.Fatal("steam never reached the top row")
	}
}

func TestPowderSinksThroughWaterAndGetsWet(t *testing.T) {
	w := newBlankWorld(16, 16, 8)
	g := w.Grid()
	rock := grid.MakeMaterial(material.Rock)
	// Water sits in a one-cell well so the displaced water cannot wander off.
	g.PaintRect(0, 14, 16, 1, rock)
	g.PaintRect(7, 12, 1, 2, rock)
	g.PaintRect(9, 12, 1, 2, rock)
	g.SetXY(8, 13, grid.MakeMaterial(material.Water))
	g.SetXY(8, 10, grid.MakeMaterial(material.Sand))

	for i := 0; i < 6; i++ {
		w.Step()
	}

	c := g.GetXY(8, 13)
	if c.Material() != material.Sand {
		t.Fatalf("expected sand to sink to (8,13), got material %d", c.Material())
	}
	if !c.HasFlags(grid.FlagWet) {
		t.Fatal("sand that sank through water should be wet")
	}
	if got := materialAt(g, 8, 12); got != material.Water {
		t.Fatalf("displaced water should sit at (8,12), got material %d", got)
	}
}

func TestWaterQuenchesLava(t *testing.T) {
	w := newBlankWorld(16, 16, 8)
	g := w.Grid()
	rock := grid.MakeMaterial(material.Rock)
	// Lava confined in a one-cell well so it cannot flow away.
	g.PaintRect(0, 14, 16, 1, rock)
	g.SetXY(7, 13, rock)
	g.SetXY(9, 13, rock)
	g.SetXY(8, 13, grid.MakeMaterial(material.Lava))
	g.SetXY(8, 11, grid.MakeMaterial(material.Water))

	for i := 0; i < 4; i++ {
		w.Step()
	}

	if got := materialAt(g, 8, 13); got != material.Stone {
		t.Fatalf("lava under water should quench to stone, got material %d", got)
	}
	steam := 0
	for y := 0; y < 13; y++ {
		for x := 0; x < g.W; x++ {
			if materialAt(g, x, y) == material.Steam {
				steam++
			}
		}
	}
	if steam != 1 {
		t.Fatalf("quenching should boil the water off as steam, found %d steam cells", steam)
	}
}

func TestMovementWakesNeighborChunk(t *testing.T) {
	w := newBlankWorld(32, 32, 16)
	g := w.Grid()
	g.ClearActive()
	g.ClearDirty()
	g.SetXY(8, 14, grid.MakeMaterial(material.Sand))
	g.MarkChunkActiveXY(8, 14)

	w.Step()

	if got := materialAt(g, 8, 15); got != material.Sand {
		t.Fatalf("grain should have fallen to (8,15), got material %d", got)
	}
	below := g.ChunkIndex(0, 1)
	if g.ActiveFlags()[below] != grid.ChunkActive {
		t.Fatal("falling next to the chunk border should wake the chunk below")
	}
	if g.DirtyFlags()[g.ChunkIndex(0, 0)] != grid.ChunkDirty {
		t.Fatal("source chunk should be marked dirty")
	}
}

func TestStepDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 96
	cfg.Height = 96
	cfg.Seed = 42

	a := NewWithConfig(cfg)
	b := NewWithConfig(cfg)
	a.PaintAt(48, 20)
	b.PaintAt(48, 20)
	for i := 0; i < 10; i++ {
		a.Step()
		b.Step()
	}

	if !slices.Equal(a.Grid().Cells(), b.Grid().Cells()) {
		t.Fatal("identical seeds and inputs diverged")
	}
}

func TestResetRestoresInitialWorld(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 96
	cfg.Height = 96
	cfg.Seed = 7

	fresh := NewWithConfig(cfg)
	w := NewWithConfig(cfg)
	w.PaintAt(48, 20)
	for i := 0; i < 5; i++ {
		w.Step()
	}
	w.Reset(0)

	if !slices.Equal(w.Grid().Cells(), fresh.Grid().Cells()) {
		t.Fatal("reset world differs from a freshly built one")
	}
	if !slices.Equal(w.Grid().ActiveFlags(), fresh.Grid().ActiveFlags()) {
		t.Fatal("reset active flags differ from a freshly built world")
	}
}

func TestSetParameters(t *testing.T) {
	w := New(64, 64)
	if !w.SetIntParameter("brush_radius", 9) {
		t.Fatal("brush_radius update rejected")
	}
	if w.cfg.Params.BrushRadius != 9 {
		t.Fatalf("brush_radius = %d, want 9", w.cfg.Params.BrushRadius)
	}
	if w.SetIntParameter("brush_radius", 0) {
		t.Fatal("out-of-range brush_radius accepted")
	}
	if !w.SetFloatParameter("flow_chance", 0.25) {
		t.Fatal("flow_chance update rejected")
	}
	if w.SetFloatParameter("flow_chance", 1.5) {
		t.Fatal("out-of-range flow_chance accepted")
	}
	if w.SetIntParameter("unknown", 1) {
		t.Fatal("unknown key accepted")
	}
}
