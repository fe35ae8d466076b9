// Package sand implements the falling-sand cellular automaton on top of the
// chunked grid: powders fall and pile, fluids flow and seek a level, gases
// rise. Terrain comes from the procedural generator and streams through the
// floating-origin manager as the player moves.
package sand

import (
	"sandfall/internal/core"
	"sandfall/internal/material"
	"sandfall/internal/terrain"
	"sandfall/internal/world"
	pcore "sandfall/pkg/core"
	"sandfall/pkg/grid"
)

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}

// World stores all state for the sand simulation.
type World struct {
	cfg Config

	g   *grid.Grid
	mgr *world.Manager

	rng *pcore.RNG

	// moved marks cells that already acted this step so a grain is never
	// advanced twice in one pass, even across chunk boundaries.
	moved []bool
	// nextActive collects chunk wake-ups during a pass; they are applied
	// after the frame's active set is cleared.
	nextActive []uint8

	playerWX, playerWY int
}

// New returns a sand simulation with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a sand world configured from the provided options.
func NewWithConfig(cfg Config) *World {
	g := grid.New(cfg.Width, cfg.Height, cfg.ChunkSize)
	gen := terrain.NewGenerator(cfg.Seed, nil)
	mgr := world.NewManager(g, gen)
	w := &World{
		cfg:        cfg,
		g:          g,
		mgr:        mgr,
		rng:        pcore.NewRNG(cfg.Seed),
		moved:      make([]bool, g.W*g.H),
		nextActive: make([]uint8, g.ChunkCount()),
	}
	w.centerPlayer()
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.g.W, H: w.g.H} }

// Grid exposes the simulation grid.
func (w *World) Grid() *grid.Grid { return w.g }

// Manager exposes the floating-origin chunk manager.
func (w *World) Manager() *world.Manager { return w.mgr }

// Generator exposes the terrain generator.
func (w *World) Generator() *terrain.Generator { return w.mgr.Generator() }

// PlayerPos reports the player position in grid pixels.
func (w *World) PlayerPos() (int, int) {
	ox, oy := w.mgr.WorldOrigin()
	return w.playerWX - ox, w.playerWY - oy
}

// MovePlayer moves the player in world pixels and lets the chunk manager
// shift the world window if the player left the center region.
func (w *World) MovePlayer(dx, dy int) {
	w.playerWX += dx
	w.playerWY += dy
	gx, gy := w.PlayerPos()
	w.mgr.Update(gx, gy)
}

// BrushMaterial reports the material the brush paints.
func (w *World) BrushMaterial() uint8 { return uint8(w.cfg.Params.BrushMaterial) }

// SetBrushMaterial changes the material the brush paints.
func (w *World) SetBrushMaterial(id uint8) { w.cfg.Params.BrushMaterial = int(id) }

// PaintAt stamps the brush at a grid position. Painting marks the touched
// chunks active, so new material starts simulating next step.
func (w *World) PaintAt(x, y int) {
	w.g.PaintCircle(x, y, w.cfg.Params.BrushRadius, grid.MakeMaterial(uint8(w.cfg.Params.BrushMaterial)))
}

// Reset regenerates the world from the seed and re-centers the player.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.mgr.Reset(effective)
	w.rng = pcore.NewRNG(effective)
	clear(w.moved)
	clear(w.nextActive)
	w.centerPlayer()
}

func (w *World) centerPlayer() {
	ox, oy := w.mgr.WorldOrigin()
	w.playerWX = ox + w.g.W/2
	w.playerWY = oy + w.g.H/2
}

// Step advances the automaton by one tick. Only active chunks are visited,
// bottom-up within each chunk so a falling grain is processed at most once
// before the cells above it. Chunks that produced no movement go quiet.
func (w *World) Step() {
	clear(w.moved)
	clear(w.nextActive)
	w.g.StepActiveChunks(grid.BottomUp, w.stepCell)
	w.g.ClearActive()
	for i, v := range w.nextActive {
		if v != 0 {
			w.g.MarkChunkActive(i)
		}
	}
}

func (w *World) stepCell(i, x, y int) {
	if w.moved[i] {
		return
	}
	c := w.g.GetCell(i)
	m := c.Material()
	if m == material.Empty {
		return
	}
	switch material.CategoryOf(m) {
	case material.CategoryPowder:
		w.stepPowder(i, x, y, c)
	case material.CategoryFluid:
		w.stepFluid(i, x, y, c)
	case material.CategoryGas:
		w.stepGas(i, x, y, c)
	}
}

func (w *World) stepPowder(i, x, y int, c grid.Cell) {
	if c.HasFlags(grid.FlagSettled) {
		return
	}
	if w.tryMove(i, x, y, x, y+1) {
		return
	}
	if w.trySink(i, x, y, x, y+1, c) {
		return
	}
	dir := 1
	if c.HasFlags(grid.FlagMirrored) {
		dir = -1
	}
	if w.tryMove(i, x, y, x+dir, y+1) || w.tryMove(i, x, y, x-dir, y+1) {
		return
	}
	w.g.SetCell(i, c.WithFlags(c.Flags()|grid.FlagSettled))
}

func (w *World) stepFluid(i, x, y int, c grid.Cell) {
	m := c.Material()
	if w.react(i, x, y, m) {
		return
	}
	if w.tryMove(i, x, y, x, y+1) {
		return
	}
	if w.trySink(i, x, y, x, y+1, c) {
		return
	}
	dir := 1
	if c.HasFlags(grid.FlagMirrored) {
		dir = -1
	}
	if w.tryMove(i, x, y, x+dir, y+1) || w.tryMove(i, x, y, x-dir, y+1) {
		return
	}
	if !w.rng.Chance(w.cfg.Params.FlowChance) {
		return
	}
	if w.tryMove(i, x, y, x+dir, y) {
		return
	}
	if w.tryMove(i, x, y, x-dir, y) {
		// Keep flowing the way that worked.
		j := w.g.Index(x-dir, y)
		moved := w.g.GetCell(j)
		w.g.SetCell(j, moved.WithFlags(moved.Flags()^grid.FlagMirrored))
	}
}

func (w *World) stepGas(i, x, y int, c grid.Cell) {
	if w.tryMove(i, x, y, x, y-1) {
		return
	}
	dir := 1
	if c.HasFlags(grid.FlagMirrored) {
		dir = -1
	}
	if w.tryMove(i, x, y, x+dir, y-1) || w.tryMove(i, x, y, x-dir, y-1) {
		return
	}
	if w.tryMove(i, x, y, x+dir, y) {
		return
	}
	if w.tryMove(i, x, y, x-dir, y) {
		j := w.g.Index(x-dir, y)
		moved := w.g.GetCell(j)
		w.g.SetCell(j, moved.WithFlags(moved.Flags()^grid.FlagMirrored))
	}
}

// react handles water/lava contact: lava quenches to stone, water boils off.
func (w *World) react(i, x, y int, m uint8) bool {
	if y+1 >= w.g.H {
		return false
	}
	j := w.g.Index(x, y+1)
	below := w.g.GetCell(j).Material()
	switch {
	case m == material.Water && below == material.Lava:
		w.g.SetCell(j, grid.MakeMaterial(material.Stone))
		w.g.SetCell(i, grid.MakeMaterial(material.Steam))
	case m == material.Lava && below == material.Water:
		w.g.SetCell(i, grid.MakeMaterial(material.Stone))
		w.g.SetCell(j, grid.MakeMaterial(material.Steam))
	default:
		return false
	}
	w.moved[i] = true
	w.moved[j] = true
	w.g.MarkChunkDirtyXY(x, y)
	w.g.MarkChunkDirtyXY(x, y+1)
	w.wake(x, y)
	w.wake(x, y+1)
	return true
}

// tryMove moves the cell at (x, y) into (nx, ny) when the target is empty.
func (w *World) tryMove(i, x, y, nx, ny int) bool {
	if !w.g.InBounds(nx, ny) {
		return false
	}
	j := w.g.Index(nx, ny)
	if !w.g.GetCell(j).Empty() {
		return false
	}
	w.g.SetCell(j, w.g.GetCell(i))
	w.g.SetCell(i, 0)
	w.moved[j] = true
	w.g.MarkChunkDirtyXY(x, y)
	w.g.MarkChunkDirtyXY(nx, ny)
	w.wake(x, y)
	w.wake(nx, ny)
	w.unsettleAbove(x, y)
	return true
}

// trySink swaps the cell into a strictly lighter fluid below it.
func (w *World) trySink(i, x, y, nx, ny int, c grid.Cell) bool {
	if !w.g.InBounds(nx, ny) {
		return false
	}
	j := w.g.Index(nx, ny)
	target := w.g.GetCell(j)
	if material.CategoryOf(target.Material()) != material.CategoryFluid {
		return false
	}
	if material.Get(target.Material()).Density >= material.Get(c.Material()).Density {
		return false
	}
	if target.Material() == material.Water {
		c = c.WithFlags(c.Flags() | grid.FlagWet)
	}
	w.g.SetCell(j, c)
	w.g.SetCell(i, target)
	w.moved[i] = true
	w.moved[j] = true
	w.g.MarkChunkDirtyXY(x, y)
	w.g.MarkChunkDirtyXY(nx, ny)
	w.wake(x, y)
	w.wake(nx, ny)
	w.unsettleAbove(x, y)
	return true
}

// unsettleAbove clears the settled bit on powders resting on a vacated cell
// so they resume falling next step.
func (w *World) unsettleAbove(x, y int) {
	for dx := -1; dx <= 1; dx++ {
		nx, ny := x+dx, y-1
		if !w.g.InBounds(nx, ny) {
			continue
		}
		j := w.g.Index(nx, ny)
		c := w.g.GetCell(j)
		if c.HasFlags(grid.FlagSettled) {
			w.g.SetCell(j, c.WithFlags(c.Flags()&^grid.FlagSettled))
			w.wake(nx, ny)
		}
	}
}

// wake marks the chunks touching (x, y) and its eight neighbors for the next
// step, so motion near a chunk border keeps the adjacent chunk simulating.
func (w *World) wake(x, y int) {
	g := w.g
	x0, y0 := max(x-1, 0), max(y-1, 0)
	x1, y1 := min(x+1, g.W-1), min(y+1, g.H-1)
	for cy := y0 / g.ChunkSize; cy <= y1/g.ChunkSize; cy++ {
		for cx := x0 / g.ChunkSize; cx <= x1/g.ChunkSize; cx++ {
			w.nextActive[g.ChunkIndex(cx, cy)] = 1
		}
	}
}
