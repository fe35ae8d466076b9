// Package world streams an unbounded world through a fixed-size grid using a
// floating origin: the grid always holds a window of world chunks, and the
// window's contents are physically shifted when the player nears an edge.
package world

import (
	"sandfall/internal/material"
	"sandfall/internal/terrain"
	"sandfall/pkg/grid"
)

// chunkKey addresses the generation registry by world chunk coordinates.
type chunkKey struct {
	X, Y int
}

// chunkRecord tracks what has been generated for one world chunk.
type chunkRecord struct {
	Biome     *terrain.Biome
	Generated bool
}

// Manager owns the mapping between unbounded world-chunk space and the grid.
// The invariant it maintains everywhere: gridChunk = worldChunk - origin, and
// the grid border is always the edge of the loaded world, never stale content
// from before a shift.
type Manager struct {
	grid *grid.Grid
	gen  *terrain.Generator

	originChunkX int
	originChunkY int

	playerWorldChunkX int
	playerWorldChunkY int

	frame     int
	generated map[chunkKey]chunkRecord
}

// NewManager centers the world window on world chunk (0, 0) and generates the
// initial view.
func NewManager(g *grid.Grid, gen *terrain.Generator) *Manager {
	m := &Manager{
		grid:      g,
		gen:       gen,
		generated: map[chunkKey]chunkRecord{},
	}
	m.recenter()
	m.generateAll()
	return m
}

// Grid returns the managed grid.
func (m *Manager) Grid() *grid.Grid { return m.grid }

// Generator returns the terrain generator in use.
func (m *Manager) Generator() *terrain.Generator { return m.gen }

// Frame returns the number of Update calls since the last reset.
func (m *Manager) Frame() int { return m.frame }

// WorldOrigin returns the world position of grid cell (0, 0) in pixels.
func (m *Manager) WorldOrigin() (int, int) {
	return m.originChunkX * m.grid.ChunkSize, m.originChunkY * m.grid.ChunkSize
}

// WorldPosToWorldChunk maps world pixel coordinates to world chunk coordinates.
func (m *Manager) WorldPosToWorldChunk(wx, wy int) (int, int) {
	return floorDiv(wx, m.grid.ChunkSize), floorDiv(wy, m.grid.ChunkSize)
}

// GridPosToWorldChunk maps grid pixel coordinates to world chunk coordinates.
func (m *Manager) GridPosToWorldChunk(x, y int) (int, int) {
	return floorDiv(x, m.grid.ChunkSize) + m.originChunkX, floorDiv(y, m.grid.ChunkSize) + m.originChunkY
}

// WorldChunkToGridChunk maps a world chunk to grid chunk coordinates.
func (m *Manager) WorldChunkToGridChunk(wcx, wcy int) (int, int) {
	return wcx - m.originChunkX, wcy - m.originChunkY
}

// WorldChunkToGridPos maps a world chunk to the grid pixel position of its
// top-left corner.
func (m *Manager) WorldChunkToGridPos(wcx, wcy int) (int, int) {
	cx, cy := m.WorldChunkToGridChunk(wcx, wcy)
	return cx * m.grid.ChunkSize, cy * m.grid.ChunkSize
}

// IsWorldChunkInGrid reports whether a world chunk is currently loaded.
func (m *Manager) IsWorldChunkInGrid(wcx, wcy int) bool {
	cx, cy := m.WorldChunkToGridChunk(wcx, wcy)
	return cx >= 0 && cx < m.grid.ChunkCountX && cy >= 0 && cy < m.grid.ChunkCountY
}

// BiomeAtWorldChunk returns the registered biome for a generated chunk, or
// the generator's selection for one not yet loaded.
func (m *Manager) BiomeAtWorldChunk(wcx, wcy int) *terrain.Biome {
	if rec, ok := m.generated[chunkKey{wcx, wcy}]; ok {
		return rec.Biome
	}
	return m.gen.BiomeAt(wcx, wcy, m.grid.ChunkSize)
}

// Update records the player's position and shifts the world window so the
// player stays within one chunk of the grid center. The shift loops until the
// player is re-centered, so movement faster than one chunk per frame still
// converges in a single call.
func (m *Manager) Update(playerGridX, playerGridY int) {
	m.frame++
	m.playerWorldChunkX, m.playerWorldChunkY = m.GridPosToWorldChunk(playerGridX, playerGridY)

	shifted := false
	for {
		centerX := m.playerWorldChunkX - m.originChunkX
		centerY := m.playerWorldChunkY - m.originChunkY
		dx := centerX - m.grid.ChunkCountX/2
		dy := centerY - m.grid.ChunkCountY/2

		moved := false
		if dx > 1 {
			m.shiftX(1)
			moved = true
		} else if dx < -1 {
			m.shiftX(-1)
			moved = true
		}
		if dy > 1 {
			m.shiftY(1)
			moved = true
		} else if dy < -1 {
			m.shiftY(-1)
			moved = true
		}
		if !moved {
			break
		}
		shifted = true
	}

	if shifted {
		// Everything moved; the whole grid needs simulation and re-render.
		m.grid.MarkAllChunks()
	}
}

// Reset clears generation bookkeeping, optionally reseeds the generator, and
// rebuilds the view centered on world chunk (0, 0).
func (m *Manager) Reset(seed int64) {
	if seed != 0 && seed != m.gen.Seed() {
		m.gen = terrain.NewGenerator(seed, nil)
	}
	m.generated = map[chunkKey]chunkRecord{}
	m.frame = 0
	m.recenter()
	m.generateAll()
}

func (m *Manager) recenter() {
	m.originChunkX = -m.grid.ChunkCountX / 2
	m.originChunkY = -m.grid.ChunkCountY / 2
	m.playerWorldChunkX = 0
	m.playerWorldChunkY = 0
}

func (m *Manager) generateAll() {
	for cy := 0; cy < m.grid.ChunkCountY; cy++ {
		for cx := 0; cx < m.grid.ChunkCountX; cx++ {
			m.generateGridChunk(cx, cy)
		}
	}
}

// generateGridChunk regenerates the world chunk currently mapped to a grid
// chunk and records it in the registry.
func (m *Manager) generateGridChunk(cx, cy int) {
	wcx := cx + m.originChunkX
	wcy := cy + m.originChunkY
	m.gen.GenerateChunk(m.grid, wcx, wcy, cx, cy)
	m.generated[chunkKey{wcx, wcy}] = chunkRecord{
		Biome:     m.gen.BiomeAt(wcx, wcy, m.grid.ChunkSize),
		Generated: true,
	}
}

// shiftX moves the world window one chunk along X. dir +1 means the window
// moves toward +X: cells slide one chunk width toward -X and the right edge
// is regenerated. The freshly exposed edge is first cleared to solid rock so
// no stale content survives even transiently.
func (m *Manager) shiftX(dir int) {
	g := m.grid
	cs := g.ChunkSize
	cells := g.Cells()
	w := g.W

	if dir > 0 {
		for y := 0; y < g.H; y++ {
			row := cells[y*w : (y+1)*w]
			copy(row[:w-cs], row[cs:])
		}
	} else {
		for y := 0; y < g.H; y++ {
			row := cells[y*w : (y+1)*w]
			copy(row[cs:], row[:w-cs])
		}
	}
	m.originChunkX += dir

	edge := 0
	if dir > 0 {
		edge = g.ChunkCountX - 1
	}
	g.PaintRect(edge*cs, 0, cs, g.H, grid.MakeMaterial(material.Rock))
	for cy := 0; cy < g.ChunkCountY; cy++ {
		m.generateGridChunk(edge, cy)
	}
}

// shiftY is shiftX along the vertical axis; row moves are single copies over
// the flat buffer.
func (m *Manager) shiftY(dir int) {
	g := m.grid
	cs := g.ChunkSize
	cells := g.Cells()
	w := g.W

	if dir > 0 {
		copy(cells[:(g.H-cs)*w], cells[cs*w:])
	} else {
		copy(cells[cs*w:], cells[:(g.H-cs)*w])
	}
	m.originChunkY += dir

	edge := 0
	if dir > 0 {
		edge = g.ChunkCountY - 1
	}
	g.PaintRect(0, edge*cs, g.W, cs, grid.MakeMaterial(material.Rock))
	for cx := 0; cx < g.ChunkCountX; cx++ {
		m.generateGridChunk(cx, edge)
	}
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
