package grid

import "fmt"

// Chunk flag sentinels stored in the per-chunk active and dirty arrays.
const (
	// ChunkActive marks a chunk for simulation on the next step.
	ChunkActive uint8 = 1
	// ChunkDirty marks a chunk whose pixels need re-rendering.
	ChunkDirty uint8 = 2
)

// DefaultChunkSize is used when a caller passes a non-positive chunk size.
const DefaultChunkSize = 32

// Grid is a dense, chunked 2D cell store. Cells live in one flat row-major
// buffer; activation and dirty tracking happen per fixed-size square chunk so
// a step only touches regions where something is happening. Edge chunks may
// be smaller than ChunkSize when the dimensions don't divide evenly.
type Grid struct {
	W, H        int
	ChunkSize   int
	ChunkCountX int
	ChunkCountY int

	cells  []Cell
	active []uint8
	dirty  []uint8
}

// New allocates a grid with the given dimensions and chunk size.
func New(w, h, chunkSize int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g, _ := NewWithBuffer(w, h, chunkSize, make([]Cell, w*h))
	return g
}

// NewWithBuffer builds a grid over a caller-supplied cell buffer. It returns
// an error only when the buffer is too small for the requested dimensions;
// this is the single construction-time failure the package reports.
func NewWithBuffer(w, h, chunkSize int, cells []Cell) (*Grid, error) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if len(cells) < w*h {
		return nil, fmt.Errorf("grid: buffer holds %d cells, need %d", len(cells), w*h)
	}
	ccx := (w + chunkSize - 1) / chunkSize
	ccy := (h + chunkSize - 1) / chunkSize
	return &Grid{
		W:           w,
		H:           h,
		ChunkSize:   chunkSize,
		ChunkCountX: ccx,
		ChunkCountY: ccy,
		cells:       cells[:w*h],
		active:      make([]uint8, ccx*ccy),
		dirty:       make([]uint8, ccx*ccy),
	}, nil
}

// Cells exposes the backing cell slice for direct reads and writes.
func (g *Grid) Cells() []Cell { return g.cells }

// ActiveFlags exposes the per-chunk activation bytes.
func (g *Grid) ActiveFlags() []uint8 { return g.active }

// DirtyFlags exposes the per-chunk dirty bytes.
func (g *Grid) DirtyFlags() []uint8 { return g.dirty }

// ChunkCount returns the total number of chunks.
func (g *Grid) ChunkCount() int { return g.ChunkCountX * g.ChunkCountY }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds is the single source of truth for coordinate validity.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// GetXY returns the cell at (x, y), or the zero cell outside the grid.
func (g *Grid) GetXY(x, y int) Cell {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.cells[y*g.W+x]
}

// SetXY writes the cell at (x, y); out-of-bounds writes are dropped. Point
// writes deliberately do not mark chunks: simulation-internal moves happen
// many times per frame and callers mark activity themselves when they want it.
func (g *Grid) SetXY(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.W+x] = c
}

// GetCell reads a cell by precomputed linear index without bounds checks.
func (g *Grid) GetCell(i int) Cell { return g.cells[i] }

// SetCell writes a cell by precomputed linear index without bounds checks.
func (g *Grid) SetCell(i int, c Cell) { g.cells[i] = c }

// ChunkIndex returns the linear chunk index for chunk coordinates.
func (g *Grid) ChunkIndex(chunkX, chunkY int) int {
	return chunkY*g.ChunkCountX + chunkX
}

// MarkChunkActiveXY activates the chunk containing cell (x, y). Out-of-bounds
// coordinates are a no-op.
func (g *Grid) MarkChunkActiveXY(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	g.active[(y/g.ChunkSize)*g.ChunkCountX+x/g.ChunkSize] = ChunkActive
}

// MarkChunkDirtyXY marks the chunk containing cell (x, y) for re-render.
func (g *Grid) MarkChunkDirtyXY(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	g.dirty[(y/g.ChunkSize)*g.ChunkCountX+x/g.ChunkSize] = ChunkDirty
}

// MarkChunkActive activates a chunk by linear index.
func (g *Grid) MarkChunkActive(chunk int) {
	if chunk < 0 || chunk >= len(g.active) {
		return
	}
	g.active[chunk] = ChunkActive
}

// MarkChunkDirty marks a chunk dirty by linear index.
func (g *Grid) MarkChunkDirty(chunk int) {
	if chunk < 0 || chunk >= len(g.dirty) {
		return
	}
	g.dirty[chunk] = ChunkDirty
}

// MarkAllChunks sets every chunk active and dirty. Used after bulk moves of
// the whole grid, when everything needs both simulation and re-render.
func (g *Grid) MarkAllChunks() {
	for i := range g.active {
		g.active[i] = ChunkActive
		g.dirty[i] = ChunkDirty
	}
}

// ClearActive zeroes all activation flags. Called once per frame after
// stepping, before the next input cycle marks new activity.
func (g *Grid) ClearActive() {
	for i := range g.active {
		g.active[i] = 0
	}
}

// ClearDirty zeroes all dirty flags, typically after a render upload.
func (g *Grid) ClearDirty() {
	for i := range g.dirty {
		g.dirty[i] = 0
	}
}

// PaintRect fills a rectangle with a single cell value, clipped to the grid,
// and marks every chunk intersecting the painted region active and dirty.
func (g *Grid) PaintRect(x0, y0, w, h int, c Cell) {
	if w <= 0 || h <= 0 {
		return
	}
	x1 := x0 + w - 1
	y1 := y0 + h - 1
	x0, y0, x1, y1 = g.clip(x0, y0, x1, y1)
	if x0 > x1 || y0 > y1 {
		return
	}
	for y := y0; y <= y1; y++ {
		row := y * g.W
		for x := x0; x <= x1; x++ {
			g.cells[row+x] = c
		}
	}
	g.markChunkSpan(x0, y0, x1, y1)
}

// PaintCircle fills a disk of the given radius centered at (cx, cy), clipped
// to the grid, and marks every chunk intersecting the disk's bounding square.
func (g *Grid) PaintCircle(cx, cy, r int, c Cell) {
	if r < 0 {
		return
	}
	x0, y0, x1, y1 := g.clip(cx-r, cy-r, cx+r, cy+r)
	if x0 > x1 || y0 > y1 {
		return
	}
	rr := r * r
	for y := y0; y <= y1; y++ {
		dy := y - cy
		row := y * g.W
		for x := x0; x <= x1; x++ {
			dx := x - cx
			if dx*dx+dy*dy <= rr {
				g.cells[row+x] = c
			}
		}
	}
	g.markChunkSpan(x0, y0, x1, y1)
}

// clip bounds an inclusive pixel rectangle to the grid.
func (g *Grid) clip(x0, y0, x1, y1 int) (int, int, int, int) {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= g.W {
		x1 = g.W - 1
	}
	if y1 >= g.H {
		y1 = g.H - 1
	}
	return x0, y0, x1, y1
}

// markChunkSpan marks every chunk overlapping the inclusive pixel rectangle.
func (g *Grid) markChunkSpan(x0, y0, x1, y1 int) {
	cx0 := x0 / g.ChunkSize
	cy0 := y0 / g.ChunkSize
	cx1 := x1 / g.ChunkSize
	cy1 := y1 / g.ChunkSize
	for cy := cy0; cy <= cy1; cy++ {
		row := cy * g.ChunkCountX
		for cx := cx0; cx <= cx1; cx++ {
			g.active[row+cx] = ChunkActive
			g.dirty[row+cx] = ChunkDirty
		}
	}
}

// ChunkFunc receives the clipped pixel rectangle of one chunk plus its
// linear chunk index.
type ChunkFunc func(x0, y0, w, h, chunk int)

// ForEachActiveChunk invokes fn for every chunk whose activation byte equals
// ChunkActive, passing the chunk's actual pixel rectangle. Edge chunks get
// rectangles clipped to the grid.
func (g *Grid) ForEachActiveChunk(fn ChunkFunc) {
	for cy := 0; cy < g.ChunkCountY; cy++ {
		for cx := 0; cx < g.ChunkCountX; cx++ {
			chunk := cy*g.ChunkCountX + cx
			if g.active[chunk] != ChunkActive {
				continue
			}
			x0 := cx * g.ChunkSize
			y0 := cy * g.ChunkSize
			w := g.ChunkSize
			if x0+w > g.W {
				w = g.W - x0
			}
			h := g.ChunkSize
			if y0+h > g.H {
				h = g.H - y0
			}
			fn(x0, y0, w, h, chunk)
		}
	}
}

// CellFunc receives a cell's precomputed linear index and coordinates.
type CellFunc func(i, x, y int)

// StepActiveChunks is the simulation entry point: it walks every active chunk
// and applies fn to each of its cells using the requested traversal order.
// Callers supply the automaton rule as fn and pick the order the rule needs
// (BottomUp for gravity, Morton for neighbor-heavy reactions).
func (g *Grid) StepActiveChunks(order Order, fn CellFunc) {
	g.ForEachActiveChunk(func(x0, y0, w, h, _ int) {
		visit := func(x, y int) {
			fn(y*g.W+x, x, y)
		}
		switch order {
		case BottomUp:
			ForEachRectBottomUp(x0, y0, w, h, visit)
		case Morton:
			ForEachRectMorton(x0, y0, w, h, visit)
		default:
			ForEachRectRowMajor(x0, y0, w, h, visit)
		}
	})
}
