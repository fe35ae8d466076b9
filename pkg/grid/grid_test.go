package grid

import (
	"slices"
	"testing"
)

func TestNewWithBufferUndersized(t *testing.T) {
	if _, err := NewWithBuffer(16, 16, 8, make([]Cell, 255)); err == nil {
		t.Fatal("undersized buffer must be rejected")
	}
	g, err := NewWithBuffer(16, 16, 8, make([]Cell, 256))
	if err != nil {
		t.Fatalf("exact-size buffer rejected: %v", err)
	}
	if g.ChunkCountX != 2 || g.ChunkCountY != 2 {
		t.Fatalf("chunk counts = %dx%d, want 2x2", g.ChunkCountX, g.ChunkCountY)
	}
}

func TestChunkCountsCeil(t *testing.T) {
	g := New(100, 70, 32)
	if g.ChunkCountX != 4 || g.ChunkCountY != 3 {
		t.Fatalf("100x70/32 chunk counts = %dx%d, want 4x3", g.ChunkCountX, g.ChunkCountY)
	}
}

func TestBoundsNoOp(t *testing.T) {
	g := New(8, 8, 4)
	snapshot := append([]Cell(nil), g.Cells()...)

	outside := [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {-5, -5}, {100, 100}}
	for _, coord := range outside {
		g.SetXY(coord[0], coord[1], Make(3, 0))
		if got := g.GetXY(coord[0], coord[1]); got != 0 {
			t.Fatalf("GetXY(%d,%d) = %#x, want 0", coord[0], coord[1], got)
		}
		g.MarkChunkActiveXY(coord[0], coord[1])
		g.MarkChunkDirtyXY(coord[0], coord[1])
	}

	if !slices.Equal(snapshot, g.Cells()) {
		t.Fatal("out-of-bounds writes mutated the cell buffer")
	}
	for i, v := range g.ActiveFlags() {
		if v != 0 {
			t.Fatalf("out-of-bounds mark activated chunk %d", i)
		}
	}
	for i, v := range g.DirtyFlags() {
		if v != 0 {
			t.Fatalf("out-of-bounds mark dirtied chunk %d", i)
		}
	}
}

func TestPointWriteDoesNotMarkChunks(t *testing.T) {
	g := New(64, 64, 16)
	g.SetXY(10, 10, Make(1, 0))
	g.SetCell(g.Index(40, 40), Make(2, 0))
	for i := range g.ActiveFlags() {
		if g.ActiveFlags()[i] != 0 || g.DirtyFlags()[i] != 0 {
			t.Fatalf("point write marked chunk %d", i)
		}
	}
}

func TestPaintRectMarksIntersectingChunks(t *testing.T) {
	g := New(128, 128, 32)
	g.PaintRect(30, 30, 40, 10, Make(5, 0))

	// The painted region spans x [30,69], y [30,39]: chunk columns 0..2, row 0..1.
	want := map[int]bool{}
	for cy := 0; cy <= 1; cy++ {
		for cx := 0; cx <= 2; cx++ {
			want[g.ChunkIndex(cx, cy)] = true
		}
	}
	for i := range g.ActiveFlags() {
		marked := g.ActiveFlags()[i] == ChunkActive
		if marked != want[i] {
			t.Fatalf("chunk %d active=%v, want %v", i, marked, want[i])
		}
		if (g.DirtyFlags()[i] == ChunkDirty) != want[i] {
			t.Fatalf("chunk %d dirty mismatch", i)
		}
	}
	if got := g.GetXY(30, 30); got.Material() != 5 {
		t.Fatalf("painted cell has material %d", got.Material())
	}
	if got := g.GetXY(29, 30); got != 0 {
		t.Fatal("paint leaked outside the rectangle")
	}
}

func TestPaintCircleScenario(t *testing.T) {
	// 128x128 grid, 32-cell chunks: a radius-10 disk at (64,64) touches only
	// the four chunks that meet at the center.
	g := New(128, 128, 32)
	g.PaintCircle(64, 64, 10, Make(1, 0))

	want := map[int]bool{
		g.ChunkIndex(1, 1): true,
		g.ChunkIndex(2, 1): true,
		g.ChunkIndex(1, 2): true,
		g.ChunkIndex(2, 2): true,
	}
	for i := range g.ActiveFlags() {
		marked := g.ActiveFlags()[i] == ChunkActive
		if marked != want[i] {
			t.Fatalf("chunk %d active=%v, want %v", i, marked, want[i])
		}
	}

	if g.GetXY(64, 64).Material() != 1 {
		t.Fatal("disk center not painted")
	}
	if g.GetXY(64, 54).Material() != 1 {
		t.Fatal("disk rim not painted")
	}
	if g.GetXY(64+8, 64+8).Material() != 0 {
		t.Fatal("corner outside the disk was painted")
	}
}

func TestPaintClipsToGrid(t *testing.T) {
	g := New(16, 16, 8)
	g.PaintRect(-4, -4, 8, 8, Make(2, 0))
	if g.GetXY(0, 0).Material() != 2 || g.GetXY(3, 3).Material() != 2 {
		t.Fatal("clipped paint missed in-bounds cells")
	}
	g.PaintCircle(100, 100, 5, Make(3, 0))
	// Entirely off-grid, nothing marked beyond the earlier paint.
	if g.ActiveFlags()[g.ChunkIndex(1, 1)] == ChunkActive {
		t.Fatal("off-grid circle activated a chunk")
	}
}

func TestForEachActiveChunkClipsEdgeRects(t *testing.T) {
	g := New(100, 70, 32)
	g.MarkAllChunks()

	visited := 0
	g.ForEachActiveChunk(func(x0, y0, w, h, chunk int) {
		visited++
		if x0+w > g.W || y0+h > g.H {
			t.Fatalf("chunk %d rect (%d,%d %dx%d) escapes grid", chunk, x0, y0, w, h)
		}
		if chunk == g.ChunkIndex(3, 2) {
			if w != 4 || h != 6 {
				t.Fatalf("corner chunk rect %dx%d, want 4x6", w, h)
			}
		}
	})
	if visited != g.ChunkCount() {
		t.Fatalf("visited %d chunks, want %d", visited, g.ChunkCount())
	}

	g.ClearActive()
	g.ForEachActiveChunk(func(x0, y0, w, h, chunk int) {
		t.Fatalf("chunk %d visited after ClearActive", chunk)
	})
}

func TestStepActiveChunksSkipsInactive(t *testing.T) {
	g := New(64, 64, 32)
	g.MarkChunkActiveXY(0, 0)

	cells := 0
	g.StepActiveChunks(RowMajor, func(i, x, y int) {
		cells++
		if x >= 32 || y >= 32 {
			t.Fatalf("step escaped the active chunk at (%d,%d)", x, y)
		}
		if i != y*g.W+x {
			t.Fatalf("linear index %d does not match (%d,%d)", i, x, y)
		}
	})
	if cells != 32*32 {
		t.Fatalf("stepped %d cells, want %d", cells, 32*32)
	}
}

func TestStepActiveChunksBottomUpWithinChunk(t *testing.T) {
	g := New(32, 32, 16)
	g.MarkChunkActiveXY(0, 20) // chunk (0,1)

	lastY := -1
	first := true
	g.StepActiveChunks(BottomUp, func(i, x, y int) {
		if first {
			if y != 31 {
				t.Fatalf("bottom-up step started at row %d, want 31", y)
			}
			first = false
		} else if y > lastY {
			t.Fatalf("row %d visited after row %d", y, lastY)
		}
		lastY = y
	})
}
