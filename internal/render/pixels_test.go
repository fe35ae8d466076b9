package render

import (
	"image/color"
	"testing"

	"sandfall/pkg/grid"
)

func TestSnapshotUsesPalette(t *testing.T) {
	g := grid.New(4, 4, 2)
	g.SetXY(1, 2, grid.MakeMaterial(1))
	palette := []color.RGBA{
		{10, 10, 10, 255},
		{200, 50, 50, 255},
	}

	img := Snapshot(g, palette, nil)

	if got := img.RGBAAt(1, 2); got != palette[1] {
		t.Fatalf("pixel (1,2) = %v, want %v", got, palette[1])
	}
	if got := img.RGBAAt(0, 0); got != palette[0] {
		t.Fatalf("pixel (0,0) = %v, want %v", got, palette[0])
	}
}

func TestSnapshotAppliesShader(t *testing.T) {
	g := grid.New(2, 2, 2)
	palette := []color.RGBA{{10, 20, 30, 255}}
	shader := func(m uint8, x, y int, base color.RGBA, c grid.Cell) color.RGBA {
		base.R = 99
		return base
	}

	img := Snapshot(g, palette, shader)

	if got := img.RGBAAt(1, 1); got.R != 99 {
		t.Fatalf("shader not applied, pixel = %v", got)
	}
}

func TestHasDirtyChunks(t *testing.T) {
	g := grid.New(8, 8, 4)
	if HasDirtyChunks(g) {
		t.Fatal("fresh grid should have no dirty chunks")
	}
	g.PaintRect(0, 0, 2, 2, grid.MakeMaterial(1))
	if !HasDirtyChunks(g) {
		t.Fatal("painting should mark a chunk dirty")
	}
	g.ClearDirty()
	if HasDirtyChunks(g) {
		t.Fatal("dirty flags should clear")
	}
}
