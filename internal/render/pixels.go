package render

import (
	"image"
	"image/color"

	"sandfall/pkg/grid"
)

// Snapshot renders the grid into a standalone RGBA image for headless export.
func Snapshot(g *grid.Grid, palette []color.RGBA, shader grid.Shader) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	g.RenderRGBAShaded(img.Pix, palette, shader)
	return img
}

// HasDirtyChunks reports whether any chunk changed since the last upload.
func HasDirtyChunks(g *grid.Grid) bool {
	for _, v := range g.DirtyFlags() {
		if v == grid.ChunkDirty {
			return true
		}
	}
	return false
}
