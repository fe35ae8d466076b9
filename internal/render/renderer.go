//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"sandfall/pkg/grid"
)

// GridPainter updates a single RGBA image from the simulation grid.
type GridPainter struct {
	w, h     int
	img      *ebiten.Image
	buf      []byte
	shader   grid.Shader
	uploaded bool
}

// NewGridPainter allocates a painter for a grid of size w*h. The shader is
// optional and runs per cell after the palette lookup.
func NewGridPainter(w, h int, shader grid.Shader) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), shader: shader}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the grid into the painter image and draws it scaled. The
// upload is skipped entirely while no chunk is dirty; after an upload the
// dirty flags are cleared.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *grid.Grid, palette []color.RGBA, scale int) {
	if g.W != gp.w || g.H != gp.h {
		return
	}
	if !gp.uploaded || HasDirtyChunks(g) {
		g.RenderRGBAShaded(gp.buf, palette, gp.shader)
		gp.img.WritePixels(gp.buf)
		g.ClearDirty()
		gp.uploaded = true
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
