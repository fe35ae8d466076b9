package grid

import "image/color"

// Shader post-processes the palette-resolved color of one cell. It receives
// the material, the cell coordinates, the base color from the palette and the
// raw cell, enabling depth shading or noise-textured variation without
// touching the grid.
type Shader func(material uint8, x, y int, base color.RGBA, cell Cell) color.RGBA

// RenderRGBA projects every cell's material through the palette into an
// RGBA8 pixel buffer. When the palette has fewer than 256 entries, materials
// past the end clamp to the last entry; an empty palette clears the buffer.
// The buffer must hold at least 4*W*H bytes or the call is a no-op.
func (g *Grid) RenderRGBA(buf []byte, palette []color.RGBA) {
	total := g.W * g.H
	if len(buf) < 4*total {
		return
	}
	if len(palette) == 0 {
		for i := 0; i < 4*total; i++ {
			buf[i] = 0
		}
		return
	}
	last := len(palette) - 1
	for i := 0; i < total; i++ {
		idx := int(g.cells[i].Material())
		if idx > last {
			idx = last
		}
		col := palette[idx]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// RenderRGBAShaded is RenderRGBA with a per-pixel shader applied after the
// palette lookup. A nil shader behaves exactly like RenderRGBA.
func (g *Grid) RenderRGBAShaded(buf []byte, palette []color.RGBA, shader Shader) {
	if shader == nil {
		g.RenderRGBA(buf, palette)
		return
	}
	total := g.W * g.H
	if len(buf) < 4*total || len(palette) == 0 {
		g.RenderRGBA(buf, palette)
		return
	}
	last := len(palette) - 1
	i := 0
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			cell := g.cells[i]
			mat := cell.Material()
			idx := int(mat)
			if idx > last {
				idx = last
			}
			col := shader(mat, x, y, palette[idx], cell)
			base := i * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
			i++
		}
	}
}
