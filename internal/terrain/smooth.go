package terrain

import (
	"sandfall/internal/material"
	"sandfall/pkg/grid"
)

// doubleBuffer keeps a read snapshot and a write target for region-local
// cellular-automaton passes, so neighbor counts never observe half-written
// state within a pass.
type doubleBuffer struct {
	read  []uint8
	write []uint8
	w, h  int
}

func newDoubleBuffer(w, h int) *doubleBuffer {
	return &doubleBuffer{
		read:  make([]uint8, w*h),
		write: make([]uint8, w*h),
		w:     w,
		h:     h,
	}
}

func (b *doubleBuffer) swap() {
	b.read, b.write = b.write, b.read
}

// at reads the snapshot, treating out-of-region neighbors as solid so caves
// never open toward ungenerated space.
func (b *doubleBuffer) at(x, y int) uint8 {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return 1
	}
	return b.read[y*b.w+x]
}

// smoothRegion runs majority-rule smoothing over a pixel rectangle: a cell
// ends up solid when at least 5 of its 8 neighbors are solid. Cells that flip
// solid are written with fill; cells that flip open are emptied.
func smoothRegion(g *grid.Grid, x0, y0, w, h, passes int, fill uint8) {
	if passes <= 0 || w <= 0 || h <= 0 {
		return
	}
	const solidThreshold = 5

	buf := newDoubleBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if material.IsSolid(g.GetXY(x0+x, y0+y).Material()) {
				buf.read[y*w+x] = 1
			}
		}
	}

	for pass := 0; pass < passes; pass++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				neighbors := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						neighbors += int(buf.at(x+dx, y+dy))
					}
				}
				if neighbors >= solidThreshold {
					buf.write[y*w+x] = 1
				} else {
					buf.write[y*w+x] = 0
				}
			}
		}
		buf.swap()
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			solid := buf.read[y*w+x] == 1
			was := material.IsSolid(g.GetXY(x0+x, y0+y).Material())
			if solid && !was {
				g.SetXY(x0+x, y0+y, grid.MakeMaterial(fill))
			} else if !solid && was {
				g.SetXY(x0+x, y0+y, grid.MakeMaterial(material.Empty))
			}
		}
	}
}
