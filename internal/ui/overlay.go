//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"sandfall/internal/core"
	"sandfall/internal/terrain"
	"sandfall/internal/world"
	"sandfall/pkg/grid"
)

type managerProvider interface {
	Manager() *world.Manager
}

// Overlay draws optional debugging visuals on top of the base simulation:
// the chunk lattice with activity state, per-chunk biome tints, and the
// player position with its world coordinates.
type Overlay struct {
	sim   core.Sim
	scale int

	showChunks bool
	showBiomes bool
	showPlayer bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update allows the overlay to update internal state.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showChunks = !o.showChunks
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showBiomes = !o.showBiomes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showPlayer = !o.showPlayer
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	g := o.sim.Grid()
	if g == nil || g.W <= 0 || g.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showBiomes {
		if provider, ok := o.sim.(managerProvider); ok {
			o.drawBiomes(screen, g, provider.Manager(), scale)
		}
	}
	if o.showChunks {
		o.drawChunkStates(screen, g, scale)
	}
	if o.showPlayer {
		if provider, ok := o.sim.(core.PlayerSim); ok {
			o.drawPlayer(screen, provider, scale)
		}
	}
}

// drawChunkStates outlines every chunk: green for active, orange for dirty,
// faint gray for idle.
func (o *Overlay) drawChunkStates(screen *ebiten.Image, g *grid.Grid, scale int) {
	active := g.ActiveFlags()
	dirty := g.DirtyFlags()
	for cy := 0; cy < g.ChunkCountY; cy++ {
		for cx := 0; cx < g.ChunkCountX; cx++ {
			idx := g.ChunkIndex(cx, cy)
			col := color.RGBA{R: 90, G: 90, B: 100, A: 60}
			switch {
			case active[idx] == grid.ChunkActive:
				col = color.RGBA{R: 80, G: 220, B: 110, A: 170}
			case dirty[idx] == grid.ChunkDirty:
				col = color.RGBA{R: 230, G: 160, B: 60, A: 150}
			}
			x0 := float64(cx * g.ChunkSize * scale)
			y0 := float64(cy * g.ChunkSize * scale)
			w := float64(min(g.ChunkSize, g.W-cx*g.ChunkSize) * scale)
			h := float64(min(g.ChunkSize, g.H-cy*g.ChunkSize) * scale)
			o.drawRectOutline(screen, x0, y0, w, h, 1, col)
		}
	}
}

// drawBiomes tints every chunk with its biome color.
func (o *Overlay) drawBiomes(screen *ebiten.Image, g *grid.Grid, mgr *world.Manager, scale int) {
	if mgr == nil {
		return
	}
	for cy := 0; cy < g.ChunkCountY; cy++ {
		for cx := 0; cx < g.ChunkCountX; cx++ {
			wcx, wcy := mgr.GridPosToWorldChunk(cx*g.ChunkSize, cy*g.ChunkSize)
			b := mgr.BiomeAtWorldChunk(wcx, wcy)
			if b == nil {
				continue
			}
			col := biomeColor(b.Kind)
			x0 := float64(cx * g.ChunkSize * scale)
			y0 := float64(cy * g.ChunkSize * scale)
			w := float64(min(g.ChunkSize, g.W-cx*g.ChunkSize) * scale)
			h := float64(min(g.ChunkSize, g.H-cy*g.ChunkSize) * scale)
			o.fillRect(screen, x0, y0, w, h, col)
		}
	}
}

// drawPlayer marks the player cell with a crosshair and prints its world
// position in the corner.
func (o *Overlay) drawPlayer(screen *ebiten.Image, provider core.PlayerSim, scale int) {
	px, py := provider.PlayerPos()
	sx := (float64(px) + 0.5) * float64(scale)
	sy := (float64(py) + 0.5) * float64(scale)
	col := color.RGBA{R: 255, G: 240, B: 120, A: 230}
	arm := math.Max(float64(scale)*3, 6)
	o.drawLine(screen, sx-arm, sy, sx+arm, sy, 1, col)
	o.drawLine(screen, sx, sy-arm, sx, sy+arm, 1, col)

	if provider, ok := o.sim.(managerProvider); ok {
		if mgr := provider.Manager(); mgr != nil {
			ox, oy := mgr.WorldOrigin()
			wcx, wcy := mgr.GridPosToWorldChunk(px, py)
			info := fmt.Sprintf("world (%d,%d) chunk (%d,%d)", px+ox, py+oy, wcx, wcy)
			text.Draw(screen, info, basicfont.Face7x13, 4, 14, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		}
	}
}

func (o *Overlay) fillRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawRectOutline(screen *ebiten.Image, x, y, w, h, thickness float64, col color.RGBA) {
	o.drawLine(screen, x, y, x+w, y, thickness, col)
	o.drawLine(screen, x, y+h, x+w, y+h, thickness, col)
	o.drawLine(screen, x, y, x, y+h, thickness, col)
	o.drawLine(screen, x+w, y, x+w, y+h, thickness, col)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func biomeColor(k terrain.Kind) color.RGBA {
	switch k {
	case terrain.KindSediment:
		return color.RGBA{R: 200, G: 170, B: 90, A: 50}
	case terrain.KindMolten:
		return color.RGBA{R: 230, G: 90, B: 40, A: 50}
	case terrain.KindCrystal:
		return color.RGBA{R: 170, G: 110, B: 230, A: 50}
	case terrain.KindFungal:
		return color.RGBA{R: 110, G: 200, B: 110, A: 50}
	default:
		return color.RGBA{R: 110, G: 130, B: 170, A: 50}
	}
}
