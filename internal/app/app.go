//go:build ebiten

package app

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sandfall/internal/core"
	"sandfall/internal/material"
	"sandfall/internal/render"
	"sandfall/internal/ui"
	"sandfall/pkg/grid"
)

// brushCycle is the order the B key steps through paintable materials.
var brushCycle = []uint8{
	material.Sand,
	material.Water,
	material.Oil,
	material.Lava,
	material.Gravel,
	material.Steam,
	material.Rock,
	material.Empty,
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation. The shader is optional
// and applied per cell during rendering.
func New(sim core.Sim, scale int, seed int64, hudWidth int, shader grid.Shader) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H, shader),
		hud:      ui.NewHUD(sim, hudWidth),
		overlay:  ui.NewOverlay(sim, scale),
		scale:    scale,
		hudWidth: hudWidth,
		seed:     seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.handleBrush()
	g.handleMovement()
	g.handlePainting()

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud != nil {
		g.hud.Update(g.sim.Size().W * g.scale)
	}

	if (!g.paused) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleBrush() {
	painter, ok := g.sim.(core.Painter)
	if !ok || !inpututil.IsKeyJustPressed(ebiten.KeyB) {
		return
	}
	current := painter.BrushMaterial()
	next := brushCycle[0]
	for i, id := range brushCycle {
		if id == current {
			next = brushCycle[(i+1)%len(brushCycle)]
			break
		}
	}
	painter.SetBrushMaterial(next)
}

func (g *Game) handleMovement() {
	player, ok := g.sim.(core.PlayerSim)
	if !ok {
		return
	}
	dx, dy := 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= 2
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += 2
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= 2
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += 2
	}
	if dx != 0 || dy != 0 {
		player.MovePlayer(dx, dy)
	}
}

func (g *Game) handlePainting() {
	painter, ok := g.sim.(core.Painter)
	if !ok || !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	size := g.sim.Size()
	x := mx / g.scale
	y := my / g.scale
	if x < 0 || y < 0 || x >= size.W || y >= size.H {
		return
	}
	painter.PaintAt(x, y)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Grid(), g.sim.Palette(), g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
