package core

import (
	"image/color"

	"sandfall/pkg/grid"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a cell simulation must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Grid() *grid.Grid
	Palette() []color.RGBA
}

// PlayerSim is implemented by sims that track a movable player position
// so front-ends can scroll the world around it.
type PlayerSim interface {
	MovePlayer(dx, dy int)
	PlayerPos() (int, int)
}

// Painter is implemented by sims that accept brush input.
type Painter interface {
	PaintAt(x, y int)
	SetBrushMaterial(id uint8)
	BrushMaterial() uint8
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
