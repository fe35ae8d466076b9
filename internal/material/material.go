// Package material holds the static material property tables. A cell stores
// only a material ID; everything physical about the material (its category,
// density, color) is looked up here and never duplicated in the grid.
package material

import "image/color"

// Material IDs. 0 is always empty space.
const (
	Empty uint8 = iota
	Rock
	Dirt
	Grass
	Sand
	Stone
	Gravel
	Wood
	Platform
	Ice
	Crystal
	Gold
	Iron
	Coal
	Water
	Oil
	Lava
	Acid
	Steam
	Smoke
	Spore
)

// Category classifies how a material behaves under simulation.
type Category uint8

const (
	CategoryEmpty Category = iota
	CategorySolid
	CategoryPowder
	CategoryFluid
	CategoryGas
)

// Props describes one material.
type Props struct {
	Name     string
	Category Category
	// Density orders materials within a category: denser powders sink
	// through lighter fluids, lighter gases rise faster.
	Density uint8
	Color   color.RGBA
}

// table is indexed by material ID. Unlisted IDs read as empty.
var table = [256]Props{
	Empty:    {Name: "empty", Category: CategoryEmpty, Color: color.RGBA{12, 12, 16, 255}},
	Rock:     {Name: "rock", Category: CategorySolid, Density: 200, Color: color.RGBA{96, 90, 86, 255}},
	Dirt:     {Name: "dirt", Category: CategorySolid, Density: 120, Color: color.RGBA{110, 80, 48, 255}},
	Grass:    {Name: "grass", Category: CategorySolid, Density: 110, Color: color.RGBA{72, 140, 62, 255}},
	Sand:     {Name: "sand", Category: CategoryPowder, Density: 140, Color: color.RGBA{216, 192, 120, 255}},
	Stone:    {Name: "stone", Category: CategorySolid, Density: 210, Color: color.RGBA{128, 126, 130, 255}},
	Gravel:   {Name: "gravel", Category: CategoryPowder, Density: 160, Color: color.RGBA{140, 132, 120, 255}},
	Wood:     {Name: "wood", Category: CategorySolid, Density: 90, Color: color.RGBA{120, 92, 54, 255}},
	Platform: {Name: "platform", Category: CategorySolid, Density: 100, Color: color.RGBA{156, 116, 72, 255}},
	Ice:      {Name: "ice", Category: CategorySolid, Density: 95, Color: color.RGBA{168, 210, 236, 255}},
	Crystal:  {Name: "crystal", Category: CategorySolid, Density: 180, Color: color.RGBA{160, 110, 220, 255}},
	Gold:     {Name: "gold", Category: CategorySolid, Density: 240, Color: color.RGBA{226, 188, 64, 255}},
	Iron:     {Name: "iron", Category: CategorySolid, Density: 230, Color: color.RGBA{176, 160, 150, 255}},
	Coal:     {Name: "coal", Category: CategorySolid, Density: 150, Color: color.RGBA{48, 46, 44, 255}},
	Water:    {Name: "water", Category: CategoryFluid, Density: 100, Color: color.RGBA{52, 110, 200, 255}},
	Oil:      {Name: "oil", Category: CategoryFluid, Density: 80, Color: color.RGBA{70, 58, 40, 255}},
	Lava:     {Name: "lava", Category: CategoryFluid, Density: 180, Color: color.RGBA{236, 98, 36, 255}},
	Acid:     {Name: "acid", Category: CategoryFluid, Density: 95, Color: color.RGBA{130, 220, 70, 255}},
	Steam:    {Name: "steam", Category: CategoryGas, Density: 10, Color: color.RGBA{190, 200, 210, 180}},
	Smoke:    {Name: "smoke", Category: CategoryGas, Density: 20, Color: color.RGBA{70, 70, 74, 200}},
	Spore:    {Name: "spore", Category: CategoryGas, Density: 15, Color: color.RGBA{150, 180, 90, 200}},
}

// Get returns the properties for a material ID.
func Get(id uint8) Props { return table[id] }

// CategoryOf returns the simulation category for a material ID.
func CategoryOf(id uint8) Category { return table[id].Category }

// IsSolid reports whether the material blocks movement.
func IsSolid(id uint8) bool { return table[id].Category == CategorySolid }

// Palette builds the 256-entry render palette from the material colors.
func Palette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		palette[i] = table[i].Color
		if table[i].Name == "" {
			palette[i] = table[Empty].Color
		}
	}
	return palette
}
