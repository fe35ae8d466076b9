package terrain

import "sandfall/pkg/noise"

// ShapeStrategy decides whether a position inside the terrain body is carved
// open. Strategies are selected by the biome's Kind tag rather than stored in
// the biome record, so biome definitions stay plain data.
type ShapeStrategy interface {
	Carve(n *noise.Gradient, wx, wy float64, b *Biome, depth float64) bool
}

// MaterialStrategy picks the fill material for an uncarved position.
type MaterialStrategy interface {
	Material(n *noise.Gradient, wx, wy float64, b *Biome, depth float64) uint8
}

// minCaveDepth keeps caves from breaching the surface band.
const minCaveDepth = 6

type fbmShape struct{}

func (fbmShape) Carve(n *noise.Gradient, wx, wy float64, b *Biome, depth float64) bool {
	if depth < minCaveDepth {
		return false
	}
	return n.FBM(wx*b.CaveFreq, wy*b.CaveFreq) > b.CaveThreshold
}

type ridgedShape struct{}

func (ridgedShape) Carve(n *noise.Gradient, wx, wy float64, b *Biome, depth float64) bool {
	if depth < minCaveDepth {
		return false
	}
	return n.Ridged(wx*b.CaveFreq, wy*b.CaveFreq) > b.CaveThreshold
}

type warpedShape struct{}

func (warpedShape) Carve(n *noise.Gradient, wx, wy float64, b *Biome, depth float64) bool {
	if depth < minCaveDepth {
		return false
	}
	return n.Warped(wx*b.CaveFreq, wy*b.CaveFreq) > b.CaveThreshold
}

// layeredMaterial fills depth bands: surface, secondary, base.
type layeredMaterial struct{}

const (
	surfaceBandDepth   = 4
	secondaryBandDepth = 14
)

func (layeredMaterial) Material(n *noise.Gradient, wx, wy float64, b *Biome, depth float64) uint8 {
	switch {
	case depth < surfaceBandDepth:
		return b.Surface
	case depth < secondaryBandDepth:
		return b.Secondary
	default:
		return b.Base
	}
}

// pocketMaterial is layeredMaterial with billowy noise pockets of the biome's
// secondary material punched through the base layer.
type pocketMaterial struct{}

func (pocketMaterial) Material(n *noise.Gradient, wx, wy float64, b *Biome, depth float64) uint8 {
	m := layeredMaterial{}.Material(n, wx, wy, b, depth)
	if m == b.Base && n.Billowy(wx*b.CaveFreq*2, wy*b.CaveFreq*2) > 0.55 {
		return b.Secondary
	}
	return m
}

var strategies = map[Kind]struct {
	shape ShapeStrategy
	fill  MaterialStrategy
}{
	KindCaverns:  {fbmShape{}, layeredMaterial{}},
	KindSediment: {fbmShape{}, pocketMaterial{}},
	KindMolten:   {ridgedShape{}, layeredMaterial{}},
	KindCrystal:  {warpedShape{}, pocketMaterial{}},
	KindFungal:   {warpedShape{}, layeredMaterial{}},
}

// strategiesFor resolves the carve and fill strategies for a biome kind,
// defaulting to the caverns pair for unknown kinds.
func strategiesFor(k Kind) (ShapeStrategy, MaterialStrategy) {
	if s, ok := strategies[k]; ok {
		return s.shape, s.fill
	}
	return fbmShape{}, layeredMaterial{}
}
