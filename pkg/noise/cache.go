package noise

// Cache memoizes generator construction by seed so chunk generation does not
// rebuild permutation tables on every call. It is an explicit object rather
// than package-level state: independent worlds own independent caches and
// cannot contaminate each other's seed space.
type Cache struct {
	gradients map[gradientKey]*Gradient
	cellulars map[cellularKey]*Cellular
}

type gradientKey struct {
	seed int64
	opts Options
}

type cellularKey struct {
	seed    int64
	density float64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		gradients: map[gradientKey]*Gradient{},
		cellulars: map[cellularKey]*Cellular{},
	}
}

// Gradient returns the cached generator for (seed, opts), constructing it on
// first use.
func (c *Cache) Gradient(seed int64, opts Options) *Gradient {
	key := gradientKey{seed: seed, opts: opts.normalized()}
	if g, ok := c.gradients[key]; ok {
		return g
	}
	g := NewGradient(seed, opts)
	c.gradients[key] = g
	return g
}

// Cellular returns the cached Worley generator for (seed, density).
func (c *Cache) Cellular(seed int64, density float64) *Cellular {
	key := cellularKey{seed: seed, density: density}
	if w, ok := c.cellulars[key]; ok {
		return w
	}
	w := NewCellular(seed, density)
	c.cellulars[key] = w
	return w
}

// Clear drops every cached generator.
func (c *Cache) Clear() {
	c.gradients = map[gradientKey]*Gradient{}
	c.cellulars = map[cellularKey]*Cellular{}
}
