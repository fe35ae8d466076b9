// Package noise provides seeded, reproducible 2D noise for terrain
// generation: gradient noise with fractal variants and cellular (Worley)
// noise. Outputs are bit-identical for the same seed and coordinates.
package noise

import "math"

// Options tunes the fractal variants of a Gradient generator.
type Options struct {
	// Octaves is the number of noise layers summed by the fractal variants.
	Octaves int
	// Falloff scales the amplitude between successive octaves.
	Falloff float64
	// Lacunarity scales the frequency between successive octaves.
	Lacunarity float64
}

// DefaultOptions returns the standard fractal settings.
func DefaultOptions() Options {
	return Options{Octaves: 4, Falloff: 0.5, Lacunarity: 2.0}
}

func (o Options) normalized() Options {
	if o.Octaves < 1 {
		o.Octaves = 1
	}
	if o.Falloff <= 0 {
		o.Falloff = 0.5
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = 2.0
	}
	return o
}

// Gradient is a seeded 2D gradient-noise generator with a shuffled 256-entry
// permutation table and per-entry unit gradient vectors. Construction is the
// expensive part; keep instances in a Cache when generating many chunks.
type Gradient struct {
	perm  [512]int
	gradX [256]float64
	gradY [256]float64
	opts  Options
}

// NewGradient builds a generator for the seed. The same seed always yields
// the same permutation and gradient tables.
func NewGradient(seed int64, opts Options) *Gradient {
	g := &Gradient{opts: opts.normalized()}

	var base [256]int
	for i := range base {
		base[i] = i
	}

	// Fisher-Yates shuffle driven by an LCG so the table depends only on the seed.
	s := seed
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int(uint64(s>>16) % uint64(i+1))
		base[i], base[j] = base[j], base[i]
	}
	for i := 0; i < 256; i++ {
		g.perm[i] = base[i]
		g.perm[i+256] = base[i]
	}

	// Unit gradient vectors from the same LCG stream.
	for i := 0; i < 256; i++ {
		s = s*6364136223846793005 + 1442695040888963407
		angle := float64(uint64(s)>>11) / float64(1<<53) * 2 * math.Pi
		g.gradX[i] = math.Cos(angle)
		g.gradY[i] = math.Sin(angle)
	}
	return g
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func (g *Gradient) dotGrad(hash int, x, y float64) float64 {
	h := hash & 255
	return g.gradX[h]*x + g.gradY[h]*y
}

// Sample returns single-octave noise at (x, y), normalized to [0, 1].
func (g *Gradient) Sample(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := fade(xf)
	v := fade(yf)

	aa := g.perm[g.perm[xi]+yi]
	ab := g.perm[g.perm[xi]+yi+1]
	ba := g.perm[g.perm[xi+1]+yi]
	bb := g.perm[g.perm[xi+1]+yi+1]

	x1 := lerp(u, g.dotGrad(aa, xf, yf), g.dotGrad(ba, xf-1, yf))
	x2 := lerp(u, g.dotGrad(ab, xf, yf-1), g.dotGrad(bb, xf-1, yf-1))
	raw := lerp(v, x1, x2)

	// Raw gradient noise lies within [-sqrt(2)/2, sqrt(2)/2]; rescale to [0,1].
	n := raw*math.Sqrt2*0.5 + 0.5
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// signed returns single-octave noise in [-1, 1].
func (g *Gradient) signed(x, y float64) float64 {
	return g.Sample(x, y)*2 - 1
}

// FBM sums octaves at increasing frequency and decreasing amplitude. The
// general-purpose terrain noise; output in [0, 1].
func (g *Gradient) FBM(x, y float64) float64 {
	sum := 0.0
	norm := 0.0
	amplitude := 1.0
	frequency := 1.0
	for i := 0; i < g.opts.Octaves; i++ {
		sum += g.Sample(x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= g.opts.Falloff
		frequency *= g.opts.Lacunarity
	}
	return sum / norm
}

// Ridged produces sharp mountain-ridge noise by inverting the absolute value
// of each octave. Output in [0, 1], ridges near 1.
func (g *Gradient) Ridged(x, y float64) float64 {
	sum := 0.0
	norm := 0.0
	amplitude := 1.0
	frequency := 1.0
	for i := 0; i < g.opts.Octaves; i++ {
		sum += (1 - math.Abs(g.signed(x*frequency, y*frequency))) * amplitude
		norm += amplitude
		amplitude *= g.opts.Falloff
		frequency *= g.opts.Lacunarity
	}
	return sum / norm
}

// Turbulence sums absolute-value octaves for a cloud-like texture in [0, 1].
func (g *Gradient) Turbulence(x, y float64) float64 {
	sum := 0.0
	norm := 0.0
	amplitude := 1.0
	frequency := 1.0
	for i := 0; i < g.opts.Octaves; i++ {
		sum += math.Abs(g.signed(x*frequency, y*frequency)) * amplitude
		norm += amplitude
		amplitude *= g.opts.Falloff
		frequency *= g.opts.Lacunarity
	}
	return sum / norm
}

// Billowy squares each octave for soft, rounded hills in [0, 1].
func (g *Gradient) Billowy(x, y float64) float64 {
	sum := 0.0
	norm := 0.0
	amplitude := 1.0
	frequency := 1.0
	for i := 0; i < g.opts.Octaves; i++ {
		s := g.signed(x*frequency, y*frequency)
		sum += s * s * amplitude
		norm += amplitude
		amplitude *= g.opts.Falloff
		frequency *= g.opts.Lacunarity
	}
	return sum / norm
}

// Warped domain-warps the coordinates through a secondary fbm pass before
// sampling, producing organic distortion.
func (g *Gradient) Warped(x, y float64) float64 {
	const strength = 4.0
	qx := g.FBM(x+5.2, y+1.3)
	qy := g.FBM(x+1.7, y+9.2)
	return g.FBM(x+strength*qx, y+strength*qy)
}

// SampleZoomed divides the coordinates by zoom before the fbm pass: larger
// zoom values give smoother, larger terrain shapes. Non-positive zoom is
// treated as 1.
func (g *Gradient) SampleZoomed(x, y, zoom float64) float64 {
	if zoom <= 0 {
		zoom = 1
	}
	return g.FBM(x/zoom, y/zoom)
}
