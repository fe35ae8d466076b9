package grid

import "sandfall/pkg/core"

// Order selects the per-cell visitation sequence used when stepping a region.
type Order int

const (
	// RowMajor visits top-to-bottom, left-to-right. The default for passes
	// that do not care about direction.
	RowMajor Order = iota
	// BottomUp visits the bottom row first and ascends. Required for gravity
	// rules: a cell that already fell lands on a row that has been visited,
	// so a single pass never moves the same grain twice. Down is +Y.
	BottomUp
	// Morton visits along the Z-order curve for better 2D cache locality in
	// neighbor-heavy rules.
	Morton
)

// VisitFunc receives each coordinate produced by a traversal.
type VisitFunc func(x, y int)

// ForEachRowMajor visits every (x, y) in a w by h rectangle anchored at the
// origin, top-to-bottom and left-to-right. Non-positive dimensions produce
// zero visits.
func ForEachRowMajor(w, h int, fn VisitFunc) {
	ForEachRectRowMajor(0, 0, w, h, fn)
}

// ForEachRectRowMajor is ForEachRowMajor for a rectangle anchored at (x0, y0).
func ForEachRectRowMajor(x0, y0, w, h int, fn VisitFunc) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fn(x0+x, y0+y)
		}
	}
}

// ForEachBottomUp visits every (x, y) in a w by h rectangle starting from the
// bottom row and ascending.
func ForEachBottomUp(w, h int, fn VisitFunc) {
	ForEachRectBottomUp(0, 0, w, h, fn)
}

// ForEachRectBottomUp is ForEachBottomUp for a rectangle anchored at (x0, y0).
func ForEachRectBottomUp(x0, y0, w, h int, fn VisitFunc) {
	for y := h - 1; y >= 0; y-- {
		for x := 0; x < w; x++ {
			fn(x0+x, y0+y)
		}
	}
}

// ForEachMorton visits every (x, y) in a w by h rectangle in Z-order. Codes
// decoding outside the rectangle are skipped, so non-power-of-two sizes are
// still visited exactly once each.
func ForEachMorton(w, h int, fn VisitFunc) {
	ForEachRectMorton(0, 0, w, h, fn)
}

// ForEachRectMorton is ForEachMorton for a rectangle anchored at (x0, y0).
func ForEachRectMorton(x0, y0, w, h int, fn VisitFunc) {
	if w <= 0 || h <= 0 {
		return
	}
	side := w
	if h > side {
		side = h
	}
	bits := uint(0)
	for 1<<bits < side {
		bits++
	}
	total := uint32(1) << (2 * bits)
	for code := uint32(0); code < total; code++ {
		x := int(compact1By1(code))
		y := int(compact1By1(code >> 1))
		if x < w && y < h {
			fn(x0+x, y0+y)
		}
	}
}

// MortonEncode interleaves the low 16 bits of x and y into a Z-order code.
func MortonEncode(x, y uint32) uint32 {
	return part1By1(x) | part1By1(y)<<1
}

// MortonDecode splits a Z-order code back into its x and y parts.
func MortonDecode(code uint32) (x, y uint32) {
	return compact1By1(code), compact1By1(code >> 1)
}

// part1By1 spreads the low 16 bits of v into the even bit positions.
func part1By1(v uint32) uint32 {
	v &= 0x0000ffff
	v = (v | v<<8) & 0x00ff00ff
	v = (v | v<<4) & 0x0f0f0f0f
	v = (v | v<<2) & 0x33333333
	v = (v | v<<1) & 0x55555555
	return v
}

// compact1By1 collects the even bit positions of v into the low 16 bits.
func compact1By1(v uint32) uint32 {
	v &= 0x55555555
	v = (v | v>>1) & 0x33333333
	v = (v | v>>2) & 0x0f0f0f0f
	v = (v | v>>4) & 0x00ff00ff
	v = (v | v>>8) & 0x0000ffff
	return v
}

// ForEachChunkOrder visits every index in [0, count) exactly once, in a
// pseudo-random order that is fully determined by the seed. It walks the
// indices with a step coprime to count, which is a bijection over
// Z/count without shuffling an array. Used to avoid scan-line bias when the
// same chunks would otherwise always update first.
func ForEachChunkOrder(count int, seed int64, fn func(index int)) {
	if count <= 0 {
		return
	}
	rng := core.NewRNG(seed).Source()
	start := rng.IntN(count)
	step := rng.IntN(count) | 1
	for gcd(step, count) != 1 {
		step += 2
	}
	for i := 0; i < count; i++ {
		fn((start + i*step) % count)
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
