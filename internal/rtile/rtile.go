// Package rtile implements the register tile executor: it walks a
// multi-dimensional tile descriptor and emits full-width sub-tile
// invocations while a whole register of elements remains in a dimension,
// plus one partial (remainder) invocation per dimension when the extent is
// not a multiple of the register width.
//
// "Full" invocations may use unmasked register operations for exactly
// DimElem(dim) elements; "partial" invocations must treat the descriptor's
// size as the authoritative valid-element count and use masked or
// bounds-checked variants.
package rtile

import "fmt"

// MaxDims is the maximum tile rank the executor supports.
const MaxDims = 4

// Desc is a mutable working view over a tile of the iteration space. It is
// stack-local to one executor invocation: the recursion saves and restores
// every field it touches, so callers observe no residual mutation.
type Desc struct {
	Begin   [MaxDims]int
	Size    [MaxDims]int
	NDims   int
	Partial bool
}

// NewDesc builds a tile descriptor from per-dimension begins and sizes.
func NewDesc(begin, size []int) Desc {
	if len(begin) != len(size) {
		panic(fmt.Sprintf("rtile: begin/size rank mismatch: %d vs %d", len(begin), len(size)))
	}
	if len(begin) > MaxDims {
		panic(fmt.Sprintf("rtile: rank %d exceeds MaxDims %d", len(begin), MaxDims))
	}
	var d Desc
	d.NDims = len(begin)
	copy(d.Begin[:], begin)
	copy(d.Size[:], size)
	return d
}

// Full reports whether the tile covers whole registers in every dimension.
func (d *Desc) Full() bool { return !d.Partial }

// Storage is the register storage collaborator: it fixes how many elements
// of a tile dimension one register holds.
type Storage interface {
	NumDims() int
	DimElem(dim int) int
}

// Exec covers orig exactly once with full-width and partial sub-tiles,
// invoking body for each. Dimensions are walked outermost-first; for each
// dimension the cursor advances in DimElem(dim) strides while a whole
// register fits, then a single remainder invocation is emitted with the tile
// demoted to partial and its size set to the exact remainder.
func Exec(st Storage, orig Desc, body func(*Desc)) {
	if st.NumDims() != orig.NDims {
		panic(fmt.Sprintf("rtile: storage rank %d does not match tile rank %d", st.NumDims(), orig.NDims))
	}

	// The working tile starts as a full tile: register-width sizes, begins
	// from the original. Tiling loops demote it to partial only while they
	// execute a postamble.
	tile := orig
	for d := 0; d < orig.NDims; d++ {
		tile.Size[d] = st.DimElem(d)
	}
	tile.Partial = false

	execDim(st, &orig, &tile, 0, body)
}

func execDim(st Storage, orig, tile *Desc, dim int, body func(*Desc)) {
	if dim == orig.NDims {
		body(tile)
		return
	}

	origBegin := orig.Begin[dim]
	origSize := orig.Size[dim]
	step := st.DimElem(dim)
	if step <= 0 {
		panic(fmt.Sprintf("rtile: storage reports non-positive width %d for dim %d", step, dim))
	}

	// Full tiles: advance while a whole register of elements remains.
	for tile.Begin[dim] = origBegin; tile.Begin[dim]+step <= origBegin+origSize; tile.Begin[dim] += step {
		execDim(st, orig, tile, dim+1, body)
	}

	// Postamble if needed.
	if tile.Begin[dim] < origBegin+origSize {
		wasPartial := tile.Partial
		tile.Partial = true

		tmpSize := tile.Size[dim]
		tile.Size[dim] = origBegin + origSize - tile.Begin[dim]

		execDim(st, orig, tile, dim+1, body)

		tile.Size[dim] = tmpSize
		tile.Partial = wasPartial
	}

	// Reset so sibling and outer iterations see the original begin.
	tile.Begin[dim] = origBegin
}
