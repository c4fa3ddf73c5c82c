package rtile

import "github.com/stride-hpc/stride/internal/simd"

// FixedStorage is a storage policy with explicit per-dimension widths.
// Used directly in tests and wherever the register geometry is imposed by
// the caller rather than detected.
type FixedStorage struct {
	Widths []int
}

// NumDims returns the storage rank.
func (f FixedStorage) NumDims() int { return len(f.Widths) }

// DimElem returns the element count per register for dim.
func (f FixedStorage) DimElem(dim int) int { return f.Widths[dim] }

// VecStorage is a one-dimensional register storage sized from the detected
// SIMD width for a given element size.
type VecStorage struct {
	lanes int
}

// NewVecStorage returns vector storage for elements of elemSize bytes.
func NewVecStorage(elemSize int) VecStorage {
	return VecStorage{lanes: simd.Lanes(elemSize)}
}

// NumDims returns 1.
func (VecStorage) NumDims() int { return 1 }

// DimElem returns the lane count.
func (v VecStorage) DimElem(int) int { return v.lanes }

// Lanes returns the element count of one vector register.
func (v VecStorage) Lanes() int { return v.lanes }

// MatStorage is a two-dimensional register storage: a register file holding
// Rows vector registers of the detected lane count, as used by outer-product
// style matrix kernels.
type MatStorage struct {
	rows  int
	lanes int
}

// NewMatStorage returns matrix storage with the given register rows and
// lanes detected for elemSize-byte elements.
func NewMatStorage(rows, elemSize int) MatStorage {
	return MatStorage{rows: rows, lanes: simd.Lanes(elemSize)}
}

// NumDims returns 2.
func (MatStorage) NumDims() int { return 2 }

// DimElem returns the row count for dim 0 and the lane count for dim 1.
func (m MatStorage) DimElem(dim int) int {
	if dim == 0 {
		return m.rows
	}
	return m.lanes
}
