// Package segment provides iteration-space descriptors for the stride
// execution engine. A Range describes one logical dimension's domain as a
// half-open interval [begin, end).
package segment

import "fmt"

// Element is the constraint for range element types.
type Element interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Range describes the half-open interval [begin, end) over a fixed element
// type. A Range is immutable once constructed; Slice returns a new Range over
// a sub-interval.
type Range[T Element] struct {
	begin T
	end   T
}

// New constructs a Range over [begin, end).
//
// Construction with begin > end is a configuration error and panics
// immediately rather than clamping; a silently empty or inverted domain would
// propagate garbage iteration counts into every loop built on top of it.
func New[T Element](begin, end T) Range[T] {
	if begin > end {
		panic(fmt.Sprintf("segment: invalid range [%v, %v): begin > end", begin, end))
	}
	return Range[T]{begin: begin, end: end}
}

// NewUnchecked constructs a Range without the begin <= end check.
//
// Intended for hot device-side code paths where the caller has already
// established the precondition. A Range built from an inverted interval has
// undefined iteration behavior.
func NewUnchecked[T Element](begin, end T) Range[T] {
	return Range[T]{begin: begin, end: end}
}

// WithSize constructs a Range over [begin, begin+size).
func WithSize[T Element](begin, size T) Range[T] {
	return New(begin, begin+size)
}

// Begin returns the first element of the range.
func (r Range[T]) Begin() T { return r.begin }

// End returns the end-exclusive boundary of the range.
func (r Range[T]) End() T { return r.end }

// Size returns the number of elements in the range.
func (r Range[T]) Size() int { return int(r.end - r.begin) }

// At returns the i-th element of the range.
func (r Range[T]) At(i int) T { return r.begin + T(i) }

// Empty reports whether the range contains no elements.
func (r Range[T]) Empty() bool { return r.begin == r.end }

// Equal reports whether two ranges cover the same interval.
func (r Range[T]) Equal(other Range[T]) bool {
	return r.begin == other.begin && r.end == other.end
}

// ForEach invokes f for every element of the range in increasing order.
func (r Range[T]) ForEach(f func(T)) {
	for v := r.begin; v < r.end; v++ {
		f(v)
	}
}

// Slice returns a new Range covering length elements starting at the given
// offset from the range's begin. The result is [begin+offset,
// begin+offset+length); it is not clipped against the parent range, matching
// the descriptor-slicing contract where the caller owns bounds.
func (r Range[T]) Slice(offset, length T) Range[T] {
	return New(r.begin+offset, r.begin+offset+length)
}

// String returns a human-readable interval form.
func (r Range[T]) String() string {
	return fmt.Sprintf("[%v, %v)", r.begin, r.end)
}

// AsIndex converts the range to the kernel engine's index element type.
func (r Range[T]) AsIndex() Range[int] {
	return Range[int]{begin: int(r.begin), end: int(r.end)}
}
