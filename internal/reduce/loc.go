package reduce

// ValLoc pairs a reduced value with the loop index it was observed at.
type ValLoc[T Number] struct {
	Val T
	Loc int
}

type locSlot[T Number] struct {
	v  ValLoc[T]
	ok bool
	_  [40]byte
}

// MinLoc tracks a minimum value and the index where it occurred. Ties are
// broken toward the smallest index so the result is independent of worker
// count and chunk boundaries.
type MinLoc[T Number] struct {
	value ValLoc[T]
	slots []locSlot[T]
}

// NewMinLoc returns a MinLoc reducer starting at init with location loc.
func NewMinLoc[T Number](init T, loc int) *MinLoc[T] {
	return &MinLoc[T]{value: ValLoc[T]{Val: init, Loc: loc}}
}

// Observe offers (v, loc) to the calling worker's private slot.
func (m *MinLoc[T]) Observe(worker int, v T, loc int) {
	sl := &m.slots[worker]
	if !sl.ok || lessLoc(v, loc, sl.v) {
		sl.v, sl.ok = ValLoc[T]{Val: v, Loc: loc}, true
	}
}

// Get returns the combined minimum and its location.
func (m *MinLoc[T]) Get() ValLoc[T] { return m.value }

func (m *MinLoc[T]) resize(workers int) {
	m.fold()
	m.slots = make([]locSlot[T], workers)
}

func (m *MinLoc[T]) fold() {
	for i := range m.slots {
		if m.slots[i].ok && lessLoc(m.slots[i].v.Val, m.slots[i].v.Loc, m.value) {
			m.value = m.slots[i].v
		}
	}
	m.slots = nil
}

// MaxLoc tracks a maximum value and the index where it occurred, with the
// same smallest-index tie break as MinLoc.
type MaxLoc[T Number] struct {
	value ValLoc[T]
	slots []locSlot[T]
}

// NewMaxLoc returns a MaxLoc reducer starting at init with location loc.
func NewMaxLoc[T Number](init T, loc int) *MaxLoc[T] {
	return &MaxLoc[T]{value: ValLoc[T]{Val: init, Loc: loc}}
}

// Observe offers (v, loc) to the calling worker's private slot.
func (m *MaxLoc[T]) Observe(worker int, v T, loc int) {
	sl := &m.slots[worker]
	if !sl.ok || greaterLoc(v, loc, sl.v) {
		sl.v, sl.ok = ValLoc[T]{Val: v, Loc: loc}, true
	}
}

// Get returns the combined maximum and its location.
func (m *MaxLoc[T]) Get() ValLoc[T] { return m.value }

func (m *MaxLoc[T]) resize(workers int) {
	m.fold()
	m.slots = make([]locSlot[T], workers)
}

func (m *MaxLoc[T]) fold() {
	for i := range m.slots {
		if m.slots[i].ok && greaterLoc(m.slots[i].v.Val, m.slots[i].v.Loc, m.value) {
			m.value = m.slots[i].v
		}
	}
	m.slots = nil
}

func lessLoc[T Number](v T, loc int, cur ValLoc[T]) bool {
	if v != cur.Val {
		return v < cur.Val
	}
	return loc < cur.Loc
}

func greaterLoc[T Number](v T, loc int, cur ValLoc[T]) bool {
	if v != cur.Val {
		return v > cur.Val
	}
	return loc < cur.Loc
}
