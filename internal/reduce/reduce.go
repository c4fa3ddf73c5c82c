// Package reduce provides reduction accumulators whose state is privatized
// per worker before a parallel region and combined after it. The combine
// operations are commutative and associative, so results do not depend on
// how many workers executed the region or in what order chunks finished.
package reduce

// Number is the constraint for reducible value types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Reducer is the contract between an accumulator and the execution engine.
// The engine resizes the privatized slots before forking workers and folds
// them after the region exits; user code only ever touches the typed
// accumulation methods.
type Reducer interface {
	resize(workers int)
	fold()
}

// Setup prepares every reducer for a region executed by the given number of
// workers. Any state from a previous region is folded into the running value
// first, so reducers can be reused across regions.
func Setup(reducers []Reducer, workers int) {
	for _, r := range reducers {
		r.resize(workers)
	}
}

// Finish folds all per-worker slots of every reducer into its running value.
func Finish(reducers []Reducer) {
	for _, r := range reducers {
		r.fold()
	}
}

// slot is one per-worker accumulator cell, padded so neighboring workers do
// not share a cache line.
type slot[T any] struct {
	v  T
	ok bool // whether the slot was ever written (min/max/loc identity handling)
	_  [48]byte
}

// Sum accumulates a total.
type Sum[T Number] struct {
	value T
	slots []slot[T]
}

// NewSum returns a Sum reducer starting at init.
func NewSum[T Number](init T) *Sum[T] {
	return &Sum[T]{value: init}
}

// Add accumulates v into the calling worker's private slot.
func (s *Sum[T]) Add(worker int, v T) {
	s.slots[worker].v += v
}

// Get returns the combined total. Valid after the region has finished.
func (s *Sum[T]) Get() T { return s.value }

func (s *Sum[T]) resize(workers int) {
	s.fold()
	s.slots = make([]slot[T], workers)
}

func (s *Sum[T]) fold() {
	for i := range s.slots {
		s.value += s.slots[i].v
	}
	s.slots = nil
}

// Min tracks a minimum value.
type Min[T Number] struct {
	value T
	slots []slot[T]
}

// NewMin returns a Min reducer starting at init.
func NewMin[T Number](init T) *Min[T] {
	return &Min[T]{value: init}
}

// Observe offers v to the calling worker's private slot.
func (m *Min[T]) Observe(worker int, v T) {
	sl := &m.slots[worker]
	if !sl.ok || v < sl.v {
		sl.v, sl.ok = v, true
	}
}

// Get returns the combined minimum. Valid after the region has finished.
func (m *Min[T]) Get() T { return m.value }

func (m *Min[T]) resize(workers int) {
	m.fold()
	m.slots = make([]slot[T], workers)
}

func (m *Min[T]) fold() {
	for i := range m.slots {
		if m.slots[i].ok && m.slots[i].v < m.value {
			m.value = m.slots[i].v
		}
	}
	m.slots = nil
}

// Max tracks a maximum value.
type Max[T Number] struct {
	value T
	slots []slot[T]
}

// NewMax returns a Max reducer starting at init.
func NewMax[T Number](init T) *Max[T] {
	return &Max[T]{value: init}
}

// Observe offers v to the calling worker's private slot.
func (m *Max[T]) Observe(worker int, v T) {
	sl := &m.slots[worker]
	if !sl.ok || v > sl.v {
		sl.v, sl.ok = v, true
	}
}

// Get returns the combined maximum. Valid after the region has finished.
func (m *Max[T]) Get() T { return m.value }

func (m *Max[T]) resize(workers int) {
	m.fold()
	m.slots = make([]slot[T], workers)
}

func (m *Max[T]) fold() {
	for i := range m.slots {
		if m.slots[i].ok && m.slots[i].v > m.value {
			m.value = m.slots[i].v
		}
	}
	m.slots = nil
}
