package rtile

import "testing"

type invocation struct {
	begin   []int
	size    []int
	partial bool
}

func record(st Storage, orig Desc) []invocation {
	var out []invocation
	Exec(st, orig, func(d *Desc) {
		inv := invocation{partial: d.Partial}
		for k := 0; k < d.NDims; k++ {
			inv.begin = append(inv.begin, d.Begin[k])
			inv.size = append(inv.size, d.Size[k])
		}
		out = append(out, inv)
	})
	return out
}

func TestExec_FullAndPartialCounts(t *testing.T) {
	cases := []struct {
		extent, width     int
		full, partialSize int
	}{
		{extent: 16, width: 4, full: 4, partialSize: 0},
		{extent: 17, width: 4, full: 4, partialSize: 1},
		{extent: 19, width: 4, full: 4, partialSize: 3},
		{extent: 3, width: 4, full: 0, partialSize: 3},
		{extent: 4, width: 4, full: 1, partialSize: 0},
		{extent: 1, width: 8, full: 0, partialSize: 1},
	}

	for _, tc := range cases {
		st := FixedStorage{Widths: []int{tc.width}}
		invs := record(st, NewDesc([]int{0}, []int{tc.extent}))

		fulls, partials := 0, 0
		for _, inv := range invs {
			if inv.partial {
				partials++
				if inv.size[0] != tc.partialSize {
					t.Errorf("E=%d W=%d: partial size %d, want %d", tc.extent, tc.width, inv.size[0], tc.partialSize)
				}
			} else {
				fulls++
				if inv.size[0] != tc.width {
					t.Errorf("E=%d W=%d: full tile size %d, want %d", tc.extent, tc.width, inv.size[0], tc.width)
				}
			}
		}
		if fulls != tc.full {
			t.Errorf("E=%d W=%d: %d full invocations, want %d", tc.extent, tc.width, fulls, tc.full)
		}
		wantPartials := 0
		if tc.partialSize != 0 {
			wantPartials = 1
		}
		if partials != wantPartials {
			t.Errorf("E=%d W=%d: %d partial invocations, want %d", tc.extent, tc.width, partials, wantPartials)
		}
	}
}

func TestExec_ExactCoverage(t *testing.T) {
	for _, extent := range []int{1, 7, 8, 9, 31, 32, 33, 100} {
		st := FixedStorage{Widths: []int{8}}
		counts := make([]int, extent)
		Exec(st, NewDesc([]int{0}, []int{extent}), func(d *Desc) {
			for i := d.Begin[0]; i < d.Begin[0]+d.Size[0]; i++ {
				counts[i]++
			}
		})
		for i, c := range counts {
			if c != 1 {
				t.Fatalf("extent %d: index %d covered %d times, want exactly once", extent, i, c)
			}
		}
	}
}

func TestExec_NoResidualMutation(t *testing.T) {
	st := FixedStorage{Widths: []int{4, 4}}
	orig := NewDesc([]int{3, 5}, []int{10, 7})
	before := orig

	Exec(st, orig, func(*Desc) {})

	if orig != before {
		t.Errorf("original descriptor mutated: %+v, want %+v", orig, before)
	}
}

func TestExec_WorkingTileRestoredBetweenSiblings(t *testing.T) {
	// Within one Exec call the working tile handed to the callback must
	// always start dimension 1 at the original begin, even after a partial
	// iteration of dimension 1 under an earlier dimension-0 stride.
	st := FixedStorage{Widths: []int{2, 4}}
	orig := NewDesc([]int{0, 0}, []int{4, 6})

	var dim1Begins []int
	Exec(st, orig, func(d *Desc) {
		dim1Begins = append(dim1Begins, d.Begin[1])
	})

	// dim0 has 2 full strides; each must see dim1 begins 0 (full), 4 (partial).
	want := []int{0, 4, 0, 4}
	if len(dim1Begins) != len(want) {
		t.Fatalf("got %d invocations, want %d", len(dim1Begins), len(want))
	}
	for i := range want {
		if dim1Begins[i] != want[i] {
			t.Errorf("invocation %d: dim1 begin %d, want %d", i, dim1Begins[i], want[i])
		}
	}
}

func TestExec_TwoDimensionalFullPartialGrid(t *testing.T) {
	st := FixedStorage{Widths: []int{4, 8}}
	invs := record(st, NewDesc([]int{0, 0}, []int{10, 20}))

	// dim0: 2 full + 1 partial; dim1: 2 full + 1 partial => 9 invocations.
	if len(invs) != 9 {
		t.Fatalf("got %d invocations, want 9", len(invs))
	}
	partials := 0
	for _, inv := range invs {
		if inv.partial {
			partials++
		}
	}
	// Partial whenever either dimension is in its postamble: 2*1 + 1*2 + 1*1.
	if partials != 5 {
		t.Errorf("got %d partial invocations, want 5", partials)
	}
}

func TestExec_ZeroExtent(t *testing.T) {
	st := FixedStorage{Widths: []int{4}}
	count := 0
	Exec(st, NewDesc([]int{5}, []int{0}), func(*Desc) { count++ })
	if count != 0 {
		t.Errorf("zero-extent tile produced %d invocations, want 0", count)
	}
}

func TestExec_NonZeroBegin(t *testing.T) {
	st := FixedStorage{Widths: []int{4}}
	invs := record(st, NewDesc([]int{10}, []int{6}))

	if len(invs) != 2 {
		t.Fatalf("got %d invocations, want 2", len(invs))
	}
	if invs[0].begin[0] != 10 || invs[0].partial {
		t.Errorf("first invocation = %+v, want full at 10", invs[0])
	}
	if invs[1].begin[0] != 14 || !invs[1].partial || invs[1].size[0] != 2 {
		t.Errorf("second invocation = %+v, want partial size 2 at 14", invs[1])
	}
}

func TestExec_RankMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("rank mismatch should panic")
		}
	}()
	Exec(FixedStorage{Widths: []int{4, 4}}, NewDesc([]int{0}, []int{8}), func(*Desc) {})
}

func TestStorage_Geometry(t *testing.T) {
	v := NewVecStorage(4)
	if v.NumDims() != 1 {
		t.Errorf("VecStorage rank = %d, want 1", v.NumDims())
	}
	if v.Lanes() < 1 || v.DimElem(0) != v.Lanes() {
		t.Errorf("VecStorage lanes = %d, DimElem = %d", v.Lanes(), v.DimElem(0))
	}

	m := NewMatStorage(4, 4)
	if m.NumDims() != 2 {
		t.Errorf("MatStorage rank = %d, want 2", m.NumDims())
	}
	if m.DimElem(0) != 4 {
		t.Errorf("MatStorage rows = %d, want 4", m.DimElem(0))
	}
	if m.DimElem(1) < 1 {
		t.Errorf("MatStorage lanes = %d, want >= 1", m.DimElem(1))
	}
}
