package simd

import "testing"

func TestCurrentWidth_Geometry(t *testing.T) {
	w := CurrentWidth()
	if w < 16 {
		t.Errorf("CurrentWidth() = %d, want at least 16 (scalar mode still reports 16)", w)
	}
	if w&(w-1) != 0 {
		t.Errorf("CurrentWidth() = %d, want a power of two", w)
	}
}

func TestLanes(t *testing.T) {
	w := CurrentWidth()
	if got := Lanes(4); got != w/4 {
		t.Errorf("Lanes(4) = %d, want %d", got, w/4)
	}
	if got := Lanes(8); got != w/8 {
		t.Errorf("Lanes(8) = %d, want %d", got, w/8)
	}
	if got := Lanes(1); got != w {
		t.Errorf("Lanes(1) = %d, want %d", got, w)
	}
}

func TestLanes_DegenerateSizes(t *testing.T) {
	if Lanes(0) != 1 {
		t.Errorf("Lanes(0) = %d, want 1", Lanes(0))
	}
	if Lanes(-4) != 1 {
		t.Errorf("Lanes(-4) = %d, want 1", Lanes(-4))
	}
	// An element wider than the register still gets one lane.
	if Lanes(CurrentWidth() * 2) != 1 {
		t.Errorf("oversized element should report 1 lane")
	}
}

func TestLevel_String(t *testing.T) {
	names := map[Level]string{
		LevelScalar: "scalar",
		LevelSSE2:   "sse2",
		LevelAVX2:   "avx2",
		LevelAVX512: "avx512",
		LevelNEON:   "neon",
	}
	for level, want := range names {
		if level.String() != want {
			t.Errorf("%d.String() = %q, want %q", level, level.String(), want)
		}
	}
	if Level(99).String() != "unknown" {
		t.Errorf("out-of-range level should stringify as unknown")
	}
}

func TestCurrentLevel_ConsistentWithWidth(t *testing.T) {
	widths := map[Level]int{
		LevelScalar: 16,
		LevelSSE2:   16,
		LevelAVX2:   32,
		LevelAVX512: 64,
		LevelNEON:   16,
	}
	want, ok := widths[CurrentLevel()]
	if !ok {
		t.Fatalf("unknown current level %v", CurrentLevel())
	}
	if CurrentWidth() != want {
		t.Errorf("level %v reports width %d, want %d", CurrentLevel(), CurrentWidth(), want)
	}
}
