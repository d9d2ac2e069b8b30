package matchfinder

import "testing"

func TestRLESizeCapsAtLongest(t *testing.T) {
	src := make([]byte, 200)
	for i := range src {
		src[i] = 0x41
	}
	mf := New(src)
	if got := mf.RLESize(0); got != 64 {
		t.Fatalf("RLESize = %d, want 64", got)
	}
}

func TestRLESizeStopsAtMismatch(t *testing.T) {
	src := []byte{0x41, 0x41, 0x41, 0x42}
	mf := New(src)
	if got := mf.RLESize(0); got != 3 {
		t.Fatalf("RLESize = %d, want 3", got)
	}
}

func TestLZMatchFindsRepeat(t *testing.T) {
	src := []byte("ABCABC")
	mf := New(src)
	for i := 0; i < 3; i++ {
		mf.Advance(i)
	}
	off, l := mf.LZMatch(3, 3, 32767, 64)
	if off != 3 || l != 3 {
		t.Fatalf("LZMatch = (%d, %d), want (3, 3)", off, l)
	}
}

func TestLZMatchNoCandidate(t *testing.T) {
	src := []byte("ABCDEF")
	mf := New(src)
	for i := 0; i < 3; i++ {
		mf.Advance(i)
	}
	off, l := mf.LZMatch(3, 3, 32767, 64)
	if off != 0 || l != 0 {
		t.Fatalf("LZMatch = (%d, %d), want (0, 0)", off, l)
	}
}

func TestLZMatchPrefersSmallestOffsetOnTie(t *testing.T) {
	// "ABC" repeats at offset 6 and offset 3 from position 6; both
	// matches have equal length, so the nearer (offset 3) must win.
	src := []byte("ABCABCABC")
	mf := New(src)
	for i := 0; i < 6; i++ {
		mf.Advance(i)
	}
	off, l := mf.LZMatch(6, 3, 32767, 64)
	if off != 3 {
		t.Fatalf("offset = %d, want 3 (nearest match)", off)
	}
	if l < 3 {
		t.Fatalf("length = %d, want >= 3", l)
	}
}

func TestLZ2OffsetWithinWindow(t *testing.T) {
	src := []byte("XYXY")
	mf := New(src)
	for i := 0; i < 2; i++ {
		mf.Advance(i)
	}
	off, ok := mf.LZ2Offset(2, 94)
	if !ok || off != 2 {
		t.Fatalf("LZ2Offset = (%d, %v), want (2, true)", off, ok)
	}
}

func TestLZ2OffsetNone(t *testing.T) {
	src := []byte("XYZW")
	mf := New(src)
	for i := 0; i < 2; i++ {
		mf.Advance(i)
	}
	_, ok := mf.LZ2Offset(2, 94)
	if ok {
		t.Fatalf("expected no LZ2 match")
	}
}

func TestLZ2OffsetAtExactWindowBoundary(t *testing.T) {
	// The only repeat of "XY" is exactly 94 bytes back, which is the
	// maximum LZ2 window (LZ2Offset=94). The candidate at cand == limit
	// must still be matchable.
	src := make([]byte, 96)
	for i := range src {
		src[i] = byte(2 + i%50) // filler distinct from 'X'/'Y' everywhere else
	}
	src[0], src[1] = 'X', 'Y'
	src[94], src[95] = 'X', 'Y'
	mf := New(src)
	for i := 0; i < 94; i++ {
		mf.Advance(i)
	}
	off, ok := mf.LZ2Offset(94, 94)
	if !ok || off != 94 {
		t.Fatalf("LZ2Offset = (%d, %v), want (94, true)", off, ok)
	}
}

func TestLZMatchAtExactWindowBoundary(t *testing.T) {
	// The only repeat of "ABC" is exactly 32767 bytes back, the maximum
	// LZ window (LZOffset=32767). The candidate at cand == limit must
	// still be matchable.
	src := make([]byte, 32770)
	src[0], src[1], src[2] = 'A', 'B', 'C'
	src[32767], src[32768], src[32769] = 'A', 'B', 'C'
	mf := New(src)
	for i := 0; i < 32767; i++ {
		mf.Advance(i)
	}
	off, l := mf.LZMatch(32767, 3, 32767, 64)
	if off != 32767 || l < 3 {
		t.Fatalf("LZMatch = (%d, %d), want offset 32767 and length >= 3", off, l)
	}
}

func TestOptimalRunFallsBackWhenNoZeroRuns(t *testing.T) {
	src := []byte("no zero bytes here at all")
	mf := New(src)
	if mf.OptimalRun() != 64 {
		t.Fatalf("OptimalRun = %d, want fallback 64", mf.OptimalRun())
	}
}

func TestOptimalRunPicksOnlyObservedRunLength(t *testing.T) {
	// Every zero run in src is exactly 5 bytes long, so no score for any
	// L > 5 can be nonzero: 5 must win regardless of the scoring curve.
	var src []byte
	for i := 0; i < 20; i++ {
		src = append(src, 0, 0, 0, 0, 0, 1)
	}
	mf := New(src)
	if got := mf.OptimalRun(); got != 5 {
		t.Fatalf("OptimalRun = %d, want 5", got)
	}
}
