package token

import "testing"

// Cost must be a stable integer (spec.md §8, determinism property): the
// scaled model exists so the search never needs a float comparison. Each
// expected value is the rational cost multiplied by 100000.
func TestCostIsIntegerScaled(t *testing.T) {
	cases := []struct {
		tok  Token
		want int64
	}{
		{Lit(0, 5), 600125},     // 5+1 + 0.00130 - 0.00005
		{Run(0x41, 8), 200120},  // 2 + 0.00128 - 0.00008
		{Back(100, 10), 200124}, // 2 + 0.00134 - 0.00010
		{Back2(2), 100130},      // 1 + 0.00132 - 0.00002
		{Zero(64), 100000},      // 1
	}
	for _, c := range cases {
		if got := Cost(c.tok); got != c.want {
			t.Fatalf("Cost(%+v) = %d, want %d", c.tok, got, c.want)
		}
	}
}

// At equal integer byte cost (here: a 2-byte-cost token covering the
// same span), spec.md §9's ordering puts RLE ahead of short-form LZ.
func TestCostPrefersRLEOverShortLZAtEqualByteCost(t *testing.T) {
	rle := Cost(Run(0x41, 2))
	lz := Cost(Back(100, 2))
	if !(rle < lz) {
		t.Fatalf("expected RLE(%d) < short LZ(%d) at equal span/byte-cost", rle, lz)
	}
}

// LZ2 always costs one byte regardless of span, so it must be cheaper
// than any 2-byte-cost alternative for the same 2-byte span.
func TestCostLZ2CheaperThanTwoByteAlternatives(t *testing.T) {
	lz2 := Cost(Back2(2))
	rle := Cost(Run(0x41, 2))
	if !(lz2 < rle) {
		t.Fatalf("expected LZ2(%d) < RLE(%d)", lz2, rle)
	}
}

// Long-form LZ costs one more byte than short-form for the same span,
// so it must never be cheaper.
func TestCostLongFormNeverCheaperThanShortFormAtSameSpan(t *testing.T) {
	short := Cost(Back(200, 10))  // offset < 256: short form
	long := Cost(Back(30000, 10)) // offset >= 256: long form
	if !(short < long) {
		t.Fatalf("short-form LZ should be cheaper than long-form at equal span: %d vs %d", short, long)
	}
}

// Within a kind, a longer span is always at least as cheap per byte of
// output covered, so the parser never prefers a strictly shorter match
// at the same offset when a longer one is available.
func TestCostLongerSpanCheaperPerByte(t *testing.T) {
	short := Cost(Back(100, MinLZ))
	long := Cost(Back(100, LongestLZ))
	if !(long*MinLZ < short*LongestLZ) {
		t.Fatalf("expected lower per-byte cost for the longer span: short=%d/%d long=%d/%d", short, MinLZ, long, LongestLZ)
	}
}
