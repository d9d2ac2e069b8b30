// Package matchfinder computes, for a fixed input buffer, the best
// back-reference/run candidates the GraphBuilder needs at each position:
// RLE run length, LZ match (offset, length), LZ2 match, and the file-wide
// optimalRun constant (spec.md §4.1).
//
// The window is short enough (<=32KiB) that a brute-force backward scan
// would be acceptable, but this implementation follows the teacher's
// hash-chain approach (github.com/harriteja/GoZ4X compress.HCMatcher)
// for speed: one hash table plus a per-position "previous occurrence"
// chain, walked from most-recent to oldest so that on a length tie the
// first (smallest-offset) match found wins, matching spec.md's
// tie-break rule exactly.
package matchfinder

const (
	hashLog  = 15
	hashSize = 1 << hashLog
	hashMask = hashSize - 1
)

// MatchFinder indexes a fixed buffer and answers match queries at a
// position using only earlier positions that have been inserted via
// Advance. Callers (GraphBuilder) must Advance(i) immediately after
// querying position i and before querying i+1, since LZ/LZ2 matches may
// only reference strictly earlier positions (spec.md §3 invariant).
type MatchFinder struct {
	src []byte

	head3 []int32 // hash(3 bytes) -> most recent position with that hash
	prev3 []int32 // position -> previous position with the same hash

	head2 []int32 // hash(2 bytes) -> most recent position
	prev2 []int32

	optimalRun int
}

// New builds a MatchFinder over src. optimalRun is computed once here,
// per spec.md §4.1 ("optimalRun is computed once; every ZeroRun token
// uses that same length").
func New(src []byte) *MatchFinder {
	mf := &MatchFinder{
		src:   src,
		head3: make([]int32, hashSize),
		prev3: make([]int32, len(src)),
		head2: make([]int32, 1<<16),
		prev2: make([]int32, len(src)),
	}
	for i := range mf.head3 {
		mf.head3[i] = -1
	}
	for i := range mf.head2 {
		mf.head2[i] = -1
	}
	mf.optimalRun = computeOptimalRun(src)
	return mf
}

// OptimalRun returns the per-file ZeroRun length chosen by
// computeOptimalRun.
func (mf *MatchFinder) OptimalRun() int { return mf.optimalRun }

func hash3(b0, b1, b2 byte) uint32 {
	v := uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16
	return (v * 2654435761) >> (32 - hashLog) & hashMask
}

func hash2(b0, b1 byte) uint32 {
	return uint32(b0) | uint32(b1)<<8
}

// Advance records position i as searchable by future queries. Must be
// called exactly once per position, in increasing order.
func (mf *MatchFinder) Advance(i int) {
	if i+3 <= len(mf.src) {
		h := hash3(mf.src[i], mf.src[i+1], mf.src[i+2])
		mf.prev3[i] = mf.head3[h]
		mf.head3[h] = int32(i)
	}
	if i+2 <= len(mf.src) {
		h := hash2(mf.src[i], mf.src[i+1])
		mf.prev2[i] = mf.head2[h]
		mf.head2[h] = int32(i)
	}
}

// RLESize returns the largest L <= LongestRLE such that src[i:i+L] is a
// single repeated byte (spec.md §4.1).
func (mf *MatchFinder) RLESize(i int) int {
	return rleSize(mf.src, i, 64)
}

func rleSize(src []byte, i, longest int) int {
	n := len(src)
	if i >= n {
		return 0
	}
	b := src[i]
	x := 0
	for i+x < n && x < longest && src[i+x] == b {
		x++
	}
	return x
}

// LZMatch returns the best (offset, length) pair for a match of at least
// minLen bytes starting at position i, capped at LongestLongLZ and
// limited to offsets within the fixed LZ window. Returns (0, 0) if no
// match of at least minLen exists. Ties (equal length) resolve to the
// smallest offset, per spec.md's "iterates by descending start position,
// keeps the first longest" rule.
func (mf *MatchFinder) LZMatch(i, minLen, window, longest int) (offset, length int) {
	src := mf.src
	n := len(src)
	if minLen < 3 || i+minLen > n {
		return 0, 0
	}
	h := hash3(src[i], src[i+1], src[i+2])
	cand := mf.head3[h]
	limit := int32(i - window)
	bestLen := 0
	bestPos := -1
	for cand >= 0 && cand >= limit {
		j := int(cand)
		// Quick filter: first minLen bytes must match before we pay for
		// a full extend.
		if src[j] == src[i] && j+minLen <= n && equalRun(src, j, i, minLen) {
			l := minLen
			max := longest
			if n-i < max {
				max = n - i
			}
			for l < max && src[j+l] == src[i+l] {
				l++
			}
			if l > bestLen {
				bestLen = l
				bestPos = j
			}
		}
		cand = mf.prev3[j]
	}
	if bestLen == 0 {
		return 0, 0
	}
	return i - bestPos, bestLen
}

func equalRun(src []byte, a, b, n int) bool {
	for k := 0; k < n; k++ {
		if src[a+k] != src[b+k] {
			return false
		}
	}
	return true
}

// LZ2Offset returns the smallest positive offset d <= maxOffset with
// src[i:i+2] == src[i-d:i-d+2], or ok=false if none exists.
func (mf *MatchFinder) LZ2Offset(i, maxOffset int) (offset int, ok bool) {
	src := mf.src
	if i+2 > len(src) {
		return 0, false
	}
	h := hash2(src[i], src[i+1])
	cand := mf.head2[h]
	limit := int32(i - maxOffset)
	// The chain head is the most recently inserted (hence closest, i.e.
	// smallest-offset) occurrence; the first verified match is already
	// the smallest offset, so we return on first hit.
	for cand >= 0 && cand >= limit {
		j := int(cand)
		if src[j] == src[i] && src[j+1] == src[i+1] {
			return i - j, true
		}
		cand = mf.prev2[j]
	}
	return 0, false
}
