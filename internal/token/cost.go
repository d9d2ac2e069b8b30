package token

// Cost returns a token's weight for the shortest-path search, scaled by
// 100000 and rounded to an integer (Testable Property #2: encode output
// must be byte-identical across platforms, which a float tie-breaker
// cannot guarantee). The scaling preserves the ordering of the spec's
// rational cost function exactly: among paths of equal integer byte
// cost, LZ2 > RLE > Literal > LZ(short) > LZ(long), and within a kind,
// longer spans are always preferred.
//
// Each formula below is the spec's float cost multiplied by 100000; the
// 0.00001*L fractional term only ever has to break ties between tokens
// of the same byte cost, so truncating it to an integer delta preserves
// every ordering the spec requires over the legal size ranges.
func Cost(t Token) int64 {
	switch t.Kind {
	case Literal:
		return 100000*int64(t.Size+1) + 130 - int64(t.Size)
	case RLE:
		return 200000 + 128 - int64(t.Size)
	case LZ:
		bytes := int64(3)
		if t.Offset < 256 && t.Size <= LongestLZ {
			bytes = 2
		}
		return 100000*bytes + 134 - int64(t.Size)
	case LZ2:
		return 100000 + 132 - 2
	case ZeroRun:
		return 100000
	default:
		panic("token: unknown kind")
	}
}
