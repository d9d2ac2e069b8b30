package token

import "fmt"

// Valid reports whether t satisfies the size/offset invariants for its
// kind (spec.md §3). GraphBuilder never inserts an edge for a token that
// fails this; Payload panics if handed one anyway, since that would be an
// internal bug rather than bad input.
func Valid(t Token) bool {
	switch t.Kind {
	case Literal:
		return t.Size >= 1 && t.Size <= LongestLiteral
	case RLE:
		return t.Size >= MinRLE && t.Size <= LongestRLE
	case LZ:
		return t.Size >= MinLZ && t.Size <= LongestLongLZ && t.Offset >= 1 && t.Offset <= LZOffset
	case LZ2:
		return t.Size == 2 && t.Offset >= 1 && t.Offset <= LZ2Offset
	case ZeroRun:
		return t.Size > 0
	default:
		return false
	}
}

// PayloadLen returns the number of output bytes Payload will write for t,
// without touching src.
func PayloadLen(t Token) int {
	switch t.Kind {
	case Literal:
		return 1 + t.Size
	case RLE:
		return 2
	case LZ:
		if t.Offset < 256 && t.Size <= LongestLZ {
			return 2
		}
		return 3
	case LZ2:
		return 1
	case ZeroRun:
		return 1
	default:
		return 0
	}
}

// Payload serializes t to its bit-exact wire form (spec.md §6.1),
// appending to dst and returning the extended slice. src is the original
// input buffer, needed only for Literal tokens — the input is passed in
// explicitly rather than captured as ambient state (spec.md §9, "src
// captured at payload time").
func Payload(dst []byte, t Token, src []byte) []byte {
	if !Valid(t) {
		panic(fmt.Sprintf("token: invalid token for payload: %+v", t))
	}
	switch t.Kind {
	case Literal:
		dst = append(dst, byte(t.Size))
		return append(dst, src[t.Start:t.Start+t.Size]...)

	case RLE:
		dst = append(dst, 0x81|byte((t.Size-1)<<1)&0x7F)
		return append(dst, t.Byte)

	case ZeroRun:
		return append(dst, 0x81)

	case LZ2:
		return append(dst, byte(127-t.Offset))

	case LZ:
		if t.Offset < 256 && t.Size <= LongestLZ {
			b0 := 0x80 | byte((t.Size-1)<<2)&0x7F | 0x02
			return append(dst, b0, byte(t.Offset))
		}
		// Long form: offset stored as the low 15 bits of its 16-bit
		// two's-complement negation; the LSB of (Size-1) rides in the
		// top bit of the third byte, since length needs 6 bits but the
		// token byte only has 5 free after the class tag.
		neg := uint32(0x10000-t.Offset) & 0xFFFF
		b0 := 0x80 | byte((t.Size-1)>>1<<2)&0x7F
		b1 := byte(neg & 0xFF)
		b2 := byte((neg>>8)&0x7F) | byte(((t.Size-1)&1)<<7)
		return append(dst, b0, b1, b2)

	default:
		panic("token: unknown kind")
	}
}
