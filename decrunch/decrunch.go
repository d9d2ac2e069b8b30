// Package decrunch is the reference decompressor for the encoded format
// of spec.md §6.1. It exists to verify round-trips (the "--verify" CLI
// flag and the property tests), not as a replacement for the 6502 boot
// block's own decompression routine.
package decrunch

import (
	"errors"

	"github.com/tonysavon/tscrunch/internal/token"
)

// ErrTruncated is returned when the encoded stream ends before a
// TERMINATOR byte or mid-token.
var ErrTruncated = errors.New("decrunch: truncated stream")

// Decode inverts the RAW stream framing of spec.md §6.1: a leading
// (optimalRun-1) byte, token payloads, then TERMINATOR. It does not
// understand SFX's boot-block prefix or INPLACE's raw tail — callers
// strip those before calling Decode (see DecodeInPlace).
func Decode(enc []byte) ([]byte, error) {
	out, consumed, err := decodeCore(enc)
	if err != nil {
		return nil, err
	}
	if consumed != len(enc) {
		return nil, ErrTruncated
	}
	return out, nil
}

// decodeCore decodes the [optimalRun-1][payloads][TERMINATOR] prefix of
// enc and reports how many bytes it consumed, leaving any trailing raw
// bytes (as used by INPLACE) untouched.
func decodeCore(enc []byte) (out []byte, consumed int, err error) {
	if len(enc) < 1 {
		return nil, 0, ErrTruncated
	}
	optimalRun := int(enc[0]) + 1
	out = make([]byte, 0, len(enc)*2)
	pos := 1
	for {
		if pos >= len(enc) {
			return nil, 0, ErrTruncated
		}
		b0 := enc[pos]

		if b0&0x80 == 0 {
			if b0 == token.Terminator {
				pos++
				break
			}
			if b0 <= token.LongestLiteral {
				l := int(b0)
				if pos+1+l > len(enc) {
					return nil, 0, ErrTruncated
				}
				out = append(out, enc[pos+1:pos+1+l]...)
				pos += 1 + l
				continue
			}
			// LZ2: byte = 127 - d.
			d := 127 - int(b0)
			pos++
			if err := copyBack(&out, d, 2); err != nil {
				return nil, 0, err
			}
			continue
		}

		if b0&0x01 != 0 {
			sizeField := int(b0>>1) & 0x3F
			if sizeField == 0 {
				for k := 0; k < optimalRun; k++ {
					out = append(out, 0)
				}
				pos++
				continue
			}
			l := sizeField + 1
			if pos+1 >= len(enc) {
				return nil, 0, ErrTruncated
			}
			rb := enc[pos+1]
			for k := 0; k < l; k++ {
				out = append(out, rb)
			}
			pos += 2
			continue
		}

		if b0&0x02 != 0 {
			if pos+1 >= len(enc) {
				return nil, 0, ErrTruncated
			}
			l := int((b0>>2)&0x1F) + 1
			d := int(enc[pos+1])
			pos += 2
			if err := copyBack(&out, d, l); err != nil {
				return nil, 0, err
			}
			continue
		}

		if pos+2 >= len(enc) {
			return nil, 0, ErrTruncated
		}
		b1 := enc[pos+1]
		b2 := enc[pos+2]
		l := (int(b0>>2)&0x1F)<<1 | int(b2>>7)
		l++
		neg := 0x8000 | (int(b2&0x7F) << 8) | int(b1)
		d := 0x10000 - neg
		pos += 3
		if err := copyBack(&out, d, l); err != nil {
			return nil, 0, err
		}
	}
	return out, pos, nil
}

func copyBack(out *[]byte, d, n int) error {
	start := len(*out) - d
	if start < 0 {
		return ErrTruncated
	}
	for k := 0; k < n; k++ {
		*out = append(*out, (*out)[start+k])
	}
	return nil
}
