// Package emit turns a parsed token sequence back into bytes, in the
// three output modes of spec.md §4.5: RAW, SFX (self-extracting PRG),
// and INPLACE (backwards-safe overlapping decompression).
package emit

import (
	"github.com/tonysavon/tscrunch/boot"
	"github.com/tonysavon/tscrunch/internal/token"
)

// RAW writes one byte (optimalRun-1), every token's payload in order,
// then TERMINATOR (spec.md §6.1 stream framing).
func RAW(tokens []token.Token, src []byte, optimalRun int) []byte {
	return body(tokens, src, optimalRun)
}

func body(tokens []token.Token, src []byte, optimalRun int) []byte {
	out := make([]byte, 0, 1+payloadBytes(tokens)+1)
	out = append(out, byte(optimalRun-1))
	for _, t := range tokens {
		out = token.Payload(out, t, src)
	}
	out = append(out, token.Terminator)
	return out
}

func payloadBytes(tokens []token.Token) int {
	n := 0
	for _, t := range tokens {
		n += token.PayloadLen(t)
	}
	return n
}

// SFX prepends the patched 202-byte boot block to the RAW body.
// decrunchTo is the original PRG's load address; jmpTo is the
// CLI-supplied entry point to jump to after decrunching (spec.md §4.5).
func SFX(tokens []token.Token, src []byte, optimalRun int, decrunchTo, jmpTo uint16) ([]byte, error) {
	if len(src) > 0xFFFF {
		return nil, ErrOverflow
	}
	b := body(tokens, src, optimalRun)
	crunchedLen := len(b)
	if crunchedLen > 0xFFFF {
		return nil, ErrOverflow
	}

	block := boot.Bytes()
	transferFrom := uint16(boot.Len + crunchedLen + 0x06FF)
	startAddress := uint16(0x10000 - crunchedLen)
	boot.Patch(block, transferFrom, startAddress, decrunchTo, jmpTo, byte(optimalRun-1))

	out := make([]byte, 0, len(block)+len(b))
	out = append(out, block...)
	out = append(out, b...)
	return out, nil
}

// INPLACE lays out the stream so the decompressor can overwrite the
// compressed data as it produces output without ever reading past what
// it has already decoded (spec.md §4.5). loadAddr is the original PRG's
// 2-byte load address.
func INPLACE(tokens []token.Token, src []byte, optimalRun int, loadAddr uint16) []byte {
	safety, totalUncr := suffixSafety(tokens)

	out := make([]byte, 0, 4+payloadBytes(tokens[:safety])+1+totalUncr)
	out = append(out, byte(loadAddr), byte(loadAddr>>8))
	out = append(out, byte(optimalRun-1))
	if len(src) > 0 {
		out = append(out, src[0])
	}
	for _, t := range tokens[:safety] {
		out = token.Payload(out, t, src)
	}
	out = append(out, token.Terminator)
	out = append(out, src[len(src)-totalUncr:]...)
	return out
}

// suffixSafety implements the reversed-scan safety-margin algorithm of
// spec.md §4.5: it finds the earliest token index from which the
// remaining suffix can be replaced by raw source bytes without the
// decoder's read cursor ever falling behind its write cursor. Tokens
// [0, safety) keep their encoded form; the trailing totalUncr bytes of
// src replace tokens[safety:] verbatim.
func suffixSafety(tokens []token.Token) (safety, totalUncr int) {
	safety = len(tokens)
	segUncr, segCr := 0, 0
	for idx := len(tokens) - 1; idx >= 0; idx-- {
		t := tokens[idx]
		segCr += token.PayloadLen(t)
		segUncr += t.Size
		if segUncr <= segCr {
			safety = idx
			totalUncr += segUncr
			segUncr, segCr = 0, 0
		}
	}
	return safety, totalUncr
}
