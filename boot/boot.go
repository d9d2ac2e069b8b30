// Package boot holds the 6502 self-extractor boot block used by SFX
// output (spec.md §6.3). The block is opaque to the rest of this module:
// nothing here interprets it as a program, only as a fixed-length byte
// array with five patchable fields. Its structure mirrors the stub
// captured in the original implementation's boot table, repadded to the
// 202-byte layout and patch offsets this version's format pins down.
package boot

// Len is the fixed size of the boot block in bytes (spec.md §6.3).
const Len = 202

// Patch field offsets within Block (spec.md §4.5).
const (
	offTransferFrom = 0x1E // uint16 LE
	offStartAddress = 0x3C // uint16 LE
	offDecrunchTo   = 0x40 // uint16 LE
	offJmpTo        = 0x77 // uint16 LE
	offOptimalRun   = 0xC9 // byte
)

// block is the verbatim 202-byte 6502 boot program. The five patch
// fields are zeroed here; Patch fills them in per output.
var block = [Len]byte{
	0x01, 0x08, 0x0B, 0x08, 0x0A, 0x00, 0x9E, 0x32, 0x30, 0x36, 0x31, 0x00,
	0x00, 0x00, 0x78, 0xA2, 0xB3, 0xBD, 0x1A, 0x08, 0x95, 0x00, 0xCA, 0xD0,
	0xF8, 0x4C, 0x02, 0x00, 0x34, 0xBD, 0x00, 0x00, 0x9D, 0x00, 0xFF, 0xE8,
	0xD0, 0xF7, 0xC6, 0x04, 0xC6, 0x07, 0xA5, 0x04, 0xC9, 0x07, 0xB0, 0xED,
	0xA0, 0x00, 0xB3, 0x23, 0x30, 0x23, 0xF0, 0x3A, 0xC9, 0x40, 0xB0, 0x3E,
	0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0xFF, 0xFF, 0xD0, 0xF7, 0x8A, 0xE8,
	0x65, 0x27, 0x85, 0x27, 0xB0, 0x71, 0x8A, 0x65, 0x23, 0x85, 0x23, 0x90,
	0xDD, 0xE6, 0x24, 0xB0, 0xD9, 0xA2, 0x02, 0x4B, 0x7F, 0xB0, 0x35, 0x85,
	0x54, 0xC8, 0xB1, 0x23, 0xA4, 0x54, 0x88, 0x91, 0x27, 0x88, 0x91, 0x27,
	0xD0, 0xFB, 0xA9, 0x00, 0x90, 0xD6, 0xA9, 0x37, 0x85, 0x01, 0x58, 0x00,
	0x00, 0x00, 0x49, 0xBF, 0x65, 0x27, 0x85, 0x97, 0xA5, 0x28, 0xE9, 0x00,
	0x85, 0x98, 0xB1, 0x97, 0x91, 0x27, 0xC8, 0xB1, 0x97, 0x91, 0x27, 0x98,
	0xAA, 0x88, 0xF0, 0xB4, 0x4A, 0x85, 0x9C, 0xC8, 0xA5, 0x27, 0x90, 0x28,
	0xF1, 0x23, 0x85, 0x97, 0xA5, 0x28, 0xE9, 0x00, 0x85, 0x98, 0x88, 0xB1,
	0x97, 0x91, 0x27, 0xC8, 0xB1, 0x97, 0x91, 0x27, 0xC8, 0xB9, 0x97, 0x00,
	0x91, 0x27, 0xC0, 0x00, 0xD0, 0xF6, 0x98, 0xA0, 0x00, 0xF0, 0x89, 0xE6,
	0x28, 0x18, 0x90, 0x8A, 0x38, 0xF1, 0x23, 0x85, 0x97, 0x00,
}

// Bytes returns a fresh copy of the unpatched boot block, safe for the
// caller to patch in place.
func Bytes() []byte {
	b := make([]byte, Len)
	copy(b, block[:])
	return b
}

// Patch fills in the five fields SFX output depends on (spec.md §4.5).
// b must be Len bytes, typically the result of Bytes().
func Patch(b []byte, transferFrom, startAddress, decrunchTo, jmpTo uint16, optimalRunMinus1 byte) {
	putLE16(b, offTransferFrom, transferFrom)
	putLE16(b, offStartAddress, startAddress)
	putLE16(b, offDecrunchTo, decrunchTo)
	putLE16(b, offJmpTo, jmpTo)
	b[offOptimalRun] = optimalRunMinus1
}

func putLE16(b []byte, off int, v uint16) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
}
