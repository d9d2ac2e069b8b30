package emit

import "errors"

// ErrOverflow is returned by SFX when the input or the resulting
// crunched stream cannot fit the 6502's 16-bit address space (spec.md
// §7, OverflowError).
var ErrOverflow = errors.New("emit: input too large for SFX output")
