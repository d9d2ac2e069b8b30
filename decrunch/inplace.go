package decrunch

// DecodeInPlace inverts emit.INPLACE's layout: a 2-byte load address, an
// (optimalRun-1) byte, a duplicated first source byte (absent when the
// source is empty; consumed by the
// real 6502 decoder during its self-relocation and not part of the
// token stream), the truncated token payloads, TERMINATOR, and finally
// the raw tail bytes that replace the tokens the safety margin dropped.
func DecodeInPlace(enc []byte) (loadAddr uint16, out []byte, err error) {
	if len(enc) < 4 {
		return 0, nil, ErrTruncated
	}
	loadAddr = uint16(enc[0]) | uint16(enc[1])<<8

	core := make([]byte, 0, len(enc)-3)
	core = append(core, enc[2]) // optimalRun-1
	if len(enc) == 4 {
		// Empty source: INPLACE writes no first-byte copy, so enc[3] is
		// already TERMINATOR.
		core = append(core, enc[3])
	} else {
		core = append(core, enc[4:]...)
	}

	decoded, consumed, err := decodeCore(core)
	if err != nil {
		return 0, nil, err
	}
	tail := core[consumed:]
	out = append(decoded, tail...)
	return loadAddr, out, nil
}
