package decrunch

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tonysavon/tscrunch/internal/graph"
	"github.com/tonysavon/tscrunch/internal/token"
)

func encodeRAW(t *testing.T, src []byte) []byte {
	t.Helper()
	g := graph.Build(src, nil)
	tokens := graph.Parse(g, nil)
	out := make([]byte, 0)
	out = append(out, byte(g.OptimalRun-1))
	for _, tok := range tokens {
		out = token.Payload(out, tok, src)
	}
	out = append(out, token.Terminator)
	return out
}

func TestDecodeConcreteScenarios(t *testing.T) {
	cases := [][]byte{
		{0x00, 0x00, 0x00, 0x00, 0x00},
		{0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41},
		{0x41, 0x42, 0x43, 0x41, 0x42, 0x43},
		{0x41, 0x42, 0x41, 0x42, 0x41, 0x42},
		{0x41},
		{0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
	}
	for _, src := range cases {
		enc := encodeRAW(t, src)
		got, err := Decode(enc)
		require.NoErrorf(t, err, "decode(%x)", src)
		require.Equalf(t, src, got, "decode(%x)", src)
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	enc := encodeRAW(t, nil)
	got, err := Decode(enc)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDecodeRejectsTruncatedStream(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorIsf(t, err, ErrTruncated, "expected ErrTruncated for empty stream")

	// A literal header claiming more bytes than are present.
	_, err = Decode([]byte{0x00, 0x05, 'A'})
	require.ErrorIsf(t, err, ErrTruncated, "expected ErrTruncated for short literal payload")
}

func TestDecodeBoundaryLengths(t *testing.T) {
	src := bytes.Repeat([]byte{'X'}, token.LongestLiteral)
	enc := encodeRAW(t, src)
	got, err := Decode(enc)
	require.NoError(t, err)
	require.Equal(t, src, got, "literal boundary round trip failed")

	src = bytes.Repeat([]byte{0x41}, token.LongestRLE)
	enc = encodeRAW(t, src)
	got, err = Decode(enc)
	require.NoError(t, err)
	require.Equal(t, src, got, "RLE boundary round trip failed")
}
