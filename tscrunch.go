// Package tscrunch builds an offline compressor for Commodore 64
// binaries: it parses an input buffer into the optimal token sequence
// under a fixed cost model, then emits it in one of three modes (RAW,
// SFX, INPLACE). Decompression on the target machine is done by the
// 202-byte boot block in package boot; package decrunch provides a
// reference decoder used only to verify round-trips.
package tscrunch

import (
	"bytes"
	"errors"

	"github.com/tonysavon/tscrunch/boot"
	"github.com/tonysavon/tscrunch/decrunch"
	"github.com/tonysavon/tscrunch/internal/emit"
	"github.com/tonysavon/tscrunch/internal/graph"
)

// Sentinel errors surfaced by Encode. CLI-level failure kinds (IoError,
// UsageError, HexParseError) are reported by cmd/tscrunch, which wraps
// these and its own argument-parsing failures.
var (
	// ErrConflictingFlags is returned when both SFX and InPlace options
	// are requested; spec.md §6.2 makes -x and -i mutually exclusive.
	ErrConflictingFlags = errors.New("tscrunch: sfx and in-place output are mutually exclusive")

	// ErrNeedsLoadAddress is returned when PRG, SFX, or in-place mode is
	// requested on an input shorter than the 2-byte PRG load address.
	ErrNeedsLoadAddress = errors.New("tscrunch: input too short to contain a PRG load address")

	// ErrVerifyMismatch is returned by WithVerify when the reference
	// decoder does not reproduce the original input.
	ErrVerifyMismatch = errors.New("tscrunch: verification failed: decoded output does not match input")
)

// Progress is called between encoder phases (spec.md §5); it must not
// mutate any state the caller shares with Encode.
type Progress func(stage string)

// Result is the outcome of a successful Encode.
type Result struct {
	Data        []byte // the encoded output, in whichever mode was requested
	LoadAddress uint16 // the original PRG load address, if one was stripped
	OptimalRun  int    // the per-file ZeroRun length chosen for this input
}

type options struct {
	prg      bool
	inPlace  bool
	sfx      bool
	jmpTo    uint16
	progress Progress
	verify   bool
}

// Option configures Encode.
type Option func(*options)

// WithPRG treats the input as a PRG: the first two bytes are a load
// address, stripped before compression and returned in
// Result.LoadAddress. SFX output patches it into the boot block and
// in-place output stores it in its header; RAW output does not contain it.
func WithPRG() Option {
	return func(o *options) { o.prg = true }
}

// WithSFX requests a self-extracting PRG that jumps to jmpTo after
// decrunching. It implies WithPRG (spec.md §6.2, "-x implies -p").
func WithSFX(jmpTo uint16) Option {
	return func(o *options) {
		o.prg = true
		o.sfx = true
		o.jmpTo = jmpTo
	}
}

// WithInPlace requests output laid out so decompression can overwrite
// the compressed stream as it proceeds. It implies WithPRG.
func WithInPlace() Option {
	return func(o *options) {
		o.prg = true
		o.inPlace = true
	}
}

// WithProgress registers a callback invoked between encoder phases.
func WithProgress(p Progress) Option {
	return func(o *options) { o.progress = p }
}

// WithVerify makes Encode run the reference decoder over its own
// output and compare it against the input, returning ErrVerifyMismatch
// on any divergence. It roughly doubles encode time.
func WithVerify() Option {
	return func(o *options) { o.verify = true }
}

// Encode parses src into the optimal token sequence and emits it per
// the configured options.
func Encode(src []byte, opts ...Option) (Result, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.sfx && o.inPlace {
		return Result{}, ErrConflictingFlags
	}

	body := src
	var loadAddr uint16
	if o.prg {
		if len(src) < 2 {
			return Result{}, ErrNeedsLoadAddress
		}
		loadAddr = uint16(src[0]) | uint16(src[1])<<8
		body = src[2:]
	}

	g := graph.Build(body, o.progress)
	tokens := graph.Parse(g, o.progress)

	var out []byte
	switch {
	case o.sfx:
		var err error
		out, err = emit.SFX(tokens, body, g.OptimalRun, loadAddr, o.jmpTo)
		if err != nil {
			return Result{}, err
		}
	case o.inPlace:
		out = emit.INPLACE(tokens, body, g.OptimalRun, loadAddr)
	default:
		out = emit.RAW(tokens, body, g.OptimalRun)
	}

	if o.verify {
		if err := verify(o, out, body); err != nil {
			return Result{}, err
		}
	}

	return Result{Data: out, LoadAddress: loadAddr, OptimalRun: g.OptimalRun}, nil
}

func verify(o options, out, body []byte) error {
	var decoded []byte
	var err error
	switch {
	case o.sfx:
		decoded, err = decrunch.Decode(out[boot.Len:])
	case o.inPlace:
		_, decoded, err = decrunch.DecodeInPlace(out)
	default:
		decoded, err = decrunch.Decode(out)
	}
	if err != nil {
		return err
	}
	if !bytes.Equal(decoded, body) {
		return ErrVerifyMismatch
	}
	return nil
}
