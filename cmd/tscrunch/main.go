// Command tscrunch compresses a Commodore 64 binary into a
// self-extracting PRG, an in-place layout, or a raw crunched stream,
// per spec.md §6.2.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tonysavon/tscrunch"
)

var (
	flagPRG     bool
	flagInPlace bool
	flagQuiet   bool
	flagVerify  bool
	flagJmpTo   string
)

func main() {
	root := &cobra.Command{
		Use:           "tscrunch [-p] [-i] [-q] [-x $ADDR] INFILE OUTFILE",
		Short:         "optimal offline compressor for Commodore 64 binaries",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  false,
		SilenceErrors: true,
		RunE:          run,
	}

	root.Flags().BoolVarP(&flagPRG, "prg", "p", false, "input is a PRG; strip and remember its 2-byte load address")
	root.Flags().BoolVarP(&flagInPlace, "inplace", "i", false, "in-place output (implies -p)")
	root.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress output")
	root.Flags().BoolVar(&flagVerify, "verify", false, "round-trip the output through the reference decoder before writing it")
	root.Flags().StringVarP(&flagJmpTo, "sfx", "x", "", "SFX output, auto-jump to $ADDR (hex) after decrunching (implies -p)")

	if err := root.Execute(); err != nil {
		log.Printf("tscrunch: %v", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	if flagJmpTo != "" && flagInPlace {
		return tscrunch.ErrConflictingFlags
	}

	var opts []tscrunch.Option
	if flagPRG {
		opts = append(opts, tscrunch.WithPRG())
	}
	if flagInPlace {
		opts = append(opts, tscrunch.WithInPlace())
	}
	if flagVerify {
		opts = append(opts, tscrunch.WithVerify())
	}
	if flagJmpTo != "" {
		jmpTo, err := parseHexAddr(flagJmpTo)
		if err != nil {
			return err
		}
		opts = append(opts, tscrunch.WithSFX(jmpTo))
	}

	var bar *progressbar.ProgressBar
	if !flagQuiet {
		bar = progressbar.NewOptions(4, progressbar.OptionSetDescription("starting"))
		opts = append(opts, tscrunch.WithProgress(func(stage string) {
			bar.Describe(stage)
			_ = bar.Add(1)
		}))
	}

	src, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}

	result, err := tscrunch.Encode(src, opts...)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, result.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	if !flagQuiet {
		fmt.Printf("\n%s: %d -> %d bytes (optimalRun=%d)\n", outPath, len(src), len(result.Data), result.OptimalRun)
	}
	return nil
}

// parseHexAddr parses a CLI address argument of the form "$1000" or
// "1000" into a 16-bit value (spec.md §7, HexParseError).
func parseHexAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid hex address %q: %w", s, err)
	}
	return uint16(v), nil
}
