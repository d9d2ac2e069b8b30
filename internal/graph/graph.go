// Package graph builds the token DAG over an input buffer (GraphBuilder,
// spec.md §4.3) and finds the minimum-cost path across it (Parser, §4.4).
// It is the part of TSCrunch that formulates compression as shortest-path:
// nodes are byte positions 0..N, edges are candidate tokens, and the
// optimal encoding is whatever path the weights pick out.
package graph

import (
	"sort"

	"github.com/tonysavon/tscrunch/internal/matchfinder"
	"github.com/tonysavon/tscrunch/internal/token"
)

// Edge is one candidate way to get from Token's start position to
// start+Token.Size.
type Edge struct {
	To  int
	Tok token.Token
}

// Graph is the DAG of spec.md §3/§4.3: N+1 nodes (byte positions 0..N),
// edges grouped by source node for the ascending-order relaxation in
// Parse.
type Graph struct {
	N          int
	Adj        [][]Edge // Adj[i] = edges leaving node i, in insertion order
	OptimalRun int      // per-file ZeroRun length (spec.md §4.1)
}

func (g *Graph) addEdge(i, j int, tok token.Token) bool {
	for _, e := range g.Adj[i] {
		if e.To == j {
			return false // keep the first inserted edge for (i, j)
		}
	}
	g.Adj[i] = append(g.Adj[i], Edge{To: j, Tok: tok})
	return true
}

// Stage names reported to an optional progress callback between phases
// (spec.md §5).
const (
	StagePopulatingLZ    = "populating LZ layer"
	StageClosingGaps     = "closing gaps"
	StagePopulatingGraph = "populating graph"
	StageShortestPath    = "computing shortest path"
)

// Build enumerates every candidate token edge over src (spec.md §4.3) and
// returns the resulting DAG. progress, if non-nil, is called with a stage
// name between phases; it must not be called concurrently and must not
// retain src.
func Build(src []byte, progress func(stage string)) *Graph {
	n := len(src)
	mf := matchfinder.New(src)
	g := &Graph{N: n, Adj: make([][]Edge, n+1), OptimalRun: mf.OptimalRun()}

	if progress != nil {
		progress(StagePopulatingLZ)
	}

	starts := make(map[int]struct{})
	ends := make(map[int]struct{})

	for i := 0; i < n; i++ {
		rle := mf.RLESize(i)

		lzLen, lzOffset := 0, 0
		if rle+1 <= token.LongestLongLZ-1 {
			minLen := rle + 1
			if minLen < token.MinLZ {
				minLen = token.MinLZ
			}
			if off, l := mf.LZMatch(i, minLen, token.LZOffset, token.LongestLongLZ); l > 0 {
				lzOffset, lzLen = off, l
			}
		}

		if lzLen >= token.MinLZ || rle >= token.MinRLE {
			starts[i] = struct{}{}
		}

		// Shorter-length LZ edges share the longest match's offset: any
		// prefix of a valid match is itself a valid match at the same
		// offset (spec.md §4.3, §9 "shared match reuse").
		for l := lzLen; l >= token.MinLZ && l > rle; l-- {
			if g.addEdge(i, i+l, token.Back(lzOffset, l)) {
				ends[i+l] = struct{}{}
			}
		}

		for l := rle; l >= token.MinRLE; l-- {
			if g.addEdge(i, i+l, token.Run(src[i], l)) {
				ends[i+l] = struct{}{}
			}
		}

		if off, ok := mf.LZ2Offset(i, token.LZ2Offset); ok {
			if g.addEdge(i, i+2, token.Back2(off)) {
				starts[i] = struct{}{}
				ends[i+2] = struct{}{}
			}
		}

		run := mf.OptimalRun()
		if i+run <= n && isAllZero(src[i:i+run]) {
			if g.addEdge(i, i+run, token.Zero(run)) {
				starts[i] = struct{}{}
				ends[i+run] = struct{}{}
			}
		}

		mf.Advance(i)
	}

	if progress != nil {
		progress(StageClosingGaps)
	}
	closeGaps(g, src, starts, ends)

	if progress != nil {
		progress(StagePopulatingGraph)
	}
	return g
}

func isAllZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

// closeGaps bridges the DAG with Literal edges so that every node reachable
// from 0 eventually connects to N, per spec.md §4.3's two-pointer merge of
// sorted starts/ends.
func closeGaps(g *Graph, src []byte, startSet, endSet map[int]struct{}) {
	startSet[g.N] = struct{}{}

	starts := make([]int, 0, len(startSet))
	for s := range startSet {
		starts = append(starts, s)
	}
	sort.Ints(starts)

	ends := make([]int, 0, len(endSet)+1)
	ends = append(ends, 0)
	for e := range endSet {
		ends = append(ends, e)
	}
	sort.Ints(ends)

	e, s := 0, 0
	for e < len(ends) && s < len(starts) {
		end := ends[e]
		if end < starts[s] {
			for starts[s]-end >= token.LongestLiteral {
				g.addEdge(end, end+token.LongestLiteral, token.Lit(end, token.LongestLiteral))
				end += token.LongestLiteral
			}
			s0 := s
			for s0 < len(starts) && starts[s0]-end < token.LongestLiteral {
				if starts[s0] > end {
					g.addEdge(end, starts[s0], token.Lit(end, starts[s0]-end))
				}
				s0++
			}
			e++
		} else {
			s++
		}
	}
}
