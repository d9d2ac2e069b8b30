package graph

import "github.com/tonysavon/tscrunch/internal/token"

const noPred = -1

// Parse runs the shortest-path search over g (spec.md §4.4) and returns
// the chosen tokens in source order. Because the graph is a DAG whose
// nodes are numbered by position and every edge points strictly forward,
// a single ascending-order relaxation pass is equivalent to Dijkstra and
// linear in the edge count.
func Parse(g *Graph, progress func(stage string)) []token.Token {
	if progress != nil {
		progress(StageShortestPath)
	}

	dist := make([]int64, g.N+1)
	predNode := make([]int, g.N+1)
	predEdge := make([]int, g.N+1) // index into Adj[predNode[v]]
	for v := range dist {
		dist[v] = -1
		predNode[v] = noPred
	}
	dist[0] = 0

	for i := 0; i <= g.N; i++ {
		if dist[i] < 0 {
			continue // unreachable; cannot happen for i < N given §4.3's gap closing
		}
		for idx, e := range g.Adj[i] {
			w := dist[i] + token.Cost(e.Tok)
			if dist[e.To] < 0 || w < dist[e.To] {
				dist[e.To] = w
				predNode[e.To] = i
				predEdge[e.To] = idx
			}
		}
	}

	// Reconstruct the path from N back to 0, then reverse.
	var path []token.Token
	for v := g.N; v != 0; {
		u := predNode[v]
		path = append(path, g.Adj[u][predEdge[v]].Tok)
		v = u
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
