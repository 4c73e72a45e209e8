package flowgraph

import (
	"sort"
	"strings"

	"github.com/chennbnbnb/JDoop-release/internal/records"
	errs "github.com/chennbnbnb/JDoop-release/pkg/shared/errors"
)

// SourceGraph is the propagation graph of one tainted source token.
// It is built once and only read afterwards.
type SourceGraph struct {
	Token string

	// StartContext is the context shared by every start edge; valid when HasStart is set.
	StartContext int
	HasStart     bool

	adj       map[NodeID][]*Edge
	edges     []*Edge
	startLine int
}

// NewSourceGraph builds the adjacency list for token from its edges, in the
// order given. Outgoing edges keep that order, which fixes search tie-breaking.
func NewSourceGraph(token string, edges []*Edge) (*SourceGraph, error) {
	g := &SourceGraph{
		Token: token,
		adj:   make(map[NodeID][]*Edge),
		edges: edges,
	}

	for _, e := range edges {
		from := e.Origin()
		g.adj[from] = append(g.adj[from], e)

		if !e.IsStart() {
			continue
		}
		if !g.HasStart {
			g.StartContext, g.HasStart, g.startLine = e.FromContext, true, e.Line
			continue
		}
		if e.FromContext != g.StartContext {
			return nil, &errs.StructuralConsistencyError{
				Token:     token,
				Want:      g.StartContext,
				Got:       e.FromContext,
				FirstLine: g.startLine,
				Line:      e.Line,
			}
		}
	}

	return g, nil
}

// Start returns the vertex where the flow of the graph's token begins.
func (g *SourceGraph) Start() (NodeID, bool) {
	return NodeID{Context: g.StartContext, Ref: g.Token}, g.HasStart
}

// Out returns the outgoing edges of n in insertion order.
func (g *SourceGraph) Out(n NodeID) []*Edge {
	return g.adj[n]
}

// Edges returns every edge of the graph in file order.
func (g *SourceGraph) Edges() []*Edge {
	return g.edges
}

// Len returns the number of edges in the graph.
func (g *SourceGraph) Len() int {
	return len(g.edges)
}

// String dumps the adjacency list, one origin vertex per block, in file order.
func (g *SourceGraph) String() string {
	var sb strings.Builder
	seen := make(map[NodeID]bool, len(g.adj))
	for _, e := range g.edges {
		from := e.Origin()
		if seen[from] {
			continue
		}
		seen[from] = true

		sb.WriteString("edges from ")
		sb.WriteString(from.String())
		sb.WriteString(":\n")
		for _, out := range g.adj[from] {
			sb.WriteString("\t")
			sb.WriteString(out.String())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Graphs maps a source token to its propagation graph.
type Graphs map[string]*SourceGraph

// Tokens returns the source tokens in sorted order.
func (gs Graphs) Tokens() []string {
	tokens := make([]string, 0, len(gs))
	for token := range gs {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// EdgeCount returns the number of edges across all graphs.
func (gs Graphs) EdgeCount() int {
	n := 0
	for _, g := range gs {
		n += g.Len()
	}
	return n
}

// BuildGraphs groups edge rows by their source token and builds one graph
// per token. Row order is kept within each group. Tokens are built in
// first-seen order so a consistency failure is reported deterministically.
func BuildGraphs(rows []records.Row) (Graphs, error) {
	var order []string
	grouped := make(map[string][]*Edge)

	for _, row := range rows {
		e, err := NewEdge(row)
		if err != nil {
			return nil, err
		}
		token := row.Fields[colSourceToken]
		if _, ok := grouped[token]; !ok {
			order = append(order, token)
		}
		grouped[token] = append(grouped[token], e)
	}

	graphs := make(Graphs, len(order))
	for _, token := range order {
		g, err := NewSourceGraph(token, grouped[token])
		if err != nil {
			return nil, err
		}
		graphs[token] = g
	}
	return graphs, nil
}
