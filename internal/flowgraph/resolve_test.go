package flowgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chennbnbnb/JDoop-release/internal/records"
)

func graphOf(t *testing.T, rows ...records.Row) *SourceGraph {
	t.Helper()
	graphs, err := BuildGraphs(rows)
	require.NoError(t, err)
	require.Len(t, graphs, 1)
	for _, g := range graphs {
		return g
	}
	return nil
}

func targets(p Path) []string {
	var out []string
	for _, e := range p {
		out = append(out, e.To)
	}
	return out
}

func TestShortestPathTwoEdges(t *testing.T) {
	g := graphOf(t,
		row(1, "S", "1", "S", "1", "A", "Call source method"),
		row(2, "S", "1", "A", "2", "C", "Taint object transfer"),
	)

	p := g.ShortestPath(Node(1, "S"), Node(2, "C"))
	require.NotNil(t, p)
	assert.Equal(t, []string{"A", "C"}, targets(p))
	assert.Equal(t, "S", p.First().From)
	assert.Equal(t, "C", p.Last().To)
	assert.Equal(t, "[1, S] → [1, A] → [2, C]", p.String())
}

func TestShortestPathDirectEdge(t *testing.T) {
	g := graphOf(t, row(1, "S", "1", "S", "4", "X", "Call source method"))

	p := g.ShortestPath(Node(1, "S"), Node(4, "X"))
	require.Len(t, p, 1)
	assert.Equal(t, "X", p[0].To)
}

func TestShortestPathSameVertex(t *testing.T) {
	g := graphOf(t, row(1, "S", "1", "S", "1", "A", "Call source method"))

	p := g.ShortestPath(Node(1, "S"), Node(1, "S"))
	assert.NotNil(t, p)
	assert.True(t, p.Empty())
	assert.Nil(t, p.First())
	assert.Nil(t, p.Last())
}

func TestShortestPathDisjoint(t *testing.T) {
	g := graphOf(t,
		row(1, "S", "1", "S", "1", "A", "Call source method"),
		row(2, "S", "1", "B", "1", "C", "Taint object transfer"),
	)

	assert.Nil(t, g.ShortestPath(Node(1, "S"), Node(1, "C")))
}

func TestShortestPathContextMatters(t *testing.T) {
	g := graphOf(t,
		row(1, "S", "1", "S", "1", "A", "Call source method"),
		row(2, "S", "2", "A", "2", "B", "Taint object transfer"),
	)

	// A in context 1 is not A in context 2
	assert.Nil(t, g.ShortestPath(Node(1, "S"), Node(2, "B")))
}

func TestShortestPathCycleTerminates(t *testing.T) {
	g := graphOf(t,
		row(1, "S", "1", "S", "1", "A", "Call source method"),
		row(2, "S", "1", "A", "1", "B", "Taint object transfer"),
		row(3, "S", "1", "B", "1", "A", "Taint object transfer"),
		row(4, "S", "1", "B", "1", "S", "Taint object transfer"),
	)

	assert.Nil(t, g.ShortestPath(Node(1, "S"), Node(1, "Z")))
	assert.Nil(t, g.PathSearch(Node(1, "S"), Node(1, "Z")))
}

func TestShortestPathPrefersFewerHops(t *testing.T) {
	g := graphOf(t,
		row(1, "S", "1", "S", "1", "A", "Call source method"),
		row(2, "S", "1", "A", "1", "B", "Taint object transfer"),
		row(3, "S", "1", "B", "1", "C", "Taint object transfer"),
		row(4, "S", "1", "C", "1", "D", "Taint object transfer"),
		row(5, "S", "1", "A", "1", "D", "Taint object transfer"),
	)

	p := g.ShortestPath(Node(1, "S"), Node(1, "D"))
	assert.Equal(t, []string{"A", "D"}, targets(p))

	// depth first follows insertion order instead
	p = g.PathSearch(Node(1, "S"), Node(1, "D"))
	assert.Equal(t, []string{"A", "B", "C", "D"}, targets(p))
}

func TestShortestPathTieBreaksOnInsertionOrder(t *testing.T) {
	g := graphOf(t,
		row(1, "S", "1", "S", "1", "A", "Call source method"),
		row(2, "S", "1", "A", "1", "P", "Taint object transfer"),
		row(3, "S", "1", "A", "1", "Q", "Taint object transfer"),
		row(4, "S", "1", "Q", "1", "E", "Taint object transfer"),
		row(5, "S", "1", "P", "1", "E", "Taint object transfer"),
	)

	p := g.ShortestPath(Node(1, "S"), Node(1, "E"))
	assert.Equal(t, []string{"A", "P", "E"}, targets(p))
}

func TestShortestPathIdempotent(t *testing.T) {
	g := graphOf(t,
		row(1, "S", "1", "S", "1", "A", "Call source method"),
		row(2, "S", "1", "A", "1", "obj1|f", "Instance field store"),
		row(3, "S", "1", "obj1|f", "3", "C", "Taint object transfer"),
	)

	first := g.ShortestPath(Node(1, "S"), Node(3, "C"))
	second := g.ShortestPath(Node(1, "S"), Node(3, "C"))
	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, "field `f` of object `obj1`", first[1].Dest.String())
}

func TestStrategies(t *testing.T) {
	g := graphOf(t,
		row(1, "S", "1", "S", "1", "A", "Call source method"),
		row(2, "S", "1", "A", "1", "B", "Taint object transfer"),
	)

	for name, s := range map[string]Strategy{"bfs": BreadthFirst, "dfs": DepthFirst} {
		t.Run(name, func(t *testing.T) {
			p := s(g, Node(1, "S"), Node(1, "B"))
			assert.Equal(t, []string{"A", "B"}, targets(p))
		})
	}
}
