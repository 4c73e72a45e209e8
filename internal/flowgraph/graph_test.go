package flowgraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chennbnbnb/JDoop-release/internal/records"
	errs "github.com/chennbnbnb/JDoop-release/pkg/shared/errors"
)

func TestBuildGraphsGroupsByToken(t *testing.T) {
	rows := []records.Row{
		row(1, "S", "1", "S", "1", "A", "Call source method"),
		row(2, "T", "7", "T", "7", "X", "Spring entry method param"),
		row(3, "S", "1", "A", "2", "B", "Taint object transfer"),
		row(4, "S", "1", "A", "3", "C", "Taint object transfer"),
	}

	graphs, err := BuildGraphs(rows)
	require.NoError(t, err)
	require.Len(t, graphs, 2)
	assert.Equal(t, []string{"S", "T"}, graphs.Tokens())
	assert.Equal(t, 4, graphs.EdgeCount())

	s := graphs["S"]
	assert.Equal(t, 3, s.Len())
	start, ok := s.Start()
	require.True(t, ok)
	assert.Equal(t, Node(1, "S"), start)

	out := s.Out(Node(1, "A"))
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].To)
	assert.Equal(t, "C", out[1].To)

	// edges of other tokens never leak in
	assert.Empty(t, s.Out(Node(7, "T")))

	tg := graphs["T"]
	start, ok = tg.Start()
	require.True(t, ok)
	assert.Equal(t, Node(7, "T"), start)
}

func TestBuildGraphsWithoutStartEdge(t *testing.T) {
	graphs, err := BuildGraphs([]records.Row{
		row(1, "S", "1", "A", "1", "B", "Taint object transfer"),
	})
	require.NoError(t, err)

	_, ok := graphs["S"].Start()
	assert.False(t, ok)
}

func TestBuildGraphsStartContextMismatch(t *testing.T) {
	rows := []records.Row{
		row(1, "S", "1", "S", "1", "A", "Call source method"),
		row(2, "S", "1", "A", "1", "B", "Taint object transfer"),
		row(3, "S", "2", "S", "2", "A", "Spring entry method param"),
	}

	_, err := BuildGraphs(rows)
	require.Error(t, err)

	var sce *errs.StructuralConsistencyError
	require.True(t, errors.As(err, &sce))
	assert.Equal(t, "S", sce.Token)
	assert.Equal(t, 1, sce.Want)
	assert.Equal(t, 2, sce.Got)
	assert.Equal(t, 1, sce.FirstLine)
	assert.Equal(t, 3, sce.Line)
}

func TestBuildGraphsMalformedRow(t *testing.T) {
	_, err := BuildGraphs([]records.Row{
		row(1, "S", "1", "S", "1", "A", "Call source method"),
		row(2, "S", "one", "A", "1", "B", "Taint object transfer"),
	})

	var malformed *errs.MalformedRecordError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 2, malformed.Line)
}

func TestSourceGraphString(t *testing.T) {
	g, err := NewSourceGraph("S", []*Edge{
		mustEdge(t, row(1, "S", "1", "S", "1", "A", "Call source method")),
		mustEdge(t, row(2, "S", "1", "A", "2", "B", "Taint object transfer")),
		mustEdge(t, row(3, "S", "1", "A", "2", "C", "Taint object transfer")),
	})
	require.NoError(t, err)

	want := "edges from [1, S]:\n" +
		"\t[S] => [A], reason: Call source method\n" +
		"edges from [1, A]:\n" +
		"\t[A] => [B], reason: Taint object transfer\n" +
		"\t[A] => [C], reason: Taint object transfer\n"
	assert.Equal(t, want, g.String())
}

func mustEdge(t *testing.T, r records.Row) *Edge {
	t.Helper()
	e, err := NewEdge(r)
	require.NoError(t, err)
	return e
}
