package records

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/chennbnbnb/JDoop-release/pkg/shared/errors"
)

func TestParseSkipsBlankLines(t *testing.T) {
	input := "a\tb\tc\n\nd\te\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{Line: 1, Fields: []string{"a", "b", "c"}}, rows[0])
	assert.Equal(t, Row{Line: 3, Fields: []string{"d", "e"}}, rows[1])
}

func TestParseKeepsEmptyFields(t *testing.T) {
	rows, err := Parse(strings.NewReader("tok\t0\t\t1\tB\treason"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"tok", "0", "", "1", "B", "reason"}, rows[0].Fields)
}

func TestParseLongRecord(t *testing.T) {
	long := strings.Repeat("x", 200*1024)

	rows, err := Parse(strings.NewReader("tok\t" + long + "\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Field(1), len(long))
}

func TestRowField(t *testing.T) {
	row := Row{Fields: []string{"a", "b"}}
	assert.Equal(t, "b", row.Field(1))
	assert.Equal(t, "", row.Field(2))
	assert.Equal(t, "", row.Field(-1))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.csv")
	require.NoError(t, os.WriteFile(path, []byte("tok\t0\tA\t0\tB\tCall source method\n"), 0644))

	rows, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Call source method", rows[0].Field(5))
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := Load(context.Background(), path)
	require.Error(t, err)

	var dataErr *errs.DataAccessError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, path, dataErr.Path)
}
