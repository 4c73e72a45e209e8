package records

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	errs "github.com/chennbnbnb/JDoop-release/pkg/shared/errors"
)

// Separator splits the fields of one record.
const Separator = "\t"

// maxRecordSize bounds a single line; solver relations may carry long references.
const maxRecordSize = 16 * 1024 * 1024

// Row is one record of a tab-separated relation file.
type Row struct {
	Line   int // 1-based line number in the source file
	Fields []string
}

// Field returns the i-th field or an empty string when the row is shorter.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// Loader reads relation files through an afs.Service, so a location may be
// a local path or any URL afs understands.
type Loader struct {
	fs afs.Service
}

// NewLoader creates a Loader. A nil service falls back to afs.New().
func NewLoader(fs afs.Service) *Loader {
	if fs == nil {
		fs = afs.New()
	}
	return &Loader{fs: fs}
}

// Load reads every non-blank line of the file at location.
func (l *Loader) Load(ctx context.Context, location string) ([]Row, error) {
	data, err := l.fs.DownloadWithURL(ctx, normalizeLocation(location))
	if err != nil {
		return nil, errs.NewDataAccessError(location, err)
	}

	rows, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errs.NewDataAccessError(location, err)
	}
	return rows, nil
}

// Load reads the file at location with a default Loader.
func Load(ctx context.Context, location string) ([]Row, error) {
	return NewLoader(nil).Load(ctx, location)
}

// Parse splits r into rows. Blank lines are skipped but still counted,
// so Row.Line always matches the line in the file.
func Parse(r io.Reader) ([]Row, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	var rows []Row
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if len(text) == 0 {
			continue
		}
		rows = append(rows, Row{
			Line:   line,
			Fields: strings.Split(text, Separator),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line+1, err)
	}
	return rows, nil
}

func normalizeLocation(location string) string {
	if strings.Contains(location, "://") {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return location
}
