package findings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/chennbnbnb/JDoop-release/internal/records"
	errs "github.com/chennbnbnb/JDoop-release/pkg/shared/errors"
)

// Columns of the leak relation.
const (
	colSourceLabel = iota
	colSinkLabel
	colSinkInvocation
	colSinkParamContext
	colSinkParam
	colSource

	findingColumns
)

// Finding is one reported leak: a tainted source reaching an argument of a sink call.
type Finding struct {
	SourceLabel      string `json:"source_label"`
	SinkLabel        string `json:"sink_label"`
	SinkInvocation   string `json:"sink_invo"`
	SinkParamContext int    `json:"sink_param_ctx_id"`
	SinkParam        string `json:"sink_param"`
	Source           string `json:"source"`

	// Line is the record's line in the findings file.
	Line int `json:"-"`
}

// FromRow builds a Finding from a row of the leak relation.
func FromRow(row records.Row) (Finding, error) {
	if len(row.Fields) < findingColumns {
		return Finding{}, &errs.MalformedRecordError{
			Line: row.Line,
			Err:  fmt.Errorf("expected %d columns, got %d", findingColumns, len(row.Fields)),
		}
	}

	ctx, err := strconv.Atoi(row.Fields[colSinkParamContext])
	if err != nil {
		return Finding{}, &errs.MalformedRecordError{
			Line:   row.Line,
			Column: colSinkParamContext + 1,
			Value:  row.Fields[colSinkParamContext],
			Err:    fmt.Errorf("context id is not an integer"),
		}
	}

	return Finding{
		SourceLabel:      row.Fields[colSourceLabel],
		SinkLabel:        row.Fields[colSinkLabel],
		SinkInvocation:   row.Fields[colSinkInvocation],
		SinkParamContext: ctx,
		SinkParam:        row.Fields[colSinkParam],
		Source:           row.Fields[colSource],
		Line:             row.Line,
	}, nil
}

// FromRows converts every row, stopping at the first malformed one.
func FromRows(rows []records.Row) ([]Finding, error) {
	out := make([]Finding, 0, len(rows))
	for _, row := range rows {
		f, err := FromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Load reads and parses the findings file at location. Malformed records
// are reported against location.
func Load(ctx context.Context, loader *records.Loader, location string) ([]Finding, error) {
	rows, err := loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}

	out, err := FromRows(rows)
	if err != nil {
		return nil, errs.WithPath(err, location)
	}
	return out, nil
}

// BySource keeps the findings whose source token equals source, in order.
// An empty source keeps everything.
func BySource(all []Finding, source string) []Finding {
	if source == "" {
		return all
	}
	var out []Finding
	for _, f := range all {
		if f.Source == source {
			out = append(out, f)
		}
	}
	return out
}
