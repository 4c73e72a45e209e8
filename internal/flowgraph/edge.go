package flowgraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chennbnbnb/JDoop-release/internal/records"
	errs "github.com/chennbnbnb/JDoop-release/pkg/shared/errors"
)

// Columns of the propagation edge relation.
const (
	colSourceToken = iota
	colFromContext
	colFrom
	colToContext
	colTo
	colReason

	edgeColumns
)

// CompoundSeparator splits compound destination references such as "obj|field".
const CompoundSeparator = "|"

// DestinationKind tells how a destination reference is to be read.
type DestinationKind int

const (
	DestinationValue DestinationKind = iota
	DestinationField
	DestinationArrayElement
)

// Destination is the decoded form of an edge's destination reference.
// Object and Field are only set for field and array element destinations.
type Destination struct {
	Kind   DestinationKind
	Raw    string
	Object string
	Field  string
}

// ParseDestination decodes raw according to the convention implied by reason.
// References that do not follow the convention stay plain values.
func ParseDestination(reason Reason, raw string) Destination {
	d := Destination{Kind: DestinationValue, Raw: raw}

	switch {
	case reason.Is(ReasonInstanceFieldStore):
		obj, field, ok := strings.Cut(raw, CompoundSeparator)
		if !ok {
			return d
		}
		d.Kind, d.Object, d.Field = DestinationField, obj, field
	case reason.Is(ReasonArrayIndexStore):
		obj, _, ok := strings.Cut(raw, CompoundSeparator)
		if !ok {
			return d
		}
		d.Kind, d.Object = DestinationArrayElement, obj
	}
	return d
}

// String renders the destination for humans.
func (d Destination) String() string {
	switch d.Kind {
	case DestinationField:
		return fmt.Sprintf("field `%s` of object `%s`", d.Field, d.Object)
	case DestinationArrayElement:
		return fmt.Sprintf("element pointer of array object `%s`", d.Object)
	default:
		return d.Raw
	}
}

// Edge is one propagation edge. Edges are immutable once built.
type Edge struct {
	FromContext int
	From        string
	ToContext   int
	To          string
	Reason      Reason
	Dest        Destination

	// Line is the record's line in the edge file.
	Line int
}

// NewEdge builds an Edge from a row of the edge relation. The leading
// source token column is left to the caller.
func NewEdge(row records.Row) (*Edge, error) {
	if len(row.Fields) < edgeColumns {
		return nil, &errs.MalformedRecordError{
			Line: row.Line,
			Err:  fmt.Errorf("expected %d columns, got %d", edgeColumns, len(row.Fields)),
		}
	}

	fromCtx, err := parseContext(row, colFromContext)
	if err != nil {
		return nil, err
	}
	toCtx, err := parseContext(row, colToContext)
	if err != nil {
		return nil, err
	}

	reason := Reason(row.Fields[colReason])
	return &Edge{
		FromContext: fromCtx,
		From:        row.Fields[colFrom],
		ToContext:   toCtx,
		To:          row.Fields[colTo],
		Reason:      reason,
		Dest:        ParseDestination(reason, row.Fields[colTo]),
		Line:        row.Line,
	}, nil
}

func parseContext(row records.Row, col int) (int, error) {
	v, err := strconv.Atoi(row.Fields[col])
	if err != nil {
		return 0, &errs.MalformedRecordError{
			Line:   row.Line,
			Column: col + 1,
			Value:  row.Fields[col],
			Err:    fmt.Errorf("context id is not an integer"),
		}
	}
	return v, nil
}

// Origin returns the vertex the edge leaves.
func (e *Edge) Origin() NodeID {
	return NodeID{Context: e.FromContext, Ref: e.From}
}

// Target returns the vertex the edge reaches.
func (e *Edge) Target() NodeID {
	return NodeID{Context: e.ToContext, Ref: e.To}
}

// IsStart reports whether the edge originates a taint flow.
func (e *Edge) IsStart() bool {
	return e.Reason.IsStart()
}

func (e *Edge) String() string {
	return fmt.Sprintf("[%s] => [%s], reason: %s", e.From, e.To, e.Reason)
}
