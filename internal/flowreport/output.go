package flowreport

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chennbnbnb/JDoop-release/pkg/shared/files"
)

// DefaultJSONName is used when the JSON output location is a directory.
const DefaultJSONName = "taint-flows.json"

// WriteNarrative prints one block per flow, blocks separated by a blank line.
func WriteNarrative(w io.Writer, r *Report, theme Theme) error {
	fm := NewFormatter(theme)
	for i, flow := range r.Flows {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, render(fm, flow).Text); err != nil {
			return err
		}
	}
	return nil
}

// Records returns the structured form of every flow in report order.
func (r *Report) Records() []FlowRecord {
	out := make([]FlowRecord, 0, len(r.Flows))
	for _, flow := range r.Flows {
		out = append(out, newFlowRecord(flow.Finding, edgeRecords(flow.Path)))
	}
	return out
}

// MarshalJSON encodes the report as its list of records.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Records())
}

// WriteJSON stores the records at path, returning the file written.
// A directory or extensionless path gets DefaultJSONName appended.
func (r *Report) WriteJSON(path string) (string, error) {
	target, err := files.PrepareOutputFile(path, DefaultJSONName)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(r.Records(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling flow records: %w", err)
	}
	if err := files.WriteJsonFile(target, data); err != nil {
		return "", err
	}
	return target, nil
}
