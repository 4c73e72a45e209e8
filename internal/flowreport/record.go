package flowreport

import (
	"github.com/chennbnbnb/JDoop-release/internal/findings"
	"github.com/chennbnbnb/JDoop-release/internal/flowgraph"
)

// EdgeRecord is the structured form of one edge of a resolved path.
type EdgeRecord struct {
	Index       int    `json:"idx"`
	Destination string `json:"to"`
	Reason      string `json:"remark"`
}

// FlowRecord is the structured form of one finding and its path.
// Path is nil when resolution failed.
type FlowRecord struct {
	SourceLabel      string       `json:"source_label"`
	Source           string       `json:"source"`
	SinkLabel        string       `json:"sink_label"`
	SinkParamContext int          `json:"sink_param_ctx_id"`
	SinkParam        string       `json:"sink_param"`
	SinkInvocation   string       `json:"sink_invo"`
	Path             []EdgeRecord `json:"path"`
}

// edgeRecords converts a path. A nil path stays nil so it serializes as null.
func edgeRecords(p flowgraph.Path) []EdgeRecord {
	if p == nil {
		return nil
	}
	out := make([]EdgeRecord, 0, len(p))
	for i, e := range p {
		out = append(out, EdgeRecord{
			Index:       i,
			Destination: e.To,
			Reason:      e.Reason.String(),
		})
	}
	return out
}

func newFlowRecord(f findings.Finding, path []EdgeRecord) FlowRecord {
	return FlowRecord{
		SourceLabel:      f.SourceLabel,
		Source:           f.Source,
		SinkLabel:        f.SinkLabel,
		SinkParamContext: f.SinkParamContext,
		SinkParam:        f.SinkParam,
		SinkInvocation:   f.SinkInvocation,
		Path:             path,
	}
}
