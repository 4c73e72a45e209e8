package sarif

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/chennbnbnb/JDoop-release/internal/findings"
	"github.com/chennbnbnb/JDoop-release/internal/flowgraph"
	"github.com/chennbnbnb/JDoop-release/internal/flowreport"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/files"
)

const (
	// DefaultFileName is used when the SARIF output location is a directory.
	DefaultFileName = "taint-flows.sarif"

	rulePrefix      = "jdoop/leak/"
	fingerprintName = "jdoopLeak/v1"

	levelResolved   = "error"
	levelUnresolved = "warning"
)

// Report wraps a SARIF log built from taint flows.
type Report struct {
	*sarif.Report
	logger hclog.Logger
}

// ToolMetadata describes the driver recorded in the run.
type ToolMetadata struct {
	Name           string
	Version        string
	InformationURI string
}

// RuleID returns the rule a sink label is reported under.
func RuleID(sinkLabel string) string {
	return rulePrefix + sinkLabel
}

// FromFlows converts every flow of r into a result with its propagation path
// as a code flow. Unresolved flows are kept as warnings without code flow.
func FromFlows(r *flowreport.Report, tool ToolMetadata, logger hclog.Logger) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("error creating sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(tool.Name, tool.InformationURI)
	if tool.Version != "" {
		run.Tool.Driver.WithVersion(tool.Version)
	}
	run.WithAutomationDetails(sarif.NewRunAutomationDetails().
		WithGUID(r.RunID).
		WithID("jdoop/show-flow/" + r.RunID))

	for _, flow := range r.Flows {
		if err := addResult(run, flow); err != nil {
			return nil, err
		}
	}
	report.AddRun(run)

	logger.Debug("sarif report assembled", "results", len(run.Results), "rules", len(run.Tool.Driver.Rules))
	return &Report{Report: report, logger: logger}, nil
}

func addResult(run *sarif.Run, flow *flowreport.Flow) error {
	f := flow.Finding
	id := RuleID(f.SinkLabel)

	run.AddRule(id).
		WithName(f.SinkLabel).
		WithDescription(fmt.Sprintf("Tainted data reaches an argument of a %s sink", f.SinkLabel)).
		WithProperties(sarif.Properties{"sink_label": f.SinkLabel})

	result := run.CreateResultForRule(id)
	result.AddLocation(sinkLocation(f))

	key, err := findings.LeakOf(f).Key()
	if err != nil {
		return fmt.Errorf("error computing fingerprint: %w", err)
	}
	result.WithPartialFingerPrints(map[string]interface{}{fingerprintName: key})

	if flow.Err != nil {
		result.WithLevel(levelUnresolved).
			WithMessage(sarif.NewTextMessage(fmt.Sprintf("%s data from %s reaches %s; %v",
				f.SourceLabel, f.Source, f.SinkInvocation, flow.Err)))
		return nil
	}

	result.WithLevel(levelResolved).
		WithMessage(sarif.NewTextMessage(fmt.Sprintf("%s data from %s reaches argument %s of %s in %d steps",
			f.SourceLabel, f.Source, f.SinkParam, f.SinkInvocation, len(flow.Path))))
	result.AddCodeFlow(codeFlow(f, flow.Path))
	return nil
}

func sinkLocation(f findings.Finding) *sarif.Location {
	return logicalLocation(f.SinkInvocation, f.SinkParam, "sink", "sink invocation")
}

func logicalLocation(fqn, name, kind, message string) *sarif.Location {
	loc := sarif.NewLocation().WithMessage(sarif.NewTextMessage(message))
	loc.AddLogicalLocations(sarif.NewLogicalLocation().
		WithFullyQualifiedName(fqn).
		WithName(name).
		WithKind(kind))
	return loc
}

func codeFlow(f findings.Finding, p flowgraph.Path) *sarif.CodeFlow {
	thread := sarif.NewThreadFlow()

	origin := f.Source
	if first := p.First(); first != nil {
		origin = first.From
	}
	thread.AddLocation(sarif.NewThreadFlowLocation().
		WithIndex(0).
		WithLocation(logicalLocation(origin, origin, "source", "source")))

	for i, e := range p {
		kind := "value"
		if i == len(p)-1 && e.To == f.SinkParam {
			kind = "sink"
		}
		thread.AddLocation(sarif.NewThreadFlowLocation().
			WithIndex(i + 1).
			WithLocation(logicalLocation(e.To, e.Dest.String(), kind, e.Reason.String())))
	}

	return sarif.NewCodeFlow().
		WithTextMessage(fmt.Sprintf("%s ==> %s", f.SourceLabel, f.SinkLabel)).
		WithThreadFlows([]*sarif.ThreadFlow{thread})
}

// CollectLevelInfo counts results per level plus a "total" entry.
func (r Report) CollectLevelInfo() map[string]int {
	info := map[string]int{
		levelResolved:   0,
		levelUnresolved: 0,
		"total":         0,
	}
	for _, run := range r.Runs {
		for _, result := range run.Results {
			if result.Level != nil {
				info[*result.Level]++
			}
			info["total"]++
		}
	}
	return info
}

// WriteFile stores the report at path, replacing any previous content, and
// returns the file written. A directory or extensionless path gets
// DefaultFileName appended.
func (r Report) WriteFile(path string) (string, error) {
	target, err := files.PrepareOutputFile(path, DefaultFileName)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.PrettyWrite(&buf); err != nil {
		return "", fmt.Errorf("error encoding sarif report: %w", err)
	}
	if err := files.WriteJsonFile(target, buf.Bytes()); err != nil {
		return "", err
	}

	r.logger.Debug("sarif report written", "path", target)
	return target, nil
}

// ReadReport loads a SARIF log from path.
func ReadReport(path string, logger hclog.Logger) (*Report, error) {
	report, err := sarif.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading sarif report %q: %w", path, err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Report{Report: report, logger: logger}, nil
}
