package flowreport

import (
	"fmt"
	"strings"

	"github.com/chennbnbnb/JDoop-release/internal/findings"
	"github.com/chennbnbnb/JDoop-release/internal/flowgraph"
)

// Rendered is a finding turned into text and structured form.
type Rendered struct {
	Text string
	Path []EdgeRecord
}

// Formatter turns findings and their paths into narratives.
type Formatter struct {
	theme Theme
}

// NewFormatter creates a Formatter painting with theme.
func NewFormatter(theme Theme) *Formatter {
	return &Formatter{theme: theme}
}

// Render describes how the source of f reaches its sink along p.
// A nil path renders as a resolution failure.
func (fm *Formatter) Render(f findings.Finding, p flowgraph.Path) Rendered {
	if p == nil {
		return fm.RenderFailure(f, nil)
	}

	var sb strings.Builder
	sb.WriteString(fm.header(f))

	origin := f.Source
	if first := p.First(); first != nil {
		origin = first.From
	}
	sb.WriteString("\n\t")
	sb.WriteString(fm.theme.paint(fm.theme.source, fmt.Sprintf("source [%s]", origin)))

	if p.Empty() {
		sb.WriteString("\n\t")
		sb.WriteString(fm.sinkLine(f.SinkParam))
	}

	for i, e := range p {
		arrow := fm.theme.paint(fm.theme.arrow, "|")
		sb.WriteString("\n\t\t")
		sb.WriteString(arrow)
		sb.WriteString("\n\t\t")
		sb.WriteString(arrow)
		sb.WriteString(" ")
		sb.WriteString(fm.theme.paint(fm.theme.reason, e.Reason.String()))
		sb.WriteString("\n\t\t")
		sb.WriteString(fm.theme.paint(fm.theme.arrow, "V"))
		sb.WriteString("\n\t")

		if i == len(p)-1 && e.To == f.SinkParam {
			sb.WriteString(fm.sinkLine(e.Dest.String()))
		} else {
			sb.WriteString(e.Dest.String())
		}
	}

	return Rendered{Text: sb.String(), Path: edgeRecords(p)}
}

// RenderFailure describes a finding whose path could not be resolved.
// A nil cause falls back to a generic reason.
func (fm *Formatter) RenderFailure(f findings.Finding, cause error) Rendered {
	reason := fmt.Sprintf("no propagation path from [%s] to [%d, %s]", f.Source, f.SinkParamContext, f.SinkParam)
	if cause != nil {
		reason = cause.Error()
	}

	var sb strings.Builder
	sb.WriteString(fm.header(f))
	sb.WriteString("\n\t")
	sb.WriteString(fm.theme.paint(fm.theme.failure, "resolution failed: "+reason))
	return Rendered{Text: sb.String()}
}

func (fm *Formatter) header(f findings.Finding) string {
	return fm.theme.paint(fm.theme.header,
		fmt.Sprintf("taint flow: [%s] ==> [%s], sink invocation [%s]", f.SourceLabel, f.SinkLabel, f.SinkInvocation))
}

func (fm *Formatter) sinkLine(argument string) string {
	return fm.theme.paint(fm.theme.sink, "sink invocation reached, argument "+argument)
}
