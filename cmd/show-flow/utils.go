package showflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/chennbnbnb/JDoop-release/cmd/version"
	"github.com/chennbnbnb/JDoop-release/internal/flowreport"
	"github.com/chennbnbnb/JDoop-release/internal/publisher"
	"github.com/chennbnbnb/JDoop-release/internal/sarif"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/httpclient"
)

// applyConfigDefaults fills options the user did not set from the config.
func applyConfigDefaults(options *RunOptions, cfg *config.Config, flags *pflag.FlagSet) {
	if cfg == nil {
		return
	}
	if options.EdgesPath == "" {
		options.EdgesPath = config.EdgesPath(cfg)
	}
	if options.FindingsPath == "" {
		options.FindingsPath = config.FindingsPath(cfg)
	}
	if !flags.Changed("threads") {
		options.Threads = cfg.Report.Workers
	}
	if !flags.Changed("strategy") {
		options.Strategy = cfg.Report.Strategy
	}
	if !flags.Changed("color") {
		options.Color = cfg.Report.Color
	}
}

// determineTheme picks the narrative theme for the color mode and output.
func determineTheme(mode string, out io.Writer) flowreport.Theme {
	switch mode {
	case config.ColorAlways:
		return flowreport.NewTheme(out, true)
	case config.ColorNever:
		return flowreport.PlainTheme()
	}

	if os.Getenv("NO_COLOR") != "" || !isTerminal(out) {
		return flowreport.PlainTheme()
	}
	return flowreport.NewTheme(out, false)
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeOutputs builds the structured reports that were asked for, writes the
// ones given an output path and returns them for publishing. Nothing is built
// when there is no output path and no publishing.
func writeOutputs(cfg *config.Config, options *RunOptions, report *flowreport.Report, lg hclog.Logger) ([]publisher.Artifact, error) {
	var artifacts []publisher.Artifact

	if options.JSONOutput != "" || options.Publish {
		records, err := json.MarshalIndent(report.Records(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error marshaling flow records: %w", err)
		}
		if options.JSONOutput != "" {
			target, err := report.WriteJSON(options.JSONOutput)
			if err != nil {
				return nil, err
			}
			lg.Info("flow records written", "path", target, "records", len(report.Flows))
		}
		artifacts = append(artifacts, publisher.Artifact{Name: flowreport.DefaultJSONName, ContentType: "application/json", Data: records})
	}

	if options.SarifOutput != "" || options.Publish {
		sr, err := sarif.FromFlows(report, toolMetadata(cfg), lg)
		if err != nil {
			return nil, err
		}
		if options.SarifOutput != "" {
			target, err := sr.WriteFile(options.SarifOutput)
			if err != nil {
				return nil, err
			}
			lg.Info("sarif report written", "path", target, "results", sr.CollectLevelInfo()["total"])
		}
		var sarifData bytes.Buffer
		if err := sr.PrettyWrite(&sarifData); err != nil {
			return nil, fmt.Errorf("error encoding sarif report: %w", err)
		}
		artifacts = append(artifacts, publisher.Artifact{Name: sarif.DefaultFileName, ContentType: "application/sarif+json", Data: sarifData.Bytes()})
	}

	return artifacts, nil
}

func toolMetadata(cfg *config.Config) sarif.ToolMetadata {
	uri := config.DefaultInformationURI
	if cfg != nil {
		uri = config.SetThen(cfg.Report.InformationURI, uri)
	}
	return sarif.ToolMetadata{
		Name:           "jdoop",
		Version:        version.CoreVersion,
		InformationURI: uri,
	}
}

// publish sends the artifacts to every configured destination.
func publish(ctx context.Context, cfg *config.Config, runID string, artifacts []publisher.Artifact, lg hclog.Logger) error {
	pubs, err := publisher.FromConfig(cfg, httpclient.New(lg, cfg), lg)
	if err != nil {
		return err
	}
	if len(pubs) == 0 {
		return fmt.Errorf("no publish destination configured")
	}
	return publisher.PublishAll(ctx, pubs, runID, artifacts, lg)
}
