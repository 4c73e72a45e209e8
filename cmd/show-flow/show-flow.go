package showflow

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/chennbnbnb/JDoop-release/internal/flowreport"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/errors"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/logger"
)

// RunOptions holds the arguments for the show-flow command.
type RunOptions struct {
	EdgesPath    string
	FindingsPath string
	Source       string
	JSONOutput   string
	SarifOutput  string
	Threads      int
	Strategy     string
	Color        string
	Publish      bool
}

var (
	AppConfig            *config.Config
	showFlowOptions      RunOptions
	exampleShowFlowUsage = `  # Print the taint flow of every finding of the last analysis
  jdoop show-flow

  # Only print flows of one tainted source
  jdoop show-flow -S '<com.example.UserController: void login(java.lang.String)>/password/0'

  # Read the relations from another result folder and store the flows as JSON
  jdoop show-flow --edges /tmp/result/TaintObjectPropagateEdge.csv --findings /tmp/result/LeakingTaintedInformation.csv -J /tmp/flows.json

  # Resolve with 8 workers, write a SARIF report and publish both reports
  jdoop show-flow -j 8 -J ./out --sarif ./out --publish`
)

// ShowFlowCmd represents the show-flow command.
var ShowFlowCmd = &cobra.Command{
	Use:                   "show-flow [--edges PATH] [--findings PATH] [--source/-S TOKEN] [--json/-J PATH] [--sarif PATH] [-j THREADS_NUMBER] [--strategy bfs|dfs] [--color auto|always|never] [--publish]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleShowFlowUsage,
	Short:                 "Explains every reported leak with the chain of propagation edges from its source to the sink argument",
	Args:                  cobra.NoArgs,
	RunE:                  runShowFlowCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runShowFlowCommand executes the show-flow command.
func runShowFlowCommand(cmd *cobra.Command, args []string) error {
	lg := logger.NewLogger(AppConfig, "show-flow")

	applyConfigDefaults(&showFlowOptions, AppConfig, cmd.Flags())
	if err := validateShowFlowArgs(&showFlowOptions); err != nil {
		lg.Error("invalid show-flow arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid arguments: %w", err), 1)
	}

	theme := determineTheme(showFlowOptions.Color, cmd.OutOrStdout())
	if err := run(cmd.Context(), AppConfig, &showFlowOptions, cmd.OutOrStdout(), theme, lg); err != nil {
		return errors.NewCommandError(err, 1)
	}
	return nil
}

// run generates the report, prints it and writes or publishes the requested outputs.
func run(ctx context.Context, cfg *config.Config, opts *RunOptions, out io.Writer, theme flowreport.Theme, lg hclog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := flowreport.Generate(ctx, flowreport.Options{
		EdgesPath:    opts.EdgesPath,
		FindingsPath: opts.FindingsPath,
		Source:       opts.Source,
		Workers:      opts.Threads,
		Strategy:     opts.Strategy,
	}, lg)
	if err != nil {
		lg.Error("failed to generate flow report", "error", err)
		return err
	}

	if err := flowreport.WriteNarrative(out, report, theme); err != nil {
		return fmt.Errorf("failed to print flows: %w", err)
	}

	artifacts, err := writeOutputs(cfg, opts, report, lg)
	if err != nil {
		lg.Error("failed to write outputs", "error", err)
		return err
	}

	if opts.Publish {
		if err := publish(ctx, cfg, report.RunID, artifacts, lg); err != nil {
			lg.Error("failed to publish reports", "error", err)
			return err
		}
	}

	lg.Info("show-flow command completed successfully", "run_id", report.RunID, "resolved", report.Resolved, "failed", report.Failed)
	return nil
}

// Initialize flags for the show-flow command.
func init() {
	ShowFlowCmd.Flags().StringVar(&showFlowOptions.EdgesPath, "edges", "", "Path or URL of the propagation edge relation. Defaults to <result_folder>/TaintObjectPropagateEdge.csv from the config.")
	ShowFlowCmd.Flags().StringVar(&showFlowOptions.FindingsPath, "findings", "", "Path or URL of the leak findings relation. Defaults to <result_folder>/LeakingTaintedInformation.csv from the config.")
	ShowFlowCmd.Flags().StringVarP(&showFlowOptions.Source, "source", "S", "", "Only show taint flows of this source token.")
	ShowFlowCmd.Flags().StringVarP(&showFlowOptions.JSONOutput, "json", "J", "", "Path to the output file or directory for the flows in JSON format.")
	ShowFlowCmd.Flags().StringVar(&showFlowOptions.SarifOutput, "sarif", "", "Path to the output file or directory for the flows as a SARIF report.")
	ShowFlowCmd.Flags().IntVarP(&showFlowOptions.Threads, "threads", "j", 1, "Number of concurrent workers resolving flows.")
	ShowFlowCmd.Flags().StringVar(&showFlowOptions.Strategy, "strategy", config.StrategyBFS, "Path search strategy: bfs finds the shortest flow, dfs the first one.")
	ShowFlowCmd.Flags().StringVar(&showFlowOptions.Color, "color", config.ColorAuto, "Colorize the narrative: auto, always or never.")
	ShowFlowCmd.Flags().BoolVar(&showFlowOptions.Publish, "publish", false, "Publish the JSON and SARIF reports to the destinations configured under publish.")
	ShowFlowCmd.Flags().BoolP("help", "h", false, "Show help for the show-flow command.")
}
