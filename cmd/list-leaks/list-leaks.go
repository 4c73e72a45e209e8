package listleaks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/chennbnbnb/JDoop-release/internal/findings"
	"github.com/chennbnbnb/JDoop-release/internal/records"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/errors"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/files"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/logger"
)

const defaultJSONName = "leaks.json"

// RunOptions holds the arguments for the list-leaks command.
type RunOptions struct {
	FindingsPath string
	JSONOutput   string
}

var (
	AppConfig             *config.Config
	listLeaksOptions      RunOptions
	exampleListLeaksUsage = `  # Summarize the leaks of the last analysis
  jdoop list-leaks

  # Summarize another findings file and store the summary as JSON
  jdoop list-leaks --findings /tmp/result/LeakingTaintedInformation.csv -J /tmp/leaks.json`
)

// ListLeaksCmd represents the list-leaks command.
var ListLeaksCmd = &cobra.Command{
	Use:                   "list-leaks [--findings PATH] [--json/-J PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleListLeaksUsage,
	Short:                 "Prints every reported leak once, ignoring the context of the sink argument",
	Args:                  cobra.NoArgs,
	RunE:                  runListLeaksCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runListLeaksCommand(cmd *cobra.Command, args []string) error {
	lg := logger.NewLogger(AppConfig, "list-leaks")

	if listLeaksOptions.FindingsPath == "" && AppConfig != nil {
		listLeaksOptions.FindingsPath = config.FindingsPath(AppConfig)
	}
	if listLeaksOptions.FindingsPath == "" {
		return errors.NewCommandError(fmt.Errorf("invalid arguments: the 'findings' flag must be specified"), 1)
	}

	if err := run(cmd.Context(), &listLeaksOptions, cmd.OutOrStdout(), lg); err != nil {
		lg.Error("list-leaks command failed", "error", err)
		return errors.NewCommandError(err, 1)
	}
	return nil
}

func run(ctx context.Context, opts *RunOptions, out io.Writer, lg hclog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	all, err := findings.Load(ctx, records.NewLoader(nil), opts.FindingsPath)
	if err != nil {
		return err
	}
	leaks := findings.Summarize(all)
	lg.Info("leaks summarized", "findings", len(all), "leaks", len(leaks))

	if _, err := fmt.Fprint(out, "analysis result as follows\n\n"); err != nil {
		return err
	}
	if err := findings.WriteSummary(out, leaks); err != nil {
		return err
	}

	if opts.JSONOutput == "" {
		return nil
	}
	target, err := files.PrepareOutputFile(opts.JSONOutput, defaultJSONName)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(leaks, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling leaks: %w", err)
	}
	if err := files.WriteJsonFile(target, data); err != nil {
		return err
	}
	lg.Info("leak summary written", "path", target)
	return nil
}

func init() {
	ListLeaksCmd.Flags().StringVar(&listLeaksOptions.FindingsPath, "findings", "", "Path or URL of the leak findings relation. Defaults to <result_folder>/LeakingTaintedInformation.csv from the config.")
	ListLeaksCmd.Flags().StringVarP(&listLeaksOptions.JSONOutput, "json", "J", "", "Path to the output file or directory for the summary in JSON format.")
	ListLeaksCmd.Flags().BoolP("help", "h", false, "Show help for the list-leaks command.")
}
