package validatesinks

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/chennbnbnb/JDoop-release/internal/records"
	"github.com/chennbnbnb/JDoop-release/internal/sinkrules"
	"github.com/chennbnbnb/JDoop-release/pkg/shared"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/errors"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/logger"
)

var (
	AppConfig                 *config.Config
	exampleValidateSinksUsage = `  # Check the primitive sink rules before a run
  jdoop validate-sinks sink_rules/primitive_rules/LeakingSinkMethodArg.tsv

  # Check several rule files at once
  jdoop validate-sinks sink_rules/primitive_rules/*.tsv`
)

// ValidateSinksCmd represents the validate-sinks command.
var ValidateSinksCmd = &cobra.Command{
	Use:                   "validate-sinks PATH [PATH...]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleValidateSinksUsage,
	Short:                 "Checks the format of sink definition files: label, argument index and method signature per line",
	RunE:                  runValidateSinksCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runValidateSinksCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}
	if len(args) == 0 {
		return errors.NewCommandError(fmt.Errorf("invalid arguments: at least one rule file must be specified"), 1)
	}

	lg := logger.NewLogger(AppConfig, "validate-sinks")
	if err := run(cmd.Context(), args, cmd.OutOrStdout(), lg); err != nil {
		return errors.NewCommandError(err, 1)
	}
	return nil
}

// run validates every file, printing each offending line. It fails when a
// file cannot be read or holds an invalid rule.
func run(ctx context.Context, paths []string, out io.Writer, lg hclog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	loader := records.NewLoader(nil)

	invalidFiles := 0
	for _, path := range paths {
		rules, invalid, err := sinkrules.ValidateFile(ctx, loader, path)
		if err != nil {
			lg.Error("failed to read rule file", "path", path, "error", err)
			return err
		}

		for _, re := range invalid {
			if _, err := fmt.Fprintln(out, re.Error()); err != nil {
				return err
			}
		}
		if len(invalid) > 0 {
			invalidFiles++
			lg.Warn("invalid sink definitions", "path", path, "valid", len(rules), "invalid", len(invalid))
			continue
		}
		lg.Info("sink definitions are valid", "path", path, "rules", len(rules))
	}

	if invalidFiles > 0 {
		return fmt.Errorf("%d of %d rule files are invalid", invalidFiles, len(paths))
	}
	return nil
}

func init() {
	ValidateSinksCmd.Flags().BoolP("help", "h", false, "Show help for the validate-sinks command.")
}
