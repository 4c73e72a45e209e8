package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	listleaks "github.com/chennbnbnb/JDoop-release/cmd/list-leaks"
	showflow "github.com/chennbnbnb/JDoop-release/cmd/show-flow"
	validatesinks "github.com/chennbnbnb/JDoop-release/cmd/validate-sinks"
	"github.com/chennbnbnb/JDoop-release/cmd/version"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
	errs "github.com/chennbnbnb/JDoop-release/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "jdoop [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "jdoop explains the taint flows found by the JDoop analysis.",
		Long: `jdoop post-processes the result relations of a JDoop taint analysis.
	For every reported leak it reconstructs the chain of object propagation edges
	from the tainted source to the argument of the sink call.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultConfigPath+" when present)")

	rootCmd.AddCommand(showflow.ShowFlowCmd)
	rootCmd.AddCommand(listleaks.ListLeaksCmd)
	rootCmd.AddCommand(validatesinks.ValidateSinksCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)

		var cmdErr *errs.CommandError
		if errors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config file: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	showflow.Init(AppConfig)
	listleaks.Init(AppConfig)
	validatesinks.Init(AppConfig)
}
