package showflow

import (
	"fmt"

	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
)

// validateShowFlowArgs validates the arguments provided to the show-flow command.
func validateShowFlowArgs(options *RunOptions) error {
	if options.EdgesPath == "" {
		return fmt.Errorf("the 'edges' flag must be specified")
	}
	if options.FindingsPath == "" {
		return fmt.Errorf("the 'findings' flag must be specified")
	}
	if options.Threads <= 0 {
		return fmt.Errorf("the 'threads' flag must be a positive integer")
	}
	if err := config.ValidateStrategy(options.Strategy); err != nil {
		return err
	}
	if err := config.ValidateColorMode(options.Color); err != nil {
		return err
	}
	return nil
}
