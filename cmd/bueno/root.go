package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRootCommand wires cobra purely for argument grouping, --help text and
// flag parsing; the actual test*/utility dispatch semantics live in
// Dispatch, since cobra subcommands only match by exact name, not by the
// prefix matching the dispatcher requires.
func newRootCommand(logger *zap.Logger, exitCode *int) *cobra.Command {
	root := &cobra.Command{
		Use:           "bueno <command> [args...]",
		Short:         "Run a named test or utility command",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			*exitCode = Dispatch(logger, cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
			return nil
		},
	}
	return root
}
