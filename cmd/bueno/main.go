// Command bueno is a named-command dispatcher: it selects a test or
// utility entry point by name and forwards the residual argument vector,
// in place of the original argopts[] table.
package main

import (
	"fmt"
	"os"

	"github.com/stojanovski/bueno/internal/telemetry"
)

func main() {
	logger, err := telemetry.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bueno: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting", telemetry.Fields()...)

	var exitCode int
	root := newRootCommand(logger, &exitCode)
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bueno: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}
