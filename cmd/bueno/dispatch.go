package main

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// usageExitCode is returned for an unknown command or too few arguments,
// matching the original dispatcher's usage()/exit(12).
const usageExitCode = 12

type testCommand struct {
	name string
	run  func(logger *zap.Logger, stdout io.Writer) int
}

type utilCommand struct {
	name    string
	minArgs int
	usage   string
	run     func(logger *zap.Logger, stdout io.Writer, args []string) int
}

func testCommands() []testCommand {
	return []testCommand{
		{name: "test_line_reader", run: runTestLineReader},
		{name: "test_bintree", run: runTestBintree},
		{name: "test_json", run: runTestJSON},
	}
}

func utilCommands() []utilCommand {
	return []utilCommand{
		{name: "writefile", minArgs: 2, usage: "writefile <path> <contents>", run: runWriteFile},
		{name: "unlink", minArgs: 1, usage: "unlink <path>", run: runUnlink},
		{name: "hash", minArgs: 1, usage: "hash <string>", run: runHash},
	}
}

// Dispatch selects and runs the command named by args[0], forwarding the
// rest of args to it. It never calls os.Exit; the caller turns the
// returned code into a process exit status.
func Dispatch(logger *zap.Logger, stdout, stderr io.Writer, args []string) int {
	if len(args) == 0 {
		printUsage(stderr)
		return usageExitCode
	}

	name, rest := args[0], args[1:]

	if strings.HasPrefix(name, "test") {
		return dispatchTests(logger, stdout, stderr, name, rest)
	}

	for _, u := range utilCommands() {
		if u.name != name {
			continue
		}
		if len(rest) < u.minArgs {
			fmt.Fprintf(stderr, "ERROR: wrong number of parameters for option %s.\n\n", name)
			printUsage(stderr)
			return usageExitCode
		}
		return u.run(logger, stdout, rest)
	}

	fmt.Fprintf(stderr, "ERROR: option %q is invalid.\n\n", name)
	printUsage(stderr)
	return usageExitCode
}

// dispatchTests runs every registered test command whose name begins
// with prefix, aggregating exit status: zero iff every selected test
// returned zero, otherwise the last non-zero code.
func dispatchTests(logger *zap.Logger, stdout, stderr io.Writer, prefix string, rest []string) int {
	if len(rest) > 0 {
		fmt.Fprintf(stderr, "WARNING: ignoring trailing arguments %v for %s\n", rest, prefix)
	}

	matched := false
	lastNonZero := 0
	for _, tc := range testCommands() {
		if !strings.HasPrefix(tc.name, prefix) {
			continue
		}
		matched = true
		if code := tc.run(logger, stdout); code != 0 {
			lastNonZero = code
		}
	}
	if !matched {
		fmt.Fprintf(stderr, "ERROR: option %q is invalid.\n\n", prefix)
		printUsage(stderr)
		return usageExitCode
	}
	return lastNonZero
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "bueno usage:")
	fmt.Fprintln(w)
	for _, tc := range testCommands() {
		fmt.Fprintf(w, "  %s\n", tc.name)
	}
	for _, u := range utilCommands() {
		fmt.Fprintf(w, "  %s\n", u.usage)
	}
}
