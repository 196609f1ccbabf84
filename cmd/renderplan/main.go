// renderplan prints the plan the bridge would hand to the agent for a
// FixRequest read from --file or stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/animus-labs/headless-bridge/internal/execution/plan"
	"github.com/animus-labs/headless-bridge/internal/execution/specvalidator"
	"github.com/animus-labs/headless-bridge/internal/platform/ids"
)

const exitUsage = 2

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) ExitCode() int { return exitUsage }

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var runID, filePath string

	flagSet := pflag.NewFlagSet("renderplan", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&runID, "run-id", "", "run id to embed (default: a fresh one)")
	flagSet.StringVarP(&filePath, "file", "f", "", "path to a FixRequest JSON document (default: stdin)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(stdout, "usage: renderplan [--run-id ID] [--file PATH]")
			fmt.Fprint(stdout, flagSet.FlagUsages())
			return nil
		}
		return usageError{err}
	}
	if flagSet.NArg() > 0 {
		return usageError{fmt.Errorf("unexpected arguments: %v", flagSet.Args())}
	}

	in := stdin
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		in = f
	}
	body, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	req, err := specvalidator.ValidateFixRequest(body)
	if err != nil {
		return err
	}
	if runID == "" {
		runID = ids.NewRunID()
	}
	_, err = io.WriteString(stdout, plan.BuildPlan(req, runID))
	return err
}
