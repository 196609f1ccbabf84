package runtimeexec

import (
	"context"
	"time"
)

// Executor runs a rendered plan through the agent runtime.
type Executor interface {
	Kind() string
	Execute(ctx context.Context, cmd CommandSpec, plan string, timeout time.Duration) Outcome
}

// CommandSpec is the agent invocation; the plan is appended as the final argument.
type CommandSpec struct {
	Program string
	Args    []string
	Dir     string
	Env     []string
}

// CodexFlags skip the runtime's repository precondition and its interactive
// approval and sandbox gating. The plan's integrity gate is the safety boundary.
var CodexFlags = []string{
	"exec",
	"--skip-git-repo-check",
	"--dangerously-bypass-approvals-and-sandbox",
}

// CodexCommand returns the agent invocation for the given binary.
func CodexCommand(bin string) CommandSpec {
	return CommandSpec{
		Program: bin,
		Args:    append([]string(nil), CodexFlags...),
	}
}

// ExitCodeKilled is reported when the process was terminated at the deadline.
const ExitCodeKilled = -1

// Outcome is either an ExecutionResult or a LaunchFailure.
type Outcome interface {
	outcome()
}

// ExecutionResult is the outcome of a process that was started.
type ExecutionResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	Duration time.Duration
}

// LaunchFailure is the outcome of a process that could not be started.
type LaunchFailure struct {
	Cause string
}

func (ExecutionResult) outcome() {}
func (LaunchFailure) outcome()   {}
