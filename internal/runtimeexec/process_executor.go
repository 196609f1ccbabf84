package runtimeexec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

const defaultWaitDelay = time.Second

// ProcessExecutor runs the agent as a local child process.
type ProcessExecutor struct {
	waitDelay time.Duration
}

func NewProcessExecutor() *ProcessExecutor {
	return &ProcessExecutor{waitDelay: defaultWaitDelay}
}

func (e *ProcessExecutor) Kind() string {
	return "process"
}

// Execute starts the agent with plan as its last argument and waits for it to
// exit or for timeout to elapse. On timeout the whole process group is killed
// and whatever was captured so far is returned. A timeout <= 0 disables the
// deadline.
func (e *ProcessExecutor) Execute(ctx context.Context, spec CommandSpec, plan string, timeout time.Duration) Outcome {
	program := strings.TrimSpace(spec.Program)
	if program == "" {
		return LaunchFailure{Cause: "agent program is required"}
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	args := make([]string, 0, len(spec.Args)+1)
	args = append(args, spec.Args...)
	args = append(args, plan)

	cmd := exec.CommandContext(runCtx, program, args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	configureProcessGroup(cmd)
	cmd.WaitDelay = e.waitDelay

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return LaunchFailure{Cause: err.Error()}
	}
	waitErr := cmd.Wait()

	if cmd.ProcessState == nil {
		return LaunchFailure{Cause: waitErr.Error()}
	}
	result := ExecutionResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if waitErr != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = ExitCodeKilled
	}
	return result
}
