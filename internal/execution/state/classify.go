package state

import (
	"github.com/animus-labs/headless-bridge/internal/domain"
	"github.com/animus-labs/headless-bridge/internal/runtimeexec"
)

// Classify maps an execution outcome to the response of a run.
//
// A started process succeeds only on exit code 0; stream content is never
// inspected. A timed out process carries runtimeexec.ExitCodeKilled and is
// therefore an error. A launch failure carries a message and no streams.
func Classify(runID string, outcome runtimeexec.Outcome) domain.RunResult {
	switch o := outcome.(type) {
	case runtimeexec.ExecutionResult:
		status := domain.RunStatusError
		if o.ExitCode == 0 {
			status = domain.RunStatusSuccess
		}
		logs, output := o.Stderr, o.Stdout
		return domain.RunResult{
			RunID:  runID,
			Status: status,
			Logs:   &logs,
			Output: &output,
		}
	case runtimeexec.LaunchFailure:
		message := o.Cause
		return domain.RunResult{
			RunID:   runID,
			Status:  domain.RunStatusError,
			Message: &message,
		}
	default:
		message := "unknown execution outcome"
		return domain.RunResult{
			RunID:   runID,
			Status:  domain.RunStatusError,
			Message: &message,
		}
	}
}
