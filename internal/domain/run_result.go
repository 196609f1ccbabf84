package domain

// RunStatus is the terminal status reported for a run.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusError   RunStatus = "error"
)

// RunResult is the response body of a run.
//
// Logs and Output are set whenever the agent process was launched, even when
// empty. Message is set only when the process could not be launched.
type RunResult struct {
	RunID   string    `json:"run_id"`
	Status  RunStatus `json:"status"`
	Logs    *string   `json:"logs,omitempty"`
	Output  *string   `json:"output,omitempty"`
	Message *string   `json:"message,omitempty"`
}

func (r RunResult) Succeeded() bool {
	return r.Status == RunStatusSuccess
}
