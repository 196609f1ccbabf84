package runs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/animus-labs/headless-bridge/internal/config"
	"github.com/animus-labs/headless-bridge/internal/domain"
	"github.com/animus-labs/headless-bridge/internal/execution/plan"
	"github.com/animus-labs/headless-bridge/internal/execution/state"
	"github.com/animus-labs/headless-bridge/internal/platform/auditlog"
	"github.com/animus-labs/headless-bridge/internal/platform/httpserver"
	"github.com/animus-labs/headless-bridge/internal/platform/ids"
	"github.com/animus-labs/headless-bridge/internal/runtimeexec"
)

const sideEffectTimeout = 30 * time.Second

type Auditor interface {
	Append(ctx context.Context, event auditlog.Event) error
}

type Archiver interface {
	Archive(ctx context.Context, result domain.RunResult) error
}

type Service struct {
	logger   *slog.Logger
	executor runtimeexec.Executor
	settings config.Settings
	auditor  Auditor
	archiver Archiver
}

type Option func(*Service)

func WithAuditor(a Auditor) Option {
	return func(s *Service) { s.auditor = a }
}

func WithArchiver(a Archiver) Option {
	return func(s *Service) { s.archiver = a }
}

func New(logger *slog.Logger, executor runtimeexec.Executor, settings config.Settings, opts ...Option) *Service {
	if logger == nil || executor == nil {
		return nil
	}
	s := &Service{
		logger:   logger,
		executor: executor,
		settings: settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one fix request and always returns a result.
// Cancellation of ctx does not stop the run; only the configured timeout does.
func (s *Service) Run(ctx context.Context, req domain.FixRequest) domain.RunResult {
	ctx = context.WithoutCancel(ctx)
	requestID, _ := httpserver.RequestIDFromContext(ctx)

	runID := ids.NewRunID()
	logger := s.logger.With("run_id", runID, "contract_id", req.ContractID)
	if requestID != "" {
		logger = logger.With("request_id", requestID)
	}
	logger.Info("task received", "repo_url", req.RepoURL, "ak_url", req.AKURL)
	s.audit(ctx, logger, auditlog.Event{
		Action:       auditlog.ActionRunStarted,
		ResourceType: auditlog.ResourceRun,
		ResourceID:   runID,
		RequestID:    requestID,
		Payload: map[string]any{
			"contract_id": req.ContractID,
			"repo_url":    req.RepoURL,
			"ak_url":      req.AKURL,
			"ak_hash":     req.AKHash,
		},
	})

	outcome := s.execute(ctx, logger, req, runID)
	result := state.Classify(runID, outcome)

	payload := map[string]any{"status": string(result.Status)}
	switch o := outcome.(type) {
	case runtimeexec.ExecutionResult:
		logger.Info("agent finished",
			"status", result.Status,
			"exit_code", o.ExitCode,
			"timed_out", o.TimedOut,
			"duration_ms", o.Duration.Milliseconds(),
		)
		payload["exit_code"] = o.ExitCode
		payload["timed_out"] = o.TimedOut
		payload["duration_ms"] = o.Duration.Milliseconds()
	case runtimeexec.LaunchFailure:
		logger.Error("agent launch failed", "error", o.Cause)
		payload["message"] = o.Cause
	}

	s.audit(ctx, logger, auditlog.Event{
		Action:       auditlog.ActionRunFinished,
		ResourceType: auditlog.ResourceRun,
		ResourceID:   runID,
		RequestID:    requestID,
		Payload:      payload,
	})
	s.archive(ctx, logger, result)
	return result
}

func (s *Service) execute(ctx context.Context, logger *slog.Logger, req domain.FixRequest, runID string) runtimeexec.Outcome {
	workspace, err := os.MkdirTemp(s.settings.WorkRoot, "run-"+runID+"-")
	if err != nil {
		return runtimeexec.LaunchFailure{Cause: fmt.Sprintf("create workspace: %v", err)}
	}
	defer func() {
		if err := os.RemoveAll(workspace); err != nil {
			logger.Warn("workspace cleanup failed", "workspace", workspace, "error", err)
		}
	}()

	cmd := runtimeexec.CodexCommand(s.settings.CodexBin)
	cmd.Dir = workspace

	logger.Info("calling agent",
		"executor", s.executor.Kind(),
		"program", cmd.Program,
		"timeout_ms", s.settings.CodexTimeout.Milliseconds(),
	)
	return s.executor.Execute(ctx, cmd, plan.BuildPlan(req, runID), s.settings.CodexTimeout)
}

func (s *Service) audit(ctx context.Context, logger *slog.Logger, event auditlog.Event) {
	if s.auditor == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	event.OccurredAt = time.Now().UTC()
	if err := s.auditor.Append(ctx, event); err != nil {
		logger.Warn("audit append failed", "action", event.Action, "error", err)
	}
}

func (s *Service) archive(ctx context.Context, logger *slog.Logger, result domain.RunResult) {
	if s.archiver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	if err := s.archiver.Archive(ctx, result); err != nil {
		logger.Warn("run archive failed", "error", err)
	}
}
