// Package config assembles the process-wide Settings from HB_-prefixed
// environment variables. Settings are built once in main and passed by value.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/animus-labs/headless-bridge/internal/platform/env"
)

// EnvPrefix is the fixed prefix of every setting.
const EnvPrefix env.Prefix = "HB_"

const (
	DefaultServiceName     = "headless-bridge"
	DefaultAuthFile        = "/root/.codex/auth.json"
	DefaultCodexTimeout    = 600 * time.Second
	DefaultCodexBin        = "codex"
	DefaultHTTPAddr        = ":8000"
	DefaultShutdownTimeout = 10 * time.Second
)

type Settings struct {
	ServiceName string
	AuthFile    string
	// CodexTimeout bounds the wall-clock time of one agent run.
	CodexTimeout time.Duration
	CodexBin     string
	// WorkRoot is the parent of per-run workspaces; empty means the OS temp dir.
	WorkRoot string

	HTTPAddr        string
	ShutdownTimeout time.Duration

	AuditEnabled   bool
	ArchiveEnabled bool
}

func Load() (Settings, error) {
	timeout, err := EnvPrefix.Seconds("CODEX_TIMEOUT", DefaultCodexTimeout)
	if err != nil {
		return Settings{}, err
	}
	shutdownTimeout, err := EnvPrefix.Duration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout)
	if err != nil {
		return Settings{}, err
	}
	auditEnabled, err := EnvPrefix.Bool("AUDIT_ENABLED", false)
	if err != nil {
		return Settings{}, err
	}
	archiveEnabled, err := EnvPrefix.Bool("ARCHIVE_ENABLED", false)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		ServiceName:     strings.TrimSpace(EnvPrefix.String("SERVICE_NAME", DefaultServiceName)),
		AuthFile:        strings.TrimSpace(EnvPrefix.String("AUTH_FILE", DefaultAuthFile)),
		CodexTimeout:    timeout,
		CodexBin:        strings.TrimSpace(EnvPrefix.String("CODEX_BIN", DefaultCodexBin)),
		WorkRoot:        strings.TrimSpace(EnvPrefix.String("WORK_ROOT", "")),
		HTTPAddr:        strings.TrimSpace(EnvPrefix.String("HTTP_ADDR", DefaultHTTPAddr)),
		ShutdownTimeout: shutdownTimeout,
		AuditEnabled:    auditEnabled,
		ArchiveEnabled:  archiveEnabled,
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.ServiceName == "" {
		return errors.New("HB_SERVICE_NAME must not be empty")
	}
	if s.CodexTimeout <= 0 {
		return errors.New("HB_CODEX_TIMEOUT must be positive")
	}
	if s.CodexBin == "" {
		return errors.New("HB_CODEX_BIN must not be empty")
	}
	if s.HTTPAddr == "" {
		return errors.New("HB_HTTP_ADDR must not be empty")
	}
	if s.ShutdownTimeout <= 0 {
		return errors.New("HB_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
