package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/animus-labs/headless-bridge/internal/domain"
	"github.com/animus-labs/headless-bridge/internal/execution/specvalidator"
	"github.com/animus-labs/headless-bridge/internal/platform/httpserver"
	"github.com/go-chi/chi/v5"
)

const defaultMaxBodyBytes = int64(16) << 20

type runner interface {
	Run(ctx context.Context, req domain.FixRequest) domain.RunResult
}

type bridgeAPI struct {
	logger       *slog.Logger
	runs         runner
	authFile     string
	maxBodyBytes int64
}

func newBridgeAPI(logger *slog.Logger, runs runner, authFile string, maxBodyBytes int64) *bridgeAPI {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &bridgeAPI{
		logger:       logger,
		runs:         runs,
		authFile:     authFile,
		maxBodyBytes: maxBodyBytes,
	}
}

func (api *bridgeAPI) register(r chi.Router) {
	r.Post("/run_codex_session", api.handleRunCodexSession)
	r.Get("/health", api.handleHealth)
}

func (api *bridgeAPI) handleRunCodexSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, api.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpserver.WriteError(w, r, http.StatusRequestEntityTooLarge, "request_too_large", nil)
			return
		}
		httpserver.WriteError(w, r, http.StatusBadRequest, "invalid_body", nil)
		return
	}

	req, err := specvalidator.ValidateFixRequest(body)
	if err != nil {
		var verr *specvalidator.ValidationError
		if errors.As(err, &verr) {
			httpserver.WriteError(w, r, http.StatusUnprocessableEntity, "invalid_request", map[string]any{
				"issues": verr.Issues,
			})
			return
		}
		api.logger.Error("request validator unavailable", "error", err)
		httpserver.WriteError(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, api.runs.Run(r.Context(), req))
}

type healthResponse struct {
	Status      string `json:"status"`
	AuthFile    string `json:"auth_file,omitempty"`
	AuthPresent *bool  `json:"auth_present,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

func (api *bridgeAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	deep := false
	if raw := strings.TrimSpace(r.URL.Query().Get("deep")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httpserver.WriteError(w, r, http.StatusUnprocessableEntity, "invalid_request", map[string]any{
				"issues": []string{"deep: must be a boolean"},
			})
			return
		}
		deep = v
	}

	resp := healthResponse{Status: "ok"}
	if !deep {
		httpserver.WriteJSON(w, http.StatusOK, resp)
		return
	}

	present := fileExists(api.authFile)
	resp.AuthFile = api.authFile
	resp.AuthPresent = &present
	if !present {
		resp.Reason = "auth file missing"
		httpserver.WriteJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, resp)
}

func fileExists(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
