package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/animus-labs/headless-bridge/internal/domain"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json"
)

// RunArchiver copies finished run results into a bucket under runs/<run_id>/.
type RunArchiver struct {
	store  Store
	bucket string
}

func NewRunArchiver(store Store, bucket string) (*RunArchiver, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("bucket is required")
	}
	return &RunArchiver{store: store, bucket: bucket}, nil
}

func RunPrefix(runID string) string {
	return path.Join("runs", runID)
}

// Archive writes output.log and logs.log when present, then result.json.
func (a *RunArchiver) Archive(ctx context.Context, result domain.RunResult) error {
	if a == nil || a.store == nil {
		return errors.New("run archiver not initialized")
	}
	runID := strings.TrimSpace(result.RunID)
	if runID == "" {
		return errors.New("run id is required")
	}
	prefix := RunPrefix(runID)

	if result.Output != nil {
		if err := a.put(ctx, path.Join(prefix, "output.log"), []byte(*result.Output), contentTypeText); err != nil {
			return err
		}
	}
	if result.Logs != nil {
		if err := a.put(ctx, path.Join(prefix, "logs.log"), []byte(*result.Logs), contentTypeText); err != nil {
			return err
		}
	}

	blob, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return a.put(ctx, path.Join(prefix, "result.json"), blob, contentTypeJSON)
}

func (a *RunArchiver) put(ctx context.Context, key string, body []byte, contentType string) error {
	if err := a.store.Put(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), contentType); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
