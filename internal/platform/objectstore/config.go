package objectstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/animus-labs/headless-bridge/internal/platform/env"
)

type Config struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Region     string
	UseSSL     bool
	BucketRuns string
}

// ConfigFromEnv reads <prefix>MINIO_* variables.
func ConfigFromEnv(prefix env.Prefix) (Config, error) {
	useSSL, err := prefix.Bool("MINIO_USE_SSL", false)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Endpoint:   prefix.String("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  prefix.String("MINIO_ACCESS_KEY", "bridge"),
		SecretKey:  prefix.String("MINIO_SECRET_KEY", "bridgeminio"),
		Region:     prefix.String("MINIO_REGION", "us-east-1"),
		UseSSL:     useSSL,
		BucketRuns: prefix.String("MINIO_BUCKET_RUNS", "codex-runs"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("endpoint is required")
	}
	if strings.TrimSpace(c.AccessKey) == "" {
		return errors.New("access key is required")
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("secret key is required")
	}
	if strings.TrimSpace(c.Region) == "" {
		return errors.New("region is required")
	}
	if strings.TrimSpace(c.BucketRuns) == "" {
		return errors.New("runs bucket is required")
	}
	if strings.Contains(c.Endpoint, "://") {
		return fmt.Errorf("endpoint must not include scheme: %q", c.Endpoint)
	}
	return nil
}
