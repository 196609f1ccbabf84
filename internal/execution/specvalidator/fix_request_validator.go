package specvalidator

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/animus-labs/headless-bridge/internal/domain"
)

//go:embed fix_request.schema.yaml
var fixRequestSchemaYAML []byte

var (
	schemaOnce sync.Once
	schema     *openapi3.Schema
	schemaErr  error
)

func fixRequestSchema() (*openapi3.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = compileSchema(fixRequestSchemaYAML)
	})
	return schema, schemaErr
}

func compileSchema(doc []byte) (*openapi3.Schema, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("parse schema yaml: %w", err)
	}
	blob, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode schema json: %w", err)
	}
	var s openapi3.Schema
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	if err := s.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &s, nil
}

// ValidateFixRequest checks a raw request body and decodes it.
//
// All five fields must be present strings and contract_id must be non-empty.
// Unknown fields are ignored. A *ValidationError is returned for any
// client-side problem.
func ValidateFixRequest(body []byte) (domain.FixRequest, error) {
	s, err := fixRequestSchema()
	if err != nil {
		return domain.FixRequest{}, err
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		issues := &ValidationError{}
		issues.Add(fmt.Sprintf("body: invalid JSON: %v", err))
		return domain.FixRequest{}, issues
	}

	if err := s.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		issues := &ValidationError{}
		for _, e := range flatten(err) {
			issues.Add(describe(e))
		}
		if issues.OrNil() == nil {
			issues.Add(err.Error())
		}
		return domain.FixRequest{}, issues
	}

	var req domain.FixRequest
	if err := json.Unmarshal(body, &req); err != nil {
		issues := &ValidationError{}
		issues.Add(fmt.Sprintf("body: %v", err))
		return domain.FixRequest{}, issues
	}
	return req, nil
}

func flatten(err error) []error {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return []error{err}
	}
	out := make([]error, 0, len(multi))
	for _, e := range multi {
		out = append(out, flatten(e)...)
	}
	return out
}

func describe(err error) string {
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return err.Error()
	}
	field := strings.Join(schemaErr.JSONPointer(), ".")
	if field == "" {
		return schemaErr.Reason
	}
	return field + ": " + schemaErr.Reason
}
