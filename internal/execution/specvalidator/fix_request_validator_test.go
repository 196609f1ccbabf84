package specvalidator

import (
	"errors"
	"strings"
	"testing"
)

const validBody = `{
	"contract_id": "c-1",
	"repo_url": "https://git.example.test/acme/widgets.git",
	"failure_details": "TestWidget fails",
	"ak_hash": "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
	"ak_url": "https://artifacts.example.test/ak"
}`

func TestFixRequestSchemaCompiles(t *testing.T) {
	s, err := fixRequestSchema()
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}
	if len(s.Required) != 5 {
		t.Fatalf("required=%v, want 5 fields", s.Required)
	}
}

func TestValidateFixRequest_OK(t *testing.T) {
	req, err := ValidateFixRequest([]byte(validBody))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ContractID != "c-1" || req.AKURL != "https://artifacts.example.test/ak" {
		t.Fatalf("unexpected decode: %+v", req)
	}
}

func TestValidateFixRequest_Permissive(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "empty and malformed hash",
			body: `{"contract_id":"c","repo_url":"r","failure_details":"f","ak_hash":"","ak_url":"u"}`,
		},
		{
			name: "non hex hash",
			body: `{"contract_id":"c","repo_url":"r","failure_details":"f","ak_hash":"zz-not-hex","ak_url":"u"}`,
		},
		{
			name: "long details",
			body: `{"contract_id":"c","repo_url":"r","failure_details":"` + strings.Repeat("x", 64<<10) + `","ak_hash":"h","ak_url":"u"}`,
		},
		{
			name: "unknown field ignored",
			body: `{"contract_id":"c","repo_url":"r","failure_details":"f","ak_hash":"h","ak_url":"u","priority":3}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateFixRequest([]byte(tt.body)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateFixRequest_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantIssue string
	}{
		{name: "invalid json", body: `{"contract_id":`, wantIssue: "invalid JSON"},
		{name: "not an object", body: `["c"]`, wantIssue: ""},
		{name: "missing ak_url", body: `{"contract_id":"c","repo_url":"r","failure_details":"f","ak_hash":"h"}`, wantIssue: "ak_url"},
		{name: "empty contract id", body: `{"contract_id":"","repo_url":"r","failure_details":"f","ak_hash":"h","ak_url":"u"}`, wantIssue: "contract_id"},
		{name: "wrong type", body: `{"contract_id":"c","repo_url":7,"failure_details":"f","ak_hash":"h","ak_url":"u"}`, wantIssue: "repo_url"},
		{name: "empty object", body: `{}`, wantIssue: "contract_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateFixRequest([]byte(tt.body))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err=%T %v, want *ValidationError", err, err)
			}
			if len(verr.Issues) == 0 {
				t.Fatalf("expected at least one issue")
			}
			if tt.wantIssue != "" && !strings.Contains(verr.Error(), tt.wantIssue) {
				t.Fatalf("issues=%v, want mention of %q", verr.Issues, tt.wantIssue)
			}
		})
	}
}

func TestValidateFixRequest_ReportsEveryMissingField(t *testing.T) {
	_, err := ValidateFixRequest([]byte(`{"contract_id":"c"}`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want *ValidationError", err)
	}
	for _, field := range []string{"repo_url", "failure_details", "ak_hash", "ak_url"} {
		if !strings.Contains(verr.Error(), field) {
			t.Fatalf("issues=%v, want %s reported", verr.Issues, field)
		}
	}
}
