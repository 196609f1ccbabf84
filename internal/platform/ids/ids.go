// Package ids issues the identifiers used to correlate a run across the
// plan text, the service logs and the response body.
package ids

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewRunID returns a random (version 4) UUID. Instances need no
// coordination to keep run ids unique.
func NewRunID() string {
	return uuid.NewString()
}

// NewRequestID returns a 32 character hex id for the X-Request-Id header.
func NewRequestID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
