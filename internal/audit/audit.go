// Package audit records terminal gate decisions for inspection.
package audit

import (
	"context"
	"time"
)

// Entry is one recorded gate decision
type Entry struct {
	Time    time.Time `json:"time"`
	Subject string    `json:"subject,omitempty"`
	Method  string    `json:"method"`
	Path    string    `json:"path"`
	Allowed bool      `json:"allowed"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Recorder records gate decisions. Implementations must be safe for
// concurrent use and must never block the caller.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}
