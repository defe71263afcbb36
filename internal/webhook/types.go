package webhook

import (
	"github.com/rahulsaklanii-code/formula-status-trigger/internal/processor"
)

// EventSubmitter hands eligible events to background processing.
type EventSubmitter interface {
	Submit(evt processor.Event) error
}

// Config holds webhook server configuration.
type Config struct {
	Listen string

	// SigningSecret verifies inbound signatures. Empty skips
	// verification (local development only).
	SigningSecret string

	// SignatureHeader is the header carrying the HMAC signature.
	// monday sends it in Authorization.
	SignatureHeader string

	// MaxBodySize is the maximum allowed request body size in bytes.
	MaxBodySize int64
}

// MessageResponse acknowledges a webhook delivery.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON error shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Default values
const (
	DefaultMaxBodySize     = 1048576 // 1 MB
	DefaultSignatureHeader = "Authorization"
)
