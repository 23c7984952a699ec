// Package models defines the request and response shapes of the HTTP
// surface.
package models

import "github.com/weightlens/weightlens/internal/metrics"

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Records   int    `json:"records"`
	LoadedAt  string `json:"loaded_at,omitempty"`
}

// ImportResponse represents dataset import response
type ImportResponse struct {
	Accepted  bool   `json:"accepted"`
	Records   int    `json:"records"`
	Skipped   int    `json:"skipped"`
	RequestID string `json:"request_id"`
}

// RecordsResponse represents enriched daily records for a range
type RecordsResponse struct {
	Start   string                `json:"start"`
	End     string                `json:"end"`
	Count   int                   `json:"count"`
	Records []metrics.DailyRecord `json:"records"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
