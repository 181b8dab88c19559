// Package apierror defines the JSON error envelopes returned by the HTTP API.
// Handlers never serialize raw errors from the store or the runtime.
package apierror

// APIError is the body of every 4xx/5xx response without field detail.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError lists per-field messages keyed by JSON field name.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Fields: fields}
}
