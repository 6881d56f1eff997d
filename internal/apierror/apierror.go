// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Confirmacion is the envelope for the two-phase create flow: the request was
// not rejected, but the caller must repeat it with confirmado=true.
type Confirmacion struct {
	ConfirmacionRequerida bool   `json:"confirmacion_requerida"`
	Detail                string `json:"detail"`
}

func NewConfirmacion(msg string) *Confirmacion {
	return &Confirmacion{ConfirmacionRequerida: true, Detail: msg}
}
