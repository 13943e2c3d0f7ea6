package webproof

import (
	"fmt"
)

// ProofError is the base error type for all library errors
type ProofError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Cause   error  `json:"cause,omitempty"`
}

// Error implements the error interface
func (e *ProofError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *ProofError) Unwrap() error {
	return e.Cause
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	*ProofError
	Field string `json:"field"` // Which configuration field is invalid
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field string, message string) *ConfigurationError {
	return &ConfigurationError{
		ProofError: &ProofError{
			Type:    "configuration_error",
			Message: fmt.Sprintf("Configuration error in field '%s': %s", field, message),
		},
		Field: field,
	}
}

// RequestError represents a non-success response from the prove or verify
// endpoint. The remote service has no structured error taxonomy, so callers
// distinguish authorization failures by StatusCode (401/403).
type RequestError struct {
	*ProofError
	Endpoint   string `json:"endpoint"` // "prove" or "verify"
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"` // raw response body text
}

// NewRequestError creates a new remote-call error
func NewRequestError(endpoint string, statusCode int, body string) *RequestError {
	return &RequestError{
		ProofError: &ProofError{
			Type:    "request_error",
			Message: fmt.Sprintf("%s endpoint returned %d: %s", endpoint, statusCode, body),
		},
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Body:       body,
	}
}

// SinkError represents artifact output errors
type SinkError struct {
	*ProofError
}

// NewSinkError creates a new artifact sink error
func NewSinkError(message string, cause error) *SinkError {
	return &SinkError{
		ProofError: &ProofError{
			Type:    "sink_error",
			Message: message,
			Cause:   cause,
		},
	}
}

// ValidationError represents request-descriptor validation errors
type ValidationError struct {
	*ProofError
}

// NewValidationError creates a new descriptor validation error
func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{
		ProofError: &ProofError{
			Type:    "validation_error",
			Message: message,
			Cause:   cause,
		},
	}
}
