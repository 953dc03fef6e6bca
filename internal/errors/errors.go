// Package errors provides the error taxonomy for the GenzAI backend client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrOffline    = errors.New("backend is offline")
	ErrEmptyDraft = errors.New("draft is empty")
	ErrBusy       = errors.New("request already in flight")
)

// NetworkError represents a transport-level failure: connection refused,
// DNS, timeout, or a broken body read.
type NetworkError struct {
	Op       string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error during %s (%s): %v", e.Op, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a NetworkError for the given operation and endpoint.
func NewNetworkError(op, endpoint string, err error) *NetworkError {
	return &NetworkError{Op: op, Endpoint: endpoint, Err: err}
}

// APIError represents a non-2xx HTTP response from the backend.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates an APIError without a captured body.
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message}
}

// NewAPIErrorWithBody creates an APIError carrying a truncated response body
// for diagnostics.
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message, Body: body}
}

// GenerationError represents an application-level failure flag inside a 200
// response: the image endpoint replying {"success": false, "error": ...}.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	if e.Reason == "" {
		return "generation failed"
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

// NewGenerationError creates a GenerationError with the server's reason.
func NewGenerationError(reason string) *GenerationError {
	return &GenerationError{Reason: reason}
}

// ParseError represents an unparseable or structurally unexpected response.
type ParseError struct {
	Message  string
	Endpoint string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a ParseError.
func NewParseError(message, endpoint string) *ParseError {
	return &ParseError{Message: message, Endpoint: endpoint}
}

// OfflineError represents an action attempted while the online gate is down.
type OfflineError struct {
	Action string
}

func (e *OfflineError) Error() string {
	if e.Action == "" {
		return "backend is offline"
	}
	return fmt.Sprintf("cannot %s: backend is offline", e.Action)
}

// Is allows errors.Is comparison with the ErrOffline sentinel.
func (e *OfflineError) Is(target error) bool {
	return target == ErrOffline
}

// NewOfflineError creates an OfflineError for the named action.
func NewOfflineError(action string) *OfflineError {
	return &OfflineError{Action: action}
}

// IsNetworkError reports whether err is a transport failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAPIError reports whether err is a non-2xx backend response.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// IsGenerationError reports whether err is an in-band generation failure.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

// IsOffline reports whether err means the online gate blocked the action.
func IsOffline(err error) bool {
	return errors.Is(err, ErrOffline)
}

// GetHTTPStatus returns the HTTP status of an APIError, or 0.
func GetHTTPStatus(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}
