// Package apperr defines the application error type shared by all layers.
//
// An *Error carries everything the HTTP layer needs to shape a response:
// a user-facing message, an HTTP status code, a derived status category
// ("fail" for 4xx, "error" for 5xx), an operational flag, and optional
// field-level validation issues.
//
// Conventions:
//   - Services construct errors as close to the cause as possible and return
//     them unchanged up the stack; wrapping an *Error again is a bug.
//   - IsOperational distinguishes anticipated failures (validation, not
//     found, conflict, auth) from defects and unmodeled driver errors. The
//     response formatter hides all detail of non-operational errors in
//     production.
package apperr

import "net/http"

// Status category values derived from the HTTP status code.
const (
	StatusFail  = "fail"  // 4xx: client-side, request can be corrected
	StatusError = "error" // 5xx: server-side
)

// FieldError describes a single validation issue on a request payload.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is the application error type. Construct it with New, NewValidation,
// or Internal; the zero value is not meaningful.
//
// Status is always derived from StatusCode and must never be set
// independently. Error values are immutable after construction.
type Error struct {
	Message       string       `json:"message"`
	StatusCode    int          `json:"statusCode"`
	Status        string       `json:"status"`
	IsOperational bool         `json:"isOperational"`
	FieldErrors   []FieldError `json:"fieldErrors,omitempty"`

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying cause (if any) for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// statusFor derives the status category from an HTTP status code:
// "fail" iff 400 <= code < 500, "error" otherwise.
func statusFor(code int) string {
	if code >= 400 && code < 500 {
		return StatusFail
	}
	return StatusError
}

// New constructs an operational *Error with the given message and HTTP
// status code. The status category is derived from the code.
func New(message string, statusCode int) *Error {
	return &Error{
		Message:       message,
		StatusCode:    statusCode,
		Status:        statusFor(statusCode),
		IsOperational: true,
	}
}

// NewValidation constructs an operational 400 *Error carrying field-level
// validation issues.
func NewValidation(message string, fields []FieldError) *Error {
	e := New(message, http.StatusBadRequest)
	e.FieldErrors = fields
	return e
}

// Internal constructs a non-operational 500 *Error wrapping cause. The
// caller-provided message is what clients may see; cause is only ever
// logged server-side.
func Internal(message string, cause error) *Error {
	return &Error{
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		Status:        StatusError,
		IsOperational: false,
		cause:         cause,
	}
}

// WithCause returns a copy of e that records cause for server-side logging.
// The visible fields are unchanged.
func (e *Error) WithCause(cause error) *Error {
	cp := *e
	cp.cause = cause
	return &cp
}

// From normalizes any error into an *Error. An *Error passes through
// unchanged (never double-wrapped); anything else becomes a non-operational
// 500 whose original message is retained for logs but replaced for clients
// by the formatter in production.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*Error); ok {
		return ae
	}
	msg := err.Error()
	if msg == "" {
		msg = "unknown error"
	}
	return Internal(msg, err)
}
