package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorKind classifies application errors for the HTTP layer.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindAuthorization  ErrorKind = "authorization"
	KindNotFound       ErrorKind = "not_found"
	KindConflict       ErrorKind = "conflict"
	KindUpstream       ErrorKind = "upstream"
)

// FieldError is a single field-level validation problem.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is an error that knows which HTTP status it maps to.
type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Validation returns a 400 error.
func Validation(message string, fields ...FieldError) *AppError {
	return &AppError{Kind: KindValidation, Status: http.StatusBadRequest, Message: message, Fields: fields}
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindAuthentication, Status: http.StatusUnauthorized, Message: message}
}

// Forbidden returns a 403 error.
func Forbidden(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Status: http.StatusForbidden, Message: message}
}

// NotFound returns a 404 error.
func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

// Conflict returns a 409 error.
func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Status: http.StatusConflict, Message: message}
}

// Upstream wraps an unexpected datastore or storage failure. The cause is
// logged but never rendered.
func Upstream(cause error) *AppError {
	return &AppError{Kind: KindUpstream, Status: http.StatusInternalServerError, Message: "internal server error", Cause: cause}
}

// AsAppError unwraps err into an *AppError; anything else becomes Upstream.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Upstream(err)
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// FromBinding converts a gin binding error into a validation error with
// per-field details.
func FromBinding(err error) *AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Validation("malformed request body", FieldError{Field: "body", Message: err.Error()})
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   lowerFirst(fe.Field()),
			Message: describeTag(fe),
		})
	}
	return Validation("validation failed", fields...)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of " + fe.Param()
	case "slug":
		return "may only contain lowercase latin letters, digits and hyphens"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
