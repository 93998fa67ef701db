package handler

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrBinderNotApplicable is returned by binders that do not handle the request
	ErrBinderNotApplicable = errors.New("binder not applicable")
	// ErrNotDataStar indicates a stream response was requested outside of DataStar
	ErrNotDataStar = errors.New("request is not a datastar request")
)

// HTTPError carries a status code and a user-facing message.
type HTTPError struct {
	Code    int
	Message string
}

// NewHTTPError creates an HTTPError. An empty message falls back to the status text.
func NewHTTPError(code int, message string) HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return HTTPError{Code: code, Message: message}
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// Common HTTP errors.
var (
	ErrBadRequest = NewHTTPError(http.StatusBadRequest, "")
	ErrNotFound   = NewHTTPError(http.StatusNotFound, "")
	ErrConflict   = NewHTTPError(http.StatusConflict, "")
)

// ValidationError maps field names to validation messages.
type ValidationError map[string][]string

// Add appends a message for field.
func (v ValidationError) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Empty reports whether no field failed.
func (v ValidationError) Empty() bool {
	return len(v) == 0
}

// Err returns v as an error, or nil when it is empty.
func (v ValidationError) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

// Error lists failures sorted by field, e.g. "url: must be absolute; validationType: unknown".
func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		for _, msg := range v[field] {
			parts = append(parts, field+": "+msg)
		}
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return strings.Join(parts, "; ")
}
