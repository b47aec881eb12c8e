package client

import (
	"fmt"
	"strings"
)

// NetworkError indicates the request never completed: the backend was not
// reached or did not return a response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// FieldError is one field-level message of a rejected create request.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries the backend's field-level rejection of a create
// request, parsed from its "detail" payload.
type ValidationError struct {
	StatusCode int
	Message    string
	Fields     []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation failed (%d): %s", e.StatusCode, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("validation failed (%d): %s", e.StatusCode, strings.Join(parts, "; "))
}

// Field reports whether the error names the given field.
func (e *ValidationError) Field(name string) bool {
	for _, f := range e.Fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

// AggregationError indicates an analytics endpoint could not compute a
// summary. The response is all-or-nothing; no partial aggregate exists.
type AggregationError struct {
	Resource   string
	StatusCode int
	Message    string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("%s analytics failed (%d): %s", e.Resource, e.StatusCode, e.Message)
}

// APIError covers non-success responses that are neither validation
// rejections nor analytics failures.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}
