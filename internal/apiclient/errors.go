package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the data API, or a transport failure
// reported as 503.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("data api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("data api: %d", e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// StatusCode extracts the HTTP status an error should abort with. Errors that
// did not come from the data API map to 500.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is a 404 from the data API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
