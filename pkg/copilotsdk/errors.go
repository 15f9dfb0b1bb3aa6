package copilotsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned before any request is sent when the
	// session is logged out or has gone idle.
	ErrNotAuthenticated = errors.New("copilotsdk: not logged in")

	// ErrUnauthorized is returned when the server rejected the bearer token.
	// The session has already been logged out by the time it is seen.
	ErrUnauthorized = errors.New("copilotsdk: unauthorized")
)

// APIError is any other non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("copilot api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// parseErrorResponse turns a non-2xx body into an *APIError. Both the
// {message} and the {success:false,message} shapes carry the message field.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
}
