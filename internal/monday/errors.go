package monday

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRateLimitExceeded is returned when a call is still rate limited
// after every configured retry.
var ErrRateLimitExceeded = errors.New("monday: rate limit exceeded")

// ErrorDetail is one application-level error entry in a GraphQL response.
type ErrorDetail struct {
	Message string `json:"message"`
}

// APIError is a non-retryable failure reported by the monday API, either
// as a non-success HTTP status or as error entries in the response body.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
	Body       string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		msgs := make([]string, len(e.Errors))
		for i, d := range e.Errors {
			msgs[i] = d.Message
		}
		return fmt.Sprintf("monday: api error: %s", strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("monday: api error: status %d: %s", e.StatusCode, e.Body)
}
