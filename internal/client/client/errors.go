package client

import (
	"fmt"

	"github.com/dmitrijs2005/supportportal/internal/client/models"
)

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Status     string
	Body       models.CustomHTTPResponse
	Raw        []byte
}

func (e *APIError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("api error: %s: %s", e.Status, e.Body.Message)
	}
	return fmt.Sprintf("api error: %s", e.Status)
}

// Message is the backend-provided human readable message, possibly empty.
func (e *APIError) Message() string {
	return e.Body.Message
}
