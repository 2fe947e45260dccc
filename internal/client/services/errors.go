package services

import (
	"errors"

	"github.com/dmitrijs2005/supportportal/internal/client/client"
	"github.com/dmitrijs2005/supportportal/internal/common"
)

// ErrorMessage is the text shown to the operator for a failed operation:
// the backend's own message when the failure is an API error carrying one,
// the validation message for rejected input, and the generic fallback
// otherwise.
func ErrorMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr) && apiErr.Message() != "":
		return apiErr.Message()
	case errors.Is(err, common.ErrInvalidInput):
		return err.Error()
	}
	return common.DefaultErrorMessage
}
