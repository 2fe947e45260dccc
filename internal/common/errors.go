// Package common defines shared constants and sentinel errors used across
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Local store errors.
	ErrCorruptCache = errors.New("corrupt cache")

	// Workflow errors.
	ErrInvalidInput = errors.New("invalid input")
	ErrMissingToken = errors.New("missing session token")
	ErrNotLoggedIn  = errors.New("not logged in")
)
