// Package common contains shared constants and sentinel errors used across
// supportportal client components.
package common

const (
	// JWTTokenHeader is the response header the backend uses to return the
	// session token on a successful login.
	JWTTokenHeader = "Jwt-Token"

	// AuthoritiesHeader carries the granted authorities of the logged in user.
	// It is only logged, never interpreted.
	AuthoritiesHeader = "Authorities"

	// TokenPrefix is the scheme used in the Authorization header.
	TokenPrefix = "Bearer"

	// RequestIDHeader tags every outbound request.
	RequestIDHeader = "X-Request-Id"

	// DefaultErrorMessage is shown when a failure carries no message of its own.
	DefaultErrorMessage = "AN ERROR OCCURED. PLEASE TRY AGAIN"
)
