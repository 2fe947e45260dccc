package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can tell about a token without the signing key.
type TokenInfo struct {
	Subject     string
	Issuer      string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	Authorities []string
}

// Expired reports whether the token carried an expiry that is before now.
// It is informational only: IsLoggedIn never looks at it.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

type portalClaims struct {
	Authorities []string `json:"authorities,omitempty"`
	jwt.RegisteredClaims
}

// DescribeToken decodes the claims of token without verifying its signature.
func DescribeToken(token string) (TokenInfo, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))

	var claims portalClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("decode token: %w", err)
	}

	info := TokenInfo{
		Subject:     claims.Subject,
		Issuer:      claims.Issuer,
		Authorities: claims.Authorities,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
