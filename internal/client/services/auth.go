// Package services contains application services for the support-portal
// client. This file defines the authentication service: login, registration,
// logout and access to the locally persisted session.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/supportportal/internal/client/client"
	"github.com/dmitrijs2005/supportportal/internal/client/models"
	"github.com/dmitrijs2005/supportportal/internal/common"
	"github.com/dmitrijs2005/supportportal/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the backend and persist token and user.
//   - Register: create an account; the backend mails the password.
//   - Logout: drop the local session. The backend is not contacted.
//   - IsLoggedIn / CurrentUser: answered from the local store only.
//
// Input is validated before any network call.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Logout(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool
	CurrentUser(ctx context.Context) (*models.User, error)
}

// authService is the concrete AuthService backed by the remote Client and
// the local Session.
type authService struct {
	client      client.Client
	session     Session
	tokenHeader string
	log         logging.Logger
}

// NewAuthService constructs an AuthService. tokenHeader names the login
// response header holding the session token; "" selects common.JWTTokenHeader.
func NewAuthService(c client.Client, s Session, tokenHeader string, log logging.Logger) AuthService {
	if tokenHeader == "" {
		tokenHeader = common.JWTTokenHeader
	}
	if log == nil {
		log = logging.Discard()
	}
	return &authService{client: c, session: s, tokenHeader: tokenHeader, log: log}
}

// Login authenticates creds and, on success, saves the token from the
// response header and the returned user. Nothing is persisted once ctx is
// done, even if the backend accepted the credentials.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := models.Validate(creds); err != nil {
		return nil, err
	}

	res, err := a.client.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.log.Debug(ctx, "login accepted",
		"username", res.User.Username,
		"authorities", res.Header.Get(common.AuthoritiesHeader))

	token := res.Header.Get(a.tokenHeader)
	if token == "" {
		return nil, fmt.Errorf("login error: %w: header %s", common.ErrMissingToken, a.tokenHeader)
	}

	if err := a.session.SaveToken(ctx, token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	if err := a.session.SetCurrentUser(ctx, res.User); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	u := res.User
	return &u, nil
}

// Register creates a new account. It does not log the user in.
func (a *authService) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	if err := models.Validate(reg); err != nil {
		return nil, err
	}
	u, err := a.client.Register(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return u, nil
}

// Logout wipes token, current user and the cached user list.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) IsLoggedIn(ctx context.Context) bool {
	return a.session.IsLoggedIn(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.session.CurrentUser(ctx)
}
