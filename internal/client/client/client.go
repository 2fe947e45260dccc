package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/supportportal/internal/client/models"
)

// Client is the backend API contract.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (*LoginResult, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	AddUser(ctx context.Context, form *FormData) (*models.User, error)
	UpdateUser(ctx context.Context, form *FormData) (*models.User, error)
	ResetPassword(ctx context.Context, email string) (*models.CustomHTTPResponse, error)
	UpdateProfileImage(ctx context.Context, form *FormData) <-chan UploadEvent
	DeleteUser(ctx context.Context, username string) (*models.CustomHTTPResponse, error)
}

// TokenSource supplies the session token for outbound requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// LoginResult is the logged in user together with the response headers,
// which carry the session token.
type LoginResult struct {
	User   models.User
	Header http.Header
}
