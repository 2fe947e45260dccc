package services

import (
	"context"

	"github.com/dmitrijs2005/supportportal/internal/client/models"
	"github.com/dmitrijs2005/supportportal/internal/client/session"
)

// Session is the part of the local session store the services depend on.
type Session interface {
	IsLoggedIn(ctx context.Context) bool
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	SetCurrentUser(ctx context.Context, u models.User) error
	CurrentUser(ctx context.Context) (*models.User, error)
	SetUsers(ctx context.Context, users []models.User) error
	Users(ctx context.Context) ([]models.User, error)
	Clear(ctx context.Context) error
}

var _ Session = (*session.Store)(nil)
