package workflow

import (
	"context"

	"github.com/dmitrijs2005/supportportal/internal/client/models"
	"github.com/dmitrijs2005/supportportal/internal/client/router"
)

// LoginScreen authenticates an operator and enters the management area.
type LoginScreen struct {
	screen
}

func NewLoginScreen(deps Deps) *LoginScreen {
	l := &LoginScreen{}
	l.init(deps)
	return l
}

// Init sends an already logged in operator to the management area. It
// reports whether it navigated away.
func (l *LoginScreen) Init(ctx context.Context) bool {
	return l.deps.Guard.RedirectIfLoggedIn(ctx)
}

// OnLogin submits creds. On success the session is stored and the screen
// navigates to the management area; on failure an ERROR notification is
// emitted and the screen stays.
func (l *LoginScreen) OnLogin(creds models.Credentials) *Submission {
	var user *models.User
	return l.submit(
		func(ctx context.Context) error {
			u, err := l.deps.Auth.Login(ctx, creds)
			user = u
			return err
		},
		func(ctx context.Context, err error) {
			if err != nil {
				l.notifyFailure(ctx, "login", err)
				return
			}
			l.deps.Log.Info(ctx, "logged in", "username", user.Username)
			l.deps.Nav.NavigateByURL(ctx, router.UserManagement)
		},
	)
}
