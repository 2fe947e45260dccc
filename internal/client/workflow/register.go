package workflow

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/supportportal/internal/client/models"
	"github.com/dmitrijs2005/supportportal/internal/client/notify"
)

// RegisterScreen creates accounts. The backend mails the generated password,
// so a successful registration does not log anyone in and stays on the screen.
type RegisterScreen struct {
	screen
}

func NewRegisterScreen(deps Deps) *RegisterScreen {
	r := &RegisterScreen{}
	r.init(deps)
	return r
}

// Init sends an already logged in operator to the management area.
func (r *RegisterScreen) Init(ctx context.Context) bool {
	return r.deps.Guard.RedirectIfLoggedIn(ctx)
}

func (r *RegisterScreen) OnRegister(reg models.Registration) *Submission {
	var user *models.User
	return r.submit(
		func(ctx context.Context) error {
			u, err := r.deps.Auth.Register(ctx, reg)
			user = u
			return err
		},
		func(ctx context.Context, err error) {
			if err != nil {
				r.notifyFailure(ctx, "register", err)
				return
			}
			r.deps.Notifier.Notify(ctx, notify.Success, RegisteredMessage(user.FirstName))
		},
	)
}

// RegisteredMessage is the notification shown after a successful registration.
func RegisteredMessage(firstName string) string {
	return fmt.Sprintf("A new account was created for %s. Please check your email for password", firstName)
}
