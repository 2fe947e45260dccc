package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/supportportal/internal/client/models"
	"github.com/dmitrijs2005/supportportal/internal/client/notify"
	"github.com/dmitrijs2005/supportportal/internal/client/router"
	"github.com/dmitrijs2005/supportportal/internal/client/session"
	"github.com/dmitrijs2005/supportportal/internal/client/workflow"
	"github.com/dmitrijs2005/supportportal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login opens the login screen and submits the credentials entered by the
// user. The username may be given as the first argument.
func (a *App) Login(ctx context.Context, args []string) error {
	a.navigate(ctx, router.Login)
	screen, ok := a.screen.(*workflow.LoginScreen)
	if !ok {
		printlnFn("Already logged in, use 'logout' first")
		return nil
	}

	username := firstArg(args)
	if username == "" {
		var err error
		if username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	screen.OnLogin(models.Credentials{Username: username, Password: string(password)}).Wait()
	a.syncScreen(ctx)
	return nil
}

// Register opens the registration screen and submits a new account. The
// backend mails the generated password; the user stays on the screen.
func (a *App) Register(ctx context.Context, args []string) error {
	a.navigate(ctx, router.Register)
	screen, ok := a.screen.(*workflow.RegisterScreen)
	if !ok {
		printlnFn("Already logged in, use 'logout' first")
		return nil
	}

	var reg models.Registration
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Enter first name", &reg.FirstName},
		{"Enter last name", &reg.LastName},
		{"Enter username", &reg.Username},
		{"Enter email", &reg.Email},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	screen.OnRegister(reg).Wait()
	a.syncScreen(ctx)
	return nil
}

// Logout drops the local session and returns to the login screen.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "err", err)
		a.notifier.Notify(ctx, notify.Error, common.DefaultErrorMessage)
		return err
	}
	a.notifier.Notify(ctx, notify.Success, "You've been successfully logged out")
	a.navigate(ctx, router.Login)
	return nil
}

// Whoami prints the stored user and what the token says about itself. The
// token is decoded without verification; expiry is informational.
func (a *App) Whoami(ctx context.Context, _ []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	me, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.notifier.Notify(ctx, notify.Warning, "Stored user is unreadable, log in again")
		return err
	}
	if me != nil {
		printlnFn(fmt.Sprintf("User:    %s (%s)", me.Username, me.FullName()))
		printlnFn(fmt.Sprintf("Role:    %s", me.Role))
	}

	token, err := a.store.Token(ctx)
	if err != nil {
		return err
	}
	info, err := session.DescribeToken(token)
	if err != nil {
		printlnFn("Token:   opaque")
		return nil
	}
	printlnFn(fmt.Sprintf("Subject: %s", info.Subject))
	if !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(time.Now()) {
			state = "expired"
		}
		printlnFn(fmt.Sprintf("Expires: %s (%s)", info.ExpiresAt.Local().Format(time.RFC1123), state))
	}
	return nil
}

// Goto navigates to the route in args[0]; unknown routes land on /login.
func (a *App) Goto(ctx context.Context, args []string) error {
	a.navigate(ctx, firstArg(args))
	return nil
}

// requireLogin sends anonymous users to the login screen and moves logged
// in users to the management area.
func (a *App) requireLogin(ctx context.Context) error {
	if !a.guard.RequireLogin(ctx) {
		a.syncScreen(ctx)
		printlnFn("Please log in first")
		return common.ErrNotLoggedIn
	}
	if a.route != router.UserManagement {
		a.navigate(ctx, router.UserManagement)
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
