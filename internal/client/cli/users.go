package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/supportportal/internal/client/client"
	"github.com/dmitrijs2005/supportportal/internal/client/models"
)

const defaultRole = "ROLE_USER"

// List fetches all users from the backend and prints them.
func (a *App) List(ctx context.Context, _ []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	users, err := a.userService.List(ctx)
	if err != nil {
		return err
	}
	printUsers(users)
	return nil
}

// Cached prints the list fetched by the last List without a network call.
func (a *App) Cached(ctx context.Context, _ []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	users, err := a.userService.Cached(ctx)
	if err != nil {
		return err
	}
	if users == nil {
		printlnFn("No cached users, run 'list' first")
		return nil
	}
	if at, err := a.store.UsersCachedAt(ctx); err == nil && !at.IsZero() {
		printlnFn("Cached at " + at.Format(time.DateTime))
	}
	printUsers(users)
	return nil
}

func printUsers(users []models.User) {
	printlnFn(fmt.Sprintf("%-16s %-24s %-28s %-16s %s", "USERNAME", "NAME", "EMAIL", "ROLE", "STATUS"))
	for _, u := range users {
		printlnFn(u.String())
	}
}

// Add prompts for a new user and creates it.
func (a *App) Add(ctx context.Context, _ []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	u, image, err := a.promptUser(models.User{Role: defaultRole, Active: true, NotLocked: true})
	if err != nil {
		return err
	}
	created, err := a.userService.Add(ctx, u, image)
	if err != nil {
		return err
	}
	printlnFn(created.String())
	return nil
}

// Update edits the user named in args[0] (prompted when absent). Values of
// the cached record are offered as defaults.
func (a *App) Update(ctx context.Context, args []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	username := firstArg(args)
	if username == "" {
		var err error
		if username, err = getSimpleText(a.reader, "Enter username to update", a.out); err != nil {
			return err
		}
	}

	current := models.User{Username: username, Role: defaultRole, Active: true, NotLocked: true}
	if cached, err := a.userService.Cached(ctx); err == nil {
		for _, u := range cached {
			if u.Username == username {
				current = u
				break
			}
		}
	}

	u, image, err := a.promptUser(current)
	if err != nil {
		return err
	}
	updated, err := a.userService.Update(ctx, username, u, image)
	if err != nil {
		return err
	}
	printlnFn(updated.String())
	return nil
}

// promptUser asks for every editable field, offering def's values.
func (a *App) promptUser(def models.User) (models.User, *client.File, error) {
	u := def
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"First name", &u.FirstName},
		{"Last name", &u.LastName},
		{"Username", &u.Username},
		{"Email", &u.Email},
		{"Role", &u.Role},
	} {
		v, err := GetTextOrDefault(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return u, nil, err
		}
		*f.dst = v
	}

	var err error
	if u.Active, err = GetYesNo(a.reader, "Active", def.Active, a.out); err != nil {
		return u, nil, err
	}
	if u.NotLocked, err = GetYesNo(a.reader, "Unlocked", def.NotLocked, a.out); err != nil {
		return u, nil, err
	}

	path, err := getSimpleText(a.reader, "Profile image file (empty for none)", a.out)
	if err != nil || path == "" {
		return u, nil, err
	}
	image, err := client.OpenFile(path)
	if err != nil {
		printlnFn(err.Error())
		return u, nil, err
	}
	return u, image, nil
}

// Delete removes the user named in args[0] after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	username := firstArg(args)
	if username == "" {
		var err error
		if username, err = getSimpleText(a.reader, "Enter username to delete", a.out); err != nil {
			return err
		}
	}
	ok, err := GetYesNo(a.reader, fmt.Sprintf("Delete %s?", username), false, a.out)
	if err != nil || !ok {
		return err
	}
	return a.userService.Delete(ctx, username)
}

// ResetPassword asks the backend to mail a new password to args[0].
func (a *App) ResetPassword(ctx context.Context, args []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	email := firstArg(args)
	if email == "" {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}
	return a.userService.ResetPassword(ctx, email)
}

// UploadImage uploads the file args[1] as the profile image of args[0],
// printing the progress in steps of ten percent.
func (a *App) UploadImage(ctx context.Context, args []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	if len(args) < 2 {
		printlnFn("Usage: image <username> <file>")
		return nil
	}

	image, err := client.OpenFile(args[1])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	last := -1
	_, err = a.userService.UpdateProfileImage(ctx, args[0], image, func(ev client.UploadEvent) {
		if p := ev.Percent() / 10 * 10; p != last {
			last = p
			printlnFn(fmt.Sprintf("Uploading... %d%%", p))
		}
	})
	return err
}
