package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/supportportal/internal/client/client"
	"github.com/dmitrijs2005/supportportal/internal/client/models"
	"github.com/dmitrijs2005/supportportal/internal/client/notify"
	"github.com/dmitrijs2005/supportportal/internal/common"
	"github.com/dmitrijs2005/supportportal/internal/logging"
)

// UserService is the user-management screen's view of the backend.
//
// Every operation reports its outcome to the notifier: a SUCCESS line when it
// worked, an ERROR line with ErrorMessage(err) when it did not. The error is
// returned as well so callers can branch on it.
type UserService interface {
	// List fetches all users and replaces the local cache with them.
	List(ctx context.Context) ([]models.User, error)
	// Cached returns the last fetched list without a network call; nil when
	// nothing was fetched yet.
	Cached(ctx context.Context) ([]models.User, error)
	Add(ctx context.Context, u models.User, image *client.File) (*models.User, error)
	Update(ctx context.Context, currentUsername string, u models.User, image *client.File) (*models.User, error)
	Delete(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, email string) error
	// UpdateProfileImage uploads image for username. progress, when non-nil,
	// is called for every progress event before the call returns.
	UpdateProfileImage(ctx context.Context, username string, image *client.File, progress func(client.UploadEvent)) (*models.User, error)
}

type userService struct {
	client   client.Client
	session  Session
	notifier notify.Notifier
	log      logging.Logger
}

func NewUserService(c client.Client, s Session, n notify.Notifier, log logging.Logger) UserService {
	if log == nil {
		log = logging.Discard()
	}
	return &userService{client: c, session: s, notifier: n, log: log}
}

func (s *userService) fail(ctx context.Context, op string, err error) error {
	s.log.Warn(ctx, op+" failed", "err", err)
	s.notifier.Notify(ctx, notify.Error, ErrorMessage(err))
	return err
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.client.GetUsers(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list users", err)
	}
	if err := s.session.SetUsers(ctx, users); err != nil {
		return nil, s.fail(ctx, "cache users", err)
	}
	s.notifier.Notify(ctx, notify.Success, fmt.Sprintf("%d user(s) loaded successfully.", len(users)))
	return users, nil
}

func (s *userService) Cached(ctx context.Context) ([]models.User, error) {
	users, err := s.session.Users(ctx)
	if err != nil {
		return nil, s.fail(ctx, "read cached users", err)
	}
	return users, nil
}

// loggedInUsername is the currentUsername form field: the stored user.
func (s *userService) loggedInUsername(ctx context.Context) (string, error) {
	u, err := s.session.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", common.ErrNotLoggedIn
	}
	return u.Username, nil
}

func (s *userService) Add(ctx context.Context, u models.User, image *client.File) (*models.User, error) {
	if err := models.Validate(u); err != nil {
		return nil, s.fail(ctx, "add user", err)
	}
	current, err := s.loggedInUsername(ctx)
	if err != nil {
		return nil, s.fail(ctx, "add user", err)
	}

	created, err := s.client.AddUser(ctx, client.CreateUserFormData(current, u, image))
	if err != nil {
		return nil, s.fail(ctx, "add user", err)
	}
	s.notifier.Notify(ctx, notify.Success, fmt.Sprintf("%s added successfully", created.FullName()))
	return created, nil
}

// Update edits the user currently named currentUsername; u carries the new
// values, including a possibly changed username.
func (s *userService) Update(ctx context.Context, currentUsername string, u models.User, image *client.File) (*models.User, error) {
	if err := models.Validate(u); err != nil {
		return nil, s.fail(ctx, "update user", err)
	}
	if currentUsername == "" {
		return nil, s.fail(ctx, "update user", fmt.Errorf("%w: current username is required", common.ErrInvalidInput))
	}

	updated, err := s.client.UpdateUser(ctx, client.CreateUserFormData(currentUsername, u, image))
	if err != nil {
		return nil, s.fail(ctx, "update user", err)
	}

	// Editing oneself refreshes the stored current user.
	if me, err := s.session.CurrentUser(ctx); err == nil && me != nil && me.Username == currentUsername {
		if err := s.session.SetCurrentUser(ctx, *updated); err != nil {
			s.log.Warn(ctx, "refresh current user failed", "err", err)
		}
	}

	s.notifier.Notify(ctx, notify.Success, fmt.Sprintf("%s updated successfully", updated.FullName()))
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	if username == "" {
		return s.fail(ctx, "delete user", fmt.Errorf("%w: username is required", common.ErrInvalidInput))
	}
	res, err := s.client.DeleteUser(ctx, username)
	if err != nil {
		return s.fail(ctx, "delete user", err)
	}
	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("%s deleted successfully", username)
	}
	s.notifier.Notify(ctx, notify.Success, msg)
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, email string) error {
	if err := models.ValidateVar(email, "required", "Email"); err != nil {
		return s.fail(ctx, "reset password", err)
	}
	res, err := s.client.ResetPassword(ctx, email)
	if err != nil {
		return s.fail(ctx, "reset password", err)
	}
	s.notifier.Notify(ctx, notify.Success, res.Message)
	return nil
}

func (s *userService) UpdateProfileImage(ctx context.Context, username string, image *client.File, progress func(client.UploadEvent)) (*models.User, error) {
	if username == "" || image == nil {
		return nil, s.fail(ctx, "update profile image",
			fmt.Errorf("%w: username and image are required", common.ErrInvalidInput))
	}

	var final client.UploadEvent
	done := false
	for ev := range s.client.UpdateProfileImage(ctx, client.ProfileImageFormData(username, image)) {
		if ev.Type == client.UploadDone {
			final, done = ev, true
			continue
		}
		if progress != nil {
			progress(ev)
		}
	}

	switch {
	case !done:
		err := ctx.Err()
		if err == nil {
			err = errors.New("upload ended without a result")
		}
		return nil, s.fail(ctx, "update profile image", err)
	case final.Err != nil:
		return nil, s.fail(ctx, "update profile image", final.Err)
	}

	s.notifier.Notify(ctx, notify.Success, fmt.Sprintf("%s's profile image updated successfully", final.User.FirstName))
	return final.User, nil
}
