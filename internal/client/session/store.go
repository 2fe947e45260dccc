// Package session is the local persistent state of the client: the session
// token, the current user and the last fetched user list.
//
// A Store is an explicit object with Open/Close rather than ambient global
// state, so screens and services receive it by injection and tests can back
// it with an in-memory database.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/supportportal/internal/client/models"
	"github.com/dmitrijs2005/supportportal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/supportportal/internal/common"
	"github.com/dmitrijs2005/supportportal/internal/dbx"
	"github.com/dmitrijs2005/supportportal/internal/filex"
)

const (
	keyToken = "token"
	keyUser  = "user"
	keyUsers = "users"
)

// ErrCorruptCache is returned when a stored record cannot be decoded or fails
// validation.
var ErrCorruptCache = common.ErrCorruptCache

type Store struct {
	db   *sql.DB
	repo metadata.Repository
}

// New wraps an already migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db, repo: metadata.NewSQLiteRepository(db)}
}

// Open opens (creating if needed) the store at dsn, either a file path or
// ":memory:".
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}
	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// IsLoggedIn reports whether a non-empty token is stored. Read errors count
// as logged out.
func (s *Store) IsLoggedIn(ctx context.Context) bool {
	token, err := s.Token(ctx)
	return err == nil && token != ""
}

// Token returns the stored token, or "" when there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	e, err := s.repo.Get(ctx, keyToken)
	if err != nil || e == nil {
		return "", err
	}
	return string(e.Value), nil
}

// SaveToken overwrites the stored token. No expiry is recorded.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, keyToken, []byte(token))
}

// SetCurrentUser stores u as the current user.
func (s *Store) SetCurrentUser(ctx context.Context, u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.repo.Set(ctx, keyUser, b)
}

// CurrentUser returns the current user, (nil, nil) when none is stored and
// ErrCorruptCache when the stored record is unusable.
func (s *Store) CurrentUser(ctx context.Context) (*models.User, error) {
	e, err := s.repo.Get(ctx, keyUser)
	if err != nil || e == nil {
		return nil, err
	}

	var u models.User
	if err := json.Unmarshal(e.Value, &u); err != nil {
		return nil, fmt.Errorf("%w: user: %v", ErrCorruptCache, err)
	}
	if err := models.Validate(u); err != nil {
		return nil, fmt.Errorf("%w: user: %v", ErrCorruptCache, err)
	}
	return &u, nil
}

// SetUsers caches the last fetched user list verbatim, replacing the previous one.
func (s *Store) SetUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	b, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	return s.repo.Set(ctx, keyUsers, b)
}

// Users returns the cached user list, (nil, nil) when nothing was cached.
// The list may be arbitrarily stale.
func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	e, err := s.repo.Get(ctx, keyUsers)
	if err != nil || e == nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(e.Value, &users); err != nil {
		return nil, fmt.Errorf("%w: users: %v", ErrCorruptCache, err)
	}
	for i := range users {
		if err := models.Validate(users[i]); err != nil {
			return nil, fmt.Errorf("%w: users[%d]: %v", ErrCorruptCache, i, err)
		}
	}
	return users, nil
}

// UsersCachedAt reports when the user list was last cached; the zero time
// when it never was.
func (s *Store) UsersCachedAt(ctx context.Context) (time.Time, error) {
	e, err := s.repo.Get(ctx, keyUsers)
	if err != nil || e == nil {
		return time.Time{}, err
	}
	return e.UpdatedAt, nil
}

// Clear destroys the session: token, current user and cached list go together.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.InTx(ctx, s.db, func(tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, keyToken, keyUser, keyUsers)
	})
}
