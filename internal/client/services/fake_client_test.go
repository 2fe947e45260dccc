package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/supportportal/internal/client/client"
	"github.com/dmitrijs2005/supportportal/internal/client/models"
	"github.com/dmitrijs2005/supportportal/internal/client/session"
)

// ---- helpers ----

func newStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// ---- fake client ----

// fakeClient implements client.Client for unit tests of the services.
type fakeClient struct {
	LoginRet    *client.LoginResult
	LoginErr    error
	RegisterRet *models.User
	RegisterErr error
	UsersRet    []models.User
	UsersErr    error
	AddRet      *models.User
	AddErr      error
	UpdateRet   *models.User
	UpdateErr   error
	ResetRet    *models.CustomHTTPResponse
	ResetErr    error
	DeleteRet   *models.CustomHTTPResponse
	DeleteErr   error
	Upload      []client.UploadEvent

	Calls        int
	LastCreds    models.Credentials
	LastReg      models.Registration
	LastForm     *client.FormData
	LastEmail    string
	LastUsername string
}

func (f *fakeClient) Login(_ context.Context, creds models.Credentials) (*client.LoginResult, error) {
	f.Calls++
	f.LastCreds = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, reg models.Registration) (*models.User, error) {
	f.Calls++
	f.LastReg = reg
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) GetUsers(context.Context) ([]models.User, error) {
	f.Calls++
	return f.UsersRet, f.UsersErr
}

func (f *fakeClient) AddUser(_ context.Context, form *client.FormData) (*models.User, error) {
	f.Calls++
	f.LastForm = form
	return f.AddRet, f.AddErr
}

func (f *fakeClient) UpdateUser(_ context.Context, form *client.FormData) (*models.User, error) {
	f.Calls++
	f.LastForm = form
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) ResetPassword(_ context.Context, email string) (*models.CustomHTTPResponse, error) {
	f.Calls++
	f.LastEmail = email
	return f.ResetRet, f.ResetErr
}

func (f *fakeClient) UpdateProfileImage(_ context.Context, form *client.FormData) <-chan client.UploadEvent {
	f.Calls++
	f.LastForm = form
	ch := make(chan client.UploadEvent, len(f.Upload))
	for _, ev := range f.Upload {
		ch <- ev
	}
	close(ch)
	return ch
}

func (f *fakeClient) DeleteUser(_ context.Context, username string) (*models.CustomHTTPResponse, error) {
	f.Calls++
	f.LastUsername = username
	return f.DeleteRet, f.DeleteErr
}

func loginResult(token string, u models.User) *client.LoginResult {
	h := http.Header{}
	if token != "" {
		h.Set("Jwt-Token", token)
	}
	h.Set("Authorities", "user:read")
	return &client.LoginResult{User: u, Header: h}
}

func apiError(status int, message string) *client.APIError {
	return &client.APIError{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       models.CustomHTTPResponse{HTTPStatusCode: status, Message: message},
	}
}
