package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/supportportal/internal/client/models"
	"github.com/dmitrijs2005/supportportal/internal/common"
)

type staticTokens string

func (s staticTokens) Token(context.Context) (string, error) { return string(s), nil }

type recorded struct {
	mu   sync.Mutex
	reqs []*http.Request
	body [][]byte
}

func (r *recorded) add(req *http.Request, b []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	r.body = append(r.body, b)
}

func (r *recorded) last(t *testing.T) (*http.Request, []byte) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.reqs)
	return r.reqs[len(r.reqs)-1], r.body[len(r.body)-1]
}

func newStub(t *testing.T, h http.HandlerFunc) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.add(r.Clone(context.Background()), b)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, baseURL string, tokens TokenSource) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(baseURL, WithTokenSource(tokens))
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "localhost:8081", "ftp://host", "http://"} {
		_, err := NewHTTPClient(u)
		assert.Error(t, err, u)
	}

	c, err := NewHTTPClient("http://localhost:8081/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8081", c.BaseURL())
}

func TestLogin_ReturnsUserAndHeaders(t *testing.T) {
	srv, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(common.JWTTokenHeader, "abc123")
		w.Header().Set(common.AuthoritiesHeader, "user:read")
		writeJSON(w, http.StatusOK, models.User{Username: "alice", FirstName: "Alice"})
	})
	c := newTestClient(t, srv.URL, staticTokens("stale"))

	res, err := c.Login(context.Background(), models.Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", res.Header.Get(common.JWTTokenHeader))
	assert.Equal(t, "Alice", res.User.FirstName)

	req, body := rec.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/user/login", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Empty(t, req.Header.Get("Authorization"), "login is public")
	assert.NotEmpty(t, req.Header.Get(common.RequestIDHeader))
	assert.JSONEq(t, `{"username":"alice","password":"secret"}`, string(body))
}

func TestLogin_BackendErrorIsAPIError(t *testing.T) {
	srv, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, models.CustomHTTPResponse{
			HTTPStatusCode: 400, HTTPStatus: "BAD_REQUEST", Reason: "BAD REQUEST",
			Message: "USERNAME / PASSWORD INCORRECT. PLEASE TRY AGAIN",
		})
	})
	c := newTestClient(t, srv.URL, nil)

	_, err := c.Login(context.Background(), models.Credentials{Username: "alice", Password: "bad"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "USERNAME / PASSWORD INCORRECT. PLEASE TRY AGAIN", apiErr.Message())
	assert.Contains(t, apiErr.Error(), "PASSWORD INCORRECT")
}

func TestAPIError_EmptyAndNonJSONBodies(t *testing.T) {
	srv, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/user/list" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})
	c := newTestClient(t, srv.URL, nil)

	_, err := c.GetUsers(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Message())
	assert.Equal(t, "api error: 500 Internal Server Error", apiErr.Error())

	_, err = c.Register(context.Background(), models.Registration{})
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Message())
	assert.Equal(t, "<html>bad gateway</html>", apiErr.Body.Reason)
}

func TestTransportErrorIsNotClassified(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := newTestClient(t, base, nil)
	_, err := c.GetUsers(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	var urlErr *url.Error
	assert.ErrorAs(t, err, &urlErr)
	assert.Contains(t, err.Error(), "get users:")
}

func TestGetUsers_SendsBearerToken(t *testing.T) {
	srv, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.User{{Username: "alice"}, {Username: "bob"}})
	})
	c := newTestClient(t, srv.URL, staticTokens("abc123"))

	users, err := c.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	req, _ := rec.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/user/list", req.URL.Path)
	assert.Equal(t, "Bearer abc123", req.Header.Get("Authorization"))
}

func TestGetUsers_NoTokenNoHeader(t *testing.T) {
	srv, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.User{})
	})
	c := newTestClient(t, srv.URL, staticTokens(""))

	_, err := c.GetUsers(context.Background())
	require.NoError(t, err)
	req, _ := rec.last(t)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestAddAndUpdateUser_PostMultipart(t *testing.T) {
	srv, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.User{Username: "carol", FirstName: "Carol"})
	})
	c := newTestClient(t, srv.URL, staticTokens("tok"))
	form := CreateUserFormData("admin", models.User{Username: "carol", FirstName: "Carol", Active: true}, nil)

	u, err := c.AddUser(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "Carol", u.FirstName)

	req, body := rec.last(t)
	assert.Equal(t, "/user/add", req.URL.Path)
	fields := readMultipart(t, body, req.Header.Get("Content-Type"))
	assert.Equal(t, "true", string(fields["isActive"]))
	assert.Equal(t, "carol", string(fields["username"]))

	_, err = c.UpdateUser(context.Background(), form)
	require.NoError(t, err)
	req, _ = rec.last(t)
	assert.Equal(t, "/user/update", req.URL.Path)
	assert.Equal(t, http.MethodPost, req.Method)
}

func TestResetPassword_EscapesEmail(t *testing.T) {
	srv, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.CustomHTTPResponse{HTTPStatusCode: 200, Message: "EMAIL SENT TO: A+B@EXAMPLE.COM"})
	})
	c := newTestClient(t, srv.URL, nil)

	res, err := c.ResetPassword(context.Background(), "a+b@example.com")
	require.NoError(t, err)
	assert.Equal(t, "EMAIL SENT TO: A+B@EXAMPLE.COM", res.Message)

	req, _ := rec.last(t)
	assert.Equal(t, "/user/resetPassword/a+b@example.com", req.URL.Path)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestDeleteUser_NoContent(t *testing.T) {
	srv, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, srv.URL, staticTokens("tok"))

	res, err := c.DeleteUser(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.HTTPStatusCode)
	assert.Equal(t, "NO CONTENT", res.Reason)

	req, _ := rec.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/user/delete/bob", req.URL.Path)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

func TestDeleteUser_UsernameShapedLikePublicPath(t *testing.T) {
	srv, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, srv.URL, staticTokens("tok"))

	_, err := c.DeleteUser(context.Background(), "x/user/login")
	require.NoError(t, err)

	req, _ := rec.last(t)
	assert.Equal(t, "/user/delete/x/user/login", req.URL.Path)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

func TestAuthHeader_BaseURLWithPath(t *testing.T) {
	srv, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.User{Username: "alice"})
	})
	c := newTestClient(t, srv.URL+"/portal/", staticTokens("tok"))
	ctx := context.Background()

	_, err := c.Login(ctx, models.Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	req, _ := rec.last(t)
	assert.Equal(t, "/portal/user/login", req.URL.Path)
	assert.Empty(t, req.Header.Get("Authorization"))

	_, err = c.UpdateUser(ctx, CreateUserFormData("alice", models.User{Username: "alice"}, nil))
	require.NoError(t, err)
	req, _ = rec.last(t)
	assert.Equal(t, "/portal/user/update", req.URL.Path)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

func TestIsPublic(t *testing.T) {
	cases := []struct {
		path, base string
		want       bool
	}{
		{"/user/login", "", true},
		{"/user/register", "", true},
		{"/user/resetPassword/a@b.c", "", true},
		{"/user/image/alice/a.png", "", true},
		{"/user/login/extra", "", false},
		{"/user/delete/x/user/login", "", false},
		{"/api/user/login", "/api", true},
		{"/user/login", "/api", false},
		{"/user/list", "", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isPublic(tc.path, tc.base), tc.path)
	}
}

func TestCancelledContextAbortsRequest(t *testing.T) {
	srv, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.User{})
	})
	c := newTestClient(t, srv.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetUsers(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
