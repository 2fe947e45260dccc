package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/supportportal/internal/client/models"
	"github.com/dmitrijs2005/supportportal/internal/logging"
)

const (
	pathLogin              = "/user/login"
	pathRegister           = "/user/register"
	pathList               = "/user/list"
	pathAdd                = "/user/add"
	pathUpdate             = "/user/update"
	pathResetPassword      = "/user/resetPassword/"
	pathUpdateProfileImage = "/user/updateProfileImage"
	pathDelete             = "/user/delete/"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. Its transport is
// still wrapped by the auth transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient returns a gateway for the backend at baseURL
// (e.g. "http://localhost:8081").
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("base url %q: want http(s)://host[:port]", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *c.http
	wrapped.Transport = &authTransport{
		base:     base,
		basePath: strings.TrimRight(u.Path, "/"),
		tokens:   c.tokens,
		log:      c.log,
	}
	c.http = &wrapped

	return c, nil
}

// BaseURL returns the backend host the client talks to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*LoginResult, error) {
	var u models.User
	header, err := c.doJSON(ctx, "login", http.MethodPost, pathLogin, creds, &u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Header: header}, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	var u models.User
	if _, err := c.doJSON(ctx, "register", http.MethodPost, pathRegister, reg, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := c.doJSON(ctx, "get users", http.MethodGet, pathList, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) AddUser(ctx context.Context, form *FormData) (*models.User, error) {
	return c.postForm(ctx, "add user", pathAdd, form)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, form *FormData) (*models.User, error) {
	return c.postForm(ctx, "update user", pathUpdate, form)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email string) (*models.CustomHTTPResponse, error) {
	return c.envelope(ctx, "reset password", http.MethodGet, pathResetPassword+url.PathEscape(email))
}

func (c *HTTPClient) DeleteUser(ctx context.Context, username string) (*models.CustomHTTPResponse, error) {
	return c.envelope(ctx, "delete user", http.MethodDelete, pathDelete+url.PathEscape(username))
}

func (c *HTTPClient) postForm(ctx context.Context, op, path string, form *FormData) (*models.User, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var u models.User
	if _, err := c.do(ctx, op, http.MethodPost, path, bytes.NewReader(body), contentType, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// envelope runs a request whose answer is a CustomHTTPResponse. An empty
// body (204) is filled in from the status line.
func (c *HTTPClient) envelope(ctx context.Context, op, method, path string) (*models.CustomHTTPResponse, error) {
	var r models.CustomHTTPResponse
	if _, err := c.do(ctx, op, method, path, nil, "", &r); err != nil {
		return nil, err
	}
	if r.HTTPStatusCode == 0 && r.Message == "" {
		r.HTTPStatusCode = http.StatusNoContent
		r.Reason = strings.ToUpper(http.StatusText(http.StatusNoContent))
	}
	return &r, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, op, method, path string, in, out any) (http.Header, error) {
	if in == nil {
		return c.do(ctx, op, method, path, nil, "", out)
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}
	return c.do(ctx, op, method, path, bytes.NewReader(b), "application/json", out)
}

// do sends one request and decodes a 2xx JSON body into out. An empty body
// leaves out untouched.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sized, ok := body.(interface{ Len() int }); ok && req.ContentLength == 0 {
		req.ContentLength = int64(sized.Len())
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.Header, fmt.Errorf("%s: read body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.Header, newAPIError(resp, raw)
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.Header, fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return resp.Header, nil
}

func newAPIError(resp *http.Response, raw []byte) *APIError {
	e := &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Raw: raw}
	text := bytes.TrimSpace(raw)
	if len(text) == 0 {
		return e
	}
	var body models.CustomHTTPResponse
	if err := json.Unmarshal(text, &body); err != nil {
		e.Body.Reason = string(text)
		return e
	}
	e.Body = body
	return e
}
