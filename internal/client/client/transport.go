package client

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/supportportal/internal/common"
	"github.com/dmitrijs2005/supportportal/internal/logging"
)

// publicPaths never get an Authorization header. They are matched as
// prefixes of the request path relative to the base URL.
var publicPaths = []string{
	pathLogin,
	pathRegister,
	pathResetPassword,
	"/user/image/",
}

func isPublic(path, basePath string) bool {
	rel, ok := strings.CutPrefix(path, basePath)
	if !ok {
		return false
	}
	for _, p := range publicPaths {
		if rel == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(rel, p)) {
			return true
		}
	}
	return false
}

// authTransport tags requests with a request id and the bearer token.
type authTransport struct {
	base     http.RoundTripper
	basePath string
	tokens   TokenSource
	log      logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := uuid.NewString()
	ctx := logging.WithAttrs(req.Context(), "request_id", id)
	r := req.Clone(ctx)
	r.Header.Set(common.RequestIDHeader, id)

	if t.tokens != nil && !isPublic(r.URL.Path, t.basePath) {
		token, err := t.tokens.Token(ctx)
		if err != nil {
			t.log.Warn(ctx, "token lookup failed", "err", err)
		} else if token != "" {
			r.Header.Set("Authorization", common.TokenPrefix+" "+token)
		}
	}

	t.log.Debug(ctx, "request", "method", r.Method, "path", r.URL.Path)

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	t.log.Debug(ctx, "response", "status", resp.StatusCode)
	return resp, nil
}
