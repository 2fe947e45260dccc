// Package router is the in-process navigator of the CLI: the route table,
// the current screen and the session guards consulted on screen entry.
package router

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/supportportal/internal/logging"
)

const (
	Login    = "/login"
	Register = "/register"
	// UserManagement is the authenticated area. The path spelling is what
	// existing bookmarks and the backend's redirect links use.
	UserManagement = "/user/managemant"
)

var routes = map[string]struct{}{
	Login:          {},
	Register:       {},
	UserManagement: {},
}

// Resolve maps a requested URL onto a known route. The empty path and every
// unknown path resolve to Login. Query strings and fragments are ignored.
func Resolve(url string) string {
	p := strings.TrimSpace(url)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = "/" + strings.Trim(p, "/")
	if _, ok := routes[p]; ok {
		return p
	}
	return Login
}

// Navigator moves the front end to another screen.
type Navigator interface {
	NavigateByURL(ctx context.Context, url string) string
}

// Listener observes every navigation. from is "" for the first one.
type Listener func(ctx context.Context, from, to string)

// Router tracks the current route. It is safe for concurrent use; listeners
// run on the navigating goroutine, outside the router's lock.
type Router struct {
	mu        sync.Mutex
	current   string
	listeners []Listener
	log       logging.Logger
}

func New(log logging.Logger) *Router {
	if log == nil {
		log = logging.Discard()
	}
	return &Router{log: log}
}

// OnNavigate registers l for all subsequent navigations.
func (r *Router) OnNavigate(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// NavigateByURL resolves url, makes it the current route and returns it.
// Navigating to the current route still notifies listeners.
func (r *Router) NavigateByURL(ctx context.Context, url string) string {
	to := Resolve(url)

	r.mu.Lock()
	from := r.current
	r.current = to
	ls := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()

	r.log.Debug(ctx, "navigate", "from", from, "to", to, "requested", url)
	for _, l := range ls {
		l(ctx, from, to)
	}
	return to
}

// Current returns the active route, "" before the first navigation.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
