package router

import "context"

// SessionChecker answers "is logged in" from local state only.
type SessionChecker interface {
	IsLoggedIn(ctx context.Context) bool
}

// Guard runs the session checks screens perform on entry. It never talks to
// the backend, so a locally stored but expired token still counts as logged in.
type Guard struct {
	sessions SessionChecker
	nav      Navigator
}

func NewGuard(sessions SessionChecker, nav Navigator) *Guard {
	return &Guard{sessions: sessions, nav: nav}
}

// RedirectIfLoggedIn sends an authenticated user to the management area.
// It reports whether a navigation happened.
func (g *Guard) RedirectIfLoggedIn(ctx context.Context) bool {
	if !g.sessions.IsLoggedIn(ctx) {
		return false
	}
	g.nav.NavigateByURL(ctx, UserManagement)
	return true
}

// RequireLogin sends an anonymous user to the login screen. It reports
// whether the caller may stay on the protected screen.
func (g *Guard) RequireLogin(ctx context.Context) bool {
	if g.sessions.IsLoggedIn(ctx) {
		return true
	}
	g.nav.NavigateByURL(ctx, Login)
	return false
}
