package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/supportportal/internal/client/client"
	"github.com/dmitrijs2005/supportportal/internal/client/config"
	"github.com/dmitrijs2005/supportportal/internal/client/notify"
	"github.com/dmitrijs2005/supportportal/internal/client/router"
	"github.com/dmitrijs2005/supportportal/internal/client/services"
	"github.com/dmitrijs2005/supportportal/internal/client/session"
	"github.com/dmitrijs2005/supportportal/internal/client/workflow"
	"github.com/dmitrijs2005/supportportal/internal/logging"
)

// screen is what the REPL needs from the active login or register screen.
type screen interface {
	Init(ctx context.Context) bool
	Loading() bool
	Destroy()
}

type App struct {
	config      *config.Config
	store       *session.Store
	authService services.AuthService
	userService services.UserService
	router      *router.Router
	guard       *router.Guard
	notifier    notify.Notifier
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	backend     string

	route  string
	screen screen
}

// NewApp opens the local store and builds the client stack for c. Commands
// are read from in and results written to out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	store, err := session.Open(ctx, c.StorePath)
	if err != nil {
		log.Error(ctx, "error initializing session store", "path", c.StorePath, "err", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIURL,
		client.WithTokenSource(store),
		client.WithLogger(log.With("component", "gateway")))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	var notifier notify.Notifier = notify.NewConsoleNotifier(out)
	if c.LogFormat == "json" {
		notifier = notify.Multi{notifier, notify.NewLogNotifier(log)}
	}

	r := router.New(log.With("component", "router"))

	return &App{
		config:      c,
		store:       store,
		authService: services.NewAuthService(apiClient, store, c.TokenHeader, log),
		userService: services.NewUserService(apiClient, store, notifier, log),
		router:      r,
		guard:       router.NewGuard(store, r),
		notifier:    notifier,
		log:         log,
		reader:      bufio.NewReader(in),
		out:         out,
		backend:     apiClient.BaseURL(),
	}, nil
}

// Run shows the landing screen and runs the REPL until exit or end of input.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintf(a.out, "Support portal CLI, backend %s (type 'help' for commands)\n", a.backend)
	a.navigate(ctx, "")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close tears down the active screen and the session store.
func (a *App) Close() {
	if a.screen != nil {
		a.screen.Destroy()
		a.screen = nil
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn(context.Background(), "close session store", "err", err)
	}
}

func (a *App) deps() workflow.Deps {
	return workflow.Deps{
		Auth:     a.authService,
		Guard:    a.guard,
		Nav:      a.router,
		Notifier: a.notifier,
		Log:      a.log,
	}
}

// navigate moves to url and brings the active screen in line with the
// resulting route.
func (a *App) navigate(ctx context.Context, url string) {
	a.router.NavigateByURL(ctx, url)
	a.syncScreen(ctx)
}

// syncScreen swaps the active screen after the route changed, whether by a
// command or by a submission result. Entering a screen may redirect, so it
// loops until the route is stable.
func (a *App) syncScreen(ctx context.Context) {
	for a.route != a.router.Current() {
		if a.screen != nil {
			a.screen.Destroy()
			a.screen = nil
		}
		a.route = a.router.Current()

		switch a.route {
		case router.Login:
			a.screen = workflow.NewLoginScreen(a.deps())
		case router.Register:
			a.screen = workflow.NewRegisterScreen(a.deps())
		case router.UserManagement:
			a.guard.RequireLogin(ctx)
		}
		if a.screen != nil {
			a.screen.Init(ctx)
		}
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.IsLoggedIn(ctx)
}

func (a *App) getStatus() string {
	s := a.route
	if me, err := a.authService.CurrentUser(context.Background()); err == nil && me != nil {
		s = me.Username + " " + s
	}
	if a.screen != nil && a.screen.Loading() {
		s += " ..."
	}
	return s
}
