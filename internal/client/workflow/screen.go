// Package workflow drives the login and registration screens: the
// Idle/Submitting state of each screen, its asynchronous submissions and the
// notifications and navigation they end in.
//
// A submission runs on its own goroutine bound to the screen's context.
// Destroy cancels that context, waits for running submissions and guarantees
// that none of their result callbacks runs afterwards.
package workflow

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/supportportal/internal/client/notify"
	"github.com/dmitrijs2005/supportportal/internal/client/router"
	"github.com/dmitrijs2005/supportportal/internal/client/services"
	"github.com/dmitrijs2005/supportportal/internal/logging"
)

type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// Deps are the collaborators shared by both screens.
type Deps struct {
	Auth     services.AuthService
	Guard    *router.Guard
	Nav      router.Navigator
	Notifier notify.Notifier
	Log      logging.Logger
}

// Submission is one in-flight submit of a screen.
type Submission struct {
	done chan struct{}
}

// Wait blocks until the submission settled or was cancelled by Destroy.
func (s *Submission) Wait() {
	<-s.done
}

// Done is closed together with Wait returning.
func (s *Submission) Done() <-chan struct{} {
	return s.done
}

func settled() *Submission {
	s := &Submission{done: make(chan struct{})}
	close(s.done)
	return s
}

// screen holds what LoginScreen and RegisterScreen share.
type screen struct {
	deps   Deps
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	inflight  int
	destroyed bool
	wg        sync.WaitGroup
}

func (s *screen) init(deps Deps) {
	if deps.Log == nil {
		deps.Log = logging.Discard()
	}
	s.deps = deps
	s.ctx, s.cancel = context.WithCancel(context.Background())
}

// State is Submitting while at least one submission runs.
func (s *screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight > 0 {
		return Submitting
	}
	return Idle
}

// Loading is the advisory busy flag. Nothing stops a second submit.
func (s *screen) Loading() bool {
	return s.State() == Submitting
}

// Destroy tears the screen down. It must not be called from a result
// callback of the same screen.
func (s *screen) Destroy() {
	s.mu.Lock()
	s.destroyed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// submit runs task asynchronously and hands its error to done, unless the
// screen was destroyed in the meantime.
func (s *screen) submit(task func(ctx context.Context) error, done func(ctx context.Context, err error)) *Submission {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return settled()
	}
	s.inflight++
	s.wg.Add(1)
	s.mu.Unlock()

	sub := &Submission{done: make(chan struct{})}
	go func() {
		defer s.wg.Done()
		defer close(sub.done)
		// Submitting lasts until the result has been handled.
		defer func() {
			s.mu.Lock()
			s.inflight--
			s.mu.Unlock()
		}()

		err := task(s.ctx)

		s.mu.Lock()
		cancelled := s.destroyed
		s.mu.Unlock()

		if cancelled {
			s.deps.Log.Debug(context.Background(), "submission result dropped", "err", err)
			return
		}
		done(s.ctx, err)
	}()
	return sub
}

// notifyFailure reports err to the operator.
func (s *screen) notifyFailure(ctx context.Context, op string, err error) {
	s.deps.Log.Warn(ctx, op+" failed", "err", err)
	s.deps.Notifier.Notify(ctx, notify.Error, services.ErrorMessage(err))
}
