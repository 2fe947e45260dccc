package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/supportportal/internal/client/models"
)

type UploadEventType int

const (
	// UploadProgress reports bytes of the request body handed to the transport.
	UploadProgress UploadEventType = iota
	// UploadDone is the final event: User or Err is set.
	UploadDone
)

type UploadEvent struct {
	Type   UploadEventType
	Loaded int64
	Total  int64
	User   *models.User
	Err    error
}

// Percent is the upload progress in the range 0..100.
func (e UploadEvent) Percent() int {
	if e.Total <= 0 {
		return 0
	}
	return int(e.Loaded * 100 / e.Total)
}

// UpdateProfileImage posts form and streams its progress. The channel yields
// zero or more UploadProgress events and then one UploadDone event, after
// which it is closed. When ctx is cancelled pending events are dropped and
// the channel is closed.
func (c *HTTPClient) UpdateProfileImage(ctx context.Context, form *FormData) <-chan UploadEvent {
	events := make(chan UploadEvent, 8)

	em := &emitter{ch: events, done: ctx.Done()}

	go func() {
		defer em.close()

		body, contentType, err := form.Encode()
		if err != nil {
			em.send(UploadEvent{Type: UploadDone, Err: err})
			return
		}

		total := int64(len(body))
		pr := &progressReader{r: bytes.NewReader(body), total: total, report: func(loaded int64) {
			em.send(UploadEvent{Type: UploadProgress, Loaded: loaded, Total: total})
		}}

		var u models.User
		_, err = c.do(ctx, "update profile image", http.MethodPost, pathUpdateProfileImage, pr, contentType, &u)
		if err != nil {
			em.send(UploadEvent{Type: UploadDone, Err: err, Total: total})
			return
		}
		em.send(UploadEvent{Type: UploadDone, User: &u, Loaded: total, Total: total})
	}()

	return events
}

// emitter serializes sends with close. The transport may still be reading
// the body after the response arrived, so progress can race the final event.
type emitter struct {
	mu     sync.Mutex
	ch     chan UploadEvent
	done   <-chan struct{}
	closed bool
}

func (e *emitter) send(ev UploadEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.ch <- ev:
	case <-e.done:
	}
}

func (e *emitter) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	close(e.ch)
}

type progressReader struct {
	r      io.Reader
	total  int64
	loaded int64
	report func(loaded int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.report(p.loaded)
	}
	return n, err
}

// Len is the number of bytes not yet read; do uses it for Content-Length.
func (p *progressReader) Len() int {
	return int(p.total - p.loaded)
}
