package submit

import (
	"context"
	"sync"

	"esports-waitlist/internal/common/errors"
	"esports-waitlist/internal/models"
)

type Status string

const (
	StatusSucceeded     Status = "succeeded"
	StatusCanceled      Status = "canceled"
	StatusNetworkFailed Status = "network_failed"
	StatusRejected      Status = "rejected"
)

const (
	NetworkFailureMessage = "We couldn't reach the server. Check your connection and try again."
	RejectedFallback      = "Something went wrong submitting your form. Please try again."
)

// Result is the user-facing outcome of one submission attempt. Canceled
// results carry no message.
type Result struct {
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (r Result) Succeeded() bool { return r.Status == StatusSucceeded }

type poster interface {
	Post(ctx context.Context, url string, body interface{}) (*models.APIResponse, error)
}

type attempt struct {
	cancel context.CancelFunc
}

// Coordinator owns one cancel handle per key. Starting a submission for a
// key cancels whatever was in flight for it; the handle is replaced, never
// shared.
type Coordinator struct {
	client poster

	mu       sync.Mutex
	inflight map[string]*attempt
}

func NewCoordinator(client *Client) *Coordinator {
	return newCoordinator(client)
}

func newCoordinator(p poster) *Coordinator {
	return &Coordinator{client: p, inflight: make(map[string]*attempt)}
}

// Submit posts body to url on behalf of key. There are no retries.
func (c *Coordinator) Submit(ctx context.Context, key, url string, body interface{}) Result {
	attemptCtx, cancel := context.WithCancel(ctx)
	a := &attempt{cancel: cancel}

	c.mu.Lock()
	if prev, ok := c.inflight[key]; ok {
		prev.cancel()
	}
	c.inflight[key] = a
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.inflight[key] == a {
			delete(c.inflight, key)
		}
		c.mu.Unlock()
		cancel()
	}()

	resp, err := c.client.Post(attemptCtx, url, body)
	return classify(resp, err)
}

// Cancel aborts the in-flight submission for key, if any.
func (c *Coordinator) Cancel(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.inflight[key]; ok {
		a.cancel()
		delete(c.inflight, key)
	}
}

// InFlight reports whether key has a submission running.
func (c *Coordinator) InFlight(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[key]
	return ok
}

// CancelAll aborts every in-flight submission; used on shutdown.
func (c *Coordinator) CancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, a := range c.inflight {
		a.cancel()
		delete(c.inflight, key)
	}
}

func classify(resp *models.APIResponse, err error) Result {
	if err == nil {
		r := Result{Status: StatusSucceeded}
		if resp != nil {
			r.Message = resp.Message
		}
		return r
	}

	stdErr := errors.Normalize(err)
	switch stdErr.Code {
	case errors.ErrCodeSubmissionCanceled:
		return Result{Status: StatusCanceled, Err: stdErr}
	case errors.ErrCodeSubmissionRejected:
		r := Result{Status: StatusRejected, Message: RejectedFallback, Err: stdErr}
		if resp != nil && resp.Message != "" {
			r.Message = resp.Message
		}
		if status, ok := stdErr.Metadata["status"].(int); ok {
			r.HTTPStatus = status
		}
		return r
	default:
		return Result{Status: StatusNetworkFailed, Message: NetworkFailureMessage, Err: stdErr}
	}
}
