package submit

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonhttp "esports-waitlist/internal/common/http"
	"esports-waitlist/internal/common/logger"
)

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	client := NewClient(commonhttp.NewClient(5*time.Second), logger.NewTestLogger(t))
	return NewCoordinator(client)
}

func upstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCoordinator_Outcomes(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		want       Status
		wantMsg    string
		wantStatus int
	}{
		{"success", http.StatusOK, `{"ok":true,"message":"See you at the next open!"}`, StatusSucceeded, "See you at the next open!", 0},
		{"success without message", http.StatusCreated, `{"ok":true}`, StatusSucceeded, "", 0},
		{"ok false with message", http.StatusOK, `{"ok":false,"message":"Already on the list"}`, StatusRejected, "Already on the list", http.StatusOK},
		{"server error with message", http.StatusUnprocessableEntity, `{"ok":false,"message":"Invalid email"}`, StatusRejected, "Invalid email", http.StatusUnprocessableEntity},
		{"server error, html body", http.StatusBadGateway, `<html>bad gateway</html>`, StatusRejected, RejectedFallback, http.StatusBadGateway},
		{"2xx with empty body", http.StatusOK, ``, StatusRejected, RejectedFallback, http.StatusOK},
		{"ok false without message", http.StatusOK, `{"ok":false}`, StatusRejected, RejectedFallback, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := upstream(t, tt.status, tt.body)
			res := newTestCoordinator(t).Submit(context.Background(), "s1", srv.URL, map[string]string{"email": "p@example.com"})

			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, tt.wantMsg, res.Message)
			assert.Equal(t, tt.wantStatus, res.HTTPStatus)
			assert.Equal(t, tt.want == StatusSucceeded, res.Err == nil)
		})
	}
}

func TestCoordinator_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := newTestCoordinator(t).Submit(context.Background(), "s1", url, struct{}{})
	assert.Equal(t, StatusNetworkFailed, res.Status)
	assert.Equal(t, NetworkFailureMessage, res.Message)
}

func TestCoordinator_DeadlineIsNetworkFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	res := newTestCoordinator(t).Submit(ctx, "s1", srv.URL, struct{}{})
	assert.Equal(t, StatusNetworkFailed, res.Status)
}

func TestCoordinator_NewAttemptCancelsPrevious(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	firstArrived := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			_, _ = io.Copy(io.Discard, r.Body)
			close(firstArrived)
			<-r.Context().Done()
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestCoordinator(t)

	firstDone := make(chan Result, 1)
	go func() {
		firstDone <- c.Submit(context.Background(), "session-1", srv.URL, struct{}{})
	}()

	<-firstArrived
	require.True(t, c.InFlight("session-1"))

	second := c.Submit(context.Background(), "session-1", srv.URL, struct{}{})
	first := <-firstDone

	assert.Equal(t, StatusCanceled, first.Status)
	assert.Empty(t, first.Message, "cancellation is silent")
	assert.Equal(t, StatusSucceeded, second.Status)
	assert.False(t, c.InFlight("session-1"))
}

func TestCoordinator_KeysAreIndependent(t *testing.T) {
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		<-release
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestCoordinator(t)
	results := make(chan Result, 2)
	for _, key := range []string{"a", "b"} {
		go func(key string) {
			results <- c.Submit(context.Background(), key, srv.URL, struct{}{})
		}(key)
	}
	<-arrived
	<-arrived
	close(release)

	for i := 0; i < 2; i++ {
		assert.Equal(t, StatusSucceeded, (<-results).Status)
	}
}

func TestCoordinator_CancelAndCancelAll(t *testing.T) {
	arrived := make(chan struct{}, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		arrived <- struct{}{}
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := newTestCoordinator(t)
	results := make(chan Result, 2)
	go func() { results <- c.Submit(context.Background(), "a", srv.URL, struct{}{}) }()
	go func() { results <- c.Submit(context.Background(), "b", srv.URL, struct{}{}) }()
	<-arrived
	<-arrived

	c.Cancel("a")
	assert.Equal(t, StatusCanceled, (<-results).Status)

	c.CancelAll()
	assert.Equal(t, StatusCanceled, (<-results).Status)
	assert.False(t, c.InFlight("b"))
}
