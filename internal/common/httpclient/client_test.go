// internal/common/httpclient/client_test.go
package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRequest(t *testing.T, url string) func() (*http.Request, error) {
	t.Helper()
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	}
}

func fastBackoff(retries int) BackoffConfig {
	return BackoffConfig{
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}
}

func TestDoSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := New("test", time.Second, fastBackoff(2))
	resp, err := client.Do(context.Background(), getRequest(t, ts.URL))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDoRetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := New("test", time.Second, fastBackoff(2))
	resp, err := client.Do(context.Background(), getRequest(t, ts.URL))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoExhaustsRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := New("test", time.Second, fastBackoff(2))
	_, err := client.Do(context.Background(), getRequest(t, ts.URL))
	assert.ErrorIs(t, err, ErrServerError)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoRateLimited(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := New("test", time.Second, fastBackoff(0))
	_, err := client.Do(context.Background(), getRequest(t, ts.URL))
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestDoClientErrorsPassThrough(t *testing.T) {
	// 4xx responses other than 429 are returned to the caller, not retried.
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := New("test", time.Second, fastBackoff(2))
	resp, err := client.Do(context.Background(), getRequest(t, ts.URL))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := New("test", time.Second, fastBackoff(0))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.Do(ctx, getRequest(t, ts.URL))
		require.Error(t, err)
	}

	_, err := client.Do(ctx, getRequest(t, ts.URL))
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New("test", time.Second, fastBackoff(2))
	_, err := client.Do(ctx, getRequest(t, ts.URL))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoffDelayGrowsAndCaps(t *testing.T) {
	cfg := BackoffConfig{InitialInterval: 100 * time.Millisecond, MaxInterval: 300 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, backoffDelay(cfg, 1))
	assert.Equal(t, 200*time.Millisecond, backoffDelay(cfg, 2))
	assert.Equal(t, 300*time.Millisecond, backoffDelay(cfg, 3))
}
