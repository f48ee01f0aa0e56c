package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestClient_PostJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(testLogger())
	data, err := c.PostJSON(context.Background(), srv.URL, []byte(`{}`), nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
}

func TestClient_RetriesOn500(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c := New(testLogger(), WithMaxRetries(3), WithBaseDelay(time.Millisecond))
	data, err := c.GetJSON(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, "recovered", string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(testLogger(), WithMaxRetries(1), WithBaseDelay(time.Millisecond))
	_, err := c.GetJSON(context.Background(), srv.URL, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestClient_NoRetryOn400(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(testLogger(), WithMaxRetries(3), WithBaseDelay(time.Millisecond))
	_, err := c.GetJSON(context.Background(), srv.URL, nil)

	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(testLogger(), WithMaxRetries(5), WithBaseDelay(time.Second))
	_, err := c.GetJSON(ctx, srv.URL, nil)

	assert.Error(t, err)
}
