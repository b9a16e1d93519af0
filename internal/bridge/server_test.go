package bridge

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_HealthEndpoint(t *testing.T) {
	// --- Arrange ---
	srv := NewServer(newTestDispatcher(), ServerOptions{HealthcheckPath: "/healthz"})
	ts := httptest.NewServer(srv.Handler(testContext()))
	defer ts.Close()

	// --- Act ---
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// --- Assert ---
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK\n", string(body))
}

func TestServer_HealthEndpointDisabled(t *testing.T) {
	srv := NewServer(newTestDispatcher(), ServerOptions{})
	ts := httptest.NewServer(srv.Handler(testContext()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_HandlerBindsOnce(t *testing.T) {
	srv := NewServer(newTestDispatcher(), ServerOptions{})

	first := srv.Handler(testContext())
	second := srv.Handler(context.Background())

	assert.Same(t, first.(*http.ServeMux), second.(*http.ServeMux))
}

func TestServer_ShutdownWaitsForInflightRequests(t *testing.T) {
	// --- Arrange ---
	srv := NewServer(newTestDispatcher(), ServerOptions{})
	srv.Handler(testContext())
	srv.inflight.Add(1)
	released := make(chan struct{})
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(released)
		srv.inflight.Done()
	}()

	// --- Act ---
	err := srv.Shutdown(testContext())

	// --- Assert ---
	require.NoError(t, err)
	select {
	case <-released:
	default:
		t.Fatal("Shutdown returned before the in-flight request finished")
	}
}

func TestServer_ShutdownGivesUpAtDeadline(t *testing.T) {
	srv := NewServer(newTestDispatcher(), ServerOptions{})
	srv.Handler(testContext())
	srv.inflight.Add(1)
	defer srv.inflight.Done()

	ctx, cancel := context.WithTimeout(testContext(), 20*time.Millisecond)
	defer cancel()

	err := srv.Shutdown(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "in-flight requests still running")
}

func TestServer_ListenAndServeStopsOnCancel(t *testing.T) {
	srv := NewServer(newTestDispatcher(), ServerOptions{Address: "127.0.0.1:0"})
	ctx, cancel := context.WithTimeout(testContext(), 50*time.Millisecond)
	defer cancel()

	err := srv.ListenAndServe(ctx)

	require.NoError(t, err)
}
