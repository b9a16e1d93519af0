package remote

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vk/kunyue/internal/bridge"
	"github.com/vk/kunyue/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultTimeout bounds a whole round trip, narration included.
const DefaultTimeout = 30 * time.Second

// ErrTimeout is returned when no response arrives in time.
var ErrTimeout = errors.New("timed out waiting for bridge response")

// Client sends requests to a bridge server.
type Client struct {
	// URL of the server, e.g. "http://localhost:3000". A path component
	// overrides the default "/socket.io/" endpoint.
	URL string
	// Timeout for one request. Zero means DefaultTimeout.
	Timeout            time.Duration
	InsecureSkipVerify bool
	// OnReveal, when set, receives the narration lines of the request in
	// order, replayed from the response before Do returns.
	OnReveal func(index int, line string)
}

type result struct {
	resp bridge.Response
	err  error
}

// Do connects, sends req and waits for the response carrying req's ID. An
// empty ID is filled in.
func (c *Client) Do(ctx context.Context, req bridge.Request) (bridge.Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	logger := ctxlog.FromContext(ctx).With("component", "remote", "url", c.URL, "id", req.ID)
	logger.Debug("Remote request started.", "op", string(req.Op))
	defer logger.Debug("Remote request finished.")

	baseURL, path, err := splitURL(c.URL)
	if err != nil {
		return bridge.Response{}, err
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := socket.DefaultOptions()
	opts.SetPath(path)
	if c.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	var connected atomic.Bool
	done := make(chan result, 1)
	finish := func(r result) {
		select {
		case done <- r:
		default:
		}
	}

	io.On(types.EventName("connect"), func(...any) {
		connected.Store(true)
		logger.Debug("Connected to bridge.", "sid", io.Id())
		payload := map[string]any{"id": req.ID, "op": string(req.Op), "text": req.Text, "key": req.Key}
		if err := io.Emit(bridge.EventRequest, payload); err != nil {
			finish(result{err: fmt.Errorf("failed to emit request: %w", err)})
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connection refused")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		finish(result{err: fmt.Errorf("failed to connect to %s: %w", c.URL, err)})
	})

	io.On(types.EventName(bridge.EventResponse), func(data ...any) {
		var payload any
		if len(data) > 0 {
			payload = data[0]
		}
		resp, err := bridge.DecodeResponse(payload)
		if err != nil {
			finish(result{err: err})
			return
		}
		if resp.ID != req.ID {
			logger.Debug("Ignoring response for another request.", "other_id", resp.ID)
			return
		}
		finish(result{resp: resp})
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if ctx.Err() != nil {
			return bridge.Response{}, ctx.Err()
		}
		if connected.Load() {
			return bridge.Response{}, fmt.Errorf("%w after connecting", ErrTimeout)
		}
		return bridge.Response{}, fmt.Errorf("%w: no connection to %s", ErrTimeout, c.URL)
	case res := <-done:
		if res.err != nil {
			return bridge.Response{}, res.err
		}
		if c.OnReveal != nil {
			for i, line := range res.resp.Steps {
				c.OnReveal(i, line)
			}
		}
		return res.resp, nil
	}
}

// splitURL separates the socket endpoint path from the server address.
func splitURL(raw string) (baseURL, path string, err error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", "", fmt.Errorf("invalid remote URL %q: scheme and host are required", raw)
	}
	path = parsed.Path
	if strings.Trim(path, "/") == "" {
		path = "/socket.io/"
	}
	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host), path, nil
}
