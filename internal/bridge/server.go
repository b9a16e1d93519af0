package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vk/kunyue/internal/ctxlog"
	"github.com/vk/kunyue/internal/reveal"
	"github.com/zishang520/socket.io/v2/socket"
)

const shutdownGrace = 5 * time.Second

// ServerOptions configures a Server.
type ServerOptions struct {
	// Address is the listen address, e.g. ":3000".
	Address string
	// HealthcheckPath serves a plain "OK". Empty disables it.
	HealthcheckPath string
	// Player narrates each request through reveal events before its
	// response. Nil disables the events; responses carry the steps either way.
	Player *reveal.Player
}

// Server serves a Dispatcher over socket.io.
type Server struct {
	dispatcher *Dispatcher
	opts       ServerOptions
	io         *socket.Server
	httpServer *http.Server

	bindOnce sync.Once
	inflight sync.WaitGroup
}

// NewServer creates a Server. Nothing is served until Handler or
// ListenAndServe is called.
func NewServer(dispatcher *Dispatcher, opts ServerOptions) *Server {
	return &Server{
		dispatcher: dispatcher,
		opts:       opts,
		io:         socket.NewServer(nil, nil),
		httpServer: &http.Server{Addr: opts.Address},
	}
}

// Handler returns the HTTP handler serving both the socket and the health
// endpoint. ctx carries the logger and bounds in-flight requests; only the
// first call binds it.
func (s *Server) Handler(ctx context.Context) http.Handler {
	s.bindOnce.Do(func() {
		logger := ctxlog.FromContext(ctx).With("component", "bridge")
		s.io.On("connection", func(clients ...any) {
			s.onConnection(ctx, logger, clients...)
		})

		mux := http.NewServeMux()
		mux.Handle("/socket.io/", s.io.ServeHandler(nil))
		if s.opts.HealthcheckPath != "" {
			mux.HandleFunc(s.opts.HealthcheckPath, func(w http.ResponseWriter, r *http.Request) {
				logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				fmt.Fprintln(w, "OK")
			})
		}
		s.httpServer.Handler = mux
	})
	return s.httpServer.Handler
}

// ListenAndServe blocks until ctx is cancelled or the listener fails. A
// cancelled ctx triggers a graceful shutdown and a nil return.
func (s *Server) ListenAndServe(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	s.Handler(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Bridge server starting.", "address", s.opts.Address, "health", s.opts.HealthcheckPath)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("bridge server failed: %w", err)
	}
}

// Shutdown stops accepting connections, waits for in-flight HTTP requests
// and socket requests until ctx expires, then closes every socket.
func (s *Server) Shutdown(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Shutting down bridge server...")

	err := s.httpServer.Shutdown(ctx)

	drained := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		err = errors.Join(err, fmt.Errorf("in-flight requests still running: %w", ctx.Err()))
	}

	s.io.Close(nil)
	if err != nil {
		logger.Error("Bridge server shutdown failed.", "error", err)
		return err
	}
	logger.Debug("Bridge server shut down gracefully.")
	return nil
}

func (s *Server) onConnection(ctx context.Context, logger *slog.Logger, clients ...any) {
	if len(clients) == 0 {
		return
	}
	client, ok := clients[0].(*socket.Socket)
	if !ok {
		logger.Warn("Unexpected connection payload.", "type", fmt.Sprintf("%T", clients[0]))
		return
	}
	logger = logger.With("sid", string(client.Id()))
	logger.Debug("Client connected.")

	client.On(EventRequest, func(args ...any) {
		s.onRequest(ctx, logger, client, args...)
	})
	client.On("disconnect", func(reason ...any) {
		logger.Debug("Client disconnected.", "reason", reason)
	})
}

func (s *Server) onRequest(ctx context.Context, logger *slog.Logger, client *socket.Socket, args ...any) {
	var payload any
	if len(args) > 0 {
		payload = args[0]
	}
	req, err := DecodeRequest(payload)
	if err != nil {
		logger.Debug("Discarding undecodable request.", "error", err)
		s.emit(logger, client, EventResponse, Response{Status: StatusInvalid, Text: err.Error()})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	logger = logger.With("id", req.ID)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.serve(ctxlog.WithLogger(ctx, logger), logger, client, req)
	}()
}

// serve narrates req, if enabled, then answers it. A narration cut short by
// shutdown leaves the request unanswered and the registry untouched.
func (s *Server) serve(ctx context.Context, logger *slog.Logger, client *socket.Socket, req Request) {
	var resp Response
	var steps []string
	if req.Validate() == nil {
		steps = s.dispatcher.Steps(req)
	}

	_, err := reveal.Reveal(ctx, s.opts.Player, steps, func(i int, line string) {
		s.emit(logger, client, EventReveal, RevealLine{ID: req.ID, Index: i, Line: line})
	}, func() string {
		resp = s.dispatcher.Handle(ctx, req)
		return resp.Text
	})
	if err != nil {
		logger.Debug("Request abandoned.", "error", err)
		return
	}
	resp.Steps = steps
	s.emit(logger, client, EventResponse, resp)
}

func (s *Server) emit(logger *slog.Logger, client *socket.Socket, event string, v any) {
	payload, err := toPayload(v)
	if err != nil {
		logger.Error("Failed to encode payload.", "event", event, "error", err)
		return
	}
	if err := client.Emit(event, payload); err != nil {
		logger.Debug("Emit failed.", "event", event, "error", err)
	}
}
