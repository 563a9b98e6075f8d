// Package server exposes the calculation engine over a stateless JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/nestegg/internal/calculation"
	"github.com/rpgo/nestegg/internal/config"
	"github.com/valyala/fasthttp"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Server routes HTTP requests to the engine. It keeps no per-request state.
type Server struct {
	Engine *calculation.CalculationEngine
	Parser *config.InputParser
	Config config.ServerConfig
	Logger calculation.Logger
}

// New creates a server over engine. A nil logger discards output.
func New(engine *calculation.CalculationEngine, cfg config.ServerConfig, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	parser := config.NewInputParser()
	parser.Logger = logger
	return &Server{
		Engine: engine,
		Parser: parser,
		Config: cfg,
		Logger: logger,
	}
}

type route struct {
	method  string
	handler fasthttp.RequestHandler
}

func (s *Server) routes() map[string]route {
	return map[string]route{
		"/healthz":       {fasthttp.MethodGet, s.handleHealth},
		"/v1/summary":    {fasthttp.MethodPost, s.handleSummary},
		"/v1/timeline":   {fasthttp.MethodPost, s.handleTimeline},
		"/v1/report":     {fasthttp.MethodPost, s.handleReport},
		"/v1/projection": {fasthttp.MethodPost, s.handleProjection},
		"/v1/tax":        {fasthttp.MethodPost, s.handleTax},
		"/v1/limits":     {fasthttp.MethodGet, s.handleLimits},
		"/v1/claim-ages": {fasthttp.MethodGet, s.handleClaimAges},
	}
}

// Handler returns the root request handler: request IDs, body limits, routing and access logging.
func (s *Server) Handler() fasthttp.RequestHandler {
	routes := s.routes()
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		requestID := string(ctx.Request.Header.Peek(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Response.Header.Set(RequestIDHeader, requestID)

		path := string(ctx.Path())
		r, ok := routes[path]
		switch {
		case !ok:
			writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("no route for %s", path))
		case string(ctx.Method()) != r.method:
			ctx.Response.Header.Set(fasthttp.HeaderAllow, r.method)
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		case s.Config.MaxBodyBytes > 0 && len(ctx.PostBody()) > s.Config.MaxBodyBytes:
			writeError(ctx, fasthttp.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", s.Config.MaxBodyBytes))
		default:
			r.handler(ctx)
		}

		status := ctx.Response.StatusCode()
		if status >= fasthttp.StatusInternalServerError {
			s.Logger.Errorf("%s %s %d %s id=%s", ctx.Method(), path, status, time.Since(start), requestID)
			return
		}
		s.Logger.Infof("%s %s %d %s id=%s", ctx.Method(), path, status, time.Since(start), requestID)
	}
}

// ListenAndServe serves on Config.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "nestegg",
		ReadTimeout:        s.Config.ReadTimeout,
		WriteTimeout:       s.Config.WriteTimeout,
		MaxRequestBodySize: s.Config.MaxBodyBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Infof("listening on %s", s.Config.Addr)
		errCh <- srv.ListenAndServe(s.Config.Addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve %s: %w", s.Config.Addr, err)
	case <-ctx.Done():
		s.Logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
