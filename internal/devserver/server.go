// Package devserver is a local GraphQL server that serves the phonebook
// schema. It exists for development and end-to-end tests of the client.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"phonebook/internal/logging"
	"phonebook/internal/store"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures a Server.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server wires the GraphQL handler, metrics and health routes onto echo.
type Server struct {
	echo    *echo.Echo
	store   store.Store
	metrics *metrics
}

// New builds a server over st. The caller keeps ownership of st.
func New(st store.Store, opts Options) (*Server, error) {
	m := newMetrics()

	schema, err := graphql.ParseSchema(Schema, &resolver{store: st, metrics: m})
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = echo.ExtractIPDirect()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(m.middleware)
	e.Use(requestLogger)

	limiter := newClientLimiter(opts.RateLimitRPS, opts.RateLimitBurst)

	e.POST("/graphql", echo.WrapHandler(&relay.Handler{Schema: schema}), limiter.middleware(m))
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})))

	return &Server{echo: e, store: st, metrics: m}, nil
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown. It returns nil after a clean shutdown.
func (s *Server) Start(addr string) error {
	logging.Server("listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Server("shutting down")
	return s.echo.Shutdown(ctx)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		res := c.Response()
		logging.Get(logging.CategoryServer).With(
			"request_id", res.Header().Get(echo.HeaderXRequestID),
			"remote_ip", c.RealIP(),
		).Debug("%s %s -> %d in %v", c.Request().Method, c.Request().URL.Path, res.Status, time.Since(start))
		return err
	}
}
