// Package server publishes the timer settings resource (config.json) that
// timer clients load at startup.
//
// Routes: /config.json, the index page (/, /index, /index.html), /healthz
// and /metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/metrics"
	log "github.com/echocat/slf4g"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type Options struct {
	Host            string
	Port            int
	SpeedMultiplier float64
}

type Server struct {
	echo *echo.Echo
	opts Options
}

func NewServer(opts Options) *Server {
	opts.SpeedMultiplier = config.NormalizeSpeed(opts.SpeedMultiplier)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger())

	srv := &Server{
		echo: e,
		opts: opts,
	}
	srv.registerRoutes()
	metrics.SpeedMultiplier.Set(opts.SpeedMultiplier)
	return srv
}

// Handler exposes the routes without a listener.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Listen binds host:port. When the port is taken it falls back to any free
// port on the same host.
func (s *Server) Listen() (net.Listener, error) {
	addr := net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
	ln, err := net.Listen("tcp", addr)
	if err == nil {
		return ln, nil
	}
	log.WithError(err).
		With("address", addr).
		Warn("Port unavailable, falling back to a free port.")

	ln, fallbackErr := net.Listen("tcp", net.JoinHostPort(s.opts.Host, "0"))
	if fallbackErr != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, errors.Join(err, fallbackErr))
	}
	return ln, nil
}

// Serve runs the server on ln until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	log.With("address", ln.Addr().String()).
		With("speedMultiplier", s.opts.SpeedMultiplier).
		Info("Serving timer settings.")
	go func() {
		serveErr <- httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info("Settings server stopped.")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Run listens (with port fallback) and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// requestLogger logs client IP, method, path and status of every request
// and feeds the request metrics.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRemoteIP:  true,
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			route := v.RoutePath
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(v.Status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(route).Observe(v.Latency.Seconds())
			log.With("client", v.RemoteIP).
				With("method", v.Method).
				With("path", v.URIPath).
				With("status", v.Status).
				Info("Request handled.")
			return nil
		},
	})
}
