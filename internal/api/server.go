// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the verification service.
package api

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"time"
	"verifier/internal/api/handler/v1handler"
	"verifier/internal/config"
	"verifier/pkg/controller"
	"verifier/pkg/logger"
	"verifier/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	"go.uber.org/zap/exp/zapslog"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// AuthSecret is the HMAC secret bearer tokens on verify routes are checked against.
	AuthSecret string
	// RateLimitRPS is the sustained per-client request rate on verify routes.
	RateLimitRPS float64
	// RateLimitBurst is the per-client burst allowance on top of RateLimitRPS.
	RateLimitBurst int

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		AuthSecret:     cfg.Auth.Secret,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

type Deps struct {
	v1handler.Deps
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - v1 API routes with bearer auth and per-client rate limiting
// - pprof endpoints for profiling
// It also wraps the router with CORS, security header, recovery and logging
// middlewares and applies a request timeout.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	if opts.AuthSecret == "" {
		return nil, serrors.With(serrors.ErrInternal, "auth secret is not configured")
	}

	h := v1handler.New(deps.Deps)

	r := chi.NewRouter()

	// prometheus metrics server
	r.Handle(opts.MetricsPath, promhttp.Handler())

	// v1 specs file
	r.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})

	// v1 api
	r.Route("/v1", func(r chi.Router) {
		// swagger playground
		r.Mount("/docs", v5emb.New(
			"Email Verification Service",
			"/specs/v1.yaml",
			"/v1/docs/",
		))

		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			r.Use(controller.WithRateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
			r.Use(v1handler.WithAuth(opts.AuthSecret))
			r.Post("/verify", h.Verify)
			r.Post("/verify/batch", h.VerifyBatch)
		})
	})

	// pprof
	r.Mount("/debug/pprof", controller.PprofMux())

	// cors
	handler := controller.WithCORS(r)

	// security headers
	handler = controller.WithSecurityHeaders(handler)

	// recovery
	handler = controller.WithRecovery(handler)

	// logger
	handler = controller.WithLogger(handler)

	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout, `{"error_message":"request timed out"}`)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ErrorLog:          slog.NewLogLogger(zapslog.NewHandler(logger.Get(context.Background()).Core()), slog.LevelError),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
