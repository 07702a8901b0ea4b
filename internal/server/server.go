// Package server exposes the clustering pipeline over HTTP for the
// clusterd service, in the transport style of the rest of the module:
// chi routing, render for JSON, validator for request checking, and
// otel instruments scraped via Prometheus.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"skyclust/internal/astro"
	"skyclust/internal/config"
	"skyclust/internal/infrastructure"
	custommw "skyclust/internal/middleware"
	"skyclust/internal/pipeline"
)

// Server wires the pipeline runner into an HTTP API.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	runner   *pipeline.Runner
	validate *validator.Validate

	tracer      trace.Tracer
	runCounter  metric.Int64Counter
	runDuration metric.Float64Histogram
	metricsHTTP http.Handler
}

// New creates the server. telemetry may be nil, in which case the
// global (no-op by default) otel providers are used and /metrics is
// not mounted.
func New(cfg *config.Config, runner *pipeline.Runner, telemetry *infrastructure.OTelProviders, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tracer := otel.Tracer(infrastructure.MeterName)
	meter := otel.Meter(infrastructure.MeterName)
	var metricsHTTP http.Handler
	if telemetry != nil {
		tracer = telemetry.Tracer
		meter = telemetry.Meter
		metricsHTTP = telemetry.PrometheusHTTP
	}

	runCounter, err := meter.Int64Counter("skyclust.pipeline.runs",
		metric.WithDescription("Completed pipeline runs by outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create run counter: %w", err)
	}
	runDuration, err := meter.Float64Histogram("skyclust.pipeline.duration",
		metric.WithDescription("Pipeline run duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	s := &Server{
		cfg:         cfg,
		logger:      logger,
		runner:      runner,
		validate:    newValidator(),
		tracer:      tracer,
		runCounter:  runCounter,
		runDuration: runDuration,
		metricsHTTP: metricsHTTP,
	}
	return s, nil
}

// newValidator registers the coordinate-format validations on top of
// the standard tag set.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("ra", func(fl validator.FieldLevel) bool {
		_, err := astro.ParseRA(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("dec", func(fl validator.FieldLevel) bool {
		_, err := astro.ParseDec(fl.Field().String())
		return err == nil
	})
	return v
}

// Router builds the HTTP routing tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(s.logger))
	r.Use(custommw.Recoverer(s.logger))

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/health", s.handleHealth)
		r.Post("/cluster", s.handleCluster)
	})

	if s.metricsHTTP != nil {
		r.Method(http.MethodGet, "/metrics", s.metricsHTTP)
	}
	return r
}
