package server

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"skyclust/internal/catalog"
	"skyclust/internal/middleware"
	"skyclust/internal/pipeline"
	"skyclust/internal/report"
)

// ClusterRequest is the body of POST /api/cluster. Zero-value fields
// fall back to the configured region and clustering defaults before
// validation runs.
type ClusterRequest struct {
	RA         string  `json:"ra" validate:"required,ra"`
	Dec        string  `json:"dec" validate:"required,dec"`
	RadiusDeg  float64 `json:"radius_deg" validate:"required,gt=0,lte=90"`
	Eps        float64 `json:"eps" validate:"required,gt=0"`
	MinSamples int     `json:"min_samples" validate:"required,gte=1"`
	MaxResults int     `json:"max_results" validate:"omitempty,gte=1"`
}

// ClusterResponse reports one pipeline run.
type ClusterResponse struct {
	RunID     string                  `json:"run_id"`
	Fetched   int                     `json:"fetched"`
	Dropped   int                     `json:"dropped"`
	Clusters  int                     `json:"clusters"`
	Noise     int                     `json:"noise"`
	ElapsedMS int64                   `json:"elapsed_ms"`
	Summaries []report.ClusterSummary `json:"summaries"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id,omitempty"`
}

func (s *Server) handleCluster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := ClusterRequest{
		RA:         s.cfg.Region.RA,
		Dec:        s.cfg.Region.Dec,
		RadiusDeg:  s.cfg.Region.RadiusDeg,
		Eps:        s.cfg.Cluster.Eps,
		MinSamples: s.cfg.Cluster.MinSamples,
		MaxResults: s.cfg.Region.MaxResults,
	}
	if r.ContentLength != 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			s.renderError(w, r, http.StatusBadRequest, "invalid request body", nil)
			return
		}
	}
	if err := s.validate.Struct(&req); err != nil {
		var details []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				details = append(details, fe.Field()+" failed "+fe.Tag())
			}
		}
		s.renderError(w, r, http.StatusBadRequest, "request validation failed", details)
		return
	}

	ctx, span := s.tracer.Start(ctx, "pipeline.run")
	defer span.End()

	result, err := s.runner.Run(ctx, pipeline.Params{
		Region: catalog.Region{RA: req.RA, Dec: req.Dec, RadiusDeg: req.RadiusDeg},
		Query: catalog.QueryOptions{
			Equinox:    s.cfg.Region.Equinox,
			Table:      s.cfg.Region.Table,
			MaxResults: req.MaxResults,
		},
		Eps:        req.Eps,
		MinSamples: req.MinSamples,
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.runCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "pipeline run failed", "error", err)
		s.renderError(w, r, http.StatusBadGateway, err.Error(), nil)
		return
	}

	s.runDuration.Record(ctx, result.Elapsed.Seconds())
	span.SetAttributes(
		attribute.Int("pipeline.clusters", result.NumClusters),
		attribute.Int("pipeline.noise", result.Noise),
	)

	render.JSON(w, r, ClusterResponse{
		RunID:     middleware.GetReqID(ctx),
		Fetched:   result.Fetched,
		Dropped:   result.Dropped,
		Clusters:  result.NumClusters,
		Noise:     result.Noise,
		ElapsedMS: result.Elapsed.Milliseconds(),
		Summaries: result.Summaries,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":  "ok",
		"service": "clusterd",
	})
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string, details []string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{
		Error:   msg,
		Details: details,
		TraceID: middleware.GetReqID(r.Context()),
	})
}
