// Package httpapi exposes the daemon's HTTP surface: the workflow endpoint,
// orchestrator status, resource usage, health probes, and metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nitanshu99/job-application-agent-sub000/internal/sysinfo"
	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// WorkflowRunner executes one pipeline run and returns the full envelope.
type WorkflowRunner interface {
	Run(ctx context.Context, req types.WorkflowRequest) types.WorkflowResult
}

// StatusReporter reports orchestrator slot state and backend health.
type StatusReporter interface {
	Status(ctx context.Context) types.StatusResponse
}

// NewMux builds the router over the workflow executor, the orchestrator, and
// the resource sampler.
func NewMux(wf WorkflowRunner, status StatusReporter, sampler sysinfo.Sampler) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(requestLogger)
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, req)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/workflows", runWorkflow(wf))
		r.Get("/status", getStatus(status))
		r.Get("/resources", getResources(sampler))
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Backends load on demand, so the daemon is ready as soon as it serves.
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// runWorkflow godoc
// @Summary      Run the job-application pipeline
// @Description  Executes analysis, generation, submission, and follow-up for one job/user pair and returns the complete envelope.
// @Accept       json
// @Produce      json
// @Param        request body types.WorkflowRequest true "profile and job payloads"
// @Success      200 {object} types.WorkflowResult
// @Failure      400 {object} types.ErrorResponse
// @Router       /api/v1/workflows [post]
func runWorkflow(wf WorkflowRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.WorkflowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if len(req.UserProfile) == 0 || len(req.JobData) == 0 {
			writeJSONError(w, http.StatusBadRequest, "user_profile and job_data are required")
			return
		}

		ctx, cancel := runContext(r)
		defer cancel()

		result := wf.Run(ctx, req)
		writeJSON(w, http.StatusOK, result)
	}
}

// getStatus godoc
// @Summary      Orchestrator status
// @Description  Per-backend slot status plus all_healthy from fresh health checks of resident backends.
// @Produce      json
// @Success      200 {object} types.StatusResponse
// @Router       /api/v1/status [get]
func getStatus(status StatusReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, status.Status(r.Context()))
	}
}

// getResources godoc
// @Summary      Host resource usage
// @Produce      json
// @Success      200 {object} types.ResourcesResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/resources [get]
func getResources(sampler sysinfo.Sampler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sample, err := sampler.Sample(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.ResourcesResponse{
			MemoryTotalGB:     round2(sample.TotalGB()),
			MemoryUsedGB:      round2(sample.UsedGB()),
			MemoryAvailableGB: round2(sample.AvailableGB()),
			CPUPercent:        round2(sample.CPUPercent),
			SampledAt:         sample.SampledAt,
		})
	}
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
