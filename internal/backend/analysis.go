package backend

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// AnalysisAdapter talks to the compatibility-analysis model server: job
// parsing, relevance scoring, and skills-gap assessment.
type AnalysisAdapter struct {
	service
}

// NewAnalysisAdapter builds the adapter for the analysis backend.
func NewAnalysisAdapter(baseURL string, timeout time.Duration, log zerolog.Logger) *AnalysisAdapter {
	return &AnalysisAdapter{service: newService(types.BackendAnalysis, baseURL, timeout, log)}
}

// Analyze scores the fit between a user profile and a job posting.
func (a *AnalysisAdapter) Analyze(ctx context.Context, profile, job json.RawMessage) types.OpResult {
	return a.generate(ctx, "job_analysis", map[string]json.RawMessage{
		"user_profile": profile,
		"job_data":     job,
	})
}
