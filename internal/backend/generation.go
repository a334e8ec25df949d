package backend

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// GenerationAdapter talks to the document-generation model server, which
// produces tailored resumes and cover letters.
type GenerationAdapter struct {
	service
}

// NewGenerationAdapter builds the adapter for the generation backend.
func NewGenerationAdapter(baseURL string, timeout time.Duration, log zerolog.Logger) *GenerationAdapter {
	return &GenerationAdapter{service: newService(types.BackendGeneration, baseURL, timeout, log)}
}

// GenerateDocuments produces application documents. The analysis payload from
// the previous stage is forwarded so the server can tailor its output; it may
// be nil when the analysis stage failed.
func (a *GenerationAdapter) GenerateDocuments(ctx context.Context, profile, job, analysis json.RawMessage) types.OpResult {
	in := map[string]json.RawMessage{
		"user_profile": profile,
		"job_data":     job,
	}
	if len(analysis) > 0 {
		in["analysis"] = analysis
	}
	return a.generate(ctx, "document_generation", in)
}
