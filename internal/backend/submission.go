package backend

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// SubmissionAdapter talks to the form-handling model server. It serves two
// pipeline stages: application submission and follow-up planning.
type SubmissionAdapter struct {
	service
}

// NewSubmissionAdapter builds the adapter for the submission backend.
func NewSubmissionAdapter(baseURL string, timeout time.Duration, log zerolog.Logger) *SubmissionAdapter {
	return &SubmissionAdapter{service: newService(types.BackendSubmission, baseURL, timeout, log)}
}

// SubmitApplication drives the application portal workflow with the generated
// documents. Documents may be nil when the generation stage failed.
func (a *SubmissionAdapter) SubmitApplication(ctx context.Context, profile, job, documents json.RawMessage) types.OpResult {
	in := map[string]json.RawMessage{
		"user_profile": profile,
		"job_data":     job,
	}
	if len(documents) > 0 {
		in["documents"] = documents
	}
	return a.generate(ctx, "application_submission", in)
}

// PlanFollowup produces a follow-up strategy from the submission outcome.
func (a *SubmissionAdapter) PlanFollowup(ctx context.Context, submission, job json.RawMessage) types.OpResult {
	in := map[string]json.RawMessage{
		"job_data": job,
	}
	if len(submission) > 0 {
		in["submission"] = submission
	}
	return a.generate(ctx, "followup_planning", in)
}
