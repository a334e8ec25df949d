// Package workflow runs the four-stage job-application pipeline for one
// job/user pair, driving the orchestrator to load and unload the backend each
// stage needs.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Nitanshu99/job-application-agent-sub000/internal/orchestrator"
	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// Analyzer scores job/profile compatibility (analysis backend).
type Analyzer interface {
	Analyze(ctx context.Context, profile, job json.RawMessage) types.OpResult
}

// DocumentGenerator produces application documents (generation backend).
type DocumentGenerator interface {
	GenerateDocuments(ctx context.Context, profile, job, analysis json.RawMessage) types.OpResult
}

// Submitter drives portal submission and follow-up planning (submission
// backend, shared by both stages).
type Submitter interface {
	SubmitApplication(ctx context.Context, profile, job, documents json.RawMessage) types.OpResult
	PlanFollowup(ctx context.Context, submission, job json.RawMessage) types.OpResult
}

// Executor owns the pipeline. Stages execute strictly in order within one
// run; a failed stage is recorded and the run moves on to the next stage
// regardless. Later stages then run without the failed stage's output, which
// mirrors the long-standing pipeline behavior; see DESIGN.md before changing
// it to fail fast.
type Executor struct {
	orch       *orchestrator.Orchestrator
	analysis   Analyzer
	generation DocumentGenerator
	submission Submitter
	log        zerolog.Logger
}

// New constructs the pipeline executor.
func New(orch *orchestrator.Orchestrator, analysis Analyzer, generation DocumentGenerator, submission Submitter, log zerolog.Logger) *Executor {
	return &Executor{
		orch:       orch,
		analysis:   analysis,
		generation: generation,
		submission: submission,
		log:        log.With().Str("component", "workflow").Logger(),
	}
}

// Run executes analysis, generation, submission, and follow-up in that order
// and returns the complete envelope once all four stages have been attempted.
// The run only fails as a whole when a panic escapes stage execution; stage
// failures are captured per stage.
func (e *Executor) Run(ctx context.Context, req types.WorkflowRequest) (result types.WorkflowResult) {
	result = types.WorkflowResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Status:    types.RunInProgress,
		Stages:    make(map[types.Stage]types.StageResult, len(types.PipelineStages)),
	}
	log := e.log.With().Str("run_id", result.RunID).Logger()
	log.Info().Msg("workflow started")

	defer func() {
		if r := recover(); r != nil {
			result.Status = types.RunFailed
			log.Error().Interface("panic", r).Msg("workflow aborted")
		} else {
			result.Status = types.RunCompleted
			log.Info().Msg("workflow completed")
		}
		done := time.Now().UTC()
		result.CompletedAt = &done
	}()

	analysis := e.runStage(ctx, &result, types.StageAnalysis, "", func(ctx context.Context) types.OpResult {
		return e.analysis.Analyze(ctx, req.UserProfile, req.JobData)
	})

	documents := e.runStage(ctx, &result, types.StageGeneration, types.BackendAnalysis, func(ctx context.Context) types.OpResult {
		return e.generation.GenerateDocuments(ctx, req.UserProfile, req.JobData, analysis)
	})

	submission := e.runStage(ctx, &result, types.StageSubmission, types.BackendGeneration, func(ctx context.Context) types.OpResult {
		return e.submission.SubmitApplication(ctx, req.UserProfile, req.JobData, documents)
	})

	// The submission backend stays resident through follow-up.
	e.runStage(ctx, &result, types.StageFollowUp, "", func(ctx context.Context) types.OpResult {
		return e.submission.PlanFollowup(ctx, submission, req.JobData)
	})

	return result
}

// runStage loads the stage's backend, unloads the backend the pipeline no
// longer needs, and invokes the domain operation inside a busy bracket. It
// records the stage result and returns the payload for the next stage (nil on
// failure).
func (e *Executor) runStage(ctx context.Context, run *types.WorkflowResult, stage types.Stage, unloadPrev types.BackendID, op func(context.Context) types.OpResult) json.RawMessage {
	be := stage.Backend()
	ensureErr := e.orch.EnsureLoaded(ctx, be)

	// The previous stage's backend is done for this run; release it before
	// doing any work. Loads happen before unloads at each transition.
	if unloadPrev != "" {
		if err := e.orch.Unload(ctx, unloadPrev); err != nil {
			e.log.Warn().Err(err).Str("backend", string(unloadPrev)).Msg("unload failed")
		}
	}

	if ensureErr != nil {
		e.log.Warn().Err(ensureErr).Str("stage", string(stage)).Msg("stage backend unavailable")
		run.Stages[stage] = types.StageResult{
			Status:      types.StageFailed,
			Error:       ensureErr.Error(),
			Backend:     be,
			CompletedAt: time.Now().UTC(),
		}
		return nil
	}

	// The bracket must close even when the operation panics; a slot stuck in
	// busy is invisible to eviction and the reaper.
	var res types.OpResult
	e.orch.BeginOp(be)
	defer func() { e.orch.EndOp(be, res.Success) }()
	res = op(ctx)

	if !res.Success {
		errMsg := res.Error
		if errMsg == "" {
			errMsg = fmt.Sprintf("stage %s failed", stage)
		}
		e.log.Warn().Str("stage", string(stage)).Str("error", errMsg).Msg("stage failed")
		run.Stages[stage] = types.StageResult{
			Status:      types.StageFailed,
			Error:       errMsg,
			Backend:     be,
			CompletedAt: time.Now().UTC(),
		}
		return nil
	}

	run.Stages[stage] = types.StageResult{
		Status:      types.StageCompleted,
		Payload:     res.Payload,
		Backend:     be,
		CompletedAt: time.Now().UTC(),
	}
	return res.Payload
}
