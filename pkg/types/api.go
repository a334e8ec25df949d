package types

import (
	"encoding/json"
	"time"
)

// WorkflowRequest starts one pipeline run. Profile and job payloads are
// opaque to the orchestrator; they are forwarded to the adapters as-is.
type WorkflowRequest struct {
	// User's professional profile, forwarded verbatim to the backends.
	UserProfile json.RawMessage `json:"user_profile"`
	// Job posting data, forwarded verbatim to the backends.
	JobData json.RawMessage `json:"job_data"`
}

// Run status values for a workflow envelope.
const (
	RunInProgress = "in_progress"
	RunCompleted  = "completed"
	RunFailed     = "failed"
)

// Stage status values inside a workflow envelope.
const (
	StageCompleted = "completed"
	StageFailed    = "failed"
)

// StageResult records the outcome of one pipeline stage.
type StageResult struct {
	// completed or failed.
	// example: completed
	Status string `json:"status" example:"completed"`
	// Backend response payload when the stage succeeded.
	Payload json.RawMessage `json:"payload,omitempty"`
	// Error message when the stage failed.
	Error string `json:"error,omitempty"`
	// Backend that served the stage.
	// example: analysis
	Backend BackendID `json:"backend"`
	// Completion time of the stage attempt.
	CompletedAt time.Time `json:"completed_at"`
}

// WorkflowResult is the complete envelope returned once every stage has been
// attempted. There is no partial or streaming form.
type WorkflowResult struct {
	// Unique id of this run.
	// example: 7a1d4c0e-9f2b-4a31-b6c7-1f07e8a2d9f0
	RunID       string                `json:"run_id" example:"7a1d4c0e-9f2b-4a31-b6c7-1f07e8a2d9f0"`
	StartedAt   time.Time             `json:"started_at"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
	// in_progress, completed, or failed.
	// example: completed
	Status string                `json:"status" example:"completed"`
	Stages map[Stage]StageResult `json:"stages"`
}

// BackendStatus summarizes one slot for GET /api/v1/status.
type BackendStatus struct {
	// Current lifecycle state (unloaded, loading, ready, busy, error, unloading).
	// example: ready
	Status string `json:"status" example:"ready"`
	// Last time this backend completed an operation (unix seconds, 0 when unset).
	// example: 1700000000
	LastUsedUnix int64 `json:"last_used_unix,omitempty" example:"1700000000"`
}

// StatusResponse is returned by GET /api/v1/status.
type StatusResponse struct {
	Backends map[BackendID]BackendStatus `json:"backends"`
	// True when a fresh health check passed for every READY backend.
	// example: true
	AllHealthy bool `json:"all_healthy" example:"true"`
	// Number of backends currently resident.
	// example: 1
	ReadyCount int `json:"ready_count" example:"1"`
	// Maximum backends allowed resident simultaneously.
	// example: 2
	ConcurrentLimit int `json:"concurrent_limit" example:"2"`
	// Memory ceiling for resident models, in GB.
	// example: 6.0
	MemoryThresholdGB float64   `json:"memory_threshold_gb" example:"6.0"`
	CheckedAt         time.Time `json:"checked_at"`
}

// ResourcesResponse is returned by GET /api/v1/resources.
type ResourcesResponse struct {
	// Total host memory in GB.
	// example: 8.0
	MemoryTotalGB float64 `json:"memory_total_gb" example:"8.0"`
	// Used host memory in GB.
	// example: 4.2
	MemoryUsedGB float64 `json:"memory_used_gb" example:"4.2"`
	// Available host memory in GB.
	// example: 3.8
	MemoryAvailableGB float64 `json:"memory_available_gb" example:"3.8"`
	// CPU utilization percentage.
	// example: 37.5
	CPUPercent float64   `json:"cpu_percent" example:"37.5"`
	SampledAt  time.Time `json:"sampled_at"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
