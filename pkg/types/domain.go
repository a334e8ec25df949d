package types

import (
	"encoding/json"
	"time"
)

// BackendID identifies one of the three model backends. The set is closed:
// every slot, adapter, and pipeline stage maps onto exactly these values.
type BackendID string

const (
	BackendAnalysis   BackendID = "analysis"
	BackendGeneration BackendID = "generation"
	BackendSubmission BackendID = "submission"
)

// AllBackends is the fixed backend set, in pipeline order.
var AllBackends = [3]BackendID{BackendAnalysis, BackendGeneration, BackendSubmission}

// Valid reports whether b is a known backend id.
func (b BackendID) Valid() bool {
	switch b {
	case BackendAnalysis, BackendGeneration, BackendSubmission:
		return true
	}
	return false
}

// Stage is one step of the application pipeline. Follow-up planning is a
// distinct stage but runs on the submission backend.
type Stage string

const (
	StageAnalysis   Stage = "analysis"
	StageGeneration Stage = "generation"
	StageSubmission Stage = "submission"
	StageFollowUp   Stage = "follow_up"
)

// PipelineStages lists the stages in execution order.
var PipelineStages = [4]Stage{StageAnalysis, StageGeneration, StageSubmission, StageFollowUp}

// Backend returns the backend that serves this stage.
func (s Stage) Backend() BackendID {
	switch s {
	case StageAnalysis:
		return BackendAnalysis
	case StageGeneration:
		return BackendGeneration
	default:
		return BackendSubmission
	}
}

// OpResult is the uniform outcome of one adapter domain operation. Adapter
// failures are reported here, never raised across the orchestrator boundary.
type OpResult struct {
	Success bool            `json:"success"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ResourceSample is a point-in-time snapshot of host resource usage.
type ResourceSample struct {
	MemoryTotalBytes     uint64    `json:"memory_total_bytes"`
	MemoryUsedBytes      uint64    `json:"memory_used_bytes"`
	MemoryAvailableBytes uint64    `json:"memory_available_bytes"`
	CPUPercent           float64   `json:"cpu_percent"`
	SampledAt            time.Time `json:"sampled_at"`
}

const bytesPerGB = 1 << 30

// UsedGB returns used memory in gigabytes.
func (s ResourceSample) UsedGB() float64 { return float64(s.MemoryUsedBytes) / bytesPerGB }

// AvailableGB returns available memory in gigabytes.
func (s ResourceSample) AvailableGB() float64 { return float64(s.MemoryAvailableBytes) / bytesPerGB }

// TotalGB returns total host memory in gigabytes.
func (s ResourceSample) TotalGB() float64 { return float64(s.MemoryTotalBytes) / bytesPerGB }
