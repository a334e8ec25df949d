// Package backend wraps the three remote model servers behind a uniform
// initialize/health/cleanup contract plus per-backend domain operations.
// Prompt construction and response parsing live in the servers themselves;
// the adapters forward opaque JSON payloads in both directions.
package backend

import (
	"context"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// Adapter is the lifecycle contract the orchestrator depends on. Only the
// orchestrator core calls Initialize and Cleanup; domain operations are
// invoked by the workflow executor on the concrete adapter types.
type Adapter interface {
	// ID returns the backend this adapter serves.
	ID() types.BackendID
	// Initialize establishes the network client and performs one health
	// round trip. Calling it on an initialized adapter is a no-op success.
	Initialize(ctx context.Context) error
	// HealthCheck is a single round trip. It never panics; any failure is
	// reported as false.
	HealthCheck(ctx context.Context) bool
	// Cleanup releases the network client. Safe on a non-initialized adapter.
	Cleanup()
}
