// Package orchestrator decides which model backends may be resident in
// memory, sequences load/unload around pipeline stages, and evicts idle
// backends under memory pressure. It is structured into small files by
// concern:
//
//   - orchestrator.go: core Orchestrator type, Config, constructor.
//   - types.go: slot state types (SlotStatus, slot, SlotInfo).
//   - errors.go: error types and helpers (IsUnknownBackend, IsInitFailed).
//   - ensure.go: EnsureLoaded lifecycle and loading.
//   - unload.go: Unload, Shutdown, and the shared locked unload path.
//   - evict.go: LRU eviction to satisfy the memory floor and ready limit.
//   - loops.go: background resource monitor and idle reaper.
//   - ops.go: BeginOp/EndOp busy bracket around domain operations.
//   - status.go: Status/Snapshot/CheckHealth reporting.
//   - events.go, eventpub_memory.go: lifecycle event publishing.
//   - metrics.go: prometheus collectors.
//
// All slot mutation happens under one mutex, held across adapter
// Initialize/Cleanup calls so that concurrent loaders serialize. The registry is rebuilt from a clean slate on every start;
// nothing is persisted.
package orchestrator
