package orchestrator

import (
	"time"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// SlotStatus is the lifecycle state of one backend slot.
type SlotStatus string

const (
	StatusUnloaded  SlotStatus = "unloaded"
	StatusLoading   SlotStatus = "loading"
	StatusReady     SlotStatus = "ready"
	StatusBusy      SlotStatus = "busy"
	StatusError     SlotStatus = "error"
	StatusUnloading SlotStatus = "unloading"
)

// slot is the in-memory residency record for one backend. Created once at
// construction, mutated only under the orchestrator mutex, never destroyed.
type slot struct {
	id       types.BackendID
	status   SlotStatus
	lastUsed time.Time // zero when the backend has not completed an operation
}

// SlotInfo is a read-only projection of one slot.
type SlotInfo struct {
	Status   SlotStatus
	LastUsed time.Time
}
