package orchestrator

import (
	"time"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// BeginOp marks a ready backend busy for the duration of one domain
// operation, shielding it from eviction and reaping. Returns false when the
// slot is not ready; the caller may still attempt the operation, it just runs
// without the busy shield.
func (o *Orchestrator) BeginOp(id types.BackendID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	sl, ok := o.slots[id]
	if !ok || sl.status != StatusReady {
		return false
	}
	sl.status = StatusBusy
	return true
}

// EndOp releases the busy bracket. A successful operation stamps the
// last-used time; last_used_at is the only slot field mutated outside a state
// transition.
func (o *Orchestrator) EndOp(id types.BackendID, succeeded bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	sl, ok := o.slots[id]
	if !ok {
		return
	}
	if sl.status == StatusBusy {
		sl.status = StatusReady
	}
	// A slot unloaded mid-operation stays clear; stamping it would leave a
	// last-used time on an unloaded slot.
	if succeeded && sl.status == StatusReady {
		sl.lastUsed = time.Now()
	}
}
