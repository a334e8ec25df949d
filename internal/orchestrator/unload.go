package orchestrator

import (
	"context"
	"time"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// Unload releases the backend's network client and returns its slot to
// unloaded, clearing the last-used stamp. No-op when the slot is not resident.
func (o *Orchestrator) Unload(ctx context.Context, id types.BackendID) error {
	if _, ok := o.adapters[id]; !ok {
		return unknownBackendError{id: string(id)}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unloadLocked(id)
	return nil
}

// unloadLocked performs the unload sequence. Caller holds the mutex.
func (o *Orchestrator) unloadLocked(id types.BackendID) {
	sl := o.slots[id]
	if sl.status != StatusReady && sl.status != StatusBusy {
		return
	}
	sl.status = StatusUnloading
	o.pub.Publish(Event{Name: "unload_start", Backend: string(id), Fields: map[string]any{}})

	o.adapters[id].Cleanup()

	sl.status = StatusUnloaded
	sl.lastUsed = time.Time{}
	readyBackends.Set(float64(o.readyCountLocked()))
	o.pub.Publish(Event{Name: "unload_done", Backend: string(id), Fields: map[string]any{}})
	o.log.Info().Str("backend", string(id)).Msg("backend unloaded")
}

// Shutdown unloads every resident backend. Called once on daemon stop; the
// registry itself lives until process exit.
func (o *Orchestrator) Shutdown(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, id := range types.AllBackends {
		o.unloadLocked(id)
	}
}
