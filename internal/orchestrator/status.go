package orchestrator

import (
	"context"
	"time"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// Snapshot returns a read-only view of every slot.
func (o *Orchestrator) Snapshot() map[types.BackendID]SlotInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[types.BackendID]SlotInfo, len(o.slots))
	for id, sl := range o.slots {
		out[id] = SlotInfo{Status: sl.status, LastUsed: sl.lastUsed}
	}
	return out
}

// Status builds the response for GET /api/v1/status. all_healthy is derived
// from a fresh health check of every resident backend, performed outside the
// mutex so a slow server cannot stall slot mutation.
func (o *Orchestrator) Status(ctx context.Context) types.StatusResponse {
	snap := o.Snapshot()

	resp := types.StatusResponse{
		Backends:          make(map[types.BackendID]types.BackendStatus, len(snap)),
		AllHealthy:        true,
		ConcurrentLimit:   o.cfg.ConcurrentLimit,
		MemoryThresholdGB: o.cfg.MemoryThresholdGB,
		CheckedAt:         time.Now().UTC(),
	}
	for id, info := range snap {
		bs := types.BackendStatus{Status: string(info.Status)}
		if !info.LastUsed.IsZero() {
			bs.LastUsedUnix = info.LastUsed.Unix()
		}
		resp.Backends[id] = bs
		if info.Status == StatusReady || info.Status == StatusBusy {
			resp.ReadyCount++
			if !o.adapters[id].HealthCheck(ctx) {
				resp.AllHealthy = false
			}
		}
	}
	return resp
}

// CheckHealth performs a fresh health round trip against every backend,
// resident or not.
func (o *Orchestrator) CheckHealth(ctx context.Context) map[types.BackendID]bool {
	out := make(map[types.BackendID]bool, len(o.adapters))
	for id, ad := range o.adapters {
		out[id] = ad.HealthCheck(ctx)
	}
	return out
}
