package orchestrator

import (
	"context"
	"sort"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// evictForLocked frees memory for the target backend by unloading other
// resident slots least-recently-used first, re-checking available memory
// after each unload. It stops as soon as the floor is satisfied or no
// candidate remains; running out of candidates is not an error and the load
// proceeds anyway. Caller holds the mutex.
func (o *Orchestrator) evictForLocked(ctx context.Context, target types.BackendID) {
	for {
		if !o.evictOneLocked(ctx, target, "memory") {
			return
		}
		sample, err := o.sampler.Sample(ctx)
		if err != nil || !o.belowFloor(sample) {
			return
		}
	}
}

// evictOneLocked unloads the least-recently-used resident slot other than
// target. A slot that never completed an operation sorts oldest. Busy slots
// are never candidates. Returns false when nothing was evictable.
func (o *Orchestrator) evictOneLocked(ctx context.Context, target types.BackendID, reason string) bool {
	candidates := make([]*slot, 0, len(o.slots))
	for _, sl := range o.slots {
		if sl.id == target || sl.status != StatusReady {
			continue
		}
		candidates = append(candidates, sl)
	}
	if len(candidates) == 0 {
		return false
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.lastUsed.IsZero() != b.lastUsed.IsZero() {
			return a.lastUsed.IsZero()
		}
		return a.lastUsed.Before(b.lastUsed)
	})

	victim := candidates[0]
	o.pub.Publish(Event{Name: "evict", Backend: string(victim.id), Fields: map[string]any{"reason": reason, "for": string(target)}})
	o.log.Info().Str("backend", string(victim.id)).Str("reason", reason).Msg("evicting backend")
	o.unloadLocked(victim.id)
	evictionsTotal.WithLabelValues(reason).Inc()
	return true
}
