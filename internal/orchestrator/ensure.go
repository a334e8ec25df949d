package orchestrator

import (
	"context"
	"time"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// EnsureLoaded makes the backend resident and ready. Idempotent: a slot that
// is already ready and answers a fresh health check costs no second
// Initialize. The mutex is held for the whole sequence, including the adapter
// network call, so concurrent loaders of the same backend serialize and the
// second caller observes the first one's result.
func (o *Orchestrator) EnsureLoaded(ctx context.Context, id types.BackendID) error {
	ad, ok := o.adapters[id]
	if !ok {
		return unknownBackendError{id: string(id)}
	}
	startTs := time.Now()

	o.mu.Lock()
	defer o.mu.Unlock()
	sl := o.slots[id]

	if sl.status == StatusReady && ad.HealthCheck(ctx) {
		return nil
	}

	// Free memory before loading: evict LRU residents while available
	// memory sits below the reserved floor. A sampler failure skips the
	// check rather than blocking the load.
	if sample, err := o.sampler.Sample(ctx); err == nil {
		if o.belowFloor(sample) {
			o.evictForLocked(ctx, id)
		}
	} else {
		o.log.Warn().Err(err).Msg("resource sample failed, skipping memory check")
	}

	// Hold the resident count under the concurrency limit. The target's own
	// slot is excluded so a reload of a resident backend does not count
	// against itself.
	for o.readyOthersLocked(id) >= o.cfg.ConcurrentLimit {
		if !o.evictOneLocked(ctx, id, "limit") {
			break
		}
	}

	sl.status = StatusLoading
	o.pub.Publish(Event{Name: "load_start", Backend: string(id), Fields: map[string]any{}})
	o.log.Info().Str("backend", string(id)).Msg("loading backend")

	if err := ad.Initialize(ctx); err != nil {
		sl.status = StatusError
		loadFailuresTotal.Inc()
		o.pub.Publish(Event{Name: "load_error", Backend: string(id), Fields: map[string]any{"error": err.Error()}})
		o.log.Error().Err(err).Str("backend", string(id)).Msg("backend load failed")
		return initFailedError{id: string(id), err: err}
	}

	sl.status = StatusReady
	sl.lastUsed = time.Now()
	loadsTotal.Inc()
	readyBackends.Set(float64(o.readyCountLocked()))
	o.pub.Publish(Event{Name: "load_ready", Backend: string(id), Fields: map[string]any{
		"dur_ms": int(time.Since(startTs) / time.Millisecond),
	}})
	o.log.Info().Str("backend", string(id)).Dur("dur", time.Since(startTs)).Msg("backend ready")
	return nil
}
