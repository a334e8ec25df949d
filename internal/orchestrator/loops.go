package orchestrator

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run starts the resource monitor and the idle reaper and blocks until ctx is
// canceled. Both loops share the slot mutex with in-flight workflow
// executions; neither ever touches a busy slot.
func (o *Orchestrator) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return o.monitorLoop(ctx) })
	g.Go(func() error { return o.reaperLoop(ctx) })
	return g.Wait()
}

// monitorLoop samples host resources on a fixed interval and evicts idle
// backends while usage stays over the memory threshold.
func (o *Orchestrator) monitorLoop(ctx context.Context) error {
	t := time.NewTicker(o.cfg.MonitorInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			o.checkPressure(ctx)
		}
	}
}

// checkPressure runs one monitor pass: sample, and when used memory exceeds
// the threshold, unload resident backends idle past the pressure window,
// oldest first, until usage drops below the threshold or no candidate is
// left.
func (o *Orchestrator) checkPressure(ctx context.Context) {
	sample, err := o.sampler.Sample(ctx)
	if err != nil {
		o.log.Warn().Err(err).Msg("resource sample failed")
		return
	}
	memoryUsedBytes.Set(float64(sample.MemoryUsedBytes))
	if sample.UsedGB() <= o.cfg.MemoryThresholdGB {
		return
	}
	o.log.Warn().Float64("used_gb", sample.UsedGB()).Float64("threshold_gb", o.cfg.MemoryThresholdGB).Msg("high memory usage")

	o.mu.Lock()
	defer o.mu.Unlock()
	for {
		victim := o.oldestIdleLocked(o.cfg.PressureIdle)
		if victim == nil {
			return
		}
		o.pub.Publish(Event{Name: "pressure_evict", Backend: string(victim.id), Fields: map[string]any{"used_gb": sample.UsedGB()}})
		o.unloadLocked(victim.id)
		evictionsTotal.WithLabelValues("pressure").Inc()

		sample, err = o.sampler.Sample(ctx)
		if err != nil || sample.UsedGB() <= o.cfg.MemoryThresholdGB {
			return
		}
	}
}

// reaperLoop unloads backends idle past the auto-unload timeout. This is a
// housekeeping pass: it runs regardless of memory pressure.
func (o *Orchestrator) reaperLoop(ctx context.Context) error {
	t := time.NewTicker(o.cfg.ReapInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			o.reapIdle()
		}
	}
}

// reapIdle scans the registry and unloads every resident slot whose last use
// is older than the auto-unload timeout.
func (o *Orchestrator) reapIdle() {
	now := time.Now()
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, sl := range o.slots {
		if sl.status != StatusReady || sl.lastUsed.IsZero() {
			continue
		}
		if now.Sub(sl.lastUsed) > o.cfg.AutoUnloadTimeout {
			o.pub.Publish(Event{Name: "idle_unload", Backend: string(sl.id), Fields: map[string]any{
				"idle": now.Sub(sl.lastUsed).String(),
			}})
			o.unloadLocked(sl.id)
			evictionsTotal.WithLabelValues("idle").Inc()
		}
	}
}

// oldestIdleLocked returns the resident slot that has been idle longer than
// minIdle and longest overall, or nil. Caller holds the mutex.
func (o *Orchestrator) oldestIdleLocked(minIdle time.Duration) *slot {
	now := time.Now()
	idle := make([]*slot, 0, len(o.slots))
	for _, sl := range o.slots {
		if sl.status != StatusReady {
			continue
		}
		if sl.lastUsed.IsZero() || now.Sub(sl.lastUsed) > minIdle {
			idle = append(idle, sl)
		}
	}
	if len(idle) == 0 {
		return nil
	}
	sort.Slice(idle, func(i, j int) bool {
		a, b := idle[i], idle[j]
		if a.lastUsed.IsZero() != b.lastUsed.IsZero() {
			return a.lastUsed.IsZero()
		}
		return a.lastUsed.Before(b.lastUsed)
	})
	return idle[0]
}
