package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nitanshu99/job-application-agent-sub000/internal/backend"
	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// fakeAdapter implements backend.Adapter with counted, scriptable calls.
type fakeAdapter struct {
	id types.BackendID

	mu           sync.Mutex
	initCalls    int
	cleanupCalls int
	healthCalls  int
	initErr      error
	healthy      bool
	trace        *callTrace // optional shared call-order trace
}

// callTrace records call order across several adapters.
type callTrace struct {
	mu    sync.Mutex
	calls []string
}

func (t *callTrace) record(s string) {
	t.mu.Lock()
	t.calls = append(t.calls, s)
	t.mu.Unlock()
}

func (t *callTrace) snapshot() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.calls))
	copy(out, t.calls)
	return out
}

func newFakeAdapter(id types.BackendID) *fakeAdapter {
	return &fakeAdapter{id: id, healthy: true}
}

func (f *fakeAdapter) ID() types.BackendID { return f.id }

func (f *fakeAdapter) Initialize(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls++
	if f.trace != nil {
		f.trace.record(string(f.id) + ":initialize")
	}
	return f.initErr
}

func (f *fakeAdapter) HealthCheck(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthCalls++
	return f.healthy
}

func (f *fakeAdapter) Cleanup() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleanupCalls++
	if f.trace != nil {
		f.trace.record(string(f.id) + ":cleanup")
	}
}

func (f *fakeAdapter) initCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initCalls
}

func (f *fakeAdapter) cleanupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cleanupCalls
}

// fakeSampler replays a sequence of samples, repeating the last one.
type fakeSampler struct {
	mu      sync.Mutex
	samples []types.ResourceSample
	idx     int
	err     error
}

func (f *fakeSampler) Sample(ctx context.Context) (types.ResourceSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return types.ResourceSample{}, f.err
	}
	if len(f.samples) == 0 {
		return sampleGB(8, 2, 6), nil
	}
	s := f.samples[f.idx]
	if f.idx < len(f.samples)-1 {
		f.idx++
	}
	return s, nil
}

// sampleGB builds a sample from gigabyte figures.
func sampleGB(total, used, available float64) types.ResourceSample {
	const gb = float64(1 << 30)
	return types.ResourceSample{
		MemoryTotalBytes:     uint64(total * gb),
		MemoryUsedBytes:      uint64(used * gb),
		MemoryAvailableBytes: uint64(available * gb),
		SampledAt:            time.Now(),
	}
}

// fixture wires an orchestrator over three fake adapters and a fake sampler.
type fixture struct {
	orch       *Orchestrator
	analysis   *fakeAdapter
	generation *fakeAdapter
	submission *fakeAdapter
	sampler    *fakeSampler
	pub        *MemoryPublisher
}

func newFixture(cfg Config) *fixture {
	f := &fixture{
		analysis:   newFakeAdapter(types.BackendAnalysis),
		generation: newFakeAdapter(types.BackendGeneration),
		submission: newFakeAdapter(types.BackendSubmission),
		sampler:    &fakeSampler{},
		pub:        NewMemoryPublisher(),
	}
	if cfg.Publisher == nil {
		cfg.Publisher = f.pub
	}
	orch, err := New(
		[]backend.Adapter{f.analysis, f.generation, f.submission},
		f.sampler, cfg, zerolog.Nop(),
	)
	if err != nil {
		panic(err)
	}
	f.orch = orch
	return f
}

// setSlot force-sets a slot's state for scenario setup.
func (f *fixture) setSlot(id types.BackendID, status SlotStatus, lastUsed time.Time) {
	f.orch.mu.Lock()
	defer f.orch.mu.Unlock()
	sl := f.orch.slots[id]
	sl.status = status
	sl.lastUsed = lastUsed
}

func (f *fixture) slotInfo(id types.BackendID) SlotInfo {
	return f.orch.Snapshot()[id]
}
