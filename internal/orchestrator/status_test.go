package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

func TestSnapshotStartsCleanSlate(t *testing.T) {
	f := newFixture(Config{})
	snap := f.orch.Snapshot()
	if len(snap) != len(types.AllBackends) {
		t.Fatalf("expected %d slots, got %d", len(types.AllBackends), len(snap))
	}
	for id, info := range snap {
		if info.Status != StatusUnloaded {
			t.Fatalf("backend %s not unloaded at startup: %s", id, info.Status)
		}
		if !info.LastUsed.IsZero() {
			t.Fatalf("backend %s has last_used at startup", id)
		}
	}
}

func TestStatusAllHealthy(t *testing.T) {
	f := newFixture(Config{ConcurrentLimit: 2})
	ctx := context.Background()
	if err := f.orch.EnsureLoaded(ctx, types.BackendAnalysis); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	resp := f.orch.Status(ctx)
	if !resp.AllHealthy {
		t.Fatalf("expected all_healthy with a healthy resident backend")
	}
	if resp.ReadyCount != 1 {
		t.Fatalf("expected ready_count 1, got %d", resp.ReadyCount)
	}
	if resp.Backends[types.BackendAnalysis].Status != string(StatusReady) {
		t.Fatalf("unexpected analysis status: %+v", resp.Backends[types.BackendAnalysis])
	}
	if resp.Backends[types.BackendGeneration].Status != string(StatusUnloaded) {
		t.Fatalf("unexpected generation status: %+v", resp.Backends[types.BackendGeneration])
	}

	f.analysis.mu.Lock()
	f.analysis.healthy = false
	f.analysis.mu.Unlock()
	if f.orch.Status(ctx).AllHealthy {
		t.Fatalf("expected all_healthy false when a resident backend fails its check")
	}
}

func TestStatusVacuouslyHealthyWhenNothingResident(t *testing.T) {
	f := newFixture(Config{})
	if !f.orch.Status(context.Background()).AllHealthy {
		t.Fatalf("expected all_healthy with zero resident backends")
	}
}

func TestCheckHealthCoversEveryBackend(t *testing.T) {
	f := newFixture(Config{})
	f.submission.mu.Lock()
	f.submission.healthy = false
	f.submission.mu.Unlock()

	got := f.orch.CheckHealth(context.Background())
	if len(got) != len(types.AllBackends) {
		t.Fatalf("expected %d entries, got %d", len(types.AllBackends), len(got))
	}
	if !got[types.BackendAnalysis] || !got[types.BackendGeneration] || got[types.BackendSubmission] {
		t.Fatalf("unexpected health map: %v", got)
	}
}

func TestBeginEndOpBracket(t *testing.T) {
	f := newFixture(Config{})
	ctx := context.Background()
	if err := f.orch.EnsureLoaded(ctx, types.BackendSubmission); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	before := f.slotInfo(types.BackendSubmission).LastUsed

	if !f.orch.BeginOp(types.BackendSubmission) {
		t.Fatalf("BeginOp on ready slot returned false")
	}
	if got := f.slotInfo(types.BackendSubmission).Status; got != StatusBusy {
		t.Fatalf("expected busy during op, got %s", got)
	}

	time.Sleep(2 * time.Millisecond)
	f.orch.EndOp(types.BackendSubmission, true)
	info := f.slotInfo(types.BackendSubmission)
	if info.Status != StatusReady {
		t.Fatalf("expected ready after op, got %s", info.Status)
	}
	if !info.LastUsed.After(before) {
		t.Fatalf("expected last_used advanced by successful op")
	}
}

func TestEndOpFailureKeepsLastUsed(t *testing.T) {
	f := newFixture(Config{})
	ctx := context.Background()
	if err := f.orch.EnsureLoaded(ctx, types.BackendAnalysis); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	before := f.slotInfo(types.BackendAnalysis).LastUsed

	f.orch.BeginOp(types.BackendAnalysis)
	f.orch.EndOp(types.BackendAnalysis, false)
	if got := f.slotInfo(types.BackendAnalysis).LastUsed; !got.Equal(before) {
		t.Fatalf("failed op must not advance last_used")
	}
}

func TestEndOpAfterUnloadLeavesSlotClear(t *testing.T) {
	f := newFixture(Config{})
	ctx := context.Background()
	if err := f.orch.EnsureLoaded(ctx, types.BackendAnalysis); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	f.orch.BeginOp(types.BackendAnalysis)

	// Operator unload lands while the operation is in flight.
	if err := f.orch.Unload(ctx, types.BackendAnalysis); err != nil {
		t.Fatalf("unload: %v", err)
	}
	f.orch.EndOp(types.BackendAnalysis, true)

	info := f.slotInfo(types.BackendAnalysis)
	if info.Status != StatusUnloaded {
		t.Fatalf("expected unloaded, got %s", info.Status)
	}
	if !info.LastUsed.IsZero() {
		t.Fatalf("unloaded slot must not carry a last_used stamp")
	}
}

func TestBeginOpNotReady(t *testing.T) {
	f := newFixture(Config{})
	if f.orch.BeginOp(types.BackendAnalysis) {
		t.Fatalf("BeginOp on unloaded slot returned true")
	}
}
