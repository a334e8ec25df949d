package types

import "testing"

func TestBackendIDValid(t *testing.T) {
	for _, id := range AllBackends {
		if !id.Valid() {
			t.Errorf("%s should be valid", id)
		}
	}
	for _, id := range []BackendID{"", "gemma", "Analysis"} {
		if id.Valid() {
			t.Errorf("%q should be invalid", id)
		}
	}
}

func TestStageBackendMapping(t *testing.T) {
	want := map[Stage]BackendID{
		StageAnalysis:   BackendAnalysis,
		StageGeneration: BackendGeneration,
		StageSubmission: BackendSubmission,
		StageFollowUp:   BackendSubmission,
	}
	for stage, backend := range want {
		if got := stage.Backend(); got != backend {
			t.Errorf("%s: got %s, want %s", stage, got, backend)
		}
	}
}

func TestResourceSampleGigabyteHelpers(t *testing.T) {
	s := ResourceSample{
		MemoryTotalBytes:     8 << 30,
		MemoryUsedBytes:      4 << 30,
		MemoryAvailableBytes: 3 << 30,
	}
	if s.TotalGB() != 8 || s.UsedGB() != 4 || s.AvailableGB() != 3 {
		t.Errorf("got total=%v used=%v available=%v", s.TotalGB(), s.UsedGB(), s.AvailableGB())
	}
}
