// Package sysinfo reads host memory and CPU utilization for the resource
// monitor and the load-time memory floor check.
package sysinfo

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// Sampler produces point-in-time resource snapshots. The orchestrator takes
// one on demand before loading a backend and on a fixed interval from the
// resource monitor.
type Sampler interface {
	Sample(ctx context.Context) (types.ResourceSample, error)
}

// HostSampler reads the local machine via gopsutil.
type HostSampler struct{}

// NewHostSampler returns a Sampler backed by the local host.
func NewHostSampler() *HostSampler { return &HostSampler{} }

// Sample reads virtual memory and instantaneous CPU utilization.
func (HostSampler) Sample(ctx context.Context) (types.ResourceSample, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return types.ResourceSample{}, err
	}
	sample := types.ResourceSample{
		MemoryTotalBytes:     vm.Total,
		MemoryUsedBytes:      vm.Used,
		MemoryAvailableBytes: vm.Available,
		SampledAt:            time.Now().UTC(),
	}
	// Zero interval returns utilization since the previous call instead of
	// blocking the caller for a measurement window.
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		sample.CPUPercent = pcts[0]
	}
	return sample, nil
}
