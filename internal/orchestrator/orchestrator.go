package orchestrator

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nitanshu99/job-application-agent-sub000/internal/backend"
	"github.com/Nitanshu99/job-application-agent-sub000/internal/sysinfo"
	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMemoryThresholdGB = 6.0
	defaultAutoUnloadTimeout = 15 * time.Minute
	defaultConcurrentLimit   = 2
	defaultMonitorInterval   = 30 * time.Second
	defaultReapInterval      = 5 * time.Minute
	defaultPressureIdle      = 5 * time.Minute
)

// Config encapsulates all tunables for Orchestrator construction.
type Config struct {
	// MemoryThresholdGB is the ceiling on used host memory; loads keep at
	// least (total - threshold) available and the monitor evicts above it.
	MemoryThresholdGB float64
	// AutoUnloadTimeout is how long a backend may sit idle before the
	// reaper unloads it.
	AutoUnloadTimeout time.Duration
	// ConcurrentLimit caps how many backends may be resident at once.
	ConcurrentLimit int
	// MonitorInterval is the resource monitor poll period.
	MonitorInterval time.Duration
	// ReapInterval is the idle reaper poll period.
	ReapInterval time.Duration
	// PressureIdle is the minimum idle time before the monitor will evict
	// a backend under memory pressure.
	PressureIdle time.Duration
	// Publisher receives lifecycle events; nil drops them.
	Publisher EventPublisher
}

// Orchestrator owns the slot registry: one residency record per backend,
// guarded by a single mutex. It is the only component that calls adapter
// Initialize and Cleanup.
type Orchestrator struct {
	mu       sync.Mutex
	slots    map[types.BackendID]*slot
	adapters map[types.BackendID]backend.Adapter
	sampler  sysinfo.Sampler
	cfg      Config
	pub      EventPublisher
	log      zerolog.Logger
}

// New constructs an Orchestrator over exactly the closed backend set. Every
// backend must be covered by one adapter; extra or duplicate adapters are a
// construction error.
func New(adapters []backend.Adapter, sampler sysinfo.Sampler, cfg Config, log zerolog.Logger) (*Orchestrator, error) {
	if cfg.MemoryThresholdGB <= 0 {
		cfg.MemoryThresholdGB = defaultMemoryThresholdGB
	}
	if cfg.AutoUnloadTimeout <= 0 {
		cfg.AutoUnloadTimeout = defaultAutoUnloadTimeout
	}
	if cfg.ConcurrentLimit <= 0 {
		cfg.ConcurrentLimit = defaultConcurrentLimit
	}
	if cfg.MonitorInterval <= 0 {
		cfg.MonitorInterval = defaultMonitorInterval
	}
	if cfg.ReapInterval <= 0 {
		cfg.ReapInterval = defaultReapInterval
	}
	if cfg.PressureIdle <= 0 {
		cfg.PressureIdle = defaultPressureIdle
	}
	if cfg.Publisher == nil {
		cfg.Publisher = noopPublisher{}
	}

	byID := make(map[types.BackendID]backend.Adapter, len(adapters))
	for _, ad := range adapters {
		id := ad.ID()
		if !id.Valid() {
			return nil, unknownBackendError{id: string(id)}
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("duplicate adapter for backend %s", id)
		}
		byID[id] = ad
	}
	slots := make(map[types.BackendID]*slot, len(types.AllBackends))
	for _, id := range types.AllBackends {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("no adapter for backend %s", id)
		}
		slots[id] = &slot{id: id, status: StatusUnloaded}
	}

	return &Orchestrator{
		slots:    slots,
		adapters: byID,
		sampler:  sampler,
		cfg:      cfg,
		pub:      cfg.Publisher,
		log:      log.With().Str("component", "orchestrator").Logger(),
	}, nil
}

// ConcurrentLimit returns the resident-backend cap.
func (o *Orchestrator) ConcurrentLimit() int { return o.cfg.ConcurrentLimit }

// MemoryThresholdGB returns the configured memory ceiling.
func (o *Orchestrator) MemoryThresholdGB() float64 { return o.cfg.MemoryThresholdGB }

// belowFloor reports whether available memory has fallen under the reserved
// headroom (host total minus the threshold).
func (o *Orchestrator) belowFloor(s types.ResourceSample) bool {
	floor := s.TotalGB() - o.cfg.MemoryThresholdGB
	return s.AvailableGB() < floor
}

func (o *Orchestrator) readyCountLocked() int {
	n := 0
	for _, sl := range o.slots {
		if sl.status == StatusReady {
			n++
		}
	}
	return n
}

// readyOthersLocked counts ready slots excluding id, matching the candidate
// set eviction works with.
func (o *Orchestrator) readyOthersLocked(id types.BackendID) int {
	n := 0
	for _, sl := range o.slots {
		if sl.id != id && sl.status == StatusReady {
			n++
		}
	}
	return n
}
