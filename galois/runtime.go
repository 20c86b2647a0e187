// File: galois/runtime.go
// Author: momentics <momentics@gmail.com>
//
// Runtime is the single entry point wiring a Config, the control-plane
// registries, and ForEach together. Config values are published
// through control.ConfigStore for hot-reload/debug inspection, and
// round outcomes are recorded into MetricsRegistry alongside a
// snapshot of the mm/worklist package-level allocator and work-list
// counters (pages allocated, chunks recycled, steals
// attempted/succeeded).

package galois

import (
	"time"

	"github.com/momentics/galois-go/control"
	"github.com/momentics/galois-go/mm"
	"github.com/momentics/galois-go/worklist"
)

// Runtime bundles a resolved Config with the control-plane registries
// that expose it for hot-reload, metrics, and debug introspection.
type Runtime struct {
	cfg     Config
	config  *control.ConfigStore
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
}

// New builds a Runtime from cfg, publishing its resolved values through
// the control-plane registries.
func New(cfg Config) *Runtime {
	cfg = cfg.resolve()
	r := &Runtime{
		cfg:     cfg,
		config:  control.NewConfigStore(),
		metrics: control.NewMetricsRegistry(),
		debug:   control.NewDebugProbes(),
	}
	r.config.SetConfig(map[string]any{
		"num_threads":  cfg.NumThreads,
		"num_packages": cfg.NumPackages,
		"distribution": cfg.Distribution,
	})
	r.debug.RegisterProbe("config", func() any { return r.config.GetSnapshot() })
	r.debug.RegisterProbe("metrics", func() any { return r.metrics.GetSnapshot() })
	control.RegisterPlatformProbes(r.debug)
	return r
}

// Config returns the runtime's resolved Config (NumThreads/NumPackages
// filled in from machine defaults), for callers that need to size
// per-thread state before running a round.
func (r *Runtime) Config() Config { return r.cfg }

// Control exposes the runtime's configuration store for hot-reload.
func (r *Runtime) Control() *control.ConfigStore { return r.config }

// Metrics exposes the runtime's metrics registry.
func (r *Runtime) Metrics() *control.MetricsRegistry { return r.metrics }

// Debug exposes the runtime's debug probe registry.
func (r *Runtime) Debug() *control.DebugProbes { return r.debug }

// ForEachWith runs op over initial using r's resolved Config,
// recording round duration and item count into Metrics().
func ForEachWith[T any](r *Runtime, initial []T, op Operator[T]) error {
	start := time.Now()
	n := len(initial)
	err := ForEach(initial, op, r.cfg)
	r.metrics.Set("last_round_items", n)
	r.metrics.Set("last_round_duration_ns", time.Since(start).Nanoseconds())
	if err != nil {
		r.metrics.Set("last_round_error", err.Error())
	}
	r.recordAllocatorMetrics()
	return err
}

// recordAllocatorMetrics copies the package-level mm/worklist counters
// (cumulative across every Runtime in the process) into this Runtime's
// MetricsRegistry after each round.
func (r *Runtime) recordAllocatorMetrics() {
	r.metrics.Set("pages_allocated_total", mm.NumPageAllocTotal())
	r.metrics.Set("chunks_recycled_total", worklist.NumChunksRecycled())
	r.metrics.Set("steals_attempted_total", worklist.NumStealsAttempted())
	r.metrics.Set("steals_succeeded_total", worklist.NumStealsSucceeded())
}
