// File: galois/foreach.go
// Author: momentics <momentics@gmail.com>
//
// ForEach is the driver tying the chunked work-list, worker pool, and
// quiescence barrier together: push the initial range, spin up one
// pinned worker per core, wait for quiescence or an operator abort.
// Workers are spun up front and shut down via a WaitGroup, same as any
// fixed-size worker-pool lifecycle.

package galois

import (
	"sync"

	"github.com/momentics/galois-go/affinity"
	"github.com/momentics/galois-go/worklist"
)

// Operator is the per-item callback a ForEach round invokes. Returning
// a non-nil error aborts the whole round; ctx.Break() aborts without
// treating it as a failure.
type Operator[T any] func(item T, ctx *Context[T]) error

// Distribution selects how the initial range is spread across
// packages before a round starts.
type Distribution int

const (
	// DistributionRoundRobin assigns successive chunk-sized blocks of
	// the initial range to packages in round-robin order.
	DistributionRoundRobin Distribution = iota
	// DistributionBlocked splits the initial range into one
	// contiguous block per package, for NUMA-local placement.
	DistributionBlocked
)

// Config tunes a single ForEach round.
type Config struct {
	// ItemOrder selects stack (LIFO) or queue (FIFO) release order from
	// the shared chunk pools.
	ItemOrder worklist.Config
	// Distribution selects how push_initial spreads the initial range.
	Distribution Distribution
	// NumThreads is the number of worker goroutines to run, one per
	// core by default (0 means "use affinity.NumCPUs()").
	NumThreads int
	// NumPackages is the number of NUMA packages to shard the shared
	// pools across; 0 means "use affinity.NUMANodes()".
	NumPackages int
}

// resolve fills in zero-valued fields with machine defaults.
func (c Config) resolve() Config {
	if c.NumThreads <= 0 {
		c.NumThreads = affinity.NumCPUs()
	}
	if c.NumPackages <= 0 {
		c.NumPackages = affinity.NUMANodes()
	}
	if c.ItemOrder.NumPackages <= 0 {
		c.ItemOrder.NumPackages = c.NumPackages
	}
	return c
}

// ForEach runs op over every item in initial (plus anything op pushes
// via ctx.Push) to quiescence, or until op aborts the round. It
// returns the first operator error, or nil on a clean or
// ctx.Break()-requested stop.
func ForEach[T any](initial []T, op Operator[T], cfg Config) error {
	cfg = cfg.resolve()

	wl := worklist.New[T](cfg.ItemOrder)
	switch cfg.Distribution {
	case DistributionBlocked:
		wl.PushInitialBlocked(cfg.NumPackages, worklist.SliceRange[T](initial))
	default:
		wl.PushInitial(cfg.NumPackages, initial)
	}

	q := newQuiescence(cfg.NumThreads)
	stop := make(chan struct{})

	var wg sync.WaitGroup
	for tid := 0; tid < cfg.NumThreads; tid++ {
		pkg := tid % cfg.NumPackages
		cpuID := affinity.PreferredCPUID(pkg)
		wg.Add(1)
		go runWorker(workerConfig[T]{
			tid:           tid,
			pkg:           pkg,
			numaNode:      pkg,
			cpuID:         cpuID,
			activeThreads: cfg.NumThreads,
			wl:            wl,
			op:            op,
			q:             q,
			stop:          stop,
		}, &wg)
	}

	wg.Wait()
	close(stop)
	return q.err()
}
