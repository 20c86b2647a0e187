// File: galois/worker.go
// Author: momentics <momentics@gmail.com>
//
// The per-worker loop: pop an item, run the operator, push anything
// the operator discovered, repeat; falls into the quiescence barrier
// when the work-list reports empty, and exits the moment every worker
// agrees the round is done. One goroutine per worker, pinned to a
// core before the loop body starts, listening on a stop channel —
// generalized from "drain a task queue" to "drain a chunked
// work-list" (pop -> operator -> push).

package galois

import (
	"sync"
	"time"

	"github.com/momentics/galois-go/affinity"
	"github.com/momentics/galois-go/worklist"
)

const (
	minBackoff = time.Microsecond
	maxBackoff = time.Millisecond
)

type workerConfig[T any] struct {
	tid, pkg        int
	numaNode, cpuID int
	activeThreads   int
	wl              *worklist.ChunkedWorkList[T]
	op              Operator[T]
	q               *quiescence
	stop            <-chan struct{}
}

// runWorker drives one worker thread until the work-list is exhausted
// and every worker agrees the round is quiescent, the operator aborts
// the round, or stop is closed by the caller.
func runWorker[T any](cfg workerConfig[T], wg *sync.WaitGroup) {
	defer wg.Done()

	if cfg.cpuID >= 0 {
		if err := affinity.PinThread(cfg.numaNode, cfg.cpuID); err == nil {
			defer affinity.UnpinThread()
		}
	}

	ctx := &Context[T]{
		tid:           cfg.tid,
		pkg:           cfg.pkg,
		activeThreads: cfg.activeThreads,
		pusher:        func(item T) { cfg.wl.Push(cfg.tid, cfg.pkg, item) },
	}

	backoff := minBackoff
	for {
		select {
		case <-cfg.stop:
			return
		default:
		}
		if cfg.q.isAborted() {
			return
		}

		item, ok := cfg.wl.Pop(cfg.tid, cfg.pkg)
		if !ok {
			if cfg.q.enterIdle() {
				return
			}
			cfg.q.exitIdle()
			time.Sleep(backoff)
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		backoff = minBackoff
		cfg.q.noteActivity()
		ctx.abort = false

		if err := cfg.op(item, ctx); err != nil {
			cfg.q.abortRound(err)
			return
		}
		if ctx.abort {
			cfg.q.abortRound(nil)
			return
		}
	}
}
