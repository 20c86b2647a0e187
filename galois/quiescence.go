// File: galois/quiescence.go
// Author: momentics <momentics@gmail.com>
//
// Two-phase idle-counter termination barrier: a worker that finds no
// work marks itself idle, and if it observes that it is the last
// worker to do so, re-checks that no activity has occurred since the
// first worker of this idle "wave" registered, before declaring the
// whole round quiescent. The wave-epoch snapshot — taken once, by
// whichever worker takes the idle count from 0 to 1 — is what makes
// the recheck meaningful even after every worker has gone idle again:
// without it, a worker could note activity, finish and go idle itself,
// and a later idle count reaching nthreads would see a quiescent-
// looking epoch even though work was produced earlier in the same
// wave. Callers that get false back must call exitIdle before
// retrying Pop, since this call already counted them as idle. Uses the
// same atomic running-state-plus-backoff idiom as the rest of the
// worker loop: spin, no blocking wakeups.

package galois

import "sync/atomic"

type quiescence struct {
	nthreads  int32
	idle      atomic.Int32
	epoch     atomic.Int64
	waveEpoch atomic.Int64
	aborted   atomic.Bool
	errOnce   atomic.Pointer[error]
}

func newQuiescence(nthreads int) *quiescence {
	return &quiescence{nthreads: int32(nthreads)}
}

// noteActivity invalidates any in-flight quiescence check: called
// whenever a worker successfully pops and begins processing an item.
func (q *quiescence) noteActivity() {
	q.epoch.Add(1)
}

// enterIdle registers the calling worker as idle and returns true if
// every worker is now idle and no activity was noted since the start
// of this idle wave. Callers that get false back must call exitIdle
// before retrying Pop.
func (q *quiescence) enterIdle() bool {
	n := q.idle.Add(1)
	if n == 1 {
		// First worker idle this wave: snapshot the epoch now, so a
		// burst of activity that completes before the last worker
		// joins still fails the recheck below.
		q.waveEpoch.Store(q.epoch.Load())
	}
	if n != q.nthreads {
		return false
	}
	if q.epoch.Load() != q.waveEpoch.Load() {
		return false
	}
	return true
}

// exitIdle un-registers the calling worker as idle, used both when a
// quiescence check fails and right before a worker resumes work after
// a backoff sleep.
func (q *quiescence) exitIdle() {
	q.idle.Add(-1)
}

// abortRound requests every worker stop at its next opportunity and records
// the first operator error, if any (nil for a plain ctx.Break()).
func (q *quiescence) abortRound(err error) {
	if q.aborted.CompareAndSwap(false, true) {
		if err != nil {
			q.errOnce.Store(&err)
		}
	}
}

func (q *quiescence) isAborted() bool { return q.aborted.Load() }

// err returns the operator error that triggered abortRound, or nil if
// the round was aborted via ctx.Break() with no error, or never
// aborted at all.
func (q *quiescence) err() error {
	p := q.errOnce.Load()
	if p == nil {
		return nil
	}
	return *p
}
