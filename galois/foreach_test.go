package galois

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestForEachVisitsEveryItemExactlyOnce(t *testing.T) {
	const n = 20_000
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}

	var mu sync.Mutex
	seen := make(map[int]int, n)

	err := ForEach(items, func(item int, ctx *Context[int]) error {
		mu.Lock()
		seen[item]++
		mu.Unlock()
		return nil
	}, Config{NumThreads: 8, NumPackages: 2})
	if err != nil {
		t.Fatalf("ForEach returned error: %v", err)
	}
	if len(seen) != n {
		t.Fatalf("got %d distinct items, want %d", len(seen), n)
	}
	for item, count := range seen {
		if count != 1 {
			t.Fatalf("item %d processed %d times, want 1", item, count)
		}
	}
}

func TestForEachPushDiscoversMoreWork(t *testing.T) {
	const n = 100
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}

	var processed atomic.Int64
	err := ForEach(items, func(item int, ctx *Context[int]) error {
		processed.Add(1)
		if item < n {
			// Every original item spawns one derived item, doubling
			// total work once, to exercise ctx.Push's discovery path.
			ctx.Push(item + n)
		}
		return nil
	}, Config{NumThreads: 4, NumPackages: 1})
	if err != nil {
		t.Fatalf("ForEach returned error: %v", err)
	}
	if got := processed.Load(); got != 2*n {
		t.Fatalf("processed %d items, want %d", got, 2*n)
	}
}

func TestForEachOperatorErrorAbortsRound(t *testing.T) {
	items := make([]int, 1000)
	for i := range items {
		items[i] = i
	}
	sentinel := errors.New("boom")

	err := ForEach(items, func(item int, ctx *Context[int]) error {
		if item == 500 {
			return sentinel
		}
		return nil
	}, Config{NumThreads: 4, NumPackages: 1})
	if !errors.Is(err, sentinel) {
		t.Fatalf("ForEach error = %v, want %v", err, sentinel)
	}
}

func TestForEachCtxBreakStopsWithoutError(t *testing.T) {
	items := make([]int, 1000)
	for i := range items {
		items[i] = i
	}
	var broke atomic.Bool
	err := ForEach(items, func(item int, ctx *Context[int]) error {
		if item == 999 {
			broke.Store(true)
			ctx.Break()
		}
		return nil
	}, Config{NumThreads: 4, NumPackages: 1})
	if err != nil {
		t.Fatalf("ForEach returned error %v, want nil after ctx.Break()", err)
	}
}

func TestRuntimeForEachRecordsMetrics(t *testing.T) {
	r := New(Config{NumThreads: 2, NumPackages: 1})
	items := []int{1, 2, 3, 4, 5}
	err := ForEachWith(r, items, func(item int, ctx *Context[int]) error { return nil })
	if err != nil {
		t.Fatalf("ForEachWith returned error: %v", err)
	}
	snap := r.Metrics().GetSnapshot()
	if snap["last_round_items"] != len(items) {
		t.Fatalf("last_round_items = %v, want %d", snap["last_round_items"], len(items))
	}
}
