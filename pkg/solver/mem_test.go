//go:build test

package solver

import (
	"fmt"
	"runtime"
	"sync"
	"testing"
)

var memInputs = []string{
	"leapt", "plate", "nathan", "than", "tape",
	"acelpt", "plea", "aelpstr", "zzzz", "eclat",
}

func TestMemoryLeakBasic(t *testing.T) {
	for _, iterations := range []int{100, 1000, 5000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			runBasicMemoryTest(t, iterations)
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 1000},
		{workers: 4, iterationsPerWorker: 250},
		{workers: 8, iterationsPerWorker: 125},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			runConcurrentMemoryTest(t, config.workers, config.iterationsPerWorker)
		})
	}
}

func runBasicMemoryTest(t *testing.T, iterations int) {
	s := New(fixtureIndex(t))

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for range iterations {
		for _, in := range memInputs {
			_ = GroupByLength(s.Solve(in))
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
	totalOps := iterations * len(memInputs)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	// results are per query; nothing should survive a GC
	if memPerOp > 100 {
		t.Errorf("memory retained per operation: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 0 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func runConcurrentMemoryTest(t *testing.T, workers, iterationsPerWorker int) {
	s := New(fixtureIndex(t))

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range iterationsPerWorker {
				_ = s.Solve(memInputs[(w+i)%len(memInputs)])
			}
		}(w)
	}
	wg.Wait()

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	memPerOp := float64(memDelta) / float64(workers*iterationsPerWorker)
	t.Logf("workers=%d mem_delta=%d bytes mem_per_op=%.2f", workers, memDelta, memPerOp)

	if memPerOp > 100 {
		t.Errorf("memory retained per operation: %.2f bytes", memPerOp)
	}
}
