// Package fibcore computes arbitrary-precision Fibonacci numbers and
// contiguous ranges of them. The adaptive entry points accept an index
// only if it is at most one trillion and its estimated result size stays
// within an 8 GiB budget (so n up to about 9*10^10). It exposes
// three independently selectable algorithms (Fast Doubling, Parallel
// Doubling, FFT Doubling), an adaptive dispatcher that picks among them by
// index size, a lazy/parallel range iterator, and a one-shot warm-up
// routine for callers that want to pay this module's setup costs before
// their first timed calculation rather than during it.
package fibcore

import (
	"context"
	"time"

	"github.com/agbru/fibcore/internal/bigint"
	"github.com/agbru/fibcore/internal/calibration"
	"github.com/agbru/fibcore/internal/dispatch"
	"github.com/agbru/fibcore/internal/fibonacci"
	"github.com/agbru/fibcore/internal/fibrange"
	"github.com/agbru/fibcore/internal/warmup"
)

// Int is the arbitrary-precision integer type every function in this
// package returns.
type Int = bigint.Int

// Algorithm names one of this module's three computation strategies, or
// Adaptive to let the dispatcher choose among them.
type Algorithm = fibonacci.Algorithm

const (
	FastDoubling = fibonacci.FastDoubling
	Parallel     = fibonacci.Parallel
	FFT          = fibonacci.FFT
	Adaptive     = fibonacci.Adaptive
)

// ParseAlgorithm maps a short name ("fd", "par"/"mx", "fft", "adaptive")
// to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, bool) { return fibonacci.ParseAlgorithm(name) }

// FibonacciFastDoubling computes F(n) with the Fast Doubling algorithm.
func FibonacciFastDoubling(n uint64) Int { return fibonacci.FibonacciFastDoubling(n) }

// FibonacciParallel computes F(n) with Parallel Doubling, fanning out the
// multiplications of a doubling step once an operand's bit length exceeds
// ParallelThreshold().
func FibonacciParallel(n uint64) Int {
	return fibonacci.FibonacciParallel(n, ParallelThreshold())
}

// FibonacciFFT computes F(n) with FFT Doubling.
func FibonacciFFT(n uint64) Int { return fibonacci.FibonacciFFT(n) }

// FibonacciAdaptive computes F(n), choosing an algorithm by n's size. It
// panics if n exceeds this module's safety limits; use
// TryFibonacciAdaptive to handle that case as an error instead.
func FibonacciAdaptive(n uint64) Int { return dispatch.Adaptive(n) }

// TryFibonacciAdaptive is FibonacciAdaptive, returning a FibError instead
// of panicking when n exceeds this module's safety limits.
func TryFibonacciAdaptive(n uint64) (Int, error) { return dispatch.TryAdaptive(n) }

// FibError is implemented by every error this package's fallible entry
// points can return.
type FibError = error

// ParallelThreshold returns the calibrated bit-length threshold above
// which Parallel Doubling parallelizes a doubling step's multiplications,
// measuring it once per process on first call.
func ParallelThreshold() int { return calibration.Threshold() }

// EstimateMemoryBytes estimates the size, in bytes, of F(n) itself, with
// a margin of roughly 10%; intermediate buffers are not counted.
func EstimateMemoryBytes(n uint64) uint64 { return dispatch.EstimateMemoryBytes(n) }

// Prewarm runs this module's one-shot setup work (threshold calibration,
// running an FFT Doubling probe on GOMAXPROCS goroutines so FFT planners
// get built) up front. Safe to call more
// than once or concurrently; the work itself runs exactly once.
func Prewarm() { warmup.Prewarm() }

// FibRange returns a lazy, dual-ended iterator over F(start), ...,
// F(end-1).
func FibRange(start, end uint64) *fibrange.Range { return fibrange.New(start, end) }

// FibRangeParallel computes F(start), ..., F(end-1) using one goroutine
// per contiguous chunk of up to 2048 indices.
func FibRangeParallel(ctx context.Context, start, end uint64) ([]Int, error) {
	return fibrange.CollectParallel(ctx, start, end)
}

// AlgorithmRun is one entry of RunAllParallel's result: the algorithm
// used, how long it took, and the value it produced.
type AlgorithmRun struct {
	Algorithm Algorithm
	Elapsed   time.Duration
	Value     Int
}

// RunAllParallel computes F(n) with all three algorithms concurrently and
// returns all three results, letting a caller cross-check agreement or
// compare timings the way the reference implementation's
// run_all_parallel does.
func RunAllParallel(n uint64) []AlgorithmRun {
	type slot struct {
		algo Algorithm
		run  func() Int
	}
	slots := []slot{
		{FastDoubling, func() Int { return FibonacciFastDoubling(n) }},
		{Parallel, func() Int { return FibonacciParallel(n) }},
		{FFT, func() Int { return FibonacciFFT(n) }},
	}

	results := make([]AlgorithmRun, len(slots))
	done := make(chan int, len(slots))
	for i, s := range slots {
		i, s := i, s
		go func() {
			start := time.Now()
			value := s.run()
			results[i] = AlgorithmRun{Algorithm: s.algo, Elapsed: time.Since(start), Value: value}
			done <- i
		}()
	}
	for range slots {
		<-done
	}
	return results
}
