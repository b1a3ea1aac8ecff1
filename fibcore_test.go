package fibcore

import (
	"context"
	"testing"
)

func TestFibonacciAdaptiveAgreesWithSpecificAlgorithms(t *testing.T) {
	n := uint64(1000)
	want := FibonacciFastDoubling(n)
	if got := FibonacciAdaptive(n); got.Cmp(want) != 0 {
		t.Errorf("FibonacciAdaptive(%d) = %s, want %s", n, got.String(), want.String())
	}
}

func TestTryFibonacciAdaptiveReturnsErrorOverLimit(t *testing.T) {
	_, err := TryFibonacciAdaptive(2_000_000_000_000)
	if err == nil {
		t.Fatal("expected an error for an index over the safety ceiling")
	}
}

func TestFibonacciAdaptivePanicsOverLimit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an index over the safety ceiling")
		}
	}()
	FibonacciAdaptive(2_000_000_000_000)
}

func TestRunAllParallelAgrees(t *testing.T) {
	results := RunAllParallel(500)
	if len(results) != 3 {
		t.Fatalf("RunAllParallel returned %d results, want 3", len(results))
	}
	for _, r := range results[1:] {
		if r.Value.Cmp(results[0].Value) != 0 {
			t.Errorf("algorithm %v disagrees with %v", r.Algorithm, results[0].Algorithm)
		}
	}
}

func TestFibRangeAndFibRangeParallelAgree(t *testing.T) {
	r := FibRange(100, 110)
	var sequential []string
	for {
		v, ok := r.Next()
		if !ok {
			break
		}
		sequential = append(sequential, v.String())
	}

	parallel, err := FibRangeParallel(context.Background(), 100, 110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parallel) != len(sequential) {
		t.Fatalf("got %d values from FibRangeParallel, want %d", len(parallel), len(sequential))
	}
	for i, v := range parallel {
		if v.String() != sequential[i] {
			t.Errorf("index %d: FibRangeParallel = %s, FibRange = %s", i, v.String(), sequential[i])
		}
	}
}

func TestParseAlgorithmRoundTrip(t *testing.T) {
	for _, name := range []string{"fd", "par", "fft", "adaptive"} {
		if _, ok := ParseAlgorithm(name); !ok {
			t.Errorf("ParseAlgorithm(%q) failed to parse", name)
		}
	}
}

func TestPrewarmIsIdempotent(t *testing.T) {
	Prewarm()
	Prewarm()
}

func TestEstimateMemoryBytesZero(t *testing.T) {
	if EstimateMemoryBytes(0) != 0 {
		t.Error("EstimateMemoryBytes(0) should be 0")
	}
}

func TestFibErrorMessageNamesTheOffendingIndex(t *testing.T) {
	_, err := TryFibonacciAdaptive(2_000_000_000_000)
	if err == nil {
		t.Fatal("expected a non-nil FibError")
	}
	if err.Error() == "" {
		t.Fatal("FibError.Error() should not be empty")
	}
}
