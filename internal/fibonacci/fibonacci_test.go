package fibonacci

import (
	"sync"
	"testing"

	"github.com/agbru/fibcore/internal/bigint"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var knownFibResults = []struct {
	n      uint64
	result string
}{
	{0, "0"},
	{1, "1"},
	{2, "1"},
	{10, "55"},
	{20, "6765"},
	{50, "12586269025"},
	{92, "7540113804746346429"},
	{93, "12200160415121876738"},
	{100, "354224848179261915075"},
	{200, "280571172992510140037611932413038677189525"},
	{1000, "43466557686937456435688527675040625802564660517371780402481729089536555417949051890403879840079255169295922593080322634775209689623239873322471161642996440906533187938298969649928516003704476137795166849228875"},
}

func TestAlgorithmsAgreeWithKnownValues(t *testing.T) {
	for _, tc := range knownFibResults {
		tc := tc
		t.Run("", func(t *testing.T) {
			t.Parallel()
			for name, fn := range map[string]func(uint64) bigint.Int{
				"fast-doubling": FibonacciFastDoubling,
				"parallel":      func(n uint64) bigint.Int { return FibonacciParallel(n, 1024) },
				"fft":           FibonacciFFT,
			} {
				if got := fn(tc.n).String(); got != tc.result {
					t.Errorf("%s: F(%d) = %s, want %s", name, tc.n, got, tc.result)
				}
			}
		})
	}
}

func TestAlgorithmsAgreeWithMatrixCheck(t *testing.T) {
	algorithms := map[string]func(uint64) bigint.Int{
		"FibonacciFastDoubling": FibonacciFastDoubling,
		"FibonacciParallel":     func(n uint64) bigint.Int { return FibonacciParallel(n, 1024) },
		"FibonacciFFT":          FibonacciFFT,
	}
	for n := uint64(0); n <= 400; n++ {
		want := bigint.Wrap(fibonacciMatrixCheck(n))
		for name, fn := range algorithms {
			if got := fn(n); got.Cmp(want) != 0 {
				t.Fatalf("%s(%d) disagrees with matrix check: %s vs %s", name, n, got.String(), want.String())
			}
		}
	}
}

func TestFibPairMatchesSequentialValues(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 50, 186, 187, 500, 10000} {
		fk, fk1 := FibPair(n)
		if fk.Cmp(FibonacciFastDoubling(n)) != 0 {
			t.Errorf("FibPair(%d).first = %s, want F(%d) = %s", n, fk.String(), n, FibonacciFastDoubling(n).String())
		}
		if fk1.Cmp(FibonacciFastDoubling(n+1)) != 0 {
			t.Errorf("FibPair(%d).second = %s, want F(%d) = %s", n, fk1.String(), n+1, FibonacciFastDoubling(n+1).String())
		}
	}
}

func TestLookupTableReturnsIndependentCopies(t *testing.T) {
	a := fibonacciSmall(10)
	b := fibonacciSmall(10)
	var bumped bigint.Int
	bumped.Add(a, bigint.FromUint64(1))
	if bumped.Cmp(b) == 0 {
		t.Fatal("bumping one lookup result changed another independently-retrieved copy")
	}
	if b.Cmp(fibonacciSmall(10)) != 0 {
		t.Fatal("fibonacciSmall(10) changed between calls")
	}
}

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]Algorithm{
		"fd": FastDoubling, "fast": FastDoubling, "fast-doubling": FastDoubling,
		"par": Parallel, "parallel": Parallel, "mx": Parallel, "matrix": Parallel,
		"fft": FFT, "adaptive": Adaptive, "auto": Adaptive,
	}
	for input, want := range cases {
		got, ok := ParseAlgorithm(input)
		if !ok || got != want {
			t.Errorf("ParseAlgorithm(%q) = (%v, %v), want (%v, true)", input, got, ok, want)
		}
	}
	if _, ok := ParseAlgorithm("not-an-algorithm"); ok {
		t.Error("ParseAlgorithm accepted an unrecognized name")
	}
}

// TestProgressReporterIsMonotonic drives each algorithm through a real
// computation large enough to take several doubling steps and asserts the
// progress callback's values never decrease and end at 1.0.
func TestProgressReporterIsMonotonic(t *testing.T) {
	algorithms := map[string]func(uint64, ProgressFunc) bigint.Int{
		"fast-doubling": FibonacciFastDoublingWithProgress,
		"parallel":      func(n uint64, p ProgressFunc) bigint.Int { return FibonacciParallelWithProgress(n, 1024, p) },
		"fft":           FibonacciFFTWithProgress,
	}

	for name, fn := range algorithms {
		name, fn := name, fn
		t.Run(name, func(t *testing.T) {
			progressChan := make(chan ProgressUpdate, 200)
			var lastProgress float64
			var wg sync.WaitGroup
			wg.Add(1)

			go func() {
				defer wg.Done()
				for update := range progressChan {
					if update.Value < lastProgress {
						t.Errorf("non-monotonic progress: previous %f, current %f", lastProgress, update.Value)
					}
					lastProgress = update.Value
				}
			}()

			fn(10000, ChannelProgress(progressChan, 0))
			close(progressChan)
			wg.Wait()

			if lastProgress != 1.0 {
				t.Errorf("final progress = %f, want 1.0", lastProgress)
			}
		})
	}
}

// TestDoublingRecurrenceHolds checks F(n) + F(n+1) == F(n+2) on Fast
// Doubling's results for randomly sampled n.
func TestDoublingRecurrenceHolds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	properties.Property("F(n) + F(n+1) == F(n+2)", prop.ForAll(
		func(n uint64) bool {
			fn := FibonacciFastDoubling(n)
			fn1 := FibonacciFastDoubling(n + 1)
			fn2 := FibonacciFastDoubling(n + 2)
			var sum bigint.Int
			sum.Add(fn, fn1)
			return sum.Cmp(fn2) == 0
		},
		gen.UInt64Range(0, 5000),
	))

	properties.TestingRun(t)
}

// TestFastAndParallelAgree checks that Parallel Doubling, run with a very
// low threshold so its fan-out path actually engages, still agrees with
// Fast Doubling across the algorithm crossover region.
func TestFastAndParallelAgree(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("FibonacciFastDoubling(n) == FibonacciParallel(n, 1)", prop.ForAll(
		func(n uint64) bool {
			return FibonacciFastDoubling(n).Cmp(FibonacciParallel(n, 1)) == 0
		},
		gen.UInt64Range(0, 50000),
	))

	properties.TestingRun(t)
}
