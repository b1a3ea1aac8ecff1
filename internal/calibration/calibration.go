// Package calibration measures, once per process, the parallel threshold
// above which Parallel Doubling's extra goroutines pay for themselves on
// the running machine. Grounded on the original implementation's
// calibrate_parallel_threshold: time a fixed-size Fast Doubling call,
// combine the elapsed time with the core count into a base threshold, and
// memoize the result for the lifetime of the process.
package calibration

import (
	"runtime"
	"sync"
	"time"

	"github.com/agbru/fibcore/internal/fibonacci"
	"github.com/agbru/fibcore/internal/obslog"
)

// probeN is the fixed-size workload timed during calibration. Large
// enough to give a stable measurement, small enough to complete in well
// under a millisecond on any machine this module targets.
const probeN = 10_000

var (
	once      sync.Once
	threshold int
)

// Threshold returns the calibrated parallel threshold, running the
// one-shot measurement on first call and returning the memoized value on
// every call after.
func Threshold() int {
	once.Do(func() {
		threshold = measure()
		obslog.Logger.Debug().Int("parallel_threshold", threshold).Msg("calibration complete")
	})
	return threshold
}

func measure() int {
	start := time.Now()
	fibonacci.FibonacciFastDoubling(probeN)
	elapsed := time.Since(start)

	base := baseThreshold(runtime.NumCPU())
	switch {
	case elapsed < 200*time.Microsecond:
		return base + 10_000
	case elapsed > 1000*time.Microsecond:
		return saturatingSub(base, 5_000)
	default:
		return base
	}
}

func baseThreshold(cores int) int {
	switch {
	case cores >= 8:
		return 25_000
	case cores >= 4:
		return 40_000
	default:
		return 60_000
	}
}

func saturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}
