// Package dispatch implements the adaptive selection between Fast
// Doubling, Parallel Doubling, and FFT Doubling by index size, plus the
// safety checks that run before any of them are invoked. Grounded line
// for line on the original implementation's fibonacci_adaptive /
// try_fibonacci_adaptive: check the hard index ceiling first, then the
// estimated-memory ceiling, then pick an algorithm by comparing n against
// the two threshold crossovers.
package dispatch

import (
	"math/bits"

	"github.com/agbru/fibcore/internal/bigint"
	"github.com/agbru/fibcore/internal/calibration"
	"github.com/agbru/fibcore/internal/config"
	"github.com/agbru/fibcore/internal/fiberr"
	"github.com/agbru/fibcore/internal/fibonacci"
	"github.com/agbru/fibcore/internal/obslog"
)

// EstimateMemoryBytes estimates the size, in bytes, of F(n) itself. F(n)
// has about 0.694*n bits, i.e. about 0.0868 bytes per index; the
// coefficient 95/1000 adds a margin of roughly 10%. Intermediate buffers
// (pooled doubling state, FFT Doubling's complex buffers) are not
// counted. The product n*95 is formed in 128 bits, so it cannot overflow.
func EstimateMemoryBytes(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	hi, lo := bits.Mul64(n, 95)
	q, _ := bits.Div64(hi, lo, 1000)
	return q
}

// TryAdaptive computes F(n), choosing an algorithm by n's size, after
// checking n against the configured safety limits. It is the fallible
// counterpart to Adaptive.
func TryAdaptive(n uint64) (bigint.Int, error) {
	limits := config.Defaults.Limits
	if n > limits.MaxSafeN {
		obslog.Logger.Warn().Uint64("n", n).Uint64("max_safe_n", limits.MaxSafeN).Msg("rejected: index exceeds safety ceiling")
		return bigint.Int{}, &fiberr.InputTooLarge{N: n, Max: limits.MaxSafeN}
	}
	required := EstimateMemoryBytes(n)
	if required > limits.SafeMemoryBytes {
		obslog.Logger.Warn().Uint64("n", n).Uint64("required_bytes", required).Uint64("limit_bytes", limits.SafeMemoryBytes).Msg("rejected: estimated memory exceeds safety limit")
		return bigint.Int{}, &fiberr.MemoryLimitExceeded{RequiredBytes: required, LimitBytes: limits.SafeMemoryBytes}
	}
	return adaptiveDispatch(n), nil
}

// Adaptive computes F(n) the same way TryAdaptive does, panicking instead
// of returning an error on a limit violation. It exists for callers that
// have already validated n (or prefer to treat a violation as a
// programming error), mirroring the teacher's distinction between a
// panicking convenience entry point and its fallible counterpart.
func Adaptive(n uint64) bigint.Int {
	result, err := TryAdaptive(n)
	if err != nil {
		panic(err)
	}
	return result
}

// Pick reports which algorithm Adaptive/TryAdaptive would use for n,
// without running the computation.
func Pick(n uint64) fibonacci.Algorithm {
	thresholds := config.Defaults.Thresholds
	switch {
	case n < thresholds.ParallelCrossover:
		return fibonacci.FastDoubling
	case n < thresholds.FFTCrossover:
		return fibonacci.Parallel
	default:
		return fibonacci.FFT
	}
}

func adaptiveDispatch(n uint64) bigint.Int {
	thresholds := config.Defaults.Thresholds
	switch {
	case n < thresholds.ParallelCrossover:
		return fibonacci.FibonacciFastDoubling(n)
	case n < thresholds.FFTCrossover:
		return fibonacci.FibonacciParallel(n, calibration.Threshold())
	default:
		return fibonacci.FibonacciFFT(n)
	}
}
