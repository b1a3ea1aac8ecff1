// Package config holds the tuning constants that govern algorithm
// selection and resource limits, plus hardware-based estimation functions
// usable as a fallback before the runtime calibrator (internal/calibration)
// has produced a measured value. The estimation functions follow the
// teacher family's thresholds.EstimateOptimalParallelThreshold style of
// switching on runtime.NumCPU, kept here as a distinct, independently
// testable layer below the one-shot measurement in internal/calibration.
package config

import "runtime"

// Thresholds holds the bit-length/index crossover points between
// algorithms. The zero value is not meaningful; use Defaults.
type Thresholds struct {
	// ParallelCrossover is the smallest n at which Parallel Doubling is
	// preferred over Fast Doubling by the adaptive dispatcher.
	ParallelCrossover uint64
	// FFTCrossover is the smallest n at which FFT Doubling is preferred
	// over Parallel Doubling by the adaptive dispatcher.
	FFTCrossover uint64
	// FFTBitThreshold is the operand bit length above which a doubling
	// step's multiplications switch to the FFT engine inside FFT Doubling
	// itself (independent of the dispatcher's algorithm-level crossover).
	FFTBitThreshold int
}

// Limits holds the hard safety ceilings enforced before dispatch.
type Limits struct {
	// MaxSafeN is the largest index this module will ever attempt.
	MaxSafeN uint64
	// SafeMemoryBytes is the memory budget an estimated computation must
	// stay within.
	SafeMemoryBytes uint64
}

// FFTDigits holds the digit-packing parameters for the complex-FFT
// multiplication engine.
type FFTDigits struct {
	// BaseBitsDefault is the number of bits packed per FFT digit below
	// MassiveThreshold.
	BaseBitsDefault int
	// BaseBitsMassive is the narrower digit width used above
	// MassiveThreshold, trading digit density for transform precision.
	BaseBitsMassive int
	// MassiveThreshold is the combined bit length above which
	// BaseBitsMassive replaces BaseBitsDefault.
	MassiveThreshold int
}

// Defaults reproduces the module's fixed tuning constants.
var Defaults = struct {
	Thresholds Thresholds
	Limits     Limits
	FFT        FFTDigits
}{
	Thresholds: Thresholds{
		ParallelCrossover: 40_000,
		FFTCrossover:      200_000,
		FFTBitThreshold:   50_000,
	},
	Limits: Limits{
		MaxSafeN:        1_000_000_000_000,
		SafeMemoryBytes: 8 * 1024 * 1024 * 1024,
	},
	FFT: FFTDigits{
		BaseBitsDefault:  13,
		BaseBitsMassive:  12,
		MassiveThreshold: 100_000_000,
	},
}

// EstimateOptimalParallelThreshold gives a hardware-based guess at the
// parallel threshold, usable before calibration.Threshold has run.
// Grounded on the same NumCPU-tiered heuristic the broader teacher family
// uses, rescaled into this module's own base-threshold range (see
// internal/calibration).
func EstimateOptimalParallelThreshold() int {
	return estimateForCores(runtime.NumCPU())
}

// estimateForCores is the core-count switch behind
// EstimateOptimalParallelThreshold, separated so it can be tested
// independently of the machine's actual runtime.NumCPU().
func estimateForCores(cores int) int {
	switch {
	case cores == 1:
		return 0
	case cores <= 2:
		return 60_000
	case cores <= 4:
		return 40_000
	case cores <= 8:
		return 25_000
	default:
		return 20_000
	}
}
