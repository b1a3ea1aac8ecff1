package config

import (
	"math"
	"testing"
)

func TestThresholdOrdering(t *testing.T) {
	th := Defaults.Thresholds
	if th.ParallelCrossover >= th.FFTCrossover {
		t.Errorf("ParallelCrossover (%d) must be strictly below FFTCrossover (%d)", th.ParallelCrossover, th.FFTCrossover)
	}
}

// TestFFTPrecisionConstraint asserts the inequality the FFT digit-packing
// scheme depends on: 2*baseBits + log2(fftSize) < 53, for the largest
// transform size this module is expected to reach (n close to
// MaxSafeN/95*1000, the largest index this module will attempt).
func TestFFTPrecisionConstraint(t *testing.T) {
	fft := Defaults.FFT

	// An index near the safety ceiling produces a result on the order of
	// MaxSafeN*0.694 bits (Fibonacci numbers grow at rate log2(phi) per
	// index); approximate the largest plausible FFT transform size from
	// that bound using the massive-threshold digit width.
	approxResultBits := float64(Defaults.Limits.MaxSafeN) * 0.7
	approxDigits := approxResultBits / float64(fft.BaseBitsMassive)
	fftSize := math.Pow(2, math.Ceil(math.Log2(approxDigits*2)))

	lhs := float64(2*fft.BaseBitsMassive) + math.Log2(fftSize)
	if lhs >= 53 {
		t.Errorf("precision constraint violated at the safety ceiling: 2*baseBits + log2(fftSize) = %.2f, want < 53", lhs)
	}
}

func TestEstimateOptimalParallelThresholdSingleCoreDisablesParallelism(t *testing.T) {
	// EstimateOptimalParallelThreshold is hardware-dependent in general,
	// but its single-core branch is a fixed, testable contract: a
	// 1-core machine should report 0 (sequential only) regardless of
	// what runtime.NumCPU() happens to return on the test runner.
	if got := estimateForCores(1); got != 0 {
		t.Errorf("estimateForCores(1) = %d, want 0", got)
	}
}
