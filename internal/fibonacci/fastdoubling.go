package fibonacci

import (
	"math/bits"
	"sync"

	"github.com/agbru/fibcore/internal/bigint"
)

// FibonacciFastDoubling computes F(n) using the Fast Doubling identities
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k)^2 + F(k+1)^2
//
// walking the bits of n from most significant to least significant, the
// way the teacher's OptimizedFastDoubling does, minus the parallel
// fan-out (see FibonacciParallel for that variant).
func FibonacciFastDoubling(n uint64) bigint.Int {
	return fastDoublingWithProgress(n, noProgress)
}

// FibonacciFastDoublingWithProgress is FibonacciFastDoubling with an
// advisory progress callback, for callers driving a long-running
// computation from a UI.
func FibonacciFastDoublingWithProgress(n uint64, progress ProgressFunc) bigint.Int {
	return fastDoublingWithProgress(n, progress)
}

func fastDoublingWithProgress(n uint64, progress ProgressFunc) bigint.Int {
	if n <= MaxSmallIndex {
		progress(1.0)
		return fibonacciSmall(n)
	}
	result := doublingLoop(n, false, 0, progress)
	progress(1.0)
	return result
}

// FibPair returns (F(n), F(n+1)). It is the seeding primitive
// internal/fibrange uses to start a range iterator at an arbitrary index
// in O(log n) time instead of walking the recurrence from zero.
func FibPair(n uint64) (bigint.Int, bigint.Int) {
	if n+1 <= MaxSmallIndex {
		return pairSmall(n)
	}
	s := acquireState()
	defer releaseState(s)
	runDoublingSteps(s, n, false, 0, nil, noProgress)
	return s.fK.Clone(), s.fK1.Clone()
}

// doublingLoop runs the Fast Doubling recurrence to completion and
// returns F(n). parallel, when true, fans the three multiplications of a
// qualifying step out across goroutines (see FibonacciParallel); threshold
// is the operand bit length above which that fan-out kicks in.
func doublingLoop(n uint64, parallel bool, threshold int, progress ProgressFunc) bigint.Int {
	s := acquireState()
	defer releaseState(s)
	runDoublingSteps(s, n, parallel, threshold, plainMul, progress)
	return s.fK.Clone()
}

// mulFunc multiplies x and y into dest. runDoublingSteps takes one so its
// stepping logic does not depend on a particular multiply; every current
// caller uses plainMul (passing nil selects it). FFT Doubling does not go
// through runDoublingSteps; it runs its own loop in fftdoubling.go.
type mulFunc func(dest *bigint.Int, x, y bigint.Int)

func plainMul(dest *bigint.Int, x, y bigint.Int) {
	dest.Mul(x, y)
}

// runDoublingSteps performs the bit-by-bit Fast Doubling walk, leaving the
// result in s.fK. It is shared by FibonacciFastDoubling, FibonacciParallel,
// and FibPair.
func runDoublingSteps(s *doublingState, n uint64, parallel bool, threshold int, mul mulFunc, progress ProgressFunc) {
	if mul == nil {
		mul = plainMul
	}
	numBits := bits.Len64(n)
	estimator := newDoublingWorkEstimator(numBits)
	for i := numBits - 1; i >= 0; i-- {
		// t2 = 2*F(k+1) - F(k)
		s.t2.Lsh(s.fK1, 1)
		s.t2.Sub(s.t2, s.fK)

		if parallel && threshold > 0 && s.fK1.BitLen() > threshold {
			parallelTripleMultiply(s, mul)
		} else {
			mul(&s.t3, s.fK, s.t2)
			mul(&s.t1, s.fK1, s.fK1)
			mul(&s.t4, s.fK, s.fK)
		}

		// F(2k) = t3, F(2k+1) = t1 + t4
		s.fK.Add(s.t1, s.t4)
		s.fK, s.fK1, s.t3 = s.t3, s.fK, s.fK1

		if (n>>uint(i))&1 == 1 {
			s.t1.Add(s.fK, s.fK1)
			s.fK, s.fK1 = s.fK1, s.t1
		}

		estimator.recordStep(i, progress)
	}
}

// parallelTripleMultiply runs the three multiplications of one doubling
// step concurrently: two on fresh goroutines, one on the calling
// goroutine, joined by a WaitGroup. Mirrors the teacher's
// parallelMultiply3Optimized.
func parallelTripleMultiply(s *doublingState, mul mulFunc) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		mul(&s.t3, s.fK, s.t2)
	}()
	go func() {
		defer wg.Done()
		mul(&s.t1, s.fK1, s.fK1)
	}()
	mul(&s.t4, s.fK, s.fK)
	wg.Wait()
}
