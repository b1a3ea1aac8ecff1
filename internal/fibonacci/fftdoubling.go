package fibonacci

import (
	"math"
	"math/big"
	"math/bits"

	"github.com/agbru/fibcore/internal/bigint"
	"github.com/agbru/fibcore/internal/config"
)

// FibonacciFFT computes F(n) using the same Fast Doubling recurrence as
// FibonacciFastDoubling, but once an operand's bit length exceeds
// config.Defaults.Thresholds.FFTBitThreshold it replaces the step's three
// separate big.Int multiplications with a single unified FFT step that
// produces both F(2k) and F(2k+1) from two forward transforms and two
// inverse transforms, rather than the six or seven transforms a naive
// per-multiplication FFT approach would need (see unifiedFFTStep).
func FibonacciFFT(n uint64) bigint.Int {
	return fftWithProgress(n, noProgress)
}

// FibonacciFFTWithProgress is FibonacciFFT with an advisory progress
// callback.
func FibonacciFFTWithProgress(n uint64, progress ProgressFunc) bigint.Int {
	return fftWithProgress(n, progress)
}

func fftWithProgress(n uint64, progress ProgressFunc) bigint.Int {
	if n <= MaxSmallIndex {
		progress(1.0)
		return fibonacciSmall(n)
	}

	planner := acquirePlanner()
	defer releasePlanner(planner)

	fk := big.NewInt(0)
	fk1 := big.NewInt(1)
	threshold := config.Defaults.Thresholds.FFTBitThreshold
	numBits := bits.Len64(n)
	estimator := newDoublingWorkEstimator(numBits)

	for i := numBits - 1; i >= 0; i-- {
		var c, d *big.Int
		if fk.BitLen() > threshold || fk1.BitLen() > threshold {
			c, d = unifiedFFTStep(fk, fk1, planner)
		} else {
			t2 := new(big.Int).Lsh(fk1, 1)
			t2.Sub(t2, fk)
			c = new(big.Int).Mul(fk, t2)
			t1 := new(big.Int).Mul(fk1, fk1)
			t4 := new(big.Int).Mul(fk, fk)
			d = t1.Add(t1, t4)
		}
		fk, fk1 = c, d

		if (n>>uint(i))&1 == 1 {
			next := new(big.Int).Add(fk, fk1)
			fk, fk1 = fk1, next
		}

		estimator.recordStep(i, progress)
	}
	progress(1.0)
	return bigint.Wrap(fk)
}

// unifiedFFTStep computes (F(2k), F(2k+1)) from (a, b) = (F(k), F(k+1))
// using exactly two forward transforms and two inverse transforms:
//
//  1. Pack a and b into fixed-width digit arrays in base 2^baseBits and
//     zero-pad both to a common power-of-two length large enough to hold
//     the full (non-wrapping) convolution.
//  2. Forward-transform each digit array once: A = FFT(a), B = FFT(b).
//  3. Because the FFT is linear, FFT(2b-a) = 2B - A needs no transform of
//     its own, so the two required products become
//     Cfreq = A .* (2B - A)   (pointwise, yields a*(2b-a) = F(2k))
//     Dfreq = A.*A + B.*B     (pointwise, yields a^2 + b^2 = F(2k+1))
//  4. Inverse-transform Cfreq and Dfreq, round to the nearest integer and
//     carry-propagate, and reassemble each digit array into a *big.Int.
func unifiedFFTStep(a, b *big.Int, planner *Planner) (c, d *big.Int) {
	baseBits := selectBaseBits(a.BitLen() + b.BitLen())
	lenA := digitLen(a.BitLen(), baseBits)
	lenB := digitLen(b.BitLen(), baseBits)
	size := nextPowerOfTwo(lenA + lenB)

	fa := digitsToComplex(a, baseBits, size)
	fb := digitsToComplex(b, baseBits, size)
	fftInPlace(fa, planner, false)
	fftInPlace(fb, planner, false)

	cFreq := make([]complex128, size)
	dFreq := make([]complex128, size)
	for i := 0; i < size; i++ {
		cFreq[i] = fa[i] * (2*fb[i] - fa[i])
		dFreq[i] = fa[i]*fa[i] + fb[i]*fb[i]
	}

	fftInPlace(cFreq, planner, true)
	fftInPlace(dFreq, planner, true)

	c = complexToDigits(cFreq, baseBits)
	d = complexToDigits(dFreq, baseBits)
	return c, d
}

// selectBaseBits picks the FFT digit width. The precision constraint this
// module relies on is 2*baseBits + log2(fftSize) < 53: every convolution
// output accumulates up to fftSize terms, each carrying up to 2*baseBits
// bits of product, and the running sum must still be exactly representable
// in a float64's 53-bit mantissa. Below the massive threshold 13-bit
// digits satisfy that inequality for any n this module accepts; above it
// digits narrow to 12 bits to keep the same margin as operands grow.
func selectBaseBits(combinedBitLen int) int {
	if combinedBitLen > config.Defaults.FFT.MassiveThreshold {
		return config.Defaults.FFT.BaseBitsMassive
	}
	return config.Defaults.FFT.BaseBitsDefault
}

func digitLen(bitLen, baseBits int) int {
	if bitLen == 0 {
		return 1
	}
	return (bitLen + baseBits - 1) / baseBits
}

// digitsToComplex packs x into size digits of baseBits bits each, embedded
// as the real part of a complex128 slice ready for a forward transform.
func digitsToComplex(x *big.Int, baseBits, size int) []complex128 {
	out := make([]complex128, size)
	tmp := new(big.Int).Set(x)
	mask := new(big.Int).Lsh(big.NewInt(1), uint(baseBits))
	mask.Sub(mask, big.NewInt(1))
	digit := new(big.Int)
	for i := 0; i < size && tmp.Sign() != 0; i++ {
		digit.And(tmp, mask)
		out[i] = complex(float64(digit.Int64()), 0)
		tmp.Rsh(tmp, uint(baseBits))
	}
	return out
}

// complexToDigits rounds the real part of each FFT output bin to the
// nearest integer, carry-propagates in base 2^baseBits, and reassembles
// the result into a *big.Int.
func complexToDigits(freq []complex128, baseBits int) *big.Int {
	base := int64(1) << uint(baseBits)
	var carry int64
	digits := make([]int64, 0, len(freq)+4)
	for _, bin := range freq {
		v := int64(math.Round(real(bin))) + carry
		digits = append(digits, v%base)
		carry = v / base
	}
	for carry != 0 {
		digits = append(digits, carry%base)
		carry /= base
	}

	// Bins of a*(2b-a) can be negative, so digits are signed and must be
	// added back in rather than OR-ed.
	result := new(big.Int)
	for i := len(digits) - 1; i >= 0; i-- {
		result.Lsh(result, uint(baseBits))
		result.Add(result, big.NewInt(digits[i]))
	}
	return result
}
