// Package bigint provides the arbitrary-precision integer facade every
// Fibonacci algorithm in this module builds on. It wraps math/big.Int and
// adds a single piece of behavior the standard library does not: an
// adaptive multiply that switches to an FFT-based multiplication backend
// once the operands' combined bit length is large enough for it to pay off.
package bigint

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// FFTMulBitThreshold is the combined-operand bit length above which Mul
// delegates to the FFT-based multiplication backend instead of math/big's
// built-in Karatsuba/Toom-Cook paths. Mirrors the teacher's threshold-gated
// mulFFT dispatch, generalized into the facade itself so every algorithm
// (Fast Doubling, Parallel Doubling, FFT Doubling) benefits without having
// to know about bigfft directly.
const FFTMulBitThreshold = 20000

// Int is a thin wrapper around *big.Int. The zero value is 0 and ready to
// use (New returns it); other values come from FromUint64, FromUint128,
// or a big.Int already in hand via Wrap.
type Int struct {
	v big.Int
}

// New returns a zero-valued Int.
func New() Int { return Int{} }

// Wrap adopts an existing *big.Int without copying it.
func Wrap(v *big.Int) Int { return Int{v: *v} }

// FromUint64 returns the Int representation of x.
func FromUint64(x uint64) Int {
	var i Int
	i.v.SetUint64(x)
	return i
}

// FromUint128 returns the Int representation of the 128-bit unsigned value
// hi<<64 | lo. Go has no native 128-bit integer type, so the small-n
// lookup table (which holds values up to F(186), some exceeding 64 bits)
// stores its entries as (hi, lo) pairs and reconstructs them through this
// constructor.
func FromUint128(hi, lo uint64) Int {
	var i Int
	i.v.SetUint64(hi)
	i.v.Lsh(&i.v, 64)
	var low big.Int
	low.SetUint64(lo)
	i.v.Or(&i.v, &low)
	return i
}

// Big returns the underlying *big.Int. Callers must not mutate the result
// through methods other than those that copy first (e.g. (*big.Int).Set
// into a separate variable); Int's own methods are the supported mutation
// path.
func (i *Int) Big() *big.Int { return &i.v }

// Set copies x's value into i and returns i.
func (i *Int) Set(x Int) Int {
	i.v.Set(&x.v)
	return *i
}

// Clone returns an independent copy of i.
func (i Int) Clone() Int {
	var c Int
	c.v.Set(&i.v)
	return c
}

// Add sets i = a + b and returns i.
func (i *Int) Add(a, b Int) Int {
	i.v.Add(&a.v, &b.v)
	return *i
}

// Sub sets i = a - b and returns i. Behavior on a < b is math/big.Int's
// own signed result: a valid negative big.Int, never masked or clamped.
func (i *Int) Sub(a, b Int) Int {
	i.v.Sub(&a.v, &b.v)
	return *i
}

// Mul sets i = a * b, using the FFT backend when it is expected to be
// faster than math/big's built-in multiplication.
func (i *Int) Mul(a, b Int) Int {
	if shouldUseFFTMul(&a.v, &b.v) {
		i.v.Set(bigfft.Mul(&a.v, &b.v))
		return *i
	}
	i.v.Mul(&a.v, &b.v)
	return *i
}

// Square sets i = a * a.
func (i *Int) Square(a Int) Int {
	return i.Mul(a, a)
}

// Lsh sets i = a << n.
func (i *Int) Lsh(a Int, n uint) Int {
	i.v.Lsh(&a.v, n)
	return *i
}

// BitLen returns the length of i's absolute value in bits; BitLen of the
// zero value is 0.
func (i Int) BitLen() int { return i.v.BitLen() }

// Cmp compares i and x, returning -1, 0, or +1.
func (i Int) Cmp(x Int) int { return i.v.Cmp(&x.v) }

// Bytes returns the little-endian byte representation of i's absolute
// value with no trailing zero byte; it returns a zero-length slice for 0.
func (i Int) Bytes() []byte {
	be := i.v.Bytes()
	out := make([]byte, len(be))
	for idx, b := range be {
		out[len(be)-1-idx] = b
	}
	return out
}

// SetBytes interprets buf as the little-endian representation of an
// unsigned integer and sets i to that value. buf may be of any length,
// including empty (which yields 0).
func (i *Int) SetBytes(buf []byte) Int {
	be := make([]byte, len(buf))
	for idx, b := range buf {
		be[len(buf)-1-idx] = b
	}
	i.v.SetBytes(be)
	return *i
}

// String returns the base-10 representation of i.
func (i Int) String() string { return i.v.String() }

func shouldUseFFTMul(x, y *big.Int) bool {
	return x.BitLen()+y.BitLen() > FFTMulBitThreshold
}
