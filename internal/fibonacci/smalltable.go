package fibonacci

import "github.com/agbru/fibcore/internal/bigint"

// MaxSmallIndex is the largest index served directly from the lookup
// table. F(186) is the last Fibonacci number that fits in 128 bits, which
// is the widest integer this table stores without falling back to
// *big.Int arithmetic to build itself.
const MaxSmallIndex = 186

// smallTable holds F(0)..F(MaxSmallIndex) as (high, low) halves of a
// 128-bit unsigned value, built once at init time by straightforward
// iterative addition rather than transcribed as literals.
var smallTable [MaxSmallIndex + 1][2]uint64

func init() {
	lo0, hi0 := uint64(0), uint64(0)
	lo1, hi1 := uint64(1), uint64(0)
	smallTable[0] = [2]uint64{hi0, lo0}
	if MaxSmallIndex >= 1 {
		smallTable[1] = [2]uint64{hi1, lo1}
	}
	for i := 2; i <= MaxSmallIndex; i++ {
		lo, hi := add128(lo0, hi0, lo1, hi1)
		smallTable[i] = [2]uint64{hi, lo}
		lo0, hi0 = lo1, hi1
		lo1, hi1 = lo, hi
	}
}

// add128 adds two 128-bit unsigned values given as (low, high) halves,
// carrying between halves by hand since Go has no native uint128.
func add128(lo0, hi0, lo1, hi1 uint64) (lo, hi uint64) {
	lo = lo0 + lo1
	carry := uint64(0)
	if lo < lo0 {
		carry = 1
	}
	hi = hi0 + hi1 + carry
	return lo, hi
}

// fibonacciSmall returns F(n) for n <= MaxSmallIndex. It panics outside
// that range; callers are expected to have already routed larger n
// elsewhere, so an out-of-range call here is a programming error, not a
// user-facing one.
func fibonacciSmall(n uint64) bigint.Int {
	if n > MaxSmallIndex {
		panic("fibonacci: fibonacciSmall called with n outside the lookup table range")
	}
	pair := smallTable[n]
	return bigint.FromUint128(pair[0], pair[1])
}

// pairSmall returns (F(n), F(n+1)) for n < MaxSmallIndex, used by FibPair
// to seed its iteration without walking the recurrence from zero.
func pairSmall(n uint64) (bigint.Int, bigint.Int) {
	if n+1 > MaxSmallIndex {
		panic("fibonacci: pairSmall called with n outside the lookup table range")
	}
	return fibonacciSmall(n), fibonacciSmall(n + 1)
}
