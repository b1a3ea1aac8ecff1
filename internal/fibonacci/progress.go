package fibonacci

import "math/big"

// ProgressFunc receives the fraction (0.0 to 1.0) of work completed so
// far. It is called from whichever goroutine is driving the doubling
// loop; implementations that touch shared state must synchronize
// themselves.
type ProgressFunc func(fraction float64)

// noProgress is used wherever a caller does not supply a ProgressFunc, so
// the doubling loops never need a nil check in their hot path.
func noProgress(float64) {}

// ProgressUpdate is the channel-friendly counterpart of ProgressFunc, for
// callers (such as cmd/fibcalc) that want to watch several concurrent
// calculations from one consumer goroutine instead of taking a direct
// callback.
type ProgressUpdate struct {
	CalculatorIndex int
	Value           float64
}

// ChannelProgress adapts a ProgressUpdate channel into a ProgressFunc,
// tagging every update with idx. Sends are non-blocking: a full channel
// drops the update rather than stalling the calculation, exactly as the
// teacher's reporter closure in calculator.go did.
func ChannelProgress(ch chan<- ProgressUpdate, idx int) ProgressFunc {
	if ch == nil {
		return noProgress
	}
	return func(fraction float64) {
		if fraction > 1.0 {
			fraction = 1.0
		}
		select {
		case ch <- ProgressUpdate{CalculatorIndex: idx, Value: fraction}:
		default:
		}
	}
}

// doublingWorkEstimator tracks the advisory "work done" fraction used by
// the doubling loops' progress callbacks. Ported from the teacher's
// FFTBasedCalculator, which models the cost of the s-th doubling step
// (s = 0 at the most significant bit) as growing like 4^s — an unverified but
// directionally reasonable proxy for the cost of the big-integer
// multiplications at that step, since each step's operands roughly double
// in bit length and multiplication cost scales worse than linearly with
// operand size. Kept as a rough progress indicator, not a performance
// guarantee.
type doublingWorkEstimator struct {
	numBits   int
	totalWork big.Int
	workDone  big.Int
	step      big.Int
}

func newDoublingWorkEstimator(numBits int) *doublingWorkEstimator {
	e := &doublingWorkEstimator{numBits: numBits}
	if numBits <= 0 {
		return e
	}
	var four, exp, one, three big.Int
	four.SetInt64(4)
	one.SetInt64(1)
	three.SetInt64(3)
	exp.Exp(&four, big.NewInt(int64(numBits)), nil)
	e.totalWork.Sub(&exp, &one)
	e.totalWork.Div(&e.totalWork, &three)
	return e
}

// recordStep records the step at bit index i (counting down from
// numBits-1), advances workDone by 4^(numBits-1-i) and reports the
// resulting fraction through report, if totalWork is nonzero.
func (e *doublingWorkEstimator) recordStep(i int, report ProgressFunc) {
	if e.totalWork.Sign() == 0 {
		return
	}
	e.step.Exp(big.NewInt(4), big.NewInt(int64(e.numBits-1-i)), nil)
	e.workDone.Add(&e.workDone, &e.step)
	f := new(big.Float).SetInt(&e.workDone)
	total := new(big.Float).SetInt(&e.totalWork)
	fraction, _ := new(big.Float).Quo(f, total).Float64()
	report(fraction)
}
