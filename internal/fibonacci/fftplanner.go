package fibonacci

import (
	"math"
	"math/cmplx"
	"sync"
)

// Planner caches the twiddle-factor tables a complex FFT needs, keyed by
// transform length and direction. Building a twiddle table costs O(n)
// trigonometric evaluations, so a planner that survives across many
// doubling steps turns that cost into a one-time expense per size instead
// of a per-call one.
//
// Go has no thread-local storage a library can hook into, so the
// "one planner per worker, created on first use, reused for the worker's
// lifetime" idea from spec translates into a bounded pool of planners
// instead: a goroutine borrows one for the duration of a single FFT
// Doubling call and returns it afterward, exactly as the rest of this
// module pools its big-integer scratch state.
type Planner struct {
	tables map[twiddleKey][]complex128
}

type twiddleKey struct {
	length  int
	inverse bool
}

func newPlanner() *Planner {
	return &Planner{tables: make(map[twiddleKey][]complex128)}
}

func (p *Planner) twiddles(length int, inverse bool) []complex128 {
	key := twiddleKey{length: length, inverse: inverse}
	if t, ok := p.tables[key]; ok {
		return t
	}
	half := length / 2
	t := make([]complex128, half)
	sign := -1.0
	if inverse {
		sign = 1.0
	}
	for i := 0; i < half; i++ {
		theta := sign * 2 * math.Pi * float64(i) / float64(length)
		t[i] = cmplx.Rect(1, theta)
	}
	p.tables[key] = t
	return t
}

var plannerPool = sync.Pool{
	New: func() any { return newPlanner() },
}

func acquirePlanner() *Planner {
	return plannerPool.Get().(*Planner)
}

func releasePlanner(p *Planner) {
	plannerPool.Put(p)
}
