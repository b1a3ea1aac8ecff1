package fibonacci

import (
	"sync"

	"github.com/agbru/fibcore/internal/bigint"
)

// doublingState aggregates the temporary values the Fast Doubling
// recurrence needs at each step, pooled exactly as the teacher's
// calculationState is: allocate six big.Int-backed values once per
// goroutine lifetime rather than once per call.
type doublingState struct {
	fK, fK1, t1, t2, t3, t4 bigint.Int
}

func (s *doublingState) Reset() {
	s.fK = bigint.FromUint64(0)
	s.fK1 = bigint.FromUint64(1)
}

var statePool = sync.Pool{
	New: func() any { return &doublingState{} },
}

func acquireState() *doublingState {
	s := statePool.Get().(*doublingState)
	s.Reset()
	return s
}

func releaseState(s *doublingState) {
	statePool.Put(s)
}
