// Package warmup forces the one-shot setup costs this module defers
// until first use — threshold calibration and touching an FFT planner on
// every worker — to happen up front instead of during a user's first
// timed calculation. Grounded on the reference implementation's
// prewarm_system (force calibration, then fan a planner touch out across
// every worker via a join) and on the teacher family's
// EnsurePoolsWarmed/atomic-gated idempotent warm-up pattern.
package warmup

import (
	"context"
	"runtime"
	"sync"

	"github.com/agbru/fibcore/internal/calibration"
	"github.com/agbru/fibcore/internal/fibonacci"
	"github.com/agbru/fibcore/internal/obslog"
	"golang.org/x/sync/errgroup"
)

var once sync.Once

// fftWarmupProbeN is chosen so F(n) comfortably exceeds
// config.Defaults.Thresholds.FFTBitThreshold bits partway through the
// doubling walk (Fibonacci numbers grow at roughly 0.694 bits per index,
// so 150,000 yields results on the order of 104,000 bits against a
// 50,000-bit threshold), forcing FibonacciFFT to actually drive
// unifiedFFTStep and acquire a planner from the pool, rather than resolve
// entirely through the small-n lookup table the way a tiny probe would.
const fftWarmupProbeN = 150_000

// Prewarm forces threshold calibration and exercises the FFT planner pool
// on every available worker. It is idempotent: calling it more than once,
// including concurrently, runs the warm-up work exactly once.
func Prewarm() {
	once.Do(func() {
		calibration.Threshold()

		workers := runtime.GOMAXPROCS(0)
		g, _ := errgroup.WithContext(context.Background())
		for i := 0; i < workers; i++ {
			g.Go(func() error {
				fibonacci.FibonacciFFT(fftWarmupProbeN)
				return nil
			})
		}
		_ = g.Wait()

		obslog.Logger.Debug().Int("workers", workers).Msg("warm-up complete")
	})
}
