// Package fibonacci implements the three cooperating Fibonacci algorithms
// this module is built around — Fast Doubling, Parallel Doubling, and FFT
// Doubling — plus the small-n lookup table that fast-paths every index up
// to 186. Each algorithm is an independent, directly callable function;
// internal/dispatch chooses among them by index size, and
// internal/calibration measures the crossover point between Fast Doubling
// and Parallel Doubling on the running machine.
package fibonacci

import "github.com/agbru/fibcore/internal/bigint"

// Int aliases the facade type every function in this package returns, so
// callers outside internal/bigint rarely need to import it directly.
type Int = bigint.Int
