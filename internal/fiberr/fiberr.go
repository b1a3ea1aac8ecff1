// Package fiberr defines the error taxonomy returned by the fallible entry
// points of this module. There are exactly two kinds: the requested index
// is rejected outright, or it would require more memory than this process
// is willing to commit. Both are plain typed structs implementing error,
// inspected with errors.As rather than sentinel values, following the
// style of the teacher's own internal/errors package.
package fiberr

import "fmt"

// InputTooLarge reports that n exceeds the largest index this module will
// attempt, regardless of available memory.
type InputTooLarge struct {
	N   uint64
	Max uint64
}

func (e *InputTooLarge) Error() string {
	return fmt.Sprintf("index %d exceeds the maximum supported index %d", e.N, e.Max)
}

// MemoryLimitExceeded reports that computing F(n) is estimated to require
// more memory than the configured safety limit.
type MemoryLimitExceeded struct {
	RequiredBytes uint64
	LimitBytes    uint64
}

func (e *MemoryLimitExceeded) Error() string {
	return fmt.Sprintf("estimated memory requirement %d bytes exceeds the limit of %d bytes", e.RequiredBytes, e.LimitBytes)
}
