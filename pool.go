package md2cv

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one render can run.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent browser instances (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// Pool bounds how many render engines run at once.
// Each render launches its own engine; the pool only limits concurrency.
// A Pool is safe for concurrent use and may be shared between Generators.
type Pool struct {
	size int
	sem  *semaphore.Weighted
}

// NewPool creates a pool allowing n concurrent engines (at least one).
func NewPool(n int) *Pool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &Pool{size: n, sem: semaphore.NewWeighted(int64(n))}
}

// Acquire blocks until a slot is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) error {
	return p.sem.Acquire(ctx, 1)
}

// Release frees a slot taken by Acquire.
func (p *Pool) Release() {
	p.sem.Release(1)
}

// Size returns the pool capacity.
func (p *Pool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
