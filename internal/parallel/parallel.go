// Package parallel provides bounded parallel execution for independent jobs,
// such as decoding several graph documents at once.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	NumWorkers int // Maximum concurrent goroutines; <= 1 runs sequentially.
}

// DefaultConfig returns a worker count based on CPU count.
func DefaultConfig() Config {
	return Config{NumWorkers: runtime.NumCPU()}
}

// For executes f(i) for i in [0, n) on at most cfg.NumWorkers goroutines.
// It returns the error of the lowest failing index, or nil.
//
// Sequential execution stops at the first error. Parallel execution runs
// every job, so callers must not rely on later jobs being skipped.
func For(n int, f func(i int) error, cfg Config) error {
	if cfg.NumWorkers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, n)
	sem := make(chan struct{}, min(cfg.NumWorkers, n))
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = f(i)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
