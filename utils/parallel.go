package utils

import (
	"runtime"
	"sync"

	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// ParallelForEach calls work once for every index in [0, size) using at most ParallelFactor
// goroutines. Work items must be independent of one another. All errors are combined.
func ParallelForEach(size int, work func(idx int) error) error {
	if size <= 0 {
		return nil
	}
	numWorkers := ParallelFactor
	if numWorkers > size {
		numWorkers = size
	}

	var (
		wait    sync.WaitGroup
		errMu   sync.Mutex
		allErrs error
	)
	wait.Add(numWorkers)
	for worker := 0; worker < numWorkers; worker++ {
		workerCopy := worker
		goutils.PanicCapturingGo(func() {
			defer wait.Done()
			for idx := workerCopy; idx < size; idx += numWorkers {
				if err := work(idx); err != nil {
					errMu.Lock()
					allErrs = multierr.Combine(allErrs, err)
					errMu.Unlock()
				}
			}
		})
	}
	wait.Wait()
	return allErrs
}
