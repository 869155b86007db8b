package utils

import (
	"sync"
)

// ParallelTask is a unit of work executed concurrently by RunParallelTasks.
type ParallelTask func() error

// RunParallelTasks executes the tasks concurrently and returns their errors
// in task order.
func RunParallelTasks(tasks []ParallelTask) []error {
	var wg sync.WaitGroup
	errs := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(index int, t ParallelTask) {
			defer wg.Done()
			errs[index] = t()
		}(i, task)
	}

	wg.Wait()
	return errs
}
