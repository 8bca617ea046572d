package suite

import (
	"context"
	"sync"
)

// indexedResult pairs a result with its original index so
// results can be returned in submission order.
type indexedResult struct {
	index  int
	result *Result
	err    error
}

// RunAll runs suites with at most concurrency running at once.
// Results come back in the order of suites. Suites that never
// started because ctx was cancelled are left out, and the first
// error encountered is returned alongside the results.
func (r *Runner) RunAll(ctx context.Context, suites []*Suite, concurrency int) ([]*Result, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	resultsCh := make(chan indexedResult, len(suites))

	var wg sync.WaitGroup
	for i, s := range suites {
		wg.Add(1)
		go func(idx int, s *Suite) {
			defer wg.Done()

			// Acquire semaphore slot.
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultsCh <- indexedResult{index: idx, err: ctx.Err()}
				return
			}

			result, err := r.Run(ctx, s)
			resultsCh <- indexedResult{index: idx, result: result, err: err}
		}(i, s)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	ordered := make([]*Result, len(suites))
	var firstErr error
	for ir := range resultsCh {
		if ir.err != nil && firstErr == nil {
			firstErr = ir.err
		}
		ordered[ir.index] = ir.result
	}

	results := make([]*Result, 0, len(suites))
	for _, res := range ordered {
		if res != nil {
			results = append(results, res)
		}
	}
	return results, firstErr
}
