package sim

import (
	"context"
	"sync"
)

// Run describes one independent scenario: a system, its initial state, and
// the solver configuration. Runs share no mutable state, so an ensemble is
// embarrassingly parallel.
type Run struct {
	Dyn    System
	X0     State
	Cfg    Config
	Integ  Integrator
	Metric []Metric
}

type Ensemble struct {
	runs []Run
}

func NewEnsemble(runs []Run) *Ensemble {
	return &Ensemble{runs: runs}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(e.runs))
	errs := make([]error, len(e.runs))

	var wg sync.WaitGroup
	for i := range e.runs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			r := e.runs[idx]
			s := New(r.Dyn, r.Integ)
			for _, m := range r.Metric {
				s.AddMetric(m)
			}

			results[idx], errs[idx] = s.Run(ctx, r.X0, r.Cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// ParallelFor executes fn in parallel over [0, n), chunked so that each
// worker gets at least minChunk items.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := 4
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
