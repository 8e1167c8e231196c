package hair

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// dispatcher runs n independent units over contiguous chunks on a bounded
// number of goroutines. Wait is the stage barrier.
type dispatcher struct {
	workers int
}

func newDispatcher(workers int) dispatcher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return dispatcher{workers: workers}
}

// run calls fn(i) for every i in [0, n). Units must write disjoint memory.
// The first error is returned after every chunk has finished.
func (d dispatcher) run(n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	if d.workers == 1 || n == 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	chunk := (n + d.workers - 1) / d.workers
	var g errgroup.Group
	g.SetLimit(d.workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
