package gdlint

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

var errAborted = errors.New("gdlint: run aborted")

// CheckFiles checks paths with up to the configured number of workers.
// Results come back in the order of paths whatever order the workers finish
// in. The returned error is only ever a context error; per-file problems are
// carried in each FileResult.
//
// A panic in a check (an invalid query, a missing required capture) aborts
// the run and is re-raised on the calling goroutine.
func (l *Linter) CheckFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	jobs := l.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var (
		mu       sync.Mutex
		panicked any
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					mu.Lock()
					if panicked == nil {
						panicked = p
					}
					mu.Unlock()
					err = errAborted
				}
			}()

			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = l.CheckFile(gctx, path)
			return nil
		})
	}

	err := g.Wait()
	if panicked != nil {
		panic(panicked)
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}
