package director

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const defaultBatchSize = 4

// mapBatched calls fn for every item, at most size at a time, one batch after
// another. Every call runs to completion regardless of the others; results
// and errors are returned by index.
func mapBatched[T, R any](ctx context.Context, items []T, size int, fn func(context.Context, T) (R, error)) ([]R, []error) {
	if size <= 0 {
		size = defaultBatchSize
	}
	results := make([]R, len(items))
	errs := make([]error, len(items))

	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					return nil
				}
				results[i], errs[i] = fn(ctx, items[i])
				return nil
			})
		}
		_ = g.Wait()
	}
	return results, errs
}
