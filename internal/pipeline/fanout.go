package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FanOut runs fns concurrently and waits for all of them. There is no
// ordering between them. The first error is returned and cancels the context
// handed to the others; partial results must be discarded by the caller.
func FanOut(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error {
			return fn(gctx)
		})
	}
	return g.Wait()
}
