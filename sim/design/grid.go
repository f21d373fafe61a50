package design

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Range is a closed parameter interval sampled at Steps equally spaced points.
type Range struct {
	Min, Max float64
	Steps    int // 1 samples only Min
}

// At returns the i-th sample of the range.
func (r Range) At(i int) float64 {
	if r.Steps <= 1 {
		return r.Min
	}
	return r.Min + (r.Max-r.Min)*float64(i)/float64(r.Steps-1)
}

// Len is the number of samples.
func (r Range) Len() int {
	return max(r.Steps, 1)
}

// forEach runs fn for every index in [0, n) on at most workers goroutines and
// stops at the first error or when ctx is cancelled.
func forEach(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
