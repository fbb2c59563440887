// Package reduce runs fork-join reductions over a contiguous index range of
// an array. A range longer than the split threshold is halved: the left half
// runs on its own goroutine, the right half runs inline, and the two partial
// results merge after the join. Splitting is a scheduling concern only; every
// reduction returns exactly what a sequential scan of the same range would.
//
// The array must not be mutated while a reduction scans it.
package reduce

import (
	"sync"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/config"
)

type options struct {
	threshold int
}

// Option adjusts how a reduction runs.
type Option func(*options)

// WithThreshold sets the range length at or below which a reduction scans
// sequentially instead of splitting.
func WithThreshold(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.threshold = n
		}
	}
}

// WithConfig takes the split threshold from cfg.
func WithConfig(cfg *config.StorageConfig) Option {
	return func(o *options) {
		if cfg != nil && cfg.SplitThreshold > 0 {
			o.threshold = cfg.SplitThreshold
		}
	}
}

func resolve(opts []Option) options {
	o := options{threshold: config.DefaultSplitThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// forkJoin recursively splits [from, to], forking the left half and scanning
// the right half inline.
func forkJoin[R any](from, to, threshold int,
	scan func(from, to int) R, merge func(left, right R) R) R {

	if to-from+1 <= threshold {
		return scan(from, to)
	}
	mid := from + (to-from)/2

	var left R
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		left = forkJoin(from, mid, threshold, scan, merge)
	}()
	right := forkJoin(mid+1, to, threshold, scan, merge)
	wg.Wait()

	return merge(left, right)
}

// Count returns how many indexes in the closed range [from, to] satisfy the
// predicate. An empty range (from > to) counts zero.
func Count(a array.Array, from, to int, pred array.Predicate, opts ...Option) int {
	if from > to {
		return 0
	}
	array.CheckRange(from, to+1, a.Length())
	o := resolve(opts)

	return forkJoin(from, to, o.threshold,
		func(from, to int) int {
			n := 0
			for i := from; i <= to; i++ {
				if pred(a, i) {
					n++
				}
			}
			return n
		},
		func(left, right int) int { return left + right })
}

// NotNull matches every index holding a value.
func NotNull() array.Predicate {
	return func(a array.Array, index int) bool { return !a.IsNull(index) }
}

// EqualTo matches indexes whose value equals v.
func EqualTo(v interface{}) array.Predicate {
	return func(a array.Array, index int) bool { return a.IsEqualTo(index, v) }
}
