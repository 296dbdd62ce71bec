// Package generate orchestrates candidate expansion across matched segments:
// deduplication, ordering, and capacity enforcement.
package generate

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"phonegen/core/expand"
	"phonegen/core/model"
	"phonegen/internal/errors"
)

// Options bound one generation session. Passed explicitly so concurrent
// sessions can run with different limits.
type Options struct {
	// MaxCount is the post-dedup generation ceiling
	MaxCount int

	// Workers bounds the expansion pool; 0 means GOMAXPROCS
	Workers int
}

// Session runs generation requests against a fixed set of options.
type Session struct {
	opts Options
}

// NewSession creates a session with the given options.
func NewSession(opts Options) *Session {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Session{opts: opts}
}

// Generate expands every matched segment, deduplicates, and freezes the
// result to an ascending slice of 11-digit identifiers. Empty segments yield
// an empty, non-error result. A post-dedup cardinality above MaxCount fails
// with an over-capacity error before anything touches disk.
func (s *Session) Generate(ctx context.Context, filter model.FilterSpec, segments []model.SegmentRecord) ([]string, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	// Two segments produce identical identifiers exactly when they share
	// prefix+suffix (a city mapping to multiple operator records on one
	// region code). Deduplicating the 7-digit bases up front resolves that
	// silently and makes the per-base runs disjoint.
	bases := dedupBases(segments)

	// Fixed-width digit strings order by their base first, so the frozen
	// set's cardinality is known before materialization.
	total := len(bases) * expand.Count(filter.ExactSuffix4, filter.ExactSuffix3)
	limit := filter.MaxCount
	if limit == 0 {
		limit = s.opts.MaxCount
	}
	if limit > 0 && total > limit {
		return nil, errors.OverCapacity(total, limit)
	}

	runs, err := s.expandAll(ctx, filter, bases)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, total)
	for _, run := range runs {
		out = append(out, run...)
	}
	return out, nil
}

// expandAll expands each base on a bounded worker pool. Every base yields an
// already-ascending run; runs land at their base's index so the merged
// result needs no further sorting.
func (s *Session) expandAll(ctx context.Context, filter model.FilterSpec, bases []model.SegmentRecord) ([][]string, error) {
	runs := make([][]string, len(bases))

	workers := s.opts.Workers
	if workers > len(bases) {
		workers = len(bases)
	}

	var wg sync.WaitGroup
	jobs := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				run := make([]string, 0, expand.Count(filter.ExactSuffix4, filter.ExactSuffix3))
				for id := range expand.Expand(bases[i], filter.ExactSuffix4, filter.ExactSuffix3) {
					run = append(run, id)
				}
				runs[i] = run
			}
		}()
	}

	var cancelled error
feed:
	for i := range bases {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}
	return runs, nil
}

// dedupBases returns one segment per distinct prefix+suffix, ordered by base.
func dedupBases(segments []model.SegmentRecord) []model.SegmentRecord {
	seen := make(map[string]model.SegmentRecord, len(segments))
	for _, seg := range segments {
		base := seg.Prefix + seg.Suffix
		if _, ok := seen[base]; !ok {
			seen[base] = seg
		}
	}

	keys := make([]string, 0, len(seen))
	for base := range seen {
		keys = append(keys, base)
	}
	sort.Strings(keys)

	out := make([]model.SegmentRecord, len(keys))
	for i, base := range keys {
		out[i] = seen[base]
	}
	return out
}
