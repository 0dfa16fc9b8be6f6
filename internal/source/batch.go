package source

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultConcurrency caps in-flight per-item requests
const DefaultConcurrency = 3

// BatchOptions tunes FetchRawBatch
type BatchOptions struct {
	// Concurrency is the maximum number of requests in flight. Zero means DefaultConcurrency.
	Concurrency int
	// RPS paces request starts. Zero disables pacing.
	RPS float64
}

// RawResult is the outcome of one per-item fetch. Exactly one of Body or Err is set.
type RawResult struct {
	ID   int
	Body []byte
	Err  error
}

// FetchRawBatch fetches /{id} for every id with bounded concurrency.
// Failures are isolated per item; results keep the order of ids.
func (c *Client) FetchRawBatch(ctx context.Context, ids []int, opts BatchOptions) []RawResult {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	var limiter *rate.Limiter
	if opts.RPS > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(float64(time.Second)/opts.RPS)), 1)
	}

	results := make([]RawResult, len(ids))
	g := new(errgroup.Group)
	g.SetLimit(limit)

	for i, id := range ids {
		results[i].ID = id
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					results[i].Err = err
					return nil
				}
			}
			body, err := c.FetchRaw(ctx, id)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Body = body
			return nil
		})
	}

	// goroutines never return errors, failures live in results
	_ = g.Wait()
	return results
}

// Range returns the ids from..to inclusive
func Range(from, to int) []int {
	if to < from {
		return nil
	}
	ids := make([]int, 0, to-from+1)
	for id := from; id <= to; id++ {
		ids = append(ids, id)
	}
	return ids
}
