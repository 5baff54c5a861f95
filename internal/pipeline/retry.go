package pipeline

import (
	"context"
	"math/rand"
	"time"

	"github.com/ghamerly/problem-style-check/internal/registry"
)

const maxNameFetches = 3

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}

// withRetry wraps a name source so that transient failures get retried with
// backoff before the uniqueness check gives up. A nil source stays nil.
func withRetry(src registry.Source) registry.Source {
	if src == nil {
		return nil
	}
	return &retrySource{src: src}
}

type retrySource struct {
	src registry.Source
}

func (r *retrySource) Names(ctx context.Context) (map[string]bool, error) {
	var lastErr error
	for attempt := 0; attempt < maxNameFetches; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(Backoff(attempt - 1)):
			}
		}
		names, err := r.src.Names(ctx)
		if err == nil {
			return names, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (r *retrySource) Describe() string {
	return r.src.Describe()
}
