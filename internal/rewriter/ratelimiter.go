package rewriter

import (
	"context"

	"golang.org/x/time/rate"
)

type fileLimiter interface {
	Wait(ctx context.Context) error
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

// newTokenBucketLimiter returns nil when filesPerSecond is not positive, which
// disables throttling.
func newTokenBucketLimiter(filesPerSecond float64, burst int) fileLimiter {
	if filesPerSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}

	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Limit(filesPerSecond), burst),
	}
}

func (l *limiterAdapter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
