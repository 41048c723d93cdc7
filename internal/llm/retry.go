package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// WithRetry retries transient failures with exponential backoff and ±20%
// jitter. A rate limit waits at least the vendor's Retry-After. A reply
// that fails validation is retried once. Truncation and cancellation are
// final. A non-positive MaxAttempts means a single attempt.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retrying{inner: p, cfg: cfg, sleep: sleepCtx}
}

type retrying struct {
	inner Provider
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	invalid := 0
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var inv *ErrInvalidResponse
		if errors.As(err, &inv) {
			invalid++
		}
		if attempt >= r.cfg.MaxAttempts || !retryable(err, invalid) {
			return nil, err
		}
		if err := r.sleep(ctx, r.wait(attempt, err)); err != nil {
			return nil, err
		}
	}
}

func (r *retrying) ModelID() string {
	return r.inner.ModelID()
}

// retryable reports whether err is worth another attempt. invalid counts
// the validation failures seen so far, including err.
func retryable(err error, invalid int) bool {
	var trunc *ErrMaxTokensExceeded
	var inv *ErrInvalidResponse
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.As(err, &trunc):
		return false
	case errors.As(err, &inv):
		return invalid < 2
	}
	return true
}

// wait is the pause after the given 1-based attempt failed with err.
func (r *retrying) wait(attempt int, err error) time.Duration {
	mult := max(r.cfg.Multiplier, 1)
	d := r.cfg.InitialWait
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * mult)
		if r.cfg.MaxWait > 0 && d >= r.cfg.MaxWait {
			break
		}
	}
	if r.cfg.MaxWait > 0 && d > r.cfg.MaxWait {
		d = r.cfg.MaxWait
	}
	d += time.Duration((rand.Float64()*0.4 - 0.2) * float64(d))

	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > d {
		d = rl.RetryAfter
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
