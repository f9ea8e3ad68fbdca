// Package retry runs provider calls with a per-attempt timeout and bounded
// exponential backoff, and normalizes every failure into a
// *domain.ProviderError.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

// errAttemptTimeout is the cause recorded when an attempt loses the race
// against its timer.
var errAttemptTimeout = errors.New("attempt timed out")

// Config controls the retry policy.
type Config struct {
	// MaxRetries is the total number of invocations, including the first.
	MaxRetries int
	// Timeout bounds each individual attempt.
	Timeout   time.Duration
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultConfig returns the platform defaults: 3 attempts, 30s per attempt,
// backoff starting at 100ms and capped at 2s.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		Timeout:    30 * time.Second,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   2 * time.Second,
	}
}

// RetryHook observes every failed attempt that will be retried.
type RetryHook func(model string, attempt int, err *domain.ProviderError)

// Retrier applies Config to provider operations.
type Retrier struct {
	cfg     Config
	log     *slog.Logger
	onRetry RetryHook
}

// New creates a Retrier. Zero delays fall back to DefaultConfig values.
func New(cfg Config, log *slog.Logger) *Retrier {
	def := DefaultConfig()
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = def.BaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = def.MaxDelay
	}
	return &Retrier{cfg: cfg, log: log.With("component", "retry")}
}

// OnRetry installs a hook called before each retry.
func (r *Retrier) OnRetry(h RetryHook) *Retrier {
	r.onRetry = h
	return r
}

// Backoff returns the delay before retry number attempt (0-based):
// min(BaseDelay * 2^attempt, MaxDelay).
func (r *Retrier) Backoff(attempt uint) time.Duration {
	d := r.cfg.BaseDelay
	for i := uint(0); i < attempt; i++ {
		d *= 2
		if d >= r.cfg.MaxDelay {
			return r.cfg.MaxDelay
		}
	}
	return min(d, r.cfg.MaxDelay)
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// attempts are exhausted. model identifies the target model in errors and
// logs. The returned error is always a *domain.ProviderError.
func Do[T any](ctx context.Context, r *Retrier, model string, op func(ctx context.Context) (T, error)) (T, error) {
	var (
		result  T
		attempt int
	)

	err := retry.Do(
		func() error {
			attempt++
			v, err := runAttempt(ctx, r.cfg.Timeout, op)
			if err != nil {
				return Wrap(err, model)
			}
			result = v
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(r.cfg.MaxRetries)),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var pe *domain.ProviderError
			return errors.As(err, &pe) && pe.Retryable
		}),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return r.Backoff(n)
		}),
		retry.OnRetry(func(n uint, err error) {
			var pe *domain.ProviderError
			if !errors.As(err, &pe) || int(n)+1 >= r.cfg.MaxRetries {
				return
			}
			r.log.WarnContext(ctx, "ai call failed, retrying",
				slog.String("model", model),
				slog.Int("attempt", int(n)+1),
				slog.String("code", pe.Code.String()),
				slog.Duration("delay", r.Backoff(n)),
				slog.String("error", pe.Err.Error()),
			)
			if r.onRetry != nil {
				r.onRetry(model, int(n)+1, pe)
			}
		}),
	)
	if err != nil {
		var zero T
		pe := Wrap(err, model)
		r.log.ErrorContext(ctx, "ai call failed",
			slog.String("model", model),
			slog.Int("attempts", attempt),
			slog.String("code", pe.Code.String()),
			slog.Bool("retryable", pe.Retryable),
			slog.String("error", err.Error()),
		)
		return zero, pe
	}
	return result, nil
}

type outcome[T any] struct {
	val T
	err error
}

// runAttempt races op against a timer. The attempt context is cancelled
// when the timer fires so a well-behaved op stops early.
func runAttempt[T any](ctx context.Context, timeout time.Duration, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if timeout <= 0 {
		return op(ctx)
	}

	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan outcome[T], 1)
	go func() {
		v, err := op(attemptCtx)
		done <- outcome[T]{val: v, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case o := <-done:
		return o.val, o.err
	case <-timer.C:
		return zero, fmt.Errorf("%w after %s", errAttemptTimeout, timeout)
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
