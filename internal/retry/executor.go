package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/stguard/pkg/stguard"
)

// SleepFunc blocks for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Executor orchestrates retry attempts with backoff and error classification.
//
// WithOnRetry() and WithSleep() return a NEW instance; the original Executor
// remains unchanged.
type Executor struct {
	classifier stguard.ErrorClassifier
	strategy   stguard.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
	sleep      SleepFunc
}

// NewExecutor creates a new retry executor with the given configuration.
// Panics if classifier or strategy is nil.
func NewExecutor(
	classifier stguard.ErrorClassifier,
	strategy stguard.BackoffStrategy,
) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
		sleep:      timerSleep,
	}
}

// WithOnRetry returns a new Executor with the specified retry callback.
// The callback runs before each wait; attempt is zero-indexed.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// WithSleep returns a new Executor that waits using fn instead of a timer.
// Tests use it to observe delays without actually waiting.
func (e *Executor) WithSleep(fn SleepFunc) *Executor {
	clone := *e
	clone.sleep = fn
	return &clone
}

// Execute runs the operation with retry logic.
//
// A fatal error is returned as is. If the retry budget runs out while the
// operation still fails transiently, the returned error wraps both
// stguard.ErrRetriesExhausted and the last attempt's error.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	maxAttempts := e.strategy.MaxAttempts()

	lastErr := operation(ctx)
	if lastErr == nil {
		return nil
	}
	if !e.classifier.IsTransient(lastErr) {
		return lastErr
	}

	// A negative budget retries until success, a fatal error or cancellation.
	attempt := 0
	for ; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}

		if err := e.sleep(ctx, delay); err != nil {
			return err
		}

		lastErr = operation(ctx)
		if lastErr == nil {
			return nil
		}
		if !e.classifier.IsTransient(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", stguard.ErrRetriesExhausted, attempt+1, lastErr)
}

func timerSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
