package retry

import "time"

// ConstantBackoff waits the same delay before every retry.
type ConstantBackoff struct {
	// delay is the pause before each retry attempt
	delay time.Duration

	// maxAttempts is the maximum number of retry attempts (-1 = unlimited, 0 = no retries)
	maxAttempts int
}

// BackoffOption is a functional option for configuring ConstantBackoff.
type BackoffOption func(*ConstantBackoff)

// WithDelay sets the pause before each retry attempt.
func WithDelay(d time.Duration) BackoffOption {
	return func(b *ConstantBackoff) {
		b.delay = d
	}
}

// NewConstantBackoff creates a fixed-delay strategy allowing maxAttempts
// retries after the initial attempt. The delay defaults to 10s.
func NewConstantBackoff(maxAttempts int, opts ...BackoffOption) *ConstantBackoff {
	b := &ConstantBackoff{
		delay:       10 * time.Second,
		maxAttempts: maxAttempts,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns the fixed delay regardless of the attempt number.
func (b *ConstantBackoff) NextDelay(attempt int) time.Duration {
	return b.delay
}

// MaxAttempts returns the maximum number of retry attempts.
func (b *ConstantBackoff) MaxAttempts() int {
	return b.maxAttempts
}
