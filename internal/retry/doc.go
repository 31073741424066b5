// Package retry provides bounded retry logic for operations that fail
// sporadically, such as an external program that occasionally crashes.
//
// The package supports pluggable error classification and backoff strategies.
//
// # Example Usage
//
//	classifier := retry.NewExitCodeClassifier(101)
//	strategy := retry.NewConstantBackoff(4, retry.WithDelay(10*time.Second))
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return runTool(ctx)
//	})
//
// # Error Classification
//
// The ErrorClassifier interface determines which errors are transient (retryable)
// versus fatal (non-retryable). ExitCodeClassifier treats an
// *stguard.ExternalToolError as transient when its exit code is in a fixed set.
//
// # Exhaustion
//
// When every attempt failed with a transient error, Execute returns an error
// matching both stguard.ErrRetriesExhausted and the last attempt's error.
package retry
