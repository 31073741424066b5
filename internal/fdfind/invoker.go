package fdfind

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/vvka-141/stguard/internal/retry"
	"github.com/vvka-141/stguard/pkg/stguard"
)

// CommandRunner executes binary with args and returns its stdout.
// A non-zero exit must be reported as *stguard.ExternalToolError.
type CommandRunner func(ctx context.Context, binary string, args []string) ([]byte, error)

// Options configures an Invoker. Zero values fall back to the defaults in
// package stguard.
type Options struct {
	// Binaries are the executable names tried in order.
	Binaries []string

	// Attempts is the total number of runs, first attempt included.
	Attempts int

	// RetryDelay is the pause between attempts.
	RetryDelay time.Duration

	// TransientExitCodes are the exit codes that trigger a retry.
	TransientExitCodes []int
}

// Invoker runs fd with bounded retries on transient crashes.
// It implements stguard.Searcher.
type Invoker struct {
	binaries []string
	lookPath func(string) (string, error)
	runner   CommandRunner
	executor *retry.Executor
	logger   stguard.Logger
}

// NewInvoker creates an Invoker that resolves fd on PATH and runs it as a
// child process.
func NewInvoker(opts Options, logger stguard.Logger) *Invoker {
	return NewInvokerWithRunner(opts, logger, exec.LookPath, RunCommand)
}

// NewInvokerWithRunner creates an Invoker with custom binary resolution and
// process execution. This is primarily useful for testing.
// Panics if logger, lookPath or runner is nil.
func NewInvokerWithRunner(
	opts Options,
	logger stguard.Logger,
	lookPath func(string) (string, error),
	runner CommandRunner,
) *Invoker {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if lookPath == nil {
		panic("lookPath cannot be nil")
	}
	if runner == nil {
		panic("runner cannot be nil")
	}

	opts = opts.withDefaults()
	executor := retry.NewExecutor(
		retry.NewExitCodeClassifier(opts.TransientExitCodes...),
		retry.NewConstantBackoff(opts.Attempts-1, retry.WithDelay(opts.RetryDelay)),
	)

	inv := &Invoker{
		binaries: opts.Binaries,
		lookPath: lookPath,
		runner:   runner,
		logger:   logger,
	}
	inv.executor = executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		inv.logger.Error("%v; retrying in %s (attempt %d of %d)", err, delay, attempt+2, opts.Attempts)
	})
	return inv
}

// WithSleep returns a copy of the Invoker that waits between attempts using fn.
func (i *Invoker) WithSleep(fn retry.SleepFunc) *Invoker {
	clone := *i
	clone.executor = i.executor.WithSleep(fn)
	return &clone
}

func (o Options) withDefaults() Options {
	if len(o.Binaries) == 0 {
		o.Binaries = stguard.DefaultSearchBinaries
	}
	if o.Attempts <= 0 {
		o.Attempts = stguard.DefaultSearchAttempts
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = stguard.DefaultSearchRetryDelay
	}
	if len(o.TransientExitCodes) == 0 {
		o.TransientExitCodes = []int{stguard.DefaultTransientExitCode}
	}
	return o
}

// Resolve returns the path of the first configured binary found on PATH.
func (i *Invoker) Resolve() (string, error) {
	for _, name := range i.binaries {
		if path, err := i.lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", stguard.ErrToolNotFound, strings.Join(i.binaries, ", "))
}

// Run executes fd with args and returns its raw stdout.
func (i *Invoker) Run(ctx context.Context, args ...string) ([]byte, error) {
	binary, err := i.Resolve()
	if err != nil {
		return nil, err
	}

	i.logger.Verbose("running %s %s", binary, strings.Join(args, " "))

	var out []byte
	err = i.executor.Execute(ctx, func(ctx context.Context) error {
		var runErr error
		out, runErr = i.runner(ctx, binary, args)
		return runErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RunCommand is the production CommandRunner. It captures stdout and keeps
// stderr for the error message. A process killed by a signal is reported as
// an ExternalToolError with ExitCode -1.
func RunCommand(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &stguard.ExternalToolError{
			Binary:   binary,
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr.String(),
		}
	}
	return nil, fmt.Errorf("failed to run %s: %w", binary, err)
}
