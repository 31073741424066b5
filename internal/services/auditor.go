package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vvka-141/stguard/internal/suppress"
	"github.com/vvka-141/stguard/pkg/stguard"
)

// Auditor runs the locate, scan, suppress and report pipeline over a list
// of search roots.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
// Reporters accumulate state across a run.
type Auditor struct {
	locator    stguard.FolderLocator
	scanner    stguard.TreeScanner
	suppressor stguard.Suppressor
	reporters  []stguard.Reporter
	logger     stguard.Logger
}

// NewAuditor creates an Auditor with all dependencies injected.
// A nil suppressor suppresses nothing. Panics if locator, scanner or logger
// is nil, or if any reporter is nil.
func NewAuditor(
	locator stguard.FolderLocator,
	scanner stguard.TreeScanner,
	suppressor stguard.Suppressor,
	logger stguard.Logger,
	reporters ...stguard.Reporter,
) *Auditor {
	if locator == nil {
		panic("locator cannot be nil")
	}
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	for i, r := range reporters {
		if r == nil {
			panic(fmt.Sprintf("reporter %d cannot be nil", i))
		}
	}
	if suppressor == nil {
		suppressor = suppress.Never
	}
	return &Auditor{
		locator:    locator,
		scanner:    scanner,
		suppressor: suppressor,
		reporters:  reporters,
		logger:     logger,
	}
}

// Run audits every root in order and returns the summary of the run.
//
// Roots are processed sequentially; within a root, folders are scanned in
// the order the locator returned them. Each unsuppressed finding is handed
// to every reporter as soon as it is produced.
//
// Errors:
//   - stguard.ErrInvalidConfig when roots is empty
//   - any locator error (tool missing, tool failure, retries exhausted,
//     malformed output) aborts the run at once, wrapped with the root
//   - stguard.ErrFindingsReported after a complete run with findings
//
// The summary is valid up to the point of failure.
func (a *Auditor) Run(ctx context.Context, roots []string) (stguard.AuditSummary, error) {
	var summary stguard.AuditSummary
	if len(roots) == 0 {
		return summary, fmt.Errorf("%w: at least one search root is required", stguard.ErrInvalidConfig)
	}

	onSuppressed := func(f stguard.Finding) {
		summary.Suppressed++
		a.logger.Verbose("suppressed: %s", f)
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		folders, err := a.locator.Locate(ctx, root)
		if err != nil {
			return summary, fmt.Errorf("audit of %s aborted: %w", root, err)
		}
		summary.Roots++

		for _, folder := range folders {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			summary.Folders++

			for f := range suppress.Partition(a.scanner.Scan(folder), a.suppressor, onSuppressed) {
				if err := a.record(f); err != nil {
					return summary, err
				}
				summary.Findings = append(summary.Findings, f)
			}
		}
	}

	if err := a.flush(); err != nil {
		return summary, err
	}

	a.logger.Verbose("audited %d folder(s) in %d root(s): %d finding(s), %d suppressed",
		summary.Folders, summary.Roots, len(summary.Findings), summary.Suppressed)

	if !summary.Passed() {
		return summary, fmt.Errorf("%w: %d unsuppressed finding(s)", stguard.ErrFindingsReported, len(summary.Findings))
	}
	return summary, nil
}

func (a *Auditor) record(f stguard.Finding) error {
	for _, r := range a.reporters {
		if err := r.Record(f); err != nil {
			return fmt.Errorf("failed to report finding %s: %w", f.Path, err)
		}
	}
	return nil
}

// flush flushes every reporter, even after one of them failed.
func (a *Auditor) flush() error {
	var errs []error
	for _, r := range a.reporters {
		if err := r.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
