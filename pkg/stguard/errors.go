package stguard

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := auditor.Run(ctx, roots)
//	if errors.Is(err, stguard.ErrFindingsReported) {
//	    // The run completed but found hazards
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrToolNotFound indicates none of the fd executable names resolved on PATH.
	ErrToolNotFound = errors.New("fd executable not found")

	// ErrExternalTool indicates fd exited with a non-zero status.
	// The concrete error is an *ExternalToolError carrying the exit code.
	ErrExternalTool = errors.New("external tool failed")

	// ErrRetriesExhausted indicates fd kept failing with a transient exit
	// code until the attempt budget was used up.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrMalformedToolOutput indicates fd produced output that does not
	// follow the NUL-delimited contract.
	ErrMalformedToolOutput = errors.New("malformed tool output")

	// ErrFindingsReported indicates the audit completed and reported at
	// least one unsuppressed finding.
	ErrFindingsReported = errors.New("findings reported")
)

// ExternalToolError describes a non-zero exit of the external search tool.
type ExternalToolError struct {
	Binary string
	Args   []string
	// ExitCode is -1 when the process was terminated by a signal.
	ExitCode int
	Stderr   string
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Binary, e.ExitCode)
	if e.ExitCode < 0 {
		msg = e.Binary + " was terminated by a signal"
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap makes errors.Is(err, ErrExternalTool) hold for every ExternalToolError.
func (e *ExternalToolError) Unwrap() error {
	return ErrExternalTool
}

// usagePatterns are fragments of cobra's argument and flag validation errors.
var usagePatterns = []string{
	"missing required argument",
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"requires at least",
	"accepts ",
	"flag needs an argument",
	"invalid argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrFindingsReported):
		return ExitFindings
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrToolNotFound):
		return ExitToolNotFound
	case errors.Is(err, ErrRetriesExhausted):
		return ExitRetriesExhausted
	case errors.Is(err, ErrExternalTool):
		return ExitToolFailed
	case errors.Is(err, ErrMalformedToolOutput):
		return ExitMalformedOutput
	}

	errStr := err.Error()
	for _, pattern := range usagePatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
