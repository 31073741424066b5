package retry

import (
	"errors"

	"github.com/vvka-141/stguard/pkg/stguard"
)

// ExitCodeClassifier implements ErrorClassifier for external tool failures.
// An error is transient when it is an *stguard.ExternalToolError whose exit
// code is one of the configured codes. Everything else is fatal, including
// a missing binary or a cancelled context.
type ExitCodeClassifier struct {
	codes map[int]struct{}
}

// NewExitCodeClassifier creates a classifier for the given transient exit codes.
func NewExitCodeClassifier(codes ...int) *ExitCodeClassifier {
	set := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return &ExitCodeClassifier{codes: set}
}

// IsTransient determines if an error is temporary and retryable.
func (c *ExitCodeClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var toolErr *stguard.ExternalToolError
	if !errors.As(err, &toolErr) {
		return false
	}

	_, ok := c.codes[toolErr.ExitCode]
	return ok
}
