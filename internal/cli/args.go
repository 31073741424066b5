package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireRoots validates that at least one search root is provided.
// Returns a helpful error message with usage and examples if none is given.
func RequireRoots(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <root>

Usage: %s

Example:
  %s ~/sync`, cmd.UseLine(), cmd.CommandPath())
	}
	for _, arg := range args {
		if arg == "" {
			return fmt.Errorf("invalid argument: search root must not be empty")
		}
	}
	return nil
}
