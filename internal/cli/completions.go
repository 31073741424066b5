package cli

import (
	"github.com/spf13/cobra"
)

// completeRoots lets the shell complete directory paths for search roots.
func completeRoots(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeYAMLFiles restricts --config completion to YAML files.
func completeYAMLFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeSARIFFiles restricts --sarif completion to SARIF and JSON files.
func completeSARIFFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"sarif", "json"}, cobra.ShellCompDirectiveFilterFileExt
}
