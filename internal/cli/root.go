package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/stguard/pkg/stguard"
)

const rootLong = `stguard audits Syncthing folders for names that break synchronization
between operating systems.

Every <root> is searched with fd (fdfind on Debian/Ubuntu) for .stfolder
markers. Each synchronized folder found is walked once and checked for:

  sync-conflict          leftover conflict copies (*.sync-conflict-*)
  case-collision         sibling names that differ only by letter case
  forbidden-characters   names containing | \ ? * < " : > + [ ] / ' · ^

Findings can be suppressed with ignore rules in stguard.yaml. The tool never
modifies anything.

Configuration file lookup:
  1. --config <file>
  2. $STGUARD_CONFIG
  3. ./stguard.yaml
  4. <user config dir>/stguard/stguard.yaml

Exit Codes:
  0  - No unsuppressed findings
  1  - Findings reported, or general error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or ignore rules
  11 - fd not found on PATH
  12 - fd failed
  13 - fd kept crashing, retries exhausted
  14 - fd output was malformed`

type rootFlagValues struct {
	configPath string
	sarifPath  string
	verbose    bool
}

// newRootCmd builds the stguard command. Each call returns an independent
// command with its own flag state.
func newRootCmd() *cobra.Command {
	flags := &rootFlagValues{}

	cmd := &cobra.Command{
		Use:   "stguard [flags] <root>...",
		Short: "Audit Syncthing folders for cross-platform naming hazards",
		Long:  rootLong,
		Example: `  stguard ~/sync
  stguard -v --sarif findings.sarif /srv/syncthing /home/me/phone
  STGUARD_CONFIG=/etc/stguard.yaml stguard /data`,
		Args:              RequireRoots,
		ValidArgsFunction: completeRoots,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           versionString(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, args, flags)
		},
	}
	cmd.SetVersionTemplate("stguard {{.Version}}\n")

	cmd.Flags().StringVar(&flags.configPath, "config", "",
		"Path to the configuration file\n"+
			"Precedence: --config > $"+stguard.ConfigEnvVar+" > ./"+stguard.ConfigFileName+" > user config dir")
	cmd.Flags().StringVar(&flags.sarifPath, "sarif", "",
		"Also write unsuppressed findings to this file as a SARIF 2.1.0 log")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"Enable verbose output")

	_ = cmd.RegisterFlagCompletionFunc("config", completeYAMLFiles)
	_ = cmd.RegisterFlagCompletionFunc("sarif", completeSARIFFiles)

	return cmd
}

var rootCmd = newRootCmd()

// Execute runs the root command. Errors other than reported findings are
// printed to stderr; findings were already printed as they were found.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, stguard.ErrFindingsReported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
