package stguard

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: Findings reported, or general error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // No unsuppressed findings
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitFindings         = 1  // At least one unsuppressed finding was reported
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration file or ignore rules
	ExitToolNotFound     = 11 // Neither fdfind nor fd is on PATH
	ExitToolFailed       = 12 // fd exited with an unexpected code
	ExitRetriesExhausted = 13 // fd kept crashing until the attempt budget ran out
	ExitMalformedOutput  = 14 // fd output did not have the expected shape
)

const (
	// MarkerDirName is the hidden directory Syncthing creates at the root of
	// every synchronized folder.
	MarkerDirName = ".stfolder"

	// ConflictMarker is the substring Syncthing puts into the names of
	// conflict copies, e.g. "report.sync-conflict-20230101-120000-ABCDEFG.txt".
	ConflictMarker = "sync-conflict"

	// ConfigFileName is the default configuration file name.
	ConfigFileName = "stguard.yaml"

	// ConfigEnvVar names the environment variable holding a config file path.
	ConfigEnvVar = "STGUARD_CONFIG"
)

// DefaultSearchBinaries are the executable names fd is installed under.
// Debian and Ubuntu ship it as fdfind, everyone else as fd.
var DefaultSearchBinaries = []string{"fdfind", "fd"}

const (
	// DefaultSearchAttempts is the total number of fd invocations (first
	// attempt included) before giving up on repeated crashes.
	DefaultSearchAttempts = 5

	// DefaultSearchRetryDelay is the fixed pause between fd attempts.
	DefaultSearchRetryDelay = 10 * time.Second

	// DefaultTransientExitCode is the exit code fd uses when it panics
	// internally. Such crashes are sporadic and worth retrying.
	DefaultTransientExitCode = 101
)
