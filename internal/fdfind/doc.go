// Package fdfind runs the fd fast-file-search program.
//
// fd is installed as "fdfind" on Debian derivatives and as "fd" elsewhere;
// the Invoker tries each configured name in order. Runs that end with fd's
// internal-crash exit code are retried with a fixed delay; every other
// failure is returned immediately.
package fdfind
