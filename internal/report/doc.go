// Package report renders unsuppressed findings.
//
// Two reporters are provided:
//   - Console writes one "ERROR: <finding>" line per finding as it arrives.
//   - SARIF collects findings and writes a SARIF 2.1.0 log on Flush, for
//     consumption by code-scanning dashboards.
//
// Both implement stguard.Reporter.
package report
