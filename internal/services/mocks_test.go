package services

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/vvka-141/stguard/pkg/stguard"
)

type mockLocator struct {
	folders map[string][]stguard.SynchronizedFolder
	errs    map[string]error
	calls   []string
}

func (m *mockLocator) Locate(_ context.Context, root string) ([]stguard.SynchronizedFolder, error) {
	m.calls = append(m.calls, root)
	if err := m.errs[root]; err != nil {
		return nil, err
	}
	return m.folders[root], nil
}

type mockScanner struct {
	findings map[string][]stguard.Finding
	scanned  []string
}

func (m *mockScanner) Scan(folder stguard.SynchronizedFolder) iter.Seq[stguard.Finding] {
	return func(yield func(stguard.Finding) bool) {
		m.scanned = append(m.scanned, folder.Path)
		for _, f := range m.findings[folder.Path] {
			if !yield(f) {
				return
			}
		}
	}
}

type mockReporter struct {
	recorded  []stguard.Finding
	flushes   int
	recordErr error
	flushErr  error
}

func (m *mockReporter) Record(f stguard.Finding) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.recorded = append(m.recorded, f)
	return nil
}

func (m *mockReporter) Flush() error {
	m.flushes++
	return m.flushErr
}

type recordingLogger struct {
	verbose []string
	info    []string
	errors  []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) containsVerbose(substr string) bool {
	return slices.ContainsFunc(l.verbose, func(s string) bool { return strings.Contains(s, substr) })
}
