package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/vvka-141/stguard/internal/identity"
	"github.com/vvka-141/stguard/pkg/stguard"
)

const (
	toolName = "stguard"
	toolURI  = "https://github.com/vvka-141/stguard"
)

var ruleDescriptions = map[stguard.Category]string{
	stguard.CategorySyncConflict:        "Leftover Syncthing conflict copy that has not been resolved.",
	stguard.CategoryCaseCollision:       "Sibling names that differ only by letter case.",
	stguard.CategoryForbiddenCharacters: "File name contains characters rejected by Windows or Android.",
}

// SARIF accumulates findings into a single-run SARIF 2.1.0 log and writes it
// on Flush.
type SARIF struct {
	report *sarif.Report
	run    *sarif.Run
	rules  map[stguard.Category]bool
	create func() (io.WriteCloser, error)
}

// NewSARIF creates a reporter that writes the log to path on Flush.
func NewSARIF(path string) (*SARIF, error) {
	return NewSARIFWithWriter(func() (io.WriteCloser, error) {
		return os.Create(path)
	})
}

// NewSARIFWithWriter creates a reporter whose output destination is opened
// by create when Flush is called.
func NewSARIFWithWriter(create func() (io.WriteCloser, error)) (*SARIF, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}
	return &SARIF{
		report: report,
		run:    sarif.NewRunWithInformationURI(toolName, toolURI),
		rules:  make(map[stguard.Category]bool),
		create: create,
	}, nil
}

// Record implements stguard.Reporter.
func (s *SARIF) Record(f stguard.Finding) error {
	ruleID := string(f.Category)
	if !s.rules[f.Category] {
		s.run.AddRule(ruleID).WithDescription(ruleDescriptions[f.Category])
		s.rules[f.Category] = true
	}

	location := sarif.NewLocation().WithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(filepath.ToSlash(f.Path))),
	)

	result := sarif.NewRuleResult(ruleID).
		WithMessage(sarif.NewTextMessage(f.String())).
		WithLevel("error").
		WithLocations([]*sarif.Location{location})
	result.PropertyBag = *sarif.NewPropertyBag()
	result.Add("id", identity.FindingID(f).String())
	if len(f.Chars) > 0 {
		result.Add("chars", string(f.Chars))
	}

	s.run.AddResult(result)
	return nil
}

// Flush implements stguard.Reporter. An audit without findings still
// produces a valid log with an empty result list.
func (s *SARIF) Flush() error {
	s.report.AddRun(s.run)

	w, err := s.create()
	if err != nil {
		return fmt.Errorf("failed to open SARIF output: %w", err)
	}
	if err := s.report.PrettyWrite(w); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close SARIF output: %w", err)
	}
	return nil
}
