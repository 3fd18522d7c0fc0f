package batch

import (
	"fmt"
	"os"
	"time"

	"github.com/lehigh-university-libraries/redate/internal/exifdate"
	"gopkg.in/yaml.v3"
)

// ReportConfig records the inputs of a run.
type ReportConfig struct {
	Folder    string `yaml:"folder"`
	Year      int    `yaml:"year"`
	Month     int    `yaml:"month,omitempty"`
	Output    string `yaml:"output,omitempty"`
	Recursive bool   `yaml:"recursive"`
	DryRun    bool   `yaml:"dryrun"`
	Timestamp string `yaml:"timestamp"`
}

// ReportEntry is one file's outcome in the report.
type ReportEntry struct {
	Path            string `yaml:"path"`
	Destination     string `yaml:"destination,omitempty"`
	Source          string `yaml:"source,omitempty"`
	From            string `yaml:"from,omitempty"`
	To              string `yaml:"to,omitempty"`
	MetadataSkipped bool   `yaml:"metadataskipped,omitempty"`
	Error           string `yaml:"error,omitempty"`
}

// ReportSummary totals a run.
type ReportSummary struct {
	Succeeded int `yaml:"succeeded"`
	Failed    int `yaml:"failed"`
	Total     int `yaml:"total"`
}

// Report is the complete YAML run report.
type Report struct {
	Config  ReportConfig  `yaml:"config"`
	Results []ReportEntry `yaml:"results"`
	Summary ReportSummary `yaml:"summary"`
}

// NewReport assembles a report from a finished run.
func NewReport(opts Options, result *Result) *Report {
	report := &Report{
		Config: ReportConfig{
			Folder:    opts.Folder,
			Year:      opts.Sub.Year,
			Month:     opts.Sub.Month,
			Output:    opts.Output,
			Recursive: opts.Recursive,
			DryRun:    opts.DryRun,
			Timestamp: time.Now().Format("2006-01-02_15-04-05"),
		},
		Results: make([]ReportEntry, 0, len(result.Outcomes)),
		Summary: ReportSummary{
			Succeeded: result.Succeeded,
			Failed:    result.Failed,
			Total:     result.Total,
		},
	}

	for _, outcome := range result.Outcomes {
		entry := ReportEntry{
			Path:            outcome.Path,
			Source:          outcome.Source.String(),
			MetadataSkipped: outcome.MetadataSkipped,
		}
		if outcome.Dest != outcome.Path {
			entry.Destination = outcome.Dest
		}
		if !outcome.From.IsZero() {
			entry.From = exifdate.Format(outcome.From)
		}
		if !outcome.To.IsZero() {
			entry.To = exifdate.Format(outcome.To)
		}
		if outcome.Err != nil {
			entry.Error = outcome.Err.Error()
		}
		if outcome.From.IsZero() {
			// The read never completed, so there is no datetime source.
			entry.Source = ""
		}
		report.Results = append(report.Results, entry)
	}

	return report
}

// WriteReport saves the YAML run report to path.
func WriteReport(path string, opts Options, result *Result) error {
	data, err := yaml.Marshal(NewReport(opts, result))
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
