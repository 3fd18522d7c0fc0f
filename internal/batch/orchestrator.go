// Package batch applies a capture-date substitution across image files,
// one file at a time, isolating per-file failures so a single bad image
// never aborts the run.
package batch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/lehigh-university-libraries/redate/internal/exifdate"
	"github.com/lehigh-university-libraries/redate/internal/imagefile"
)

// FileWriter writes a new capture datetime to an image file. Satisfied by
// *exifdate.Writer.
type FileWriter interface {
	Write(src, dest string, t time.Time) (bool, error)
}

// Options control one batch run.
type Options struct {
	Folder    string
	Sub       exifdate.Substitution
	Output    string // optional destination folder; empty overwrites in place
	Recursive bool
	DryRun    bool
}

// Outcome records what happened to a single file.
type Outcome struct {
	Path            string
	Dest            string
	Source          exifdate.Source
	From            time.Time
	To              time.Time
	MetadataSkipped bool
	Err             error
}

// Result aggregates the ordered per-file outcomes of one run.
type Result struct {
	Outcomes  []Outcome
	Succeeded int
	Failed    int
	Total     int
}

// Orchestrator runs substitutions over discovered files, strictly
// sequentially.
type Orchestrator struct {
	Writer FileWriter
}

// Run discovers the JPEG files under opts.Folder and applies the
// substitution to each in sorted order. A missing folder is an error;
// per-file failures are counted and the run continues.
func (o *Orchestrator) Run(opts Options) (*Result, error) {
	files, err := imagefile.Find(opts.Folder, opts.Recursive)
	if err != nil {
		return nil, err
	}

	slog.Info("Found image files", "folder", opts.Folder, "count", len(files), "recursive", opts.Recursive)

	result := &Result{Total: len(files)}
	for i, path := range files {
		slog.Info("Processing file", "file", path, "progress", fmt.Sprintf("%d/%d", i+1, len(files)))

		outcome := o.processFile(path, opts)
		if outcome.Err != nil {
			result.Failed++
			slog.Error("Failed to process file", "file", path, "error", outcome.Err)
		} else {
			result.Succeeded++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

// RunFile applies the substitution to a single file. dest may be empty to
// overwrite in place. Unlike Run, the per-file error is surfaced directly.
func (o *Orchestrator) RunFile(path, dest string, sub exifdate.Substitution, dryRun bool) (Outcome, error) {
	outcome := o.process(path, dest, sub, dryRun)
	return outcome, outcome.Err
}

func (o *Orchestrator) processFile(path string, opts Options) Outcome {
	dest, err := destinationPath(path, opts)
	if err != nil {
		return Outcome{Path: path, Err: err}
	}
	return o.process(path, dest, opts.Sub, opts.DryRun)
}

func (o *Orchestrator) process(path, dest string, sub exifdate.Substitution, dryRun bool) Outcome {
	if dest == "" {
		dest = path
	}
	outcome := Outcome{Path: path, Dest: dest}

	reading, err := exifdate.Read(path)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Source = reading.Source
	outcome.From = reading.Time
	if reading.Source == exifdate.SourceFileTime {
		slog.Info("No EXIF datetime, using file modification time", "file", path, "time", reading.Time)
	}

	to, err := sub.Apply(reading.Time)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.To = to

	if dryRun {
		slog.Info("Would change capture date", "file", path, "from", exifdate.Format(reading.Time), "to", exifdate.Format(to))
		return outcome
	}

	skipped, err := o.Writer.Write(path, dest, to)
	outcome.MetadataSkipped = skipped
	outcome.Err = err
	return outcome
}

// destinationPath mirrors path under the output folder when one is set,
// preserving the relative subpath in recursive mode.
func destinationPath(path string, opts Options) (string, error) {
	if opts.Output == "" {
		return path, nil
	}
	if opts.Recursive {
		rel, err := filepath.Rel(opts.Folder, path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s relative to %s: %w", path, opts.Folder, err)
		}
		return filepath.Join(opts.Output, rel), nil
	}
	return filepath.Join(opts.Output, filepath.Base(path)), nil
}
