package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/lehigh-university-libraries/redate/internal/batch"
	"github.com/lehigh-university-libraries/redate/internal/exifdate"
	"github.com/lehigh-university-libraries/redate/internal/exiftool"
	"github.com/lehigh-university-libraries/redate/internal/imagefile"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	var output string
	var reportPath string
	var recursive bool
	var dryRun bool
	var reencode bool

	cmd := &cobra.Command{
		Use:   "set <path> <year> [month]",
		Short: "Set the capture year (and optionally month) of JPEG images",
		Long: `Set rewrites the capture date of a JPEG file, or of every JPEG file in
a folder, replacing the year and optionally the month while keeping the
day and time-of-day unchanged. The file's modification timestamp is set
to the same value.

EXIF fields are rewritten through exiftool. When exiftool is not
installed, only the file timestamps are updated, and each affected file
is reported as such. By default file bytes are copied untouched; pass
--reencode to decode and re-encode the image at quality 95 instead.`,
		Example: `  # Change the year, keep the original month
  redate set photo.jpg 2023

  # Change year and month for a whole folder, recursively
  redate set ./photos 2010 7 -r

  # Preview without modifying anything
  redate set ./photos 2023 12 --dry-run

  # Write results to a separate folder, keeping originals
  redate set ./photos 2023 12 -o ./modified_photos`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[1])
			}
			month := 0
			if len(args) == 3 {
				month, err = strconv.Atoi(args[2])
				if err != nil || month < 1 || month > 12 {
					return fmt.Errorf("invalid month %q: must be in [1, 12]", args[2])
				}
			}

			sub, err := exifdate.NewSubstitution(year, month)
			if err != nil {
				return err
			}

			return executeSet(args[0], sub, output, reportPath, recursive, dryRun, reencode)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or folder (default: overwrite in place)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML run report to this file")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Process subfolders recursively")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Report intended changes without modifying anything")
	cmd.Flags().BoolVar(&reencode, "reencode", false, "Re-encode pixel data at quality 95 instead of copying bytes")

	return cmd
}

func executeSet(path string, sub exifdate.Substitution, output, reportPath string, recursive, dryRun, reencode bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read path %s: %w", path, err)
	}

	writer := &exifdate.Writer{Reencode: reencode}
	if !dryRun {
		if exiftool.Available() {
			tool, err := exiftool.Start()
			if err != nil {
				return fmt.Errorf("failed to start exiftool: %w", err)
			}
			defer func() {
				if err := tool.Close(); err != nil {
					slog.Warn("Failed to shut down exiftool", "error", err)
				}
			}()
			writer.Metadata = tool
		} else {
			slog.Warn("exiftool not found in PATH; EXIF fields will not be rewritten, only file timestamps")
		}
	}

	orchestrator := &batch.Orchestrator{Writer: writer}

	if !info.IsDir() {
		return setSingleFile(orchestrator, path, output, sub, dryRun)
	}

	opts := batch.Options{
		Folder:    path,
		Sub:       sub,
		Output:    output,
		Recursive: recursive,
		DryRun:    dryRun,
	}

	result, err := orchestrator.Run(opts)
	if err != nil {
		return err
	}

	if reportPath != "" {
		if err := batch.WriteReport(reportPath, opts, result); err != nil {
			return err
		}
		slog.Info("Run report written", "path", reportPath)
	}

	printSummary(result, dryRun)

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", result.Failed, result.Total)
	}
	return nil
}

func setSingleFile(orchestrator *batch.Orchestrator, path, output string, sub exifdate.Substitution, dryRun bool) error {
	if !imagefile.IsJPEG(path) {
		return fmt.Errorf("not a JPEG file: %s", path)
	}

	outcome, err := orchestrator.RunFile(path, output, sub, dryRun)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("Would change %s: %s -> %s\n", path, exifdate.Format(outcome.From), exifdate.Format(outcome.To))
		return nil
	}

	fmt.Printf("Updated %s to %s\n", outcome.Dest, exifdate.Format(outcome.To))
	if outcome.MetadataSkipped {
		fmt.Println("Note: EXIF metadata was not rewritten (exiftool unavailable); only file timestamps were set")
	}
	return nil
}

func printSummary(result *batch.Result, dryRun bool) {
	fmt.Println("\n========================================")
	if dryRun {
		fmt.Println("Dry Run Summary (no changes were made)")
	} else {
		fmt.Println("Run Summary")
	}
	fmt.Println("========================================")
	fmt.Printf("Total files:   %d\n", result.Total)
	fmt.Printf("Succeeded:     %d\n", result.Succeeded)
	fmt.Printf("Failed:        %d\n", result.Failed)

	skipped := 0
	for _, outcome := range result.Outcomes {
		if outcome.MetadataSkipped {
			skipped++
		}
	}
	if skipped > 0 {
		fmt.Printf("Metadata skipped (timestamps only): %d\n", skipped)
	}
	fmt.Println("========================================")
}
