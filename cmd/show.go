package cmd

import (
	"fmt"
	"os"

	"github.com/lehigh-university-libraries/redate/internal/exifdate"
	"github.com/lehigh-university-libraries/redate/internal/imagefile"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Show the current capture datetime of JPEG images",
		Long: `Show prints the capture datetime of a JPEG file, or of every JPEG file
in a folder, without modifying anything. Files with no EXIF datetime
are reported with their filesystem modification time instead.`,
		Example: `  # Single file
  redate show photo.jpg

  # Whole folder, recursively
  redate show ./photos -r`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeShow(args[0], recursive)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Inspect subfolders recursively")

	return cmd
}

func executeShow(path string, recursive bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read path %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = imagefile.Find(path, recursive)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Printf("No JPEG files found in %s\n", path)
			return nil
		}
	} else if !imagefile.IsJPEG(path) {
		return fmt.Errorf("not a JPEG file: %s", path)
	}

	failed := 0
	for _, file := range files {
		reading, err := exifdate.Read(file)
		if err != nil {
			fmt.Printf("%s: error: %v\n", file, err)
			failed++
			continue
		}
		suffix := ""
		if reading.Source == exifdate.SourceFileTime {
			suffix = " (file time)"
		}
		fmt.Printf("%s: %s%s\n", file, exifdate.Format(reading.Time), suffix)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(files))
	}
	return nil
}
