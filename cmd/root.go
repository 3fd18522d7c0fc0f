package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "redate",
		Short: "Edit the capture date embedded in JPEG images",
		Long: `Redate rewrites the capture date stored in a JPEG's EXIF metadata,
changing the year (and optionally the month) while keeping the day and
time-of-day untouched, and sets the file's modification time to match.

It works on a single file or on a whole folder of images, optionally
recursively, and can write results to a separate output folder instead
of modifying files in place.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newShowCmd())

	return cmd
}
