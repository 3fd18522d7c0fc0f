// Package exiftool drives an external exiftool process to rewrite EXIF
// fields. The process runs in stay-open mode so a batch pays the startup
// cost once, not per file.
package exiftool

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/redate/internal/exifdate"
)

// EnvBinary is the environment variable that overrides the exiftool binary.
const EnvBinary = "REDATE_EXIFTOOL"

func binary() string {
	if b := os.Getenv(EnvBinary); b != "" {
		return b
	}
	return "exiftool"
}

// Available reports whether the exiftool binary can be found. Its absence
// degrades metadata rewriting; it does not abort a run.
func Available() bool {
	_, err := exec.LookPath(binary())
	return err == nil
}

// Tool manages a persistent exiftool process.
type Tool struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Scanner
}

// Start launches exiftool in stay-open mode, reading commands from stdin.
func Start() (*Tool, error) {
	cmd := exec.Command(binary(), "-stay_open", "True", "-@", "-")
	slog.Debug("Starting exiftool", "args", cmd.Args)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			slog.Warn("exiftool stderr", "line", scanner.Text())
		}
	}()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}

	return &Tool{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewScanner(stdout),
	}, nil
}

// Execute sends one command to the running process, one argument per line,
// and returns everything exiftool prints before its {ready} marker.
func (t *Tool) Execute(args ...string) (string, error) {
	for _, arg := range args {
		if _, err := fmt.Fprintln(t.stdin, arg); err != nil {
			return "", fmt.Errorf("failed to write arg %q: %w", arg, err)
		}
	}
	if _, err := fmt.Fprintln(t.stdin, "-execute"); err != nil {
		return "", fmt.Errorf("failed to write execute command: %w", err)
	}

	var output strings.Builder
	for t.stdout.Scan() {
		line := t.stdout.Text()
		if strings.HasPrefix(line, "{ready}") {
			break
		}
		output.WriteString(line)
		output.WriteString("\n")
	}
	if err := t.stdout.Err(); err != nil {
		return "", fmt.Errorf("failed to read output: %w", err)
	}

	return output.String(), nil
}

// SetDateTime rewrites the capture-datetime family of EXIF fields in the
// file at path. In exiftool tag naming, ModifyDate is the primary IFD0
// DateTime, and CreateDate is DateTimeDigitized.
func (t *Tool) SetDateTime(path string, ts time.Time) error {
	v := exifdate.Format(ts)
	output, err := t.Execute(
		"-overwrite_original",
		"-ModifyDate="+v,
		"-DateTimeOriginal="+v,
		"-CreateDate="+v,
		path,
	)
	if err != nil {
		return fmt.Errorf("failed to update EXIF datetime in %s: %w", path, err)
	}
	if strings.Contains(output, "0 image files updated") {
		return fmt.Errorf("exiftool did not update %s: %s", path, strings.TrimSpace(output))
	}

	slog.Debug("EXIF datetime updated", "path", path, "datetime", v)
	return nil
}

// Close gracefully shuts down the exiftool process.
func (t *Tool) Close() error {
	if _, err := fmt.Fprintln(t.stdin, "-stay_open"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(t.stdin, "False"); err != nil {
		return err
	}
	if err := t.stdin.Close(); err != nil {
		return err
	}
	return t.cmd.Wait()
}
