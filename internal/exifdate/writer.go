package exifdate

import (
	"fmt"
	"image/jpeg"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ReencodeQuality is the fixed JPEG quality used when pixel data is
// re-encoded.
const ReencodeQuality = 95

// MetadataWriter is the capability of rewriting the EXIF datetime fields of
// a file in place. It is optional: without it the writer degrades to
// updating filesystem timestamps only.
type MetadataWriter interface {
	SetDateTime(path string, t time.Time) error
}

// Writer applies a new capture datetime to image files on disk.
type Writer struct {
	Metadata MetadataWriter // nil skips the EXIF rewrite
	Reencode bool           // decode and re-encode pixel data instead of copying bytes
}

// Write places the image from src at dest (dest may equal src), rewrites the
// EXIF datetime fields when the metadata capability is present, and sets
// dest's access and modification times to t. The returned flag reports
// whether the EXIF rewrite was skipped for lack of the capability.
//
// The write is not transactional: a failure can leave dest partially
// updated.
func (w *Writer) Write(src, dest string, t time.Time) (bool, error) {
	if dest == "" {
		dest = src
	}

	if dest != src {
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return false, fmt.Errorf("failed to create folder %s: %w", filepath.Dir(dest), err)
		}
	}

	if w.Reencode {
		if err := reencodeJPEG(src, dest); err != nil {
			return false, err
		}
	} else if dest != src {
		if err := copyFile(src, dest); err != nil {
			return false, err
		}
	}

	skipped := false
	if w.Metadata != nil {
		if err := w.Metadata.SetDateTime(dest, t); err != nil {
			return false, err
		}
	} else {
		skipped = true
		slog.Warn("No metadata writer available, EXIF datetime left unchanged", "path", dest)
	}

	if err := os.Chtimes(dest, t, t); err != nil {
		return skipped, fmt.Errorf("failed to set file times on %s: %w", dest, err)
	}

	return skipped, nil
}

// reencodeJPEG decodes the image at src and writes it to dest at the fixed
// quality. Existing EXIF data does not survive re-encoding; the metadata
// rewrite runs afterwards.
func reencodeJPEG(src, dest string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	img, err := jpeg.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", src, err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: ReencodeQuality}); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dest, err)
	}

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	return os.Chmod(dest, info.Mode())
}
