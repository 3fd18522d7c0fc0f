package exifdate

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// ErrNoDateTime reports that an image carries no usable capture datetime in
// its EXIF data. It is a fallback signal, not a hard failure.
var ErrNoDateTime = errors.New("no capture datetime in EXIF data")

// Source identifies where a capture timestamp was found.
type Source int

const (
	SourceEXIF Source = iota
	SourceFileTime
)

func (s Source) String() string {
	switch s {
	case SourceEXIF:
		return "exif"
	case SourceFileTime:
		return "file time"
	}
	return "unknown"
}

// Reading is a capture timestamp together with where it came from.
type Reading struct {
	Time   time.Time
	Source Source
}

// ReadEXIF extracts the capture datetime embedded in the image at path.
// A file that cannot be opened surfaces as an I/O error; missing or
// unparseable EXIF data returns ErrNoDateTime so callers can fall back.
func ReadEXIF(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, ErrNoDateTime
	}

	t, err := x.DateTime()
	if err != nil {
		return time.Time{}, ErrNoDateTime
	}

	return t, nil
}

// Read returns the capture datetime for path, falling back to the file's
// modification time when the EXIF data has none. The returned Source lets
// callers report the fallback explicitly.
func Read(path string) (Reading, error) {
	t, err := ReadEXIF(path)
	if err == nil {
		return Reading{Time: t, Source: SourceEXIF}, nil
	}
	if !errors.Is(err, ErrNoDateTime) {
		return Reading{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Reading{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return Reading{Time: info.ModTime(), Source: SourceFileTime}, nil
}
