// Package exifdate reads, rewrites, and transforms the capture-datetime
// family of EXIF fields (DateTime, DateTimeOriginal, DateTimeDigitized).
package exifdate

import (
	"fmt"
	"time"
)

// Layout is the fixed textual encoding EXIF uses for datetime fields.
const Layout = "2006:01:02 15:04:05"

// Format renders t in the EXIF textual datetime encoding.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads an EXIF textual datetime in the local timezone. EXIF datetimes
// carry no zone information, so local time matches how the filesystem
// timestamps will be interpreted.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse EXIF datetime %q: %w", s, err)
	}
	return t, nil
}
