package exifdate

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeMetadataWriter struct {
	paths []string
	times []time.Time
}

func (f *fakeMetadataWriter) SetDateTime(path string, t time.Time) error {
	f.paths = append(f.paths, path)
	f.times = append(f.times, t)
	return nil
}

func TestWriteInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	if err := os.WriteFile(path, []byte("jpeg bytes"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	meta := &fakeMetadataWriter{}
	w := &Writer{Metadata: meta}
	ts := time.Date(2023, time.December, 17, 10, 0, 0, 0, time.Local)

	skipped, err := w.Write(path, "", ts)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if skipped {
		t.Error("Expected metadata rewrite to run")
	}
	if len(meta.paths) != 1 || meta.paths[0] != path {
		t.Errorf("Expected metadata write on %s, got %v", path, meta.paths)
	}
	if len(meta.times) != 1 || !meta.times[0].Equal(ts) {
		t.Errorf("Expected metadata time %v, got %v", ts, meta.times)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat file: %v", err)
	}
	if !info.ModTime().Equal(ts) {
		t.Errorf("Expected mtime %v, got %v", ts, info.ModTime())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("File content changed: %q", data)
	}
}

func TestWriteToDestination(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := filepath.Join(srcDir, "a.jpg")
	dest := filepath.Join(destDir, "nested", "a.jpg")
	if err := os.WriteFile(src, []byte("jpeg bytes"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	srcTime := time.Date(2019, time.May, 17, 10, 0, 0, 0, time.Local)
	if err := os.Chtimes(src, srcTime, srcTime); err != nil {
		t.Fatalf("failed to set source times: %v", err)
	}

	w := &Writer{} // no metadata capability
	ts := time.Date(2023, time.December, 17, 10, 0, 0, 0, time.Local)

	skipped, err := w.Write(src, dest, ts)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !skipped {
		t.Error("Expected metadata rewrite to be reported as skipped")
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("Destination content mismatch: %q", data)
	}

	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("failed to stat destination: %v", err)
	}
	if !info.ModTime().Equal(ts) {
		t.Errorf("Expected destination mtime %v, got %v", ts, info.ModTime())
	}

	// The source must be untouched when writing elsewhere.
	srcInfo, err := os.Stat(src)
	if err != nil {
		t.Fatalf("failed to stat source: %v", err)
	}
	if !srcInfo.ModTime().Equal(srcTime) {
		t.Errorf("Source mtime changed: %v", srcInfo.ModTime())
	}
}

func TestWriteMissingSource(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{}
	ts := time.Now()

	if _, err := w.Write(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "out.jpg"), ts); err == nil {
		t.Fatal("Expected error for missing source file")
	}
}

func TestWriteReencode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dest := filepath.Join(dir, "out", "a.jpg")

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	f, err := os.Create(src)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	w := &Writer{Reencode: true}
	ts := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.Local)

	if _, err := w.Write(src, dest, ts); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	out, err := os.Open(dest)
	if err != nil {
		t.Fatalf("failed to open destination: %v", err)
	}
	defer out.Close()
	decoded, err := jpeg.Decode(out)
	if err != nil {
		t.Fatalf("Destination is not a valid JPEG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
}

func TestWriteReencodeRejectsNonJPEG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(src, []byte("not a real jpeg"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	w := &Writer{Reencode: true}
	if _, err := w.Write(src, filepath.Join(dir, "out.jpg"), time.Now()); err == nil {
		t.Fatal("Expected decode error for non-JPEG source")
	}
}
