package imagefile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsJPEG reports whether path carries a recognized JPEG extension.
// The check is case-insensitive and does not touch the filesystem.
func IsJPEG(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}

// Find returns the JPEG files under folder, lexicographically sorted by full
// path. Non-recursive mode inspects only the folder's direct children;
// recursive mode descends into every subfolder. A folder with no matches
// yields an empty slice, not an error.
func Find(folder string, recursive bool) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a folder: %s", folder)
	}

	var files []string

	if recursive {
		err = filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsJPEG(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk folder %s: %w", folder, err)
		}
	} else {
		entries, err := os.ReadDir(folder)
		if err != nil {
			return nil, fmt.Errorf("failed to read folder %s: %w", folder, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !IsJPEG(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(folder, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
