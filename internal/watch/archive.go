package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// archiveFile moves a processed file into processedDir/<date>/, renaming it
// with a time suffix. Name collisions within the same second get a numeric
// suffix on top.
func archiveFile(processedDir, path string, now time.Time) (string, error) {
	dateDir := filepath.Join(processedDir, now.Format("2006-01-02"))
	if err := os.MkdirAll(dateDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := fmt.Sprintf("%s_%s%s", stem, now.Format("150405"), ext)

	dest := filepath.Join(dateDir, name)
	for n := 1; ; n++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(dateDir, fmt.Sprintf("%s_%s_%d%s", stem, now.Format("150405"), n, ext))
	}

	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("archive file: %w", err)
	}
	return dest, nil
}
