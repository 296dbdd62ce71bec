package artifact

import (
	"os"
	"path/filepath"
	"time"
)

// Sweep removes regular files in dir whose modification time is older than
// maxAge and returns the number of successful deletions. The scan is
// non-recursive. Per-file deletion failures (permissions, a concurrent
// remove) are swallowed: the sweep is best effort and idempotent.
func Sweep(dir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	deleted := 0

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
			deleted++
		}
	}

	return deleted, nil
}
