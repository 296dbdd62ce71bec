// Package artifact persists generated identifier sets as line-oriented text
// files and manages their lifecycle: streaming writes, size-bounded
// partitioning, and age-based retention.
package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"phonegen/core/model"
)

// Artifact describes one written identifier file.
type Artifact struct {
	// Name is the base file name within the store
	Name string `json:"name"`

	// Path is the absolute or store-relative file path
	Path string `json:"path"`

	// SizeBytes is the final observed size after flush and close
	SizeBytes int64 `json:"size_bytes"`

	// LineCount is the number of identifiers written
	LineCount int `json:"line_count"`
}

// Part describes one size-bounded, line-aligned slice of an artifact.
type Part struct {
	// Name is the partition file name (part_{n}_{originalName})
	Name string `json:"name"`

	// Path is the partition file path
	Path string `json:"path"`

	// SizeBytes is the partition's byte size
	SizeBytes int64 `json:"size_bytes"`

	// SequenceIndex is the 1-based position within the split
	SequenceIndex int `json:"sequence_index"`
}

// FileName derives the artifact name for a filter and generation time:
// {prefix}_{province}_{city}_{suffixToken}_{YYYYMMDD_HHMMSS}.txt.
func FileName(filter model.FilterSpec, now time.Time) string {
	return sanitize(filter.Prefix) + "_" +
		sanitize(filter.Province) + "_" +
		sanitize(filter.City) + "_" +
		filter.SuffixToken() + "_" +
		now.Format("20060102_150405") + ".txt"
}

// UniqueName returns name, or a uuid-suffixed variant when the target already
// exists in dir. Concurrent requests within the same second must never
// overwrite each other's artifacts.
func UniqueName(dir, name string) string {
	if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
		return name
	}
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + uuid.NewString()[:8] + ext
}

// sanitize strips path separators out of user-influenced name components.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	return strings.ReplaceAll(s, "\\", "_")
}
