package artifact

import (
	"bufio"
	"os"
	"path/filepath"

	"phonegen/internal/errors"
)

// Write streams identifiers to dir/name, one per line with a single newline
// terminator, in the given order. The caller passes the ascending sequence
// produced by generation; Write does not reorder.
//
// On any failure the partial file is removed and no Artifact is returned, so
// a half-written file is never reachable as a usable artifact.
func Write(identifiers []string, dir, name string) (Artifact, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Artifact{}, errors.WriteFailed("create artifact store", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return Artifact{}, errors.WriteFailed("open artifact for writing", err)
	}

	discard := func(msg string, cause error) (Artifact, error) {
		_ = f.Close()
		_ = os.Remove(path)
		return Artifact{}, errors.WriteFailed(msg, cause)
	}

	w := bufio.NewWriter(f)
	for _, id := range identifiers {
		if _, err := w.WriteString(id); err != nil {
			return discard("write identifier", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return discard("write identifier", err)
		}
	}

	if err := w.Flush(); err != nil {
		return discard("flush artifact", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return Artifact{}, errors.WriteFailed("close artifact", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Artifact{}, errors.WriteFailed("stat artifact", err)
	}

	return Artifact{
		Name:      name,
		Path:      path,
		SizeBytes: info.Size(),
		LineCount: len(identifiers),
	}, nil
}
