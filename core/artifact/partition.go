package artifact

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"phonegen/internal/errors"
)

// maxPartitionLines is the soft line-count ceiling per partition. It is a
// safety bound independent of the byte budget: whichever triggers first
// closes the current partition.
const maxPartitionLines = 500000

// Partition splits an artifact into ordered, line-aligned parts each within
// maxPartBytes. An artifact already at or under the budget is returned as a
// single pass-through partition referencing the original file, with no copy.
//
// The byte check runs only after a complete line has been buffered, so a
// partition may exceed maxPartBytes by at most the length of the line that
// triggered its flush. Lines are never split. Concatenating the partitions in
// sequence order reproduces the source byte for byte.
func Partition(a Artifact, maxPartBytes int64) ([]Part, error) {
	if a.SizeBytes == 0 {
		return nil, nil
	}
	if a.SizeBytes <= maxPartBytes {
		return []Part{{
			Name:          a.Name,
			Path:          a.Path,
			SizeBytes:     a.SizeBytes,
			SequenceIndex: 1,
		}}, nil
	}

	src, err := os.Open(a.Path)
	if err != nil {
		return nil, errors.SourceUnreadable(a.Name, err)
	}
	defer src.Close()

	dir := filepath.Dir(a.Path)
	var parts []Part

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		buf   []byte
		lines int
	)

	flush := func() error {
		if lines == 0 {
			return nil
		}
		name := fmt.Sprintf("part_%d_%s", len(parts)+1, a.Name)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, buf, 0o644); err != nil {
			return errors.WriteFailed("write partition "+name, err)
		}
		parts = append(parts, Part{
			Name:          name,
			Path:          path,
			SizeBytes:     int64(len(buf)),
			SequenceIndex: len(parts) + 1,
		})
		buf = buf[:0]
		lines = 0
		return nil
	}

	for scanner.Scan() {
		buf = append(buf, scanner.Bytes()...)
		buf = append(buf, '\n')
		lines++

		if int64(len(buf)) >= maxPartBytes || lines >= maxPartitionLines {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.SourceUnreadable(a.Name, err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return parts, nil
}
