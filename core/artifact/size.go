package artifact

import "fmt"

// FormatSize renders a byte count as a human-readable magnitude, dividing by
// 1024 through B, KB, MB, GB and stopping at the first unit under 1024 (or
// TB if none is).
func FormatSize(bytes int64) string {
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f TB", size)
}
