package util

import "fmt"

// FormatSize renders a byte count the way the mobile client displays it:
// KB below 1 MiB, MB at or above, two decimals either way.
func FormatSize(sizeBytes int64) string {
	const mib = 1 << 20
	if sizeBytes < mib {
		return fmt.Sprintf("%.2f KB", float64(sizeBytes)/1024)
	}
	return fmt.Sprintf("%.2f MB", float64(sizeBytes)/mib)
}
