package util

import (
	"errors"
	"strings"
)

// SanitizeFileName replaces every rune outside [A-Za-z0-9.-] with an
// underscore and rejects names that are empty or pure traversal after
// cleaning. The timestamp prefix added by the caller is what keeps names
// collision-resistant; this only makes them storage-safe.
func SanitizeFileName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errors.New("invalid file name")
	}

	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := b.String()
	if strings.Trim(out, "._-") == "" {
		return "", errors.New("invalid file name")
	}
	return out, nil
}

// Ext returns the lowercased extension of a file name including the dot, or
// an empty string when there is none.
func Ext(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx:])
}
