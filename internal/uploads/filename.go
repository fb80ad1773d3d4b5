package uploads

import (
	"time"

	"journal-backend/internal/shared/util"
)

// timestampLayout is second-granularity on purpose: it is the only thing
// keeping synthesized names apart, so two uploads of the same title within
// one second collide and surface the store's conflict error.
const timestampLayout = "2006-01-02_15-04-05"

// SynthesizeFileName builds the stored name: a timestamp prefix followed by
// a sanitized base. A non-empty title wins over the original filename and
// inherits its extension.
func SynthesizeFileName(now time.Time, title, originalName string) (string, error) {
	base := originalName
	if title != "" {
		base = title + util.Ext(originalName)
	}

	sanitized, err := util.SanitizeFileName(base)
	if err != nil {
		return "", err
	}
	return now.UTC().Format(timestampLayout) + "_" + sanitized, nil
}
