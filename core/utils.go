package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nowFunc = time.Now // mockable

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NewID returns a fresh identifier of the form <prefix>_<unix-ms>_<random>.
// Unique within a session; the random tail guards same-millisecond collisions.
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", prefix, nowFunc().UnixMilli(), suffix)
}
