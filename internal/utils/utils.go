package utils

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// TruncatePath shortens a path from the left so the tail stays visible.
// maxLen counts runes.
func TruncatePath(path string, maxLen int) string {
	runes := []rune(path)
	if maxLen < 4 || len(runes) <= maxLen {
		return path
	}
	return "..." + string(runes[len(runes)-(maxLen-3):])
}

// FormatCount formats a count with thousands separators
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// Elapsed describes how long ago start was, e.g. "12 seconds"
func Elapsed(start, now time.Time) string {
	if now.Sub(start) < time.Second {
		return "less than a second"
	}
	return strings.TrimSpace(humanize.RelTime(start, now, "", ""))
}
