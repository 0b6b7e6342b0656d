package utils

import "fmt"

// TruncateString shortens s to max characters and appends an ellipsis marker.
// Strings at or under the budget are returned unchanged.
func TruncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// ClampList returns at most limit items and, when the list overflows, a
// "+<remaining>" indicator to render in place of the next item.
func ClampList(items []string, limit int) ([]string, string) {
	if len(items) <= limit {
		return items, ""
	}
	return items[:limit], fmt.Sprintf("+%d", len(items)-limit)
}
