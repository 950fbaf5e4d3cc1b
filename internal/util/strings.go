// Package util provides shared utility functions used across the codebase.
package util

import "strings"

// TrimTrailingSlash removes all trailing "/" characters from a URL or path.
// Probe URLs are built by concatenating a base address with endpoint paths,
// so "http://host:8501/" and "http://host:8501" must normalize identically.
func TrimTrailingSlash(s string) string {
	return strings.TrimRight(s, "/")
}

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
// This is a simple truncation that does not account for ANSI escape codes or
// wide characters.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
