// Package textutil provides byte-budget string helpers that never split a
// UTF-8 sequence.
package textutil

import "unicode/utf8"

// SnapRuneStart moves i back to the start of the rune it falls inside.
// Indexes at or past the end of s, and indexes already on a rune boundary,
// are returned unchanged.
func SnapRuneStart(s string, i int) int {
	if i >= len(s) {
		return i
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// Truncate cuts s to at most n bytes without splitting a rune.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if n >= len(s) {
		return s
	}
	return s[:SnapRuneStart(s, n)]
}
