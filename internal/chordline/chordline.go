// Package chordline encodes and decodes chord lines: the marker-prefixed lines
// that carry chord labels above lyric lines.
//
// A document is plain text. A line that starts with Marker is a chord line;
// every other line is a lyric line. Columns are rune offsets into the
// marker-stripped content.
package chordline

import (
	"strings"
	"unicode/utf8"
)

// Marker is the reserved zero-width code point that prefixes chord lines.
// It never appears in lyrics or chord symbols.
const Marker = '\u200b'

const markerStr = string(Marker)

// IsChordLine reports whether line starts with the marker.
func IsChordLine(line string) bool {
	return strings.HasPrefix(line, markerStr)
}

// StripMarker returns line without its leading marker, if any.
func StripMarker(line string) string {
	return strings.TrimPrefix(line, markerStr)
}

// Mark prefixes content with the marker. Any stray markers inside content
// are dropped first so the marker only ever appears at column -1.
func Mark(content string) string {
	return markerStr + scrub(content)
}

// scrub removes every marker from s.
func scrub(s string) string {
	if !strings.ContainsRune(s, Marker) {
		return s
	}
	return strings.ReplaceAll(s, markerStr, "")
}

// IsChordChar reports whether r belongs to the chord-symbol charset:
// ASCII letters and digits plus # b ( ) / + - : . _
func IsChordChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '#', '(', ')', '/', '+', '-', ':', '.', '_':
		return true
	}
	return false
}

// trimRight strips trailing whitespace.
func trimRight(s string) string {
	return strings.TrimRight(s, " \t")
}

// runeLen returns the number of runes in s.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
