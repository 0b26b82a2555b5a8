package chordline

import "strings"

// Span is a half-open column range [Start, End) in chord line content.
type Span struct {
	Start int
	End   int
}

// Len returns the number of columns covered by s.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether col falls inside s.
func (s Span) Contains(col int) bool { return col >= s.Start && col < s.End }

// Token is a maximal run of chord characters inside chord line content.
type Token struct {
	Span
	Text string
}

// TokensOf scans content left to right and returns its chord tokens.
// Any non-chord rune, even a single space, separates two tokens.
func TokensOf(content string) []Token {
	content = scrub(content)
	var (
		tokens []Token
		b      strings.Builder
		start  = -1
		col    = 0
	)
	flush := func() {
		if start >= 0 {
			tokens = append(tokens, Token{Span: Span{Start: start, End: col}, Text: b.String()})
			b.Reset()
			start = -1
		}
	}
	for _, r := range content {
		if IsChordChar(r) {
			if start < 0 {
				start = col
			}
			b.WriteRune(r)
		} else {
			flush()
		}
		col++
	}
	flush()
	return tokens
}

// TokenAt returns the token covering col, if any.
func TokenAt(content string, col int) (Token, bool) {
	for _, t := range TokensOf(content) {
		if t.Contains(col) {
			return t, true
		}
		if t.Start > col {
			break
		}
	}
	return Token{}, false
}

// ClearOverlapping blanks every token that intersects the closed range
// [dropColumn-1, dropColumn+dropLength]. Tokens are blanked whole, never
// trimmed, so no partial remnant ("Cm" out of "Cmaj7") survives. The result
// is right-trimmed.
func ClearOverlapping(content string, dropColumn, dropLength int) string {
	if dropLength < 1 {
		dropLength = 1
	}
	lo, hi := dropColumn-1, dropColumn+dropLength
	runes := []rune(scrub(content))
	for _, t := range TokensOf(string(runes)) {
		if t.Start > hi || t.End-1 < lo {
			continue
		}
		for i := t.Start; i < t.End; i++ {
			runes[i] = ' '
		}
	}
	return trimRight(string(runes))
}

// BlankSpan replaces the columns of span with spaces and right-trims.
// Columns outside the content are ignored.
func BlankSpan(content string, span Span) string {
	runes := []rune(scrub(content))
	for i := max(span.Start, 0); i < span.End && i < len(runes); i++ {
		runes[i] = ' '
	}
	return trimRight(string(runes))
}

// WriteAt pads content with spaces up to col, writes label rune by rune
// starting at col (overwriting what is there) and right-trims.
func WriteAt(content string, col int, label string) string {
	if col < 0 {
		col = 0
	}
	runes := []rune(scrub(content))
	label = scrub(label)
	need := col + runeLen(label)
	for len(runes) < need {
		runes = append(runes, ' ')
	}
	i := col
	for _, r := range label {
		runes[i] = r
		i++
	}
	return trimRight(string(runes))
}

// Reconstruct writes every token's text at its span into a blank line of the
// given width. For content made only of chord characters and spaces,
// Reconstruct(TokensOf(c), width of c) reproduces c exactly.
func Reconstruct(tokens []Token, width int) string {
	runes := []rune(strings.Repeat(" ", max(width, 0)))
	for _, t := range tokens {
		i := t.Start
		for _, r := range t.Text {
			for i >= len(runes) {
				runes = append(runes, ' ')
			}
			runes[i] = r
			i++
		}
	}
	return string(runes)
}
