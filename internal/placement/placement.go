// Package placement resolves chord drops into text mutations.
package placement

import (
	"strings"

	"github.com/xonecas/strum/internal/chordline"
)

// PlaceChord writes label into the chord line that belongs to the hovered
// line and returns the new text.
//
//   - hovering a chord line edits that chord line;
//   - hovering a lyric line edits the chord line directly above it;
//   - a blank lyric line is converted in place into a chord line (intro
//     chords with no lyric yet); under MergeStacks a blank line next to a
//     chord line writes into that chord line instead;
//   - any other lyric line gets a new chord line inserted above it.
//
// Any token overlapping the drop span (one column of tolerance on both sides)
// is cleared whole before the label is written. Placing the same label at the
// same cell twice yields the same text.
func PlaceChord(text string, hoverLine, hoverColumn int, label string, policy chordline.StackPolicy) string {
	lines := chordline.NormalizeLines(chordline.Parse(text), policy)
	label = cleanLabel(label)
	if label == "" {
		return chordline.Format(lines)
	}
	if hoverColumn < 0 {
		hoverColumn = 0
	}
	hoverLine = clamp(hoverLine, 0, len(lines)-1)

	chordIdx := hoverLine
	hovered := lines[hoverLine]
	above := hoverLine > 0 && lines[hoverLine-1].Kind == chordline.Chord
	below := hoverLine+1 < len(lines) && lines[hoverLine+1].Kind == chordline.Chord
	switch {
	case hovered.Kind == chordline.Chord:
		// The lyric line is the next line; a trailing chord line is edited in
		// place without growing the document.
	case hovered.IsBlank() && above && policy == chordline.MergeStacks:
		// A converted row would merge into its neighbour; the blank row
		// stays so repeated drops on it agree.
		chordIdx = hoverLine - 1
	case hovered.IsBlank() && below && policy == chordline.MergeStacks:
		chordIdx = hoverLine + 1
	case hovered.IsBlank():
		lines[hoverLine] = chordline.Line{Kind: chordline.Chord}
	case above:
		chordIdx = hoverLine - 1
	default:
		lines = insertLine(lines, hoverLine, chordline.Line{Kind: chordline.Chord})
	}

	n := len([]rune(label))
	content := chordline.ClearOverlapping(lines[chordIdx].Text, hoverColumn, n)
	lines[chordIdx] = chordline.Line{
		Kind: chordline.Chord,
		Text: chordline.WriteAt(content, hoverColumn, label),
	}
	return chordline.Format(chordline.NormalizeLines(lines, policy))
}

// RemoveSpanOnLine blanks span on the chord line at index line and drops the
// line when nothing is left on it. Lyric lines and out-of-range indices leave
// the text unchanged.
func RemoveSpanOnLine(text string, line int, span chordline.Span, policy chordline.StackPolicy) string {
	lines := chordline.Parse(text)
	if line < 0 || line >= len(lines) || lines[line].Kind != chordline.Chord {
		return text
	}
	lines[line].Text = chordline.BlankSpan(lines[line].Text, span)
	return chordline.Format(chordline.CollapseLines(chordline.NormalizeLines(lines, policy)))
}

// RemoveTokenAt removes the whole token under (line, col). It reports false
// when no token sits there.
func RemoveTokenAt(text string, line, col int, policy chordline.StackPolicy) (string, chordline.Token, bool) {
	lines := chordline.Parse(text)
	if line < 0 || line >= len(lines) || lines[line].Kind != chordline.Chord {
		return text, chordline.Token{}, false
	}
	tok, ok := chordline.TokenAt(lines[line].Text, col)
	if !ok {
		return text, chordline.Token{}, false
	}
	return RemoveSpanOnLine(text, line, tok.Span, policy), tok, true
}

// MoveChord lifts the token under (fromLine, fromCol) and places it at
// (toLine, toCol). The target cell is given in the coordinates of the original
// text; it is shifted when lifting the token collapses its chord line.
func MoveChord(text string, fromLine, fromCol, toLine, toCol int, policy chordline.StackPolicy) string {
	before := len(chordline.Parse(text))
	lifted, tok, ok := RemoveTokenAt(text, fromLine, fromCol, policy)
	if !ok {
		return text
	}
	if len(chordline.Parse(lifted)) < before && toLine > fromLine {
		toLine--
	}
	return PlaceChord(lifted, toLine, toCol, tok.Text, policy)
}

// cleanLabel drops markers, line breaks and surrounding whitespace.
func cleanLabel(label string) string {
	label = strings.Map(func(r rune) rune {
		switch r {
		case chordline.Marker, '\n', '\r':
			return -1
		}
		return r
	}, label)
	return strings.TrimSpace(label)
}

func insertLine(lines []chordline.Line, at int, l chordline.Line) []chordline.Line {
	lines = append(lines, chordline.Line{})
	copy(lines[at+1:], lines[at:])
	lines[at] = l
	return lines
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
