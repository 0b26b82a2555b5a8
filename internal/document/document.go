// Package document holds the authoritative lyrics+chords text.
//
// Every mutation goes through one entry point that re-runs stack
// normalization and empty-chord-line collapse before the new text is
// published, so readers never observe a text that breaks the chord line
// invariants.
package document

import (
	"github.com/rs/zerolog/log"
	"github.com/xonecas/strum/internal/chordline"
)

// Document is the text buffer of one song.
type Document struct {
	policy   chordline.StackPolicy
	text     string
	lines    []chordline.Line
	revision uint64
}

// New creates a document from stored lyrics.
func New(text string, policy chordline.StackPolicy) *Document {
	d := &Document{policy: policy}
	d.publish(normalize(text, policy))
	return d
}

// Policy returns the stack policy the document normalizes with.
func (d *Document) Policy() chordline.StackPolicy { return d.policy }

// Text returns the current serialized text (markers included).
func (d *Document) Text() string { return d.text }

// Revision increments every time a different text is published.
func (d *Document) Revision() uint64 { return d.revision }

// Lines returns a copy of the parsed lines.
func (d *Document) Lines() []chordline.Line {
	out := make([]chordline.Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// LineCount returns the number of lines; never less than one.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns line i.
func (d *Document) Line(i int) (chordline.Line, bool) {
	if i < 0 || i >= len(d.lines) {
		return chordline.Line{}, false
	}
	return d.lines[i], true
}

// IsChordLine reports whether line i is a chord line.
func (d *Document) IsChordLine(i int) bool {
	l, ok := d.Line(i)
	return ok && l.Kind == chordline.Chord
}

// LineWidth returns the length of line i in columns.
func (d *Document) LineWidth(i int) int {
	l, _ := d.Line(i)
	return l.Width()
}

// IsBlank reports whether line i is a blank lyric line.
func (d *Document) IsBlank(i int) bool {
	l, ok := d.Line(i)
	return ok && l.Kind == chordline.Lyric && l.IsBlank()
}

// Tokens returns the chord tokens on line i.
func (d *Document) Tokens(i int) []chordline.Token {
	l, _ := d.Line(i)
	return l.Tokens()
}

// TokenAt returns the chord token covering (line, col).
func (d *Document) TokenAt(line, col int) (chordline.Token, bool) {
	l, ok := d.Line(line)
	if !ok || l.Kind != chordline.Chord {
		return chordline.Token{}, false
	}
	return chordline.TokenAt(l.Text, col)
}

// Replace swaps in a whole new text. It reports whether the published text
// changed.
func (d *Document) Replace(text string) bool {
	next := normalize(text, d.policy)
	if next == d.text {
		return false
	}
	d.publish(next)
	return true
}

// ApplyEdit takes text coming back from an editing widget. Lines that the
// widget returned without their marker but with otherwise unchanged content
// get the marker back before the text is published.
func (d *Document) ApplyEdit(edited string) bool {
	recovered, n := RecoverMarkers(d.text, edited)
	if n > 0 {
		log.Debug().Int("lines", n).Msg("document: re-attached chord markers")
	}
	return d.Replace(recovered)
}

func (d *Document) publish(text string) {
	d.text = text
	d.lines = chordline.Parse(text)
	d.revision++
}

func normalize(text string, policy chordline.StackPolicy) string {
	lines := chordline.NormalizeLines(chordline.Parse(text), policy)
	return chordline.Format(chordline.CollapseLines(lines))
}
