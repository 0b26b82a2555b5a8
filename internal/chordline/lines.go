package chordline

import (
	"fmt"
	"strings"
)

// Kind tells lyric lines and chord lines apart.
type Kind int

const (
	Lyric Kind = iota
	Chord
)

func (k Kind) String() string {
	if k == Chord {
		return "chord"
	}
	return "lyric"
}

// Line is one document line. Text never contains the marker; the marker only
// exists in the serialized form produced by Format.
type Line struct {
	Kind Kind
	Text string
}

// IsBlank reports whether the line holds nothing but whitespace.
func (l Line) IsBlank() bool { return strings.TrimSpace(l.Text) == "" }

// Width returns the line length in columns.
func (l Line) Width() int { return runeLen(l.Text) }

// Tokens returns the chord tokens of a chord line; lyric lines have none.
func (l Line) Tokens() []Token {
	if l.Kind != Chord {
		return nil
	}
	return TokensOf(l.Text)
}

// String serializes the line, prefixing chord lines with the marker.
func (l Line) String() string {
	if l.Kind == Chord {
		return Mark(l.Text)
	}
	return scrub(l.Text)
}

// Parse splits text into tagged lines. Markers that do not start a line are
// discarded so they can never leak into visible content.
func Parse(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	for i, r := range raw {
		if IsChordLine(r) {
			lines[i] = Line{Kind: Chord, Text: scrub(StripMarker(r))}
		} else {
			lines[i] = Line{Kind: Lyric, Text: scrub(r)}
		}
	}
	return lines
}

// Format joins lines back into marker-prefixed text.
func Format(lines []Line) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.String())
	}
	return b.String()
}

// Display renders text for people: markers stripped, chord lines and lyric
// lines as they would be printed on a chord sheet.
func Display(text string) string {
	return scrub(text)
}

// ---------------------------------------------------------------------------
// Stack normalization
// ---------------------------------------------------------------------------

// StackPolicy decides what happens to consecutive chord lines.
type StackPolicy int

const (
	// MergeStacks collapses a run of chord lines into one.
	MergeStacks StackPolicy = iota
	// AllowStacks keeps stacked chord lines, e.g. for multi-row intros.
	AllowStacks
)

func (p StackPolicy) String() string {
	if p == AllowStacks {
		return "allow"
	}
	return "merge"
}

// ParseStackPolicy maps a config value to a policy.
func ParseStackPolicy(s string) (StackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "merge":
		return MergeStacks, nil
	case "allow":
		return AllowStacks, nil
	}
	return MergeStacks, fmt.Errorf("unknown stack policy %q (want merge or allow)", s)
}

// NormalizeStacks applies policy to serialized text.
func NormalizeStacks(text string, policy StackPolicy) string {
	return Format(NormalizeLines(Parse(text), policy))
}

// NormalizeLines merges every run of consecutive chord lines into a single
// chord line under MergeStacks. The bottommost line wins; each higher line
// only fills columns that are still blank.
func NormalizeLines(lines []Line, policy StackPolicy) []Line {
	if policy == AllowStacks {
		return lines
	}
	out := make([]Line, 0, len(lines))
	for i := 0; i < len(lines); {
		if lines[i].Kind != Chord {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && lines[j].Kind == Chord {
			j++
		}
		out = append(out, Line{Kind: Chord, Text: mergeStack(lines[i:j])})
		i = j
	}
	return out
}

func mergeStack(stack []Line) string {
	merged := []rune(stack[len(stack)-1].Text)
	for k := len(stack) - 2; k >= 0; k-- {
		for col, r := range []rune(stack[k].Text) {
			if r == ' ' || r == '\t' {
				continue
			}
			for len(merged) <= col {
				merged = append(merged, ' ')
			}
			if merged[col] == ' ' || merged[col] == '\t' {
				merged[col] = r
			}
		}
	}
	return trimRight(string(merged))
}

// CollapseEmptyChordLines drops every chord line whose content is blank.
func CollapseEmptyChordLines(text string) string {
	return Format(CollapseLines(Parse(text)))
}

// CollapseLines is CollapseEmptyChordLines over parsed lines. Chord lines
// that survive are right-trimmed.
func CollapseLines(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Kind == Chord {
			l.Text = trimRight(l.Text)
			if l.Text == "" {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}
