package document

import (
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/xonecas/strum/internal/chordline"
)

// RecoverMarkers re-attaches chord markers that an editing widget dropped.
//
// The previous and edited texts are diffed line by line with their markers
// in place, so lines that came through intact are settled. Inside each
// changed hunk a removed chord line is paired, in order, with an inserted
// lyric line of identical content; that lyric line is the chord line with
// its marker lost and is turned back into a chord line.
// Returns the repaired text and the number of markers restored.
func RecoverMarkers(previous, edited string) (string, int) {
	prev := chordline.Parse(previous)
	next := chordline.Parse(edited)

	restored := 0
	for _, h := range changedHunks(serialize(prev), serialize(next)) {
		at := 0
		for _, o := range h.removed {
			if prev[o].Kind != chordline.Chord {
				continue
			}
			for k := at; k < len(h.inserted); k++ {
				n := h.inserted[k]
				if next[n].Kind == chordline.Lyric && next[n].Text == prev[o].Text {
					next[n].Kind = chordline.Chord
					restored++
					at = k + 1
					break
				}
			}
		}
	}
	if restored == 0 {
		return edited, 0
	}
	return chordline.Format(next), restored
}

// hunk is one run of changed lines: indices of removed previous lines and of
// inserted edited lines.
type hunk struct {
	removed  []int
	inserted []int
}

// changedHunks groups the myers edits between before and after into hunks
// separated by unchanged lines.
func changedHunks(before, after []string) []hunk {
	uri := span.URIFromPath("lyrics")
	edits := myers.ComputeEdits(uri, joinLines(before), joinLines(after))

	var (
		hunks []hunk
		cur   hunk
		i, j  int
	)
	flush := func() {
		if len(cur.removed) > 0 || len(cur.inserted) > 0 {
			hunks = append(hunks, cur)
		}
		cur = hunk{}
	}
	for _, e := range edits {
		start, end := editLines(e)
		if start > i {
			// Unchanged lines close the running hunk.
			flush()
			j += start - i
			i = start
		}
		if e.NewText == "" {
			for ; i < end; i++ {
				cur.removed = append(cur.removed, i)
			}
			continue
		}
		for k := strings.Count(e.NewText, "\n"); k > 0; k-- {
			cur.inserted = append(cur.inserted, j)
			j++
		}
	}
	flush()
	return hunks
}

// editLines returns the zero-based [start, end) range of old lines an edit
// covers. Myers edits always start and end on line boundaries.
func editLines(e gotextdiff.TextEdit) (int, int) {
	return e.Span.Start().Line() - 1, e.Span.End().Line() - 1
}

func joinLines(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

func serialize(lines []chordline.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}
