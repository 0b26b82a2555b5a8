package editor

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/strum/internal/chordline"
)

// GuideDot fills empty drop slots while guides are shown.
const GuideDot = '·'

type cellStyle int

const (
	styleText cellStyle = iota
	styleChordRow
	styleChord
	styleSelected
	styleGuide
	styleCaret
	styleCursor
)

type cell struct {
	r     rune
	style cellStyle
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	for vi := 0; vi < m.height; vi++ {
		if vi > 0 {
			b.WriteByte('\n')
		}
		line := m.renderRow(m.scroll + vi)
		if m.Overlay.Ghost != "" && m.Overlay.GhostY == vi {
			line = m.overlayGhost(line)
		}
		b.WriteString(line)
	}
	return b.String()
}

// cells lays out buffer row i with all overlay decorations applied.
func (m Model) cells(i int) []cell {
	out := make([]cell, m.width)
	if i < 0 || i >= len(m.rows) {
		for j := range out {
			out[j] = cell{r: ' ', style: styleText}
		}
		return out
	}

	r := m.rows[i]
	base := styleText
	if r.kind == chordline.Chord {
		base = styleChordRow
	}
	for j := range out {
		out[j] = cell{r: ' ', style: base}
	}
	for j, ch := range r.text {
		if j >= m.width {
			break
		}
		out[j].r = ch
	}

	if r.kind == chordline.Chord {
		for _, tok := range chordline.TokensOf(string(r.text)) {
			m.paint(out, tok.Span, styleChord)
		}
	}

	ov := m.Overlay
	blank := r.kind == chordline.Lyric && strings.TrimSpace(string(r.text)) == ""
	if ov.Guides && (r.kind == chordline.Chord || blank) {
		for j := 0; j < ov.GuideWidth && j < m.width; j++ {
			if out[j].r == ' ' {
				out[j] = cell{r: GuideDot, style: styleGuide}
			}
		}
	}
	if ov.Selected && ov.SelectedLine == i {
		m.paint(out, ov.SelectedSpan, styleSelected)
	}
	if ov.Hover && ov.HoverLine == i && ov.HoverCol >= 0 && ov.HoverCol < m.width {
		out[ov.HoverCol].style = styleCaret
	}
	if m.focus && !ov.Guides && !ov.Hover && i == m.row && m.col < m.width {
		out[m.col].style = styleCursor
	}
	return out
}

func (m Model) paint(out []cell, span chordline.Span, s cellStyle) {
	for j := span.Start; j < span.End && j < len(out); j++ {
		if j >= 0 {
			out[j].style = s
		}
	}
}

// renderRow renders runs of equally styled cells.
func (m Model) renderRow(i int) string {
	cells := m.cells(i)
	var b strings.Builder
	var run []rune
	cur := styleText
	flush := func() {
		if len(run) > 0 {
			b.WriteString(m.style(cur).Render(string(run)))
			run = run[:0]
		}
	}
	for j, c := range cells {
		if j == 0 || c.style != cur {
			flush()
			cur = c.style
		}
		run = append(run, c.r)
	}
	flush()

	out := b.String()
	if w := lipgloss.Width(out); w > m.width {
		out = ansi.Truncate(out, m.width, "")
	}
	return out
}

func (m Model) style(s cellStyle) lipgloss.Style {
	switch s {
	case styleChordRow:
		return m.Styles.ChordLine
	case styleChord:
		return m.Styles.Chord
	case styleSelected:
		return m.Styles.Selected
	case styleGuide:
		return m.Styles.Guide
	case styleCaret:
		return m.Styles.Caret
	case styleCursor:
		return m.Styles.Cursor
	default:
		return m.Styles.Text
	}
}

// overlayGhost splices the ghost label into a rendered row, keeping it
// inside the component.
func (m Model) overlayGhost(line string) string {
	label := ansi.Truncate(m.Overlay.Ghost, m.width, "")
	lw := lipgloss.Width(label)
	x := m.Overlay.GhostX
	if x+lw > m.width {
		x = m.width - lw
	}
	if x < 0 {
		x = 0
	}
	return ansi.Cut(line, 0, x) + m.Styles.Ghost.Render(label) + ansi.Cut(line, x+lw, m.width)
}
