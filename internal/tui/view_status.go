package tui

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/strum/internal/gesture"
)

// renderStatusBar writes the status bar: song and gesture state on the
// left, key hints on the right.
func (m Model) renderStatusBar(b *strings.Builder) {
	st := m.styles

	// -- Left segments --
	var leftParts []string
	title := m.song.Title
	if title == "" {
		title = m.song.ID
	}
	leftParts = append(leftParts, st.Accent.Bold(true).Render(" "+title))

	switch {
	case m.status != "" && m.statusErr:
		leftParts = append(leftParts, st.Error.Render("✗ "+m.status))
	case m.status != "":
		leftParts = append(leftParts, st.StatusText.Render(m.status))
	default:
		if s := m.phaseText(); s != "" {
			leftParts = append(leftParts, st.StatusText.Render(s))
		}
	}
	left := strings.Join(leftParts, st.StatusText.Render("  "))

	// -- Right segments --
	bindings := m.contextHelp()
	if bindings == nil {
		bindings = m.keys.ShortHelp()
	}
	right := m.help.ShortHelpView(bindings)

	// -- Compose: left + gap + right + trailing space --
	leftW := lipgloss.Width(left)
	if room := m.width - leftW - 2; lipgloss.Width(right) > room {
		if room < 0 {
			room = 0
		}
		right = truncateANSI(right, room)
	}
	rightW := lipgloss.Width(right)
	gap := m.width - leftW - rightW - 1
	if gap < 0 {
		gap = 0
	}
	line := left + st.Bar.Render(strings.Repeat(" ", gap)) + right + st.Bar.Render(" ")
	b.WriteString(fit(line, m.width, st.Bar))
}

// phaseText describes the gesture in progress.
func (m Model) phaseText() string {
	s := m.session
	switch s.Phase() {
	case gesture.DraggingFromPalette, gesture.DraggingExistingToken:
		if c, ok := s.Hover(); ok {
			return "drop " + s.Label() + " at line " + strconv.Itoa(c.Line+1) + ", col " + strconv.Itoa(c.Column+1)
		}
		return "release off the lyrics to discard " + s.Label()
	case gesture.TokenSelected:
		_, tok, _ := s.Selection()
		return tok.Text + " selected"
	case gesture.ChordTypeSelected:
		_, label, _ := s.Armed()
		return label + " armed: click a line to place it"
	}
	return ""
}

func truncateANSI(s string, w int) string {
	return ansi.Truncate(s, w, "…")
}
