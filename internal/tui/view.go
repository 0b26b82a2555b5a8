package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	content := m.renderContent()
	switch {
	case m.songModal != nil:
		content = m.songModal.View(m.width, m.height)
	case m.chordModal != nil:
		content = m.chordModal.View(m.width, m.height)
	case m.preview != nil:
		content = m.preview.View(m.width, m.height)
	}
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.ReportFocus = true
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	m.renderPaletteBar(&b)
	b.WriteByte('\n')
	b.WriteString(m.editor.View())
	b.WriteByte('\n')
	if m.help.ShowAll {
		m.renderFullHelp(&b)
		b.WriteByte('\n')
	}
	m.renderStatusBar(&b)
	return b.String()
}

// renderPaletteBar draws the chord type pills. The armed or dragged type
// is highlighted.
func (m Model) renderPaletteBar(b *strings.Builder) {
	active, _, _ := m.session.Armed()
	dragged := ""
	if m.session.Dragging() {
		dragged = m.session.Label()
	}

	bar := m.styles.Bar
	x := m.layout.palette.Min.X
	for _, p := range m.layout.pills {
		if gap := p.rect.Min.X - x; gap > 0 {
			b.WriteString(bar.Render(strings.Repeat(" ", gap)))
		}
		text := " " + p.label + " "
		switch {
		case p.id == "":
			b.WriteString(m.styles.PillAdd.Render(text))
		case p.id == active || (dragged != "" && p.label == dragged && active == ""):
			b.WriteString(m.styles.PillActive.Render(text))
		default:
			b.WriteString(m.styles.Pill.Render(text))
		}
		x = p.rect.Max.X
	}
	if rest := m.layout.palette.Max.X - x; rest > 0 {
		b.WriteString(bar.Render(strings.Repeat(" ", rest)))
	}
}

// renderFullHelp draws the expanded key list above the status bar.
func (m Model) renderFullHelp(b *strings.Builder) {
	h := m.layout.help.Dy()
	lines := strings.Split(m.help.FullHelpView(m.keys.FullHelp()), "\n")
	for i := 0; i < h; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := ""
		if i < len(lines) {
			line = " " + lines[i]
		}
		b.WriteString(fit(line, m.width, m.styles.Bar))
	}
}

// fit truncates or pads a rendered line to exactly w cells.
func fit(s string, w int, fill lipgloss.Style) string {
	if lipgloss.Width(s) > w {
		return truncateANSI(s, w)
	}
	if pad := w - lipgloss.Width(s); pad > 0 {
		s += fill.Render(strings.Repeat(" ", pad))
	}
	return s
}
