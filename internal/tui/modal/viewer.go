package modal

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Viewer is a read-only modal that shows pre-rendered (possibly ANSI
// styled) text, such as the highlighted chord sheet preview. Lines are
// truncated rather than wrapped so chord columns stay aligned.
type Viewer struct {
	title   string
	lines   []string
	scroll  int
	colors  Colors
	visible int // rows shown by the last View
}

// NewViewer creates a new viewer modal.
func NewViewer(title, content string, colors Colors) Viewer {
	return Viewer{
		title:  title,
		lines:  strings.Split(content, "\n"),
		colors: colors,
	}
}

// Scroll returns the index of the first visible line.
func (v *Viewer) Scroll() int { return v.scroll }

// HandleMsg processes key events. Returns ActionClose when the modal should close.
func (v *Viewer) HandleMsg(msg tea.Msg) (Action, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.Keystroke() {
		case "esc", "q", "enter":
			return ActionClose{}, nil
		case "up", "k":
			v.scrollBy(-1)
		case "down", "j":
			v.scrollBy(1)
		case "pgup":
			v.scrollBy(-10)
		case "pgdown":
			v.scrollBy(10)
		case "home", "g":
			v.scroll = 0
		case "end", "G":
			v.scroll = v.maxScroll()
		}
	case tea.MouseWheelMsg:
		if msg.Button == tea.MouseWheelUp {
			v.scrollBy(-1)
		} else if msg.Button == tea.MouseWheelDown {
			v.scrollBy(1)
		}
	}
	return nil, nil
}

func (v *Viewer) scrollBy(n int) {
	v.scroll += n
	if v.scroll > v.maxScroll() {
		v.scroll = v.maxScroll()
	}
	if v.scroll < 0 {
		v.scroll = 0
	}
}

func (v *Viewer) maxScroll() int {
	visible := v.visible
	if visible <= 0 {
		visible = 1
	}
	if n := len(v.lines) - visible; n > 0 {
		return n
	}
	return 0
}

// View renders the modal centered in the terminal at appWidth x appHeight.
func (v *Viewer) View(appWidth, appHeight int) string {
	w := appWidth * 80 / 100
	h := appHeight * 80 / 100
	if w < 30 {
		w = 30
	}
	if h < 8 {
		h = 8
	}

	innerW := w - 6 // border (2) + padding (2)
	if innerW < 10 {
		innerW = 10
	}

	bg := lipgloss.Color(v.colors.Bg)
	fg := lipgloss.Color(v.colors.Fg)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(v.colors.Dim)).Background(bg)
	fgStyle := lipgloss.NewStyle().Foreground(fg).Background(bg)

	// Title row + divider = 2 rows overhead inside the box.
	listH := h - 4
	if listH < 1 {
		listH = 1
	}
	v.visible = listH
	if v.scroll > v.maxScroll() {
		v.scroll = v.maxScroll()
	}

	title := v.title
	switch {
	case v.scroll > 0 && v.scroll < v.maxScroll():
		title += "  ↑↓"
	case v.scroll > 0:
		title += "  ↑"
	case v.maxScroll() > 0:
		title += "  ↓"
	}

	var sb strings.Builder
	sb.WriteString(fgStyle.Bold(true).Render(ansi.Truncate(title, innerW, "…")))
	sb.WriteByte('\n')
	sb.WriteString(dimStyle.Render(strings.Repeat("─", innerW)))

	end := v.scroll + listH
	if end > len(v.lines) {
		end = len(v.lines)
	}
	for _, l := range v.lines[v.scroll:end] {
		sb.WriteByte('\n')
		sb.WriteString(padRight(ansi.Truncate(l, innerW, ""), innerW))
	}
	for i := end - v.scroll; i < listH; i++ {
		sb.WriteByte('\n')
		sb.WriteString(fgStyle.Render(strings.Repeat(" ", innerW)))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(v.colors.Border)).
		BorderBackground(bg).
		Foreground(fg).
		Background(bg).
		Padding(0, 1).
		Width(w - 2).
		Render(sb.String())

	return lipgloss.Place(appWidth, appHeight, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceStyle(lipgloss.NewStyle().Background(bg)))
}
