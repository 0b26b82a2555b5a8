package tui

import (
	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"
	"github.com/xonecas/strum/internal/highlight"
	"github.com/xonecas/strum/internal/tui/editor"
	"github.com/xonecas/strum/internal/tui/modal"
)

// Styles holds every style the view uses. All of them are derived from
// the Chroma theme palette so the UI matches the preview highlighting.
type Styles struct {
	BgFill     lipgloss.Style
	Border     lipgloss.Style
	Bar        lipgloss.Style
	Pill       lipgloss.Style
	PillActive lipgloss.Style
	PillAdd    lipgloss.Style
	StatusText lipgloss.Style
	StatusDim  lipgloss.Style
	Accent     lipgloss.Style
	Error      lipgloss.Style
	Editor     editor.Styles
}

// NewStyles builds the styles for a theme palette.
func NewStyles(p highlight.Palette) Styles {
	bg := lipgloss.Color(p.Bg)
	fg := lipgloss.Color(p.Fg)
	surface := lipgloss.Color(p.Surface)
	base := lipgloss.NewStyle().Background(bg).Foreground(fg)
	bar := lipgloss.NewStyle().Background(surface).Foreground(fg)

	return Styles{
		BgFill:     base,
		Border:     lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Border)),
		Bar:        bar,
		Pill:       bar.Foreground(lipgloss.Color(p.Chord)).Bold(true),
		PillActive: lipgloss.NewStyle().Background(lipgloss.Color(p.Accent)).Foreground(bg).Bold(true),
		PillAdd:    bar.Foreground(lipgloss.Color(p.Muted)),
		StatusText: bar,
		StatusDim:  bar.Foreground(lipgloss.Color(p.Dim)),
		Accent:     bar.Foreground(lipgloss.Color(p.Accent)),
		Error:      bar.Foreground(lipgloss.Color(p.Error)),
		Editor: editor.Styles{
			Text:      base,
			ChordLine: base,
			Chord:     base.Foreground(lipgloss.Color(p.Chord)).Bold(true),
			Selected:  lipgloss.NewStyle().Background(lipgloss.Color(p.Accent)).Foreground(bg).Bold(true),
			Guide:     base.Foreground(lipgloss.Color(p.Border)),
			Caret:     lipgloss.NewStyle().Background(lipgloss.Color(p.Accent)).Foreground(bg),
			Ghost:     lipgloss.NewStyle().Background(lipgloss.Color(p.Chord)).Foreground(bg).Bold(true),
			Cursor:    base.Reverse(true),
		},
	}
}

// modalColors maps the palette onto the modal theme.
func (m Model) modalColors() modal.Colors {
	return modal.Colors{
		Fg:     m.colors.Fg,
		Bg:     m.colors.Bg,
		Dim:    m.colors.Dim,
		SelFg:  m.colors.Bg,
		SelBg:  m.colors.Accent,
		Border: m.colors.Border,
	}
}

func newHelp(s Styles) help.Model {
	h := help.New()
	h.ShowAll = false
	h.Styles.ShortKey = s.Accent
	h.Styles.ShortDesc = s.StatusDim
	h.Styles.ShortSeparator = s.StatusDim
	h.Styles.Ellipsis = s.StatusDim
	h.Styles.FullKey = s.Accent
	h.Styles.FullDesc = s.StatusDim
	h.Styles.FullSeparator = s.StatusDim
	return h
}
