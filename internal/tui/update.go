package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/strum/internal/gesture"
	"github.com/xonecas/strum/internal/tui/editor"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modalOpen() {
		return m.updateModal(msg)
	}

	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	// -- Focus loss cancels any drag -----------------------------------------
	case tea.BlurMsg:
		m.step(gesture.Cancel{})
		return m, nil

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		return m.handleMouse(msg)

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		if mdl, cmd, handled := m.handleKeyPress(msg); handled {
			return mdl, cmd
		}

	// -- Catalog watcher -----------------------------------------------------
	case SongsReloadedMsg:
		m.setStatus(fmt.Sprintf("song catalog reloaded (%d songs)", msg.Count))
		log.Debug().Int("songs", msg.Count).Msg("tui: catalog reloaded")
		return m, nil
	}

	// Paste and unhandled keys edit the lyrics; nothing edits mid-gesture.
	switch msg.(type) {
	case tea.KeyPressMsg, tea.PasteMsg:
		if m.session.Dragging() || m.session.Pressed() {
			return m, nil
		}
		m.status = ""
		return m, m.handleEdit(msg)
	}
	return m, nil
}

// step runs one gesture event against the document and publishes the
// result.
func (m *Model) step(ev gesture.Event) {
	env := gesture.Env{
		Text:      m.doc.Text(),
		Mapper:    m.mapper,
		Labels:    m.palette,
		Policy:    m.doc.Policy(),
		Threshold: m.cfg.Editor.DragThreshold,
	}
	prev := m.session.Phase()
	next, res := gesture.Step(m.session, ev, env)
	m.session = next

	if res.Changed && m.doc.Replace(res.Text) {
		m.editor.SetLines(m.doc.Lines())
		m.syncMapper()
	}
	if res.RemovedType != "" {
		label, _ := m.palette.Label(res.RemovedType)
		if m.palette.Remove(res.RemovedType) {
			m.setStatus("removed " + label + " from the palette")
			m.layout.pills = layoutPills(m.palette.Types(), m.layout.palette)
		}
	}
	if next.Phase() != prev {
		log.Debug().Stringer("from", prev).Stringer("to", next.Phase()).Msg("tui: gesture")
	}
	m.refreshOverlay()
}

// refreshOverlay mirrors the gesture feedback onto the editor.
func (m *Model) refreshOverlay() {
	s := m.session
	ov := editor.Overlay{}
	_, _, armed := s.Armed()
	if s.Dragging() || armed {
		ov.Guides = true
		ov.GuideWidth = m.cfg.Editor.GuideWidth
	}
	if c, ok := s.Hover(); ok {
		ov.Hover = true
		ov.HoverLine, ov.HoverCol = c.Line, c.Column
	}
	if line, tok, ok := s.Selection(); ok {
		ov.Selected = true
		ov.SelectedLine = line
		ov.SelectedSpan = tok.Span
	}
	if g, ok := s.Ghost(); ok {
		ov.Ghost = g.Label
		ov.GhostX = int(g.X) - m.layout.surface.Min.X + 1
		ov.GhostY = int(g.Y) - m.layout.surface.Min.Y
	}
	m.editor.Overlay = ov
}
