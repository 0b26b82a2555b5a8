package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/strum/internal/gesture"
)

// keyMap lists the application bindings. Anything not bound here goes to
// the editor.
type keyMap struct {
	Quit     key.Binding
	Export   key.Binding
	Songs    key.Binding
	AddChord key.Binding
	Preview  key.Binding
	Delete   key.Binding
	Done     key.Binding
	Cancel   key.Binding
	Help     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "quit & print sheet"),
		),
		Songs: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "songs"),
		),
		AddChord: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new chord"),
		),
		Preview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "preview"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "backspace"),
			key.WithHelp("del", "remove selected"),
		),
		Done: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter/esc", "deselect"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "more keys"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Songs, k.AddChord, k.Preview, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Songs, k.AddChord, k.Preview},
		{k.Delete, k.Done, k.Cancel},
		{k.Export, k.Help, k.Quit},
	}
}

// contextHelp returns the bindings that apply in the current gesture phase.
func (m Model) contextHelp() []key.Binding {
	switch {
	case m.session.Dragging():
		return []key.Binding{m.keys.Cancel}
	case m.session.Phase() == gesture.TokenSelected, m.session.Phase() == gesture.ChordTypeSelected:
		return []key.Binding{m.keys.Delete, m.keys.Done}
	}
	return nil
}

// handleKeyPress processes application keys. Returns (model, cmd, true) if
// handled; unhandled keys go to the editor.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Export):
		m.exportOnQuit = true
		return m.handleQuit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return *m, nil, true
	}

	// Keys while a pointer gesture is live.
	if m.session.Dragging() || m.session.Pressed() {
		if key.Matches(msg, m.keys.Cancel) {
			m.step(gesture.Cancel{})
			m.setStatus("drag cancelled")
		}
		return *m, nil, true
	}

	switch m.session.Phase() {
	case gesture.TokenSelected, gesture.ChordTypeSelected:
		switch {
		case key.Matches(msg, m.keys.Delete):
			m.step(gesture.Delete{})
			return *m, nil, true
		case key.Matches(msg, m.keys.Done):
			m.step(gesture.Done{})
			return *m, nil, true
		}
		// Any other key ends the selection and carries on as usual.
		m.step(gesture.Done{})
	}

	switch {
	case key.Matches(msg, m.keys.Songs):
		m.openSongModal()
		return *m, nil, true
	case key.Matches(msg, m.keys.AddChord):
		m.openChordModal()
		return *m, nil, true
	case key.Matches(msg, m.keys.Preview):
		m.openPreview()
		return *m, nil, true
	}
	return *m, nil, false
}

func (m *Model) handleQuit() (Model, tea.Cmd, bool) {
	if m.session.Dragging() {
		// Never leave with a chord lifted out of the text.
		m.step(gesture.Cancel{})
	}
	log.Info().Str("song", m.song.ID).Bool("export", m.exportOnQuit).Msg("tui: quit")
	return *m, tea.Quit, true
}

// handleEdit forwards a message to the editor and publishes its text.
func (m *Model) handleEdit(msg tea.Msg) tea.Cmd {
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		if m.doc.ApplyEdit(after) {
			m.editor.SetLines(m.doc.Lines())
			m.syncMapper()
		} else if after != m.doc.Text() {
			// Normalization undid the edit; show what the document holds.
			m.editor.SetLines(m.doc.Lines())
		}
	}
	return cmd
}
