package editor

import tea "charm.land/bubbletea/v2"

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

// Update handles key presses and pastes. Mouse input is not handled here:
// the parent turns pointer events into chord gestures.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.PasteMsg:
		if m.focus {
			m.InsertText(msg.Content)
		}

	case tea.KeyPressMsg:
		if !m.focus {
			break
		}
		switch msg.Keystroke() {
		case "up":
			m.row--
		case "down":
			m.row++
		case "left":
			if m.col > 0 {
				m.col--
			} else if m.row > 0 {
				m.row--
				m.col = len(m.currentLine())
			}
		case "right":
			if m.col < len(m.currentLine()) {
				m.col++
			} else if m.row < len(m.rows)-1 {
				m.row++
				m.col = 0
			}
		case "home", "ctrl+a":
			m.col = 0
		case "end":
			m.col = len(m.currentLine())
		case "pgup":
			m.row -= m.height
		case "pgdown":
			m.row += m.height
		case "ctrl+home":
			m.row, m.col = 0, 0
		case "ctrl+end":
			m.row = len(m.rows) - 1
			m.col = len(m.rows[m.row].text)

		case "backspace", "ctrl+h":
			m.deleteBack()
		case "delete", "ctrl+d":
			m.deleteForward()
		case "enter":
			m.insertNewline()
		case "tab":
			m.insertTab()

		default:
			m.InsertText(msg.Text)
		}
		m.clampCursor()
		m.clampScroll()
	}

	return m, nil
}
