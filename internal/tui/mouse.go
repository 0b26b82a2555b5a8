package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/strum/internal/gesture"
)

// ---------------------------------------------------------------------------
// Mouse filter: throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel and motion events (15 ms).
// Pass to tea.WithFilter. Never drops clicks or releases, so a drag always
// sees its release.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// ---------------------------------------------------------------------------
// Mouse handling. Palette pills and the lyrics surface feed the gesture
// session; the wheel scrolls.
// ---------------------------------------------------------------------------

// mouseXY extracts X, Y from any mouse message via the MouseMsg interface.
func mouseXY(msg tea.MouseMsg) (int, int) {
	m := msg.Mouse()
	return m.X, m.Y
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := mouseXY(msg)
	fx, fy := float64(x), float64(y)

	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		if ev.Button != tea.MouseLeft {
			return m, nil
		}
		m.handlePress(x, y)

	case tea.MouseMotionMsg:
		m.step(gesture.Move{X: fx, Y: fy})

	case tea.MouseReleaseMsg:
		m.step(gesture.Release{X: fx, Y: fy})

	case tea.MouseWheelMsg:
		if !inRect(x, y, m.layout.surface) {
			return m, nil
		}
		switch ev.Button {
		case tea.MouseWheelUp:
			m.editor.ScrollBy(-3)
		case tea.MouseWheelDown:
			m.editor.ScrollBy(3)
		}
		m.syncMapper()
		// Keep the hover cell under a pointer that did not move.
		if m.session.Dragging() {
			m.step(gesture.Move{X: fx, Y: fy})
		}
	}
	return m, nil
}

// handlePress starts a gesture from a palette pill or the surface. The add
// button opens the new chord dialog instead.
func (m *Model) handlePress(x, y int) {
	fx, fy := float64(x), float64(y)
	if inRect(x, y, m.layout.palette) {
		p, ok := m.layout.pillAt(x, y)
		switch {
		case !ok:
		case p.id == "":
			m.openChordModal()
		default:
			m.step(gesture.Press{X: fx, Y: fy, Target: gesture.Palette(p.id)})
		}
		return
	}

	// A plain click on text moves the cursor; chords are left to the
	// gesture session.
	if _, _, armed := m.session.Armed(); !armed && !m.session.Dragging() {
		if cell, ok := m.mapper.HoverFromPointer(fx, fy); ok {
			if _, onChord := m.doc.TokenAt(cell.Line, cell.Column); !onChord {
				m.editor.SetCursor(cell.Line, cell.Column)
				m.syncMapper()
			}
		}
	}
	m.step(gesture.Press{X: fx, Y: fy, Target: gesture.Surface()})
}
