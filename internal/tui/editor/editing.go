package editor

import "github.com/xonecas/strum/internal/chordline"

const tabWidth = 4

// ---------------------------------------------------------------------------
// Editing operations
// ---------------------------------------------------------------------------

// InsertText inserts a multi-line string at the current cursor position.
// Chord markers in pasted text are dropped; the kind of the line being
// typed into is kept.
func (m *Model) InsertText(text string) {
	for _, r := range text {
		switch r {
		case '\n':
			m.insertNewline()
		case '\r', chordline.Marker:
		case '\t':
			m.insertTab()
		default:
			m.insertRune(r)
		}
	}
	m.clampScroll()
}

func (m *Model) insertRune(r rune) {
	line := m.currentLine()
	newLine := make([]rune, 0, len(line)+1)
	newLine = append(newLine, line[:m.col]...)
	newLine = append(newLine, r)
	newLine = append(newLine, line[m.col:]...)
	m.rows[m.row].text = newLine
	m.col++
}

// insertNewline splits the current line. Both halves keep its kind, so
// breaking a chord line yields two chord lines.
func (m *Model) insertNewline() {
	cur := m.rows[m.row]
	after := make([]rune, len(cur.text[m.col:]))
	copy(after, cur.text[m.col:])
	m.rows[m.row].text = cur.text[:m.col:m.col]
	newRows := make([]row, 0, len(m.rows)+1)
	newRows = append(newRows, m.rows[:m.row+1]...)
	newRows = append(newRows, row{kind: cur.kind, text: after})
	newRows = append(newRows, m.rows[m.row+1:]...)
	m.rows = newRows
	m.row++
	m.col = 0
}

// deleteBack removes the rune before the cursor. At column 0 the line is
// merged into the one above, which keeps its own kind.
func (m *Model) deleteBack() {
	if m.col > 0 {
		line := m.currentLine()
		m.rows[m.row].text = append(line[:m.col-1:m.col-1], line[m.col:]...)
		m.col--
	} else if m.row > 0 {
		prev := m.rows[m.row-1].text
		m.col = len(prev)
		m.rows[m.row-1].text = append(prev[:len(prev):len(prev)], m.currentLine()...)
		m.rows = append(m.rows[:m.row], m.rows[m.row+1:]...)
		m.row--
	}
}

func (m *Model) deleteForward() {
	line := m.currentLine()
	if m.col < len(line) {
		m.rows[m.row].text = append(line[:m.col:m.col], line[m.col+1:]...)
	} else if m.row < len(m.rows)-1 {
		m.rows[m.row].text = append(line[:len(line):len(line)], m.rows[m.row+1].text...)
		m.rows = append(m.rows[:m.row+1], m.rows[m.row+2:]...)
	}
}

// insertTab pads with spaces to the next tab stop. Tabs never enter the
// buffer because columns are what chords align on.
func (m *Model) insertTab() {
	n := tabWidth - m.col%tabWidth
	for range n {
		m.insertRune(' ')
	}
}
