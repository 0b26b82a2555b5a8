// Package editor provides the lyrics editing surface for bubbletea: a line
// buffer that knows which lines carry chords, keyboard editing, and a view
// that draws chord tokens, drop guides, the hover caret and a floating
// ghost label.
package editor

import (
	"charm.land/lipgloss/v2"
	"github.com/xonecas/strum/internal/chordline"
)

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Styles are set by the parent.
type Styles struct {
	Text      lipgloss.Style // Lyric text and the surface background
	ChordLine lipgloss.Style // Background/foreground of chord rows
	Chord     lipgloss.Style // Chord tokens
	Selected  lipgloss.Style // The selected chord token
	Guide     lipgloss.Style // Drop slot dots
	Caret     lipgloss.Style // Hover cell while dragging or armed
	Ghost     lipgloss.Style // Floating label under the pointer
	Cursor    lipgloss.Style // Text cursor
}

// Overlay is the gesture feedback drawn on top of the text. The parent
// rebuilds it from the gesture session before every View.
type Overlay struct {
	// Guides shows drop slots on chord and blank lines.
	Guides     bool
	GuideWidth int

	Hover     bool
	HoverLine int
	HoverCol  int

	Selected     bool
	SelectedLine int
	SelectedSpan chordline.Span

	// Ghost is positioned in component-local cells.
	Ghost  string
	GhostX int
	GhostY int
}

type row struct {
	kind chordline.Kind
	text []rune
}

// Model is the editing surface.
type Model struct {
	Styles Styles

	// Overlay is drawn by View; zero value draws nothing.
	Overlay Overlay

	rows   []row
	row    int // Cursor row
	col    int // Cursor column (rune index)
	scroll int // First visible row

	width  int
	height int

	focus bool
}

// New creates an empty editor.
func New() Model {
	return Model{rows: []row{{kind: chordline.Lyric}}}
}

// ---------------------------------------------------------------------------
// Public methods called by parent
// ---------------------------------------------------------------------------

func (m *Model) SetWidth(w int)  { m.width = w; m.clampScroll() }
func (m *Model) SetHeight(h int) { m.height = h; m.clampScroll() }

func (m Model) Width() int  { return m.width }
func (m Model) Height() int { return m.height }

func (m *Model) Focus()       { m.focus = true }
func (m *Model) Blur()        { m.focus = false }
func (m Model) Focused() bool { return m.focus }

// SetLines replaces the buffer. The cursor and the viewport keep their
// position, clamped to the new content, so the parent can push normalized
// text back after every edit or drop without the view jumping.
func (m *Model) SetLines(lines []chordline.Line) {
	m.rows = make([]row, len(lines))
	for i, l := range lines {
		m.rows[i] = row{kind: l.Kind, text: []rune(l.Text)}
	}
	if len(m.rows) == 0 {
		m.rows = []row{{kind: chordline.Lyric}}
	}
	m.clampCursor()
	m.clampScrollBounds()
}

// SetValue replaces the buffer with serialized text.
func (m *Model) SetValue(s string) {
	m.SetLines(chordline.Parse(s))
	m.row, m.col, m.scroll = 0, 0, 0
}

// Lines returns the buffer as tagged lines.
func (m Model) Lines() []chordline.Line {
	out := make([]chordline.Line, len(m.rows))
	for i, r := range m.rows {
		out[i] = chordline.Line{Kind: r.kind, Text: string(r.text)}
	}
	return out
}

// Value returns the buffer serialized with chord markers.
func (m Model) Value() string { return chordline.Format(m.Lines()) }

// Cursor returns the cursor row and column.
func (m Model) Cursor() (int, int) { return m.row, m.col }

// SetCursor moves the cursor, clamped to the buffer.
func (m *Model) SetCursor(row, col int) {
	m.row, m.col = row, col
	m.clampCursor()
	m.clampScroll()
}

// Scroll returns the first visible row.
func (m Model) Scroll() int { return m.scroll }

// ScrollBy moves the viewport without moving the cursor.
func (m *Model) ScrollBy(n int) {
	m.scroll += n
	m.clampScrollBounds()
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

func (m *Model) currentLine() []rune { return m.rows[m.row].text }

func (m *Model) clampCursor() {
	if m.row >= len(m.rows) {
		m.row = len(m.rows) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	if m.col > len(m.rows[m.row].text) {
		m.col = len(m.rows[m.row].text)
	}
	if m.col < 0 {
		m.col = 0
	}
}

// clampScroll keeps the cursor row inside the viewport.
func (m *Model) clampScroll() {
	if m.height <= 0 {
		return
	}
	if m.row < m.scroll {
		m.scroll = m.row
	}
	if m.row >= m.scroll+m.height {
		m.scroll = m.row - m.height + 1
	}
	m.clampScrollBounds()
}

func (m *Model) clampScrollBounds() {
	maxScroll := len(m.rows) - m.height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}
