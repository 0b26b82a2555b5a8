package editor

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/strum/internal/chordline"
)

func press(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(press(r, string(r)))
	}
	return m
}

func newEditor(text string) Model {
	m := New()
	m.SetWidth(30)
	m.SetHeight(5)
	m.SetValue(text)
	m.Focus()
	return m
}

func TestValueKeepsChordMarkers(t *testing.T) {
	text := chordline.Mark("G     C") + "\nAmazing grace"
	m := newEditor(text)
	if m.Value() != text {
		t.Fatalf("Value = %q, want %q", m.Value(), text)
	}
	m.SetCursor(1, 7)
	m = typeText(m, "!")
	want := chordline.Mark("G     C") + "\nAmazing! grace"
	if m.Value() != want {
		t.Errorf("Value = %q, want %q", m.Value(), want)
	}
}

func TestNewlineSplitKeepsKind(t *testing.T) {
	m := newEditor(chordline.Mark("G   C"))
	m.SetCursor(0, 3)
	m, _ = m.Update(press(tea.KeyEnter, ""))
	lines := m.Lines()
	if len(lines) != 2 || lines[0].Kind != chordline.Chord || lines[1].Kind != chordline.Chord {
		t.Fatalf("lines = %+v", lines)
	}
	if lines[0].Text != "G  " || lines[1].Text != " C" {
		t.Errorf("split = %q / %q", lines[0].Text, lines[1].Text)
	}
	if r, c := m.Cursor(); r != 1 || c != 0 {
		t.Errorf("cursor = %d,%d", r, c)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	m := newEditor("ab\ncd")
	m.SetCursor(1, 0)
	m, _ = m.Update(press(tea.KeyBackspace, ""))
	if m.Value() != "abcd" {
		t.Fatalf("Value = %q", m.Value())
	}
	if r, c := m.Cursor(); r != 0 || c != 2 {
		t.Errorf("cursor = %d,%d", r, c)
	}
	m, _ = m.Update(press(tea.KeyDelete, ""))
	if m.Value() != "abd" {
		t.Errorf("after delete = %q", m.Value())
	}
}

func TestTabPadsToStop(t *testing.T) {
	m := newEditor("ab")
	m.SetCursor(0, 2)
	m, _ = m.Update(press(tea.KeyTab, ""))
	if m.Value() != "ab  " {
		t.Errorf("Value = %q", m.Value())
	}
}

func TestPasteDropsMarkers(t *testing.T) {
	m := newEditor("")
	m, _ = m.Update(tea.PasteMsg{Content: chordline.Mark("G") + "\r\nla\tla"})
	if m.Value() != "G\nla  la" {
		t.Errorf("Value = %q", m.Value())
	}
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m := newEditor("x")
	m.Blur()
	m = typeText(m, "abc")
	if m.Value() != "x" {
		t.Errorf("Value = %q", m.Value())
	}
}

func TestSetLinesClampsCursor(t *testing.T) {
	m := newEditor("one\ntwo\nthree")
	m.SetCursor(2, 5)
	m.SetLines(chordline.Parse("x"))
	if r, c := m.Cursor(); r != 0 || c != 1 {
		t.Errorf("cursor = %d,%d", r, c)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	m := newEditor(strings.Repeat("line\n", 20))
	m.SetCursor(10, 0)
	if m.Scroll() != 6 {
		t.Errorf("scroll = %d, want 6", m.Scroll())
	}
	m.ScrollBy(-100)
	if m.Scroll() != 0 {
		t.Errorf("scroll = %d", m.Scroll())
	}
	m.ScrollBy(100)
	if m.Scroll() != 16 {
		t.Errorf("scroll = %d, want 16", m.Scroll())
	}
}

func TestViewRowWidths(t *testing.T) {
	m := newEditor(chordline.Mark("G     C") + "\nAmazing grace\n\nhow sweet")
	m.Styles.Text = lipgloss.NewStyle().Background(lipgloss.Color("#000000"))
	m.Overlay = Overlay{
		Guides: true, GuideWidth: 20,
		Hover: true, HoverLine: 2, HoverCol: 4,
		Ghost: "Em", GhostX: 28, GhostY: 2,
	}
	for i, line := range strings.Split(m.View(), "\n") {
		if w := lipgloss.Width(line); w != 30 {
			t.Errorf("row %d width = %d, want 30", i, w)
		}
	}
}

func TestViewGuidesAndGhost(t *testing.T) {
	m := newEditor(chordline.Mark("G") + "\nla\n")
	plain := func() []string { return strings.Split(ansi.Strip(m.View()), "\n") }

	rows := plain()
	if strings.ContainsRune(rows[0], GuideDot) {
		t.Error("guides drawn without a gesture")
	}

	m.Overlay = Overlay{Guides: true, GuideWidth: 5, Ghost: "Am", GhostX: 3, GhostY: 1}
	rows = plain()
	if rows[0][:1] != "G" || !strings.HasPrefix(rows[0][1:], strings.Repeat(string(GuideDot), 4)) {
		t.Errorf("chord row = %q", rows[0])
	}
	if !strings.HasPrefix(rows[1], "la Am") {
		t.Errorf("ghost row = %q", rows[1])
	}
	if strings.ContainsRune(rows[1], GuideDot) {
		t.Error("guides drawn on a lyric line")
	}
	if !strings.HasPrefix(rows[2], strings.Repeat(string(GuideDot), 5)+" ") {
		t.Errorf("blank row = %q", rows[2])
	}
}
