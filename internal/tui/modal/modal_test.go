package modal

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

var testColors = Colors{Dim: "#666", SelFg: "#fff", SelBg: "#444", Border: "#555"}

func songs(query string) []Item {
	all := []Item{
		{ID: "1", Name: "Amazing Grace", Desc: "John Newton"},
		{ID: "2", Name: "Blackbird", Desc: "The Beatles"},
		{ID: "3", Name: "Creep", Desc: "Radiohead"},
	}
	if query == "" {
		return all
	}
	var out []Item
	for _, it := range all {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(query)) {
			out = append(out, it)
		}
	}
	return out
}

func key(ch rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: ch, Text: string(ch)}
}

func special(name string) tea.KeyPressMsg {
	switch name {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	default:
		return tea.KeyPressMsg{}
	}
}

func TestEscapeCloses(t *testing.T) {
	m := New(songs, "> ", testColors)
	a, _ := m.HandleMsg(special("esc"))
	if _, ok := a.(ActionClose); !ok {
		t.Fatalf("expected ActionClose, got %T", a)
	}
}

func TestEnterSelectsFirst(t *testing.T) {
	m := New(songs, "> ", testColors)
	a, _ := m.HandleMsg(special("enter"))
	sel, ok := a.(ActionSelect)
	if !ok {
		t.Fatalf("expected ActionSelect, got %T", a)
	}
	if sel.Item.ID != "1" {
		t.Fatalf("expected song 1, got %+v", sel.Item)
	}
}

func TestDownThenEnterSelectsHighlighted(t *testing.T) {
	m := New(songs, "> ", testColors)
	m.HandleMsg(special("down")) // enter list, selected=0
	m.HandleMsg(special("down")) // selected=1
	a, _ := m.HandleMsg(special("enter"))
	sel, ok := a.(ActionSelect)
	if !ok {
		t.Fatalf("expected ActionSelect, got %T", a)
	}
	if sel.Item.Name != "Blackbird" {
		t.Fatalf("expected Blackbird, got %s", sel.Item.Name)
	}
}

func TestUpFromTopReturnsFocusToInput(t *testing.T) {
	m := New(songs, "> ", testColors)
	m.HandleMsg(special("down")) // enter list
	if !m.inList {
		t.Fatal("expected inList=true")
	}
	m.HandleMsg(special("up")) // back to input
	if m.inList {
		t.Fatal("expected inList=false")
	}
}

func TestTypingProducesDebounceCmd(t *testing.T) {
	m := New(songs, "> ", testColors)
	_, cmd := m.HandleMsg(key('a'))
	if cmd == nil {
		t.Fatal("expected debounce cmd")
	}
	if string(m.input) != "a" {
		t.Fatalf("expected input 'a', got %q", string(m.input))
	}
}

func TestDebounceFiresSearch(t *testing.T) {
	called := false
	searchFn := func(q string) []Item {
		if q == "x" {
			called = true
		}
		return nil
	}
	m := New(searchFn, "> ", testColors)
	// Type 'x'.
	m.HandleMsg(key('x'))
	seq := m.seq
	// Fire matching debounce.
	m.HandleMsg(debounceMsg{seq: seq})
	if !called {
		t.Fatal("expected search to be called")
	}
}

func TestStaleDebounceIgnored(t *testing.T) {
	callCount := 0
	searchFn := func(q string) []Item {
		if q != "" {
			callCount++
		}
		return nil
	}
	m := New(searchFn, "> ", testColors)
	m.HandleMsg(key('a'))
	staleSeq := m.seq
	m.HandleMsg(key('b')) // bumps seq
	// Fire stale debounce, should be ignored.
	m.HandleMsg(debounceMsg{seq: staleSeq})
	if callCount != 0 {
		t.Fatalf("expected 0 search calls for stale debounce, got %d", callCount)
	}
}

func TestBackspaceRemovesChar(t *testing.T) {
	m := New(songs, "> ", testColors)
	m.HandleMsg(key('a'))
	m.HandleMsg(key('b'))
	m.HandleMsg(special("backspace"))
	if string(m.input) != "a" {
		t.Fatalf("expected 'a', got %q", string(m.input))
	}
}

func TestViewRenders(t *testing.T) {
	m := New(songs, "> ", testColors)
	v := m.View(100, 40)
	if v == "" {
		t.Fatal("expected non-empty view")
	}
}

func TestEmptyResultsEnterNoAction(t *testing.T) {
	m := New(func(string) []Item { return nil }, "> ", testColors)
	a, _ := m.HandleMsg(special("enter"))
	if a != nil {
		t.Fatalf("expected nil action, got %T", a)
	}
}

func TestDebounceNarrowsResults(t *testing.T) {
	m := New(songs, "> ", testColors)
	m.HandleMsg(key('c'))
	m.HandleMsg(key('r'))
	m.HandleMsg(debounceMsg{seq: m.seq})
	if got := m.Items(); len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("items = %+v", got)
	}
}

func TestFreeTextSubmits(t *testing.T) {
	m := New(nil, "chord: ", testColors)
	m.FreeText = true
	if a, _ := m.HandleMsg(special("enter")); a != nil {
		t.Fatalf("empty input should not submit, got %T", a)
	}
	for _, r := range "Dsus4 " {
		m.HandleMsg(key(r))
	}
	a, _ := m.HandleMsg(special("enter"))
	sub, ok := a.(ActionSubmit)
	if !ok {
		t.Fatalf("expected ActionSubmit, got %T", a)
	}
	if sub.Text != "Dsus4" {
		t.Fatalf("submitted %q", sub.Text)
	}
}

func TestFreeTextListStillSelects(t *testing.T) {
	m := New(songs, "> ", testColors)
	m.FreeText = true
	m.HandleMsg(special("down"))
	a, _ := m.HandleMsg(special("enter"))
	if _, ok := a.(ActionSelect); !ok {
		t.Fatalf("expected ActionSelect from the list, got %T", a)
	}
}

func TestViewerScrollsAndCloses(t *testing.T) {
	content := strings.Repeat("line\n", 50)
	v := NewViewer("Preview", content, testColors)
	out := v.View(80, 20)
	if !strings.Contains(out, "Preview") {
		t.Fatal("title missing")
	}
	v.HandleMsg(special("down"))
	v.HandleMsg(special("down"))
	if v.Scroll() != 2 {
		t.Fatalf("scroll = %d", v.Scroll())
	}
	v.HandleMsg(special("up"))
	v.HandleMsg(special("up"))
	v.HandleMsg(special("up"))
	if v.Scroll() != 0 {
		t.Fatalf("scroll should stop at 0, got %d", v.Scroll())
	}
	if a, _ := v.HandleMsg(special("esc")); a == nil {
		t.Fatal("esc should close")
	}
}

func TestItemDetailsRow(t *testing.T) {
	search := func(string) []Item {
		return []Item{
			{ID: "1", Name: "Amazing Grace", Desc: "John Newton", Details: []string{"start G", "chords G C D", "end G"}},
			{ID: "2", Name: "Creep", Desc: "Radiohead"},
		}
	}
	m := New(search, "> ", testColors)
	lines := m.renderList(60, 5)
	if got := ansi.Strip(lines[1]); !strings.HasPrefix(got, "  start G · chords G C D · end G") {
		t.Errorf("details row = %q", got)
	}
	if got := ansi.Strip(lines[2]); !strings.HasPrefix(got, "Creep") {
		t.Errorf("row after details = %q", got)
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 60 {
			t.Errorf("row %d width = %d", i, w)
		}
	}
}

func TestSelectedItemWithDetailsStaysVisible(t *testing.T) {
	search := func(string) []Item {
		var items []Item
		for _, id := range []string{"a", "b", "c", "d"} {
			items = append(items, Item{ID: id, Name: "song " + id, Details: []string{"chords " + id}})
		}
		return items
	}
	m := New(search, "> ", testColors)
	for range 4 {
		m.HandleMsg(special("down"))
	}
	lines := m.renderList(40, 3)
	got := ansi.Strip(strings.Join(lines, "\n"))
	if !strings.Contains(got, "song d") || !strings.Contains(got, "chords d") {
		t.Errorf("selected item scrolled out of view:\n%s", got)
	}
	if strings.Contains(got, "song b") {
		t.Errorf("list did not scroll:\n%s", got)
	}
}
