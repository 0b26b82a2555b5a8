package document

import (
	"strings"
	"testing"

	"github.com/xonecas/strum/internal/chordline"
)

var mark = chordline.Mark

func join(lines ...string) string { return strings.Join(lines, "\n") }

func TestNewNormalizes(t *testing.T) {
	d := New(join(mark("A"), mark("  B"), mark("   "), "words"), chordline.MergeStacks)
	want := join(mark("A B"), "words")
	if d.Text() != want {
		t.Errorf("Text() = %q, want %q", d.Text(), want)
	}
	if d.LineCount() != 2 || !d.IsChordLine(0) || d.IsChordLine(1) {
		t.Errorf("unexpected lines: %+v", d.Lines())
	}
}

func TestReplaceCollapsesEmptyChordLine(t *testing.T) {
	d := New(join("intro", mark("G"), "verse"), chordline.MergeStacks)
	rev := d.Revision()
	changed := d.Replace(join("intro", mark(""), "verse"))
	if !changed {
		t.Fatal("expected change")
	}
	if d.Text() != join("intro", "verse") {
		t.Errorf("Text() = %q", d.Text())
	}
	if d.Revision() != rev+1 {
		t.Errorf("revision = %d, want %d", d.Revision(), rev+1)
	}
	if d.Replace(join("intro", "verse")) {
		t.Error("replacing with the same text should not report a change")
	}
}

func TestReplaceAllowStacks(t *testing.T) {
	text := join(mark("A"), mark("B"), "words")
	d := New(text, chordline.AllowStacks)
	if d.Text() != text {
		t.Errorf("Text() = %q, want stacks kept", d.Text())
	}
}

func TestLineAccessors(t *testing.T) {
	d := New(join(mark("G   Cmaj7"), "Amazing grace", ""), chordline.MergeStacks)
	if w := d.LineWidth(1); w != 13 {
		t.Errorf("LineWidth(1) = %d", w)
	}
	if !d.IsBlank(2) || d.IsBlank(1) || d.IsBlank(0) {
		t.Error("IsBlank mismatch")
	}
	if _, ok := d.Line(3); ok {
		t.Error("Line(3) should be out of range")
	}
	tok, ok := d.TokenAt(0, 5)
	if !ok || tok.Text != "Cmaj7" {
		t.Errorf("TokenAt = %v, %v", tok, ok)
	}
	if _, ok := d.TokenAt(1, 0); ok {
		t.Error("lyric lines have no tokens")
	}
	if n := len(d.Tokens(0)); n != 2 {
		t.Errorf("Tokens(0) has %d tokens", n)
	}
}

func TestApplyEditRecoversMarker(t *testing.T) {
	d := New(join(mark("G     D"), "Amazing grace", mark("C"), "how sweet"), chordline.MergeStacks)

	// The widget dropped the marker from line 0 but kept its content.
	edited := join("G     D", "Amazing grace!", mark("C"), "how sweet")
	d.ApplyEdit(edited)

	want := join(mark("G     D"), "Amazing grace!", mark("C"), "how sweet")
	if d.Text() != want {
		t.Errorf("Text() = %q, want %q", d.Text(), want)
	}
	if !d.IsChordLine(0) {
		t.Error("line 0 should be a chord line again")
	}
}

func TestApplyEditRecoversAcrossInsertedLines(t *testing.T) {
	d := New(join("title", mark("Am"), "first line"), chordline.MergeStacks)
	edited := join("title", "", "new line", "Am", "first line")
	d.ApplyEdit(edited)
	want := join("title", "", "new line", mark("Am"), "first line")
	if d.Text() != want {
		t.Errorf("Text() = %q, want %q", d.Text(), want)
	}
}

func TestApplyEditLeavesChangedContent(t *testing.T) {
	d := New(join(mark("G"), "words"), chordline.MergeStacks)
	d.ApplyEdit(join("Gx", "words"))
	if d.IsChordLine(0) {
		t.Error("an edited line must not be re-marked")
	}
}

func TestRecoverMarkersCount(t *testing.T) {
	prev := join(mark("A"), "one", mark("B"), "two")
	got, n := RecoverMarkers(prev, join("A", "one", "B", "two"))
	if n != 2 || got != prev {
		t.Errorf("RecoverMarkers = %q, %d", got, n)
	}
	got, n = RecoverMarkers(prev, prev)
	if n != 0 || got != prev {
		t.Errorf("no-op recovery = %q, %d", got, n)
	}
}

func TestApplyEditKeepsLyricMatchingEmptiedChordLine(t *testing.T) {
	// Backspacing the only chord off a chord line must not turn the lyric
	// below it, which reads the same, into a chord line.
	d := New(join(mark("G"), "G"), chordline.MergeStacks)
	d.ApplyEdit(join(mark(""), "G"))
	if d.Text() != "G" {
		t.Errorf("Text() = %q, want the lyric line kept", d.Text())
	}
	if d.IsChordLine(0) {
		t.Error("lyric line was re-marked")
	}
}

func TestRecoverMarkersSettlesIntactLines(t *testing.T) {
	prev := join(mark("Am"), "Am", "tail")
	tests := []struct {
		name   string
		edited string
		want   string
		n      int
	}{
		{"untouched", prev, prev, 0},
		{"lyric edited", join(mark("Am"), "Am!", "tail"), join(mark("Am"), "Am!", "tail"), 0},
		{"chord line removed", join("Am", "tail"), join("Am", "tail"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := RecoverMarkers(prev, tt.edited)
			if got != tt.want || n != tt.n {
				t.Errorf("RecoverMarkers = %q, %d; want %q, %d", got, n, tt.want, tt.n)
			}
		})
	}
}
