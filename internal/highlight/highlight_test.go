package highlight

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/strum/internal/chordline"
)

func TestChordSheetTokens(t *testing.T) {
	text := chordline.Mark("G   D7/F#") + "\nAmazing grace"
	it, err := ChordSheet.Tokenise(nil, text)
	if err != nil {
		t.Fatal(err)
	}
	var chords []string
	for _, tok := range it.Tokens() {
		switch tok.Type {
		case chroma.NameFunction:
			chords = append(chords, tok.Value)
		case chroma.Text:
			if strings.Contains(tok.Value, "G") && !strings.Contains(tok.Value, "grace") {
				t.Errorf("chord leaked into text token %q", tok.Value)
			}
		}
	}
	if strings.Join(chords, ",") != "G,D7/F#" {
		t.Errorf("chords = %v", chords)
	}
}

func TestLyricsAreNotChords(t *testing.T) {
	it, err := ChordSheet.Tokenise(nil, "G D Em\nla la")
	if err != nil {
		t.Fatal(err)
	}
	for _, tok := range it.Tokens() {
		if tok.Type == chroma.NameFunction {
			t.Errorf("unmarked line produced chord token %q", tok.Value)
		}
	}
}

func TestHighlightStripsMarkers(t *testing.T) {
	text := chordline.Mark("C       G") + "\nHello world\n\n" + chordline.Mark("Am")
	out := Highlight(text, "github-dark", "")
	if strings.ContainsRune(out, chordline.Marker) {
		t.Error("marker leaked into output")
	}
	if got := ansi.Strip(out); got != chordline.Display(text) {
		t.Errorf("plain output = %q, want %q", got, chordline.Display(text))
	}
	if !strings.Contains(out, "\x1b[") {
		t.Error("expected ANSI styling")
	}
}

func TestHighlightBackground(t *testing.T) {
	out := Highlight(chordline.Mark("G")+"\nla", "monokai", "#102030")
	if !strings.HasPrefix(out, "\x1b[48;2;16;32;48m") {
		t.Errorf("missing background prefix: %q", out)
	}
}

func TestThemePalette(t *testing.T) {
	a := ThemePalette("dracula")
	b := ThemePalette("dracula")
	if a != b {
		t.Error("palette is not deterministic")
	}
	for name, c := range map[string]string{
		"bg": a.Bg, "fg": a.Fg, "border": a.Border, "surface": a.Surface,
		"dim": a.Dim, "muted": a.Muted, "accent": a.Accent, "chord": a.Chord, "error": a.Error,
	} {
		if len(c) != 7 || c[0] != '#' {
			t.Errorf("%s = %q, want #rrggbb", name, c)
		}
	}
	if a.Chord == a.Fg {
		t.Error("chords should stand out from lyrics")
	}
}

func TestLerpHex(t *testing.T) {
	if got := lerpHex("#000000", "#ffffff", 0.5); got != "#808080" {
		t.Errorf("lerp = %s", got)
	}
	if got := hexToBgSeq("nope"); got != "" {
		t.Errorf("bad hex = %q", got)
	}
}
