package songs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xonecas/strum/internal/chordline"
)

func openTestCatalog(t *testing.T, songs []Song) *Catalog {
	t.Helper()
	c, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	if err := c.Load(songs); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

var testSongs = []Song{
	{ID: "1", Title: "Amazing Grace", Artist: "John Newton"},
	{ID: "2", Title: "Wonderwall", Artist: "Oasis"},
	{ID: "3", Title: "Café del Mar", Artist: "Energy 52"},
	{ID: "4", Title: "Graceland", Artist: "Paul Simon"},
}

func ids(songs []Song) []string {
	var out []string
	for _, s := range songs {
		out = append(out, s.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	c := openTestCatalog(t, testSongs)
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3", "4"}},
		{"   ", []string{"1", "2", "3", "4"}},
		{"grace", []string{"1", "4"}},
		{"  GRACE ", []string{"1", "4"}},
		{"oasis", []string{"2"}},
		{"CAFÉ", []string{"3"}},
		{"simon", []string{"4"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		got, err := c.Search(tt.query)
		if err != nil {
			t.Fatalf("Search(%q): %v", tt.query, err)
		}
		g := ids(got)
		if len(g) != len(tt.want) {
			t.Errorf("Search(%q) = %v, want %v", tt.query, g, tt.want)
			continue
		}
		for i := range g {
			if g[i] != tt.want[i] {
				t.Errorf("Search(%q) = %v, want %v", tt.query, g, tt.want)
				break
			}
		}
	}
}

func TestGetAndReload(t *testing.T) {
	c := openTestCatalog(t, testSongs)
	s, ok := c.Get("2")
	if !ok || s.Title != "Wonderwall" {
		t.Fatalf("Get = %+v, %v", s, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss")
	}

	if err := c.Load(testSongs[:1]); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Errorf("Len after reload = %d", c.Len())
	}
	if _, ok := c.Get("2"); ok {
		t.Error("reload should replace the old rows")
	}
}

func TestSongText(t *testing.T) {
	if (Song{}).Text() != PlaceholderLyrics {
		t.Error("empty song should get placeholder lyrics")
	}
	if (Song{Lyrics: "la"}).Text() != "la" {
		t.Error("lyrics not returned")
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	if _, ok := c.Get("1"); ok {
		t.Error("nil catalog returned a song")
	}
	if got, err := c.Search("x"); got != nil || err != nil {
		t.Errorf("nil Search = %v, %v", got, err)
	}
	if c.Len() != 0 || c.Load(testSongs) != nil || c.Close() != nil {
		t.Error("nil catalog should be inert")
	}
}

const catalogTOML = `
[[song]]
id = "a"
title = "First"
artist = "Someone"
song_start = "G"
chords = "G C"
song_end = "G"
lyrics = """
\u200BG      C
first line"""

[[song]]
title = "No id"

[[song]]
id = "a"
title = "Duplicate"

[[song]]
id = "b"
title = "Second"
`

func TestParse(t *testing.T) {
	songs, err := Parse(catalogTOML)
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(songs); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("ids = %v", got)
	}
	first := songs[0]
	if first.Title != "First" || first.SongStart != "G" || first.Chords != "G C" {
		t.Errorf("fields = %+v", first)
	}
	lines := chordline.Parse(first.Lyrics)
	if len(lines) != 2 || lines[0].Kind != chordline.Chord || lines[0].Text != "G      C" {
		t.Errorf("lyrics parsed as %+v", lines)
	}
	if _, err := Parse("[[song]\n"); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadFileFallsBackToSamples(t *testing.T) {
	c := openTestCatalog(t, nil)
	if err := LoadFile(c, filepath.Join(t.TempDir(), "missing.toml")); err != nil {
		t.Fatal(err)
	}
	if c.Len() != len(Samples()) {
		t.Errorf("Len = %d, want samples", c.Len())
	}
}

func TestSamplesAreNormalized(t *testing.T) {
	for _, s := range Samples() {
		norm := chordline.CollapseEmptyChordLines(chordline.NormalizeStacks(s.Lyrics, chordline.MergeStacks))
		if norm != s.Lyrics {
			t.Errorf("sample %s is not normalized", s.ID)
		}
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "songs.toml")
	if err := os.WriteFile(path, []byte("[[song]]\nid = \"a\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := openTestCatalog(t, nil)
	if err := LoadFile(c, path); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(c, path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	go w.Start()
	t.Cleanup(func() { w.Stop() })

	if err := os.WriteFile(path, []byte("[[song]]\nid = \"a\"\n[[song]]\nid = \"b\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}
