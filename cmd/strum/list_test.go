package main

import (
	"strings"
	"testing"

	"github.com/xonecas/strum/internal/songs"
)

func TestSongTable(t *testing.T) {
	out := songTable([]songs.Song{
		{ID: "grace", Title: "Amazing Grace", Artist: "John Newton", SongStart: "G", Chords: "G C D", SongEnd: "G"},
		{ID: "b", Title: "Blackbird", Artist: "The Beatles"},
	})
	if strings.Contains(out, "\x1b[") {
		t.Errorf("table carries escape sequences:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d:\n%s", len(lines), out)
	}
	header, row := lines[0], lines[1]
	for _, col := range []struct{ head, cell string }{
		{"TITLE", "Amazing Grace"},
		{"ARTIST", "John Newton"},
		{"CHORDS", "G C D"},
	} {
		if h, c := strings.Index(header, col.head), strings.Index(row, col.cell); h < 0 || h != c {
			t.Errorf("%s at %d, %q at %d:\n%s", col.head, h, col.cell, c, out)
		}
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[2]), "b") {
		t.Errorf("second row = %q", lines[2])
	}
}
