package main

import (
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/xonecas/strum/internal/songs"
)

var listHeaders = []string{"ID", "TITLE", "ARTIST", "SONG START", "CHORDS", "SONG END"}

// songTable renders the catalog as plain aligned columns, safe to pipe.
func songTable(all []songs.Song) string {
	last := len(listHeaders) - 1
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == last {
				return lipgloss.NewStyle()
			}
			return lipgloss.NewStyle().PaddingRight(2)
		}).
		Headers(listHeaders...)
	for _, s := range all {
		t.Row(s.ID, s.Title, s.Artist, s.SongStart, s.Chords, s.SongEnd)
	}
	return t.String()
}

func listSongs(w io.Writer, c *songs.Catalog) error {
	all, err := c.All()
	if err != nil {
		return err
	}
	_, err = lipgloss.Fprintln(w, songTable(all))
	return err
}
