package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/strum/internal/highlight"
	"github.com/xonecas/strum/internal/songs"
	"github.com/xonecas/strum/internal/tui/modal"
)

func (m Model) modalOpen() bool {
	return m.songModal != nil || m.chordModal != nil || m.preview != nil
}

func (m *Model) closeModals() {
	m.songModal = nil
	m.chordModal = nil
	m.preview = nil
}

// updateModal routes input to the open dialog. Only resize and quit get
// through to the rest of the app.
func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil
	case tea.KeyPressMsg:
		if msg.Keystroke() == "ctrl+c" {
			mdl, cmd, _ := m.handleQuit()
			return mdl, cmd
		}
	case SongsReloadedMsg:
		m.setStatus(fmt.Sprintf("song catalog reloaded (%d songs)", msg.Count))
		return m, nil
	}

	var (
		action modal.Action
		cmd    tea.Cmd
	)
	switch {
	case m.songModal != nil:
		action, cmd = m.songModal.HandleMsg(msg)
	case m.chordModal != nil:
		action, cmd = m.chordModal.HandleMsg(msg)
	case m.preview != nil:
		action, cmd = m.preview.HandleMsg(msg)
	}

	switch a := action.(type) {
	case modal.ActionClose:
		m.closeModals()
	case modal.ActionSelect:
		if m.songModal != nil {
			m.closeModals()
			m.openSong(a.Item.ID)
			m.setStatus("opened " + m.song.Title)
		}
	case modal.ActionSubmit:
		if m.chordModal != nil {
			m.closeModals()
			m.addChordType(a.Text)
		}
	}
	return m, cmd
}

// openSongModal lists the catalog, filtered by title or artist.
func (m *Model) openSongModal() {
	searchFn := func(query string) []modal.Item {
		found, err := m.catalog.Search(query)
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("tui: song search")
			return nil
		}
		items := make([]modal.Item, len(found))
		for i, s := range found {
			items[i] = modal.Item{ID: s.ID, Name: s.Title, Desc: s.Artist, Details: songDetails(s)}
		}
		return items
	}
	md := modal.New(searchFn, "Song: ", m.modalColors())
	md.Hint = "no songs match"
	m.songModal = &md
}

// songDetails lists the song start, chords and song end of a catalog row,
// skipping empty fields.
func songDetails(s songs.Song) []string {
	var out []string
	for _, f := range []struct{ name, value string }{
		{"start", s.SongStart},
		{"chords", s.Chords},
		{"end", s.SongEnd},
	} {
		if v := strings.TrimSpace(f.value); v != "" {
			out = append(out, f.name+" "+v)
		}
	}
	return out
}

// openChordModal asks for a new chord label for the palette.
func (m *Model) openChordModal() {
	md := modal.New(nil, "Chord: ", m.modalColors())
	md.FreeText = true
	md.Hint = "type a chord symbol such as Dsus4 or F#m7, then enter"
	m.chordModal = &md
}

// openPreview shows the highlighted chord sheet.
func (m *Model) openPreview() {
	title := m.song.Title
	if m.song.Artist != "" {
		title += " · " + m.song.Artist
	}
	body := highlight.Highlight(m.doc.Text(), m.cfg.UI.ThemeOrDefault(), m.colors.Bg)
	body = strings.TrimRight(body, "\n")
	v := modal.NewViewer(title, body, m.modalColors())
	m.preview = &v
}

func (m *Model) addChordType(label string) {
	t, err := m.palette.Add(label)
	if err != nil {
		m.setError(fmt.Sprintf("cannot add %q: %v", label, err))
		return
	}
	m.layout.pills = layoutPills(m.palette.Types(), m.layout.palette)
	m.setStatus("added " + t.Label + " to the palette")
	log.Debug().Str("id", t.ID).Str("label", t.Label).Msg("tui: chord type added")
}
