// Package tui hosts the chord editor in the terminal: a palette bar of chord
// types, the lyrics surface and a status bar. Pointer input drives the chord
// gesture session; keys edit the lyrics.
package tui

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/strum/internal/chordline"
	"github.com/xonecas/strum/internal/config"
	"github.com/xonecas/strum/internal/document"
	"github.com/xonecas/strum/internal/gesture"
	"github.com/xonecas/strum/internal/highlight"
	"github.com/xonecas/strum/internal/hover"
	"github.com/xonecas/strum/internal/palette"
	"github.com/xonecas/strum/internal/songs"
	"github.com/xonecas/strum/internal/tui/editor"
	"github.com/xonecas/strum/internal/tui/modal"
)

// Model is the application model.
type Model struct {
	cfg     *config.Config
	catalog *songs.Catalog
	palette *palette.Palette
	doc     *document.Document
	song    songs.Song

	editor  editor.Model
	session gesture.Session
	mapper  hover.Mapper

	width  int
	height int
	layout layout
	colors highlight.Palette
	styles Styles
	keys   keyMap
	help   help.Model

	songModal  *modal.Model
	chordModal *modal.Model
	preview    *modal.Viewer

	status    string
	statusErr bool

	exportOnQuit bool
}

// New creates the model and opens songID, or the first catalog song when
// songID is empty or unknown.
func New(cfg *config.Config, catalog *songs.Catalog, songID string) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	colors := highlight.ThemePalette(cfg.UI.ThemeOrDefault())
	styles := NewStyles(colors)

	metrics := hover.DefaultMetrics()
	// Measure the reference the way the surface draws it.
	rendered := lipgloss.Width(styles.Editor.Text.Render(hover.Reference))
	metrics.CharWidth = hover.MeasureCharWidth(hover.Reference, float64(rendered))
	metrics.Bias = cfg.Editor.ColumnBias
	metrics.GuideWidth = cfg.Editor.GuideWidth

	ed := editor.New()
	ed.Styles = styles.Editor
	ed.Focus()

	m := Model{
		cfg:     cfg,
		catalog: catalog,
		palette: palette.New(cfg.Palette.Chords...),
		editor:  ed,
		colors:  colors,
		styles:  styles,
		keys:    newKeyMap(),
		help:    newHelp(styles),
	}
	m.mapper = hover.NewMapper(metrics, nil)
	m.openSong(songID)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Text returns the current document text, chord markers included.
func (m Model) Text() string { return m.doc.Text() }

// Export returns the document as a plain chord sheet.
func (m Model) Export() string { return chordline.Display(m.doc.Text()) }

// ExportRequested reports whether the user quit with the export key.
func (m Model) ExportRequested() bool { return m.exportOnQuit }

// Song returns the song being edited.
func (m Model) Song() songs.Song { return m.song }

// Session returns the gesture session.
func (m Model) Session() gesture.Session { return m.session }

// Palette returns the chord types on offer.
func (m Model) Palette() *palette.Palette { return m.palette }

// openSong loads a song from the catalog into a fresh document. Any gesture
// in flight is dropped with the old document.
func (m *Model) openSong(id string) {
	song, ok := m.catalog.Get(id)
	if !ok {
		if id != "" {
			log.Warn().Str("song", id).Msg("tui: song not in catalog")
			m.setError("no song " + id)
		}
		all, err := m.catalog.All()
		if err != nil {
			log.Warn().Err(err).Msg("tui: listing songs")
		}
		if len(all) > 0 {
			song = all[0]
		} else {
			song = songs.Song{ID: "untitled", Title: "Untitled"}
		}
	}
	m.song = song
	m.doc = document.New(song.Text(), m.cfg.Editor.Policy())
	m.session = gesture.Session{}
	m.mapper = m.mapper.WithSource(m.doc)
	m.editor.SetValue(m.doc.Text())
	m.syncMapper()
	m.refreshOverlay()
	log.Debug().Str("song", song.ID).Int("lines", m.doc.LineCount()).Msg("tui: opened song")
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}
