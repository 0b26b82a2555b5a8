// Package songs provides the read-only song catalog that supplies initial
// lyrics to the editor.
package songs

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS songs (
	id         TEXT PRIMARY KEY,
	position   INTEGER NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	artist     TEXT NOT NULL DEFAULT '',
	song_start TEXT NOT NULL DEFAULT '',
	chords     TEXT NOT NULL DEFAULT '',
	song_end   TEXT NOT NULL DEFAULT '',
	lyrics     TEXT NOT NULL DEFAULT '',
	title_key  TEXT NOT NULL DEFAULT '',
	artist_key TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_songs_position ON songs(position);
`

const columns = "id, title, artist, song_start, chords, song_end, lyrics"

// PlaceholderLyrics opens the editor for a song that has no lyrics yet.
const PlaceholderLyrics = "Type your lyrics here.\nDrag a chord from the palette onto a line."

// Song is one catalog entry.
type Song struct {
	ID        string
	Title     string
	Artist    string
	SongStart string
	Chords    string
	SongEnd   string
	Lyrics    string
}

// Text returns the lyrics the editor should open with.
func (s Song) Text() string {
	if strings.TrimSpace(s.Lyrics) == "" {
		return PlaceholderLyrics
	}
	return s.Lyrics
}

// Catalog is an in-memory SQLite table of songs. Every method is safe on a
// nil receiver and behaves like an empty catalog.
type Catalog struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates an empty in-memory catalog.
func Open() (*Catalog, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// Load replaces the catalog contents with songs, keeping their order.
func (c *Catalog) Load(songs []Song) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM songs"); err != nil {
		return fmt.Errorf("clear songs: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO songs (id, position, title, artist, song_start, chords, song_end, lyrics, title_key, artist_key)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range songs {
		_, err := stmt.Exec(s.ID, i, s.Title, s.Artist, s.SongStart, s.Chords, s.SongEnd, s.Lyrics,
			searchKey(s.Title), searchKey(s.Artist))
		if err != nil {
			return fmt.Errorf("insert song %q: %w", s.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	log.Debug().Int("songs", len(songs)).Msg("songs: catalog loaded")
	return nil
}

// Get returns the song with id.
func (c *Catalog) Get(id string) (Song, bool) {
	if c == nil {
		return Song{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var s Song
	err := c.db.QueryRow("SELECT "+columns+" FROM songs WHERE id = ?", id).
		Scan(&s.ID, &s.Title, &s.Artist, &s.SongStart, &s.Chords, &s.SongEnd, &s.Lyrics)
	if err != nil {
		return Song{}, false
	}
	return s, true
}

// All returns every song in catalog order.
func (c *Catalog) All() ([]Song, error) {
	return c.Search("")
}

// Search returns the songs whose title or artist contains query, ignoring
// case and surrounding whitespace. An empty query matches everything.
func (c *Catalog) Search(query string) ([]Song, error) {
	if c == nil {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	q := searchKey(query)
	rows, err := c.db.Query(
		"SELECT "+columns+` FROM songs
		 WHERE ? = '' OR instr(title_key, ?) > 0 OR instr(artist_key, ?) > 0
		 ORDER BY position`,
		q, q, q,
	)
	if err != nil {
		return nil, fmt.Errorf("search songs: %w", err)
	}
	defer rows.Close()

	var out []Song
	for rows.Next() {
		var s Song
		if err := rows.Scan(&s.ID, &s.Title, &s.Artist, &s.SongStart, &s.Chords, &s.SongEnd, &s.Lyrics); err != nil {
			log.Warn().Err(err).Msg("songs: skipping unreadable row")
			continue
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Len returns the number of songs.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM songs").Scan(&n); err != nil {
		return 0
	}
	return n
}

// searchKey folds s for substring matching. SQLite's lower() only folds
// ASCII, so keys are computed here.
func searchKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
