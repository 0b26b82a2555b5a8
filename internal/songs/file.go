package songs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/strum/internal/chordline"
)

// catalogFile is the on-disk layout:
//
//	[[song]]
//	id = "amazing-grace"
//	title = "Amazing Grace"
//	artist = "John Newton"
//	lyrics = """
//	\u200BG              C       G
//	Amazing grace how sweet the sound"""
//
// Chord lines carry the zero-width marker; TOML basic strings can spell it
// as \u200B.
type catalogFile struct {
	Song []songEntry `toml:"song"`
}

type songEntry struct {
	ID        string `toml:"id"`
	Title     string `toml:"title"`
	Artist    string `toml:"artist"`
	SongStart string `toml:"song_start"`
	Chords    string `toml:"chords"`
	SongEnd   string `toml:"song_end"`
	Lyrics    string `toml:"lyrics"`
}

// ReadFile parses a catalog file. Entries without an id are skipped; a
// repeated id keeps the first entry.
func ReadFile(path string) ([]Song, error) {
	var f catalogFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("read songs %s: %w", path, err)
	}
	return entries(f.Song), nil
}

// Parse decodes catalog TOML from a string.
func Parse(data string) ([]Song, error) {
	var f catalogFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("parse songs: %w", err)
	}
	return entries(f.Song), nil
}

func entries(in []songEntry) []Song {
	seen := make(map[string]bool, len(in))
	out := make([]Song, 0, len(in))
	for i, e := range in {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			log.Warn().Int("index", i).Str("title", e.Title).Msg("songs: entry without id")
			continue
		}
		if seen[id] {
			log.Warn().Str("id", id).Msg("songs: duplicate id")
			continue
		}
		seen[id] = true
		out = append(out, Song{
			ID:        id,
			Title:     e.Title,
			Artist:    e.Artist,
			SongStart: e.SongStart,
			Chords:    e.Chords,
			SongEnd:   e.SongEnd,
			Lyrics:    strings.ReplaceAll(e.Lyrics, "\r\n", "\n"),
		})
	}
	return out
}

// LoadFile reads path into c. A missing file loads the built-in samples.
func LoadFile(c *Catalog, path string) error {
	if path == "" {
		return c.Load(Samples())
	}
	songs, err := ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", path).Msg("songs: no catalog file, using samples")
		return c.Load(Samples())
	}
	if err != nil {
		return err
	}
	return c.Load(songs)
}

// Samples is the catalog used when no songs file exists.
func Samples() []Song {
	mark := chordline.Mark
	return []Song{
		{
			ID:        "amazing-grace",
			Title:     "Amazing Grace",
			Artist:    "John Newton",
			SongStart: "G",
			Chords:    "G C D",
			SongEnd:   "G",
			Lyrics: strings.Join([]string{
				mark("G              C       G"),
				"Amazing grace how sweet the sound",
				mark("                          D"),
				"That saved a wretch like me",
				mark("G                 C      G"),
				"I once was lost but now am found",
				mark("               D       G"),
				"Was blind but now I see",
			}, "\n"),
		},
		{
			ID:        "scarborough-fair",
			Title:     "Scarborough Fair",
			Artist:    "Traditional",
			SongStart: "Am",
			Chords:    "Am G C D",
			SongEnd:   "Am",
			Lyrics: strings.Join([]string{
				mark("Am            G      Am"),
				"Are you going to Scarborough Fair",
				"Parsley, sage, rosemary and thyme",
			}, "\n"),
		},
		{
			ID:     "new-song",
			Title:  "Untitled",
			Artist: "You",
		},
	}
}
