package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/strum/internal/config"
	"github.com/xonecas/strum/internal/document"
	"github.com/xonecas/strum/internal/highlight"
	"github.com/xonecas/strum/internal/songs"
	"github.com/xonecas/strum/internal/tui"
)

// CLI is the command line.
var CLI struct {
	Config string `help:"Config file (default: ~/.config/strum/config.toml)" type:"path"`
	Song   string `help:"ID of the song to open" short:"s"`
	Songs  string `help:"Song catalog file, overrides songs.file" type:"path"`
	List   bool   `help:"List the catalog and exit" short:"l"`
	Print  bool   `help:"Print the highlighted chord sheet of --song and exit" short:"p"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("strum"),
		kong.Description("Drag chords onto lyrics in the terminal."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "strum: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := CLI.Config
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("config path: %w", err)
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if CLI.Songs != "" {
		cfg.Songs.File = CLI.Songs
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	songsPath, err := cfg.SongsPath()
	if err != nil {
		return fmt.Errorf("songs path: %w", err)
	}
	catalog, err := songs.Open()
	if err != nil {
		return err
	}
	defer catalog.Close()
	if err := songs.LoadFile(catalog, songsPath); err != nil {
		return err
	}
	log.Info().Str("file", songsPath).Int("songs", catalog.Len()).Msg("catalog loaded")

	switch {
	case CLI.List:
		return listSongs(os.Stdout, catalog)
	case CLI.Print:
		return printSong(cfg, catalog, CLI.Song)
	}

	p := tea.NewProgram(tui.New(cfg, catalog, CLI.Song), tea.WithFilter(tui.MouseEventFilter))

	w, err := songs.NewWatcher(catalog, songsPath, func() {
		p.Send(tui.SongsReloadedMsg{Count: catalog.Len()})
	})
	if err != nil {
		log.Warn().Err(err).Str("file", songsPath).Msg("catalog watcher disabled")
	} else {
		go w.Start()
		defer w.Stop()
	}

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running strum: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.ExportRequested() {
		fmt.Println(m.Export())
	}
	return nil
}

// setupLogging sends the global logger to strum.log in the data directory;
// the terminal belongs to the UI.
func setupLogging(cfg *config.Config) (func(), error) {
	dir, err := config.EnsureDataDir()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "strum.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { f.Close() }, nil
}

func printSong(cfg *config.Config, c *songs.Catalog, id string) error {
	if id == "" {
		return errors.New("--print needs --song")
	}
	song, ok := c.Get(id)
	if !ok {
		return fmt.Errorf("no song %q in the catalog", id)
	}
	doc := document.New(song.Text(), cfg.Editor.Policy())
	fmt.Println(highlight.Highlight(doc.Text(), cfg.UI.ThemeOrDefault(), ""))
	return nil
}
