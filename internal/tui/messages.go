package tui

// ---------------------------------------------------------------------------
// ELM messages
// ---------------------------------------------------------------------------

// SongsReloadedMsg is sent by the catalog watcher after the song file was
// reloaded.
type SongsReloadedMsg struct{ Count int }
