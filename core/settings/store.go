package settings

import (
	"sync"
	"sync/atomic"
)

// Changes tells which of the settings relevant for derived data differ
// between two snapshots.
type Changes struct {
	PrimaryLanguage   bool
	PrimaryMaxChars   bool
	SecondaryLanguage bool
	SecondaryMaxChars bool
	SubtitleSize      bool
	DualSubtitles     bool
	MaxDistance       bool
}

// Rebuild is true if wrapped subtitles have to be recomputed.
// A change of the maximum distance alone does not need a rebuild.
func (c Changes) Rebuild() bool {
	return c.PrimaryLanguage || c.PrimaryMaxChars ||
		c.SecondaryLanguage || c.SecondaryMaxChars ||
		c.SubtitleSize || c.DualSubtitles
}

// Diff compares two settings snapshots. Both snapshots are resolved first,
// so a Native language setting is equal to an explicit setting of the game
// language.
func Diff(old, new Settings) Changes {
	old, new = old.Resolved(), new.Resolved()
	return Changes{
		PrimaryLanguage:   old.Primary.Language != new.Primary.Language,
		PrimaryMaxChars:   old.Primary.MaxCharsPerLine != new.Primary.MaxCharsPerLine,
		SecondaryLanguage: old.Secondary.Language != new.Secondary.Language,
		SecondaryMaxChars: old.Secondary.MaxCharsPerLine != new.Secondary.MaxCharsPerLine,
		SubtitleSize:      old.SubtitleSize != new.SubtitleSize,
		DualSubtitles:     old.DualSubtitles != new.DualSubtitles,
		MaxDistance:       old.MaxDistance != new.MaxDistance,
	}
}

// Store holds the current settings snapshot. Readers get the snapshot
// without locking; reloads are serialized.
type Store struct {
	mx      sync.Mutex // serializes writers
	sources []interface{}
	current atomic.Pointer[Settings]
}

// NewStore creates a store for the given INI sources and loads them.
// If loading fails, the store starts with the defaults and the error is
// returned alongside.
func NewStore(sources ...interface{}) (*Store, error) {
	st := &Store{sources: sources}
	s, err := Load(sources...)
	if err != nil {
		s = Defaults()
	}
	st.current.Store(&s)
	return st, err
}

// Current returns the current settings snapshot.
func (st *Store) Current() Settings {
	return *st.current.Load()
}

// Reload re-reads the store's sources and reports what changed.
// On error the current snapshot is kept and no changes are reported.
func (st *Store) Reload() (Settings, Changes, error) {
	s, err := Load(st.sources...)
	if err != nil {
		tracer().Errorf("reloading settings: %v", err)
		return st.Current(), Changes{}, err
	}
	s, c := st.Set(s)
	return s, c, nil
}

// Set replaces the current snapshot and reports what changed.
func (st *Store) Set(s Settings) (Settings, Changes) {
	st.mx.Lock()
	defer st.mx.Unlock()
	s = s.Resolved()
	old := st.current.Load()
	st.current.Store(&s)
	c := Diff(*old, s)
	if c.Rebuild() {
		tracer().Infof("settings changed, subtitles need a rebuild")
	}
	return s, c
}
