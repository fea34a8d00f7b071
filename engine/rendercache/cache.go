package rendercache

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/subtitles/core/settings"
	"github.com/npillmayer/subtitles/engine/localization"
	"github.com/npillmayer/subtitles/engine/textlayout"
)

// Predicate decides if a text may be shown on the legacy display surface.
type Predicate func(text string) bool

// DefaultCompatible accepts valid UTF-8 without control characters other
// than newline.
func DefaultCompatible(text string) bool {
	if !utf8.ValidString(text) {
		return false
	}
	return strings.IndexFunc(text, func(r rune) bool {
		return r < 0x20 && r != '\n'
	}) < 0
}

// WrappedText is a localized subtitle, wrapped into lines.
type WrappedText struct {
	Lines                    []textlayout.Line // bottom to top
	FullText                 string
	DisplaySurfaceCompatible bool
}

// Empty is true if there is nothing to draw.
func (w WrappedText) Empty() bool {
	return len(w.Lines) == 0
}

// DualSubtitle is a cache entry. Secondary is empty if dual subtitles are
// switched off or if the secondary text equals the primary one.
type DualSubtitle struct {
	Primary   WrappedText
	Secondary WrappedText
}

// MirrorText returns the text to show on the legacy display surface: the
// primary text and, if dual is set, the secondary text on a line of its
// own. Texts not compatible with the surface are left out.
func (d *DualSubtitle) MirrorText(dual bool) string {
	var b strings.Builder
	if d.Primary.DisplaySurfaceCompatible {
		b.WriteString(d.Primary.FullText)
	}
	if dual && d.Secondary.DisplaySurfaceCompatible && d.Secondary.FullText != "" {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Secondary.FullText)
	}
	return b.String()
}

// Config holds the settings entries depend on.
type Config struct {
	Primary       settings.LanguageSetting
	Secondary     settings.LanguageSetting
	DualSubtitles bool
	Measurer      textlayout.Measurer // nil keeps the current measurer
}

// ConfigFrom extracts a cache configuration from settings.
func ConfigFrom(s settings.Settings) Config {
	s = s.Resolved()
	return Config{
		Primary:       s.Primary,
		Secondary:     s.Secondary,
		DualSubtitles: s.DualSubtitles,
	}
}

// Cache maps raw subtitle texts to render-ready subtitles.
// It is safe for concurrent use.
type Cache struct {
	mx         sync.RWMutex
	index      *localization.Index
	compatible Predicate
	mirror     *Mirror
	config     Config
	entries    map[string]*DualSubtitle
}

// New creates an empty cache. If the measurer of cfg is nil, a monospace
// measurer for the default subtitle size is used. If compatible is nil,
// DefaultCompatible is used. mirror may be nil.
func New(index *localization.Index, cfg Config, compatible Predicate, mirror *Mirror) *Cache {
	if compatible == nil {
		compatible = DefaultCompatible
	}
	if cfg.Measurer == nil {
		size := settings.Defaults().SubtitleSize
		tracer().Errorf("render cache without text measurer, measuring monospace at %.1f", size)
		cfg.Measurer = textlayout.NewMonospace(size/2, size)
	}
	return &Cache{
		index:      index,
		compatible: compatible,
		mirror:     mirror,
		config:     cfg,
		entries:    make(map[string]*DualSubtitle),
	}
}

// GetOrBuild returns the entry for raw, building it if necessary.
func (c *Cache) GetOrBuild(raw string) *DualSubtitle {
	c.mx.RLock()
	d, ok := c.entries[raw]
	c.mx.RUnlock()
	if ok {
		return d
	}
	c.mx.Lock()
	defer c.mx.Unlock()
	if d, ok = c.entries[raw]; ok { // built by a concurrent caller meanwhile
		return d
	}
	d = c.build(raw)
	c.entries[raw] = d
	return d
}

// Add builds the entry for raw, if not present.
func (c *Cache) Add(raw string) {
	c.GetOrBuild(raw)
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return len(c.entries)
}

// Config returns the current configuration.
func (c *Cache) Config() Config {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config
}

// RebuildAll rebuilds every entry with the current configuration.
func (c *Cache) RebuildAll() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.rebuild()
}

// Reconfigure sets a new configuration and rebuilds every entry with it.
// Readers see either the old or the new entries, never a mix.
func (c *Cache) Reconfigure(cfg Config) {
	c.mx.Lock()
	defer c.mx.Unlock()
	if cfg.Measurer == nil {
		cfg.Measurer = c.config.Measurer
	}
	c.config = cfg
	c.rebuild()
}

func (c *Cache) rebuild() {
	for raw := range c.entries {
		c.entries[raw] = c.build(raw)
	}
	tracer().Infof("rebuilt %d subtitles", len(c.entries))
}

// MirrorText returns the text for the legacy display surface for raw.
// If no part of the entry is compatible with the surface, raw is returned.
func (c *Cache) MirrorText(raw string) string {
	d := c.GetOrBuild(raw)
	c.mx.RLock()
	dual := c.config.DualSubtitles
	c.mx.RUnlock()
	if text := d.MirrorText(dual); text != "" {
		return text
	}
	return raw
}

// InvalidateDisplaySurfaceEntry clears the mirror if it shows matching, or
// unconditionally if matching is empty.
func (c *Cache) InvalidateDisplaySurfaceEntry(matching string) {
	if c.mirror != nil {
		c.mirror.Clear(matching)
	}
}

// build must be called with the exclusive lock held.
func (c *Cache) build(raw string) *DualSubtitle {
	p := c.index.LocalizedSubtitle(raw, c.config.Primary)
	d := &DualSubtitle{Primary: c.wrap(p)}
	if c.config.DualSubtitles {
		s := c.index.LocalizedSubtitle(raw, c.config.Secondary)
		if p.Text != "" && s.Text != "" && p.Text != s.Text {
			d.Secondary = c.wrap(s)
		}
	}
	tracer().Debugf("built subtitle for %q: %d+%d lines", raw,
		len(d.Primary.Lines), len(d.Secondary.Lines))
	return d
}

func (c *Cache) wrap(ls localization.LocalizedSubtitle) WrappedText {
	return WrappedText{
		Lines:                    textlayout.Wrap(ls.Text, ls.MaxCharsPerLine, c.config.Measurer),
		FullText:                 ls.Text,
		DisplaySurfaceCompatible: c.compatible(ls.Text),
	}
}
