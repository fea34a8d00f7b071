/*
Package rendercache caches subtitles ready for rendering.

A cache entry is keyed by the raw subtitle text, as the game hands it out,
and holds the subtitle localized into the primary and (optionally) the
secondary language, wrapped into measured lines. Entries are built on first
use and never change afterwards; a rebuild replaces all entries at once,
keeping the set of keys. Readers share a lock; a miss escalates to the
exclusive lock and checks again before building, so no two readers ever see
different entries for the same key.

Package rendercache also holds the Mirror, the single-line text surface of
the game's HUD which shows one subtitle at a time.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rendercache

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'subtitles.cache'.
func tracer() tracing.Trace {
	return tracing.Select("subtitles.cache")
}
