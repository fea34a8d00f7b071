/*
Package localization maps subtitle text, as the game shows it, to the same
subtitle in other languages.

The game only hands out the text of a subtitle in the language it runs in
(the "native" language). To find translations, the string tables of all mods
are read for every language. A string is identified across languages by its
mod's compile index and its string id, combined into a SubtitleID.

Different string ids may carry the same native text, e.g. a greeting used by
many characters. Before lookups the index merges such duplicates, so every
native text resolves to exactly one SubtitleID. The rule is deterministic:
among the candidates the id with the fewest strings across all languages
wins, ties going to the larger total length of its strings and then to the
smallest id.

An Index is immutable after building and safe for concurrent use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package localization

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'subtitles.l10n'.
func tracer() tracing.Trace {
	return tracing.Select("subtitles.l10n")
}
