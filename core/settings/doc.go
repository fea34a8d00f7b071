/*
Package settings holds the user facing configuration of subtitle display.

Settings are read from INI files with a fixed layout of sections and keys.
A built-in default file is always loaded first; user files given to Load are
overlaid on top of it, in order. Missing user files are not an error.

    [General]
    sLanguage = EN                 ; language the game runs in

    [Interface]
    fMaxSubtitleDistance = 2048
    bGeneralSubtitles    = 1
    bDialogueSubtitles   = 1

    [Subtitles]
    sPrimaryLanguage  = NATIVE     ; language code or NATIVE
    iPrimaryMaxChars  = 80
    ...

Settings are plain values. A Store keeps the current snapshot for concurrent
readers and reports, on reload, which of the settings changed. Clients decide
with Changes.Rebuild whether derived data (e.g. wrapped subtitles) has to be
recomputed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package settings

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'subtitles.settings'.
func tracer() tracing.Trace {
	return tracing.Select("subtitles.settings")
}
