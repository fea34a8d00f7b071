/*
Package orchestrator drives floating subtitles from game events.

The game calls into an Orchestrator on four occasions:

    OnSubtitleRaised    a speaker started a line of dialogue (game thread)
    UpdateSlots         the game updates its subtitle array (game thread)
    OnPerFrameRender    a frame is drawn (render thread)
    OnSettingsChanged   the pause menu closed or a game has been loaded

UpdateSlots classifies every active subtitle, computes its opacity and
decides which subtitle, if any, the game's own HUD should show instead of a
floating one. OnPerFrameRender draws the floating subtitles above the heads
of their speakers. Both share the game's subtitle array under its
reader/writer lock.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package orchestrator

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'subtitles.frame'.
func tracer() tracing.Trace {
	return tracing.Select("subtitles.frame")
}
