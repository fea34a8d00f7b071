/*
Package gfx draws subtitles onto raster pictures.

A Picture implements the drawing side of the frame orchestrator. It is used
for previews and tests, where no game renderer is present: subtitles are
drawn into an RGBA image, which may be shipped out as PNG.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gfx

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'subtitles.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("subtitles.gfx")
}
