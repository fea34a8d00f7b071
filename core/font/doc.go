/*
Package font is for typeface and font handling, as far as subtitle layout
needs it: loading scalable fonts and measuring text with them.

We stick to the following definitions:

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

* A "typecase" is a scaled font, i.e. a font in a certain size.
An example is "Helvetica regular 27pt".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Subtitles are measured in pixels of a 72 DPI screen, i.e. one point of font
size is one pixel.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/subtitles/core"
)

// tracer traces with key 'subtitles.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("subtitles.fonts")
}

func errNotFound(name string) error {
	return core.Error(core.EMISSING, "font not found: %s", name)
}
