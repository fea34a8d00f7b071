/*
Package textlayout wraps subtitle text into lines.

Text is classified by script first. If any code point of a text belongs to
CJK ideographs, Kana or Hangul, the text is wrapped by cluster: a line is
closed as soon as the next code point would make its UTF-8 byte length exceed
the maximum width. Otherwise words are wrapped greedily, with the maximum
width counted in characters. A single word longer than the maximum width
gets a line of its own and is never split.

Lines are measured with a Measurer and returned bottom to top, as rendering
draws upward from an anchor point.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package textlayout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'subtitles.layout'.
func tracer() tracing.Trace {
	return tracing.Select("subtitles.layout")
}
