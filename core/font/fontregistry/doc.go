/*
Package fontregistry manages a registry for loaded fonts and typecases.

Subtitle rendering asks for the same font at the same size over and over
again, and font parsing is expensive. The registry caches both scalable fonts
and prepared typecases.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'subtitles.fonts'
func tracer() tracing.Trace {
	return tracing.Select("subtitles.fonts")
}
