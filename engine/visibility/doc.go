/*
Package visibility computes how visible a subtitle is.

For every active subtitle slot, the speaker is classified as off screen,
obscured or visible by an external oracle (usually a ray caster). The result
is stored as flags in the slot's header. An opacity value is then derived
from the classification, the squared distance to the player and the fading
state of the speaker, and packed into the header as well.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package visibility

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'subtitles.visibility'.
func tracer() tracing.Trace {
	return tracing.Select("subtitles.visibility")
}
