/*
Package locate finds string table files of mods on disk.

String tables live in a folder "strings" below a data root. Every mod (plugin)
contributes one file per language, named after the plugin's base name and the
language code:

    <root>/strings/<base>_<LANG>.ilstrings

File names are matched case-insensitively. Mods are ordered by a load order,
which assigns each mod its compile index. Tables of mods absent from the load
order are ignored.

As scanning a data folder may take a while, clients may use ResolveCatalog,
which returns a promise. Calling the promise blocks until scanning completed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package locate

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/subtitles/core"
)

// tracer traces with key 'subtitles.locate'.
func tracer() tracing.Trace {
	return tracing.Select("subtitles.locate")
}

// NotFound returns an application error for a missing resource.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "not found: %s", res)
}
