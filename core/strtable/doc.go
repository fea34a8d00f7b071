/*
Package strtable decodes binary per-language string tables.

A string table (the ILSTRINGS variant of the game's string table family)
starts with a small header, followed by a directory and a data block:

    u32 entryCount
    u32 dataSize
    entryCount × { u32 stringId, u32 offsetIntoDataBlock }
    dataSize bytes of string data

Each string referenced from the directory is stored in the data block as a
u32 length (counting a trailing NUL, 0 meaning "empty"), followed by
length-1 bytes of UTF-8 text. All integers are little-endian.

Further reading:

    https://en.uesp.net/wiki/Tes5Mod:String_Table_File_Format

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package strtable

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/subtitles/core"
)

// tracer traces with key 'subtitles.strings'.
func tracer() tracing.Trace {
	return tracing.Select("subtitles.strings")
}

// errMalformed produces user level errors for table parsing.
func errMalformed(format string, v ...interface{}) error {
	return core.WrapError(ErrMalformedTable, core.EFORMAT, format, v...)
}

// errOffset produces user level errors for string lookup.
func errOffset(format string, v ...interface{}) error {
	return core.WrapError(ErrOffsetOutOfRange, core.ERANGE, format, v...)
}
