/*
Package slot models the game's array of active subtitles.

The array is owned by the game. Each entry is a record of 0x20 bytes, of
which the 4 bytes at offset 0x04 are unused by the game and carry state of
the subtitle renderer:

    byte 0..2   alpha, 24-bit fixed point in [0,1], little-endian
    byte 3      flags (Skip, Offscreen, Obscured, Initialized)

Header is a byte-exact copy of this window. Other fields of a record are
represented as plain Go fields.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slot
