/*
Package lang enumerates the display languages a game ships string tables for.

The set is fixed by the data: every language corresponds to one string table
file suffix (e.g. "_DE.ILSTRINGS"). A special value Native stands for "the
language the game itself runs in" and is resolved when settings are loaded.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lang
