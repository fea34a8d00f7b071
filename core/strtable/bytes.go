package strtable

import (
	"encoding/binary"
	"errors"
)

// Reading bytes from a string table's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// binSegm is a segment of byte data, used to navigate a table's binary data.
type binSegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b. A view of length 0 is legal
// as long as offset does not point past the end of b.
func (b binSegm) view(offset, n int) (binSegm, error) {
	if offset < 0 || n < 0 || offset > len(b) || n > len(b)-offset {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binSegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}
