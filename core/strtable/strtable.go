package strtable

import (
	"errors"
)

// ErrMalformedTable is wrapped by errors of Parse for truncated or corrupt tables.
var ErrMalformedTable = errors.New("malformed string table")

// ErrOffsetOutOfRange is wrapped by errors of StringAt for offsets pointing
// outside of the data block.
var ErrOffsetOutOfRange = errors.New("string offset out of range")

// HeaderSize is the size of the fixed table header in bytes.
const HeaderSize = 8

const dirEntrySize = 8

// DirEntry is an entry of a table's directory.
type DirEntry struct {
	StringID uint32 // ID of the string, unique within one table
	Offset   uint32 // offset relative to the start of the data block
}

// Table is a decoded string table. It is immutable after Parse.
type Table struct {
	EntryCount uint32     // number of entries in the directory
	DataSize   uint32     // size of the data block in bytes
	Directory  []DirEntry // directory in file order
	RawData    []byte     // data block; a sub-slice of the parsed buffer
}

// Parse decodes a string table. It fails with an error wrapping
// ErrMalformedTable if the buffer is smaller than the header or if either the
// directory or the data block would exceed the buffer.
//
// The table returned shares the data block with buf. Clients must not modify
// buf as long as the table is in use.
func Parse(buf []byte) (*Table, error) {
	if len(buf) < HeaderSize {
		return nil, errMalformed("table of %d bytes is smaller than its header", len(buf))
	}
	b := binSegm(buf)
	t := &Table{}
	t.EntryCount, _ = b.u32(0)
	t.DataSize, _ = b.u32(4)
	// compute in 64 bit to be safe from overflow on hostile counts
	dirSize := uint64(t.EntryCount) * dirEntrySize
	if HeaderSize+dirSize+uint64(t.DataSize) > uint64(len(buf)) {
		return nil, errMalformed("table announces %d entries and %d data bytes, has only %d bytes",
			t.EntryCount, t.DataSize, len(buf))
	}
	dir, err := b.view(HeaderSize, int(dirSize))
	if err != nil {
		return nil, errMalformed("cannot read directory: %v", err)
	}
	t.Directory = make([]DirEntry, t.EntryCount)
	for i := range t.Directory {
		t.Directory[i].StringID = u32(dir[i*dirEntrySize:])
		t.Directory[i].Offset = u32(dir[i*dirEntrySize+4:])
	}
	data, err := b.view(HeaderSize+int(dirSize), int(t.DataSize))
	if err != nil {
		return nil, errMalformed("cannot read data block: %v", err)
	}
	t.RawData = data
	tracer().Debugf("string table with %d entries, %d bytes of data", t.EntryCount, t.DataSize)
	return t, nil
}

// StringAt resolves an offset into the data block to a string.
// A length prefix of 0 denotes the empty string; otherwise length-1 bytes
// of text follow the prefix (the trailing NUL is not part of the string).
//
// If either the length prefix or the text would exceed the data block, an
// error wrapping ErrOffsetOutOfRange is returned.
func (t *Table) StringAt(offset uint32) (string, error) {
	if uint64(offset)+4 > uint64(len(t.RawData)) {
		return "", errOffset("length prefix at offset %d exceeds data block of %d bytes",
			offset, len(t.RawData))
	}
	b := binSegm(t.RawData)
	length, _ := b.u32(int(offset))
	if length == 0 {
		return "", nil
	}
	if uint64(offset)+4+uint64(length-1) > uint64(len(t.RawData)) {
		return "", errOffset("string of length %d at offset %d exceeds data block of %d bytes",
			length-1, offset, len(t.RawData))
	}
	text, _ := b.view(int(offset)+4, int(length-1))
	return string(text), nil
}

// Len returns the number of directory entries.
func (t *Table) Len() int {
	return len(t.Directory)
}
