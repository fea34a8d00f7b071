package strtable

import (
	"encoding/binary"
)

// Entry is a (string ID, text) pair to encode into a table.
type Entry struct {
	StringID uint32
	Text     string
}

// Encode produces the binary representation of a string table, with strings
// stored in the order of entries. Empty texts are stored with a length of 0.
//
// Encode is the inverse of Parse and is used to produce table fixtures.
func Encode(entries ...Entry) []byte {
	var data []byte
	dir := make([]byte, 0, len(entries)*dirEntrySize)
	for _, e := range entries {
		dir = binary.LittleEndian.AppendUint32(dir, e.StringID)
		dir = binary.LittleEndian.AppendUint32(dir, uint32(len(data)))
		if e.Text == "" {
			data = binary.LittleEndian.AppendUint32(data, 0)
			continue
		}
		data = binary.LittleEndian.AppendUint32(data, uint32(len(e.Text)+1))
		data = append(data, e.Text...)
		data = append(data, 0)
	}
	buf := make([]byte, 0, HeaderSize+len(dir)+len(data))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(entries)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(data)))
	buf = append(buf, dir...)
	return append(buf, data...)
}
