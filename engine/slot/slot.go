package slot

import (
	"math"
	"sync"
)

// Offsets within a host record.
const (
	RecordSize   = 0x20
	HeaderOffset = 0x04
)

// Flags of a slot header.
type Flags uint8

const (
	Skip        Flags = 1 << 0 // not drawn this pass
	Offscreen   Flags = 1 << 1 // speaker is not on screen
	Obscured    Flags = 1 << 2 // speaker is hidden behind geometry
	Initialized Flags = 1 << 7 // header has been written by us
)

// MaxAlpha is the largest packed alpha value.
const MaxAlpha = 1<<24 - 1

// PackAlpha quantizes an alpha value to 24 bits, little-endian.
// Alpha is clamped to [0,1].
func PackAlpha(alpha float64) [3]byte {
	if alpha < 0 || math.IsNaN(alpha) {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	v := uint32(math.Round(alpha * MaxAlpha))
	return [3]byte{byte(v), byte(v >> 8), byte(v >> 16)}
}

// UnpackAlpha is the inverse of PackAlpha.
func UnpackAlpha(b [3]byte) float64 {
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	return float64(v) / MaxAlpha
}

// Header is the renderer's 4-byte window into a host record.
type Header [4]byte

// HeaderAt copies the header window out of a host record.
func HeaderAt(record []byte) (h Header) {
	copy(h[:], record[HeaderOffset:HeaderOffset+4])
	return
}

// Store writes the header window into a host record.
func (h Header) Store(record []byte) {
	copy(record[HeaderOffset:HeaderOffset+4], h[:])
}

// Alpha returns the unpacked alpha value.
func (h Header) Alpha() float32 {
	return float32(UnpackAlpha([3]byte{h[0], h[1], h[2]}))
}

// SetAlpha packs an alpha value into the header.
func (h *Header) SetAlpha(alpha float32) {
	p := PackAlpha(float64(alpha))
	copy(h[:3], p[:])
}

// Flags returns the flag byte.
func (h Header) Flags() Flags {
	return Flags(h[3])
}

// Is is true if all of the flags f are set.
func (h Header) Is(f Flags) bool {
	return Flags(h[3])&f == f
}

// Set sets or clears flags.
func (h *Header) Set(f Flags, on bool) {
	if on {
		h[3] |= byte(f)
	} else {
		h[3] &^= byte(f)
	}
}

// Reset clears the header and sets it to alpha, marked as initialized.
func (h *Header) Reset(alpha float32) {
	*h = Header{}
	h.SetAlpha(alpha)
	h.Set(Initialized, true)
}

// Priority of a subtitle. Force subtitles are shown at any distance.
type Priority int32

const (
	Low Priority = iota
	Normal
	Escort
	Force
)

// Handle is a weak reference to a speaker. 0 is the null handle.
type Handle uint32

// Slot is an active subtitle.
type Slot struct {
	Speaker    Handle
	Header     Header
	Text       string
	Topic      uint64 // form id of the dialogue topic info
	Priority   Priority
	DistanceSq float32 // squared distance between speaker and player
}

// Array is the game's array of active subtitles, ordered by priority,
// together with its reader/writer lock.
type Array struct {
	sync.RWMutex
	Slots []Slot
}

// Push appends a slot under the exclusive lock, as the game does when a
// subtitle is raised.
func (a *Array) Push(s Slot) {
	a.Lock()
	defer a.Unlock()
	a.Slots = append(a.Slots, s)
}

// Expire removes all slots of a speaker under the exclusive lock.
func (a *Array) Expire(speaker Handle) {
	a.Lock()
	defer a.Unlock()
	kept := a.Slots[:0]
	for _, s := range a.Slots {
		if s.Speaker != speaker {
			kept = append(kept, s)
		}
	}
	a.Slots = kept
}
