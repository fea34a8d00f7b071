package textlayout

// DecodeRune decodes the code point starting at byte position i of s.
// The sequence length is taken from the bit pattern of the leading byte
// alone. An invalid leading byte counts as a sequence of length 1, as does
// a sequence cut off by the end of s; in both cases the byte value itself is
// returned as code point.
func DecodeRune(s string, i int) (rune, int) {
	c := s[i]
	size := 1
	switch {
	case c&0x80 == 0:
		return rune(c), 1
	case c&0xE0 == 0xC0:
		size = 2
	case c&0xF0 == 0xE0:
		size = 3
	case c&0xF8 == 0xF0:
		size = 4
	default:
		return rune(c), 1
	}
	if i+size > len(s) {
		return rune(c), 1
	}
	var r rune
	switch size {
	case 2:
		r = rune(c&0x1F)<<6 | rune(s[i+1]&0x3F)
	case 3:
		r = rune(c&0x0F)<<12 | rune(s[i+1]&0x3F)<<6 | rune(s[i+2]&0x3F)
	case 4:
		r = rune(c&0x07)<<18 | rune(s[i+1]&0x3F)<<12 | rune(s[i+2]&0x3F)<<6 | rune(s[i+3]&0x3F)
	}
	return r, size
}

var cjkRanges = [...]struct{ lo, hi rune }{
	{0x4E00, 0x9FFF},   // CJK unified ideographs
	{0x3400, 0x4DBF},   // extension A
	{0x20000, 0x2EBEF}, // extensions B–F
	{0xF900, 0xFAFF},   // compatibility ideographs
	{0x2F800, 0x2FA1F}, // compatibility supplement
	{0x3040, 0x309F},   // Hiragana
	{0x30A0, 0x30FF},   // Katakana
	{0xAC00, 0xD7AF},   // Hangul syllables
}

// IsCJKRune is true for code points of CJK ideographs, Kana and Hangul.
func IsCJKRune(r rune) bool {
	for _, rng := range cjkRanges {
		if r >= rng.lo && r <= rng.hi {
			return true
		}
	}
	return false
}

// IsCJK is true if any code point of s is a CJK code point.
func IsCJK(s string) bool {
	for i := 0; i < len(s); {
		r, size := DecodeRune(s, i)
		if IsCJKRune(r) {
			return true
		}
		i += size
	}
	return false
}
