package textlayout

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/uax/segment"
)

// Extent is the size of a text in pixels.
type Extent struct {
	W, H float32
}

// Line is a single line of wrapped text.
type Line struct {
	Text   string
	Extent Extent
}

// Wrap breaks text into lines of at most maxWidth characters (bytes for
// CJK text, see package doc) and measures them. Lines are returned in
// reverse order, i.e. the last line comes first. Empty text results in no
// lines at all.
func Wrap(text string, maxWidth uint32, m Measurer) []Line {
	var lines []string
	if IsCJK(text) {
		lines = wrapCJK(text, int(maxWidth))
	} else {
		lines = wrapLatin(text, int(maxWidth))
	}
	if len(lines) == 0 {
		return nil
	}
	wrapped := make([]Line, len(lines))
	for i, l := range lines {
		wrapped[len(lines)-1-i] = Line{Text: l, Extent: m.MeasureText(l)}
	}
	tracer().Debugf("wrapped %q into %d lines", text, len(wrapped))
	return wrapped
}

func wrapCJK(text string, maxWidth int) []string {
	var lines []string
	start := 0 // start of current line
	for i := 0; i < len(text); {
		_, size := DecodeRune(text, i)
		if i+size-start > maxWidth && i > start {
			lines = append(lines, text[start:i])
			start = i
		}
		i += size
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func wrapLatin(text string, maxWidth int) []string {
	var lines []string
	var current strings.Builder
	n := 0 // characters in current line
	for _, word := range words(text) {
		w := utf8.RuneCountInString(word)
		if n == 0 {
			current.WriteString(word)
			n = w
			continue
		}
		if n+1+w <= maxWidth {
			current.WriteByte(' ')
			current.WriteString(word)
			n += 1 + w
			continue
		}
		lines = append(lines, current.String())
		current.Reset()
		current.WriteString(word)
		n = w
	}
	if n > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// words splits text at white space.
func words(text string) []string {
	seg := segment.NewSegmenter(segment.NewSimpleWordBreaker())
	seg.Init(strings.NewReader(text))
	var ws []string
	for seg.Next() {
		ws = append(ws, strings.Fields(seg.Text())...)
	}
	return ws
}
