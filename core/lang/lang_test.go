package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestCodes(t *testing.T) {
	for _, l := range All() {
		assert.Equal(t, l, FromCode(l.Code()), "round trip of %s", l.Code())
	}
	assert.Equal(t, Total, len(All()))
	assert.Equal(t, LatinAmericanSpanish, FromCode("esmx"))
	assert.Equal(t, English, FromCode("XX"))
}

func TestNativeSentinel(t *testing.T) {
	assert.Equal(t, Native, Parse("native"))
	assert.Equal(t, Native, Parse(""))
	assert.Equal(t, Russian, Parse("RUS"))
	assert.False(t, Native.IsValid())
	assert.Equal(t, "EN", Native.Code())
	assert.Equal(t, language.Und, Native.Tag())
}

func TestMatch(t *testing.T) {
	assert.Equal(t, German, Match(language.MustParse("de-AT")))
	assert.Equal(t, Japanese, Match(language.Japanese))
	assert.Equal(t, English, Match(language.MustParse("tlh")))
}
