package lang

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the languages string tables are shipped for.
type Language int8

// Languages in the order of their numeric game representation.
// Native is a sentinel, not a language of its own.
const (
	Native Language = iota - 1
	Chinese
	German
	English
	Spanish
	LatinAmericanSpanish
	French
	Italian
	Japanese
	Polish
	Portuguese
	Russian
	total
)

// Total is the number of concrete languages.
const Total = int(total)

var codes = [...]string{"CN", "DE", "EN", "ES", "ESMX", "FR", "IT", "JA", "PL", "PTBR", "RUS"}

var tags = [...]language.Tag{
	language.SimplifiedChinese,
	language.German,
	language.English,
	language.EuropeanSpanish,
	language.LatinAmericanSpanish,
	language.French,
	language.Italian,
	language.Japanese,
	language.Polish,
	language.BrazilianPortuguese,
	language.Russian,
}

// All returns every concrete language, in numeric order.
func All() []Language {
	all := make([]Language, Total)
	for i := range all {
		all[i] = Language(i)
	}
	return all
}

// IsValid is true for concrete languages (i.e., not Native and not out of range).
func (l Language) IsValid() bool {
	return l >= Chinese && l < total
}

// Code returns the file-name code of a language, e.g. "DE".
// Native and out-of-range values report "EN", as the game does.
func (l Language) Code() string {
	if !l.IsValid() {
		return codes[English]
	}
	return codes[l]
}

func (l Language) String() string {
	if l == Native {
		return "NATIVE"
	}
	return l.Code()
}

// Tag returns the BCP 47 tag for a language. Native maps to language.Und.
func (l Language) Tag() language.Tag {
	if !l.IsValid() {
		return language.Und
	}
	return tags[l]
}

// FromCode maps a file-name code to a language. Codes are matched
// case-insensitively; unknown codes yield English.
func FromCode(code string) Language {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i, c := range codes {
		if c == code {
			return Language(i)
		}
	}
	return English
}

// Parse is like FromCode, but also understands the Native sentinel
// ("NATIVE" or an empty string).
func Parse(s string) Language {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "NATIVE" {
		return Native
	}
	return FromCode(s)
}

var matcher = language.NewMatcher(tags[:])

// Match finds the closest supported language for a BCP 47 tag, e.g. taken
// from an operating system locale. With no confident match, English is returned.
func Match(t language.Tag) Language {
	_, index, confidence := matcher.Match(t)
	if confidence == language.No {
		return English
	}
	return Language(index)
}
