package localization

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/subtitles/core/lang"
	"github.com/npillmayer/subtitles/core/locate"
	"github.com/npillmayer/subtitles/core/settings"
	"github.com/npillmayer/subtitles/core/strtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	skyrim    = locate.Mod{Name: "skyrim", CompileIndex: 0}
	dawnguard = locate.Mod{Name: "dawnguard", CompileIndex: 1}
)

func TestPair(t *testing.T) {
	assert.Equal(t, SubtitleID(0), Pair(0, 0))
	assert.Equal(t, SubtitleID(1), Pair(0, 1))
	assert.Equal(t, SubtitleID(2), Pair(1, 0))
	assert.Equal(t, SubtitleID(3), Pair(1, 1))
	assert.Equal(t, SubtitleID(4), Pair(0, 2))
	seen := make(map[SubtitleID]bool)
	for a := uint32(0); a < 40; a++ {
		for b := uint32(0); b < 40; b++ {
			id := Pair(a, b)
			require.False(t, seen[id], "collision for (%d,%d)", a, b)
			seen[id] = true
		}
	}
	assert.Equal(t, SubtitleID(1<<64-1), Pair(1<<32-1, 1<<32-1))
}

func TestFewerVariantsWin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.l10n")
	defer teardown()
	//
	// id A = (0,7): one string of length 5
	// id B = (1,3): two strings of total length 20
	entries := []Entry{
		{skyrim, lang.English, 7, "Hello"},
		{dawnguard, lang.English, 3, "Hello"},
		{dawnguard, lang.German, 3, "Hallo, wie geht's"},
	}
	x := BuildFromEntries(entries, lang.English)
	id, ok := x.Lookup("Hello")
	require.True(t, ok)
	assert.Equal(t, Pair(0, 7), id)
	assert.Equal(t, "Hello", x.Resolve("Hello", lang.German), "A has no German variant")
}

func TestTieBreaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.l10n")
	defer teardown()
	//
	entries := []Entry{
		{skyrim, lang.English, 9, "Yes"},
		{skyrim, lang.German, 9, "Ja"},
		{skyrim, lang.English, 4, "Yes"},
		{skyrim, lang.German, 4, "Jawohl"},
		{skyrim, lang.English, 2, "No"},
		{skyrim, lang.French, 2, "Non"},
		{skyrim, lang.English, 5, "No"},
		{skyrim, lang.French, 5, "Non"},
	}
	x := BuildFromEntries(entries, lang.English)
	assert.Equal(t, "Jawohl", x.Resolve("Yes", lang.German), "longer total wins")
	id, _ := x.Lookup("No")
	assert.Equal(t, Pair(0, 2), id, "exact tie goes to the smaller id")
}

func TestMergeIsOrderIndependent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.l10n")
	defer teardown()
	//
	entries := []Entry{
		{skyrim, lang.English, 1, "Stop"},
		{skyrim, lang.German, 1, "Halt"},
		{skyrim, lang.German, 1, "Anhalten"},
		{dawnguard, lang.English, 1, "Stop"},
		{dawnguard, lang.German, 1, "Stehenbleiben"},
		{dawnguard, lang.English, 8, "Go"},
		{dawnguard, lang.Japanese, 8, "行け"},
		{skyrim, lang.English, 20, "   "},
	}
	want := BuildFromEntries(entries, lang.English)
	assert.Equal(t, 2, want.Len(), "whitespace strings are skipped")
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]Entry(nil), entries...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := BuildFromEntries(shuffled, lang.English)
		assert.Equal(t, want.subtitleToID, got.subtitleToID)
		assert.Equal(t, want.idToLocalized, got.idToLocalized)
	}
	assert.Equal(t, "Stehenbleiben", want.Resolve("Stop", lang.German))
	assert.Equal(t, "行け", want.Resolve("Go", lang.Japanese))
}

func TestIndexInvariant(t *testing.T) {
	x := BuildFromEntries([]Entry{
		{skyrim, lang.English, 1, "A"},
		{skyrim, lang.English, 2, "A"},
		{skyrim, lang.English, 3, "B"},
		{skyrim, lang.German, 4, "C"}, // no native text
	}, lang.English)
	for raw, id := range x.subtitleToID {
		_, ok := x.idToLocalized[id]
		assert.True(t, ok, "no localized entry for %q", raw)
	}
	var walked []string
	x.Each(func(raw string, id SubtitleID, variants map[lang.Language]string) {
		walked = append(walked, raw)
	})
	assert.Equal(t, []string{"A", "B"}, walked)
}

func TestLocalizedSubtitle(t *testing.T) {
	x := BuildFromEntries([]Entry{
		{skyrim, lang.English, 1, "Hello"},
		{skyrim, lang.German, 1, "Hallo"},
		{skyrim, lang.English, 2, "OK"},
		{skyrim, lang.German, 2, "OK"},
	}, lang.English)
	ls := x.LocalizedSubtitle("Hello", settings.LanguageSetting{Language: lang.German, MaxCharsPerLine: 40})
	assert.Equal(t, LocalizedSubtitle{"Hallo", 40, lang.German}, ls)
	ls = x.LocalizedSubtitle("Unknown", settings.LanguageSetting{Language: lang.German, MaxCharsPerLine: 40})
	assert.Equal(t, LocalizedSubtitle{"Unknown", 40, lang.English}, ls)
	ls = x.LocalizedSubtitle("OK", settings.LanguageSetting{Language: lang.German, MaxCharsPerLine: 40})
	assert.Equal(t, lang.English, ls.Language, "identical text reports the native language")
	assert.Equal(t, "Hello", x.Resolve("Hello", lang.English))
	assert.Len(t, x.Variants("Hello"), 2)
	assert.Nil(t, x.Variants("Unknown"))
}

// --- Build from tables ------------------------------------------------------

type memSource struct {
	mods   []locate.Mod
	tables map[string][]byte
}

func (m memSource) Mods() []locate.Mod { return m.mods }

func (m memSource) Open(mod locate.Mod, l lang.Language) ([]byte, error) {
	if buf, ok := m.tables[mod.Name+"_"+l.Code()]; ok {
		return buf, nil
	}
	return nil, errors.New("no table")
}

func TestBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.l10n")
	defer teardown()
	//
	broken := strtable.Encode(strtable.Entry{StringID: 1, Text: "kaputt"})
	broken = broken[:len(broken)-2]
	src := memSource{
		mods: []locate.Mod{skyrim, dawnguard},
		tables: map[string][]byte{
			"skyrim_EN": strtable.Encode(
				strtable.Entry{StringID: 1, Text: "Hello"},
				strtable.Entry{StringID: 2, Text: ""},
				strtable.Entry{StringID: 3, Text: "Farewell"}),
			"skyrim_DE": strtable.Encode(
				strtable.Entry{StringID: 1, Text: "Hallo"},
				strtable.Entry{StringID: 3, Text: "Lebwohl"}),
			"skyrim_FR":    {1, 2, 3}, // too short
			"dawnguard_EN": strtable.Encode(strtable.Entry{StringID: 1, Text: "Vampire"}),
			"dawnguard_DE": broken,
		},
	}
	x := Build(src, lang.English)
	assert.Equal(t, 3, x.Len())
	assert.Equal(t, "Lebwohl", x.Resolve("Farewell", lang.German))
	assert.Equal(t, "Vampire", x.Resolve("Vampire", lang.German))
	id, _ := x.Lookup("Vampire")
	assert.Equal(t, Pair(1, 1), id)
}
