package localization

import (
	"sort"
	"strings"
	"time"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/subtitles/core/lang"
	"github.com/npillmayer/subtitles/core/locate"
	"github.com/npillmayer/subtitles/core/settings"
	"github.com/npillmayer/subtitles/core/strtable"
)

// SubtitleID identifies a string across languages. It is the Szudzik pairing
// of a mod's compile index and the in-mod string id.
type SubtitleID uint64

// Pair computes the SubtitleID for a compile index and a string id.
// The pairing is unique for all 32-bit inputs.
func Pair(compileIndex, stringID uint32) SubtitleID {
	a, b := uint64(compileIndex), uint64(stringID)
	if a >= b {
		return SubtitleID(a*a + a + b)
	}
	return SubtitleID(a + b*b)
}

// TableSource provides the string tables of mods, e.g. from a locate.Catalog.
type TableSource interface {
	Mods() []locate.Mod
	Open(mod locate.Mod, l lang.Language) ([]byte, error)
}

// Entry is a single string of a string table.
type Entry struct {
	Mod      locate.Mod
	Language lang.Language
	StringID uint32
	Text     string
}

// LocalizedSubtitle is the result of a lookup.
type LocalizedSubtitle struct {
	Text            string
	MaxCharsPerLine uint32
	Language        lang.Language // language Text is in
}

// Index is the merged localization index.
type Index struct {
	native        lang.Language
	subtitleToID  map[string]SubtitleID
	idToLocalized map[SubtitleID]map[lang.Language]string
}

// Build reads the string tables of all mods in all languages and creates a
// merged index. Missing, short or malformed tables are skipped, as are
// single strings which cannot be read. Build never fails; in the worst case
// the index is empty and every lookup falls back to the raw text.
func Build(src TableSource, native lang.Language) *Index {
	start := time.Now()
	acc := newAccumulator(native)
	for _, mod := range src.Mods() {
		for _, l := range lang.All() {
			readTable(src, mod, l, acc)
		}
	}
	x := acc.merge()
	tracer().Infof("parsing string tables took %s, %d localized strings found",
		time.Since(start), x.Len())
	return x
}

func readTable(src TableSource, mod locate.Mod, l lang.Language, acc *accumulator) {
	buf, err := src.Open(mod, l)
	if err != nil || len(buf) < strtable.HeaderSize {
		tracer().Debugf("no string table for mod %s in %s", mod.Name, l)
		return
	}
	table, err := strtable.Parse(buf)
	if err != nil {
		tracer().Errorf("string table of mod %s in %s discarded: %v", mod.Name, l, err)
		return
	}
	for _, d := range table.Directory {
		text, err := table.StringAt(d.Offset)
		if err != nil {
			tracer().Debugf("mod %s, %s, string %d: %v", mod.Name, l, d.StringID, err)
			continue
		}
		acc.add(Entry{Mod: mod, Language: l, StringID: d.StringID, Text: text})
	}
}

// BuildFromEntries creates a merged index from single strings. It is Build
// without the file reading.
func BuildFromEntries(entries []Entry, native lang.Language) *Index {
	acc := newAccumulator(native)
	for _, e := range entries {
		acc.add(e)
	}
	return acc.merge()
}

// Native returns the language the index has been built for.
func (x *Index) Native() lang.Language {
	return x.native
}

// Len returns the number of distinct native texts the index knows.
func (x *Index) Len() int {
	return len(x.subtitleToID)
}

// Lookup returns the SubtitleID a native text has been merged to.
func (x *Index) Lookup(raw string) (SubtitleID, bool) {
	id, ok := x.subtitleToID[raw]
	return id, ok
}

// Resolve finds the text of a subtitle in language l. If l is the native
// language, or no variant of the subtitle in l is known, raw is returned.
func (x *Index) Resolve(raw string, l lang.Language) string {
	if l == x.native || l == lang.Native {
		return raw
	}
	if id, ok := x.subtitleToID[raw]; ok {
		if text, ok := x.idToLocalized[id][l]; ok {
			return text
		}
	}
	return raw
}

// LocalizedSubtitle resolves raw for a language setting. The language of
// the result is the native language whenever the resolved text equals raw.
func (x *Index) LocalizedSubtitle(raw string, setting settings.LanguageSetting) LocalizedSubtitle {
	text := x.Resolve(raw, setting.Language)
	l := setting.Language
	if text == raw {
		l = x.native
	}
	return LocalizedSubtitle{
		Text:            text,
		MaxCharsPerLine: setting.MaxCharsPerLine,
		Language:        l,
	}
}

// Variants returns all known translations of a native text.
func (x *Index) Variants(raw string) map[lang.Language]string {
	id, ok := x.subtitleToID[raw]
	if !ok {
		return nil
	}
	variants := make(map[lang.Language]string, len(x.idToLocalized[id]))
	for l, text := range x.idToLocalized[id] {
		variants[l] = text
	}
	return variants
}

// Each calls fn for every native text of the index, in lexical order.
func (x *Index) Each(fn func(raw string, id SubtitleID, variants map[lang.Language]string)) {
	keys := make([]string, 0, len(x.subtitleToID))
	for k := range x.subtitleToID {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		id := x.subtitleToID[k]
		fn(k, id, x.idToLocalized[id])
	}
}

// --- Accumulation and merge ------------------------------------------------

// accumulator collects all strings before merging. Ordered collections make
// the merge independent of the order entries are added in.
type accumulator struct {
	native    lang.Language
	nativeIDs *treemap.Map // native text -> set of SubtitleID
	variants  *treemap.Map // SubtitleID -> *[lang.Total]*treeset.Set of strings
}

func newAccumulator(native lang.Language) *accumulator {
	return &accumulator{
		native:    native,
		nativeIDs: treemap.NewWithStringComparator(),
		variants:  treemap.NewWith(utils.UInt64Comparator),
	}
}

func (acc *accumulator) add(e Entry) {
	if !e.Language.IsValid() || strings.TrimSpace(e.Text) == "" {
		return
	}
	id := uint64(Pair(e.Mod.CompileIndex, e.StringID))
	if e.Language == acc.native {
		ids, ok := acc.nativeIDs.Get(e.Text)
		if !ok {
			ids = treeset.NewWith(utils.UInt64Comparator)
			acc.nativeIDs.Put(e.Text, ids)
		}
		ids.(*treeset.Set).Add(id)
	}
	v, ok := acc.variants.Get(id)
	if !ok {
		v = &[lang.Total]*treeset.Set{}
		acc.variants.Put(id, v)
	}
	perLang := v.(*[lang.Total]*treeset.Set)
	if perLang[e.Language] == nil {
		perLang[e.Language] = treeset.NewWithStringComparator()
	}
	perLang[e.Language].Add(e.Text)
}

func (acc *accumulator) merge() *Index {
	x := &Index{
		native:        acc.native,
		subtitleToID:  make(map[string]SubtitleID, acc.nativeIDs.Size()),
		idToLocalized: make(map[SubtitleID]map[lang.Language]string),
	}
	it := acc.nativeIDs.Iterator()
	for it.Next() {
		text := it.Key().(string)
		best := acc.pickBestID(it.Value().(*treeset.Set))
		x.subtitleToID[text] = SubtitleID(best)
		if _, ok := x.idToLocalized[SubtitleID(best)]; !ok {
			x.idToLocalized[SubtitleID(best)] = acc.pickStrings(best)
		}
	}
	return x
}

// pickBestID selects the id with the fewest strings over all languages.
// Ties go to the larger total byte length, then to the smaller id.
func (acc *accumulator) pickBestID(ids *treeset.Set) uint64 {
	var best uint64
	bestCount, bestLen := -1, -1
	it := ids.Iterator()
	for it.Next() {
		id := it.Value().(uint64)
		count, length := 0, 0
		v, _ := acc.variants.Get(id)
		for _, set := range v.(*[lang.Total]*treeset.Set) {
			if set == nil {
				continue
			}
			count += set.Size()
			for _, s := range set.Values() {
				length += len(s.(string))
			}
		}
		if bestCount < 0 || count < bestCount || (count == bestCount && length > bestLen) {
			best, bestCount, bestLen = id, count, length
		}
	}
	return best
}

// pickStrings takes the lexically first string per language.
func (acc *accumulator) pickStrings(id uint64) map[lang.Language]string {
	v, _ := acc.variants.Get(id)
	strs := make(map[lang.Language]string)
	for l, set := range v.(*[lang.Total]*treeset.Set) {
		if set == nil || set.Empty() {
			continue
		}
		strs[lang.Language(l)] = set.Values()[0].(string)
	}
	return strs
}
