package locate

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/subtitles/core"
	"github.com/npillmayer/subtitles/core/lang"
)

// Extension is the file extension of string tables.
const Extension = ".ilstrings"

// Mod is a plugin contributing string tables. The compile index of a mod is
// its position in the load order.
type Mod struct {
	Name         string // base name, lower case, without file extension
	CompileIndex uint32
}

// Catalog lists the string tables below a data root.
// A catalog is immutable after creation and safe for concurrent use.
type Catalog struct {
	root   string
	mods   []Mod
	tables *trie.Trie // key "<base>_<lang>", meta: file path
}

// Scan reads the directory "<root>/strings" and catalogs the string tables
// found there. loadOrder is a list of plugin file names, e.g. "Skyrim.esm".
// If it is empty, the base names found on disk, sorted lexically, form the
// load order.
func Scan(root string, loadOrder []string) (*Catalog, error) {
	dir := filepath.Join(root, "strings")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFound(dir)
		}
		return nil, core.WrapError(err, core.EINVALID, "cannot read string folder %s", dir)
	}
	c := &Catalog{root: root, tables: trie.New()}
	bases := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base, l, ok := splitTableName(e.Name())
		if !ok {
			continue
		}
		tracer().Debugf("string table %s: mod %s, language %s", e.Name(), base, l)
		c.tables.Add(tableKey(base, l), filepath.Join(dir, e.Name()))
		bases[base] = true
	}
	if len(loadOrder) == 0 {
		for base := range bases {
			loadOrder = append(loadOrder, base)
		}
		sort.Strings(loadOrder)
	}
	seen := make(map[string]bool)
	for _, plugin := range loadOrder {
		base := BaseName(plugin)
		if base == "" || seen[base] {
			continue
		}
		seen[base] = true
		c.mods = append(c.mods, Mod{Name: base, CompileIndex: uint32(len(c.mods))})
	}
	for base := range bases {
		if !seen[base] {
			tracer().Infof("string tables of mod %s ignored: mod not in load order", base)
		}
	}
	tracer().Infof("catalog of %s: %d mods", root, len(c.mods))
	return c, nil
}

// Root returns the data root of the catalog.
func (c *Catalog) Root() string {
	return c.root
}

// Mods returns the mods of the load order, by compile index.
func (c *Catalog) Mods() []Mod {
	return c.mods
}

// Tables returns the paths of all string tables of a mod.
func (c *Catalog) Tables(mod Mod) []string {
	var paths []string
	for _, key := range c.tables.PrefixSearch(mod.Name + "_") {
		if strings.ContainsRune(key[len(mod.Name)+1:], '_') {
			continue // table of another mod, e.g. "<base>_dlc"
		}
		if n, ok := c.tables.Find(key); ok {
			paths = append(paths, n.Meta().(string))
		}
	}
	sort.Strings(paths)
	return paths
}

// Open reads the string table of a mod for a language. If the mod does not
// ship a table for the language, an EMISSING error is returned.
func (c *Catalog) Open(mod Mod, l lang.Language) ([]byte, error) {
	n, ok := c.tables.Find(tableKey(mod.Name, l))
	if !ok {
		return nil, NotFound(mod.Name + "_" + l.Code() + Extension)
	}
	path := n.Meta().(string)
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read string table %s", path)
	}
	return buf, nil
}

// BaseName strips directory and extension from a plugin file name and
// lowercases it.
func BaseName(plugin string) string {
	plugin = strings.TrimSpace(filepath.Base(filepath.ToSlash(plugin)))
	if plugin == "." || plugin == "/" {
		return ""
	}
	return strings.ToLower(strings.TrimSuffix(plugin, filepath.Ext(plugin)))
}

func tableKey(base string, l lang.Language) string {
	return base + "_" + strings.ToLower(l.Code())
}

// splitTableName splits "<base>_<LANG>.ilstrings" into its parts.
func splitTableName(name string) (string, lang.Language, bool) {
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, Extension) {
		return "", lang.Native, false
	}
	lower = strings.TrimSuffix(lower, Extension)
	i := strings.LastIndexByte(lower, '_')
	if i <= 0 {
		return "", lang.Native, false
	}
	code := strings.ToUpper(lower[i+1:])
	for _, l := range lang.All() {
		if l.Code() == code {
			return lower[:i], l, true
		}
	}
	return "", lang.Native, false
}

// ReadLoadOrder reads a plugin list in the format of the game's plugins.txt:
// one plugin per line, '#' starts a comment, a leading '*' marks an active
// plugin. Empty lines are skipped.
func ReadLoadOrder(r io.Reader) ([]string, error) {
	var plugins []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		plugins = append(plugins, strings.TrimPrefix(line, "*"))
	}
	if err := scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read load order")
	}
	return plugins, nil
}

// --- Async scanning -------------------------------------------------------

type catalogPlusErr struct {
	catalog *Catalog
	err     error
}

// CatalogPromise is returned by ResolveCatalog.
type CatalogPromise interface {
	Catalog() (*Catalog, error)
	Await(ctx context.Context) (*Catalog, error)
}

// ResolveCatalog scans a data root in the background. The promise may be
// awaited by any number of goroutines.
func ResolveCatalog(root string, loadOrder []string) CatalogPromise {
	loader := &catalogLoader{done: make(chan struct{})}
	go func() {
		c, err := Scan(root, loadOrder)
		loader.r = catalogPlusErr{c, err}
		close(loader.done)
	}()
	return loader
}

type catalogLoader struct {
	done chan struct{} // closed after r is set
	r    catalogPlusErr
}

func (loader *catalogLoader) Catalog() (*Catalog, error) {
	return loader.Await(context.Background())
}

func (loader *catalogLoader) Await(ctx context.Context) (*Catalog, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-loader.done:
		return loader.r.catalog, loader.r.err
	}
}
