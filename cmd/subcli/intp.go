package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/subtitles/core/font/fontregistry"
	"github.com/npillmayer/subtitles/core/lang"
	"github.com/npillmayer/subtitles/core/locate"
	"github.com/npillmayer/subtitles/core/settings"
	"github.com/npillmayer/subtitles/engine/localization"
	"github.com/npillmayer/subtitles/engine/rendercache"
	"github.com/pterm/pterm"
	"github.com/tidwall/sjson"
)

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	catalog  *locate.Catalog
	index    *localization.Index
	store    *settings.Store
	fontname string
	preview  *preview
}

func newIntp(repl *readline.Instance, catalog *locate.Catalog, index *localization.Index,
	store *settings.Store, fontname string) *Intp {
	intp := &Intp{
		repl:     repl,
		catalog:  catalog,
		index:    index,
		store:    store,
		fontname: fontname,
	}
	intp.preview = newPreview(index, store, fontname)
	return intp
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd := parseCommand(line)
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a parsed input line. Lines not starting with ':' are subtitles.
type Command struct {
	code int
	args []string
	text string
}

const (
	WRAP int = iota
	QUIT
	HELP
	LANG
	SIZE
	VARIANTS
	EXPORT
	PNG
	RELOAD
	SETTINGS
	MODS
	FONTS
)

func parseCommand(line string) Command {
	if !strings.HasPrefix(line, ":") {
		return Command{code: WRAP, text: line}
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return Command{code: HELP}
	}
	cmd := Command{args: fields[1:]}
	cmd.text = strings.TrimSpace(strings.TrimPrefix(line[1:], fields[0]))
	switch strings.ToLower(fields[0]) {
	case "quit", "q":
		cmd.code = QUIT
	case "lang":
		cmd.code = LANG
	case "size":
		cmd.code = SIZE
	case "variants", "v":
		cmd.code = VARIANTS
	case "export":
		cmd.code = EXPORT
	case "png":
		cmd.code = PNG
		if len(cmd.args) > 0 {
			cmd.text = strings.TrimSpace(strings.TrimPrefix(cmd.text, cmd.args[0]))
		}
	case "reload":
		cmd.code = RELOAD
	case "settings":
		cmd.code = SETTINGS
	case "mods":
		cmd.code = MODS
	case "fonts":
		cmd.code = FONTS
	default:
		cmd.code = HELP
	}
	tracer().Debugf("parse command = %v", cmd)
	return cmd
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help()
	case WRAP:
		intp.showWrapped(cmd.text)
	case VARIANTS:
		intp.showVariants(cmd.text)
	case LANG:
		return false, intp.setLanguages(cmd.args)
	case SIZE:
		if len(cmd.args) != 1 {
			return false, fmt.Errorf("usage: :size <points>")
		}
		size, err := strconv.ParseFloat(cmd.args[0], 32)
		if err != nil {
			return false, fmt.Errorf("size not numeric: %v", cmd.args[0])
		}
		s := intp.store.Current()
		s.SubtitleSize = float32(size)
		intp.preview.orch.UpdateSettings(s)
	case RELOAD:
		if intp.preview.orch.OnSettingsChanged() {
			pterm.Info.Println("settings changed, subtitles rebuilt")
		} else {
			pterm.Info.Println("no relevant settings changed")
		}
	case SETTINGS:
		showSettings(intp.store.Current())
	case MODS:
		intp.showMods()
	case FONTS:
		fontregistry.GlobalRegistry().LogFontList()
	case EXPORT:
		if len(cmd.args) != 1 {
			return false, fmt.Errorf("usage: :export <file.json>")
		}
		return false, intp.export(cmd.args[0])
	case PNG:
		if len(cmd.args) < 2 {
			return false, fmt.Errorf("usage: :png <file.png> <subtitle>")
		}
		return false, intp.preview.render(cmd.args[0], cmd.text)
	}
	return false, nil
}

func (intp *Intp) setLanguages(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("usage: :lang <primary> [<secondary>]")
	}
	s := intp.store.Current()
	s.Primary = settings.ParseLanguageSetting(args[0], s.GameLanguage)
	s.DualSubtitles = len(args) == 2
	if s.DualSubtitles {
		s.Secondary = settings.ParseLanguageSetting(args[1], s.GameLanguage)
	}
	if intp.preview.orch.UpdateSettings(s) {
		pterm.Info.Printfln("subtitles rebuilt for %s", describeLanguages(intp.store.Current()))
	}
	return nil
}

func (intp *Intp) showWrapped(raw string) {
	cache := intp.preview.orch.Cache()
	d := cache.GetOrBuild(raw)
	if _, ok := intp.index.Lookup(raw); !ok {
		pterm.Warning.Println("not a known subtitle, shown as is")
	}
	printWrapped("primary", d.Primary)
	if !d.Secondary.Empty() {
		printWrapped("secondary", d.Secondary)
	}
	pterm.Printfln("HUD text: %q", cache.MirrorText(raw))
}

func printWrapped(title string, w rendercache.WrappedText) {
	data := pterm.TableData{{"line", "text", "width"}}
	for i := len(w.Lines) - 1; i >= 0; i-- { // lines are stored bottom first
		l := w.Lines[i]
		data = append(data, []string{
			strconv.Itoa(len(w.Lines) - i),
			l.Text,
			strconv.FormatFloat(float64(l.Extent.W), 'f', 1, 32),
		})
	}
	pterm.DefaultSection.Println(title)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) showVariants(raw string) {
	variants := intp.index.Variants(raw)
	if len(variants) == 0 {
		pterm.Warning.Printfln("no localizations for %q", raw)
		return
	}
	id, _ := intp.index.Lookup(raw)
	data := pterm.TableData{{"language", "text"}}
	for _, l := range sortedLanguages(variants) {
		data = append(data, []string{l.Code(), variants[l]})
	}
	pterm.Info.Printfln("subtitle id %d", id)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) showMods() {
	data := pterm.TableData{{"index", "mod", "string tables"}}
	for _, mod := range intp.catalog.Mods() {
		tables := intp.catalog.Tables(mod)
		for i := range tables {
			tables[i] = filepath.Base(tables[i])
		}
		data = append(data, []string{
			strconv.Itoa(int(mod.CompileIndex)),
			mod.Name,
			strings.Join(tables, " "),
		})
	}
	pterm.Info.Printfln("string tables of %s", intp.catalog.Root())
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func sortedLanguages(variants map[lang.Language]string) []lang.Language {
	langs := make([]lang.Language, 0, len(variants))
	for l := range variants {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// export writes the localization index as JSON.
func (intp *Intp) export(filename string) error {
	doc, err := exportIndex(intp.index)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, []byte(doc), 0644); err != nil {
		return err
	}
	pterm.Success.Printfln("exported %d subtitles to %s", intp.index.Len(), filename)
	return nil
}

func exportIndex(index *localization.Index) (string, error) {
	doc, err := sjson.Set("{}", "native", index.Native().Code())
	if err != nil {
		return "", err
	}
	if doc, err = sjson.SetRaw(doc, "subtitles", "[]"); err != nil {
		return "", err
	}
	index.Each(func(raw string, id localization.SubtitleID, variants map[lang.Language]string) {
		if err != nil {
			return
		}
		texts := make(map[string]string, len(variants))
		for l, text := range variants {
			texts[l.Code()] = text
		}
		doc, err = sjson.Set(doc, "subtitles.-1", map[string]interface{}{
			"raw":      raw,
			"id":       uint64(id),
			"variants": texts,
		})
	})
	return doc, err
}

func describeLanguages(s settings.Settings) string {
	if s.DualSubtitles {
		return fmt.Sprintf("%s + %s", s.Primary.Language.Code(), s.Secondary.Language.Code())
	}
	return s.Primary.Language.Code()
}

func showSettings(s settings.Settings) {
	data := pterm.TableData{
		{"setting", "value"},
		{"game language", s.GameLanguage.Code()},
		{"languages", describeLanguages(s)},
		{"max chars", fmt.Sprintf("%d / %d", s.Primary.MaxCharsPerLine, s.Secondary.MaxCharsPerLine)},
		{"subtitle size", fmt.Sprintf("%.1f", s.SubtitleSize)},
		{"max distance", fmt.Sprintf("%.0f", s.MaxDistance)},
		{"speaker names", strconv.FormatBool(s.ShowSpeakerName)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	<text>                      resolve and wrap a raw subtitle
	:variants <text>            show all localizations of a subtitle
	:lang <lang>[:n] [<lang>[:n]] set primary (and secondary) language, n = max chars
	:size <points>              set the subtitle font size
	:png <file> <text>          render a subtitle preview to a PNG file
	:export <file>              export the localization index as JSON
	:settings                   show the current settings
	:mods                       list mods and their string tables
	:fonts                      write the font registry to the trace
	:reload                     reload the settings file
	:quit                       leave
	`)
}
