/*
Subcli is an interactive tool to inspect subtitle localization.

It loads the string tables of a game data folder, builds the localization
index and reads raw subtitle lines from the terminal, showing how they are
resolved and wrapped with the current settings.

Usage:

	subcli -data <game data folder> [-loadorder plugins.txt] [-ini subtitles.ini]

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/subtitles/core"
	"github.com/npillmayer/subtitles/core/lang"
	"github.com/npillmayer/subtitles/core/locate"
	"github.com/npillmayer/subtitles/core/settings"
	"github.com/npillmayer/subtitles/engine/localization"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
)

// tracer traces with key 'subtitles.cli'
func tracer() tracing.Trace {
	return tracing.Select("subtitles.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":          "go",
		"trace.subtitles.cli":      "Info",
		"trace.subtitles.l10n":     "Info",
		"trace.subtitles.locate":   "Info",
		"trace.subtitles.settings": "Info",
		"trace.subtitles.cache":    "Error",
		"trace.subtitles.frame":    "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	dataDir := flag.String("data", ".", "Game data folder containing 'strings'")
	loadOrder := flag.String("loadorder", "", "Load order file (plugins.txt)")
	iniFile := flag.String("ini", "", "Settings file")
	fontname := flag.String("font", "", "Font for measuring and previews")
	primary := flag.String("lang", "", "Primary subtitle language, 'auto' for the system locale")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the Subtitle CLI")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	var sources []interface{}
	if *iniFile != "" {
		sources = append(sources, *iniFile)
	}
	store, err := settings.NewStore(sources...)
	if err != nil {
		core.UserError(err)
	}
	if *primary != "" {
		s := store.Current()
		s.Primary.Language = primaryLanguage(*primary)
		store.Set(s)
	}
	//
	setTraceLevel(*tlevel)
	catalog, index, err := loadIndex(*dataDir, *loadOrder, store.Current().GameLanguage)
	if err != nil {
		core.UserError(err)
		os.Exit(2)
	}
	//
	// set up REPL
	repl, err := readline.New("sub > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := newIntp(repl, catalog, index, store, *fontname)
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(l string) {
	switch strings.ToLower(l) {
	case "debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().SetTraceLevel(tracing.LevelInfo)
	}
}

// primaryLanguage interprets the -lang flag. 'auto' matches the system locale
// against the supported languages.
func primaryLanguage(flagValue string) lang.Language {
	if strings.ToLower(flagValue) != "auto" {
		return lang.Parse(flagValue)
	}
	locale := os.Getenv("LC_ALL")
	if locale == "" {
		locale = os.Getenv("LANG")
	}
	locale = strings.SplitN(locale, ".", 2)[0] // strip encoding, e.g. de_AT.UTF-8
	l := lang.Match(language.Make(strings.ReplaceAll(locale, "_", "-")))
	tracer().Infof("system locale %q selects subtitle language %s", locale, l)
	return l
}

func loadIndex(dataDir, loadOrderFile string, native lang.Language) (*locate.Catalog, *localization.Index, error) {
	var order []string
	if loadOrderFile != "" {
		f, err := os.Open(loadOrderFile)
		if err != nil {
			return nil, nil, core.WrapError(err, core.EMISSING, "cannot open load order %s", loadOrderFile)
		}
		order, err = locate.ReadLoadOrder(f)
		f.Close()
		if err != nil {
			return nil, nil, err
		}
	}
	spinner, _ := pterm.DefaultSpinner.Start("Scanning string tables ...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	catalog, err := locate.ResolveCatalog(dataDir, order).Await(ctx)
	if err != nil {
		spinner.Fail(err.Error())
		return nil, nil, err
	}
	index := localization.Build(catalog, native)
	spinner.Success(fmt.Sprintf("%d mods, %d localized subtitles", len(catalog.Mods()), index.Len()))
	return catalog, index, nil
}
