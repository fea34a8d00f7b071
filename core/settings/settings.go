package settings

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/npillmayer/subtitles/core"
	"github.com/npillmayer/subtitles/core/lang"
	"gopkg.in/ini.v1"
)

// LanguageSetting selects a display language together with the wrapping
// width used for it.
type LanguageSetting struct {
	Language        lang.Language
	MaxCharsPerLine uint32
}

// Settings is a snapshot of all subtitle settings. It is a value type and
// may be copied freely.
type Settings struct {
	GameLanguage lang.Language // language the game runs in; never Native

	Primary       LanguageSetting
	Secondary     LanguageSetting
	DualSubtitles bool

	MaxDistance       float32 // in game units
	GeneralSubtitles  bool    // show non-dialogue subtitles on the HUD
	DialogueSubtitles bool    // show dialogue subtitles on the HUD
	Color             color.NRGBA

	ShowSpeakerName bool
	SubtitleSize    float32 // font size in points
	HeadOffset      float32
	RequireLOS      bool
	Spacing         float32 // gap between primary and secondary block, in lines
	ObscuredAlpha   float32
	AlphaPrimary    float32
	AlphaSecondary  float32
}

// NearSq is the squared distance up to which subtitles are fully opaque.
func (s Settings) NearSq() float32 {
	return s.MaxDistance * s.MaxDistance
}

// FarSq is the squared distance beyond which subtitles are not shown.
func (s Settings) FarSq() float32 {
	far := s.MaxDistance * 1.05
	return far * far
}

const defaultINI = `
[General]
sLanguage = EN

[Interface]
fMaxSubtitleDistance = 2048
bGeneralSubtitles    = 1
bDialogueSubtitles   = 1
uSubtitleR           = 255
uSubtitleG           = 255
uSubtitleB           = 255

[Subtitles]
bShowSpeakerName   = 1
fSubtitleSize      = 27
bShowDualSubs      = 0
fHeadOffset        = 15
bRequireLOS        = 1
fSpacing           = 0.5
fObscuredAlpha     = 0.35
fAlphaPrimary      = 1.0
fAlphaSecondary    = 1.0
sPrimaryLanguage   = NATIVE
iPrimaryMaxChars   = 80
sSecondaryLanguage = NATIVE
iSecondaryMaxChars = 80
`

// Defaults returns the settings of the built-in default configuration.
func Defaults() Settings {
	s, err := Load()
	if err != nil { // cannot happen for the built-in configuration
		panic(err)
	}
	return s
}

// Load reads settings from the built-in defaults, overlaid by the given
// sources. Sources may be anything ini.LoadSources accepts: file names,
// byte slices or readers. Non-existing files are ignored.
//
// The Native language sentinel of the primary and secondary setting is
// resolved to the game language.
func Load(sources ...interface{}) (Settings, error) {
	opts := ini.LoadOptions{
		Loose:                   true,
		SkipUnrecognizableLines: true,
	}
	f, err := ini.LoadSources(opts, []byte(defaultINI), sources...)
	if err != nil {
		return Settings{}, core.WrapError(err, core.EINVALID, "cannot read settings: %v", err)
	}
	s := fromINI(f)
	tracer().Debugf("settings loaded: game language %s, primary %s, secondary %s",
		s.GameLanguage, s.Primary.Language, s.Secondary.Language)
	return s, nil
}

func fromINI(f *ini.File) Settings {
	general := f.Section("General")
	iface := f.Section("Interface")
	subs := f.Section("Subtitles")
	s := Settings{}
	s.GameLanguage = lang.FromCode(general.Key("sLanguage").MustString("EN"))
	s.MaxDistance = float32(iface.Key("fMaxSubtitleDistance").MustFloat64(2048))
	s.GeneralSubtitles = iface.Key("bGeneralSubtitles").MustBool(true)
	s.DialogueSubtitles = iface.Key("bDialogueSubtitles").MustBool(true)
	s.Color = color.NRGBA{
		R: channel(iface.Key("uSubtitleR")),
		G: channel(iface.Key("uSubtitleG")),
		B: channel(iface.Key("uSubtitleB")),
		A: 0xff,
	}
	s.ShowSpeakerName = subs.Key("bShowSpeakerName").MustBool(true)
	s.SubtitleSize = float32(subs.Key("fSubtitleSize").MustFloat64(27))
	s.DualSubtitles = subs.Key("bShowDualSubs").MustBool(false)
	s.HeadOffset = float32(subs.Key("fHeadOffset").MustFloat64(15))
	s.RequireLOS = subs.Key("bRequireLOS").MustBool(true)
	s.Spacing = float32(subs.Key("fSpacing").MustFloat64(0.5))
	s.ObscuredAlpha = unit(subs.Key("fObscuredAlpha").MustFloat64(0.35))
	s.AlphaPrimary = unit(subs.Key("fAlphaPrimary").MustFloat64(1))
	s.AlphaSecondary = unit(subs.Key("fAlphaSecondary").MustFloat64(1))
	s.Primary = LanguageSetting{
		Language:        lang.Parse(subs.Key("sPrimaryLanguage").MustString("NATIVE")),
		MaxCharsPerLine: maxChars(subs.Key("iPrimaryMaxChars")),
	}
	s.Secondary = LanguageSetting{
		Language:        lang.Parse(subs.Key("sSecondaryLanguage").MustString("NATIVE")),
		MaxCharsPerLine: maxChars(subs.Key("iSecondaryMaxChars")),
	}
	return s.Resolved()
}

// Resolved replaces the Native sentinel in the language settings by the
// game language.
func (s Settings) Resolved() Settings {
	if !s.GameLanguage.IsValid() {
		s.GameLanguage = lang.English
	}
	if s.Primary.Language == lang.Native || !s.Primary.Language.IsValid() {
		s.Primary.Language = s.GameLanguage
	}
	if s.Secondary.Language == lang.Native || !s.Secondary.Language.IsValid() {
		s.Secondary.Language = s.GameLanguage
	}
	return s
}

func channel(k *ini.Key) uint8 {
	v := k.MustInt(255)
	if v < 0 {
		return 0
	} else if v > 255 {
		return 255
	}
	return uint8(v)
}

func maxChars(k *ini.Key) uint32 {
	v := k.MustInt(80)
	if v < 1 {
		tracer().Infof("max chars per line of %d ignored, using 80", v)
		return 80
	}
	return uint32(v)
}

func unit(v float64) float32 {
	if v < 0 {
		return 0
	} else if v > 1 {
		return 1
	}
	return float32(v)
}

// ParseLanguageSetting parses a textual setting of the form "CODE" or
// "CODE:maxchars", as used on command lines.
func ParseLanguageSetting(s string, game lang.Language) LanguageSetting {
	ls := LanguageSetting{MaxCharsPerLine: 80}
	code, width, found := strings.Cut(s, ":")
	ls.Language = lang.Parse(code)
	if ls.Language == lang.Native {
		ls.Language = game
	}
	if found {
		if n, err := strconv.Atoi(strings.TrimSpace(width)); err == nil && n > 0 {
			ls.MaxCharsPerLine = uint32(n)
		}
	}
	return ls
}
