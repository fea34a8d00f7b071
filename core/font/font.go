package font

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"sync"

	"github.com/npillmayer/subtitles/core"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ScalableFont is a parsed font file.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// TypeCase is a font at a given size. A TypeCase measures text in pixels
// and is safe for concurrent use.
type TypeCase struct {
	sync.Mutex         // x/image faces are not safe for concurrent use
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
	lineHeight         float32
}

// DPI is the resolution typecases are prepared for.
const DPI = 72

// LoadOpenTypeFont loads and parses a font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses the binary data of an OpenType or TrueType font.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EFORMAT, "cannot parse font")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// PrepareCase creates a typecase of a given size (in points) from a font.
// Sizes outside of 5pt…500pt are replaced by 10pt.
func (sf *ScalableFont) PrepareCase(fontsize float64) (*TypeCase, error) {
	typecase := &TypeCase{scalableFontParent: sf}
	if fontsize < 5.0 || fontsize > 500.0 {
		tracer().Errorf("font size must be 5pt < size < 500pt, is %g (set to 10pt)", fontsize)
		fontsize = 10.0
	}
	options := &opentype.FaceOptions{
		Size:    fontsize,
		DPI:     DPI,
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot create face for %s", sf.Fontname)
	}
	typecase.face = f
	typecase.size = fontsize
	typecase.lineHeight = float32(f.Metrics().Height) / 64
	return typecase, nil
}

// ScalableFontParent returns the font a typecase has been prepared from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PtSize returns the size of a typecase in points.
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// Advance returns the advance width of a text in pixels. No shaping or
// kerning is applied beyond what the face does per glyph pair.
func (tc *TypeCase) Advance(text string) float32 {
	tc.Lock()
	defer tc.Unlock()
	return float32(xfont.MeasureString(tc.face, text)) / 64
}

// LineHeight returns the recommended distance between two baselines, in pixels.
func (tc *TypeCase) LineHeight() float32 {
	return tc.lineHeight
}

// DrawString draws text onto dst, with (x,y) being the top left corner of
// the line box.
func (tc *TypeCase) DrawString(dst draw.Image, x, y float32, c color.Color, text string) {
	tc.Lock()
	defer tc.Unlock()
	ascent := tc.face.Metrics().Ascent
	d := xfont.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: tc.face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y*64) + ascent},
	}
	d.DrawString(text)
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}
