package gfx

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/npillmayer/subtitles/core"
	"github.com/npillmayer/subtitles/core/font"
)

// Picture is a raster image subtitles are drawn onto.
type Picture struct {
	Name       string
	mx         sync.Mutex
	img        *image.NRGBA
	typecase   *font.TypeCase
	background color.Color
	drawn      int
}

// NewPicture creates a picture of w×h pixels, filled with background.
// Text is drawn with typecase tc.
func NewPicture(name string, w, h int, tc *font.TypeCase, background color.Color) *Picture {
	pic := &Picture{
		Name:       name,
		img:        image.NewNRGBA(image.Rect(0, 0, w, h)),
		typecase:   tc,
		background: background,
	}
	pic.Clear()
	return pic
}

// Clear fills the picture with its background color.
func (pic *Picture) Clear() {
	pic.mx.Lock()
	defer pic.mx.Unlock()
	draw.Draw(pic.img, pic.img.Bounds(), image.NewUniform(pic.background), image.Point{}, draw.Src)
	pic.drawn = 0
}

// DrawText draws a line of text with its top left corner at pos.
func (pic *Picture) DrawText(pos mgl32.Vec2, c color.NRGBA, text string) {
	if c.A == 0 || text == "" {
		return
	}
	pic.mx.Lock()
	defer pic.mx.Unlock()
	pic.typecase.DrawString(pic.img, pos.X(), pos.Y(), c, text)
	pic.drawn++
}

// Drawn returns the number of text lines drawn since the last Clear.
func (pic *Picture) Drawn() int {
	pic.mx.Lock()
	defer pic.mx.Unlock()
	return pic.drawn
}

// Image returns the underlying image.
func (pic *Picture) Image() image.Image {
	return pic.img
}

// Shipout writes the picture as PNG.
func (pic *Picture) Shipout(w io.Writer) error {
	pic.mx.Lock()
	defer pic.mx.Unlock()
	tracer().Infof("shipping out picture %q with %d lines of text", pic.Name, pic.drawn)
	if err := png.Encode(w, pic.img); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot encode picture %q", pic.Name)
	}
	return nil
}
