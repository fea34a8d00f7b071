package textlayout

import (
	"sync"

	"github.com/npillmayer/subtitles/core/font"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// Measurer measures text in pixels. Implementations must be safe for
// concurrent use.
type Measurer interface {
	MeasureText(text string) Extent
	LineHeight() float32
}

// --- Monospace -------------------------------------------------------------

// Monospace measures text on a character grid, as a terminal would show
// it: wide East Asian characters take two cells, all others one.
type Monospace struct {
	CellWidth float32
	Height    float32
	Context   *uax11.Context // defaults to uax11.LatinContext
}

var graphemeClasses sync.Once

// NewMonospace creates a monospace measurer with a given cell size.
func NewMonospace(cellWidth, height float32) *Monospace {
	graphemeClasses.Do(grapheme.SetupGraphemeClasses)
	return &Monospace{CellWidth: cellWidth, Height: height, Context: uax11.LatinContext}
}

// Cells returns the number of grid cells text occupies.
func (ms *Monospace) Cells(text string) int {
	graphemeClasses.Do(grapheme.SetupGraphemeClasses)
	ctx := ms.Context
	if ctx == nil {
		ctx = uax11.LatinContext
	}
	gstr := grapheme.StringFromString(text)
	cells := 0
	for i := 0; i < gstr.Len(); i++ {
		cells += uax11.Width([]byte(gstr.Nth(i)), ctx)
	}
	return cells
}

// MeasureText is part of interface Measurer.
func (ms *Monospace) MeasureText(text string) Extent {
	return Extent{W: float32(ms.Cells(text)) * ms.CellWidth, H: ms.Height}
}

// LineHeight is part of interface Measurer.
func (ms *Monospace) LineHeight() float32 {
	return ms.Height
}

// --- Font faces ------------------------------------------------------------

// FaceMeasurer measures text with a typecase.
type FaceMeasurer struct {
	tc *font.TypeCase
}

// NewFaceMeasurer creates a measurer for a typecase.
func NewFaceMeasurer(tc *font.TypeCase) FaceMeasurer {
	return FaceMeasurer{tc: tc}
}

// MeasureText is part of interface Measurer.
func (fm FaceMeasurer) MeasureText(text string) Extent {
	return Extent{W: fm.tc.Advance(text), H: fm.tc.LineHeight()}
}

// LineHeight is part of interface Measurer.
func (fm FaceMeasurer) LineHeight() float32 {
	return fm.tc.LineHeight()
}

var _ Measurer = &Monospace{}
var _ Measurer = FaceMeasurer{}
