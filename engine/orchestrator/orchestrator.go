package orchestrator

import (
	"image/color"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/npillmayer/subtitles/core/font/fontregistry"
	"github.com/npillmayer/subtitles/core/settings"
	"github.com/npillmayer/subtitles/engine/localization"
	"github.com/npillmayer/subtitles/engine/rendercache"
	"github.com/npillmayer/subtitles/engine/slot"
	"github.com/npillmayer/subtitles/engine/textlayout"
	"github.com/npillmayer/subtitles/engine/visibility"
)

// MeasurerFactory creates a text measurer for a font size.
type MeasurerFactory func(size float32) textlayout.Measurer

// FontMeasurer returns a factory measuring with a font from the global font
// registry. If the font cannot be found, the fallback font is used.
func FontMeasurer(fontname string) MeasurerFactory {
	return func(size float32) textlayout.Measurer {
		tc, err := fontregistry.GlobalRegistry().Resolve(fontname, float64(size))
		if err != nil {
			tracer().Infof("font %q: %v", fontname, err)
		}
		if tc == nil {
			return textlayout.NewMonospace(size/2, size)
		}
		return textlayout.NewFaceMeasurer(tc)
	}
}

// Options configure an Orchestrator. World, Projector, Drawer, Oracle,
// Index and Settings are required.
type Options struct {
	World      World
	Projector  Projector
	Drawer     Drawer
	Oracle     visibility.Oracle
	Index      *localization.Index
	Settings   *settings.Store
	Mirror     *rendercache.Mirror   // created if nil
	Compatible rendercache.Predicate // defaults to rendercache.DefaultCompatible
	Measurer   MeasurerFactory       // defaults to FontMeasurer("")

	NameColor    color.NRGBA // color of speaker names; white if zero
	ShadowColor  color.NRGBA // black if zero
	ShadowOffset mgl32.Vec2  // (1,1) if zero
}

// Orchestrator connects game events with the subtitle machinery.
type Orchestrator struct {
	opts           Options
	cache          *rendercache.Cache
	crosshairMode  atomic.Int32
	mx             sync.Mutex // guards currentSpeaker
	currentSpeaker slot.Handle
}

// New creates an orchestrator.
func New(opts Options) *Orchestrator {
	if opts.Mirror == nil {
		opts.Mirror = rendercache.NewMirror(nil)
	}
	if opts.Measurer == nil {
		opts.Measurer = FontMeasurer("")
	}
	if opts.NameColor == (color.NRGBA{}) {
		opts.NameColor = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	}
	if opts.ShadowColor == (color.NRGBA{}) {
		opts.ShadowColor = color.NRGBA{0, 0, 0, 0xff}
	}
	if opts.ShadowOffset == (mgl32.Vec2{}) {
		opts.ShadowOffset = mgl32.Vec2{1, 1}
	}
	s := opts.Settings.Current()
	cfg := rendercache.ConfigFrom(s)
	cfg.Measurer = opts.Measurer(s.SubtitleSize)
	o := &Orchestrator{
		opts:  opts,
		cache: rendercache.New(opts.Index, cfg, opts.Compatible, opts.Mirror),
	}
	o.crosshairMode.Store(-1)
	return o
}

// Cache returns the render cache.
func (o *Orchestrator) Cache() *rendercache.Cache {
	return o.cache
}

// Mirror returns the legacy display surface.
func (o *Orchestrator) Mirror() *rendercache.Mirror {
	return o.opts.Mirror
}

// CurrentSpeaker returns the speaker of the subtitle picked for the
// display surface by the last call to UpdateSlots.
func (o *Orchestrator) CurrentSpeaker() slot.Handle {
	o.mx.Lock()
	defer o.mx.Unlock()
	return o.currentSpeaker
}

// OnCrosshairModeChanged records the game's crosshair mode.
func (o *Orchestrator) OnCrosshairModeChanged(mode int32) {
	o.crosshairMode.Store(mode)
}

// OnSubtitleRaised is called after the game appended a subtitle to arr.
// The subtitle is prepared for rendering and the header of the newest slot
// is reset: fully transparent until the next classification pass.
func (o *Orchestrator) OnSubtitleRaised(arr *slot.Array, raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	o.cache.Add(raw)
	arr.Lock()
	defer arr.Unlock()
	if n := len(arr.Slots); n > 0 {
		arr.Slots[n-1].Header.Reset(0)
	}
}

// OnSettingsChanged reloads the settings. If any setting affecting wrapped
// subtitles changed, the display surface is cleared and all subtitles are
// rebuilt. It reports whether a rebuild happened.
func (o *Orchestrator) OnSettingsChanged() bool {
	s, c, err := o.opts.Settings.Reload()
	if err != nil {
		return false
	}
	return o.apply(s, c)
}

// UpdateSettings replaces the settings, like OnSettingsChanged does after
// reloading.
func (o *Orchestrator) UpdateSettings(s settings.Settings) bool {
	s, c := o.opts.Settings.Set(s)
	return o.apply(s, c)
}

func (o *Orchestrator) apply(s settings.Settings, c settings.Changes) bool {
	if !c.Rebuild() {
		return false
	}
	o.cache.InvalidateDisplaySurfaceEntry("")
	cfg := rendercache.ConfigFrom(s)
	if c.SubtitleSize {
		cfg.Measurer = o.opts.Measurer(s.SubtitleSize)
	}
	o.cache.Reconfigure(cfg)
	return true
}

func (o *Orchestrator) engine(s settings.Settings) *visibility.Engine {
	return &visibility.Engine{
		Oracle: o.opts.Oracle,
		Params: visibility.Params{
			ObscuredAlpha: s.ObscuredAlpha,
			NearSq:        s.NearSq(),
			FarSq:         s.FarSq(),
			RequireLOS:    s.RequireLOS,
		},
	}
}

// UpdateSlots is the classification pass over the subtitle array.
//
// Subtitles which are not drawn as floating subtitles this pass (skipped or
// off screen) are candidates for the game's HUD; the first of them is shown
// there, if the respective display setting allows. All other subtitles get
// their opacity computed and are removed from the HUD.
// UpdateSlots reports whether a HUD candidate has been found.
func (o *Orchestrator) UpdateSlots(arr *slot.Array) bool {
	s := o.opts.Settings.Current()
	eng := o.engine(s)
	world := o.opts.World
	camera := world.CameraMode()
	found := false
	arr.Lock()
	defer arr.Unlock()
	for i := range arr.Slots {
		sl := &arr.Slots[i]
		actor, ok := world.Lookup(sl.Speaker)
		if !ok {
			continue
		}
		if !sl.Header.Is(slot.Initialized) {
			sl.Header.Reset(1)
		}
		sl.Header.Set(slot.Skip, false)
		if eng.IsBeyondRange(sl) {
			// still a HUD candidate below
			sl.Header.Set(slot.Skip, true)
		} else if !actor.IsActor() || (actor.IsViewer() && camera == FirstPerson) || camera == Dialogue {
			sl.Header.Set(slot.Skip, true)
		} else {
			eng.Classify(sl, actor)
		}
		if sl.Header.Is(slot.Skip) || sl.Header.Is(slot.Offscreen) {
			if !found {
				o.showOnHUD(s, sl, actor)
				found = true
			}
		} else {
			eng.UpdateAlpha(sl, actor)
			o.cache.InvalidateDisplaySurfaceEntry(o.cache.MirrorText(sl.Text))
		}
	}
	return found
}

func (o *Orchestrator) showOnHUD(s settings.Settings, sl *slot.Slot, actor Actor) {
	show := s.GeneralSubtitles
	if o.opts.World.DialogueMenuOpen() {
		show = s.DialogueSubtitles
	}
	if show {
		o.opts.Mirror.Show(rendercache.MirrorEntry{
			Speaker: actor.SpeakerName(),
			Text:    o.cache.MirrorText(sl.Text),
		})
	}
	o.mx.Lock()
	o.currentSpeaker = sl.Speaker
	o.mx.Unlock()
}

// --- Drawing ---------------------------------------------------------------

// minAlpha is the alpha below which nothing is drawn.
const minAlpha = 0.01

type screenParams struct {
	pos            mgl32.Vec2
	alphaPrimary   float32
	alphaSecondary float32
	spacing        float32
	speakerName    string
	lineHeight     float32
	color          color.NRGBA
	measurer       textlayout.Measurer
}

// OnPerFrameRender draws all floating subtitles of arr. Subtitles are drawn
// in reverse order, so that subtitles of higher priority end up on top.
// It returns the number of subtitles drawn.
func (o *Orchestrator) OnPerFrameRender(arr *slot.Array) int {
	s := o.opts.Settings.Current()
	if !s.GeneralSubtitles {
		return 0
	}
	m := o.cache.Config().Measurer
	params := screenParams{
		spacing:    s.Spacing,
		lineHeight: m.LineHeight(),
		color:      s.Color,
		measurer:   m,
	}
	crosshairTarget := o.opts.World.CrosshairTarget()
	mode := o.crosshairMode.Load()
	drawn := 0
	arr.RLock()
	defer arr.RUnlock()
	for i := len(arr.Slots) - 1; i >= 0; i-- {
		sl := &arr.Slots[i]
		actor, ok := o.opts.World.Lookup(sl.Speaker)
		if !ok || !actor.IsActor() {
			continue
		}
		h := sl.Header
		if h.Is(slot.Skip) || h.Is(slot.Offscreen) || (h.Is(slot.Obscured) && s.ObscuredAlpha == 0) {
			continue
		}
		anchor := AnchorPosition(actor, s.HeadOffset)
		pos, depth := o.opts.Projector.ProjectToScreen(anchor)
		if depth <= 0 {
			continue
		}
		alpha := h.Alpha()
		params.pos = pos
		params.alphaPrimary = s.AlphaPrimary * alpha
		params.alphaSecondary = s.AlphaSecondary * alpha
		params.speakerName = ""
		if s.ShowSpeakerName && (sl.Speaker != crosshairTarget || mode != CrosshairModeNoName) {
			params.speakerName = actor.SpeakerName()
		}
		o.drawDual(o.cache.GetOrBuild(sl.Text), params)
		drawn++
	}
	tracer().Debugf("frame: %d of %d subtitles drawn", drawn, len(arr.Slots))
	return drawn
}

// AnchorPosition is the point above a speaker's head subtitles are drawn
// from: the head node, or the actor's position raised by its height if
// there is no head node, plus an offset scaled by the actor's height.
func AnchorPosition(actor Actor, headOffset float32) mgl32.Vec3 {
	height := actor.Height()
	pos, ok := actor.HeadPosition()
	if !ok {
		pos = actor.Position().Add(mgl32.Vec3{0, 0, height})
	}
	return pos.Add(mgl32.Vec3{0, 0, headOffset * (height / 128)})
}

func (o *Orchestrator) drawDual(d *rendercache.DualSubtitle, p screenParams) {
	x, y := p.pos.X(), p.pos.Y()
	if !d.Secondary.Empty() {
		o.drawLines(d.Secondary, x, &y, p.alphaSecondary, p)
		y -= p.lineHeight * p.spacing
	}
	o.drawLines(d.Primary, x, &y, p.alphaPrimary, p)
	if p.speakerName != "" && p.alphaPrimary >= minAlpha {
		y -= p.lineHeight
		line := p.speakerName + ":"
		w := p.measurer.MeasureText(line).W
		o.drawShadowed(mgl32.Vec2{x - w/2, y}, o.opts.NameColor, p.alphaPrimary, line)
	}
}

// drawLines draws wrapped text upward from *y, centered at x.
func (o *Orchestrator) drawLines(w rendercache.WrappedText, x float32, y *float32, alpha float32, p screenParams) {
	if alpha < minAlpha {
		return
	}
	for _, line := range w.Lines {
		*y -= p.lineHeight
		o.drawShadowed(mgl32.Vec2{x - line.Extent.W/2, *y}, p.color, alpha, line.Text)
	}
}

func (o *Orchestrator) drawShadowed(pos mgl32.Vec2, c color.NRGBA, alpha float32, text string) {
	o.opts.Drawer.DrawText(pos.Add(o.opts.ShadowOffset), fade(o.opts.ShadowColor, alpha), text)
	o.opts.Drawer.DrawText(pos, fade(c, alpha), text)
}

func fade(c color.NRGBA, alpha float32) color.NRGBA {
	a := math.Round(float64(c.A) * float64(alpha))
	if a > 255 {
		a = 255
	} else if a < 0 {
		a = 0
	}
	c.A = uint8(a)
	return c
}
