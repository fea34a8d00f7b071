package main

import (
	"image/color"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/npillmayer/subtitles/backend/camera"
	"github.com/npillmayer/subtitles/backend/gfx"
	"github.com/npillmayer/subtitles/core"
	"github.com/npillmayer/subtitles/core/font/fontregistry"
	"github.com/npillmayer/subtitles/core/settings"
	"github.com/npillmayer/subtitles/engine/localization"
	"github.com/npillmayer/subtitles/engine/orchestrator"
	"github.com/npillmayer/subtitles/engine/rendercache"
	"github.com/npillmayer/subtitles/engine/slot"
	"github.com/npillmayer/subtitles/engine/visibility"
	"github.com/pterm/pterm"
)

const (
	previewWidth  = 960
	previewHeight = 540
	speaker       = slot.Handle(1)
)

// stageActor is the single speaker of a preview, standing in front of the
// camera.
type stageActor struct{}

func (stageActor) IsViewer() bool { return false }
func (stageActor) FadeAlpha() (float32, bool) { return 1, false }
func (stageActor) IsDead() bool { return false }
func (stageActor) VoiceTimer() float32 { return 0 }
func (stageActor) IsActor() bool { return true }
func (stageActor) HeadPosition() (mgl32.Vec3, bool) { return mgl32.Vec3{}, false }
func (stageActor) Position() mgl32.Vec3 { return mgl32.Vec3{0, 400, -160} }
func (stageActor) Height() float32 { return 128 }
func (stageActor) SpeakerName() string { return "Speaker" }

// stage is a world with one actor and a third person camera.
type stage struct{}

func (stage) Lookup(h slot.Handle) (orchestrator.Actor, bool) {
	return stageActor{}, h == speaker
}
func (stage) CameraMode() orchestrator.CameraMode { return orchestrator.ThirdPerson }
func (stage) DialogueMenuOpen() bool { return false }
func (stage) CrosshairTarget() slot.Handle { return 0 }

// preview runs the frame orchestrator against a raster picture.
type preview struct {
	fontname string
	store    *settings.Store
	drawer   *switchDrawer
	orch     *orchestrator.Orchestrator
}

// switchDrawer forwards to the picture currently rendered.
type switchDrawer struct {
	pic *gfx.Picture
}

func (sd *switchDrawer) DrawText(pos mgl32.Vec2, c color.NRGBA, text string) {
	if sd.pic != nil {
		sd.pic.DrawText(pos, c, text)
	}
}

func newPreview(index *localization.Index, store *settings.Store, fontname string) *preview {
	pv := &preview{fontname: fontname, store: store, drawer: &switchDrawer{}}
	cam := camera.New(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, 60, previewWidth, previewHeight)
	pv.orch = orchestrator.New(orchestrator.Options{
		World:     stage{},
		Projector: cam,
		Drawer:    pv.drawer,
		Oracle: visibility.OracleFunc(func(visibility.Subject) visibility.Classification {
			return visibility.Visible
		}),
		Index:    index,
		Settings: store,
		Mirror: rendercache.NewMirror(func(e rendercache.MirrorEntry, shown bool) {
			tracer().Debugf("HUD shown=%v: %s %q", shown, e.Speaker, e.Text)
		}),
		Measurer: orchestrator.FontMeasurer(fontname),
	})
	return pv
}

// render draws a subtitle spoken by the stage actor and writes it to a PNG file.
func (pv *preview) render(filename, raw string) error {
	size := pv.store.Current().SubtitleSize
	tc, err := fontregistry.GlobalRegistry().Resolve(pv.fontname, float64(size))
	if tc == nil {
		return err
	}
	pic := gfx.NewPicture(filename, previewWidth, previewHeight, tc, color.NRGBA{40, 40, 48, 255})
	pv.drawer.pic = pic
	defer func() { pv.drawer.pic = nil }()
	//
	arr := &slot.Array{}
	arr.Push(slot.Slot{Speaker: speaker, Text: raw, DistanceSq: 400 * 400, Priority: slot.Normal})
	pv.orch.OnSubtitleRaised(arr, raw)
	pv.orch.UpdateSlots(arr)
	pv.orch.OnPerFrameRender(arr)
	//
	f, err := os.Create(filename)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", filename)
	}
	defer f.Close()
	if err := pic.Shipout(f); err != nil {
		return err
	}
	pterm.Success.Printfln("%d lines of text rendered to %s", pic.Drawn(), filename)
	return nil
}
