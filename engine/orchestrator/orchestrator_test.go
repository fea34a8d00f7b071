package orchestrator

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/subtitles/core/lang"
	"github.com/npillmayer/subtitles/core/locate"
	"github.com/npillmayer/subtitles/core/settings"
	"github.com/npillmayer/subtitles/engine/localization"
	"github.com/npillmayer/subtitles/engine/rendercache"
	"github.com/npillmayer/subtitles/engine/slot"
	"github.com/npillmayer/subtitles/engine/textlayout"
	"github.com/npillmayer/subtitles/engine/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes -----------------------------------------------------------------

type fakeActor struct {
	name    string
	actor   bool
	viewer  bool
	dead    bool
	voice   float32
	head    *mgl32.Vec3
	pos     mgl32.Vec3
	height  float32
	class   visibility.Classification
	fade    float32
	hasFade bool
}

func (a *fakeActor) IsViewer() bool { return a.viewer }
func (a *fakeActor) FadeAlpha() (float32, bool) { return a.fade, a.hasFade }
func (a *fakeActor) IsDead() bool { return a.dead }
func (a *fakeActor) VoiceTimer() float32 { return a.voice }
func (a *fakeActor) IsActor() bool { return a.actor }
func (a *fakeActor) Position() mgl32.Vec3 { return a.pos }
func (a *fakeActor) Height() float32 { return a.height }
func (a *fakeActor) SpeakerName() string { return a.name }
func (a *fakeActor) HeadPosition() (mgl32.Vec3, bool) {
	if a.head == nil {
		return mgl32.Vec3{}, false
	}
	return *a.head, true
}

type fakeWorld struct {
	actors    map[slot.Handle]*fakeActor
	camera    CameraMode
	dialogue  bool
	crosshair slot.Handle
}

func (w *fakeWorld) Lookup(h slot.Handle) (Actor, bool) {
	a, ok := w.actors[h]
	if !ok {
		return nil, false
	}
	return a, true
}
func (w *fakeWorld) CameraMode() CameraMode { return w.camera }
func (w *fakeWorld) DialogueMenuOpen() bool { return w.dialogue }
func (w *fakeWorld) CrosshairTarget() slot.Handle { return w.crosshair }

// flatProjector maps (x,y,z) to screen (x, 1000-z); y is the depth.
type flatProjector struct{}

func (flatProjector) ProjectToScreen(p mgl32.Vec3) (mgl32.Vec2, float32) {
	return mgl32.Vec2{p.X(), 1000 - p.Z()}, p.Y()
}

type drawCall struct {
	pos   mgl32.Vec2
	color color.NRGBA
	text  string
}

type recorder struct {
	calls []drawCall
}

func (r *recorder) DrawText(pos mgl32.Vec2, c color.NRGBA, text string) {
	r.calls = append(r.calls, drawCall{pos, c, text})
}

func (r *recorder) texts() []string {
	var t []string
	for i := 1; i < len(r.calls); i += 2 { // skip shadows
		t = append(t, r.calls[i].text)
	}
	return t
}

var oracle = visibility.OracleFunc(func(s visibility.Subject) visibility.Classification {
	return s.(*fakeActor).class
})

const (
	lydia  slot.Handle = 1
	guard  slot.Handle = 2
	player slot.Handle = 3
	chair  slot.Handle = 4
)

func testWorld() *fakeWorld {
	head := mgl32.Vec3{0, 10, 100}
	return &fakeWorld{actors: map[slot.Handle]*fakeActor{
		lydia:  {name: "Lydia", actor: true, head: &head, height: 128, class: visibility.Visible},
		guard:  {name: "Guard", actor: true, pos: mgl32.Vec3{50, 10, 0}, height: 128, class: visibility.Offscreen},
		player: {name: "Dragonborn", actor: true, viewer: true, height: 128},
		chair:  {name: "Chair", height: 10},
	}}
}

func testIndex() *localization.Index {
	mod := locate.Mod{Name: "skyrim"}
	return localization.BuildFromEntries([]localization.Entry{
		{Mod: mod, Language: lang.English, StringID: 1, Text: "I am sworn to carry your burdens."},
		{Mod: mod, Language: lang.German, StringID: 1, Text: "Ich trage eure Lasten."},
		{Mod: mod, Language: lang.English, StringID: 2, Text: "Let me guess..."},
		{Mod: mod, Language: lang.German, StringID: 2, Text: "Lass mich raten..."},
	}, lang.English)
}

type fixture struct {
	o      *Orchestrator
	world  *fakeWorld
	drawer *recorder
	arr    *slot.Array
	ini    string
}

func setup(t *testing.T, ini string) *fixture {
	path := filepath.Join(t.TempDir(), "subtitles.ini")
	require.NoError(t, os.WriteFile(path, []byte(ini), 0644))
	store, err := settings.NewStore(path)
	require.NoError(t, err)
	f := &fixture{world: testWorld(), drawer: &recorder{}, arr: &slot.Array{}, ini: path}
	f.o = New(Options{
		World:     f.world,
		Projector: flatProjector{},
		Drawer:    f.drawer,
		Oracle:    oracle,
		Index:     testIndex(),
		Settings:  store,
		Measurer: func(size float32) textlayout.Measurer {
			return textlayout.NewMonospace(10, size)
		},
	})
	return f
}

func (f *fixture) raise(speaker slot.Handle, text string, distSq float32) {
	f.arr.Push(slot.Slot{Speaker: speaker, Text: text, DistanceSq: distSq, Priority: slot.Normal})
	f.o.OnSubtitleRaised(f.arr, text)
}

// --- Tests -----------------------------------------------------------------

func TestSubtitleRaised(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.frame")
	defer teardown()
	//
	f := setup(t, "")
	f.o.OnSubtitleRaised(f.arr, "   ")
	assert.Equal(t, 0, f.o.Cache().Len())
	f.arr.Push(slot.Slot{Speaker: lydia, Text: "x"})
	f.arr.Slots[0].Header = slot.Header{0x12, 0x34, 0x56, 0x7f} // junk
	f.o.OnSubtitleRaised(f.arr, "x")
	assert.Equal(t, 1, f.o.Cache().Len())
	h := f.arr.Slots[0].Header
	assert.Equal(t, slot.Initialized, h.Flags())
	assert.Equal(t, float32(0), h.Alpha())
}

func TestUpdateSlots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.frame")
	defer teardown()
	//
	f := setup(t, "")
	f.arr.Push(slot.Slot{Speaker: lydia, Text: "I am sworn to carry your burdens.", DistanceSq: 100})
	f.raise(guard, "Let me guess...", 100)
	f.raise(chair, "creak", 100)
	f.raise(lydia, "far away", 3000*3000)
	forced := slot.Slot{Speaker: lydia, Text: "forced", DistanceSq: 3000 * 3000, Priority: slot.Force}
	f.arr.Push(forced)
	f.raise(99, "unknown speaker", 100)
	//
	found := f.o.UpdateSlots(f.arr)
	assert.True(t, found)
	s := f.arr.Slots
	assert.True(t, s[0].Header.Is(slot.Initialized), "uninitialized slots are initialized")
	assert.Equal(t, float32(1), s[0].Header.Alpha())
	assert.True(t, s[1].Header.Is(slot.Offscreen))
	assert.True(t, s[2].Header.Is(slot.Skip), "non-actors are skipped")
	assert.True(t, s[3].Header.Is(slot.Skip), "beyond far distance")
	// Force only exempts from the range skip; the distance fade still ends at 0
	// beyond far, so such a subtitle stays invisible.
	assert.False(t, s[4].Header.Is(slot.Skip), "forced subtitles are never too far")
	assert.Equal(t, float32(0), s[4].Header.Alpha())
	assert.Equal(t, slot.Initialized, s[5].Header.Flags(), "unknown speakers are left alone")
	//
	e, ok := f.o.Mirror().Current()
	require.True(t, ok)
	assert.Equal(t, rendercache.MirrorEntry{Speaker: "Guard", Text: "Let me guess..."}, e,
		"first off-screen subtitle goes to the HUD")
	assert.Equal(t, guard, f.o.CurrentSpeaker())
}

func TestBeyondRangeIsHUDFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.frame")
	defer teardown()
	//
	f := setup(t, "")
	f.raise(lydia, "I am sworn to carry your burdens.", 3000*3000)
	assert.True(t, f.o.UpdateSlots(f.arr))
	h := f.arr.Slots[0].Header
	assert.True(t, h.Is(slot.Skip))
	assert.Equal(t, float32(0), h.Alpha(), "no alpha computed for far subtitles")
	e, ok := f.o.Mirror().Current()
	require.True(t, ok)
	assert.Equal(t, rendercache.MirrorEntry{Speaker: "Lydia", Text: "I am sworn to carry your burdens."}, e)
	assert.Equal(t, 0, f.o.OnPerFrameRender(f.arr))
}

func TestHUDGating(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.frame")
	defer teardown()
	//
	f := setup(t, "[Interface]\nbDialogueSubtitles = 0\n")
	f.world.dialogue = true
	f.raise(guard, "Let me guess...", 100)
	assert.True(t, f.o.UpdateSlots(f.arr))
	_, ok := f.o.Mirror().Current()
	assert.False(t, ok, "dialogue subtitles are switched off")
	f.world.dialogue = false
	f.o.UpdateSlots(f.arr)
	_, ok = f.o.Mirror().Current()
	assert.True(t, ok)
	//
	// speaker comes into view: HUD entry is cleared
	f.world.actors[guard].class = visibility.Visible
	assert.False(t, f.o.UpdateSlots(f.arr))
	_, ok = f.o.Mirror().Current()
	assert.False(t, ok)
}

func TestCameraSkips(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.frame")
	defer teardown()
	//
	f := setup(t, "")
	f.raise(player, "I need to go.", 0)
	f.raise(lydia, "I am sworn to carry your burdens.", 100)
	f.world.camera = FirstPerson
	f.o.UpdateSlots(f.arr)
	assert.True(t, f.arr.Slots[0].Header.Is(slot.Skip))
	assert.False(t, f.arr.Slots[1].Header.Is(slot.Skip))
	f.world.camera = ThirdPerson
	f.o.UpdateSlots(f.arr)
	assert.False(t, f.arr.Slots[0].Header.Is(slot.Skip), "player subtitles float in third person")
	f.world.camera = Dialogue
	f.o.UpdateSlots(f.arr)
	assert.True(t, f.arr.Slots[0].Header.Is(slot.Skip))
	assert.True(t, f.arr.Slots[1].Header.Is(slot.Skip))
}

func TestRender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.frame")
	defer teardown()
	//
	f := setup(t, "[Subtitles]\nfSubtitleSize = 20\nfHeadOffset = 0\n")
	f.raise(lydia, "I am sworn to carry your burdens.", 100)
	f.raise(guard, "Let me guess...", 100)
	f.o.UpdateSlots(f.arr)
	n := f.o.OnPerFrameRender(f.arr)
	assert.Equal(t, 1, n, "off-screen guard is not drawn")
	assert.Equal(t, []string{"I am sworn to carry your burdens.", "Lydia:"}, f.drawer.texts())
	require.Len(t, f.drawer.calls, 4)
	line := f.drawer.calls[1]
	// head at z=100 → screen y 900; one line up; centered at x=0
	assert.Equal(t, mgl32.Vec2{-165, 880}, line.pos)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, line.color)
	shadow := f.drawer.calls[0]
	assert.Equal(t, mgl32.Vec2{-164, 881}, shadow.pos)
	assert.Equal(t, uint8(255), shadow.color.A)
	assert.Equal(t, float32(860), f.drawer.calls[3].pos.Y(), "name above the text")
}

func TestRenderOrderAndSuppression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.frame")
	defer teardown()
	//
	f := setup(t, "")
	f.world.actors[guard].class = visibility.Visible
	f.raise(lydia, "first", 100)
	f.raise(guard, "second", 100)
	f.o.UpdateSlots(f.arr)
	f.world.crosshair = guard
	f.o.OnCrosshairModeChanged(CrosshairModeNoName)
	f.o.OnPerFrameRender(f.arr)
	assert.Equal(t, []string{"second", "first", "Lydia:"}, f.drawer.texts(),
		"reverse order, no name for the crosshair target")
	//
	f.drawer.calls = nil
	f.world.actors[lydia].head = &mgl32.Vec3{0, -5, 100} // behind the camera
	f.o.OnPerFrameRender(f.arr)
	assert.Equal(t, []string{"second"}, f.drawer.texts())
	//
	f.drawer.calls = nil
	f.world.actors[lydia].head = &mgl32.Vec3{0, 0, 100} // in the camera plane
	f.o.OnPerFrameRender(f.arr)
	assert.Equal(t, []string{"second"}, f.drawer.texts())
}

func TestRenderObscured(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.frame")
	defer teardown()
	//
	f := setup(t, "[Subtitles]\nfObscuredAlpha = 0\nbShowSpeakerName = 0\n")
	f.world.actors[lydia].class = visibility.Obscured
	f.raise(lydia, "hidden", 100)
	f.o.UpdateSlots(f.arr)
	assert.True(t, f.arr.Slots[0].Header.Is(slot.Obscured))
	assert.Equal(t, 0, f.o.OnPerFrameRender(f.arr))
	//
	f = setup(t, "[Subtitles]\nfObscuredAlpha = 0.005\nbShowSpeakerName = 0\n")
	f.world.actors[lydia].class = visibility.Obscured
	f.raise(lydia, "hidden", 100)
	f.o.UpdateSlots(f.arr)
	assert.Equal(t, 1, f.o.OnPerFrameRender(f.arr))
	assert.Empty(t, f.drawer.calls, "alpha below threshold is not drawn")
}

func TestDualRender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.frame")
	defer teardown()
	//
	f := setup(t, "[Subtitles]\nbShowDualSubs = 1\nsSecondaryLanguage = DE\nbShowSpeakerName = 0\nfAlphaSecondary = 0.5\n")
	f.raise(lydia, "I am sworn to carry your burdens.", 100)
	f.o.UpdateSlots(f.arr)
	f.o.OnPerFrameRender(f.arr)
	assert.Equal(t, []string{"Ich trage eure Lasten.", "I am sworn to carry your burdens."}, f.drawer.texts())
	assert.Equal(t, uint8(128), f.drawer.calls[1].color.A)
	// anchor at screen y 885; primary above secondary by half a line
	assert.Equal(t, float32(885-27), f.drawer.calls[1].pos.Y())
	assert.Equal(t, float32(885-27-13.5-27), f.drawer.calls[3].pos.Y())
}

func TestSettingsChanged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subtitles.frame")
	defer teardown()
	//
	f := setup(t, "[Subtitles]\niPrimaryMaxChars = 80\n")
	f.raise(guard, "Let me guess...", 100)
	f.o.UpdateSlots(f.arr)
	before := f.o.Cache().GetOrBuild("Let me guess...")
	assert.False(t, f.o.OnSettingsChanged(), "nothing changed")
	assert.Same(t, before, f.o.Cache().GetOrBuild("Let me guess..."))
	_, ok := f.o.Mirror().Current()
	assert.True(t, ok, "HUD is kept without rebuild")
	//
	require.NoError(t, os.WriteFile(f.ini, []byte("[Subtitles]\nsPrimaryLanguage = DE\n"), 0644))
	assert.True(t, f.o.OnSettingsChanged())
	after := f.o.Cache().GetOrBuild("Let me guess...")
	assert.NotSame(t, before, after)
	assert.Equal(t, "Lass mich raten...", after.Primary.FullText)
	_, ok = f.o.Mirror().Current()
	assert.False(t, ok, "HUD is cleared on rebuild")
	//
	s := f.o.opts.Settings.Current()
	s.SubtitleSize = 40
	assert.True(t, f.o.UpdateSettings(s))
	assert.Equal(t, float32(40), f.o.Cache().Config().Measurer.LineHeight())
}

func TestAnchorPosition(t *testing.T) {
	head := mgl32.Vec3{1, 2, 3}
	a := &fakeActor{head: &head, height: 256}
	assert.Equal(t, mgl32.Vec3{1, 2, 33}, AnchorPosition(a, 15))
	a = &fakeActor{pos: mgl32.Vec3{1, 2, 3}, height: 128}
	assert.Equal(t, mgl32.Vec3{1, 2, 146}, AnchorPosition(a, 15))
}
