package orchestrator

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/npillmayer/subtitles/engine/slot"
	"github.com/npillmayer/subtitles/engine/visibility"
)

// CameraMode is the state of the player camera.
type CameraMode int8

const (
	ThirdPerson CameraMode = iota
	FirstPerson
	Dialogue
)

// CrosshairModeNoName is the crosshair mode in which the game shows the
// name of the crosshair target itself.
const CrosshairModeNoName = 8

// Actor is a speaker of subtitles. References which are not actors report
// false for IsActor.
type Actor interface {
	visibility.Subject
	IsActor() bool
	HeadPosition() (mgl32.Vec3, bool) // world position of the head node, if any
	Position() mgl32.Vec3
	Height() float32 // actor height, or bounding box height
	SpeakerName() string
}

// World gives access to game state.
type World interface {
	Lookup(slot.Handle) (Actor, bool)
	CameraMode() CameraMode
	DialogueMenuOpen() bool
	CrosshairTarget() slot.Handle
}

// Projector projects world positions to the screen. depth is negative for
// positions behind the viewer and 0 in the viewer's plane; neither is drawn.
type Projector interface {
	ProjectToScreen(p mgl32.Vec3) (screen mgl32.Vec2, depth float32)
}

// Drawer draws a line of text, pos being its top left corner.
type Drawer interface {
	DrawText(pos mgl32.Vec2, c color.NRGBA, text string)
}
