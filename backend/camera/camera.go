/*
Package camera projects world positions to screen coordinates.

The world is z-up, as in the game. Screen coordinates have their origin at
the top left corner, with y growing downward.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera. It implements the projector of the frame
// orchestrator.
type Camera struct {
	Eye, Target   mgl32.Vec3
	FovY          float32 // vertical field of view, in degrees
	Width, Height float32 // viewport, in pixels
	Near, Far     float32
	viewProj      mgl32.Mat4
}

// New creates a camera at eye looking at target.
func New(eye, target mgl32.Vec3, fovY, width, height float32) *Camera {
	c := &Camera{
		Eye:    eye,
		Target: target,
		FovY:   fovY,
		Width:  width,
		Height: height,
		Near:   1,
		Far:    100000,
	}
	c.Update()
	return c
}

// Update recomputes the projection after fields have been changed.
func (c *Camera) Update() {
	proj := mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Width/c.Height, c.Near, c.Far)
	view := mgl32.LookAtV(c.Eye, c.Target, mgl32.Vec3{0, 0, 1})
	c.viewProj = proj.Mul4(view)
}

// ProjectToScreen returns the screen position of p and its distance in front
// of the camera. Positions behind the camera have negative depth; positions
// in the camera plane have depth 0 and no meaningful screen position.
func (c *Camera) ProjectToScreen(p mgl32.Vec3) (mgl32.Vec2, float32) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	depth := clip.W()
	if depth <= 0 {
		return mgl32.Vec2{}, depth
	}
	x, y := clip.X()/depth, clip.Y()/depth
	return mgl32.Vec2{
		(x + 1) / 2 * c.Width,
		(1 - y) / 2 * c.Height,
	}, depth
}
