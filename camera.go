package lightlab

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraComponent is a perspective camera looking at Target.
type CameraComponent struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fov      float32 // vertical, degrees
	Aspect   float32
	Near     float32
	Far      float32
}

func NewPerspectiveCamera(fov, aspect, near, far float32) CameraComponent {
	return CameraComponent{
		Up:     mgl32.Vec3{0, 1, 0},
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

func (c *CameraComponent) View() mgl32.Mat4 {
	up := c.Up
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.LookAtV(c.Position, c.Target, up)
}

func (c *CameraComponent) Projection() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

func (c *CameraComponent) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Resize recomputes the aspect ratio for a width x height surface.
// Degenerate sizes (minimized windows) leave the camera untouched.
func (c *CameraComponent) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}
