package particlefx

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is the perspective camera every demo looks through.
type Camera struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Up       mgl32.Vec3
	// Fov is the vertical field of view in radians.
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		Position: mgl32.Vec3{0, 0, 5},
		LookAt:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      mgl32.DegToRad(75),
		Aspect:   1,
		Near:     0.1,
		Far:      1000,
	}
	c.SetAspect(width, height)
	return c
}

// SetAspect sets Aspect to width/height. Degenerate sizes keep the previous value.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.LookAt, c.Up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.Fov, c.Aspect, c.Near, c.Far)
}

func (c *Camera) ViewProj() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}
