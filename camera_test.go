package particlefx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera(1280, 720)

	assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Position)
	assert.InDelta(t, mgl32.DegToRad(75), c.Fov, 1e-6)
	assert.Equal(t, float32(0.1), c.Near)
	assert.Equal(t, float32(1000), c.Far)
	assert.Equal(t, float32(1280)/float32(720), c.Aspect)
}

func TestCamera_SetAspect(t *testing.T) {
	c := NewCamera(100, 100)
	for _, size := range [][2]int{{1920, 1080}, {300, 900}, {1, 1}} {
		c.SetAspect(size[0], size[1])
		assert.Equal(t, float32(size[0])/float32(size[1]), c.Aspect)
	}

	c.SetAspect(0, 600)
	c.SetAspect(800, -1)
	assert.Equal(t, float32(1), c.Aspect, "degenerate sizes keep the last aspect")
}

func TestCamera_ViewProjMapsOriginToCentre(t *testing.T) {
	c := NewCamera(800, 600)
	clip := c.ViewProj().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())

	assert.InDelta(t, 0, ndc.X(), 1e-6)
	assert.InDelta(t, 0, ndc.Y(), 1e-6)
	assert.Greater(t, clip.W(), float32(0), "origin is in front of the camera")
}
