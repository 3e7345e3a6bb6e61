package particlefx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/particlefx/render"
)

type AnchorPath int

const (
	// AnchorPathSinCos places the anchor at (sin t, cos t)·r.
	AnchorPathSinCos AnchorPath = iota
	// AnchorPathCosSin places the anchor at (cos t, sin t)·r.
	AnchorPathCosSin
)

var anchorShapes = []render.Shape{render.ShapeDisc, render.ShapeSquare, render.ShapeTriangle}

// Anchor is the tracked point the swarm is attracted to. It orbits the
// origin in the z = 0 plane.
type Anchor struct {
	Position mgl32.Vec3
	Radius   float32
	Path     AnchorPath
	Shape    render.Shape
	Size     float32
	Color    mgl32.Vec4
}

// Update moves the anchor to its position at elapsed seconds.
func (a *Anchor) Update(elapsed float32) {
	s := float32(math.Sin(float64(elapsed))) * a.Radius
	c := float32(math.Cos(float64(elapsed))) * a.Radius
	if a.Path == AnchorPathCosSin {
		s, c = c, s
	}
	a.Position = mgl32.Vec3{s, c, 0}
}

func (a *Anchor) TogglePath() {
	if a.Path == AnchorPathSinCos {
		a.Path = AnchorPathCosSin
	} else {
		a.Path = AnchorPathSinCos
	}
}

// CycleShape advances disc → square → triangle → disc.
func (a *Anchor) CycleShape() {
	for i, s := range anchorShapes {
		if s == a.Shape {
			a.Shape = anchorShapes[(i+1)%len(anchorShapes)]
			return
		}
	}
	a.Shape = anchorShapes[0]
}

func (a *Anchor) Model() mgl32.Mat4 {
	return mgl32.Translate3D(a.Position[0], a.Position[1], a.Position[2])
}
