package particlefx

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/particlefx/particles"
	"github.com/gekko3d/particlefx/render"
)

var ErrUnknownPreset = errors.New("unknown demo preset")

type Variant int

const (
	// VariantCPU steps positions on the host and uploads them when dirty.
	VariantCPU Variant = iota
	// VariantShader uploads directions once and advances only uTime.
	VariantShader
)

func (v Variant) String() string {
	if v == VariantShader {
		return "shader"
	}
	return "cpu"
}

// Preset fully describes one demo.
type Preset struct {
	Name    string
	Count   int
	Seeding particles.Seeding

	// Updater steps the buffer every frame; nil leaves positions untouched.
	Updater particles.Updater

	// Shader makes the demo shader-driven; its values configure the animator.
	Shader UniformValues

	// Anchor is copied into each demo built from the preset.
	Anchor *Anchor

	// Spin is the model rotation speed about x, y and z in rad/s.
	Spin       mgl32.Vec3
	Color      mgl32.Vec4
	PointSize  float32
	Shape      render.Shape
	Additive   bool
	ClearColor [4]float64

	// Background is an image path drawn behind the particles.
	Background string
}

func (p Preset) Variant() Variant {
	if p.Shader != nil {
		return VariantShader
	}
	return VariantCPU
}

// SwarmPreset is a jittered cube of particles pulled towards an orbiting anchor.
func SwarmPreset() Preset {
	return Preset{
		Name:  "swarm",
		Count: 1000,
		Seeding: particles.Seeding{
			Layout: particles.LayoutCube,
			Extent: 5,
			Field:  particles.FieldJitter,
			Jitter: 0.02,
		},
		Updater: particles.Attraction{K: 0.02},
		Anchor: &Anchor{
			Radius: 2,
			Shape:  render.ShapeDisc,
			Size:   1,
			Color:  mgl32.Vec4{1, 0, 0, 1},
		},
		Color:     mgl32.Vec4{1, 1, 1, 1},
		PointSize: 0.05,
	}
}

func FogPreset() Preset {
	return Preset{
		Name:  "fog",
		Count: 1000,
		Seeding: particles.Seeding{
			Layout: particles.LayoutCube,
			Extent: 4,
		},
		Updater:   particles.Static{},
		Spin:      mgl32.Vec3{0, 0.06, 0},
		Color:     mgl32.Vec4{1, 1, 1, 0.5},
		PointSize: 0.1,
	}
}

func BurstPreset() Preset {
	return Preset{
		Name:  "burst",
		Count: 500,
		Seeding: particles.Seeding{
			Layout: particles.LayoutOrigin,
			Field:  particles.FieldSpherical,
		},
		Updater:   particles.Radial{Speed: 2},
		Color:     mgl32.Vec4{1, 0xaa / 255.0, 0, 1},
		PointSize: 0.2,
	}
}

func OrbitPreset() Preset {
	return Preset{
		Name:  "orbit",
		Count: 800,
		Seeding: particles.Seeding{
			Layout:    particles.LayoutRing,
			RadiusMin: 2,
			RadiusMax: 3,
			Thickness: 0.5,
		},
		Updater:   particles.Static{},
		Spin:      mgl32.Vec3{0, 0, 0.3},
		Color:     mgl32.Vec4{0, 1, 0, 1},
		PointSize: 0.1,
	}
}

// GatherPreset animates 100k particles on the GPU: they fly in from the
// screen edges, hold around the centre and disperse again.
func GatherPreset() Preset {
	return Preset{
		Name:  "gather",
		Count: 102400,
		Seeding: particles.Seeding{
			Layout: particles.LayoutOrigin,
			Field:  particles.FieldSpherical,
		},
		Shader: UniformValues{
			UniformFillDuration:     float32(2.5),
			UniformHoldDuration:     float32(1.5),
			UniformDisperseDuration: float32(2),
			UniformMinSize:          float32(0.005),
			UniformMaxSize:          float32(0.03),
			UniformMinOpacity:       float32(0),
			UniformMaxOpacity:       float32(0.85),
			UniformColorA:           mgl32.Vec3{0.35, 0.6, 1},
			UniformColorB:           mgl32.Vec3{1, 0.45, 0.8},
			UniformDrift:            float32(0.05),
			UniformMaxOffset:        float32(6),
		},
		Additive:   true,
		ClearColor: [4]float64{0.01, 0.01, 0.03, 1},
	}
}

// DefaultPresets is the demo rotation in order.
func DefaultPresets() []Preset {
	return []Preset{SwarmPreset(), FogPreset(), BurstPreset(), OrbitPreset(), GatherPreset()}
}

func PresetByName(name string) (Preset, error) {
	for _, p := range DefaultPresets() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
