// Package render is the contract between the demo core and a GPU backend.
//
// A backend provides an Engine bound to one window. Each demo asks the engine
// for its own Canvas, which owns every GPU resource the demo draws with, and
// releases it on dispose.
package render

import (
	"errors"
	"image"
)

// Mode selects how the vertex stage interprets the per-instance attribute.
type Mode uint32

const (
	// ModePositions draws the attribute as a world position written by the host.
	ModePositions Mode = 0
	// ModeGatherLaw treats the attribute as a direction and evaluates the
	// gather law on the GPU from the uniforms.
	ModeGatherLaw Mode = 1
)

// Shape is the sprite cut-out used by the fragment stage.
type Shape uint32

const (
	ShapeDisc Shape = iota
	ShapeSquare
	ShapeTriangle
)

// ErrReleased is returned when drawing on a canvas that was already released.
var ErrReleased = errors.New("render: canvas released")

// Uniforms mirrors the uniform block in the WGSL and GLSL point shaders.
// Layout is std140/WGSL compatible: 240 bytes, no implicit padding.
type Uniforms struct {
	ViewProj   [16]float32
	Model      [16]float32
	ColorA     [4]float32
	ColorB     [4]float32
	Resolution [2]float32
	Pointer    [2]float32

	Time             float32
	PointSize        float32
	FillDuration     float32
	HoldDuration     float32
	DisperseDuration float32
	MinSize          float32
	MaxSize          float32
	MinOpacity       float32
	MaxOpacity       float32
	Drift            float32
	MaxOffset        float32
	Mode             Mode
	Shape            Shape
	_                [3]uint32
}

// Frame is everything a canvas needs to draw one frame.
type Frame struct {
	Particles Uniforms
	// Anchor is drawn as a single sprite at the origin of its model transform.
	// Nil skips the anchor pass.
	Anchor *Uniforms
}

// CanvasDescriptor configures a new canvas.
type CanvasDescriptor struct {
	Label string
	Mode  Mode
	// Attributes holds three float32 per instance: positions for
	// ModePositions, directions for ModeGatherLaw.
	Attributes []float32
	Additive   bool
	Anchor     bool
	ClearColor [4]float64
	// Background is stretched over the whole surface when non-nil.
	Background *image.RGBA
}

// Count is the number of particle instances described.
func (d CanvasDescriptor) Count() int { return len(d.Attributes) / 3 }

// Canvas is a demo's render surface.
type Canvas interface {
	// Resize updates size-dependent state after the surface changed size.
	Resize(width, height int)
	// WriteAttributes replaces the per-instance data; len must match the descriptor.
	WriteAttributes(data []float32)
	// Draw renders and presents one frame.
	Draw(frame Frame) error
	// Release frees every GPU resource of the canvas. Safe to call twice.
	Release()
}

// Engine owns the device and the window surface shared by all canvases.
type Engine interface {
	Name() string
	NewCanvas(desc CanvasDescriptor) (Canvas, error)
	// Resize reconfigures the window surface.
	Resize(width, height int)
	Release()
}
