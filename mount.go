package particlefx

import (
	"errors"

	"github.com/gekko3d/particlefx/render"
)

var ErrMountOccupied = errors.New("mount already holds a surface")

// Mount is the display container demos attach their canvas to. It holds at
// most one surface; a demo must detach before the next one can attach.
type Mount struct {
	surface       render.Canvas
	owner         string
	width, height int
}

func NewMount(width, height int) *Mount {
	return &Mount{width: width, height: height}
}

func (m *Mount) Attach(owner string, c render.Canvas) error {
	if m.surface != nil {
		return ErrMountOccupied
	}
	m.surface = c
	m.owner = owner
	return nil
}

// Detach removes c if it is the attached surface and reports whether it was.
func (m *Mount) Detach(c render.Canvas) bool {
	if m.surface == nil || m.surface != c {
		return false
	}
	m.surface = nil
	m.owner = ""
	return true
}

// Attached is the number of attached surfaces, 0 or 1.
func (m *Mount) Attached() int {
	if m.surface == nil {
		return 0
	}
	return 1
}

// Owner names the demo whose surface is attached, empty when none is.
func (m *Mount) Owner() string { return m.owner }

func (m *Mount) Size() (int, int) { return m.width, m.height }

// SetSize records the framebuffer size and resizes the attached surface.
func (m *Mount) SetSize(width, height int) {
	m.width, m.height = width, height
	if m.surface != nil {
		m.surface.Resize(width, height)
	}
}
