package particlefx

import (
	"errors"

	"github.com/gekko3d/particlefx/render"
)

type fakeCanvas struct {
	desc     render.CanvasDescriptor
	writes   int
	lastData []float32
	draws    []render.Frame
	resizes  [][2]int
	released int
}

func (c *fakeCanvas) Resize(width, height int) {
	c.resizes = append(c.resizes, [2]int{width, height})
}

func (c *fakeCanvas) WriteAttributes(data []float32) {
	c.writes++
	c.lastData = append(c.lastData[:0], data...)
}

func (c *fakeCanvas) Draw(frame render.Frame) error {
	if c.released > 0 {
		return render.ErrReleased
	}
	c.draws = append(c.draws, frame)
	return nil
}

func (c *fakeCanvas) Release() { c.released++ }

type fakeEngine struct {
	canvases []*fakeCanvas
	// failOn makes NewCanvas fail for the preset with this label.
	failOn   string
	resizes  [][2]int
	released int
}

func (e *fakeEngine) Name() string { return "fake" }

func (e *fakeEngine) NewCanvas(desc render.CanvasDescriptor) (render.Canvas, error) {
	if desc.Label == e.failOn {
		return nil, errors.New("no device")
	}
	c := &fakeCanvas{desc: desc}
	e.canvases = append(e.canvases, c)
	return c, nil
}

func (e *fakeEngine) Resize(width, height int) {
	e.resizes = append(e.resizes, [2]int{width, height})
}

func (e *fakeEngine) Release() { e.released++ }

func (e *fakeEngine) last() *fakeCanvas {
	if len(e.canvases) == 0 {
		return nil
	}
	return e.canvases[len(e.canvases)-1]
}

// live counts canvases created and not yet released.
func (e *fakeEngine) live() int {
	n := 0
	for _, c := range e.canvases {
		if c.released == 0 {
			n++
		}
	}
	return n
}
