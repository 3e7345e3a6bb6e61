package particles

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Buffer is a fixed-length particle store laid out the way the GPU consumes it:
// three float32 components per particle, tightly packed.
// Directions is sampled once at seed time and never written afterwards.
type Buffer struct {
	Positions  []float32
	Directions []float32

	count int
	dirty bool
}

// NewBuffer allocates a zeroed buffer for count particles.
func NewBuffer(count int) *Buffer {
	if count < 0 {
		count = 0
	}
	return &Buffer{
		Positions:  make([]float32, count*3),
		Directions: make([]float32, count*3),
		count:      count,
		dirty:      true,
	}
}

func (b *Buffer) Len() int { return b.count }

func (b *Buffer) Position(i int) mgl32.Vec3 {
	o := i * 3
	return mgl32.Vec3{b.Positions[o], b.Positions[o+1], b.Positions[o+2]}
}

func (b *Buffer) SetPosition(i int, p mgl32.Vec3) {
	o := i * 3
	b.Positions[o] = p[0]
	b.Positions[o+1] = p[1]
	b.Positions[o+2] = p[2]
}

func (b *Buffer) Direction(i int) mgl32.Vec3 {
	o := i * 3
	return mgl32.Vec3{b.Directions[o], b.Directions[o+1], b.Directions[o+2]}
}

// MarkDirty flags the positions for re-upload before the next draw.
func (b *Buffer) MarkDirty() { b.dirty = true }

func (b *Buffer) Dirty() bool { return b.dirty }

// ClearDirty is called by the draw step once the positions reached the GPU.
func (b *Buffer) ClearDirty() { b.dirty = false }
