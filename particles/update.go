package particles

import (
	"github.com/go-gl/mathgl/mgl32"
)

// StepState is what an update policy may read for one frame.
type StepState struct {
	Target  mgl32.Vec3 // anchor position, zero when the demo has none
	Elapsed float32    // seconds since the owning demo started
}

// Updater mutates every particle of b in place and marks it dirty when it did.
type Updater interface {
	Step(b *Buffer, st StepState)
}

// Attraction pulls each particle a fraction K of the way to the target every
// step and then adds the particle's fixed jitter vector. With a zero jitter
// field and K in (0,1) the distance to a stationary target shrinks
// geometrically and never overshoots.
type Attraction struct {
	K float32
}

func (a Attraction) Step(b *Buffer, st StepState) {
	tx, ty, tz := st.Target[0], st.Target[1], st.Target[2]
	p := b.Positions
	d := b.Directions
	for o := 0; o+2 < len(p); o += 3 {
		p[o] += (tx-p[o])*a.K + d[o]
		p[o+1] += (ty-p[o+1])*a.K + d[o+1]
		p[o+2] += (tz-p[o+2])*a.K + d[o+2]
	}
	b.MarkDirty()
}

// Radial places each particle at direction * elapsed * Speed. Positions are
// recomputed from scratch every step, so any elapsed value can be sought.
type Radial struct {
	Speed float32
}

func (r Radial) Step(b *Buffer, st StepState) {
	dist := st.Elapsed * r.Speed
	p := b.Positions
	d := b.Directions
	for o := 0; o+2 < len(p); o += 3 {
		p[o] = d[o] * dist
		p[o+1] = d[o+1] * dist
		p[o+2] = d[o+2] * dist
	}
	b.MarkDirty()
}

// Static leaves the buffer untouched; the demo animates it through its model
// transform instead.
type Static struct{}

func (Static) Step(*Buffer, StepState) {}
