package particles

import (
	"math"
	"math/rand"
)

// Layout selects where particles start.
type Layout int

const (
	LayoutCube   Layout = iota // uniform inside a cube of edge Extent
	LayoutOrigin               // every particle at (0,0,0)
	LayoutRing                 // flat annulus in the XY plane
)

// Field selects how the per-particle direction vector is sampled.
type Field int

const (
	FieldNone      Field = iota // all zero
	FieldJitter                 // independent uniform jitter per axis
	FieldSpherical              // unit vectors from random inclination/azimuth
)

// Seeding describes how Seed fills a new buffer.
type Seeding struct {
	Layout Layout
	Extent float32 // cube edge length

	RadiusMin float32 // ring
	RadiusMax float32
	Thickness float32

	Field  Field
	Jitter float32 // full width of the per-axis jitter interval
}

// Seed allocates count particles and fills positions and directions from rng.
// The returned buffer is dirty so that the first frame uploads it.
func Seed(count int, s Seeding, rng *rand.Rand) *Buffer {
	b := NewBuffer(count)
	for i := 0; i < b.count; i++ {
		o := i * 3

		switch s.Layout {
		case LayoutCube:
			b.Positions[o] = (rng.Float32() - 0.5) * s.Extent
			b.Positions[o+1] = (rng.Float32() - 0.5) * s.Extent
			b.Positions[o+2] = (rng.Float32() - 0.5) * s.Extent
		case LayoutRing:
			angle := rng.Float64() * 2 * math.Pi
			radius := float64(s.RadiusMin) + rng.Float64()*float64(s.RadiusMax-s.RadiusMin)
			b.Positions[o] = float32(math.Cos(angle) * radius)
			b.Positions[o+1] = float32(math.Sin(angle) * radius)
			b.Positions[o+2] = (rng.Float32() - 0.5) * s.Thickness
		case LayoutOrigin:
			// zero already
		}

		switch s.Field {
		case FieldJitter:
			b.Directions[o] = (rng.Float32() - 0.5) * s.Jitter
			b.Directions[o+1] = (rng.Float32() - 0.5) * s.Jitter
			b.Directions[o+2] = (rng.Float32() - 0.5) * s.Jitter
		case FieldSpherical:
			theta := rng.Float64() * 2 * math.Pi
			phi := rng.Float64() * math.Pi
			b.Directions[o] = float32(math.Sin(phi) * math.Cos(theta))
			b.Directions[o+1] = float32(math.Sin(phi) * math.Sin(theta))
			b.Directions[o+2] = float32(math.Cos(phi))
		case FieldNone:
		}
	}
	return b
}
