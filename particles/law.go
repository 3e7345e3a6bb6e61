package particles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// The gather law below is also implemented by shaders/points.wgsl and
// shaders/points.vert. Any change here must be mirrored there.

const (
	// HomeRadius scales the resting sphere particles gather into.
	HomeRadius float32 = 1.5
	// PointerParallax is how far (world units) a full pointer deflection shifts a particle.
	PointerParallax float32 = 0.35
)

// LawConstants are the configuration uniforms of the gather law.
type LawConstants struct {
	FillDuration     float32
	HoldDuration     float32
	DisperseDuration float32
	MinSize          float32
	MaxSize          float32
	MinOpacity       float32
	MaxOpacity       float32
	Drift            float32 // outward drift speed while holding, units/s
	MaxOffset        float32 // distance of the screen edge particles fly in from
}

// Period is the length of one fill/hold/disperse cycle.
func (c LawConstants) Period() float32 {
	return c.FillDuration + c.HoldDuration + c.DisperseDuration
}

// LawSample is the state of one particle at one instant.
type LawSample struct {
	Position mgl32.Vec3
	Size     float32
	Opacity  float32
	Mix      float32 // 0 = colour A, 1 = colour B
}

// Hash maps a direction to a stable pseudo-random value in [0,1). It works on
// the float bits with integer ops only, so the shaders produce the same value.
func Hash(dir mgl32.Vec3) float32 {
	return float32(HashBits(dir)>>8) / (1 << 24)
}

// HashBits chains pcg over the bit patterns of x, y and z.
func HashBits(dir mgl32.Vec3) uint32 {
	h := pcg(math.Float32bits(dir[0]))
	h = pcg(h ^ math.Float32bits(dir[1]))
	return pcg(h ^ math.Float32bits(dir[2]))
}

func pcg(v uint32) uint32 {
	state := v*747796405 + 2891336453
	word := ((state >> ((state >> 28) + 4)) ^ state) * 277803737
	return (word >> 22) ^ word
}

func EaseOutCubic(x float32) float32 {
	k := 1 - x
	return 1 - k*k*k
}

func EaseInCubic(x float32) float32 {
	return x * x * x
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

// EdgePoint is where a particle with direction dir enters from: its XY
// heading pushed out to maxOffset, keeping the depth component.
func EdgePoint(dir mgl32.Vec3, maxOffset float32) mgl32.Vec3 {
	x, y := dir[0], dir[1]
	l := float32(math.Sqrt(float64(x*x + y*y)))
	if l < 1e-4 {
		x, y, l = 1, 0, 1
	}
	return mgl32.Vec3{x / l * maxOffset, y / l * maxOffset, dir[2]}
}

// HomePoint is where a particle with direction dir rests during the hold phase.
func HomePoint(dir mgl32.Vec3) mgl32.Vec3 {
	return dir.Mul(HomeRadius * (0.35 + 0.65*Hash(dir)))
}

// EvaluateLaw computes a particle's position, size, opacity and colour mix
// as a pure function of its direction, the elapsed time and the constants.
// The cycle repeats every c.Period() seconds.
func EvaluateLaw(dir mgl32.Vec3, t float32, pointer mgl32.Vec2, c LawConstants) LawSample {
	h := Hash(dir)
	home := HomePoint(dir)

	period := c.Period()
	if period <= 0 {
		return LawSample{Position: home, Size: c.MaxSize, Opacity: c.MaxOpacity, Mix: h}
	}
	tau := t - period*float32(math.Floor(float64(t/period)))

	var pos mgl32.Vec3
	var k float32
	switch {
	case tau < c.FillDuration:
		delay := h * 0.25 * c.FillDuration
		e := EaseOutCubic(clamp01((tau - delay) / (c.FillDuration - delay)))
		edge := EdgePoint(dir, c.MaxOffset)
		pos = edge.Add(home.Sub(edge).Mul(e))
		k = e
	case tau < c.FillDuration+c.HoldDuration:
		pos = home.Add(dir.Mul(c.Drift * (tau - c.FillDuration)))
		k = 1
	default:
		e := EaseInCubic(clamp01((tau - c.FillDuration - c.HoldDuration) / c.DisperseDuration))
		start := home.Add(dir.Mul(c.Drift * c.HoldDuration))
		pos = start.Add(dir.Mul(c.MaxOffset * e))
		k = 1 - e
	}

	shift := PointerParallax * (0.5 + 0.5*h)
	pos[0] += pointer[0] * shift
	pos[1] += pointer[1] * shift

	return LawSample{
		Position: pos,
		Size:     lerp(c.MinSize, c.MaxSize, k),
		Opacity:  lerp(c.MinOpacity, c.MaxOpacity, k),
		Mix:      h,
	}
}
