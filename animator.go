package particlefx

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/particlefx/particles"
	"github.com/gekko3d/particlefx/render"
)

var (
	ErrAnimatorConfigured = errors.New("shader animator already configured")
	ErrUnknownUniform     = errors.New("unknown uniform")
	ErrUniformType        = errors.New("wrong uniform value type")
)

const (
	UniformTime             = "uTime"
	UniformFillDuration     = "uFillDuration"
	UniformHoldDuration     = "uHoldDuration"
	UniformDisperseDuration = "uDisperseDuration"
	UniformMinSize          = "uMinSize"
	UniformMaxSize          = "uMaxSize"
	UniformMinOpacity       = "uMinOpacity"
	UniformMaxOpacity       = "uMaxOpacity"
	UniformColorA           = "uColorA"
	UniformColorB           = "uColorB"
	UniformDrift            = "uDrift"
	UniformMaxOffset        = "uMaxOffset"
	UniformResolution       = "uResolution"
	UniformPointer          = "uPointer"
)

type uniformKind int

const (
	kindFloat uniformKind = iota
	kindVec2
	kindVec3
)

func (k uniformKind) String() string {
	switch k {
	case kindVec2:
		return "mgl32.Vec2"
	case kindVec3:
		return "mgl32.Vec3"
	default:
		return "float32"
	}
}

var uniformKinds = map[string]uniformKind{
	UniformTime:             kindFloat,
	UniformFillDuration:     kindFloat,
	UniformHoldDuration:     kindFloat,
	UniformDisperseDuration: kindFloat,
	UniformMinSize:          kindFloat,
	UniformMaxSize:          kindFloat,
	UniformMinOpacity:       kindFloat,
	UniformMaxOpacity:       kindFloat,
	UniformColorA:           kindVec3,
	UniformColorB:           kindVec3,
	UniformDrift:            kindFloat,
	UniformMaxOffset:        kindFloat,
	UniformResolution:       kindVec2,
	UniformPointer:          kindVec2,
}

// UniformValues maps uniform names to float32, mgl32.Vec2 or mgl32.Vec3.
type UniformValues map[string]any

// ShaderAnimator owns the uniform set of a shader-driven demo. The host only
// advances uTime; the GPU evaluates the gather law for every particle.
type ShaderAnimator struct {
	values     map[string]any
	configured bool
}

func NewShaderAnimator() *ShaderAnimator {
	a := &ShaderAnimator{values: make(map[string]any, len(uniformKinds))}
	for name, kind := range uniformKinds {
		switch kind {
		case kindVec2:
			a.values[name] = mgl32.Vec2{}
		case kindVec3:
			a.values[name] = mgl32.Vec3{}
		default:
			a.values[name] = float32(0)
		}
	}
	return a
}

// Configure sets the constant uniforms. It may be called once; on error
// nothing is applied.
func (a *ShaderAnimator) Configure(values UniformValues) error {
	if a.configured {
		return ErrAnimatorConfigured
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	checked := make(map[string]any, len(values))
	for _, name := range names {
		kind, ok := uniformKinds[name]
		if !ok || name == UniformTime {
			return fmt.Errorf("%w: %q", ErrUnknownUniform, name)
		}
		v, ok := coerceUniform(kind, values[name])
		if !ok {
			return fmt.Errorf("%w: %s wants %s, got %T", ErrUniformType, name, kind, values[name])
		}
		checked[name] = v
	}

	for name, v := range checked {
		a.values[name] = v
	}
	a.configured = true
	return nil
}

func coerceUniform(kind uniformKind, v any) (any, bool) {
	switch kind {
	case kindFloat:
		switch f := v.(type) {
		case float32:
			return f, true
		case float64:
			return float32(f), true
		}
	case kindVec2:
		if vec, ok := v.(mgl32.Vec2); ok {
			return vec, true
		}
	case kindVec3:
		if vec, ok := v.(mgl32.Vec3); ok {
			return vec, true
		}
	}
	return nil, false
}

// Tick writes the elapsed seconds into uTime. It is the only per-frame write.
func (a *ShaderAnimator) Tick(elapsed float32) {
	a.values[UniformTime] = elapsed
}

func (a *ShaderAnimator) SetResolution(width, height int) {
	a.values[UniformResolution] = mgl32.Vec2{float32(width), float32(height)}
}

// SetPointer takes the pointer in normalized device coordinates.
func (a *ShaderAnimator) SetPointer(x, y float32) {
	a.values[UniformPointer] = mgl32.Vec2{x, y}
}

func (a *ShaderAnimator) Value(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

func (a *ShaderAnimator) float(name string) float32 {
	f, _ := a.values[name].(float32)
	return f
}

func (a *ShaderAnimator) vec2(name string) mgl32.Vec2 {
	v, _ := a.values[name].(mgl32.Vec2)
	return v
}

func (a *ShaderAnimator) vec3(name string) mgl32.Vec3 {
	v, _ := a.values[name].(mgl32.Vec3)
	return v
}

// LawConstants is the configured law, for evaluating it on the host.
func (a *ShaderAnimator) LawConstants() particles.LawConstants {
	return particles.LawConstants{
		FillDuration:     a.float(UniformFillDuration),
		HoldDuration:     a.float(UniformHoldDuration),
		DisperseDuration: a.float(UniformDisperseDuration),
		MinSize:          a.float(UniformMinSize),
		MaxSize:          a.float(UniformMaxSize),
		MinOpacity:       a.float(UniformMinOpacity),
		MaxOpacity:       a.float(UniformMaxOpacity),
		Drift:            a.float(UniformDrift),
		MaxOffset:        a.float(UniformMaxOffset),
	}
}

// Pack copies the uniform set into the GPU block and selects the law mode.
func (a *ShaderAnimator) Pack(u *render.Uniforms) {
	law := a.LawConstants()
	colorA, colorB := a.vec3(UniformColorA), a.vec3(UniformColorB)

	u.Mode = render.ModeGatherLaw
	u.Time = a.float(UniformTime)
	u.FillDuration = law.FillDuration
	u.HoldDuration = law.HoldDuration
	u.DisperseDuration = law.DisperseDuration
	u.MinSize = law.MinSize
	u.MaxSize = law.MaxSize
	u.MinOpacity = law.MinOpacity
	u.MaxOpacity = law.MaxOpacity
	u.Drift = law.Drift
	u.MaxOffset = law.MaxOffset
	u.ColorA = [4]float32{colorA[0], colorA[1], colorA[2], 1}
	u.ColorB = [4]float32{colorB[0], colorB[1], colorB[2], 1}
	u.Resolution = a.vec2(UniformResolution)
	u.Pointer = a.vec2(UniformPointer)
}
