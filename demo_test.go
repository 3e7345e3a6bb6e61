package particlefx

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/particlefx/render"
)

type demoFixture struct {
	engine *fakeEngine
	env    DemoEnv
}

func newDemoFixture() *demoFixture {
	engine := &fakeEngine{}
	return &demoFixture{
		engine: engine,
		env: DemoEnv{
			Engine: engine,
			Mount:  NewMount(800, 600),
			Bus:    NewEventBus(),
			Frames: NewFrameScheduler(),
			Assets: NewAssetServer(),
			Log:    NewNopLogger(),
			Rand:   rand.New(rand.NewSource(42)),
		},
	}
}

func TestNewDemo_AttachesCanvas(t *testing.T) {
	f := newDemoFixture()
	d, err := NewDemo(SwarmPreset(), f.env)
	require.NoError(t, err)

	c := f.engine.last()
	require.NotNil(t, c)
	assert.Equal(t, "swarm", c.desc.Label)
	assert.Equal(t, render.ModePositions, c.desc.Mode)
	assert.Equal(t, 1000, c.desc.Count())
	assert.True(t, c.desc.Anchor)
	assert.Equal(t, 1, f.env.Mount.Attached())
	assert.False(t, d.Buffer().Dirty(), "seeded data went out with the canvas")
	assert.False(t, d.Alive(), "nothing runs before Start")
}

func TestNewDemo_ShaderVariantUploadsDirections(t *testing.T) {
	f := newDemoFixture()
	d, err := NewDemo(GatherPreset(), f.env)
	require.NoError(t, err)

	c := f.engine.last()
	assert.Equal(t, render.ModeGatherLaw, c.desc.Mode)
	assert.True(t, c.desc.Additive)
	assert.Equal(t, 102400, c.desc.Count())
	assert.Equal(t, d.Buffer().Directions, c.desc.Attributes)
	require.NotNil(t, d.Animator())
}

func TestNewDemo_CanvasFailureLeavesMountEmpty(t *testing.T) {
	f := newDemoFixture()
	f.engine.failOn = "fog"

	_, err := NewDemo(FogPreset(), f.env)
	require.Error(t, err)
	assert.Zero(t, f.env.Mount.Attached())
}

func TestNewDemo_OccupiedMountReleasesCanvas(t *testing.T) {
	f := newDemoFixture()
	require.NoError(t, f.env.Mount.Attach("other", &fakeCanvas{}))

	_, err := NewDemo(FogPreset(), f.env)
	assert.ErrorIs(t, err, ErrMountOccupied)
	assert.Zero(t, f.engine.live())
}

func TestNewDemo_IncompleteEnv(t *testing.T) {
	_, err := NewDemo(FogPreset(), DemoEnv{})
	assert.Error(t, err)
}

func TestDemo_AdvanceUploadsOnlyWhenDirty(t *testing.T) {
	f := newDemoFixture()

	swarm, err := NewDemo(SwarmPreset(), f.env)
	require.NoError(t, err)
	swarm.Start(time.Now())
	require.NoError(t, swarm.Advance(0.1))
	c := f.engine.last()
	assert.Equal(t, 1, c.writes)
	assert.Equal(t, swarm.Buffer().Positions, c.lastData)
	assert.False(t, swarm.Buffer().Dirty())
	require.Len(t, c.draws, 1)
	assert.NotNil(t, c.draws[0].Anchor)
	swarm.Dispose()

	fog, err := NewDemo(FogPreset(), f.env)
	require.NoError(t, err)
	fog.Start(time.Now())
	require.NoError(t, fog.Advance(0.1))
	require.NoError(t, fog.Advance(0.2))
	c = f.engine.last()
	assert.Zero(t, c.writes, "static particles are never re-uploaded")
	assert.Len(t, c.draws, 2)
	assert.Nil(t, c.draws[0].Anchor)
}

func TestDemo_ShaderVariantOnlyAdvancesTime(t *testing.T) {
	f := newDemoFixture()
	d, err := NewDemo(GatherPreset(), f.env)
	require.NoError(t, err)
	d.Start(time.Now())

	require.NoError(t, d.Advance(3))

	c := f.engine.last()
	assert.Zero(t, c.writes)
	require.Len(t, c.draws, 1)
	u := c.draws[0].Particles
	assert.Equal(t, render.ModeGatherLaw, u.Mode)
	assert.Equal(t, float32(3), u.Time)
	assert.Equal(t, [2]float32{800, 600}, u.Resolution)
}

func TestDemo_FrameLoop(t *testing.T) {
	f := newDemoFixture()
	d, err := NewDemo(BurstPreset(), f.env)
	require.NoError(t, err)

	start := time.Unix(1000, 0)
	d.Start(start)
	require.NotZero(t, d.FrameHandle())

	for i := 1; i <= 3; i++ {
		assert.Equal(t, 1, f.env.Frames.RunFrame(start.Add(time.Duration(i)*100*time.Millisecond)))
	}
	c := f.engine.last()
	require.Len(t, c.draws, 3)
	assert.InDelta(t, 0.3, c.draws[2].Particles.Time, 1e-6)
	assert.Equal(t, 3, c.writes, "burst particles move every frame")
}

func TestDemo_FrameLoopWarnsOncePerError(t *testing.T) {
	f := newDemoFixture()
	var out bytes.Buffer
	f.env.Log = NewDefaultLoggerTo(&out, "test", false)
	d, err := NewDemo(FogPreset(), f.env)
	require.NoError(t, err)

	start := time.Unix(1000, 0)
	d.Start(start)
	frame := func(i int) {
		f.env.Frames.RunFrame(start.Add(time.Duration(i) * 16 * time.Millisecond))
	}

	c := f.engine.last()
	c.Release()
	for i := 1; i <= 5; i++ {
		frame(i)
	}
	assert.Equal(t, 1, strings.Count(out.String(), "level=WARN"))
	assert.True(t, d.Alive(), "frame errors do not stop the loop")

	c.released = 0
	frame(6)
	require.Len(t, c.draws, 1)

	c.Release()
	frame(7)
	frame(8)
	assert.Equal(t, 2, strings.Count(out.String(), "level=WARN"), "a good frame resets the warning")
}

func TestDemo_ResizeUpdatesShaderResolution(t *testing.T) {
	f := newDemoFixture()
	d, err := NewDemo(GatherPreset(), f.env)
	require.NoError(t, err)
	d.Start(time.Now())

	d.Resize(1200, 400)
	require.NoError(t, d.Advance(1))

	v, ok := d.Animator().Value(UniformResolution)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec2{1200, 400}, v)
	draws := f.engine.last().draws
	require.Len(t, draws, 1)
	assert.Equal(t, [2]float32{1200, 400}, draws[0].Particles.Resolution)
}

func TestDemo_InputHandlers(t *testing.T) {
	f := newDemoFixture()
	d, err := NewDemo(SwarmPreset(), f.env)
	require.NoError(t, err)
	d.Start(time.Now())

	f.env.Bus.Emit(Event{Type: EventClick})
	assert.Equal(t, AnchorPathCosSin, d.Anchor().Path)

	f.env.Bus.Emit(Event{Type: EventKeyPressed, Key: KeyG})
	assert.Equal(t, render.ShapeSquare, d.Anchor().Shape)
	f.env.Bus.Emit(Event{Type: EventKeyPressed, Key: KeyH})
	assert.Equal(t, render.ShapeSquare, d.Anchor().Shape)

	f.env.Bus.Emit(Event{Type: EventResized, Width: 1000, Height: 250})
	assert.Equal(t, float32(4), d.Camera().Aspect)
}

func TestDemo_PointerMovesShaderPointer(t *testing.T) {
	f := newDemoFixture()
	d, err := NewDemo(GatherPreset(), f.env)
	require.NoError(t, err)
	d.Start(time.Now())

	f.env.Bus.Emit(Event{Type: EventPointerMoved, X: 0.25, Y: -0.5})

	v, _ := d.Animator().Value(UniformPointer)
	assert.Equal(t, mgl32.Vec2{0.25, -0.5}, v)
}

func TestDemo_DisposeReleasesEverything(t *testing.T) {
	f := newDemoFixture()
	d, err := NewDemo(SwarmPreset(), f.env)
	require.NoError(t, err)
	d.Start(time.Now())
	require.Positive(t, d.Subscriptions())

	d.Dispose()

	assert.True(t, d.Disposed())
	assert.False(t, d.Alive())
	assert.Zero(t, d.Subscriptions())
	assert.Zero(t, f.env.Bus.Subscribers(EventClick))
	assert.Zero(t, f.env.Bus.Subscribers(EventKeyPressed))
	assert.Zero(t, f.env.Bus.Subscribers(EventResized))
	assert.Zero(t, f.env.Frames.Pending())
	assert.Zero(t, f.env.Mount.Attached())
	assert.Equal(t, 1, f.engine.last().released)
	assert.Nil(t, d.Buffer())
}

func TestDemo_NoMutationAfterDispose(t *testing.T) {
	f := newDemoFixture()
	d, err := NewDemo(SwarmPreset(), f.env)
	require.NoError(t, err)
	d.Start(time.Now())
	c := f.engine.last()
	aspect := d.Camera().Aspect
	path := d.Anchor().Path

	d.Dispose()
	d.Dispose()

	assert.NoError(t, d.Advance(1))
	d.onFrame(time.Now())
	d.Resize(100, 900)
	d.Start(time.Now())

	assert.Empty(t, c.draws)
	assert.Zero(t, c.writes)
	assert.Equal(t, 1, c.released, "second dispose is a no-op")
	assert.Equal(t, aspect, d.Camera().Aspect)
	assert.Equal(t, path, d.Anchor().Path)
	assert.Zero(t, f.env.Frames.Pending())
}

func TestDemo_DisposeDuringEmitIgnoresRemainingHandlers(t *testing.T) {
	f := newDemoFixture()
	var d *Demo
	f.env.Bus.Subscribe(EventClick, func(Event) { d.Dispose() })
	d, err := NewDemo(SwarmPreset(), f.env)
	require.NoError(t, err)
	d.Start(time.Now())
	path := d.Anchor().Path

	f.env.Bus.Emit(Event{Type: EventClick})

	assert.True(t, d.Disposed())
	assert.Equal(t, path, d.Anchor().Path)
}

func TestDemo_BackgroundImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	f := newDemoFixture()
	preset := FogPreset()
	preset.Background = path
	_, err := NewDemo(preset, f.env)
	require.NoError(t, err)

	bg := f.engine.last().desc.Background
	require.NotNil(t, bg)
	assert.Equal(t, image.Rect(0, 0, 4, 2), bg.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, bg.RGBAAt(1, 1))
}

func TestDemo_MissingBackgroundFallsBack(t *testing.T) {
	f := newDemoFixture()
	preset := FogPreset()
	preset.Background = filepath.Join(t.TempDir(), "missing.png")

	_, err := NewDemo(preset, f.env)
	require.NoError(t, err)
	assert.Nil(t, f.engine.last().desc.Background)
}
