package particlefx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeadlessApp(t *testing.T, engine *fakeEngine, presets []Preset) *App {
	t.Helper()
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(16 * time.Millisecond)
		return now
	}
	return NewAppBuilder().
		UseStates(StateRunning, StateQuit).
		UseModule(TimeModule{Clock: clock}).
		UseModule(DemoModule{Presets: presets, Seed: 1, Engine: engine, Width: 640, Height: 480}).
		Build()
}

func TestDemoModule_RunsAndQuits(t *testing.T) {
	engine := &fakeEngine{}
	app := newHeadlessApp(t, engine, []Preset{FogPreset(), BurstPreset()})

	controller, ok := Resource[Controller](app)
	require.True(t, ok)
	input, ok := Resource[Input](app)
	require.True(t, ok)

	require.True(t, app.Step())
	require.Equal(t, ControllerDemoActive, controller.State())
	require.Len(t, engine.canvases, 1)
	assert.Len(t, engine.last().draws, 1, "the first frame is drawn in the same step")

	require.True(t, app.Step())
	assert.Len(t, engine.last().draws, 2)

	input.JustPressed[KeyEscape] = true
	assert.False(t, app.Step())

	assert.Equal(t, StateQuit, app.State())
	assert.Equal(t, ControllerIdle, controller.State())
	assert.Zero(t, engine.live())
	mount, _ := Resource[Mount](app)
	assert.Zero(t, mount.Attached())
}

func TestDemoModule_SpaceSwitchesDemo(t *testing.T) {
	engine := &fakeEngine{}
	app := newHeadlessApp(t, engine, []Preset{FogPreset(), BurstPreset()})
	bus, _ := Resource[EventBus](app)
	controller, _ := Resource[Controller](app)

	app.Step()
	bus.Emit(Event{Type: EventKeyPressed, Key: KeySpace})
	app.Step()

	assert.Equal(t, "burst", controller.Active().Name())
	assert.Len(t, engine.canvases, 2)
	assert.Equal(t, 1, engine.live())
	assert.Len(t, engine.last().draws, 1)
}

func TestDemoModule_ResizeReachesEngineMountAndDemo(t *testing.T) {
	engine := &fakeEngine{}
	app := newHeadlessApp(t, engine, []Preset{FogPreset()})
	bus, _ := Resource[EventBus](app)
	controller, _ := Resource[Controller](app)
	mount, _ := Resource[Mount](app)
	app.Step()

	bus.Emit(Event{Type: EventResized, Width: 1200, Height: 400})

	assert.Equal(t, [][2]int{{1200, 400}}, engine.resizes)
	w, h := mount.Size()
	assert.Equal(t, []int{1200, 400}, []int{w, h})
	assert.Equal(t, [][2]int{{1200, 400}}, engine.last().resizes)
	assert.Equal(t, float32(3), controller.Active().Camera().Aspect)
}

func TestDemoModule_ResizeReachesShaderResolution(t *testing.T) {
	engine := &fakeEngine{}
	app := newHeadlessApp(t, engine, []Preset{GatherPreset()})
	bus, _ := Resource[EventBus](app)
	app.Step()

	bus.Emit(Event{Type: EventResized, Width: 1200, Height: 400})
	require.True(t, app.Step())

	draws := engine.last().draws
	require.Len(t, draws, 2)
	assert.Equal(t, [2]float32{640, 480}, draws[0].Particles.Resolution)
	assert.Equal(t, [2]float32{1200, 400}, draws[1].Particles.Resolution)
}

func TestDemoModule_NeedsEngine(t *testing.T) {
	assert.Panics(t, func() {
		NewApp().UseStates(StateRunning, StateQuit).UseModules(DemoModule{})
	})
}
