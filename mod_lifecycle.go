package particlefx

import (
	"math/rand"
	"time"

	"github.com/gekko3d/particlefx/render"
)

// DemoModule runs the demo rotation: it owns the mount and the frame
// scheduler, starts the controller when the app enters StateRunning and
// shuts it down on StateQuit.
type DemoModule struct {
	Presets []Preset
	// Seed fixes the particle layouts; zero seeds from the clock.
	Seed int64
	// Engine overrides the RendererState engine.
	Engine render.Engine
	// Width and Height size the mount when there is no window.
	Width, Height int
}

func (m DemoModule) Install(app *App, cmd *Commands) {
	engine := m.Engine
	if engine == nil {
		rs, ok := Resource[RendererState](app)
		if !ok {
			panic("DemoModule needs a renderer; install RendererModule first")
		}
		engine = rs.Engine
	}

	width, height := m.Width, m.Height
	if ws, ok := Resource[WindowState](app); ok {
		width, height = ws.FramebufferSize()
	}

	bus := ensureResource(app, NewEventBus)
	ensureResource(app, func() *Input { return &Input{} })
	clock := ensureResource(app, func() *Time { return &Time{Time: time.Now()} })
	mount := NewMount(width, height)
	frames := NewFrameScheduler()

	// registered before any demo so the mount is resized before demos see the event
	bus.Subscribe(EventResized, func(e Event) {
		if e.Width <= 0 || e.Height <= 0 {
			return
		}
		engine.Resize(e.Width, e.Height)
		mount.SetSize(e.Width, e.Height)
	})

	seed := m.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	profiler, _ := Resource[Profiler](app)
	presets := m.Presets
	if presets == nil {
		presets = DefaultPresets()
	}
	controller := NewController(presets, DemoEnv{
		Engine: engine,
		Mount:  mount,
		Bus:    bus,
		Frames: frames,
		Assets: ensureResource(app, NewAssetServer),
		Log:    app.Logger(),
		Rand:   rand.New(rand.NewSource(seed)),

		Profiler: profiler,
	}, func() time.Time { return clock.Time })

	app.addResources(mount, frames, controller)

	app.UseSystem(
		System(startDemosSystem).
			InStage(Update).
			InState(OnEnter(StateRunning)),
	).UseSystem(
		System(quitSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	).UseSystem(
		System(frameSystem).
			InStage(Render).
			InState(OnExecute(StateRunning)),
	).UseSystem(
		System(shutdownDemosSystem).
			InStage(Update).
			InState(OnEnter(StateQuit)),
	)
}

func startDemosSystem(controller *Controller) {
	controller.Start()
}

func quitSystem(input *Input, cmd *Commands) {
	if input.JustPressed[KeyEscape] || input.CloseRequested {
		cmd.Logger().Infof("quit requested")
		cmd.ChangeState(StateQuit)
	}
}

func frameSystem(frames *FrameScheduler, t *Time) {
	frames.RunFrame(t.Time)
}

func shutdownDemosSystem(controller *Controller) {
	controller.Shutdown()
}
