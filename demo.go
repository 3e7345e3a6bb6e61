package particlefx

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/particlefx/particles"
	"github.com/gekko3d/particlefx/render"
)

// DemoEnv is what a demo borrows from the app while it is alive.
type DemoEnv struct {
	Engine render.Engine
	Mount  *Mount
	Bus    *EventBus
	Frames *FrameScheduler
	Assets *AssetServer
	Log    Logger
	Rand   *rand.Rand

	// Profiler is optional; when set every frame records its timings.
	Profiler *Profiler
}

// Demo is one running particle effect: its buffer, camera, canvas and the
// listeners and frame callback it registered.
type Demo struct {
	id     uuid.UUID
	preset Preset
	env    DemoEnv

	buffer   *particles.Buffer
	animator *ShaderAnimator
	anchor   *Anchor
	camera   *Camera
	canvas   render.Canvas

	subs     []Subscription
	frame    FrameHandle
	start    time.Time
	alive    bool
	disposed bool

	// lastErr is the most recent frame error message, cleared by a good frame.
	lastErr string
}

// NewDemo seeds the particles, creates the canvas and attaches it to the
// mount. The demo does nothing until Start.
func NewDemo(preset Preset, env DemoEnv) (*Demo, error) {
	if env.Engine == nil || env.Mount == nil || env.Bus == nil || env.Frames == nil {
		return nil, fmt.Errorf("demo %s: incomplete environment", preset.Name)
	}
	if env.Log == nil {
		env.Log = NewNopLogger()
	}
	if env.Rand == nil {
		env.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	d := &Demo{
		id:     uuid.New(),
		preset: preset,
		env:    env,
		buffer: particles.Seed(preset.Count, preset.Seeding, env.Rand),
		camera: NewCamera(env.Mount.Size()),
	}
	if preset.Anchor != nil {
		anchor := *preset.Anchor
		d.anchor = &anchor
		d.anchor.Update(0)
	}

	attributes := d.buffer.Positions
	mode := render.ModePositions
	if preset.Variant() == VariantShader {
		d.animator = NewShaderAnimator()
		if err := d.animator.Configure(preset.Shader); err != nil {
			return nil, fmt.Errorf("demo %s: %w", preset.Name, err)
		}
		d.animator.SetResolution(env.Mount.Size())
		attributes = d.buffer.Directions
		mode = render.ModeGatherLaw
	}

	canvas, err := env.Engine.NewCanvas(render.CanvasDescriptor{
		Label:      preset.Name,
		Mode:       mode,
		Attributes: attributes,
		Additive:   preset.Additive,
		Anchor:     d.anchor != nil,
		ClearColor: preset.ClearColor,
		Background: d.loadBackground(),
	})
	if err != nil {
		return nil, fmt.Errorf("demo %s: create canvas: %w", preset.Name, err)
	}
	if err := env.Mount.Attach(preset.Name, canvas); err != nil {
		canvas.Release()
		return nil, fmt.Errorf("demo %s: %w", preset.Name, err)
	}
	d.canvas = canvas
	// the canvas was created from the seeded data
	d.buffer.ClearDirty()

	env.Log.Infof("demo %s (%s, %s) constructed with %d particles", preset.Name, d.id, preset.Variant(), d.buffer.Len())
	return d, nil
}

func (d *Demo) loadBackground() *image.RGBA {
	if d.preset.Background == "" {
		return nil
	}
	if d.env.Assets == nil {
		d.env.Log.Warnf("demo %s: no asset server, drawing without background", d.preset.Name)
		return nil
	}
	id, err := d.env.Assets.LoadTexture(d.preset.Background)
	if err != nil {
		d.env.Log.Warnf("demo %s: %v; falling back to the clear colour", d.preset.Name, err)
		return nil
	}
	img, _ := d.env.Assets.Texture(id)
	return img
}

func (d *Demo) ID() uuid.UUID             { return d.id }
func (d *Demo) Name() string              { return d.preset.Name }
func (d *Demo) Preset() Preset            { return d.preset }
func (d *Demo) Alive() bool               { return d.alive }
func (d *Demo) Disposed() bool            { return d.disposed }
func (d *Demo) Camera() *Camera           { return d.camera }
func (d *Demo) Anchor() *Anchor           { return d.anchor }
func (d *Demo) Animator() *ShaderAnimator { return d.animator }
func (d *Demo) Buffer() *particles.Buffer { return d.buffer }
func (d *Demo) FrameHandle() FrameHandle  { return d.frame }
func (d *Demo) Subscriptions() int        { return len(d.subs) }

// Start subscribes the demo's input handlers and schedules its first frame.
// The demo clock starts at now.
func (d *Demo) Start(now time.Time) {
	if d.alive || d.disposed {
		return
	}
	d.alive = true
	d.start = now

	d.on(EventResized, func(e Event) {
		d.Resize(e.Width, e.Height)
	})
	if d.anchor != nil {
		d.on(EventClick, func(Event) {
			d.anchor.TogglePath()
		})
		d.on(EventKeyPressed, func(e Event) {
			if e.Key == KeyG {
				d.anchor.CycleShape()
			}
		})
	}
	if d.animator != nil {
		d.on(EventPointerMoved, func(e Event) {
			d.animator.SetPointer(e.X, e.Y)
		})
	}

	d.frame = d.env.Frames.Request(d.onFrame)
}

// on subscribes fn for as long as the demo is alive. A handler can still be
// reached by the Emit that disposed the demo, so it checks first.
func (d *Demo) on(t EventType, fn EventHandler) {
	d.subs = append(d.subs, d.env.Bus.Subscribe(t, func(e Event) {
		if d.alive {
			fn(e)
		}
	}))
}

func (d *Demo) onFrame(now time.Time) {
	if !d.alive {
		return
	}
	d.frame = 0
	elapsed := float32(now.Sub(d.start).Seconds())
	if err := d.Advance(elapsed); err != nil {
		if msg := err.Error(); msg != d.lastErr {
			d.lastErr = msg
			d.env.Log.Warnf("demo %s: %v", d.preset.Name, err)
		} else {
			d.env.Log.Debugf("demo %s: %v (repeated)", d.preset.Name, err)
		}
	} else {
		d.lastErr = ""
	}
	if d.alive {
		d.frame = d.env.Frames.Request(d.onFrame)
	}
}

// Advance runs one frame at elapsed seconds since Start: update, upload
// when dirty, then draw. It is a no-op once the demo is disposed.
func (d *Demo) Advance(elapsed float32) error {
	if !d.alive {
		return nil
	}

	began := time.Now()
	st := particles.StepState{Elapsed: elapsed}
	if d.anchor != nil {
		d.anchor.Update(elapsed)
		st.Target = d.anchor.Position
	}
	if d.preset.Updater != nil {
		d.preset.Updater.Step(d.buffer, st)
	}
	if d.animator != nil {
		d.animator.Tick(elapsed)
	}

	if d.buffer.Dirty() {
		if d.animator == nil {
			d.canvas.WriteAttributes(d.buffer.Positions)
		}
		d.buffer.ClearDirty()
	}

	updated := time.Now()
	err := d.canvas.Draw(d.frameUniforms(elapsed))
	if d.env.Profiler != nil {
		d.env.Profiler.Record(updated.Sub(began), time.Since(updated))
	}
	return err
}

func (d *Demo) model(elapsed float32) mgl32.Mat4 {
	spin := d.preset.Spin.Mul(elapsed)
	return mgl32.HomogRotate3DX(spin[0]).
		Mul4(mgl32.HomogRotate3DY(spin[1])).
		Mul4(mgl32.HomogRotate3DZ(spin[2]))
}

func (d *Demo) frameUniforms(elapsed float32) render.Frame {
	viewProj := d.camera.ViewProj()
	w, h := d.env.Mount.Size()

	u := render.Uniforms{
		ViewProj:   viewProj,
		Model:      d.model(elapsed),
		ColorA:     d.preset.Color,
		ColorB:     d.preset.Color,
		Resolution: [2]float32{float32(w), float32(h)},
		Time:       elapsed,
		PointSize:  d.preset.PointSize,
		Mode:       render.ModePositions,
		Shape:      d.preset.Shape,
	}
	if d.animator != nil {
		d.animator.Pack(&u)
	}
	frame := render.Frame{Particles: u}

	if d.anchor != nil {
		frame.Anchor = &render.Uniforms{
			ViewProj:  viewProj,
			Model:     d.anchor.Model(),
			ColorA:    d.anchor.Color,
			ColorB:    d.anchor.Color,
			PointSize: d.anchor.Size,
			Mode:      render.ModePositions,
			Shape:     d.anchor.Shape,
		}
	}
	return frame
}

// Resize keeps the camera aspect equal to width/height.
func (d *Demo) Resize(width, height int) {
	if d.disposed || width <= 0 || height <= 0 {
		return
	}
	d.camera.SetAspect(width, height)
	if d.animator != nil {
		d.animator.SetResolution(width, height)
	}
}

// Dispose stops the frame callback, unsubscribes every listener, detaches
// the canvas from the mount and releases it. Later calls are no-ops.
func (d *Demo) Dispose() {
	if d.disposed {
		d.env.Log.Debugf("demo %s (%s) already disposed", d.preset.Name, d.id)
		return
	}
	d.disposed = true
	d.alive = false

	if d.frame != 0 {
		d.env.Frames.Cancel(d.frame)
		d.frame = 0
	}
	for _, s := range d.subs {
		d.env.Bus.Unsubscribe(s)
	}
	d.subs = nil

	if d.canvas != nil {
		d.env.Mount.Detach(d.canvas)
		d.canvas.Release()
		d.canvas = nil
	}
	d.buffer = nil
	d.env.Log.Infof("demo %s (%s) disposed", d.preset.Name, d.id)
}
