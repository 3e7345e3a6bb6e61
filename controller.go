package particlefx

import (
	"time"
)

type ControllerState int

const (
	ControllerIdle ControllerState = iota
	ControllerDemoActive
)

func (s ControllerState) String() string {
	if s == ControllerDemoActive {
		return "DemoActive"
	}
	return "Idle"
}

// Controller owns the single active demo and switches to the next preset of
// a wrapping rotation whenever Space is pressed.
type Controller struct {
	presets []Preset
	env     DemoEnv
	now     func() time.Time

	index      int
	active     *Demo
	trigger    Subscription
	subscribed bool
}

func NewController(presets []Preset, env DemoEnv, now func() time.Time) *Controller {
	if env.Log == nil {
		env.Log = NewNopLogger()
	}
	if now == nil {
		now = time.Now
	}
	return &Controller{presets: presets, env: env, now: now}
}

// Start subscribes to the cycle key and activates the current preset.
func (c *Controller) Start() {
	if c.subscribed {
		return
	}
	c.subscribed = true
	c.trigger = c.env.Bus.Subscribe(EventKeyPressed, func(e Event) {
		if e.Key == KeySpace {
			c.Next()
		}
	})
	if len(c.presets) == 0 {
		c.env.Log.Warnf("no demos configured")
		return
	}
	c.activate()
}

// Next disposes the active demo, then constructs and starts the next one.
func (c *Controller) Next() {
	if len(c.presets) == 0 {
		return
	}
	c.disposeActive()
	c.index = (c.index + 1) % len(c.presets)
	c.activate()
}

func (c *Controller) activate() {
	preset := c.presets[c.index]
	demo, err := NewDemo(preset, c.env)
	if err != nil {
		c.env.Log.Errorf("could not start demo %s: %v", preset.Name, err)
		return
	}
	demo.Start(c.now())
	c.active = demo
}

func (c *Controller) disposeActive() {
	if c.active == nil {
		return
	}
	c.active.Dispose()
	// cleared only once the demo has released everything
	c.active = nil
}

// Shutdown disposes the active demo and stops listening for the cycle key.
func (c *Controller) Shutdown() {
	if c.subscribed {
		c.env.Bus.Unsubscribe(c.trigger)
		c.subscribed = false
	}
	c.disposeActive()
}

func (c *Controller) Index() int    { return c.index }
func (c *Controller) Active() *Demo { return c.active }

func (c *Controller) State() ControllerState {
	if c.active == nil {
		return ControllerIdle
	}
	return ControllerDemoActive
}
