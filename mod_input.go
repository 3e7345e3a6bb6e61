package particlefx

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

type InputModule struct{}

type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64

	WindowWidth, WindowHeight           int
	FramebufferWidth, FramebufferHeight int
	CloseRequested                      bool

	// last values published on the event bus
	sentMouseX, sentMouseY    float64
	sentFbWidth, sentFbHeight int
	sentAny                   bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	ensureResource(app, func() *Input { return &Input{} })
	ensureResource(app, NewEventBus)
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func inputSystem(s *WindowState, input *Input, bus *EventBus) {
	pollInput(s.windowGlfw, input)
	dispatchInput(input, bus)
}

func pollInput(win *glfw.Window, input *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		updateButton(input, key, win.GetKey(glfwKey))
	}
	for btn, glfwBtn := range mouseToGlfw {
		updateButton(input, btn, win.GetMouseButton(glfwBtn))
	}

	mx, my := win.GetCursorPos()
	input.MouseDeltaX = mx - input.MouseX
	input.MouseDeltaY = my - input.MouseY
	input.MouseX = mx
	input.MouseY = my

	input.WindowWidth, input.WindowHeight = win.GetSize()
	input.FramebufferWidth, input.FramebufferHeight = win.GetFramebufferSize()
	input.CloseRequested = win.ShouldClose()
}

func updateButton(input *Input, key int, action glfw.Action) {
	input.JustPressed[key] = false
	input.JustReleased[key] = false

	if glfw.Press == action {
		if !input.Pressed[key] {
			input.JustPressed[key] = true
		}
		input.Pressed[key] = true
	} else if glfw.Release == action {
		if input.Pressed[key] {
			input.JustReleased[key] = true
		}
		input.Pressed[key] = false
	}
}

// PointerNDC maps the cursor to [-1,1]² with y up.
func (input *Input) PointerNDC() (float32, float32) {
	if input.WindowWidth <= 0 || input.WindowHeight <= 0 {
		return 0, 0
	}
	x := input.MouseX/float64(input.WindowWidth)*2 - 1
	y := 1 - input.MouseY/float64(input.WindowHeight)*2
	return float32(clamp(x, -1, 1)), float32(clamp(y, -1, 1))
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// dispatchInput publishes this frame's edges: a resize first, then pointer
// motion, clicks and key presses.
func dispatchInput(input *Input, bus *EventBus) {
	w, h := input.FramebufferWidth, input.FramebufferHeight
	if w > 0 && h > 0 && (w != input.sentFbWidth || h != input.sentFbHeight) {
		input.sentFbWidth, input.sentFbHeight = w, h
		if input.sentAny {
			bus.Emit(Event{Type: EventResized, Width: w, Height: h})
		}
	}

	x, y := input.PointerNDC()
	if !input.sentAny || input.MouseX != input.sentMouseX || input.MouseY != input.sentMouseY {
		input.sentMouseX, input.sentMouseY = input.MouseX, input.MouseY
		bus.Emit(Event{Type: EventPointerMoved, X: x, Y: y})
	}
	input.sentAny = true

	if input.JustPressed[MouseButtonLeft] {
		bus.Emit(Event{Type: EventClick, X: x, Y: y})
	}
	for key := KeyA; key < MouseButtonLeft; key++ {
		if input.JustPressed[key] {
			bus.Emit(Event{Type: EventKeyPressed, Key: key})
		}
	}
}

var mouseToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:         glfw.KeyA,
	KeyB:         glfw.KeyB,
	KeyC:         glfw.KeyC,
	KeyD:         glfw.KeyD,
	KeyE:         glfw.KeyE,
	KeyF:         glfw.KeyF,
	KeyG:         glfw.KeyG,
	KeyH:         glfw.KeyH,
	KeyI:         glfw.KeyI,
	KeyJ:         glfw.KeyJ,
	KeyK:         glfw.KeyK,
	KeyL:         glfw.KeyL,
	KeyM:         glfw.KeyM,
	KeyN:         glfw.KeyN,
	KeyO:         glfw.KeyO,
	KeyP:         glfw.KeyP,
	KeyQ:         glfw.KeyQ,
	KeyR:         glfw.KeyR,
	KeyS:         glfw.KeyS,
	KeyT:         glfw.KeyT,
	KeyU:         glfw.KeyU,
	KeyV:         glfw.KeyV,
	KeyW:         glfw.KeyW,
	KeyX:         glfw.KeyX,
	KeyY:         glfw.KeyY,
	KeyZ:         glfw.KeyZ,
	Key0:         glfw.Key0,
	Key1:         glfw.Key1,
	Key2:         glfw.Key2,
	Key3:         glfw.Key3,
	Key4:         glfw.Key4,
	Key5:         glfw.Key5,
	Key6:         glfw.Key6,
	Key7:         glfw.Key7,
	Key8:         glfw.Key8,
	Key9:         glfw.Key9,
	KeySpace:     glfw.KeySpace,
	KeyEnter:     glfw.KeyEnter,
	KeyEscape:    glfw.KeyEscape,
	KeyTab:       glfw.KeyTab,
	KeyBackspace: glfw.KeyBackspace,
	KeyInsert:    glfw.KeyInsert,
	KeyDelete:    glfw.KeyDelete,
	KeyRight:     glfw.KeyRight,
	KeyLeft:      glfw.KeyLeft,
	KeyDown:      glfw.KeyDown,
	KeyUp:        glfw.KeyUp,
	KeyF1:        glfw.KeyF1,
	KeyF2:        glfw.KeyF2,
	KeyF3:        glfw.KeyF3,
	KeyF4:        glfw.KeyF4,
	KeyF5:        glfw.KeyF5,
	KeyF6:        glfw.KeyF6,
	KeyF7:        glfw.KeyF7,
	KeyF8:        glfw.KeyF8,
	KeyF9:        glfw.KeyF9,
	KeyF10:       glfw.KeyF10,
	KeyF11:       glfw.KeyF11,
	KeyF12:       glfw.KeyF12,
	KeyMinus:     glfw.KeyMinus,
	KeyEqual:     glfw.KeyEqual,
	KeyKPPlus:    glfw.KeyKPAdd,
	KeyKPMinus:   glfw.KeyKPSubtract,
	KeyShift:     glfw.KeyLeftShift,
	KeyControl:   glfw.KeyLeftControl,
	KeyLeftAlt:   glfw.KeyLeftAlt,
}
