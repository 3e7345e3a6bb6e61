package particlefx

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowAPI selects the client API the window is created for.
type WindowAPI int

const (
	// WindowAPINone creates a window without a GL context, for WebGPU.
	WindowAPINone WindowAPI = iota
	// WindowAPIOpenGL creates a window with an OpenGL 4.1 core context.
	WindowAPIOpenGL
)

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
	api          WindowAPI
}

// FramebufferSize is the drawable size in pixels.
func (s *WindowState) FramebufferSize() (int, int) {
	if s.windowGlfw == nil {
		return s.WindowWidth, s.WindowHeight
	}
	return s.windowGlfw.GetFramebufferSize()
}

func (s *WindowState) destroy() {
	if s.windowGlfw == nil {
		return
	}
	s.windowGlfw.Destroy()
	s.windowGlfw = nil
	glfw.Terminate()
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string, api WindowAPI) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	switch api {
	case WindowAPIOpenGL:
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	default:
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // WebGPU owns the surface
	}

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
		api:          api,
	}, nil
}

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource for the renderer and input modules.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
	API    WindowAPI
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string, api WindowAPI) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "particlefx"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
		API:    api,
	}
}

// Install provides the WindowState resource if missing.
func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		// single shared window
		return
	}

	ws, err := createWindowState(m.Width, m.Height, m.Title, m.API)
	if err != nil {
		app.Logger().Errorf("%v", err)
		panic(err)
	}
	app.addResources(ws)
	app.Logger().Infof("Created shared window (%dx%d) '%s'", m.Width, m.Height, m.Title)
}
