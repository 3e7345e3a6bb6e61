package particlefx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/particlefx/render"
	"github.com/gekko3d/particlefx/render/opengl"
	"github.com/gekko3d/particlefx/render/webgpu"
)

var ErrUnknownRenderer = errors.New("unknown renderer")

// RendererName identifies a GPU backend.
type RendererName string

const (
	RendererWGPU RendererName = "wgpu"
	RendererGL   RendererName = "gl"
)

func ParseRendererName(s string) (RendererName, error) {
	switch name := RendererName(strings.ToLower(strings.TrimSpace(s))); name {
	case RendererWGPU, RendererGL:
		return name, nil
	case "":
		return RendererWGPU, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRenderer, s)
}

// WindowAPI is the client API the backend needs the window created with.
func (n RendererName) WindowAPI() WindowAPI {
	if n == RendererGL {
		return WindowAPIOpenGL
	}
	return WindowAPINone
}

// RendererState holds the engine every demo canvas is created from.
type RendererState struct {
	Name   RendererName
	Engine render.Engine
}

type engineFactory func(win *glfw.Window) (render.Engine, error)

var engineFactories = map[RendererName]engineFactory{
	RendererWGPU: func(win *glfw.Window) (render.Engine, error) { return webgpu.New(win) },
	RendererGL:   func(win *glfw.Window) (render.Engine, error) { return opengl.New(win) },
}

func NewEngine(name RendererName, ws *WindowState) (render.Engine, error) {
	factory, ok := engineFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	if ws == nil || ws.windowGlfw == nil {
		return nil, errors.New("renderer needs a window")
	}
	engine, err := factory(ws.windowGlfw)
	if err != nil {
		return nil, fmt.Errorf("start %s renderer: %w", name, err)
	}
	return engine, nil
}

// RendererModule creates the shared window for the chosen backend, starts
// the engine and releases both when the app quits.
type RendererModule struct {
	Name   RendererName
	Width  int
	Height int
	Title  string
}

func (m RendererModule) Install(app *App, cmd *Commands) {
	name := m.Name
	if name == "" {
		name = RendererWGPU
	}
	ensureSingleRenderer(app, name)
	app.UseModules(NewPlatformWindow(m.Width, m.Height, m.Title, name.WindowAPI()))

	ws, _ := Resource[WindowState](app)
	engine, err := NewEngine(name, ws)
	if err != nil {
		app.Logger().Errorf("%v", err)
		panic(err)
	}
	app.addResources(&RendererState{Name: name, Engine: engine})
	app.Logger().Infof("Renderer selected: %s", name)

	app.UseSystem(
		System(releaseRendererSystem).
			InStage(Finale).
			InState(OnExit(StateQuit)),
	)
}

func releaseRendererSystem(rs *RendererState, ws *WindowState) {
	if rs.Engine != nil {
		rs.Engine.Release()
		rs.Engine = nil
	}
	ws.destroy()
}
