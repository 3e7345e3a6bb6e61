package particlefx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderModule appends its name to a shared log when installed.
type orderModule struct {
	name string
	log  *[]string
}

func (m orderModule) Install(app *App, cmd *Commands) {
	*m.log = append(*m.log, m.name)
}

// rendererTagModule claims the window for a backend without opening one.
type rendererTagModule struct {
	name RendererName
}

func (m rendererTagModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, m.name)
}

func TestAppBuilder_BuildInstallsInOrder(t *testing.T) {
	var installed []string
	builder := NewAppBuilder().
		UseModule(orderModule{"time", &installed}).
		UseModule(orderModule{"assets", &installed}, orderModule{"demos", &installed})

	assert.Empty(t, installed, "nothing is installed before Build")

	app := builder.Build()

	assert.Equal(t, []string{"time", "assets", "demos"}, installed)
	assert.Len(t, app.modules, 3)
}

func TestAppBuilder_UseStatesReachesApp(t *testing.T) {
	app := NewAppBuilder().
		UseStates(StateRunning, StateQuit).
		Build()

	require.True(t, app.stateful)
	assert.Equal(t, StateRunning, app.initialState)
	assert.Equal(t, StateQuit, app.finalState)

	// stateful systems can be registered for both states
	assert.NotPanics(t, func() {
		app.UseSystem(System(func() {}).InState(OnEnter(StateQuit)))
	})
}

func TestAppBuilder_StatelessByDefault(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.False(t, app.stateful)
	assert.True(t, app.Step())
}

func TestAppBuilder_SecondRendererPanics(t *testing.T) {
	builder := NewAppBuilder().
		UseStates(StateRunning, StateQuit).
		UseModule(rendererTagModule{RendererWGPU}).
		UseModule(RendererModule{Name: RendererGL})

	assert.PanicsWithValue(t, "renderer gl requested but wgpu is already installed", func() {
		builder.Build()
	})
}
