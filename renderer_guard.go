package particlefx

import (
	"fmt"
)

// RendererTag records which backend owns the window. Demos share one engine,
// so a second backend in the same app is a configuration error.
type RendererTag struct {
	Name RendererName
}

// ensureSingleRenderer tags the app with name, or panics if another backend
// already tagged it. Installing the same backend twice is allowed.
func ensureSingleRenderer(app *App, name RendererName) {
	if app == nil {
		panic("ensureSingleRenderer: app is nil")
	}
	tag, ok := Resource[RendererTag](app)
	if !ok {
		app.addResources(&RendererTag{Name: name})
		return
	}
	if tag.Name != name {
		msg := fmt.Sprintf("renderer %s requested but %s is already installed", name, tag.Name)
		app.Logger().Errorf("%s", msg)
		panic(msg)
	}
}
