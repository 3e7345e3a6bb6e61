// Command particlefx cycles through the particle demos; Space switches to
// the next one and Escape quits.
package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/gekko3d/particlefx"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "JSON config file")
		renderer   = flag.String("renderer", "", "GPU backend: wgpu or gl")
		width      = flag.Int("width", 0, "window width")
		height     = flag.Int("height", 0, "window height")
		background = flag.String("background", "", "background image for every demo")
		seed       = flag.Int64("seed", 0, "particle layout seed, 0 for random")
		debug      = flag.Bool("debug", false, "enable debug logging")
		dumpConfig = flag.String("write-config", "", "write the effective config to this file and exit")
	)
	flag.Parse()

	cfg := particlefx.DefaultConfig()
	if *configPath != "" {
		loaded, err := particlefx.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "renderer":
			cfg.Renderer = *renderer
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "background":
			cfg.Background = *background
		case "seed":
			cfg.Seed = *seed
		case "debug":
			cfg.Debug = *debug
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	if *dumpConfig != "" {
		if err := cfg.Save(*dumpConfig); err != nil {
			log.Fatalf("write config: %v", err)
		}
		return
	}

	presets, err := cfg.ResolvePresets()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	particlefx.NewAppBuilder().
		UseStates(particlefx.StateRunning, particlefx.StateQuit).
		UseModule(particlefx.LoggingModule{Prefix: "particlefx", Debug: cfg.Debug}).
		UseModule(particlefx.TimeModule{}).
		UseModule(particlefx.ProfilerModule{}).
		UseModule(particlefx.AssetServerModule{}).
		UseModule(particlefx.RendererModule{
			Name:   cfg.RendererName(),
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Title:  cfg.Window.Title,
		}).
		UseModule(particlefx.InputModule{}).
		UseModule(particlefx.DemoModule{Presets: presets, Seed: cfg.Seed}).
		Build().
		Run()
}
