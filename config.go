package particlefx

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidConfig = errors.New("invalid config")

type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// PresetOverride changes selected fields of a built-in preset.
type PresetOverride struct {
	Count      *int      `json:"count,omitempty"`
	PointSize  *float32  `json:"pointSize,omitempty"`
	Color      []float32 `json:"color,omitempty"`
	Additive   *bool     `json:"additive,omitempty"`
	Background *string   `json:"background,omitempty"`
}

type Config struct {
	Window   WindowConfig `json:"window"`
	Renderer string       `json:"renderer"`
	Debug    bool         `json:"debug"`
	Seed     int64        `json:"seed"`

	// Background is used by every demo that has none of its own.
	Background string                    `json:"background,omitempty"`
	Demos      []string                  `json:"demos"`
	Presets    map[string]PresetOverride `json:"presets,omitempty"`
}

func DefaultConfig() Config {
	presets := DefaultPresets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return Config{
		Window:   WindowConfig{Width: 1280, Height: 720, Title: "particlefx"},
		Renderer: string(RendererWGPU),
		Demos:    names,
	}
}

// LoadConfig reads a JSON config file on top of DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config as indented JSON, in the format LoadConfig reads.
func (c Config) Save(filename string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, bytes, 0644)
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if _, err := ParseRendererName(c.Renderer); err != nil {
		errs = append(errs, err)
	}
	if len(c.Demos) == 0 {
		errs = append(errs, errors.New("no demos"))
	}
	for _, name := range c.Demos {
		if _, err := PresetByName(name); err != nil {
			errs = append(errs, err)
		}
	}
	for name, o := range c.Presets {
		if _, err := PresetByName(name); err != nil {
			errs = append(errs, err)
		}
		if o.Count != nil && *o.Count < 0 {
			errs = append(errs, fmt.Errorf("preset %s: negative count %d", name, *o.Count))
		}
		if o.PointSize != nil && *o.PointSize <= 0 {
			errs = append(errs, fmt.Errorf("preset %s: point size %v", name, *o.PointSize))
		}
		if o.Color != nil && len(o.Color) != 3 && len(o.Color) != 4 {
			errs = append(errs, fmt.Errorf("preset %s: color needs 3 or 4 components, got %d", name, len(o.Color)))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c Config) RendererName() RendererName {
	name, err := ParseRendererName(c.Renderer)
	if err != nil {
		return RendererWGPU
	}
	return name
}

// ResolvePresets builds the demo rotation in the configured order.
func (c Config) ResolvePresets() ([]Preset, error) {
	presets := make([]Preset, 0, len(c.Demos))
	for _, name := range c.Demos {
		p, err := PresetByName(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if o, ok := c.Presets[name]; ok {
			p = o.apply(p)
		}
		if p.Background == "" {
			p.Background = c.Background
		}
		presets = append(presets, p)
	}
	return presets, nil
}

func (o PresetOverride) apply(p Preset) Preset {
	if o.Count != nil {
		p.Count = *o.Count
	}
	if o.PointSize != nil {
		p.PointSize = *o.PointSize
	}
	if len(o.Color) >= 3 {
		alpha := p.Color[3]
		if len(o.Color) == 4 {
			alpha = o.Color[3]
		}
		p.Color = mgl32.Vec4{o.Color[0], o.Color[1], o.Color[2], alpha}
	}
	if o.Additive != nil {
		p.Additive = *o.Additive
	}
	if o.Background != nil {
		p.Background = *o.Background
	}
	return p
}
