// Package webgpu renders particle canvases through WebGPU on a glfw window.
package webgpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/particlefx/render"
)

// Engine owns the device and the swapchain surface of one window.
// The window must have been created with glfw.ClientAPI = glfw.NoAPI.
type Engine struct {
	window   *glfw.Window
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	config   *wgpu.SurfaceConfiguration
	sampler  *wgpu.Sampler
}

var _ render.Engine = (*Engine)(nil)

func New(window *glfw.Window) (*Engine, error) {
	if window == nil {
		return nil, errors.New("webgpu: nil window")
	}
	e := &Engine{window: window}

	e.instance = wgpu.CreateInstance(nil)
	// wraps the GLFW window into a wgpu surface
	e.surface = e.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := e.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: e.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		e.Release()
		return nil, fmt.Errorf("webgpu: request adapter: %w", err)
	}
	e.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "particlefx device",
	})
	if err != nil {
		e.Release()
		return nil, fmt.Errorf("webgpu: request device: %w", err)
	}
	e.device = device
	e.queue = device.GetQueue()

	width, height := window.GetFramebufferSize()
	caps := e.surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		e.Release()
		return nil, errors.New("webgpu: surface reports no formats")
	}
	e.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	e.surface.Configure(adapter, device, e.config)

	e.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		e.Release()
		return nil, fmt.Errorf("webgpu: create sampler: %w", err)
	}

	return e, nil
}

func (e *Engine) Name() string { return "wgpu" }

func (e *Engine) Resize(width, height int) {
	if width <= 0 || height <= 0 || e.config == nil {
		return
	}
	e.config.Width = uint32(width)
	e.config.Height = uint32(height)
	e.surface.Configure(e.adapter, e.device, e.config)
}

func (e *Engine) Release() {
	if e.sampler != nil {
		e.sampler.Release()
		e.sampler = nil
	}
	if e.queue != nil {
		e.queue.Release()
		e.queue = nil
	}
	if e.device != nil {
		e.device.Release()
		e.device = nil
	}
	if e.adapter != nil {
		e.adapter.Release()
		e.adapter = nil
	}
	if e.surface != nil {
		e.surface.Release()
		e.surface = nil
	}
	if e.instance != nil {
		e.instance.Release()
		e.instance = nil
	}
}
