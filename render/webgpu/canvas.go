package webgpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/particlefx/render"
	"github.com/gekko3d/particlefx/shaders"
)

// bytes per instance: one vec3<f32>
const attributeStride = 12

var (
	alphaBlend = wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
	additiveBlend = wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
	}
)

type spritePass struct {
	attributes *wgpu.Buffer
	uniforms   *wgpu.Buffer
	bindGroup  *wgpu.BindGroup
}

func (p *spritePass) release() {
	if p == nil {
		return
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
	}
	if p.uniforms != nil {
		p.uniforms.Release()
	}
	if p.attributes != nil {
		p.attributes.Release()
	}
}

type backgroundPass struct {
	pipeline  *wgpu.RenderPipeline
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	bindGroup *wgpu.BindGroup
}

func (p *backgroundPass) release() {
	if p == nil {
		return
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
	}
	if p.view != nil {
		p.view.Release()
	}
	if p.texture != nil {
		p.texture.Release()
	}
	if p.pipeline != nil {
		p.pipeline.Release()
	}
}

type canvas struct {
	engine   *Engine
	label    string
	count    int
	clear    wgpu.Color
	pipeline *wgpu.RenderPipeline

	particles  *spritePass
	anchor     *spritePass
	background *backgroundPass

	released bool
}

func (e *Engine) NewCanvas(desc render.CanvasDescriptor) (render.Canvas, error) {
	c := &canvas{
		engine: e,
		label:  desc.Label,
		count:  desc.Count(),
		clear: wgpu.Color{
			R: desc.ClearColor[0],
			G: desc.ClearColor[1],
			B: desc.ClearColor[2],
			A: desc.ClearColor[3],
		},
	}

	blend := alphaBlend
	if desc.Additive {
		blend = additiveBlend
	}
	var err error
	c.pipeline, err = e.pointsPipeline(desc.Label, blend)
	if err != nil {
		c.Release()
		return nil, err
	}

	c.particles, err = e.newSpritePass(desc.Label+" particles", desc.Attributes[:3*c.count], c.pipeline)
	if err != nil {
		c.Release()
		return nil, err
	}
	if desc.Anchor {
		c.anchor, err = e.newSpritePass(desc.Label+" anchor", []float32{0, 0, 0}, c.pipeline)
		if err != nil {
			c.Release()
			return nil, err
		}
	}
	if desc.Background != nil {
		c.background, err = e.newBackgroundPass(desc.Label, desc.Background)
		if err != nil {
			c.Release()
			return nil, err
		}
	}
	return c, nil
}

func (e *Engine) pointsPipeline(label string, blend wgpu.BlendState) (*wgpu.RenderPipeline, error) {
	module, err := e.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + " points shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: points shader: %w", err)
	}
	defer module.Release()

	pipeline, err := e.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: label + " points pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: attributeStride,
				StepMode:    wgpu.VertexStepModeInstance,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    e.config.Format,
				Blend:     &blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: points pipeline: %w", err)
	}
	return pipeline, nil
}

func (e *Engine) newSpritePass(label string, attributes []float32, pipeline *wgpu.RenderPipeline) (*spritePass, error) {
	p := &spritePass{}
	var err error

	// keep at least one instance to avoid a zero-sized buffer
	contents := attributes
	if len(contents) == 0 {
		contents = []float32{0, 0, 0}
	}
	p.attributes, err = e.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " attributes",
		Contents: wgpu.ToBytes(contents),
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: %s attributes: %w", label, err)
	}

	var zero render.Uniforms
	p.uniforms, err = e.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " uniforms",
		Contents: uniformBytes(&zero),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("webgpu: %s uniforms: %w", label, err)
	}

	p.bindGroup, err = e.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.uniforms, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("webgpu: %s bind group: %w", label, err)
	}
	return p, nil
}

func (e *Engine) newBackgroundPass(label string, img *image.RGBA) (*backgroundPass, error) {
	p := &backgroundPass{}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	extent := wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}

	var err error
	p.texture, err = e.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label + " background",
		Size:          extent,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: background texture: %w", err)
	}
	err = e.queue.WriteTexture(p.texture.AsImageCopy(), img.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(img.Stride),
		RowsPerImage: uint32(h),
	}, &extent)
	if err != nil {
		p.release()
		return nil, fmt.Errorf("webgpu: upload background: %w", err)
	}
	p.view, err = p.texture.CreateView(nil)
	if err != nil {
		p.release()
		return nil, fmt.Errorf("webgpu: background view: %w", err)
	}

	module, err := e.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + " background shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.BackgroundWGSL},
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("webgpu: background shader: %w", err)
	}
	defer module.Release()

	p.pipeline, err = e.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: label + " background pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    e.config.Format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("webgpu: background pipeline: %w", err)
	}

	p.bindGroup, err = e.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: p.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: p.view},
			{Binding: 1, Sampler: e.sampler},
		},
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("webgpu: background bind group: %w", err)
	}
	return p, nil
}

func uniformBytes(u *render.Uniforms) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(u)), unsafe.Sizeof(*u))
}

// Resize is a no-op: the surface is owned by the engine and every size
// dependent value arrives through the uniforms.
func (c *canvas) Resize(width, height int) {}

func (c *canvas) WriteAttributes(data []float32) {
	if c.released || len(data) == 0 || c.count == 0 {
		return
	}
	if len(data) > 3*c.count {
		data = data[:3*c.count]
	}
	_ = c.engine.queue.WriteBuffer(c.particles.attributes, 0, wgpu.ToBytes(data))
}

func (c *canvas) Draw(frame render.Frame) error {
	if c.released {
		return render.ErrReleased
	}
	e := c.engine

	if err := e.queue.WriteBuffer(c.particles.uniforms, 0, uniformBytes(&frame.Particles)); err != nil {
		return fmt.Errorf("webgpu: write uniforms: %w", err)
	}
	drawAnchor := frame.Anchor != nil && c.anchor != nil
	if drawAnchor {
		if err := e.queue.WriteBuffer(c.anchor.uniforms, 0, uniformBytes(frame.Anchor)); err != nil {
			return fmt.Errorf("webgpu: write anchor uniforms: %w", err)
		}
	}

	nextTexture, err := e.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("webgpu: acquire surface texture: %w", err)
	}
	defer nextTexture.Release()
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("webgpu: surface view: %w", err)
	}
	defer view.Release()

	encoder, err := e.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("webgpu: command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: c.label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: c.clear,
		}},
	})
	defer pass.Release()

	if c.background != nil {
		pass.SetPipeline(c.background.pipeline)
		pass.SetBindGroup(0, c.background.bindGroup, nil)
		pass.Draw(3, 1, 0, 0)
	}

	pass.SetPipeline(c.pipeline)
	if c.count > 0 {
		pass.SetBindGroup(0, c.particles.bindGroup, nil)
		pass.SetVertexBuffer(0, c.particles.attributes, 0, c.particles.attributes.GetSize())
		// six corners per instanced quad
		pass.Draw(6, uint32(c.count), 0, 0)
	}
	if drawAnchor {
		pass.SetBindGroup(0, c.anchor.bindGroup, nil)
		pass.SetVertexBuffer(0, c.anchor.attributes, 0, c.anchor.attributes.GetSize())
		pass.Draw(6, 1, 0, 0)
	}
	if err := pass.End(); err != nil {
		return fmt.Errorf("webgpu: end pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("webgpu: finish encoder: %w", err)
	}
	defer cmd.Release()
	e.queue.Submit(cmd)
	e.surface.Present()
	return nil
}

func (c *canvas) Release() {
	if c.released {
		return
	}
	c.released = true
	c.background.release()
	c.anchor.release()
	c.particles.release()
	if c.pipeline != nil {
		c.pipeline.Release()
	}
	c.background, c.anchor, c.particles, c.pipeline = nil, nil, nil, nil
}
