package opengl

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gekko3d/particlefx/render"
	"github.com/gekko3d/particlefx/shaders"
)

type pointUniforms struct {
	viewProj, model, colorA, colorB int32
	pointer, time, pointSize        int32
	fill, hold, disperse            int32
	minSize, maxSize                int32
	minOpac, maxOpac                int32
	drift, maxOffset                int32
	mode, shape                     int32
}

func lookupPointUniforms(program uint32) pointUniforms {
	return pointUniforms{
		viewProj:  uniformLocation(program, "uViewProj"),
		model:     uniformLocation(program, "uModel"),
		colorA:    uniformLocation(program, "uColorA"),
		colorB:    uniformLocation(program, "uColorB"),
		pointer:   uniformLocation(program, "uPointer"),
		time:      uniformLocation(program, "uTime"),
		pointSize: uniformLocation(program, "uPointSize"),
		fill:      uniformLocation(program, "uFillDuration"),
		hold:      uniformLocation(program, "uHoldDuration"),
		disperse:  uniformLocation(program, "uDisperseDuration"),
		minSize:   uniformLocation(program, "uMinSize"),
		maxSize:   uniformLocation(program, "uMaxSize"),
		minOpac:   uniformLocation(program, "uMinOpacity"),
		maxOpac:   uniformLocation(program, "uMaxOpacity"),
		drift:     uniformLocation(program, "uDrift"),
		maxOffset: uniformLocation(program, "uMaxOffset"),
		mode:      uniformLocation(program, "uMode"),
		shape:     uniformLocation(program, "uShape"),
	}
}

func (l pointUniforms) apply(u *render.Uniforms) {
	gl.UniformMatrix4fv(l.viewProj, 1, false, &u.ViewProj[0])
	gl.UniformMatrix4fv(l.model, 1, false, &u.Model[0])
	gl.Uniform4fv(l.colorA, 1, &u.ColorA[0])
	gl.Uniform4fv(l.colorB, 1, &u.ColorB[0])
	gl.Uniform2f(l.pointer, u.Pointer[0], u.Pointer[1])
	gl.Uniform1f(l.time, u.Time)
	gl.Uniform1f(l.pointSize, u.PointSize)
	gl.Uniform1f(l.fill, u.FillDuration)
	gl.Uniform1f(l.hold, u.HoldDuration)
	gl.Uniform1f(l.disperse, u.DisperseDuration)
	gl.Uniform1f(l.minSize, u.MinSize)
	gl.Uniform1f(l.maxSize, u.MaxSize)
	gl.Uniform1f(l.minOpac, u.MinOpacity)
	gl.Uniform1f(l.maxOpac, u.MaxOpacity)
	gl.Uniform1f(l.drift, u.Drift)
	gl.Uniform1f(l.maxOffset, u.MaxOffset)
	gl.Uniform1ui(l.mode, uint32(u.Mode))
	gl.Uniform1ui(l.shape, uint32(u.Shape))
}

type instanced struct {
	vao, vbo uint32
	count    int32
}

func newInstanced(attributes []float32) instanced {
	var in instanced
	in.count = int32(len(attributes) / 3)
	gl.GenVertexArrays(1, &in.vao)
	gl.GenBuffers(1, &in.vbo)
	gl.BindVertexArray(in.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, in.vbo)
	if len(attributes) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(attributes)*4, gl.Ptr(attributes), gl.DYNAMIC_DRAW)
	}
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, glOffset(0))
	// one attribute per quad, not per corner
	gl.VertexAttribDivisor(0, 1)
	gl.BindVertexArray(0)
	return in
}

func (in *instanced) release() {
	if in.vbo != 0 {
		gl.DeleteBuffers(1, &in.vbo)
	}
	if in.vao != 0 {
		gl.DeleteVertexArrays(1, &in.vao)
	}
	in.vao, in.vbo = 0, 0
}

type canvas struct {
	engine   *Engine
	clear    [4]float32
	additive bool

	program  uint32
	uniforms pointUniforms

	particles instanced
	anchor    *instanced

	bgProgram uint32
	bgVAO     uint32
	bgTexture uint32
	bgSampler int32

	released bool
}

func (e *Engine) NewCanvas(desc render.CanvasDescriptor) (render.Canvas, error) {
	program, err := linkProgram(shaders.PointsVertGLSL, shaders.PointsFragGLSL)
	if err != nil {
		return nil, fmt.Errorf("opengl: %s points program: %w", desc.Label, err)
	}
	c := &canvas{
		engine:   e,
		additive: desc.Additive,
		program:  program,
		uniforms: lookupPointUniforms(program),
		clear: [4]float32{
			float32(desc.ClearColor[0]),
			float32(desc.ClearColor[1]),
			float32(desc.ClearColor[2]),
			float32(desc.ClearColor[3]),
		},
	}
	c.particles = newInstanced(desc.Attributes[:3*desc.Count()])
	if desc.Anchor {
		a := newInstanced([]float32{0, 0, 0})
		c.anchor = &a
	}
	if desc.Background != nil {
		if err := c.initBackground(desc.Background); err != nil {
			c.Release()
			return nil, fmt.Errorf("opengl: %s background: %w", desc.Label, err)
		}
	}
	return c, nil
}

func (c *canvas) initBackground(img *image.RGBA) error {
	program, err := linkProgram(shaders.BackgroundVertGLSL, shaders.BackgroundFragGLSL)
	if err != nil {
		return err
	}
	c.bgProgram = program
	c.bgSampler = uniformLocation(program, "uBackground")
	// core profile needs a bound VAO even without attributes
	gl.GenVertexArrays(1, &c.bgVAO)

	w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())
	gl.GenTextures(1, &c.bgTexture)
	gl.BindTexture(gl.TEXTURE_2D, c.bgTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (c *canvas) Resize(width, height int) {}

func (c *canvas) WriteAttributes(data []float32) {
	if c.released || len(data) == 0 || c.particles.count == 0 {
		return
	}
	if len(data) > 3*int(c.particles.count) {
		data = data[:3*int(c.particles.count)]
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, c.particles.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (c *canvas) Draw(frame render.Frame) error {
	if c.released {
		return render.ErrReleased
	}
	gl.ClearColor(c.clear[0], c.clear[1], c.clear[2], c.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.DEPTH_TEST)

	if c.bgProgram != 0 {
		gl.Disable(gl.BLEND)
		gl.UseProgram(c.bgProgram)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, c.bgTexture)
		gl.Uniform1i(c.bgSampler, 0)
		gl.BindVertexArray(c.bgVAO)
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
	}

	gl.Enable(gl.BLEND)
	if c.additive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.UseProgram(c.program)
	if c.particles.count > 0 {
		c.uniforms.apply(&frame.Particles)
		gl.BindVertexArray(c.particles.vao)
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, c.particles.count)
	}
	if frame.Anchor != nil && c.anchor != nil {
		c.uniforms.apply(frame.Anchor)
		gl.BindVertexArray(c.anchor.vao)
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, 1)
	}
	gl.BindVertexArray(0)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		return fmt.Errorf("opengl: draw: error 0x%x", errCode)
	}
	if c.engine.window != nil {
		c.engine.window.SwapBuffers()
	}
	return nil
}

func (c *canvas) Release() {
	if c.released {
		return
	}
	c.released = true
	c.particles.release()
	if c.anchor != nil {
		c.anchor.release()
		c.anchor = nil
	}
	if c.bgTexture != 0 {
		gl.DeleteTextures(1, &c.bgTexture)
	}
	if c.bgVAO != 0 {
		gl.DeleteVertexArrays(1, &c.bgVAO)
	}
	if c.bgProgram != 0 {
		gl.DeleteProgram(c.bgProgram)
	}
	if c.program != 0 {
		gl.DeleteProgram(c.program)
	}
	c.program, c.bgProgram, c.bgVAO, c.bgTexture = 0, 0, 0, 0
}
