// Package renderer draws hair frames with OpenGL line strips.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/VincentWang001/hairgl/internal/engine/debug"
	"github.com/VincentWang001/hairgl/internal/engine/lighting"
	"github.com/VincentWang001/hairgl/internal/engine/shader"
	"github.com/VincentWang001/hairgl/internal/hair"
	"github.com/VincentWang001/hairgl/internal/logger"
	"github.com/VincentWang001/hairgl/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

const strandVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aTangent;
layout (location = 2) in float aFraction;
layout (location = 3) in float aWidth;

uniform mat4 uViewProj;

out vec3 vPos;
out vec3 vTangent;
out float vFraction;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	vPos = aPos;
	vTangent = aTangent;
	vFraction = aFraction;
}
`

// Kajiya-Kay, matching lighting.ShadeStrand.
const strandFragmentShader = `
#version 410 core

in vec3 vPos;
in vec3 vTangent;
in float vFraction;

uniform vec4 uColor;
uniform float uAmbient;
uniform float uDiffuse;
uniform float uSpecular;
uniform float uSpecularPower;
uniform vec3 uLightDir;
uniform vec3 uLightColor;
uniform vec3 uEye;
uniform float uShade;

out vec4 FragColor;

void main() {
	if (uShade < 0.5) {
		FragColor = uColor;
		return;
	}
	vec3 t = normalize(vTangent);
	vec3 v = normalize(uEye - vPos);
	vec3 h = normalize(uLightDir + v);
	float tl = dot(t, uLightDir);
	float th = dot(t, h);
	float diffuse = sqrt(max(0.0, 1.0 - tl * tl));
	float specular = pow(sqrt(max(0.0, 1.0 - th * th)), uSpecularPower);
	vec3 c = uColor.rgb * (uAmbient + uDiffuse * diffuse) * uLightColor + uSpecular * specular * uLightColor;
	FragColor = vec4(clamp(c, 0.0, 1.0), uColor.a);
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uViewProj;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`

var (
	guideColor = math.Vec4{X: 0.9, Y: 0.2, Z: 0.2, W: 1}
	meshColor  = math.Vec4{X: 0.3, Y: 0.5, Z: 0.9, W: 1}
	boundColor = math.Vec4{X: 0.5, Y: 0.5, Z: 0.5, W: 1}
)

// buffer is one VAO/VBO pair.
type buffer struct {
	vao, vbo uint32
	capacity int // bytes
}

func (b *buffer) upload(data []float32) {
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	size := len(data) * 4
	if size == 0 {
		return
	}
	if size > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
		b.capacity = size
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&data[0]))
}

func (b *buffer) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
}

var _ hair.Backend = (*Renderer)(nil)

// Renderer is a hair.Backend drawing into the current GL context.
// Submit uploads a frame; Draw renders the last uploaded one.
type Renderer struct {
	config Config

	strandProgram *shader.Program
	lineProgram   *shader.Program

	strands buffer
	mesh    buffer
	bounds  buffer

	batch       debug.StrandBatch
	meshVerts   int
	boundsVerts int
	kind        hair.FrameKind
	material    hair.MaterialConfig

	viewProj math.Mat4
	eye      math.Vec3
	light    lighting.Light
}

// New creates a renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		viewProj: math.Identity(),
		light:    lighting.DefaultLight(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	if r.strandProgram, err = shader.NewProgram(strandVertexShader, strandFragmentShader); err != nil {
		return nil, fmt.Errorf("strand shader: %w", err)
	}
	if r.lineProgram, err = shader.NewProgram(lineVertexShader, lineFragmentShader); err != nil {
		r.strandProgram.Delete()
		return nil, fmt.Errorf("line shader: %w", err)
	}

	r.strands = newBuffer()
	stride := int32(debug.StrandVertexFloats * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 7*4)
	gl.EnableVertexAttribArray(3)

	r.mesh = newBuffer()
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	r.bounds = newBuffer()
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// newBuffer creates and binds a VAO/VBO pair so attributes can be set up.
func newBuffer() buffer {
	var b buffer
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	return b
}

// Close releases GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.strands.delete()
	r.mesh.delete()
	r.bounds.delete()
	r.strandProgram.Delete()
	r.lineProgram.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns width/height of the viewport.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetCamera sets the view-projection and the eye position used by Draw.
func (r *Renderer) SetCamera(view, projection math.Mat4, eye math.Vec3) {
	r.viewProj = projection.Mul(view)
	r.eye = eye
}

// SetLight replaces the directional light.
func (r *Renderer) SetLight(l lighting.Light) {
	r.light = l
}

// SetBounds uploads a bounding box line list drawn with every frame.
func (r *Renderer) SetBounds(lines []float32) {
	r.bounds.upload(lines)
	r.boundsVerts = len(lines) / 3
	gl.BindVertexArray(0)
}

// Submit uploads f for drawing.
func (r *Renderer) Submit(f *hair.Frame) error {
	r.batch.Reset()
	r.batch.Pack(f)
	r.strands.upload(r.batch.Vertices)

	mesh := debug.FlattenLines(f.GrowthMesh)
	r.mesh.upload(mesh)
	r.meshVerts = len(mesh) / 3

	gl.BindVertexArray(0)

	r.kind = f.Kind
	r.material = f.Material
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("renderer: upload failed with GL error %#x", code)
	}
	return nil
}

// Draw clears the screen and renders the last submitted frame.
func (r *Renderer) Draw() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.lineProgram.Use()
	r.lineProgram.SetMat4("uViewProj", r.viewProj)
	if r.boundsVerts > 0 {
		r.lineProgram.SetVec4("uColor", boundColor)
		gl.BindVertexArray(r.bounds.vao)
		gl.DrawArrays(gl.LINES, 0, int32(r.boundsVerts))
	}
	if r.meshVerts > 0 {
		r.lineProgram.SetVec4("uColor", meshColor)
		gl.BindVertexArray(r.mesh.vao)
		gl.DrawArrays(gl.LINES, 0, int32(r.meshVerts))
	}

	if len(r.batch.Counts) > 0 {
		p := r.strandProgram
		p.Use()
		p.SetMat4("uViewProj", r.viewProj)
		if r.kind == hair.FrameGuides {
			p.SetVec4("uColor", guideColor)
			p.SetFloat("uShade", 0)
		} else {
			m := r.material
			if m.Color.W <= 0 {
				m.Color.W = 1
			}
			p.SetVec4("uColor", m.Color)
			p.SetFloat("uShade", 1)
			p.SetFloat("uAmbient", m.Ambient)
			p.SetFloat("uDiffuse", m.Diffuse)
			p.SetFloat("uSpecular", m.Specular)
			p.SetFloat("uSpecularPower", m.SpecularPower)
			p.SetVec3("uLightDir", r.light.Direction)
			p.SetVec3("uLightColor", r.light.Color)
			p.SetVec3("uEye", r.eye)
		}
		gl.BindVertexArray(r.strands.vao)
		gl.MultiDrawArrays(gl.LINE_STRIP, &r.batch.Firsts[0], &r.batch.Counts[0], int32(len(r.batch.Counts)))
	}

	gl.BindVertexArray(0)
}

// Stats returns the strand and vertex counts of the last submitted frame.
func (r *Renderer) Stats() (strands, vertices int) {
	return len(r.batch.Counts), r.batch.VertexCount()
}
