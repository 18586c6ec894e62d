// Package viewer draws fairing shells and their debris with OpenGL.
//
// Every panel gets its own vertex array so jettisoned panels can move
// independently; the whole scene renders into an offscreen framebuffer whose
// color texture the editor window displays.
package viewer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/fairingkit/internal/camera"
	"github.com/Faultbox/fairingkit/internal/viewer/shaders"
	"github.com/Faultbox/fairingkit/pkg/fairing"
	"github.com/Faultbox/fairingkit/pkg/math"
)

// gpuMesh is one panel uploaded to the GPU.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	model      math.Mat4
}

// Renderer owns the GL resources of the preview.
type Renderer struct {
	Camera *camera.OrbitCamera

	fb *framebuffer

	program       uint32
	locModel      int32
	locView       int32
	locProjection int32
	locLightDir   int32
	locAmbient    int32
	locDiffuse    int32
	locTexture    int32

	atlas    uint32
	fallback uint32
	meshes   []gpuMesh

	log *zap.Logger
}

// NewRenderer creates the framebuffer and shader program. A GL context must
// be current.
func NewRenderer(width, height int32, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{Camera: camera.NewOrbitCamera(), log: log}

	fb, err := newFramebuffer(width, height)
	if err != nil {
		return nil, fmt.Errorf("framebuffer: %w", err)
	}
	r.fb = fb

	r.program, err = compileProgram(shaders.ShellVertexShader, shaders.ShellFragmentShader)
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("shader: %w", err)
	}
	r.locModel = uniform(r.program, "uModel")
	r.locView = uniform(r.program, "uView")
	r.locProjection = uniform(r.program, "uProjection")
	r.locLightDir = uniform(r.program, "uLightDir")
	r.locAmbient = uniform(r.program, "uAmbient")
	r.locDiffuse = uniform(r.program, "uDiffuse")
	r.locTexture = uniform(r.program, "uTexture")

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []uint8{255, 255, 255, 255})
	r.fallback = uploadTexture(white)

	return r, nil
}

// SetAtlas replaces the texture sampled by all three surface regions.
func (r *Renderer) SetAtlas(img *image.RGBA) {
	if r.atlas != 0 {
		gl.DeleteTextures(1, &r.atlas)
		r.atlas = 0
	}
	if img == nil || len(img.Pix) == 0 {
		return
	}
	r.atlas = uploadTexture(img)
}

// SetShell uploads the panels of s in place and fits the camera to it.
func (r *Renderer) SetShell(s *fairing.Shell) {
	r.clearMeshes()
	if s == nil {
		return
	}
	for i := range s.Panels {
		r.meshes = append(r.meshes, uploadMesh(&s.Panels[i].Mesh))
	}
	r.Camera.FitBounds(s.Bounds)
	r.log.Debug("shell uploaded",
		zap.Int("panels", len(r.meshes)),
		zap.Int("vertices", s.VertexCount()))
}

// SetDebris replaces the scene with the pieces of d.
func (r *Renderer) SetDebris(d *Debris) {
	r.clearMeshes()
	for i := range d.Pieces {
		r.meshes = append(r.meshes, uploadMesh(&d.Pieces[i].Panel.Mesh))
	}
	r.UpdateDebris(d)
}

// UpdateDebris copies the current piece transforms. The pieces must be the
// ones passed to SetDebris.
func (r *Renderer) UpdateDebris(d *Debris) {
	for i := range d.Pieces {
		if i < len(r.meshes) {
			r.meshes[i].model = d.Pieces[i].ModelMatrix()
		}
	}
}

// Resize changes the offscreen target size.
func (r *Renderer) Resize(width, height int32) {
	r.fb.resize(width, height)
}

// Render draws the scene and returns the color texture.
func (r *Renderer) Render() uint32 {
	restore := r.fb.bind()
	defer restore()

	gl.ClearColor(0.12, 0.13, 0.16, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if len(r.meshes) == 0 {
		return r.fb.colorTexture
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// inner walls are seen from behind when looking into an open shell
	gl.Disable(gl.CULL_FACE)

	gl.UseProgram(r.program)

	aspect := float32(r.fb.width) / float32(r.fb.height)
	projection := r.Camera.ProjectionMatrix(aspect)
	view := r.Camera.ViewMatrix()
	gl.UniformMatrix4fv(r.locProjection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, view.Ptr())

	gl.Uniform3f(r.locLightDir, 0.5, 1.0, 0.7)
	gl.Uniform3f(r.locAmbient, 0.35, 0.35, 0.35)
	gl.Uniform3f(r.locDiffuse, 0.65, 0.65, 0.65)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.locTexture, 0)
	tex := r.atlas
	if tex == 0 {
		tex = r.fallback
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)

	for i := range r.meshes {
		m := &r.meshes[i]
		gl.UniformMatrix4fv(r.locModel, 1, false, m.model.Ptr())
		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)

	return r.fb.colorTexture
}

// Destroy releases all GL resources.
func (r *Renderer) Destroy() {
	r.clearMeshes()
	if r.atlas != 0 {
		gl.DeleteTextures(1, &r.atlas)
		r.atlas = 0
	}
	if r.fallback != 0 {
		gl.DeleteTextures(1, &r.fallback)
		r.fallback = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	if r.fb != nil {
		r.fb.destroy()
	}
}

func (r *Renderer) clearMeshes() {
	for i := range r.meshes {
		m := &r.meshes[i]
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	r.meshes = r.meshes[:0]
}

func uploadMesh(mesh *fairing.Mesh) gpuMesh {
	m := gpuMesh{model: math.Identity()}
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return m
	}
	stride := int32(unsafe.Sizeof(fairing.Vertex{}))

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	// position, normal, texcoord
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	m.indexCount = int32(len(mesh.Indices))
	return m
}

func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	return texID
}
