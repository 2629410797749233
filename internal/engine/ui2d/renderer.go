// Package ui2d draws screen-space UI, such as coordinate labels, on top of
// the 3D scene using OpenGL.
package ui2d

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetview/internal/engine/shader"
)

const solidVertexShader = `
	#version 410 core

	layout (location = 0) in vec3 aPos;
	layout (location = 1) in vec4 aColor;

	uniform mat4 uProjection;

	out vec4 vColor;

	void main() {
		gl_Position = uProjection * vec4(aPos, 1.0);
		vColor = aColor;
	}
`

const solidFragmentShader = `
	#version 410 core

	in vec4 vColor;
	out vec4 FragColor;

	void main() {
		FragColor = vColor;
	}
`

const textVertexShader = `
	#version 410 core

	layout (location = 0) in vec3 aPos;
	layout (location = 1) in vec2 aTexCoord;
	layout (location = 2) in vec4 aColor;

	uniform mat4 uProjection;

	out vec2 vTexCoord;
	out vec4 vColor;

	void main() {
		gl_Position = uProjection * vec4(aPos, 1.0);
		vTexCoord = aTexCoord;
		vColor = aColor;
	}
`

// The glyph atlas is a single-channel texture; coverage lives in red.
const textFragmentShader = `
	#version 410 core

	uniform sampler2D uTexture;

	in vec2 vTexCoord;
	in vec4 vColor;
	out vec4 FragColor;

	void main() {
		float coverage = texture(uTexture, vTexCoord).r;
		FragColor = vec4(vColor.rgb, vColor.a * coverage);
	}
`

// Renderer uploads and draws a Batch.
type Renderer struct {
	screenWidth  int
	screenHeight int

	solidShader *shader.Program
	textShader  *shader.Program

	solidVAO, solidVBO uint32
	textVAO, textVBO   uint32

	atlas   *Atlas
	fontTex uint32
}

// New creates the UI renderer. Must be called with a current GL context.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{screenWidth: width, screenHeight: height, atlas: NewAtlas()}

	var err error
	r.solidShader, err = shader.Compile(solidVertexShader, solidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	r.textShader, err = shader.Compile(textVertexShader, textFragmentShader)
	if err != nil {
		r.solidShader.Delete()
		return nil, fmt.Errorf("create text shader: %w", err)
	}

	r.createBuffers()
	r.uploadAtlas()
	return r, nil
}

// Atlas returns the glyph atlas used for text.
func (r *Renderer) Atlas() *Atlas {
	return r.atlas
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// Draw renders the batch over whatever is in the framebuffer.
func (r *Renderer) Draw(b *Batch) {
	if b.SolidVertices() == 0 && b.TextVertices() == 0 {
		return
	}

	var prevDepth int32
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	proj := mgl64.Ortho(0, float64(r.screenWidth), float64(r.screenHeight), 0, -1, 1)

	if n := b.SolidVertices(); n > 0 {
		r.solidShader.Use()
		r.solidShader.SetMat4("uProjection", proj)

		gl.BindVertexArray(r.solidVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.solidVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(b.solid)*4, unsafe.Pointer(&b.solid[0]), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(n))
	}

	// Text on top of panels
	if n := b.TextVertices(); n > 0 {
		r.textShader.Use()
		r.textShader.SetMat4("uProjection", proj)
		gl.Uniform1i(r.textShader.Uniform("uTexture"), 0)

		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

		gl.BindVertexArray(r.textVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(b.text)*4, unsafe.Pointer(&b.text[0]), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(n))
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
}

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.solidVAO)
	gl.BindVertexArray(r.solidVAO)
	gl.GenBuffers(1, &r.solidVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.solidVBO)

	stride := int32(solidFloats * 4)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Color
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenVertexArrays(1, &r.textVAO)
	gl.BindVertexArray(r.textVAO)
	gl.GenBuffers(1, &r.textVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	stride = int32(textFloats * 4)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// TexCoord
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// Color
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (r *Renderer) uploadAtlas() {
	img := r.atlas.Image
	b := img.Bounds()

	gl.GenTextures(1, &r.fontTex)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	// Nearest keeps the bitmap glyphs crisp.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
		r.fontTex = 0
	}
	if r.solidVAO != 0 {
		gl.DeleteVertexArrays(1, &r.solidVAO)
		r.solidVAO = 0
	}
	if r.textVAO != 0 {
		gl.DeleteVertexArrays(1, &r.textVAO)
		r.textVAO = 0
	}
	if r.solidVBO != 0 {
		gl.DeleteBuffers(1, &r.solidVBO)
		r.solidVBO = 0
	}
	if r.textVBO != 0 {
		gl.DeleteBuffers(1, &r.textVBO)
		r.textVBO = 0
	}
	r.solidShader.Delete()
	r.textShader.Delete()
}
