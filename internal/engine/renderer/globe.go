package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetview/internal/engine/lighting"
	"github.com/Faultbox/planetview/internal/engine/shader"
)

const (
	sphereRings    = 48
	sphereSegments = 96
	markerSize     = 8
)

var (
	planetColor = [4]float32{0.18, 0.42, 0.72, 1}
	cloudColor  = [4]float32{1, 1, 1, 0.3}
	markerColor = [4]float32{0.95, 0.25, 0.2, 1}
)

const globeVertexShader = `
	#version 410 core

	layout (location = 0) in vec3 aPos;
	layout (location = 1) in vec3 aNormal;

	uniform mat4 uViewProj;
	uniform mat4 uModel;
	uniform float uPointSize;

	out vec3 vNormal;
	out vec3 vWorldPos;

	void main() {
		vec4 world = uModel * vec4(aPos, 1.0);
		vNormal = mat3(uModel) * aNormal;
		vWorldPos = world.xyz;
		gl_Position = uViewProj * world;
		gl_PointSize = uPointSize;
	}
`

const globeFragmentShader = `
	#version 410 core

	uniform vec4 uColor;
	uniform vec3 uLightPos;
	uniform vec3 uLightColor;
	uniform float uAmbient;
	uniform float uUnlit;

	in vec3 vNormal;
	in vec3 vWorldPos;
	out vec4 FragColor;

	void main() {
		if (uUnlit > 0.5) {
			FragColor = uColor;
			return;
		}
		vec3 toLight = normalize(uLightPos - vWorldPos);
		float diffuse = max(dot(normalize(vNormal), toLight), 0.0);
		vec3 light = min(vec3(uAmbient) + uLightColor * diffuse, vec3(1.0));
		FragColor = vec4(uColor.rgb * light, uColor.a);
	}
`

// GlobeFrame is what the globe pass needs for one frame.
type GlobeFrame struct {
	ViewProjection mgl64.Mat4
	Radius         float64
	CloudAltitude  float64
	PlanetSpin     float64 // radians about +Y
	CloudSpin      float64
	Markers        []mgl64.Vec3
	Lights         lighting.Rig
}

// GlobePass draws the planet, its cloud shell and the surface markers.
type GlobePass struct {
	program *shader.Program

	sphereVAO, sphereVBO, sphereEBO uint32
	sphereIndexCount                int32

	markerVAO, markerVBO uint32
}

// NewGlobePass compiles the globe shader and uploads the sphere mesh.
func NewGlobePass() (*GlobePass, error) {
	program, err := shader.Compile(globeVertexShader, globeFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("globe shader: %w", err)
	}
	gp := &GlobePass{program: program}

	vertices, indices := SphereMesh(sphereRings, sphereSegments)
	gl.GenVertexArrays(1, &gp.sphereVAO)
	gl.BindVertexArray(gp.sphereVAO)

	gl.GenBuffers(1, &gp.sphereVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gp.sphereVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	vertexAttribs()

	gl.GenBuffers(1, &gp.sphereEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gp.sphereEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	gp.sphereIndexCount = int32(len(indices))

	gl.GenVertexArrays(1, &gp.markerVAO)
	gl.BindVertexArray(gp.markerVAO)
	gl.GenBuffers(1, &gp.markerVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gp.markerVBO)
	vertexAttribs()

	gl.BindVertexArray(0)
	return gp, nil
}

func vertexAttribs() {
	stride := int32(floatsPerVertex * 4)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
}

// Draw renders one frame of the globe.
func (gp *GlobePass) Draw(f GlobeFrame) {
	gp.program.Use()
	gp.program.SetMat4("uViewProj", f.ViewProjection)
	gp.program.SetVec3("uLightPos", f.Lights.Key.Position)
	gp.program.SetColor3("uLightColor", f.Lights.Key.Radiance())
	gp.program.SetFloat("uAmbient", float64(f.Lights.Ambient))
	gp.program.SetFloat("uPointSize", markerSize)
	gp.program.SetFloat("uUnlit", 0)

	gl.BindVertexArray(gp.sphereVAO)

	// Planet
	gp.program.SetMat4("uModel", spinScale(f.PlanetSpin, f.Radius))
	gp.program.SetVec4("uColor", planetColor)
	gl.DrawElementsWithOffset(gl.TRIANGLES, gp.sphereIndexCount, gl.UNSIGNED_INT, 0)

	// Clouds: blended, no depth writes so markers beneath stay visible.
	if f.CloudAltitude > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)

		gp.program.SetMat4("uModel", spinScale(f.CloudSpin, f.Radius+f.CloudAltitude))
		gp.program.SetVec4("uColor", cloudColor)
		gl.DrawElementsWithOffset(gl.TRIANGLES, gp.sphereIndexCount, gl.UNSIGNED_INT, 0)

		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}

	// Markers sit on the unrotated sphere, where picking places them.
	if len(f.Markers) > 0 {
		points := PointVertices(f.Markers)
		gl.BindVertexArray(gp.markerVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, gp.markerVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(points)*4, unsafe.Pointer(&points[0]), gl.DYNAMIC_DRAW)

		gp.program.SetMat4("uModel", mgl64.Ident4())
		gp.program.SetVec4("uColor", markerColor)
		gp.program.SetFloat("uUnlit", 1)
		gl.DrawArrays(gl.POINTS, 0, int32(len(f.Markers)))
	}

	gl.BindVertexArray(0)
}

// spinScale is a rotation about +Y applied after a uniform scale.
func spinScale(angle, scale float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(angle).Mul4(mgl64.Scale3D(scale, scale, scale))
}

// Destroy releases GPU resources.
func (gp *GlobePass) Destroy() {
	if gp.sphereVAO != 0 {
		gl.DeleteVertexArrays(1, &gp.sphereVAO)
		gp.sphereVAO = 0
	}
	if gp.markerVAO != 0 {
		gl.DeleteVertexArrays(1, &gp.markerVAO)
		gp.markerVAO = 0
	}
	buffers := []uint32{gp.sphereVBO, gp.sphereEBO, gp.markerVBO}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	gp.sphereVBO, gp.sphereEBO, gp.markerVBO = 0, 0, 0
	gp.program.Delete()
}
