package renderer

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetview/pkg/sphere"
)

// floatsPerVertex is position (3) + normal (3).
const floatsPerVertex = 6

// SphereMesh builds an indexed unit sphere from rings bands of latitude and
// segments slices of longitude. Vertices are interleaved position/normal.
func SphereMesh(rings, segments int) ([]float32, []uint32) {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}

	vertices := make([]float32, 0, (rings+1)*(segments+1)*floatsPerVertex)
	for i := 0; i <= rings; i++ {
		polar := 180 * float64(i) / float64(rings)
		for j := 0; j <= segments; j++ {
			azimuth := 360 * float64(j) / float64(segments)
			vertices = appendVertex(vertices, sphere.Forward(polar, azimuth, 1).Vec3())
		}
	}

	stride := uint32(segments + 1)
	indices := make([]uint32, 0, rings*segments*6)
	for i := uint32(0); i < uint32(rings); i++ {
		for j := uint32(0); j < uint32(segments); j++ {
			a := i*stride + j
			b := a + stride
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return vertices, indices
}

// PointVertices lays out points in the same position/normal format as the
// sphere mesh so both can share a shader. The normal points away from the origin.
func PointVertices(points []mgl64.Vec3) []float32 {
	out := make([]float32, 0, len(points)*floatsPerVertex)
	for _, p := range points {
		out = appendVertex(out, p)
	}
	return out
}

func appendVertex(dst []float32, p mgl64.Vec3) []float32 {
	n := mgl64.Vec3{0, 1, 0}
	if l := p.Len(); l > 0 {
		n = p.Mul(1 / l)
	}
	return append(dst,
		float32(p[0]), float32(p[1]), float32(p[2]),
		float32(n[0]), float32(n[1]), float32(n[2]),
	)
}
