package fairing

import "github.com/Faultbox/fairingkit/pkg/math"

// Vertex is a shell mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Surface identifies which atlas region a triangle range samples.
type Surface int

const (
	SurfaceOutside Surface = iota
	SurfaceInside
	SurfaceEdges
)

func (s Surface) String() string {
	switch s {
	case SurfaceOutside:
		return "outside"
	case SurfaceInside:
		return "inside"
	case SurfaceEdges:
		return "edges"
	default:
		return "unknown"
	}
}

// SurfaceGroup is a contiguous index range of one surface class.
type SurfaceGroup struct {
	Surface    Surface
	StartIndex int32
	IndexCount int32
}

// Mesh holds indexed triangles ready for GPU upload. Triangles wind
// counter-clockwise when seen from the side their normals point to.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []SurfaceGroup
	Bounds   Bounds
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three positions of triangle i.
func (m *Mesh) Triangle(i int) [3]math.Vec3 {
	return [3]math.Vec3{
		math.V3(m.Vertices[m.Indices[3*i]].Position),
		math.V3(m.Vertices[m.Indices[3*i+1]].Position),
		math.V3(m.Vertices[m.Indices[3*i+2]].Position),
	}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func (b *Bounds) extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func (b *Bounds) merge(o Bounds) {
	b.extend(o.Min)
	b.extend(o.Max)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return math.Vec3{
		X: b.Max[0] - b.Min[0],
		Y: b.Max[1] - b.Min[1],
		Z: b.Max[2] - b.Min[2],
	}
}
