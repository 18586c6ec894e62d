package fairing

import "github.com/Faultbox/fairingkit/pkg/math"

// areaEpsilon is the squared cross-product length below which a triangle is
// treated as degenerate and dropped.
const areaEpsilon = 1e-12

// meshBuilder accumulates vertices and surface-grouped indices for one mesh.
type meshBuilder struct {
	mesh       Mesh
	group      Surface
	groupStart int
	open       bool
}

func newMeshBuilder(vertexHint, indexHint int) *meshBuilder {
	return &meshBuilder{
		mesh: Mesh{
			Vertices: make([]Vertex, 0, vertexHint),
			Indices:  make([]uint32, 0, indexHint),
			Bounds:   emptyBounds(),
		},
	}
}

// begin starts a new surface group, closing the previous one.
func (b *meshBuilder) begin(s Surface) {
	b.end()
	b.group = s
	b.groupStart = len(b.mesh.Indices)
	b.open = true
}

func (b *meshBuilder) end() {
	if !b.open {
		return
	}
	b.open = false
	if n := len(b.mesh.Indices) - b.groupStart; n > 0 {
		b.mesh.Groups = append(b.mesh.Groups, SurfaceGroup{
			Surface:    b.group,
			StartIndex: int32(b.groupStart),
			IndexCount: int32(n),
		})
	}
}

func (b *meshBuilder) vertex(pos, normal math.Vec3, u, v float32) uint32 {
	idx := uint32(len(b.mesh.Vertices))
	p := pos.Array()
	b.mesh.Vertices = append(b.mesh.Vertices, Vertex{
		Position: p,
		Normal:   normal.Array(),
		TexCoord: [2]float32{u, v},
	})
	b.mesh.Bounds.extend(p)
	return idx
}

// tri appends a triangle facing towards want. Zero-area triangles (apex
// corners, collapsed inner rings) are skipped.
func (b *meshBuilder) tri(i0, i1, i2 uint32, want math.Vec3) {
	p0 := math.V3(b.mesh.Vertices[i0].Position)
	p1 := math.V3(b.mesh.Vertices[i1].Position)
	p2 := math.V3(b.mesh.Vertices[i2].Position)

	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Dot(n) < areaEpsilon {
		return
	}
	if n.Dot(want) < 0 {
		i1, i2 = i2, i1
	}
	b.mesh.Indices = append(b.mesh.Indices, i0, i1, i2)
}

// quad appends the loop a-b-c-d as the triangles (a,b,c) and (a,c,d).
func (b *meshBuilder) quad(a, bb, c, d uint32, want math.Vec3) {
	b.tri(a, bb, c, want)
	b.tri(a, c, d, want)
}

func (b *meshBuilder) finish() Mesh {
	b.end()
	return b.mesh
}
