package fairing

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/fairingkit/pkg/math"
)

func mustProfile(t *testing.T, rings ...Ring) *Profile {
	t.Helper()
	p, err := NewProfile(rings...)
	require.NoError(t, err)
	return p
}

func buildShell(t *testing.T, p *Profile, segments, panels int, wall float32) *Shell {
	t.Helper()
	opts := DefaultOptions()
	opts.RadialSegments = segments
	opts.PanelCount = panels
	opts.WallThickness = wall
	s, err := Build(p, opts)
	require.NoError(t, err)
	return s
}

type weldKey [3]int64

func weld(v [3]float32) weldKey {
	var k weldKey
	for i := range v {
		k[i] = int64(gomath.Round(float64(v[i]) * 1e4))
	}
	return k
}

type edgeKey struct{ a, b weldKey }

// openEdges welds coincident vertices and returns the number of undirected
// edges that are not shared by exactly two triangles in opposite directions.
func openEdges(m *Mesh) int {
	directed := make(map[edgeKey]int)
	for i := 0; i < m.TriangleCount(); i++ {
		k := [3]weldKey{
			weld(m.Vertices[m.Indices[3*i]].Position),
			weld(m.Vertices[m.Indices[3*i+1]].Position),
			weld(m.Vertices[m.Indices[3*i+2]].Position),
		}
		for e := 0; e < 3; e++ {
			a, b := k[e], k[(e+1)%3]
			if a == b {
				continue
			}
			directed[edgeKey{a, b}]++
		}
	}

	open := 0
	for e, n := range directed {
		if n != 1 || directed[edgeKey{e.b, e.a}] != 1 {
			open++
		}
	}
	return open
}

var closureProfiles = map[string][]Ring{
	"interstage": {{0, 1}, {0.5, 1}, {1.5, 0.75}, {2, 0.75}},
	"nose":       {{0, 1}, {1, 1}, {1.6, 0.6}, {2, 0}},
	"thick wall": {{0, 1}, {1, 0.5}, {2, 0.5}},
	"bulb":       {{0, 0.5}, {0.4, 1.25}, {1.8, 1.25}, {2.5, 0.3}},
	"step cap":   {{0, 1}, {2, 1}, {2, 0.625}},
	"ledge":      {{0, 0.5}, {1, 0.5}, {1, 1}, {2, 1}},
	"flat lid":   {{0, 1}, {1, 1}, {1, 0}},
}

func TestShellClosure(t *testing.T) {
	for name, rings := range closureProfiles {
		p := mustProfile(t, rings...)
		wall := float32(0.05)
		if name == "thick wall" {
			wall = 0.75
		}
		for _, segments := range []int{8, 16, 24, 32} {
			for _, panels := range []int{1, 2, 3, 4, 6, 8} {
				s := buildShell(t, p, segments, panels, wall)
				for i := range s.Panels {
					m := &s.Panels[i].Mesh
					require.NotZero(t, m.TriangleCount())
					assert.Zero(t, openEdges(m),
						"%s: %d segments, %d panels: panel %d has open edges", name, segments, panels, i)
				}
			}
		}
	}
}

func TestStepCapColumns(t *testing.T) {
	p := mustProfile(t, Ring{0, 1.0}, Ring{2, 1.0}, Ring{2, 0.625})
	s := buildShell(t, p, 24, 4, DefaultWallThickness)
	require.Len(t, s.Panels, 4)

	levels := []struct {
		y, r float32
	}{
		{0, 1}, {2, 1}, {2, 0.625},
	}
	for _, panel := range s.Panels {
		for _, lv := range levels {
			seen := make(map[weldKey]bool)
			for _, v := range panel.Mesh.Vertices {
				r := float32(gomath.Hypot(float64(v.Position[0]), float64(v.Position[2])))
				if math.Abs(v.Position[1]-lv.y) < 1e-5 && math.Abs(r-lv.r) < 1e-5 {
					seen[weld(v.Position)] = true
				}
			}
			assert.Len(t, seen, 7, "panel %d ring (%v,%v)", panel.Index, lv.y, lv.r)
		}
	}
}

func TestStepLift(t *testing.T) {
	wall := float32(0.05)
	l := newLattice([]Ring{{0, 1}, {2, 1}, {2, 0.625}}, 24, wall)
	require.Len(t, l.bands, 2)

	// the wall runs under a narrowing step
	assert.Equal(t, float32(0), l.bands[0].innerY0)
	assert.InDelta(t, 2-wall, l.bands[0].innerY1, 1e-6)
	assert.InDelta(t, 2-wall, l.bands[1].innerY0, 1e-6)
	assert.InDelta(t, 2-wall, l.bands[1].innerY1, 1e-6)
	assert.InDelta(t, 0.575, l.bands[1].inner1, 1e-6)
	for _, n := range []math.Vec2{l.bands[1].outerN, l.bands[1].innerN} {
		assert.InDelta(t, 0, n.X, 1e-6)
		assert.InDelta(t, 1, n.Y, 1e-6)
	}

	// and over a widening one
	l = newLattice([]Ring{{0, 0.5}, {1, 0.5}, {1, 1}, {2, 1}}, 24, wall)
	require.Len(t, l.bands, 3)
	assert.InDelta(t, 1+wall, l.bands[1].innerY0, 1e-6)
	assert.InDelta(t, 1+wall, l.bands[2].innerY0, 1e-6)
	assert.InDelta(t, 2, l.bands[2].innerY1, 1e-6)
}

func TestStepCutsClosed(t *testing.T) {
	p := mustProfile(t, Ring{0, 1.0}, Ring{2, 1.0}, Ring{2, 0.625})
	s := buildShell(t, p, 24, 4, DefaultWallThickness)

	open := 0
	for i := range s.Panels {
		open += openEdges(&s.Panels[i].Mesh)
	}
	assert.Zero(t, open)
}

func TestBuildRejectsDegenerateProfile(t *testing.T) {
	tests := []struct {
		name  string
		rings []Ring
	}{
		{"single ring", []Ring{{0, 1}}},
		{"zero height", []Ring{{0, 1.0}, {0, 0.625}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Build(mustProfile(t, tt.rings...), DefaultOptions())
			assert.ErrorIs(t, err, ErrInvalidProfile)
			assert.Nil(t, s)
		})
	}

	s, err := Build(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Nil(t, s)
}

func TestBuildRejectsPanelCount(t *testing.T) {
	p := mustProfile(t, Ring{0, 1}, Ring{1, 1})
	opts := DefaultOptions()
	opts.PanelCount = 25
	_, err := Build(p, opts)
	assert.ErrorIs(t, err, ErrInvalidPanelCount)

	opts.PanelCount = 5
	opts.StrictPanels = true
	_, err = Build(p, opts)
	assert.ErrorIs(t, err, ErrInvalidPanelCount)

	opts.StrictPanels = false
	s, err := Build(p, opts)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Options.PanelCount)
	assert.Len(t, s.Panels, 4)
}

func TestUVWrapsPerPanel(t *testing.T) {
	p := mustProfile(t, Ring{0, 1}, Ring{2, 1}, Ring{2, 0.625})
	s := buildShell(t, p, 24, 4, DefaultWallThickness)
	perPanel := s.Options.SegmentsPerPanel()

	for _, panel := range s.Panels {
		// outer vertices of the first band come in (bottom, top) pairs per column
		first := panel.Mesh.Vertices[0].TexCoord[0]
		last := panel.Mesh.Vertices[2*perPanel].TexCoord[0]
		assert.Equal(t, float32(0), first, "panel %d", panel.Index)
		assert.Equal(t, float32(1), last-first, "panel %d", panel.Index)
	}
}

func TestUVRegions(t *testing.T) {
	p := mustProfile(t, Ring{0, 1}, Ring{1, 1})
	opts := DefaultOptions()
	opts.RadialSegments = 12
	opts.PanelCount = 3
	opts.UV = UVMap{
		Outside: UVArea{U1: 0, V1: 0, U2: 0.5, V2: 0.5},
		Inside:  UVArea{U1: 0.5, V1: 0, U2: 1, V2: 0.5},
		Edges:   UVArea{U1: 0, V1: 0.5, U2: 1, V2: 1},
	}
	s, err := Build(p, opts)
	require.NoError(t, err)

	for _, panel := range s.Panels {
		m := panel.Mesh
		require.Len(t, m.Groups, 3)
		for _, g := range m.Groups {
			var area UVArea
			switch g.Surface {
			case SurfaceOutside:
				area = opts.UV.Outside
			case SurfaceInside:
				area = opts.UV.Inside
			case SurfaceEdges:
				area = opts.UV.Edges
			}
			for _, idx := range m.Indices[g.StartIndex : g.StartIndex+g.IndexCount] {
				uv := m.Vertices[idx].TexCoord
				assert.True(t, uv[0] >= area.U1-1e-6 && uv[0] <= area.U2+1e-6, "%s u=%v", g.Surface, uv[0])
				assert.True(t, uv[1] >= area.V1-1e-6 && uv[1] <= area.V2+1e-6, "%s v=%v", g.Surface, uv[1])
			}
		}

		// inner U runs mirrored: the first inner vertex sits at U2
		inner := m.Groups[1]
		require.Equal(t, SurfaceInside, inner.Surface)
		firstInner := m.Vertices[m.Indices[inner.StartIndex]]
		assert.Equal(t, opts.UV.Inside.U2, firstInner.TexCoord[0])
	}
}

func TestWindingFollowsNormals(t *testing.T) {
	for name, rings := range closureProfiles {
		p := mustProfile(t, rings...)
		s := buildShell(t, p, 16, 4, 0.05)
		for _, panel := range s.Panels {
			m := panel.Mesh
			for i := 0; i < m.TriangleCount(); i++ {
				tri := m.Triangle(i)
				n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
				var want math.Vec3
				for k := 0; k < 3; k++ {
					want = want.Add(math.V3(m.Vertices[m.Indices[3*i+k]].Normal))
				}
				assert.Greater(t, n.Dot(want), float32(0), "%s panel %d triangle %d", name, panel.Index, i)
			}
		}
	}
}

func TestOuterNormals(t *testing.T) {
	p := mustProfile(t, Ring{0, 1}, Ring{1, 1}, Ring{2, 0})
	s := buildShell(t, p, 8, 1, 0.1)
	m := s.Panels[0].Mesh

	// cylinder band, column 0 bottom vertex
	assert.True(t, math.V3(m.Vertices[0].Normal).ApproxEqual(math.Vec3{X: 1}, 1e-5), "got %v", m.Vertices[0].Normal)

	// 45 degree cone band, column 0
	cols := 9
	cone := math.V3(m.Vertices[2*cols].Normal)
	h := float32(gomath.Sqrt2 / 2)
	assert.True(t, cone.ApproxEqual(math.Vec3{X: h, Y: h}, 1e-5), "got %v", cone)
}

func TestWallThicknessClamp(t *testing.T) {
	p := mustProfile(t, Ring{0, 1.0}, Ring{1, 0.4}, Ring{2, 0.2})
	s := buildShell(t, p, 16, 2, 0.6)

	l := newLattice(p.Rings(), 16, 0.6)
	for _, b := range l.bands {
		assert.GreaterOrEqual(t, b.inner0, float32(0))
		assert.GreaterOrEqual(t, b.inner1, float32(0))
		assert.LessOrEqual(t, b.inner0, b.outer0)
		assert.LessOrEqual(t, b.inner1, b.outer1)
	}

	for _, panel := range s.Panels {
		m := panel.Mesh
		for _, g := range m.Groups {
			if g.Surface != SurfaceInside {
				continue
			}
			for _, idx := range m.Indices[g.StartIndex : g.StartIndex+g.IndexCount] {
				v := m.Vertices[idx].Position
				r := gomath.Hypot(float64(v[0]), float64(v[2]))
				assert.False(t, gomath.IsNaN(r))
				assert.LessOrEqual(t, r, 0.4+1e-5, "inner radius at y=%v", v[1])
			}
		}
	}
}

func TestPanelFrames(t *testing.T) {
	p := mustProfile(t, Ring{0, 1}, Ring{1, 1})
	s := buildShell(t, p, 24, 4, 0.05)

	for i, panel := range s.Panels {
		assert.Equal(t, i, panel.Index)
		mid := float32(gomath.Pi/4 + float64(i)*gomath.Pi/2)
		assert.InDelta(t, mid, panel.MidAngle(), 1e-5)
		assert.True(t, panel.CentroidDir.ApproxEqual(math.RadialDir(mid), 1e-5))
		assert.InDelta(t, 1.0, panel.CentroidDir.Length(), 1e-5)
	}
}

func TestShellBounds(t *testing.T) {
	p := mustProfile(t, Ring{1, 2}, Ring{4, 1})
	s := buildShell(t, p, 32, 2, 0.1)

	assert.InDelta(t, 3.0, s.Height, 1e-6)
	assert.InDelta(t, -2.0, s.Bounds.Min[0], 1e-5)
	assert.InDelta(t, 2.0, s.Bounds.Max[0], 1e-5)
	assert.InDelta(t, 1.0, s.Bounds.Min[1], 1e-5)
	assert.InDelta(t, 4.0, s.Bounds.Max[1], 1e-5)
	assert.InDelta(t, 2.5, s.Bounds.Center().Y, 1e-5)
	assert.Equal(t, StateBuilt, s.State())
	assert.Positive(t, s.VertexCount())
	assert.Positive(t, s.TriangleCount())
}
