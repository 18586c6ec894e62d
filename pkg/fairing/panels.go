package fairing

import "github.com/Faultbox/fairingkit/pkg/math"

// Panel is one angular wedge of the shell with its own vertex and index
// buffers.
type Panel struct {
	Index int
	Mesh  Mesh

	// CentroidDir is the outward unit vector at the panel's angular midpoint.
	CentroidDir math.Vec3

	StartAngle float32 // radians
	EndAngle   float32 // radians
}

// MidAngle returns the angle of the panel centroid.
func (p *Panel) MidAngle() float32 {
	return (p.StartAngle + p.EndAngle) / 2
}

// buildPanel cuts panel index out of the lattice. Columns first through
// first+perPanel are copied into a fresh mesh, so the shared seam columns are
// duplicated in both neighbours.
func (l *lattice) buildPanel(index, perPanel, panelCount int, uv UVMap) Panel {
	first := index * perPanel
	cols := perPanel + 1
	nb := len(l.bands)

	b := newMeshBuilder(cols*nb*4+cols*4+nb*8, perPanel*nb*12+perPanel*12+nb*12)
	bottom := make([]uint32, cols)
	top := make([]uint32, cols)

	b.begin(SurfaceOutside)
	for _, bd := range l.bands {
		for j := 0; j < cols; j++ {
			c := first + j
			n := l.normal(c, bd.outerN)
			u := uv.Outside.U(float32(j) / float32(perPanel))
			bottom[j] = b.vertex(l.point(c, bd.outer0, bd.y0), n, u, uv.Outside.V(l.v(bd.y0)))
			top[j] = b.vertex(l.point(c, bd.outer1, bd.y1), n, u, uv.Outside.V(l.v(bd.y1)))
		}
		for j := 0; j < perPanel; j++ {
			want := l.normal(first+j, bd.outerN).Add(l.normal(first+j+1, bd.outerN))
			b.quad(bottom[j], top[j], top[j+1], bottom[j+1], want)
		}
	}

	b.begin(SurfaceInside)
	for _, bd := range l.bands {
		if bd.innerCollapsed() {
			continue
		}
		for j := 0; j < cols; j++ {
			c := first + j
			n := l.normal(c, bd.innerN).Negate()
			// mirrored so the texture reads correctly from inside
			u := uv.Inside.U(1 - float32(j)/float32(perPanel))
			bottom[j] = b.vertex(l.point(c, bd.inner0, bd.innerY0), n, u, uv.Inside.V(l.v(bd.innerY0)))
			top[j] = b.vertex(l.point(c, bd.inner1, bd.innerY1), n, u, uv.Inside.V(l.v(bd.innerY1)))
		}
		for j := 0; j < perPanel; j++ {
			want := l.normal(first+j, bd.innerN).Add(l.normal(first+j+1, bd.innerN)).Negate()
			b.quad(bottom[j], top[j], top[j+1], bottom[j+1], want)
		}
	}

	b.begin(SurfaceEdges)
	l.addRingCap(b, first, perPanel, false, uv.Edges)
	l.addRingCap(b, first, perPanel, true, uv.Edges)
	if panelCount > 1 {
		l.addCut(b, first, -1, uv.Edges)
		l.addCut(b, first+perPanel, 1, uv.Edges)
	}

	start := l.angle(first)
	end := l.angle(first + perPanel)
	return Panel{
		Index:       index,
		Mesh:        b.finish(),
		CentroidDir: math.RadialDir((start + end) / 2),
		StartAngle:  start,
		EndAngle:    end,
	}
}

// addRingCap closes the wall between the outer and inner ring at the bottom
// or top terminus. The cap is sloped when the terminal band is a flat step.
func (l *lattice) addRingCap(b *meshBuilder, first, perPanel int, top bool, area UVArea) {
	var y, yi, ro, ri float32
	want := math.Up
	if top {
		bd := l.bands[len(l.bands)-1]
		y, yi, ro, ri = bd.y1, bd.innerY1, bd.outer1, bd.inner1
	} else {
		bd := l.bands[0]
		y, yi, ro, ri = bd.y0, bd.innerY0, bd.outer0, bd.inner0
		want = want.Negate()
	}
	if ro <= ri {
		// apex: the walls already meet
		return
	}

	var prevOuter, prevInner uint32
	for j := 0; j <= perPanel; j++ {
		c := first + j
		u := area.U(float32(j) / float32(perPanel))
		o := b.vertex(l.point(c, ro, y), want, u, area.V(0))
		in := b.vertex(l.point(c, ri, yi), want, u, area.V(1))
		if j > 0 {
			b.quad(prevOuter, prevInner, in, o, want)
		}
		prevOuter, prevInner = o, in
	}
}

// addCut closes the radial cut plane at column c. sign is -1 for the panel's
// start edge and +1 for its end edge.
func (l *lattice) addCut(b *meshBuilder, c int, sign float32, area UVArea) {
	k := l.column(c)
	want := math.Vec3{X: -l.sin[k], Y: 0, Z: l.cos[k]}.Scale(sign)

	for _, bd := range l.bands {
		ob := b.vertex(l.point(c, bd.outer0, bd.y0), want, area.U(0), area.V(l.v(bd.y0)))
		ot := b.vertex(l.point(c, bd.outer1, bd.y1), want, area.U(0), area.V(l.v(bd.y1)))
		it := b.vertex(l.point(c, bd.inner1, bd.innerY1), want, area.U(1), area.V(l.v(bd.innerY1)))
		ib := b.vertex(l.point(c, bd.inner0, bd.innerY0), want, area.U(1), area.V(l.v(bd.innerY0)))
		b.quad(ob, ot, it, ib, want)
	}
}
