package fairing

import (
	gomath "math"

	"github.com/Faultbox/fairingkit/pkg/math"
)

// band is the conical section between two consecutive rings, on both the
// outer and the inner wall.
type band struct {
	y0, y1         float32
	outer0, outer1 float32
	inner0, inner1 float32

	// Heights of the inner wall ends. They differ from y0/y1 only next to a
	// flat step, where the wall is laid below or above the step face.
	innerY0, innerY1 float32

	// Normals in the (radial, axial) plane.
	outerN math.Vec2
	innerN math.Vec2
}

// innerCollapsed reports whether the inner wall of the band lies on the axis.
func (b band) innerCollapsed() bool {
	return b.inner0 <= 0 && b.inner1 <= 0
}

// lattice is the continuous, unpartitioned shell: every band evaluated at
// RadialSegments evenly spaced angles. Panels are cut out of it column by
// column.
type lattice struct {
	segments int
	bottom   float32
	height   float32
	bands    []band
	cos, sin []float32
}

func newLattice(rings []Ring, segments int, wall float32) *lattice {
	l := &lattice{
		segments: segments,
		bottom:   rings[0].Offset,
		height:   rings[len(rings)-1].Offset - rings[0].Offset,
		cos:      make([]float32, segments),
		sin:      make([]float32, segments),
	}

	step := 2 * gomath.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		a := step * float64(i)
		l.cos[i] = float32(gomath.Cos(a))
		l.sin[i] = float32(gomath.Sin(a))
	}

	lift := stepLift(rings, wall)
	for i := 0; i+1 < len(rings); i++ {
		r0, r1 := rings[i], rings[i+1]
		if r0.IsApex() && r1.IsApex() {
			// a segment of the axis has no surface
			continue
		}
		b := band{
			y0:      r0.Offset,
			y1:      r1.Offset,
			outer0:  r0.Radius,
			outer1:  r1.Radius,
			inner0:  innerRadius(r0.Radius, wall),
			inner1:  innerRadius(r1.Radius, wall),
			innerY0: r0.Offset + lift[i],
			innerY1: r1.Offset + lift[i+1],
		}
		b.outerN = slopeNormal(b.outer0, b.y0, b.outer1, b.y1)
		b.innerN = slopeNormal(b.inner0, b.innerY0, b.inner1, b.innerY1)
		l.bands = append(l.bands, b)
	}
	return l
}

// stepLift returns the axial offset of the inner wall at every ring. A flat
// step has no height to offset radially, so the inner ends of its rings move
// against the step face normal by the wall thickness: down under a step that
// narrows, up over one that widens. All other rings keep offset zero.
func stepLift(rings []Ring, wall float32) []float32 {
	lift := make([]float32, len(rings))
	for i := 0; i+1 < len(rings); i++ {
		r0, r1 := rings[i], rings[i+1]
		if r0.Offset != r1.Offset || r0.Radius == r1.Radius {
			continue
		}
		d := -wall
		if r1.Radius > r0.Radius {
			d = wall
		}
		if lift[i] == 0 {
			lift[i] = d
		}
		if lift[i+1] == 0 {
			lift[i+1] = d
		}
	}
	return lift
}

// innerRadius offsets a ring radius by the wall thickness, never crossing the
// axis.
func innerRadius(r, wall float32) float32 {
	if in := r - wall; in > 0 {
		return in
	}
	return 0
}

// slopeNormal returns the outward normal of the segment (r0,y0)-(r1,y1) in
// the (radial, axial) plane. A vertical band yields (1,0); a band tapering
// inwards going up tilts the normal upwards.
func slopeNormal(r0, y0, r1, y1 float32) math.Vec2 {
	return math.Vec2{X: r1 - r0, Y: y1 - y0}.Normalize().Perp()
}

// column returns the angle table index for a panel-local column. Wrapping
// with modulo makes the last column of the last panel land exactly on
// column 0, so the seam closes without float drift.
func (l *lattice) column(c int) int {
	return c % l.segments
}

// point returns the position of radius r at height y on column c.
func (l *lattice) point(c int, r, y float32) math.Vec3 {
	c = l.column(c)
	return math.Vec3{X: r * l.cos[c], Y: y, Z: r * l.sin[c]}
}

// normal lifts a profile-plane normal onto column c.
func (l *lattice) normal(c int, n math.Vec2) math.Vec3 {
	c = l.column(c)
	return math.Vec3{X: n.X * l.cos[c], Y: n.Y, Z: n.X * l.sin[c]}
}

// angle returns the angle of column c in radians.
func (l *lattice) angle(c int) float32 {
	return float32(2 * gomath.Pi * float64(c) / float64(l.segments))
}

// v normalises a height to the [0,1] texture range. Inner step rings can sit
// a wall thickness outside the profile and are clamped.
func (l *lattice) v(y float32) float32 {
	if l.height <= 0 {
		return 0
	}
	return math.Clamp((y-l.bottom)/l.height, 0, 1)
}
