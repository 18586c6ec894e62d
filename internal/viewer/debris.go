package viewer

import (
	"github.com/Faultbox/fairingkit/pkg/fairing"
	"github.com/Faultbox/fairingkit/pkg/math"
)

// Piece is one detached panel in flight.
type Piece struct {
	Panel fairing.DetachedPanel

	Offset   math.Vec3 // translation from the panel's place on the shell
	Velocity math.Vec3

	// The panel tumbles around Axis (its tangent) through Pivot (the middle
	// of its bottom edge), so the top falls away first.
	Pivot math.Vec3
	Axis  math.Vec3
	Angle float32
	Spin  float32 // radians per second
}

// ModelMatrix places the piece's mesh in world space.
func (p *Piece) ModelMatrix() math.Mat4 {
	return math.Translate(p.Offset.Add(p.Pivot)).
		Mul(math.RotateAxis(p.Axis, p.Angle)).
		Mul(math.Translate(p.Pivot.Negate()))
}

// Debris integrates detached panels with explicit Euler steps.
type Debris struct {
	Gravity float32
	Pieces  []Piece
	Elapsed float32
}

// NewDebris starts every panel at rest on the shell, moving with its
// separation velocity.
func NewDebris(panels []fairing.DetachedPanel, gravity float32) *Debris {
	d := &Debris{Gravity: gravity, Pieces: make([]Piece, len(panels))}
	for i, dp := range panels {
		pivot, lever := hinge(&dp)
		outward := dp.Velocity.Dot(dp.CentroidDir)

		// negative angle about the tangent swings +Y towards the centroid
		spin := float32(0)
		if outward > 0 && lever > math.Epsilon {
			spin = -outward / lever
		}

		d.Pieces[i] = Piece{
			Panel:    dp,
			Velocity: dp.Velocity,
			Pivot:    pivot,
			Axis:     math.TangentDir((dp.StartAngle + dp.EndAngle) / 2),
			Spin:     spin,
		}
	}
	return d
}

// hinge returns the pivot at the middle of the panel's bottom edge and the
// panel height.
func hinge(dp *fairing.DetachedPanel) (math.Vec3, float32) {
	verts := dp.Mesh.Vertices
	if len(verts) == 0 {
		return math.Vec3{}, 0
	}

	minY, maxY := verts[0].Position[1], verts[0].Position[1]
	for _, v := range verts[1:] {
		minY = min(minY, v.Position[1])
		maxY = max(maxY, v.Position[1])
	}

	var reach float32
	for _, v := range verts {
		if v.Position[1]-minY > 1e-4 {
			continue
		}
		reach = max(reach, math.V3(v.Position).Dot(dp.CentroidDir))
	}

	pivot := dp.CentroidDir.Scale(reach)
	pivot.Y = minY
	return pivot, maxY - minY
}

// Step advances every piece by dt seconds.
func (d *Debris) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for i := range d.Pieces {
		p := &d.Pieces[i]
		p.Offset = p.Offset.Add(p.Velocity.Scale(dt))
		p.Velocity.Y -= d.Gravity * dt
		p.Angle += p.Spin * dt
	}
	d.Elapsed += dt
}

// Below reports whether every piece has dropped more than depth below its
// starting place.
func (d *Debris) Below(depth float32) bool {
	for i := range d.Pieces {
		if d.Pieces[i].Offset.Y > -depth {
			return false
		}
	}
	return true
}
