package fairing

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Faultbox/fairingkit/pkg/math"
)

// JettisonSpec describes the one-shot separation of a shell's panels.
type JettisonSpec struct {
	// Force is the total impulse shared evenly by all panels.
	Force float32

	// Direction is given in the panel frame: +X along the panel centroid,
	// +Y along the shell axis, +Z along increasing angle.
	Direction math.Vec3

	// Mass is the total mass of all panels.
	Mass float32
}

// DefaultJettisonSpec pushes panels straight outwards.
func DefaultJettisonSpec() JettisonSpec {
	return JettisonSpec{
		Force:     10,
		Direction: math.Vec3{X: 1, Y: 0, Z: 0},
		Mass:      0.2,
	}
}

// Validate checks the spec can be applied.
func (j JettisonSpec) Validate() error {
	if !(j.Mass > 0) {
		return fmt.Errorf("%w: mass %v must be positive", ErrInvalidJettison, j.Mass)
	}
	if !(j.Force >= 0) {
		return fmt.Errorf("%w: force %v must not be negative", ErrInvalidJettison, j.Force)
	}
	if j.Direction.Length() < math.Epsilon {
		return fmt.Errorf("%w: zero direction", ErrInvalidJettison)
	}
	return nil
}

// DetachedPanel is a panel after separation. It owns its mesh and has no link
// back to the shell or its siblings.
type DetachedPanel struct {
	ID    uuid.UUID
	Index int
	Mesh  Mesh

	Mass        float32
	Impulse     math.Vec3
	Velocity    math.Vec3
	CentroidDir math.Vec3

	// Angles of the cut edges, kept so the host can place the panel where it
	// was on the shell.
	StartAngle float32
	EndAngle   float32
}

// Jettison detaches every panel. It can run once per shell; a second call
// returns ErrAlreadyJettisoned and applies nothing. On success the shell gives
// up its panels.
func (s *Shell) Jettison(spec JettisonSpec, inherited math.Vec3) ([]DetachedPanel, error) {
	if s.state == StateJettisoned {
		return nil, ErrAlreadyJettisoned
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	n := float32(len(s.Panels))
	mass := spec.Mass / n
	dir := spec.Direction.Normalize()

	out := make([]DetachedPanel, len(s.Panels))
	for i := range s.Panels {
		p := &s.Panels[i]
		rot := math.QuatFromAxisAngle(math.Up, -p.MidAngle())
		impulse := rot.Rotate(dir).Scale(spec.Force / n)
		out[i] = DetachedPanel{
			ID:          uuid.New(),
			Index:       p.Index,
			Mesh:        p.Mesh,
			Mass:        mass,
			Impulse:     impulse,
			Velocity:    inherited.Add(impulse.Scale(1 / mass)),
			CentroidDir: p.CentroidDir,
			StartAngle:  p.StartAngle,
			EndAngle:    p.EndAngle,
		}
	}

	s.Panels = nil
	s.state = StateJettisoned
	return out, nil
}
