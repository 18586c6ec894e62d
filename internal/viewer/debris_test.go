package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/fairingkit/pkg/fairing"
	"github.com/Faultbox/fairingkit/pkg/math"
)

func detach(t *testing.T, panels int, spec fairing.JettisonSpec) []fairing.DetachedPanel {
	t.Helper()
	p, err := fairing.NewProfile(
		fairing.Ring{Offset: 0, Radius: 1},
		fairing.Ring{Offset: 2, Radius: 1},
	)
	require.NoError(t, err)
	opts := fairing.DefaultOptions()
	opts.RadialSegments = 24
	opts.PanelCount = panels
	s, err := fairing.Build(p, opts)
	require.NoError(t, err)

	out, err := s.Jettison(spec, math.Vec3{})
	require.NoError(t, err)
	return out
}

func TestDebrisEuler(t *testing.T) {
	d := &Debris{
		Gravity: 10,
		Pieces:  []Piece{{Velocity: math.Vec3{X: 1}, Axis: math.Up}},
	}

	d.Step(1)
	assert.Equal(t, math.Vec3{X: 1}, d.Pieces[0].Offset)
	assert.Equal(t, math.Vec3{X: 1, Y: -10}, d.Pieces[0].Velocity)

	d.Step(1)
	assert.Equal(t, math.Vec3{X: 2, Y: -10}, d.Pieces[0].Offset)
	assert.Equal(t, float32(2), d.Elapsed)

	d.Step(0)
	assert.Equal(t, float32(2), d.Elapsed)
}

func TestDebrisHinge(t *testing.T) {
	d := NewDebris(detach(t, 4, fairing.DefaultJettisonSpec()), 9.81)
	require.Len(t, d.Pieces, 4)

	for _, p := range d.Pieces {
		assert.InDelta(t, 0, p.Pivot.Y, 1e-6)
		assert.InDelta(t, 1, p.Pivot.Length(), 1e-3, "pivot sits on the outer wall")
		assert.InDelta(t, 0, p.Axis.Dot(p.Panel.CentroidDir), 1e-5, "tumble axis is tangent")
		assert.Less(t, p.Spin, float32(0))
	}
}

func TestDebrisTopFallsOutward(t *testing.T) {
	d := NewDebris(detach(t, 2, fairing.DefaultJettisonSpec()), 0)

	for i := 0; i < 10; i++ {
		d.Step(0.01)
	}

	for _, p := range d.Pieces {
		top := p.Pivot.Add(math.Up)
		moved := p.ModelMatrix().TransformPoint(top).Sub(p.Offset)
		assert.Greater(t, moved.Sub(top).Dot(p.Panel.CentroidDir), float32(0))

		// the hinge itself only translates
		pivot := p.ModelMatrix().TransformPoint(p.Pivot)
		assert.True(t, pivot.ApproxEqual(p.Pivot.Add(p.Offset), 1e-4))
	}
}

func TestDebrisNoSpinWithoutOutwardSpeed(t *testing.T) {
	spec := fairing.DefaultJettisonSpec()
	spec.Direction = math.Vec3{Y: 1}
	d := NewDebris(detach(t, 3, spec), 9.81)

	for _, p := range d.Pieces {
		assert.Zero(t, p.Spin)
		assert.Equal(t, math.Identity(), p.ModelMatrix())
	}
}

func TestDebrisBelow(t *testing.T) {
	d := NewDebris(detach(t, 2, fairing.DefaultJettisonSpec()), 9.81)
	assert.False(t, d.Below(1))

	for i := 0; i < 200; i++ {
		d.Step(0.02)
	}
	assert.True(t, d.Below(1))
}
