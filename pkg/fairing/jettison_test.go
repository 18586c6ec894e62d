package fairing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/fairingkit/pkg/math"
)

func TestJettisonMassConservation(t *testing.T) {
	p := mustProfile(t, Ring{0, 1}, Ring{2, 1}, Ring{3, 0.3})
	spec := JettisonSpec{Force: 30, Direction: math.Vec3{X: 1, Y: 0.5}, Mass: 1.7}

	for _, panels := range []int{1, 3, 5} {
		s := buildShell(t, p, 30, panels, 0.05)
		detached, err := s.Jettison(spec, math.Vec3{})
		require.NoError(t, err)
		require.Len(t, detached, panels)

		var total float32
		for _, d := range detached {
			total += d.Mass
		}
		assert.InDelta(t, spec.Mass, total, 1e-5, "%d panels", panels)
	}
}

func TestJettisonTwice(t *testing.T) {
	p := mustProfile(t, Ring{0, 1}, Ring{2, 1})
	s := buildShell(t, p, 24, 4, 0.05)
	spec := DefaultJettisonSpec()
	inherited := math.Vec3{Y: 5}

	first, err := s.Jettison(spec, inherited)
	require.NoError(t, err)
	require.Len(t, first, 4)
	velocities := make([]math.Vec3, len(first))
	for i, d := range first {
		velocities[i] = d.Velocity
	}

	second, err := s.Jettison(spec, inherited)
	assert.ErrorIs(t, err, ErrAlreadyJettisoned)
	assert.Nil(t, second)
	assert.Equal(t, StateJettisoned, s.State())
	assert.Empty(t, s.Panels)

	for i, d := range first {
		assert.Equal(t, velocities[i], d.Velocity, "impulse applied twice to panel %d", i)
	}
}

func TestJettisonKinematics(t *testing.T) {
	p := mustProfile(t, Ring{0, 1}, Ring{2, 1})
	s := buildShell(t, p, 24, 4, 0.05)
	spec := JettisonSpec{Force: 8, Direction: math.Vec3{X: 1}, Mass: 2}
	inherited := math.Vec3{X: 1, Y: 10, Z: -3}

	detached, err := s.Jettison(spec, inherited)
	require.NoError(t, err)

	ids := make(map[uuid.UUID]bool)
	for _, d := range detached {
		assert.NotEqual(t, uuid.Nil, d.ID)
		ids[d.ID] = true

		// straight outward push along the panel centroid
		assert.True(t, d.Impulse.ApproxEqual(d.CentroidDir.Scale(2), 1e-5), "panel %d impulse %v", d.Index, d.Impulse)
		assert.InDelta(t, 0.5, d.Mass, 1e-6)
		want := inherited.Add(d.CentroidDir.Scale(4))
		assert.True(t, d.Velocity.ApproxEqual(want, 1e-4), "panel %d velocity %v, want %v", d.Index, d.Velocity, want)
		assert.NotEmpty(t, d.Mesh.Indices)
	}
	assert.Len(t, ids, 4)
}

func TestJettisonPanelFrame(t *testing.T) {
	p := mustProfile(t, Ring{0, 1}, Ring{2, 1})
	s := buildShell(t, p, 24, 4, 0.05)
	mids := make([]float32, len(s.Panels))
	for i := range s.Panels {
		mids[i] = s.Panels[i].MidAngle()
	}

	// +Y stays axial, +Z follows increasing angle
	spec := JettisonSpec{Force: 4, Direction: math.Vec3{Y: 1, Z: 1}, Mass: 4}
	detached, err := s.Jettison(spec, math.Vec3{})
	require.NoError(t, err)

	for i, d := range detached {
		h := float32(0.70710678)
		want := math.Up.Scale(h).Add(math.TangentDir(mids[i]).Scale(h))
		assert.True(t, d.Impulse.ApproxEqual(want, 1e-5), "panel %d impulse %v, want %v", i, d.Impulse, want)
	}
}

func TestJettisonRejectsBadSpec(t *testing.T) {
	p := mustProfile(t, Ring{0, 1}, Ring{2, 1})

	tests := []struct {
		name string
		spec JettisonSpec
	}{
		{"zero mass", JettisonSpec{Force: 1, Direction: math.Vec3{X: 1}}},
		{"negative force", JettisonSpec{Force: -1, Direction: math.Vec3{X: 1}, Mass: 1}},
		{"zero direction", JettisonSpec{Force: 1, Mass: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buildShell(t, p, 8, 2, 0.05)
			_, err := s.Jettison(tt.spec, math.Vec3{})
			assert.ErrorIs(t, err, ErrInvalidJettison)
			assert.Equal(t, StateBuilt, s.State(), "failed jettison must not consume the shell")
			assert.Len(t, s.Panels, 2)
		})
	}
}
