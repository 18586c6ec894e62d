// Package fairing generates hollow, radially segmented fairing shells from a
// stack of rings and splits them into panels that can be jettisoned.
//
// The shell axis is +Y. Angle 0 points along +X and angles grow towards +Z.
package fairing

import (
	"go.uber.org/zap"
)

// State is the lifecycle state of a shell.
type State int

const (
	StateBuilt State = iota
	StateJettisoned
)

func (s State) String() string {
	switch s {
	case StateBuilt:
		return "built"
	case StateJettisoned:
		return "jettisoned"
	default:
		return "unknown"
	}
}

// Shell is a generated fairing split into panels.
type Shell struct {
	Panels []Panel
	Height float32
	Bounds Bounds

	// Options as resolved by the generator; PanelCount may differ from the
	// requested count when it was rounded.
	Options Options

	state State
}

// State returns the shell's lifecycle state.
func (s *Shell) State() State {
	return s.state
}

// VertexCount returns the vertex total over all panels.
func (s *Shell) VertexCount() int {
	n := 0
	for i := range s.Panels {
		n += len(s.Panels[i].Mesh.Vertices)
	}
	return n
}

// TriangleCount returns the triangle total over all panels.
func (s *Shell) TriangleCount() int {
	n := 0
	for i := range s.Panels {
		n += s.Panels[i].Mesh.TriangleCount()
	}
	return n
}

// Build generates the shell for p with the default no-op logger.
func Build(p *Profile, opts Options) (*Shell, error) {
	return BuildWithLogger(p, opts, nil)
}

// BuildWithLogger generates the shell for p. The profile and options are
// validated before any mesh data is allocated.
func BuildWithLogger(p *Profile, opts Options, log *zap.Logger) (*Shell, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	resolved, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	if resolved.PanelCount != opts.PanelCount {
		log.Debug("panel count rounded to divisor",
			zap.Int("requested", opts.PanelCount),
			zap.Int("panels", resolved.PanelCount),
			zap.Int("segments", resolved.RadialSegments))
	}

	l := newLattice(p.rings, resolved.RadialSegments, resolved.WallThickness)
	perPanel := resolved.SegmentsPerPanel()

	s := &Shell{
		Panels:  make([]Panel, resolved.PanelCount),
		Height:  l.height,
		Bounds:  emptyBounds(),
		Options: resolved,
		state:   StateBuilt,
	}
	for i := range s.Panels {
		s.Panels[i] = l.buildPanel(i, perPanel, resolved.PanelCount, resolved.UV)
		s.Bounds.merge(s.Panels[i].Mesh.Bounds)
	}

	log.Debug("shell built",
		zap.Int("rings", p.Len()),
		zap.Int("bands", len(l.bands)),
		zap.Int("panels", len(s.Panels)),
		zap.Int("vertices", s.VertexCount()),
		zap.Int("triangles", s.TriangleCount()))
	return s, nil
}
