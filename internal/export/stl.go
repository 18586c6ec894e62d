package export

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Faultbox/fairingkit/pkg/fairing"
)

// ErrEmptyShell is returned when there is nothing to export.
var ErrEmptyShell = errors.New("empty shell")

// Triangles flattens every panel of the shell into sdfx triangles.
func Triangles(s *fairing.Shell) []*sdf.Triangle3 {
	tris := make([]*sdf.Triangle3, 0, s.TriangleCount())
	for i := range s.Panels {
		m := &s.Panels[i].Mesh
		for t := 0; t < m.TriangleCount(); t++ {
			var tri sdf.Triangle3
			for k, p := range m.Triangle(t) {
				tri[k] = v3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
			}
			tris = append(tris, &tri)
		}
	}
	return tris
}

// WriteSTL writes all panel triangles to a binary STL file.
func WriteSTL(path string, s *fairing.Shell) error {
	if s == nil || len(s.Panels) == 0 {
		return fmt.Errorf("%w: shell has no panels", ErrEmptyShell)
	}
	if err := render.SaveSTL(path, Triangles(s)); err != nil {
		return fmt.Errorf("write stl %s: %w", path, err)
	}
	return nil
}
