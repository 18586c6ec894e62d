// Package export writes generated shells to interchange formats.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/fairingkit/pkg/fairing"
)

// WriteOBJ writes the shell as a Wavefront OBJ file with one object per panel
// and one group per surface class. Face indices are 1-based and global.
func WriteOBJ(w io.Writer, s *fairing.Shell) error {
	if s == nil || len(s.Panels) == 0 {
		return fmt.Errorf("%w: shell has no panels", ErrEmptyShell)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# fairingkit shell: %d panels, %d segments\n", len(s.Panels), s.Options.RadialSegments)

	base := 1
	for i := range s.Panels {
		p := &s.Panels[i]
		writeOBJObject(bw, fmt.Sprintf("panel_%d", p.Index), &p.Mesh, base)
		base += len(p.Mesh.Vertices)
	}
	return bw.Flush()
}

func writeOBJObject(w *bufio.Writer, name string, m *fairing.Mesh, base int) {
	fmt.Fprintf(w, "o %s\n", name)
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "vt %g %g\n", v.TexCoord[0], v.TexCoord[1])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}

	for _, g := range m.Groups {
		fmt.Fprintf(w, "g %s_%s\n", name, g.Surface)
		end := g.StartIndex + g.IndexCount
		for i := g.StartIndex; i < end; i += 3 {
			a := int(m.Indices[i]) + base
			b := int(m.Indices[i+1]) + base
			c := int(m.Indices[i+2]) + base
			fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
	}
}
