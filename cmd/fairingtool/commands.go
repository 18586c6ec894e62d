package main

import (
	"errors"
	"fmt"
	gomath "math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/fairingkit/internal/export"
	"github.com/Faultbox/fairingkit/pkg/catalog"
	"github.com/Faultbox/fairingkit/pkg/fairing"
	"github.com/Faultbox/fairingkit/pkg/math"
)

var errBadArgs = errors.New("bad arguments")

// definitionArgs accepts "<catalog> <name>" or "<name>" with the catalog
// taken from the config.
var definitionArgs = cobra.RangeArgs(1, 2)

func (t *tool) definition(args []string) (*catalog.Definition, error) {
	path, name := t.cfg.Catalog.Path, args[0]
	if len(args) == 2 {
		path, name = args[0], args[1]
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	t.log.Debug("catalog loaded", zap.String("path", path), zap.Int("definitions", cat.Len()))
	return cat.Get(name)
}

// inputs returns the generator inputs of def with the tessellation flags
// applied on top.
func (t *tool) inputs(def *catalog.Definition) (*fairing.Profile, fairing.Options, error) {
	p, err := def.Profile()
	if err != nil {
		return nil, fairing.Options{}, err
	}
	opts := def.Options()
	if t.overrides.Sides > 0 {
		opts.RadialSegments = t.overrides.Sides
	}
	if t.overrides.Panels > 0 {
		opts.PanelCount = t.overrides.Panels
	}
	if t.overrides.Thickness > 0 {
		opts.WallThickness = float32(t.overrides.Thickness)
	}
	return p, opts, nil
}

func (t *tool) build(args []string) (*catalog.Definition, *fairing.Shell, error) {
	def, err := t.definition(args)
	if err != nil {
		return nil, nil, err
	}
	p, opts, err := t.inputs(def)
	if err != nil {
		return nil, nil, err
	}
	s, err := fairing.BuildWithLogger(p, opts, t.log)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", def.Name, err)
	}
	return def, s, nil
}

func (t *tool) buildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build [catalog] <name>",
		Short: "Build a definition and print a summary",
		Args:  definitionArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, s, err := t.build(args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			printTitle(w, "%s (%s)", def.Name, def.Kind)
			printField(w, "segments", "%d", s.Options.RadialSegments)
			if requested := def.Options().PanelCount; s.Options.PanelCount != requested && t.overrides.Panels == 0 {
				printField(w, "panels", "%d (requested %d)", s.Options.PanelCount, requested)
			} else {
				printField(w, "panels", "%d", s.Options.PanelCount)
			}
			printField(w, "wall", "%.3f", s.Options.WallThickness)
			printField(w, "height", "%.3f", s.Height)
			printField(w, "vertices", "%d", s.VertexCount())
			printField(w, "triangles", "%d", s.TriangleCount())
			size := s.Bounds.Size()
			printField(w, "bounds", "%.2f x %.2f x %.2f", size.X, size.Y, size.Z)

			fmt.Fprintln(w)
			printRow(w, true, "panel", "start", "end", "vertices", "triangles")
			for i := range s.Panels {
				p := &s.Panels[i]
				printRow(w, false,
					strconv.Itoa(p.Index),
					fmt.Sprintf("%.1f°", degrees(p.StartAngle)),
					fmt.Sprintf("%.1f°", degrees(p.EndAngle)),
					strconv.Itoa(len(p.Mesh.Vertices)),
					strconv.Itoa(p.Mesh.TriangleCount()))
			}
			return nil
		},
	}
}

func (t *tool) exportCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "export [catalog] <name>",
		Short: "Export a built shell as OBJ or STL",
		Args:  definitionArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
			}
			if format != "obj" && format != "stl" {
				return fmt.Errorf("%w: unknown export format %q", errBadArgs, format)
			}

			def, s, err := t.build(args)
			if err != nil {
				return err
			}

			switch format {
			case "stl":
				err = export.WriteSTL(output, s)
			default:
				err = writeOBJFile(output, s)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", def.Name, err)
			}

			t.log.Info("shell exported", zap.String("name", def.Name), zap.String("path", output))
			printSuccess(cmd.OutOrStdout(), "Wrote %s", output)
			printDetail(cmd.OutOrStdout(), "%d panels, %d triangles", len(s.Panels), s.TriangleCount())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().StringVar(&format, "format", "", "obj or stl (default: from the output extension)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func writeOBJFile(path string, s *fairing.Shell) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteOBJ(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (t *tool) jettisonCommand() *cobra.Command {
	var vel string

	cmd := &cobra.Command{
		Use:   "jettison [catalog] <name>",
		Short: "Jettison a definition's panels and print their motion",
		Args:  definitionArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inherited := t.cfg.InheritedVelocity()
			if vel != "" {
				v, err := parseVec3(vel)
				if err != nil {
					return err
				}
				inherited = v
			}

			def, err := t.definition(args)
			if err != nil {
				return err
			}
			p, opts, err := t.inputs(def)
			if err != nil {
				return err
			}
			f, err := fairing.New(p, opts, def.JettisonSpec(), t.log)
			if err != nil {
				return fmt.Errorf("%s: %w", def.Name, err)
			}
			panels, err := f.Jettison(inherited)
			if err != nil {
				return fmt.Errorf("%s: %w", def.Name, err)
			}

			w := cmd.OutOrStdout()
			printTitle(w, "%s: %d panels detached", def.Name, len(panels))
			printRow(w, true, "panel", "id", "mass", "velocity")

			var mass float32
			var momentum math.Vec3
			for _, dp := range panels {
				mass += dp.Mass
				momentum = momentum.Add(dp.Velocity.Scale(dp.Mass))
				printRow(w, false,
					strconv.Itoa(dp.Index),
					dp.ID.String()[:8],
					fmt.Sprintf("%.3f", dp.Mass),
					formatVec3(dp.Velocity))
			}
			fmt.Fprintln(w)
			printField(w, "mass", "%.3f", mass)
			printField(w, "momentum", "%s", formatVec3(momentum))
			return nil
		},
	}

	cmd.Flags().StringVar(&vel, "vel", "", "inherited velocity as x,y,z")
	return cmd
}

func (t *tool) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [file]",
		Short: "Validate a catalog and list its definitions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := t.cfg.Catalog.Path
			if len(args) == 1 {
				path = args[0]
			}
			w := cmd.OutOrStdout()

			cat, err := catalog.Load(path)
			if err != nil {
				printFailure(w, "%s", path)
				return err
			}
			printTitle(w, "%s: %d definitions", path, cat.Len())
			printRow(w, true, "name", "kind", "sides", "panels", "triangles")

			for _, name := range cat.Names() {
				def, _ := cat.Get(name)
				s, err := cat.Build(name, t.log)
				if err != nil {
					printFailure(w, "%s: %v", name, err)
					return err
				}
				printRow(w, false,
					name,
					string(def.Kind),
					strconv.Itoa(s.Options.RadialSegments),
					strconv.Itoa(s.Options.PanelCount),
					strconv.Itoa(s.TriangleCount()))
			}
			printSuccess(w, "All definitions build")
			return nil
		},
	}
}

func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("%w: vector %q needs three components", errBadArgs, s)
	}
	var v [3]float32
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: vector %q: %v", errBadArgs, s, err)
		}
		v[i] = float32(f)
	}
	return math.V3(v), nil
}

func formatVec3(v math.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

func degrees(rad float32) float32 {
	return rad * 180 / gomath.Pi
}
