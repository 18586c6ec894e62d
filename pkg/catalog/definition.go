package catalog

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/fairingkit/pkg/fairing"
	"github.com/Faultbox/fairingkit/pkg/math"
)

// Kind selects the geometric role of a definition.
type Kind string

const (
	KindRingStack Kind = "ring_stack"
	KindMount     Kind = "mount"
	KindNoseCap   Kind = "nose_cap"
)

// DefaultCurveRings is used when a nose cap leaves curve_rings unset.
const DefaultCurveRings = 8

// Definition is one named model definition. Exactly one of Rings, Mount or
// NoseCap is read, selected by Kind.
type Definition struct {
	Name string `yaml:"name" toml:"name"`
	Kind Kind   `yaml:"kind" toml:"kind"`

	CylinderSides  int     `yaml:"cylinder_sides" toml:"cylinder_sides"`
	NumberOfPanels int     `yaml:"number_of_panels" toml:"number_of_panels"`
	WallThickness  float32 `yaml:"wall_thickness" toml:"wall_thickness"`
	StrictPanels   bool    `yaml:"strict_panels" toml:"strict_panels"`

	Outside *fairing.UVArea `yaml:"outside,omitempty" toml:"outside,omitempty"`
	Inside  *fairing.UVArea `yaml:"inside,omitempty" toml:"inside,omitempty"`
	Edges   *fairing.UVArea `yaml:"edges,omitempty" toml:"edges,omitempty"`

	Jettison *Jettison `yaml:"jettison,omitempty" toml:"jettison,omitempty"`

	Rings   []fairing.Ring `yaml:"rings,omitempty" toml:"rings,omitempty"`
	Mount   *Mount         `yaml:"mount,omitempty" toml:"mount,omitempty"`
	NoseCap *NoseCap       `yaml:"nose_cap,omitempty" toml:"nose_cap,omitempty"`
}

// Jettison holds the separation parameters of a definition.
type Jettison struct {
	Force     float32    `yaml:"force" toml:"force"`
	Direction [3]float32 `yaml:"direction" toml:"direction"`
	Mass      float32    `yaml:"mass" toml:"mass"`
}

// Mount is an interstage adapter: a bolted collar, a straight section and a
// conical taper to the upper stage.
type Mount struct {
	BottomRadius    float32 `yaml:"bottom_radius" toml:"bottom_radius"`
	TopRadius       float32 `yaml:"top_radius" toml:"top_radius"`
	Height          float32 `yaml:"height" toml:"height"`
	TaperHeight     float32 `yaml:"taper_height" toml:"taper_height"`
	BoltPanelHeight float32 `yaml:"bolt_panel_height" toml:"bolt_panel_height"`
}

// NoseCap is a node fairing top: a cylinder followed by a curved section
// closing to CapSize. A zero CapSize gives a pointed tip.
type NoseCap struct {
	Radius         float32 `yaml:"radius" toml:"radius"`
	Height         float32 `yaml:"height" toml:"height"`
	CylinderHeight float32 `yaml:"cylinder_height" toml:"cylinder_height"`
	CapSize        float32 `yaml:"cap_size" toml:"cap_size"`
	CurveRings     int     `yaml:"curve_rings" toml:"curve_rings"`
}

// Validate checks that the definition yields a buildable profile.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	}
	if d.CylinderSides < 0 || d.NumberOfPanels < 0 || d.WallThickness < 0 {
		return fmt.Errorf("%w: %s: negative shape parameter", ErrInvalidDefinition, d.Name)
	}
	p, err := d.Profile()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, d.Name, err)
	}
	if err := d.Options().Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, d.Name, err)
	}
	return nil
}

// Profile builds the ring profile described by the definition.
func (d *Definition) Profile() (*fairing.Profile, error) {
	rings, err := d.rings()
	if err != nil {
		return nil, err
	}
	p, err := fairing.NewProfile(rings...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, d.Name, err)
	}
	return p, nil
}

// Options returns the generator options, falling back to the package
// defaults for unset fields.
func (d *Definition) Options() fairing.Options {
	opts := fairing.DefaultOptions()
	if d.CylinderSides > 0 {
		opts.RadialSegments = d.CylinderSides
	}
	if d.NumberOfPanels > 0 {
		opts.PanelCount = d.NumberOfPanels
	}
	if d.WallThickness > 0 {
		opts.WallThickness = d.WallThickness
	}
	opts.StrictPanels = d.StrictPanels
	if d.Outside != nil {
		opts.UV.Outside = *d.Outside
	}
	if d.Inside != nil {
		opts.UV.Inside = *d.Inside
	}
	if d.Edges != nil {
		opts.UV.Edges = *d.Edges
	}
	return opts
}

// JettisonSpec returns the definition's separation parameters, or the
// package default when none are set.
func (d *Definition) JettisonSpec() fairing.JettisonSpec {
	if d.Jettison == nil {
		return fairing.DefaultJettisonSpec()
	}
	return fairing.JettisonSpec{
		Force:     d.Jettison.Force,
		Direction: math.V3(d.Jettison.Direction),
		Mass:      d.Jettison.Mass,
	}
}

func (d *Definition) rings() ([]fairing.Ring, error) {
	switch d.Kind {
	case KindRingStack:
		if len(d.Rings) == 0 {
			return nil, fmt.Errorf("%w: %s: ring_stack without rings", ErrInvalidDefinition, d.Name)
		}
		return d.Rings, nil
	case KindMount:
		if d.Mount == nil {
			return nil, fmt.Errorf("%w: %s: mount without mount block", ErrInvalidDefinition, d.Name)
		}
		rings, err := d.Mount.rings()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, d.Name, err)
		}
		return rings, nil
	case KindNoseCap:
		if d.NoseCap == nil {
			return nil, fmt.Errorf("%w: %s: nose_cap without nose_cap block", ErrInvalidDefinition, d.Name)
		}
		rings, err := d.NoseCap.rings()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, d.Name, err)
		}
		return rings, nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidDefinition, d.Name, d.Kind)
	}
}

func (m *Mount) rings() ([]fairing.Ring, error) {
	switch {
	case m.Height <= 0:
		return nil, fmt.Errorf("height %v must be positive", m.Height)
	case m.BottomRadius <= 0:
		return nil, fmt.Errorf("bottom radius %v must be positive", m.BottomRadius)
	case m.TopRadius < 0:
		return nil, fmt.Errorf("top radius %v is negative", m.TopRadius)
	case m.TaperHeight < 0 || m.BoltPanelHeight < 0:
		return nil, fmt.Errorf("negative section height")
	case m.TaperHeight+m.BoltPanelHeight > m.Height:
		return nil, fmt.Errorf("taper %v and bolt panel %v exceed height %v", m.TaperHeight, m.BoltPanelHeight, m.Height)
	}

	straightTop := m.Height - m.TaperHeight
	rings := []fairing.Ring{{Offset: 0, Radius: m.BottomRadius}}
	if m.BoltPanelHeight > 0 {
		rings = append(rings, fairing.Ring{Offset: m.BoltPanelHeight, Radius: m.BottomRadius})
	}
	if straightTop > m.BoltPanelHeight {
		rings = append(rings, fairing.Ring{Offset: straightTop, Radius: m.BottomRadius})
	}
	if m.TaperHeight > 0 {
		rings = append(rings, fairing.Ring{Offset: m.Height, Radius: m.TopRadius})
	}
	return rings, nil
}

func (n *NoseCap) rings() ([]fairing.Ring, error) {
	switch {
	case n.Radius <= 0:
		return nil, fmt.Errorf("radius %v must be positive", n.Radius)
	case n.Height <= 0:
		return nil, fmt.Errorf("height %v must be positive", n.Height)
	case n.CylinderHeight < 0:
		return nil, fmt.Errorf("cylinder height %v is negative", n.CylinderHeight)
	case n.CapSize < 0 || n.CapSize > n.Radius:
		return nil, fmt.Errorf("cap size %v outside [0, %v]", n.CapSize, n.Radius)
	case n.CurveRings < 0:
		return nil, fmt.Errorf("curve rings %d is negative", n.CurveRings)
	}

	steps := n.CurveRings
	if steps == 0 {
		steps = DefaultCurveRings
	}

	rings := make([]fairing.Ring, 0, steps+2)
	rings = append(rings, fairing.Ring{Offset: 0, Radius: n.Radius})
	if n.CylinderHeight > 0 {
		rings = append(rings, fairing.Ring{Offset: n.CylinderHeight, Radius: n.Radius})
	}
	// quarter-cosine ogive from the cylinder edge to the cap
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r := n.CapSize + (n.Radius-n.CapSize)*float32(gomath.Cos(t*gomath.Pi/2))
		if i == steps {
			r = n.CapSize
		}
		rings = append(rings, fairing.Ring{
			Offset: n.CylinderHeight + float32(t)*n.Height,
			Radius: r,
		})
	}
	return rings, nil
}
