package fairing

import "fmt"

// Default tessellation settings.
const (
	DefaultRadialSegments = 24
	DefaultPanelCount     = 2
	DefaultWallThickness  = 0.025
)

// UVArea is a rectangular region of the shared texture atlas.
type UVArea struct {
	U1 float32 `yaml:"u1" toml:"u1"`
	V1 float32 `yaml:"v1" toml:"v1"`
	U2 float32 `yaml:"u2" toml:"u2"`
	V2 float32 `yaml:"v2" toml:"v2"`
}

// FullArea covers the whole texture.
func FullArea() UVArea {
	return UVArea{U1: 0, V1: 0, U2: 1, V2: 1}
}

// U maps a local coordinate in [0,1] into the region.
func (a UVArea) U(u float32) float32 {
	return a.U1 + u*(a.U2-a.U1)
}

// V maps a local coordinate in [0,1] into the region.
func (a UVArea) V(v float32) float32 {
	return a.V1 + v*(a.V2-a.V1)
}

// UVMap assigns an atlas region to each surface class.
type UVMap struct {
	Outside UVArea `yaml:"outside" toml:"outside"`
	Inside  UVArea `yaml:"inside" toml:"inside"`
	Edges   UVArea `yaml:"edges" toml:"edges"`
}

// DefaultUVMap maps every surface to the full texture.
func DefaultUVMap() UVMap {
	full := FullArea()
	return UVMap{Outside: full, Inside: full, Edges: full}
}

// Options are the global shape parameters applied to a profile.
type Options struct {
	RadialSegments int
	PanelCount     int
	WallThickness  float32
	UV             UVMap

	// StrictPanels rejects a panel count that does not divide RadialSegments
	// instead of rounding it to the nearest divisor.
	StrictPanels bool
}

// DefaultOptions returns the default tessellation settings.
func DefaultOptions() Options {
	return Options{
		RadialSegments: DefaultRadialSegments,
		PanelCount:     DefaultPanelCount,
		WallThickness:  DefaultWallThickness,
		UV:             DefaultUVMap(),
	}
}

// SegmentsPerPanel returns the angular segments covered by one panel.
func (o Options) SegmentsPerPanel() int {
	if o.PanelCount <= 0 {
		return 0
	}
	return o.RadialSegments / o.PanelCount
}

// Validate reports whether a shell can be built with o. A panel count that
// does not divide RadialSegments is only an error with StrictPanels.
func (o Options) Validate() error {
	_, err := o.resolve()
	return err
}

// resolve validates o and returns a copy with the panel count rounded to a
// divisor of RadialSegments.
func (o Options) resolve() (Options, error) {
	if o.RadialSegments < 3 {
		return o, fmt.Errorf("%w: radial segments %d < 3", ErrInvalidProfile, o.RadialSegments)
	}
	if !(o.WallThickness > 0) {
		return o, fmt.Errorf("%w: wall thickness %v must be positive", ErrInvalidProfile, o.WallThickness)
	}
	if o.PanelCount < 1 || o.PanelCount > o.RadialSegments {
		return o, fmt.Errorf("%w: %d panels for %d segments", ErrInvalidPanelCount, o.PanelCount, o.RadialSegments)
	}
	if o.RadialSegments%o.PanelCount != 0 {
		if o.StrictPanels {
			return o, fmt.Errorf("%w: %d panels do not divide %d segments", ErrInvalidPanelCount, o.PanelCount, o.RadialSegments)
		}
		o.PanelCount = NearestDivisor(o.RadialSegments, o.PanelCount)
	}
	if o.UV == (UVMap{}) {
		o.UV = DefaultUVMap()
	}
	return o, nil
}

// NearestDivisor returns the divisor of n closest to want. Ties go to the
// smaller divisor, which keeps panels wider.
func NearestDivisor(n, want int) int {
	best := 1
	for d := 1; d <= n; d++ {
		if n%d != 0 {
			continue
		}
		if absInt(d-want) < absInt(best-want) {
			best = d
		}
	}
	return best
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
