package fairing

import (
	"fmt"
	"math"
)

// Ring is one cross-section control point of the shell silhouette.
type Ring struct {
	Offset float32 `yaml:"offset" toml:"offset"` // position along the shell axis
	Radius float32 `yaml:"radius" toml:"radius"`
}

// IsApex reports whether the ring collapses to a point on the axis.
func (r Ring) IsApex() bool {
	return r.Radius <= 0
}

// Profile is an ordered, bottom-to-top list of rings. The zero value is an
// empty profile ready for AddRing.
type Profile struct {
	rings []Ring
}

// NewProfile builds a profile from rings in order.
func NewProfile(rings ...Ring) (*Profile, error) {
	p := &Profile{}
	for i, r := range rings {
		if err := p.AddRing(r.Offset, r.Radius); err != nil {
			return nil, fmt.Errorf("ring %d: %w", i, err)
		}
	}
	return p, nil
}

// AddRing appends a ring above the current top ring.
//
// Offsets may repeat (a flat step between two radii) but never decrease. A
// ring identical to the previous one adds no geometry and is dropped. A
// negative radius is stored as 0, an apex.
func (p *Profile) AddRing(offset, radius float32) error {
	if !isFinite(offset) || !isFinite(radius) {
		return fmt.Errorf("%w: ring (%v, %v) is not a number", ErrInvalidProfile, offset, radius)
	}
	if radius < 0 {
		radius = 0
	}
	if n := len(p.rings); n > 0 {
		last := p.rings[n-1]
		if offset < last.Offset {
			return fmt.Errorf("%w: ring offset %.4f below previous offset %.4f", ErrInvalidProfile, offset, last.Offset)
		}
		if offset == last.Offset && radius == last.Radius {
			return nil
		}
	}
	p.rings = append(p.rings, Ring{Offset: offset, Radius: radius})
	return nil
}

// Clear empties the profile so it can be rebuilt in place.
func (p *Profile) Clear() {
	p.rings = p.rings[:0]
}

// Len returns the number of rings.
func (p *Profile) Len() int {
	return len(p.rings)
}

// Rings returns a copy of the ring list.
func (p *Profile) Rings() []Ring {
	out := make([]Ring, len(p.rings))
	copy(out, p.rings)
	return out
}

// Bottom returns the lowest offset; zero for an empty profile.
func (p *Profile) Bottom() float32 {
	if len(p.rings) == 0 {
		return 0
	}
	return p.rings[0].Offset
}

// Height returns the distance between the first and last ring.
func (p *Profile) Height() float32 {
	if len(p.rings) < 2 {
		return 0
	}
	return p.rings[len(p.rings)-1].Offset - p.rings[0].Offset
}

// MinRadius returns the smallest ring radius.
func (p *Profile) MinRadius() float32 {
	if len(p.rings) == 0 {
		return 0
	}
	m := p.rings[0].Radius
	for _, r := range p.rings[1:] {
		if r.Radius < m {
			m = r.Radius
		}
	}
	return m
}

// MaxRadius returns the largest ring radius.
func (p *Profile) MaxRadius() float32 {
	var m float32
	for _, r := range p.rings {
		if r.Radius > m {
			m = r.Radius
		}
	}
	return m
}

// Validate checks that the profile can be tessellated.
func (p *Profile) Validate() error {
	if p == nil || len(p.rings) < 2 {
		n := 0
		if p != nil {
			n = len(p.rings)
		}
		return fmt.Errorf("%w: need at least 2 rings, have %d", ErrInvalidProfile, n)
	}
	if p.Height() <= 0 {
		return fmt.Errorf("%w: profile has zero height", ErrInvalidProfile)
	}
	for i := 1; i < len(p.rings); i++ {
		if p.rings[i].Offset < p.rings[i-1].Offset {
			return fmt.Errorf("%w: ring %d offset decreases", ErrInvalidProfile, i)
		}
	}
	if p.MaxRadius() <= 0 {
		return fmt.Errorf("%w: every ring is an apex", ErrInvalidProfile)
	}
	return nil
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
