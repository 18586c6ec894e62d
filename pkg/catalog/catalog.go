// Package catalog holds named fairing model definitions. A Catalog is an
// ordinary value owned by the caller; nothing in this package is global.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/fairingkit/pkg/fairing"
)

var (
	ErrUnknownDefinition = errors.New("unknown definition")
	ErrInvalidDefinition = errors.New("invalid definition")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// Catalog maps definition names to definitions.
type Catalog struct {
	defs map[string]*Definition
}

// New builds a catalog, validating every definition. Names must be unique.
func New(defs ...Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]*Definition, len(defs))}
	for i := range defs {
		if err := c.Add(defs[i]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add validates d and registers it under its name.
func (c *Catalog) Add(d Definition) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if _, ok := c.defs[d.Name]; ok {
		return fmt.Errorf("%w: duplicate name %q", ErrInvalidDefinition, d.Name)
	}
	c.defs[d.Name] = &d
	return nil
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Names returns the definition names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a definition by name.
func (c *Catalog) Get(name string) (*Definition, error) {
	d, ok := c.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefinition, name)
	}
	return d, nil
}

// Build generates the shell for the named definition.
func (c *Catalog) Build(name string, log *zap.Logger) (*fairing.Shell, error) {
	d, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	p, err := d.Profile()
	if err != nil {
		return nil, err
	}
	return fairing.BuildWithLogger(p, d.Options(), log)
}

// NewFairing creates a fairing owner for the named definition.
func (c *Catalog) NewFairing(name string, log *zap.Logger) (*fairing.Fairing, error) {
	d, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	p, err := d.Profile()
	if err != nil {
		return nil, err
	}
	return fairing.New(p, d.Options(), d.JettisonSpec(), log)
}
