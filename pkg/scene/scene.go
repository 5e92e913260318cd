// Package scene holds the ordered component list a trace runs against,
// plus a handful of ready-made demonstration scenes exercising the
// component catalog (mirrors, lenses, dielectrics, polarization optics).
package scene

import "github.com/df07/go-optics-lab/pkg/core"

// Scene is an ordered list of components: scene order governs both source
// generation order and intersection-distance tie-breaking (spec.md §5).
type Scene struct {
	Name       string
	Components []core.OpticalComponent
}

// New creates a named scene from an ordered component list.
func New(name string, components ...core.OpticalComponent) Scene {
	return Scene{Name: name, Components: components}
}

// Find returns the component with the given id, or nil if absent.
func (s Scene) Find(id core.ComponentId) core.OpticalComponent {
	for _, c := range s.Components {
		if c.ID() == id {
			return c
		}
	}
	return nil
}
