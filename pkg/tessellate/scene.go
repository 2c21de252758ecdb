package tessellate

import (
	"fmt"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/scene"
)

// Scene produces one snapshot per object in definition order. The scene
// is read-only here and never mutated.
func Scene(s *scene.Scene) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}
	var meshes []*kernel.Mesh
	for _, name := range s.Order {
		o := s.Objects[name]
		if o.Mesh == nil {
			continue
		}
		m, err := Tessellate(o.Mesh, name)
		if err != nil {
			return nil, fmt.Errorf("tessellate: error walking object %s: %w", name, err)
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}
