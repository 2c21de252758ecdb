// Package scene holds the named mesh objects produced by one script
// evaluation. A scene is built fresh for every evaluation and handed to
// consumers as a whole; they read it and never write it back.
package scene

import (
	"fmt"

	"github.com/chazu/facet/pkg/mesh"
)

// Object is a named mesh.
type Object struct {
	Name string     `json:"name"`
	Mesh *mesh.Mesh `json:"-"`
}

// Scene maps names to objects and remembers definition order.
type Scene struct {
	Objects map[string]*Object `json:"objects"`
	Order   []string           `json:"order"`
	Version uint64             `json:"version"`
}

// New creates an empty Scene.
func New() *Scene {
	return &Scene{
		Objects: make(map[string]*Object),
	}
}

// Add stores o under its name. Redefining a name replaces the object but
// keeps its original position in Order.
func (s *Scene) Add(o *Object) {
	if _, ok := s.Objects[o.Name]; !ok {
		s.Order = append(s.Order, o.Name)
	}
	s.Objects[o.Name] = o
}

// Lookup returns the object with the given name, or nil.
func (s *Scene) Lookup(name string) *Object {
	return s.Objects[name]
}

// MustLookup returns the object with the given name, or panics.
func (s *Scene) MustLookup(name string) *Object {
	o := s.Lookup(name)
	if o == nil {
		panic(fmt.Sprintf("scene: no object named %q", name))
	}
	return o
}

// Each calls fn for every object in definition order.
func (s *Scene) Each(fn func(o *Object)) {
	for _, name := range s.Order {
		fn(s.Objects[name])
	}
}

// Names returns object names in definition order.
func (s *Scene) Names() []string {
	out := make([]string, len(s.Order))
	copy(out, s.Order)
	return out
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.Objects)
}
