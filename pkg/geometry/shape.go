package geometry

import (
	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/material"
)

// Intersection contains information about a ray-object intersection.
// When Hit is false the other fields carry the empty sentinel values.
type Intersection struct {
	Point    core.Vec3          // Point of intersection
	Normal   core.Vec3          // Unit surface normal at the intersection
	Distance float64            // Parameter t along the ray
	Hit      bool               // Whether the ray hit the object
	Material *material.Material // Material of the hit object
	U, V     float64            // Surface coordinates, valid when HasUV is set
	HasUV    bool               // Whether the primitive supports UV mapping
}

// EmptyIntersection returns the canonical miss: zero distance and the black material
func EmptyIntersection() Intersection {
	return Intersection{Material: material.Black()}
}

// Object is the closed set of renderable primitives: *Sphere and *Box
type Object interface {
	// Intersect tests the ray against the primitive; a miss returns EmptyIntersection
	Intersect(ray core.Ray) Intersection
	// GetMaterial returns the surface material
	GetMaterial() *material.Material

	sealed()
}
