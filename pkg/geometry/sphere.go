package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere; the radius must be positive and the material valid
func NewSphere(center core.Vec3, radius float64, mat *material.Material) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("sphere radius %f: %w", radius, core.ErrInvalidGeometry)
	}
	if mat == nil {
		mat = material.Black()
	}
	if err := mat.Validate(); err != nil {
		return nil, fmt.Errorf("sphere material: %w", err)
	}
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}, nil
}

// Intersect tests if a ray intersects with the sphere, reporting the nearest positive root
func (s *Sphere) Intersect(ray core.Ray) Intersection {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return EmptyIntersection()
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, then the farther one (origin inside the sphere)
	root := (-halfB - sqrtD) / a
	if root <= 0 {
		root = (-halfB + sqrtD) / a
		if root <= 0 {
			return EmptyIntersection()
		}
	}

	point := ray.At(root)
	return Intersection{
		Point:    point,
		Normal:   point.Subtract(s.Center).Normalize(),
		Distance: root,
		Hit:      true,
		Material: s.Material,
	}
}

// GetMaterial returns the sphere material
func (s *Sphere) GetMaterial() *material.Material {
	return s.Material
}

func (s *Sphere) sealed() {}
