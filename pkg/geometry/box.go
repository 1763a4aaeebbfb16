package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/material"
)

// FaceTolerance is how close a point must be to a box bound to count as lying on that face
const FaceTolerance = 1e-4

// Box represents an axis-aligned box given by its min and max corners
type Box struct {
	Min      core.Vec3
	Max      core.Vec3
	Material *material.Material
	Skybox   bool // Inverted enclosing box seen from inside; normals point inward
}

// NewBox creates an axis-aligned box; min must be strictly less than max on every axis
// and the material must pass Validate
func NewBox(min, max core.Vec3, mat *material.Material) (*Box, error) {
	for axis := 0; axis < 3; axis++ {
		lo, hi := min.Component(axis), max.Component(axis)
		if !(lo < hi) {
			return nil, fmt.Errorf("box min %v max %v degenerate on axis %d: %w",
				min, max, axis, core.ErrInvalidGeometry)
		}
	}
	if mat == nil {
		mat = material.Black()
	}
	if err := mat.Validate(); err != nil {
		return nil, fmt.Errorf("box material: %w", err)
	}
	return &Box{Min: min, Max: max, Material: mat}, nil
}

// NewSkybox creates a box that encloses the scene and is viewed from inside
func NewSkybox(min, max core.Vec3, mat *material.Material) (*Box, error) {
	box, err := NewBox(min, max, mat)
	if err != nil {
		return nil, err
	}
	box.Skybox = true
	return box, nil
}

// Intersect tests the ray against the box using the slab method.
// When the origin is inside the box the exit distance is reported instead of the
// negative entry distance. This is deliberate: nearest-hit selection drops distances
// ≤ 0, and an enclosing skybox must still be hit from inside.
func (b *Box) Intersect(ray core.Ray) Intersection {
	tNear, tFar := math.Inf(-1), math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Component(axis)
		dir := ray.Direction.Component(axis)
		lo, hi := b.Min.Component(axis), b.Max.Component(axis)

		// Parallel to the slab: inside for every t or never
		if dir == 0 {
			if origin < lo || origin > hi {
				return EmptyIntersection()
			}
			continue
		}

		invDir := 1.0 / dir
		t0 := (lo - origin) * invDir
		t1 := (hi - origin) * invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tNear = max(tNear, t0)
		tFar = min(tFar, t1)
	}

	if !(tNear < tFar && tFar > 0) {
		return EmptyIntersection()
	}

	t := tNear
	if t <= 0 {
		t = tFar
	}

	point := ray.At(t)
	normal := b.NormalAt(point)
	u, v := b.UVAt(point, normal)

	return Intersection{
		Point:    point,
		Normal:   normal,
		Distance: t,
		Hit:      true,
		Material: b.Material,
		U:        u,
		V:        v,
		HasUV:    true,
	}
}

// NormalAt returns the unit normal of the face containing point.
// Faces are checked in the order x-min, x-max, y-min, y-max, z-min, z-max;
// the first within FaceTolerance wins, and +z is the fallback.
func (b *Box) NormalAt(point core.Vec3) core.Vec3 {
	var normal core.Vec3
	switch {
	case math.Abs(point.X-b.Min.X) < FaceTolerance:
		normal = core.NewVec3(-1, 0, 0)
	case math.Abs(point.X-b.Max.X) < FaceTolerance:
		normal = core.NewVec3(1, 0, 0)
	case math.Abs(point.Y-b.Min.Y) < FaceTolerance:
		normal = core.NewVec3(0, -1, 0)
	case math.Abs(point.Y-b.Max.Y) < FaceTolerance:
		normal = core.NewVec3(0, 1, 0)
	case math.Abs(point.Z-b.Min.Z) < FaceTolerance:
		normal = core.NewVec3(0, 0, -1)
	default:
		normal = core.NewVec3(0, 0, 1)
	}

	if b.Skybox {
		return normal.Negate()
	}
	return normal
}

// UVAt maps the point to [0,1]² using the two in-plane axes of the face given by normal
func (b *Box) UVAt(point, normal core.Vec3) (float64, float64) {
	size := b.Max.Subtract(b.Min)
	local := point.Subtract(b.Min)

	switch {
	case normal.X != 0:
		return local.Y / size.Y, local.Z / size.Z
	case normal.Y != 0:
		return local.X / size.X, local.Z / size.Z
	default:
		return local.X / size.X, local.Y / size.Y
	}
}

// Center returns the midpoint of the box
func (b *Box) Center() core.Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// GetMaterial returns the box material
func (b *Box) GetMaterial() *material.Material {
	return b.Material
}

func (b *Box) sealed() {}
