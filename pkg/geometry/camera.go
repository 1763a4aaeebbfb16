package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-blockcast/pkg/core"
)

const (
	// MinZoomDistance keeps the eye from reaching the target
	MinZoomDistance = 0.1
	// minPolarAngle keeps the eye off the up axis so the basis stays defined
	minPolarAngle = 0.01
)

// Camera orbits a fixed target. Its state changes only through Orbit and the zoom methods.
type Camera struct {
	eye     core.Vec3
	target  core.Vec3
	worldUp core.Vec3

	right   core.Vec3
	up      core.Vec3
	forward core.Vec3
}

// NewCamera creates a camera at eye looking at target
func NewCamera(eye, target, up core.Vec3) (*Camera, error) {
	worldUp, err := up.NormalizeChecked()
	if err != nil {
		return nil, fmt.Errorf("camera up: %w", err)
	}
	c := &Camera{eye: eye, target: target, worldUp: worldUp}
	if err := c.updateBasis(); err != nil {
		return nil, err
	}
	return c, nil
}

// updateBasis derives the orthonormal basis from eye, target and world up
func (c *Camera) updateBasis() error {
	forward, err := c.target.Subtract(c.eye).NormalizeChecked()
	if err != nil {
		return fmt.Errorf("camera eye equals target: %w", err)
	}
	right, err := forward.Cross(c.worldUp).NormalizeChecked()
	if err != nil {
		return fmt.Errorf("camera looks along up: %w", err)
	}
	c.forward = forward
	c.right = right
	c.up = right.Cross(forward)
	return nil
}

// BaseChange maps a view-space direction to world space.
// View space looks down -z, so (0,0,-1) maps to the forward direction.
func (c *Camera) BaseChange(v core.Vec3) core.Vec3 {
	return c.right.Multiply(v.X).
		Add(c.up.Multiply(v.Y)).
		Subtract(c.forward.Multiply(v.Z))
}

// Orbit rotates the eye around the target: yaw about the world up axis,
// then pitch toward it (positive pitch raises the eye)
func (c *Camera) Orbit(yaw, pitch float64) {
	offset := c.eye.Subtract(c.target)
	distance := offset.Length()
	axis := c.worldUp

	offset = offset.RotateAround(axis, yaw)

	cosPolar := max(-1, min(1, offset.Dot(axis)/distance))
	polar := math.Acos(cosPolar)
	newPolar := max(minPolarAngle, min(math.Pi-minPolarAngle, polar-pitch))

	horizontal, err := offset.Subtract(axis.Multiply(offset.Dot(axis))).NormalizeChecked()
	if err != nil {
		// Offset lies on the up axis; fall back to the current view's horizontal
		horizontal = c.right.Cross(axis).Normalize()
	}

	offset = axis.Multiply(distance * math.Cos(newPolar)).
		Add(horizontal.Multiply(distance * math.Sin(newPolar)))

	c.eye = c.target.Add(offset)
	// The polar clamp keeps forward off the up axis
	_ = c.updateBasis()
}

// Zoom scales the eye-target distance by factor
func (c *Camera) Zoom(factor float64) {
	c.setDistance(c.Distance() * factor)
}

// ZoomIn moves the eye step units toward the target
func (c *Camera) ZoomIn(step float64) {
	c.setDistance(c.Distance() - step)
}

// ZoomOut moves the eye step units away from the target
func (c *Camera) ZoomOut(step float64) {
	c.setDistance(c.Distance() + step)
}

func (c *Camera) setDistance(distance float64) {
	if math.IsNaN(distance) || distance < MinZoomDistance {
		distance = MinZoomDistance
	}
	c.eye = c.target.Subtract(c.forward.Multiply(distance))
}

// Eye returns the camera position
func (c *Camera) Eye() core.Vec3 { return c.eye }

// Target returns the point the camera orbits
func (c *Camera) Target() core.Vec3 { return c.target }

// Distance returns the eye-target distance
func (c *Camera) Distance() float64 { return c.eye.Subtract(c.target).Length() }

// Forward returns the unit direction toward the target
func (c *Camera) Forward() core.Vec3 { return c.forward }

// Right returns the unit right vector of the basis
func (c *Camera) Right() core.Vec3 { return c.right }

// Up returns the unit up vector of the basis
func (c *Camera) Up() core.Vec3 { return c.up }
