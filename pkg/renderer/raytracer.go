package renderer

import (
	"math"

	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/geometry"
	"github.com/df07/go-blockcast/pkg/lights"
)

// DefaultBackground is the color of rays that hit nothing
var DefaultBackground = core.NewColor(4, 12, 36)

// Scene interface to avoid circular imports
type Scene interface {
	GetObjects() []geometry.Object
	GetLights() []lights.Light
	GetCamera() *geometry.Camera
	GetBackground() core.Color
}

// NearestIntersection tests every object and keeps the closest positive hit.
// Equal distances keep the earlier object.
func NearestIntersection(ray core.Ray, objects []geometry.Object) geometry.Intersection {
	_, hit := NearestObject(ray, objects)
	return hit
}

// NearestObject is NearestIntersection that also reports the index of the hit object, or -1
func NearestObject(ray core.Ray, objects []geometry.Object) (int, geometry.Intersection) {
	nearest := geometry.EmptyIntersection()
	index := -1
	zBuffer := math.Inf(1)

	for i, object := range objects {
		hit := object.Intersect(ray)
		if hit.Hit && hit.Distance > 0 && hit.Distance < zBuffer {
			zBuffer = hit.Distance
			nearest = hit
			index = i
		}
	}

	return index, nearest
}

// CastRay returns the shaded color seen along ray, or background when nothing is hit
func CastRay(ray core.Ray, objects []geometry.Object, sceneLights []lights.Light, background core.Color) core.Color {
	color, _ := castRay(ray, objects, sceneLights, background)
	return color
}

func castRay(ray core.Ray, objects []geometry.Object, sceneLights []lights.Light, background core.Color) (core.Color, bool) {
	hit := NearestIntersection(ray, objects)
	if !hit.Hit {
		return background, false
	}
	return Shade(hit, sceneLights, ray.Origin), true
}
