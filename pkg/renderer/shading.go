package renderer

import (
	"math"

	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/geometry"
	"github.com/df07/go-blockcast/pkg/lights"
	"github.com/df07/go-blockcast/pkg/material"
)

// FresnelSchlick approximates the Fresnel factor for the given cosine between normal and view.
// At normal incidence (cosTheta = 1) it equals r0 = ((1-reflectivity)/(1+reflectivity))².
func FresnelSchlick(cosTheta, reflectivity float64) float64 {
	r0 := (1 - reflectivity) / (1 + reflectivity)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosTheta, 5)
}

// SurfaceFresnel returns the Fresnel-weighted reflectivity and transparency of a surface seen along viewDir.
// The transparency is not traced; it is kept for a refraction pass.
func SurfaceFresnel(normal, viewDir core.Vec3, mat *material.Material) (reflectivity, transparency float64) {
	cosTheta := math.Abs(normal.Dot(viewDir))
	fresnel := FresnelSchlick(cosTheta, mat.Reflectivity)
	return mat.Reflectivity * fresnel, mat.Transparency * (1 - fresnel)
}

// Shade computes the local illumination of a hit seen from eye, summed over all lights
func Shade(hit geometry.Intersection, sceneLights []lights.Light, eye core.Vec3) core.Color {
	finalColor := core.Black()
	if !hit.Hit {
		return finalColor
	}

	viewDir, err := eye.Subtract(hit.Point).NormalizeChecked()
	if err != nil {
		return finalColor
	}

	mat := hit.Material
	if mat == nil {
		mat = material.Black()
	}
	base := mat.DiffuseAt(hit.U, hit.V, hit.HasUV)
	if mat.Emissive {
		return base
	}
	reflectivity, _ := SurfaceFresnel(hit.Normal, viewDir, mat)

	for _, light := range sceneLights {
		diffuse, specular, ok := lightTerms(hit, mat, base, light, viewDir)
		if !ok {
			continue
		}
		finalColor = finalColor.
			Add(diffuse.Multiply(1 - reflectivity)).
			Add(specular.Multiply(reflectivity))
	}

	return finalColor
}

// lightTerms returns the diffuse and specular contributions of one light.
// ok is false when the light sits on the hit point.
func lightTerms(hit geometry.Intersection, mat *material.Material, base core.Color, light lights.Light, viewDir core.Vec3) (diffuse, specular core.Color, ok bool) {
	lightDir, err := light.Position.Subtract(hit.Point).NormalizeChecked()
	if err != nil {
		return core.Black(), core.Black(), false
	}
	reflectDir := core.Reflect(lightDir.Negate(), hit.Normal)

	diffuseIntensity := max(0, min(1, hit.Normal.Dot(lightDir)))
	diffuse = base.Multiply(mat.Albedo[0] * diffuseIntensity * light.Intensity)

	specularIntensity := math.Pow(max(0, viewDir.Dot(reflectDir)), mat.Specular)
	specular = light.Color.Multiply(mat.Albedo[1] * specularIntensity * light.Intensity)

	return diffuse, specular, true
}
