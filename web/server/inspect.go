package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/geometry"
	"github.com/df07/go-blockcast/pkg/material"
	"github.com/df07/go-blockcast/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	ObjectIndex  int                    `json:"objectIndex"` // -1 on a miss
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	UV           *[2]float64            `json:"uv,omitempty"`
	Color        string                 `json:"color"` // Shaded pixel color, background on a miss
	Material     map[string]interface{} `json:"material,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexString(c core.Color) string {
	return fmt.Sprintf("#%06x", c.ToHex())
}

// extractMaterialInfo lists the optical parameters of a material
func extractMaterialInfo(mat *material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"diffuse":      hexString(mat.Diffuse),
		"specular":     mat.Specular,
		"albedo":       mat.Albedo,
		"reflectivity": mat.Reflectivity,
		"transparency": mat.Transparency,
		"textured":     mat.HasTexture(),
		"emissive":     mat.Emissive,
	}
	if mat.HasTexture() {
		properties["textureSize"] = [2]int{mat.Texture.Width, mat.Texture.Height}
	}
	return properties
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(object geometry.Object) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Box:
		properties["min"] = vecArray(geom.Min)
		properties["max"] = vecArray(geom.Max)
		properties["center"] = vecArray(geom.Center())
		if geom.Skybox {
			return "skybox", properties
		}
		return "box", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray through (pixelX, pixelY) and describes what it hits
func inspectPixel(rt *renderer.Raytracer, width, height, pixelX, pixelY int) InspectResponse {
	frame := rt.Snapshot()
	ray := frame.PrimaryRay(pixelX, pixelY, width, height)

	index, hit := renderer.NearestObject(ray, frame.Objects)
	response := InspectResponse{
		Hit:         hit.Hit,
		ObjectIndex: index,
		Color:       hexString(renderer.CastRay(ray, frame.Objects, frame.Lights, frame.Background)),
	}
	if !hit.Hit {
		response.GeometryType = "background"
		return response
	}

	response.GeometryType, response.Properties = extractGeometryInfo(frame.Objects[index])
	response.Point = vecArray(hit.Point)
	response.Normal = vecArray(hit.Normal)
	response.Distance = hit.Distance
	if hit.HasUV {
		response.UV = &[2]float64{hit.U, hit.V}
	}
	response.Material = extractMaterialInfo(hit.Material)
	return response
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	req, err := s.parseRenderRequest(values)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid scene parameters: "+err.Error()))
	}

	if values.Get("x") == "" || values.Get("y") == "" {
		return c.JSON(http.StatusBadRequest, errorBody("x and y are required"))
	}
	pixelX, err := parseIntParam(values, "x", 0, 0, req.Width-1)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}
	pixelY, err := parseIntParam(values, "y", 0, 0, req.Height-1)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}

	logger := NewWebLogger(requestID(c), c.Logger(), nil)
	sceneObj, err := s.setupScene(req, logger)
	if err != nil {
		return sceneError(c, err)
	}

	return c.JSON(http.StatusOK, inspectPixel(s.newRaytracer(sceneObj, logger), req.Width, req.Height, pixelX, pixelY))
}
