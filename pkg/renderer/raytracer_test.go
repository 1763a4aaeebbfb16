package renderer

import (
	"testing"

	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/geometry"
	"github.com/df07/go-blockcast/pkg/lights"
	"github.com/df07/go-blockcast/pkg/material"
)

func mustSphere(t *testing.T, center core.Vec3, radius float64, mat *material.Material) *geometry.Sphere {
	t.Helper()
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	return sphere
}

func mustBox(t *testing.T, min, max core.Vec3, mat *material.Material) *geometry.Box {
	t.Helper()
	box, err := geometry.NewBox(min, max, mat)
	if err != nil {
		t.Fatalf("NewBox failed: %v", err)
	}
	return box
}

func flatMaterial(c core.Color) *material.Material {
	return &material.Material{Diffuse: c, Specular: 1, Albedo: [2]float64{1, 0}}
}

func TestCastRay_Background(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1, flatMaterial(core.NewColor(255, 0, 0)))
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))

	got := CastRay(ray, []geometry.Object{sphere}, nil, DefaultBackground)
	if got != core.NewColor(4, 12, 36) {
		t.Errorf("Expected background (4,12,36), got %v", got)
	}

	if got := CastRay(ray, nil, nil, DefaultBackground); got != DefaultBackground {
		t.Errorf("Expected background for an empty scene, got %v", got)
	}
}

func TestCastRay_NearestHitWins(t *testing.T) {
	red := flatMaterial(core.NewColor(255, 0, 0))
	green := flatMaterial(core.NewColor(0, 255, 0))
	light := []lights.Light{lights.NewLight(core.NewVec3(0, 0, 20), core.NewColor(255, 255, 255), 1)}
	ray := core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1))

	near := mustSphere(t, core.NewVec3(0, 0, 2), 1, green)
	far := mustBox(t, core.NewVec3(-2, -2, -2), core.NewVec3(2, 2, 0), red)

	for _, order := range [][]geometry.Object{{near, far}, {far, near}} {
		got := CastRay(ray, order, light, DefaultBackground)
		if got.G <= 0 || got.R != 0 {
			t.Errorf("Expected the nearer green sphere, got %v", got)
		}
	}
}

func TestNearestIntersection_TieKeepsFirst(t *testing.T) {
	first := flatMaterial(core.NewColor(255, 0, 0))
	second := flatMaterial(core.NewColor(0, 0, 255))
	a := mustSphere(t, core.NewVec3(0, 0, 0), 1, first)
	b := mustSphere(t, core.NewVec3(0, 0, 0), 1, second)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	if hit := NearestIntersection(ray, []geometry.Object{a, b}); hit.Material != first {
		t.Error("Expected the first object to win an exact tie")
	}
	if hit := NearestIntersection(ray, []geometry.Object{b, a}); hit.Material != second {
		t.Error("Expected the first object to win an exact tie after reordering")
	}
}

func TestNearestIntersection_Miss(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1, nil)
	hit := NearestIntersection(core.NewRay(core.NewVec3(0, 5, 5), core.NewVec3(0, 0, -1)), []geometry.Object{sphere})

	if hit.Hit || hit.Distance != 0 || hit.Material != material.Black() {
		t.Errorf("Expected the empty intersection, got %+v", hit)
	}
}

func TestNearestObject_Index(t *testing.T) {
	far := mustSphere(t, core.NewVec3(0, 0, -5), 1, nil)
	near := mustSphere(t, core.NewVec3(0, 0, 0), 1, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	index, hit := NearestObject(ray, []geometry.Object{far, near})
	if index != 1 || !hit.Hit {
		t.Errorf("Expected object 1 to be hit, got %d (hit=%v)", index, hit.Hit)
	}

	index, hit = NearestObject(core.NewRay(core.NewVec3(0, 5, 5), core.NewVec3(0, 0, -1)), []geometry.Object{far, near})
	if index != -1 || hit.Hit {
		t.Errorf("Expected a miss with index -1, got %d", index)
	}
}
