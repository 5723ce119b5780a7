package tracer

import (
	"math/rand"
	"testing"

	"github.com/nlatsos/helios/material"
	"github.com/nlatsos/helios/scene"
	"github.com/nlatsos/helios/types"
)

func testScene(objects ...scene.Intersectable) *scene.Scene {
	return &scene.Scene{
		Camera: &scene.Camera{
			Eye:          types.XYZ(0, 0, 5),
			ViewDir:      types.XYZ(0, 0, -1),
			Up:           types.XYZ(0, 1, 0),
			ScreenW:      8,
			ScreenH:      8,
			FocalLength:  1,
			FocusDist:    5,
			AASamples:    1,
			PathDepth:    4,
			PathSamples:  1,
			MaxTraceDist: 1000,
			Gamma:        2.2,
		},
		Objects: objects,
	}
}

func TestShadeMissReturnsBackground(t *testing.T) {
	sc := testScene()
	sc.Background = func(dir types.Vec3) types.Vec3 {
		return types.XYZ(0.1, 0.2, 0.3)
	}
	in := NewIntegrator(sc)
	rng := rand.New(rand.NewSource(42))

	ray := scene.Ray{Origin: types.XYZ(0, 0, 5), Dir: types.XYZ(0, 0, -1)}
	if got := in.Shade(&ray, 0, rng); got != types.XYZ(0.1, 0.2, 0.3) {
		t.Fatalf("expected miss to return the background color; got %v", got)
	}
}

func TestShadeNilBackgroundIsBlack(t *testing.T) {
	sc := testScene()
	in := NewIntegrator(sc)
	rng := rand.New(rand.NewSource(42))

	ray := scene.Ray{Origin: types.XYZ(0, 0, 5), Dir: types.XYZ(0, 0, -1)}
	if got := in.Shade(&ray, 0, rng); got != (types.Vec3{}) {
		t.Fatalf("expected miss with nil background to be black; got %v", got)
	}
}

func TestShadeZeroDepthReturnsBackground(t *testing.T) {
	sc := testScene(&scene.Sphere{
		Center:   types.XYZ(0, 0, 0),
		Radius:   1,
		Material: &material.Lambertian{Emissive: types.XYZ(5, 5, 5)},
	})
	sc.Camera.PathDepth = 0
	sc.Background = func(dir types.Vec3) types.Vec3 {
		return types.XYZ(0.25, 0.25, 0.25)
	}
	in := NewIntegrator(sc)
	rng := rand.New(rand.NewSource(42))

	// With zero path depth every ray returns the background, even ones
	// aimed straight at an emitter.
	rays := []scene.Ray{
		{Origin: types.XYZ(0, 0, 5), Dir: types.XYZ(0, 0, -1)},
		{Origin: types.XYZ(0, 5, 0), Dir: types.XYZ(0, -1, 0)},
		{Origin: types.XYZ(0, 0, 5), Dir: types.XYZ(0, 0, 1)},
	}
	for rayIndex, ray := range rays {
		if got := in.Shade(&ray, 0, rng); got != types.XYZ(0.25, 0.25, 0.25) {
			t.Fatalf("[ray %d] expected background for zero path depth; got %v", rayIndex, got)
		}
	}
}

func TestShadeDepthExhaustion(t *testing.T) {
	sc := testScene(&scene.Sphere{
		Center:   types.XYZ(0, 0, 0),
		Radius:   1,
		Material: &material.Lambertian{Albedo: types.XYZ(1, 1, 1)},
	})
	in := NewIntegrator(sc)
	rng := rand.New(rand.NewSource(42))

	// Starting at the depth limit must terminate without intersecting.
	ray := scene.Ray{Origin: types.XYZ(0, 0, 5), Dir: types.XYZ(0, 0, -1)}
	if got := in.Shade(&ray, sc.Camera.PathDepth, rng); got != (types.Vec3{}) {
		t.Fatalf("expected exhausted path to terminate with the background; got %v", got)
	}
}

func TestShadeEmissiveSurface(t *testing.T) {
	radiance := types.XYZ(2, 3, 4)
	sc := testScene(&scene.Sphere{
		Center:   types.XYZ(0, 0, 0),
		Radius:   1,
		Material: &material.Lambertian{Emissive: radiance},
	})
	in := NewIntegrator(sc)
	rng := rand.New(rand.NewSource(42))

	// A pure emitter in a black world contributes exactly its emission.
	ray := scene.Ray{Origin: types.XYZ(0, 0, 5), Dir: types.XYZ(0, 0, -1)}
	got := in.Shade(&ray, 0, rng)
	if got.Sub(radiance).Len() > 1e-5 {
		t.Fatalf("expected emission %v; got %v", radiance, got)
	}
}

func TestShadeDiffuseBounceGathersEmission(t *testing.T) {
	// Diffuse sphere fully enclosed by an emissive shell: every scattered
	// ray terminates on the emitter, so the estimate converges to
	// emission * albedo regardless of direction.
	albedo := types.XYZ(0.5, 0.5, 0.5)
	shellRadiance := types.XYZ(1, 1, 1)
	sc := testScene(
		&scene.Sphere{
			Center:   types.XYZ(0, 0, 0),
			Radius:   1,
			Material: &material.Lambertian{Albedo: albedo},
		},
		&scene.Sphere{
			Center:   types.XYZ(0, 0, 0),
			Radius:   100,
			Material: &material.Lambertian{Emissive: shellRadiance},
		},
	)
	sc.Camera.PathDepth = 2
	in := NewIntegrator(sc)
	rng := rand.New(rand.NewSource(42))

	// Average many primary rays; cosine-weighted sampling against the
	// pi-normalized brdf makes each sample exactly albedo * emission.
	var sum types.Vec3
	samples := 500
	ray := scene.Ray{Origin: types.XYZ(0, 0, 5), Dir: types.XYZ(0, 0, -1)}
	for i := 0; i < samples; i++ {
		sum = sum.Add(in.Shade(&ray, 0, rng))
	}
	got := sum.Mul(1.0 / float32(samples))

	want := albedo.MulVec(shellRadiance)
	if got.Sub(want).Len() > 0.05 {
		t.Fatalf("expected gathered radiance near %v; got %v", want, got)
	}
}

func TestTraceDispatchesPhong(t *testing.T) {
	sc := testScene(&scene.Sphere{
		Center:   types.XYZ(0, 0, 0),
		Radius:   1,
		Material: &material.Lambertian{Albedo: types.XYZ(1, 0, 0)},
	})
	sc.Camera.Shading = scene.PhongDebug
	sc.PointLightPos = types.XYZ(0, 0, 10)
	sc.Ambient = types.XYZ(0.1, 0.1, 0.1)
	in := NewIntegrator(sc)
	rng := rand.New(rand.NewSource(42))

	// Lit head-on, the surface must end up brighter than the ambient term
	// alone and the result must be deterministic in shape (red dominant).
	ray := scene.Ray{Origin: types.XYZ(0, 0, 5), Dir: types.XYZ(0, 0, -1)}
	got := in.Trace(&ray, rng)
	if got[0] <= sc.Ambient[0] {
		t.Fatalf("expected lit surface to be brighter than ambient; got %v", got)
	}
	if got[0] <= got[2] {
		t.Fatalf("expected red channel to dominate for a red surface; got %v", got)
	}
}
