package material

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"

	"github.com/nlatsos/helios/scene"
	"github.com/nlatsos/helios/types"
)

// Build a hit record for a ray arriving at the origin of a surface with
// the given normal.
func testHit(normal types.Vec3, rayDir types.Vec3, mat scene.Material) (scene.RayHit, scene.Ray) {
	ray := scene.Ray{Origin: rayDir.Neg().Mul(5), Dir: rayDir}
	return scene.NewRayHit(5, normal, mat, &ray), ray
}

func TestReflect(t *testing.T) {
	got := Reflect(types.XYZ(1, -1, 0).Normalize(), types.XYZ(0, 1, 0))
	want := types.XYZ(1, 1, 0).Normalize()
	if got.Sub(want).Len() > 1e-5 {
		t.Fatalf("expected reflection %v; got %v", want, got)
	}
}

func TestRefract(t *testing.T) {
	// Straight-on rays pass through undeflected regardless of eta.
	got := Refract(types.XYZ(0, -1, 0), types.XYZ(0, 1, 0), 1.0/1.5)
	if got.Sub(types.XYZ(0, -1, 0)).Len() > 1e-5 {
		t.Fatalf("expected normal-incidence ray to pass straight through; got %v", got)
	}

	// Oblique rays bend towards the normal when entering a denser medium.
	in := types.XYZ(1, -1, 0).Normalize()
	out := Refract(in, types.XYZ(0, 1, 0), 1.0/1.5)
	sinIn := in[0]
	sinOut := out.Normalize()[0]
	if math32.Abs(sinOut-sinIn/1.5) > 1e-5 {
		t.Fatalf("expected snell's law to hold; sin(in)=%f sin(out)=%f", sinIn, sinOut)
	}
}

func TestFresnelGrazingAngle(t *testing.T) {
	normal := types.XYZ(0, 1, 0)

	headOn := Fresnel(types.XYZ(0, -1, 0), normal, 1.5)
	grazing := Fresnel(types.XYZ(1, -0.01, 0).Normalize(), normal, 1.5)
	if grazing <= headOn {
		t.Fatalf("expected reflectance to rise towards grazing angles; head-on %f, grazing %f", headOn, grazing)
	}
	if grazing < 0.9 {
		t.Fatalf("expected near-total reflectance at grazing incidence; got %f", grazing)
	}
}

func TestLambertianScatter(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mat := &Lambertian{Albedo: types.XYZ(0.5, 0.5, 0.5)}
	hit, ray := testHit(types.XYZ(0, 1, 0), types.XYZ(0, -1, 0), mat)

	for i := 0; i < 100; i++ {
		out, weight, pdf := mat.Scatter(&hit, &ray, rng)
		if pdf == 0 {
			// Degenerate sample; flagged for the integrator to skip.
			continue
		}
		if out.Dir.Dot(hit.Normal) <= 0 {
			t.Fatalf("expected scattered direction in the normal hemisphere; got %v", out.Dir)
		}
		if out.Origin != hit.Point {
			t.Fatalf("expected scattered ray to start at the hit point")
		}

		want := mat.Albedo.Mul(1.0 / math32.Pi)
		if weight.Sub(want).Len() > 1e-5 {
			t.Fatalf("expected brdf weight %v; got %v", want, weight)
		}
		wantPdf := out.Dir.Dot(hit.Normal) / math32.Pi
		if math32.Abs(pdf-wantPdf) > 1e-5 {
			t.Fatalf("expected cosine pdf %f; got %f", wantPdf, pdf)
		}
	}
}

// Deterministic source yielding a fixed Int63 sequence, for steering
// rejection samplers onto specific values.
type fixedSource struct {
	vals []int64
	next int
}

func (s *fixedSource) Int63() int64 {
	v := s.vals[s.next%len(s.vals)]
	s.next++
	return v
}

func (s *fixedSource) Seed(seed int64) {}

func TestLambertianDegenerateSampleFallsBackToNormal(t *testing.T) {
	mat := &Lambertian{Albedo: types.XYZ(0.5, 0.5, 0.5)}
	hit, ray := testHit(types.XYZ(0, 1, 0), types.XYZ(0, -1, 0), mat)

	// Float32 values 0.5, 0, 0.5 make the sphere sampler yield (0, -1, 0),
	// exactly cancelling the surface normal.
	rng := rand.New(&fixedSource{vals: []int64{1 << 62, 0, 1 << 62}})
	out, _, pdf := mat.Scatter(&hit, &ray, rng)

	if out.Dir != hit.Normal {
		t.Fatalf("expected cancelled sample to fall back to the normal; got %v", out.Dir)
	}
	if math32.Abs(pdf-1.0/math32.Pi) > 1e-5 {
		t.Fatalf("expected fallback pdf of 1/pi; got %f", pdf)
	}
}

func TestLambertianScatterDirectionsFinite(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	mat := &Lambertian{Albedo: types.XYZ(0.5, 0.5, 0.5)}
	hit, ray := testHit(types.XYZ(0, 1, 0), types.XYZ(0, -1, 0), mat)

	for i := 0; i < 1000; i++ {
		out, _, pdf := mat.Scatter(&hit, &ray, rng)
		if pdf == 0 {
			continue
		}
		l := out.Dir.Len()
		if math32.IsNaN(l) || l < 0.999 || l > 1.001 {
			t.Fatalf("[sample %d] expected finite unit direction; got %v", i, out.Dir)
		}
	}
}

func TestLambertianEmission(t *testing.T) {
	mat := &Lambertian{Emissive: types.XYZ(2, 3, 4)}
	if got := mat.Emission(); got != types.XYZ(2, 3, 4) {
		t.Fatalf("expected emission (2, 3, 4); got %v", got)
	}
}

func TestMetalMirror(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mat := &Metal{Albedo: types.XYZ(0.9, 0.9, 0.9)}
	hit, ray := testHit(types.XYZ(0, 1, 0), types.XYZ(1, -1, 0).Normalize(), mat)

	out, weight, pdf := mat.Scatter(&hit, &ray, rng)
	if pdf != 1.0 {
		t.Fatalf("expected delta lobe pdf of 1; got %f", pdf)
	}

	want := types.XYZ(1, 1, 0).Normalize()
	if out.Dir.Sub(want).Len() > 1e-5 {
		t.Fatalf("expected mirror direction %v; got %v", want, out.Dir)
	}

	// Weight carries 1/cos so the integrator's cosine term cancels.
	cos := out.Dir.Dot(hit.Normal)
	if weight.Sub(mat.Albedo.Mul(1.0 / cos)).Len() > 1e-4 {
		t.Fatalf("expected weight to fold in 1/cos; got %v", weight)
	}
}

func TestMetalRoughnessStaysAboveSurface(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mat := &Metal{Albedo: types.XYZ(0.9, 0.9, 0.9), Roughness: 0.8}
	hit, ray := testHit(types.XYZ(0, 1, 0), types.XYZ(1, -1, 0).Normalize(), mat)

	for i := 0; i < 200; i++ {
		out, _, pdf := mat.Scatter(&hit, &ray, rng)
		if pdf > 0 && out.Dir.Dot(hit.Normal) <= 0 {
			t.Fatalf("expected below-surface samples to be absorbed; got %v", out.Dir)
		}
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mat := &Dielectric{IndexOfRefraction: 1.5}

	// Grazing exit from inside the dense medium; must reflect internally.
	inDir := types.XYZ(1, 0.1, 0).Normalize()
	ray := scene.Ray{Origin: inDir.Neg().Mul(5), Dir: inDir}
	hit := scene.NewRayHit(5, types.XYZ(0, 1, 0), mat, &ray)
	if hit.FrontFace {
		t.Fatalf("expected hit from inside to be back-facing")
	}

	out, _, pdf := mat.Scatter(&hit, &ray, rng)
	if pdf != 1.0 {
		t.Fatalf("expected delta lobe pdf of 1; got %f", pdf)
	}
	if out.Dir[1] >= 0 {
		t.Fatalf("expected total internal reflection back into the medium; got %v", out.Dir)
	}
}

func TestDielectricRefraction(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mat := &Dielectric{IndexOfRefraction: 1.5}
	hit, ray := testHit(types.XYZ(0, 1, 0), types.XYZ(0, -1, 0), mat)

	// At normal incidence fresnel reflectance is 4%; most samples refract
	// straight through.
	var refracted int
	for i := 0; i < 100; i++ {
		out, _, pdf := mat.Scatter(&hit, &ray, rng)
		if pdf != 1.0 {
			t.Fatalf("expected delta lobe pdf of 1; got %f", pdf)
		}
		if out.Dir[1] < 0 {
			refracted++
		}
	}
	if refracted < 80 {
		t.Fatalf("expected the bulk of normal-incidence samples to refract; got %d/100", refracted)
	}
}

func TestIsotropicScatter(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mat := &Isotropic{Albedo: types.XYZ(0.9, 0.9, 0.9)}
	hit := scene.RayHit{Point: types.XYZ(0, 0, 0), Material: mat}
	ray := scene.Ray{Origin: types.XYZ(0, 0, 5), Dir: types.XYZ(0, 0, -1)}

	out, weight, pdf := mat.Scatter(&hit, &ray, rng)
	if pdf != 1.0 {
		t.Fatalf("expected pdf of 1; got %f", pdf)
	}
	if weight != mat.Albedo {
		t.Fatalf("expected weight to be the albedo; got %v", weight)
	}
	if l := out.Dir.Len(); l < 0.999 || l > 1.001 {
		t.Fatalf("expected unit scatter direction; got length %f", l)
	}
}
