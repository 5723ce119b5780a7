package material

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/nlatsos/helios/scene"
	"github.com/nlatsos/helios/types"
)

// Minimum pdf/cosine before a sample is considered degenerate and the
// integrator is told to skip it.
const minSamplePdf float32 = 1e-6

// An ideal diffuse reflector with optional emitted radiance.
type Lambertian struct {
	Albedo   types.Vec3
	Emissive types.Vec3
}

// Sample a cosine-weighted direction about the surface normal. The BRDF
// weight is albedo/pi and the pdf cos(theta)/pi, so weight and pdf cancel
// against the integrator's cosine term for an unbiased estimate.
func (m *Lambertian) Scatter(hit *scene.RayHit, in *scene.Ray, rng *rand.Rand) (scene.Ray, types.Vec3, float32) {
	dir := hit.Normal.Add(scene.RandInUnitSphere(rng))
	if dir.Len2() < minSamplePdf {
		// Sample cancelled the normal; fall back to the normal itself.
		dir = hit.Normal
	} else {
		dir = dir.Normalize()
	}

	out := scene.Ray{Origin: hit.Point, Dir: dir}
	pdf := dir.Dot(hit.Normal) / math32.Pi
	if pdf < minSamplePdf {
		return out, types.Vec3{}, 0
	}

	return out, m.Albedo.Mul(1.0 / math32.Pi), pdf
}

func (m *Lambertian) Emission() types.Vec3 {
	return m.Emissive
}
