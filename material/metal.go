package material

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/nlatsos/helios/scene"
	"github.com/nlatsos/helios/types"
)

// A reflective conductor. Roughness perturbs the mirror direction with a
// scaled sphere sample; 0 is a perfect mirror, 1 close to diffuse.
type Metal struct {
	Albedo    types.Vec3
	Roughness float32
}

// Mirror the incoming direction and fuzz it by roughness. The lobe is
// treated as a delta: pdf is 1 and the weight folds in 1/cos so the
// integrator's cosine term cancels.
func (m *Metal) Scatter(hit *scene.RayHit, in *scene.Ray, rng *rand.Rand) (scene.Ray, types.Vec3, float32) {
	reflected := Reflect(in.Dir.Normalize(), hit.Normal)
	if m.Roughness > 0 {
		reflected = reflected.Add(scene.RandInUnitSphere(rng).Mul(m.Roughness)).Normalize()
	}

	out := scene.Ray{Origin: hit.Point, Dir: reflected}

	// Fuzzed direction may dip below the surface; absorb those samples.
	cos := reflected.Dot(hit.Normal)
	if cos < minSamplePdf {
		return out, types.Vec3{}, 0
	}

	return out, m.Albedo.Mul(1.0 / math32.Abs(cos)), 1.0
}

func (m *Metal) Emission() types.Vec3 {
	return types.Vec3{}
}
