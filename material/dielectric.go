package material

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/nlatsos/helios/scene"
	"github.com/nlatsos/helios/types"
)

// A clear dielectric (glass, water) that refracts or reflects based on the
// fresnel coefficient and total internal reflection.
type Dielectric struct {
	IndexOfRefraction float32
}

func (m *Dielectric) Scatter(hit *scene.RayHit, in *scene.Ray, rng *rand.Rand) (scene.Ray, types.Vec3, float32) {
	eta := 1.0 / m.IndexOfRefraction
	if !hit.FrontFace {
		eta = m.IndexOfRefraction
	}

	unit := in.Dir.Normalize()
	cosTheta := unit.Neg().Dot(hit.Normal)
	if cosTheta > 1.0 {
		cosTheta = 1.0
	}
	sinTheta := math32.Sqrt(1.0 - cosTheta*cosTheta)

	var dir types.Vec3
	if eta*sinTheta > 1.0 || Fresnel(unit, hit.Normal, m.IndexOfRefraction) > rng.Float32() {
		dir = Reflect(unit, hit.Normal)
	} else {
		dir = Refract(unit, hit.Normal, eta)
	}

	out := scene.Ray{Origin: hit.Point, Dir: dir}

	// Delta lobe; fold 1/cos into the weight like Metal so the cosine
	// term cancels. Glass itself absorbs nothing.
	cos := math32.Abs(dir.Dot(hit.Normal))
	if cos < minSamplePdf {
		return out, types.Vec3{}, 0
	}

	return out, types.XYZ(1, 1, 1).Mul(1.0 / cos), 1.0
}

func (m *Dielectric) Emission() types.Vec3 {
	return types.Vec3{}
}
