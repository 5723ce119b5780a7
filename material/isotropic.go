package material

import (
	"math/rand"

	"github.com/nlatsos/helios/scene"
	"github.com/nlatsos/helios/types"
)

// An isotropic phase function for participating media: scattered rays pick
// a uniformly random direction regardless of the incoming one. Pairs with
// scene.ConvexVolume, whose hits carry a zero normal.
type Isotropic struct {
	Albedo   types.Vec3
	Emissive types.Vec3
}

func (m *Isotropic) Scatter(hit *scene.RayHit, in *scene.Ray, rng *rand.Rand) (scene.Ray, types.Vec3, float32) {
	out := scene.Ray{
		Origin: hit.Point,
		Dir:    scene.RandInUnitSphere(rng).Normalize(),
	}
	return out, m.Albedo, 1.0
}

func (m *Isotropic) Emission() types.Vec3 {
	return m.Emissive
}
