package scene

import (
	"math/rand"

	"github.com/nlatsos/helios/types"
)

// Pick a random vector inside the unit sphere via rejection sampling.
func RandInUnitSphere(rng *rand.Rand) types.Vec3 {
	for {
		v := types.XYZ(
			2.0*rng.Float32()-1.0,
			2.0*rng.Float32()-1.0,
			2.0*rng.Float32()-1.0,
		)
		if v.Len2() <= 1.0 {
			return v
		}
	}
}

// Pick a random vector inside the unit disk on the xy plane via rejection
// sampling.
func RandInUnitDisk(rng *rand.Rand) types.Vec3 {
	for {
		v := types.XYZ(
			2.0*rng.Float32()-1.0,
			2.0*rng.Float32()-1.0,
			0,
		)
		if v.Len2() <= 1.0 {
			return v
		}
	}
}
