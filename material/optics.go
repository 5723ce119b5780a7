// Package material provides the surface and phase-function implementations
// consumed by the tracing core through the scene.Material capability.
package material

import (
	"github.com/chewxy/math32"

	"github.com/nlatsos/helios/types"
)

// Reflect a vector about a normal.
func Reflect(v, n types.Vec3) types.Vec3 {
	return v.Sub(n.Mul(2.0 * v.Dot(n)))
}

// Refract a unit vector through a surface with the given ratio of
// refraction indices. Follows the perpendicular/parallel decomposition.
func Refract(v, n types.Vec3, eta float32) types.Vec3 {
	cosTheta := v.Neg().Dot(n)
	if cosTheta > 1.0 {
		cosTheta = 1.0
	}
	outPerp := v.Add(n.Mul(cosTheta)).Mul(eta)
	outParallel := n.Mul(-math32.Sqrt(math32.Abs(1.0 - outPerp.Len2())))
	return outPerp.Add(outParallel)
}

// Approximate the fresnel reflection coefficient using Schlick's
// approximation. The first medium is assumed to be air; the expression is
// symmetric so the ordering does not matter.
func Fresnel(v, n types.Vec3, ior float32) float32 {
	r0 := (ior - 1.0) / (ior + 1.0)
	r0 *= r0
	return r0 + (1.0-r0)*math32.Pow(1.0-math32.Abs(v.Dot(n)), 5)
}
