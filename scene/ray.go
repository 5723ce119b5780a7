package scene

import (
	"github.com/nlatsos/helios/types"
)

// A ray in world space. Dir is not required to be normalized by all call
// sites but must be non-degenerate.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
}

// Get the point at parametric distance t along the ray.
func (r *Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Intersection details for a ray/primitive intersection test.
type RayHit struct {
	// Parametric distance from the ray origin to the hit point.
	Distance float32

	// World-space hit location.
	Point types.Vec3

	// Surface normal at the hit point, re-oriented to face the incoming ray.
	Normal types.Vec3

	// The material capability active at the hit point.
	Material Material

	// True if the ray hit the side of the surface the geometric normal
	// points towards.
	FrontFace bool

	// Optional surface parameterization; only set when the primitive
	// supplies it.
	UV    types.Vec2
	HasUV bool

	// Optional tangent frame for normal mapping.
	Tangent     types.Vec3
	Bitangent   types.Vec3
	HasTangents bool
}

// Assemble a hit record for an intersection at the given distance. The
// supplied normal is the one-sided geometric normal; it gets flipped so the
// stored normal always faces the ray origin side.
func NewRayHit(distance float32, normal types.Vec3, mat Material, ray *Ray) RayHit {
	frontFace := normal.Dot(ray.Dir) < 0
	if !frontFace {
		normal = normal.Neg()
	}

	return RayHit{
		Distance:  distance,
		Point:     ray.At(distance),
		Normal:    normal,
		Material:  mat,
		FrontFace: frontFace,
	}
}
