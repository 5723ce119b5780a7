package scene

import (
	"math/rand"

	"github.com/nlatsos/helios/types"
)

// The Material interface is the capability contract consumed by the path
// integrator. Implementations live outside this package; the tracing core
// never inspects concrete material kinds.
type Material interface {
	// Scatter picks an outgoing ray for the given hit and returns it
	// together with the BRDF weight for that direction and the pdf the
	// direction was sampled with.
	Scatter(hit *RayHit, in *Ray, rng *rand.Rand) (out Ray, weight types.Vec3, pdf float32)

	// Emission returns the radiance emitted by the surface.
	Emission() types.Vec3
}

// The Intersectable interface is implemented by anything a ray can be
// tested against.
type Intersectable interface {
	// Test for intersection with the given ray inside the (tMin, tMax)
	// parametric range. A false return means no intersection.
	Intersect(ray *Ray, tMin, tMax float32) (RayHit, bool)

	// Get the axis-aligned bounding box for this object. Unbounded
	// primitives (e.g. planes) return false.
	BBox() (AABB, bool)
}
