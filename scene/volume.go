package scene

import (
	"math"
	"math/rand"

	"github.com/chewxy/math32"
)

// A participating medium of constant density bounded by a convex
// intersectable. Rays scatter inside the boundary with probability rising
// exponentially with travelled distance; hits report a zero normal since a
// medium has no oriented surface.
type ConvexVolume struct {
	Boundary      Intersectable
	PhaseFunction Material
	Density       float32
}

func (v *ConvexVolume) Intersect(ray *Ray, tMin, tMax float32) (RayHit, bool) {
	// Entry and exit points through the convex boundary. The first probe
	// starts at -inf so rays born inside the medium still find the entry.
	entry, ok := v.Boundary.Intersect(ray, -math.MaxFloat32, math.MaxFloat32)
	if !ok {
		return RayHit{}, false
	}
	exit, ok := v.Boundary.Intersect(ray, entry.Distance+1e-4, math.MaxFloat32)
	if !ok {
		return RayHit{}, false
	}

	tEnter := entry.Distance
	tLeave := exit.Distance
	if tEnter < tMin {
		tEnter = tMin
	}
	if tLeave > tMax {
		tLeave = tMax
	}
	if tEnter >= tLeave {
		return RayHit{}, false
	}
	if tEnter < 0 {
		tEnter = 0
	}

	// Sample a scatter distance along the ray. The global locked source is
	// fine here; media are rare enough that contention does not register.
	rayLen := ray.Dir.Len()
	inside := (tLeave - tEnter) * rayLen
	scatterDist := -math32.Log(rand.Float32()) / v.Density
	if scatterDist > inside {
		return RayHit{}, false
	}

	t := tEnter + scatterDist/rayLen
	return RayHit{
		Distance: t,
		Point:    ray.At(t),
		Material: v.PhaseFunction,
		// Zero normal: the integrator treats it as a direction-free
		// scattering event.
	}, true
}

func (v *ConvexVolume) BBox() (AABB, bool) {
	return v.Boundary.BBox()
}
