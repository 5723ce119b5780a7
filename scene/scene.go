package scene

import (
	"github.com/nlatsos/helios/types"
)

// A scene ties the camera to the list of top-level intersectable objects.
// Scenes are assembled before rendering starts and never mutated while a
// render is in flight, which is what makes lock-free parallel tracing safe.
type Scene struct {
	Camera  *Camera
	Objects []Intersectable

	// Radiance for rays that escape the scene. A nil function means the
	// zero-radiance void.
	Background func(dir types.Vec3) types.Vec3

	// Debug-only point light and ambient term used by phong shading.
	PointLightPos types.Vec3
	Ambient       types.Vec3
}

// Find the closest intersection across all top-level objects. Objects are
// scanned linearly; any per-mesh BVH acceleration happens inside the
// object's own Intersect.
func (s *Scene) Intersect(ray *Ray, tMin, tMax float32) (RayHit, bool) {
	var best RayHit
	var found bool

	for _, obj := range s.Objects {
		if hit, ok := obj.Intersect(ray, tMin, tMax); ok {
			if !found || hit.Distance < best.Distance {
				best = hit
				found = true
			}
		}
	}

	return best, found
}

// Radiance contributed by a ray that missed everything.
func (s *Scene) BackgroundColor(dir types.Vec3) types.Vec3 {
	if s.Background == nil {
		return types.Vec3{}
	}
	return s.Background(dir)
}
