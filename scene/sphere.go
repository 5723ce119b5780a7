package scene

import (
	"github.com/chewxy/math32"

	"github.com/nlatsos/helios/types"
)

// A sphere primitive.
type Sphere struct {
	Center   types.Vec3
	Radius   float32
	Material Material
}

// Solve |o + t*d - c|^2 = r^2, preferring the smaller root. Rays that
// originate inside the sphere fall back to the larger root so the exit
// surface is still found.
func (s *Sphere) Intersect(ray *Ray, tMin, tMax float32) (RayHit, bool) {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Dir.Len2()
	b := 2.0 * oc.Dot(ray.Dir)
	c := oc.Len2() - s.Radius*s.Radius

	disc := b*b - 4.0*a*c
	if disc < 0 {
		return RayHit{}, false
	}

	sqrtDisc := math32.Sqrt(disc)
	t := (-b - sqrtDisc) / (2.0 * a)
	if t < tMin {
		t = (-b + sqrtDisc) / (2.0 * a)
	}
	if t < tMin || t > tMax {
		return RayHit{}, false
	}

	normal := ray.At(t).Sub(s.Center).Mul(1.0 / s.Radius)
	return NewRayHit(t, normal, s.Material, ray), true
}

// Get the bounding box for the sphere.
func (s *Sphere) BBox() (AABB, bool) {
	r := types.XYZ(s.Radius, s.Radius, s.Radius)
	return AABB{
		Min: s.Center.Sub(r),
		Max: s.Center.Add(r),
	}, true
}
