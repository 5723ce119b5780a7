package scene

import (
	"github.com/chewxy/math32"

	"github.com/nlatsos/helios/types"
)

// Rays closer than this to parallel with the triangle plane are treated
// as misses.
const triIntersectEpsilon float32 = 1e-4

// Minimum box extent per axis; axis-aligned triangles would otherwise
// produce zero-thickness boxes that the slab test always rejects.
const triBBoxPad float32 = 1e-4

// A triangle primitive with explicit vertices.
type Triangle struct {
	A, B, C  types.Vec3
	Material Material
}

// Möller–Trumbore intersection against the triangle (a, b, c). Returns the
// parametric distance and the barycentric (u, v) pair; the geometric normal
// is one-sided at this level and resolved by the hit record constructor.
func intersectTriangle(a, b, c types.Vec3, ray *Ray, tMin, tMax float32) (t, u, v float32, normal types.Vec3, ok bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)

	q := ray.Dir.Cross(e2)
	det := e1.Dot(q)
	if math32.Abs(det) < triIntersectEpsilon {
		return 0, 0, 0, types.Vec3{}, false
	}

	f := 1.0 / det
	s := ray.Origin.Sub(a)
	u = f * s.Dot(q)
	if u < 0 {
		return 0, 0, 0, types.Vec3{}, false
	}

	r := s.Cross(e1)
	v = f * ray.Dir.Dot(r)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, types.Vec3{}, false
	}

	t = f * e2.Dot(r)
	if t < tMin || t > tMax {
		return 0, 0, 0, types.Vec3{}, false
	}

	return t, u, v, e1.Cross(e2).Normalize(), true
}

// Bounding box spanning the per-axis extrema of the three vertices.
// Degenerate axes are padded so flat geometry stays visible through a BVH.
func triangleBBox(a, b, c types.Vec3) AABB {
	box := AABB{
		Min: types.MinVec3(a, types.MinVec3(b, c)),
		Max: types.MaxVec3(a, types.MaxVec3(b, c)),
	}
	for axis := 0; axis < 3; axis++ {
		if box.Max[axis]-box.Min[axis] < triBBoxPad {
			box.Min[axis] -= triBBoxPad
			box.Max[axis] += triBBoxPad
		}
	}
	return box
}

func (tr *Triangle) Intersect(ray *Ray, tMin, tMax float32) (RayHit, bool) {
	t, u, v, normal, ok := intersectTriangle(tr.A, tr.B, tr.C, ray, tMin, tMax)
	if !ok {
		return RayHit{}, false
	}

	hit := NewRayHit(t, normal, tr.Material, ray)
	hit.UV = types.XY(u, v)
	hit.HasUV = true
	return hit, true
}

func (tr *Triangle) BBox() (AABB, bool) {
	return triangleBBox(tr.A, tr.B, tr.C), true
}
