package scene

import (
	"github.com/nlatsos/helios/types"
)

// An axis-aligned bounding box. For boxes constructed from real geometry
// Min[i] <= Max[i] holds for all axes.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Get the bounding box surrounding two given bounding boxes.
func Surrounding(a, b AABB) AABB {
	return AABB{
		Min: types.MinVec3(a.Min, b.Min),
		Max: types.MaxVec3(a.Max, b.Max),
	}
}

// Check whether the box contains the given point.
func (b AABB) Contains(p types.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Min[axis] || p[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// Slab test for ray/box overlap inside the [tMin, tMax] parametric range.
// The result is only ever used as a traversal gate; box hits carry no
// surface information.
func (b AABB) IntersectedBy(ray *Ray, tMin, tMax float32) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Dir[axis]
		t0 := (b.Min[axis] - ray.Origin[axis]) * invD
		t1 := (b.Max[axis] - ray.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}
	return true
}
