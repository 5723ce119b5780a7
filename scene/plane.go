package scene

import (
	"github.com/chewxy/math32"

	"github.com/nlatsos/helios/types"
)

// An infinite plane primitive.
type Plane struct {
	Point    types.Vec3
	Normal   types.Vec3
	Material Material
}

// Signed-distance test. The plane normal is flipped to face the ray origin
// side before testing; rays parallel to or moving away from the surface
// yield no hit.
func (p *Plane) Intersect(ray *Ray, tMin, tMax float32) (RayHit, bool) {
	toOrigin := ray.Origin.Sub(p.Point)
	originDist := toOrigin.Dot(p.Normal)

	facing := p.Normal
	if originDist < 0 {
		facing = facing.Neg()
	}

	d := ray.Dir.Dot(facing)
	if d >= 0 {
		return RayHit{}, false
	}

	t := math32.Abs(originDist) / math32.Abs(d)
	if t < tMin || t > tMax {
		return RayHit{}, false
	}

	return NewRayHit(t, facing, p.Material, ray), true
}

// Planes are unbounded and carry no box.
func (p *Plane) BBox() (AABB, bool) {
	return AABB{}, false
}
