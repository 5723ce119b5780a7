package scene

import (
	"testing"

	"github.com/nlatsos/helios/types"
)

func TestConvexVolumeScatters(t *testing.T) {
	boundary := &Sphere{Center: types.XYZ(0, 0, 0), Radius: 1}
	vol := &ConvexVolume{
		Boundary:      boundary,
		PhaseFunction: &nullMaterial{},
		// Dense enough that a ray crossing the full diameter practically
		// always scatters.
		Density: 1000,
	}

	ray := Ray{Origin: types.XYZ(0, 0, 5), Dir: types.XYZ(0, 0, -1)}
	hit, ok := vol.Intersect(&ray, 0.001, 1000)
	if !ok {
		t.Fatalf("expected dense medium to scatter the ray")
	}
	if dist := hit.Point.Sub(boundary.Center).Len(); dist > boundary.Radius {
		t.Fatalf("expected scatter point inside the boundary; got %v", hit.Point)
	}
	if hit.Normal != (types.Vec3{}) {
		t.Fatalf("expected medium hit to carry a zero normal; got %v", hit.Normal)
	}
	if hit.Material != Material(vol.PhaseFunction) {
		t.Fatalf("expected hit material to be the phase function")
	}
}

func TestConvexVolumeMiss(t *testing.T) {
	vol := &ConvexVolume{
		Boundary:      &Sphere{Center: types.XYZ(0, 0, 0), Radius: 1},
		PhaseFunction: &nullMaterial{},
		Density:       1000,
	}

	ray := Ray{Origin: types.XYZ(5, 0, 5), Dir: types.XYZ(0, 0, -1)}
	if _, ok := vol.Intersect(&ray, 0.001, 1000); ok {
		t.Fatalf("expected ray outside the boundary to miss the medium")
	}
}

func TestConvexVolumeBBox(t *testing.T) {
	vol := &ConvexVolume{
		Boundary:      &Sphere{Center: types.XYZ(0, 0, 0), Radius: 2},
		PhaseFunction: &nullMaterial{},
		Density:       1,
	}

	box, ok := vol.BBox()
	if !ok {
		t.Fatalf("expected medium to inherit the boundary bounds")
	}
	want := AABB{Min: types.XYZ(-2, -2, -2), Max: types.XYZ(2, 2, 2)}
	if box != want {
		t.Fatalf("expected bounding box %v; got %v", want, box)
	}
}
