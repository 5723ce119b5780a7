package cmd

import (
	"math/rand"

	"github.com/nlatsos/helios/asset"
	"github.com/nlatsos/helios/material"
	"github.com/nlatsos/helios/scene"
	"github.com/nlatsos/helios/types"
)

// Assemble the built-in demo scene: a matte floor plane, a small field of
// spheres with mixed materials, a foggy medium and a two-triangle area
// light overhead. If meshFile is non-empty the wavefront mesh it names is
// added at the origin with a metallic material.
func buildDemoScene(meshFile string, rng *rand.Rand) (*scene.Scene, error) {
	objects := []scene.Intersectable{
		// Floor
		&scene.Plane{
			Point:    types.XYZ(0, 0, 0),
			Normal:   types.XYZ(0, 1, 0),
			Material: &material.Lambertian{Albedo: types.XYZ(0.7, 0.7, 0.7)},
		},
		// Sphere field
		&scene.Sphere{
			Center:   types.XYZ(-2.2, 1, 0),
			Radius:   1,
			Material: &material.Lambertian{Albedo: types.XYZ(0.8, 0.3, 0.3)},
		},
		&scene.Sphere{
			Center:   types.XYZ(0, 1, 0),
			Radius:   1,
			Material: &material.Dielectric{IndexOfRefraction: 1.5},
		},
		&scene.Sphere{
			Center:   types.XYZ(2.2, 1, 0),
			Radius:   1,
			Material: &material.Metal{Albedo: types.XYZ(0.9, 0.9, 0.6), Roughness: 0.1},
		},
		&scene.Sphere{
			Center:   types.XYZ(-1.1, 0.4, 1.8),
			Radius:   0.4,
			Material: &material.Lambertian{Albedo: types.XYZ(0.3, 0.4, 0.8)},
		},
		&scene.Sphere{
			Center:   types.XYZ(1.1, 0.4, 1.8),
			Radius:   0.4,
			Material: &material.Metal{Albedo: types.XYZ(0.7, 0.7, 0.8)},
		},
		// Thin fog pocket behind the sphere field
		&scene.ConvexVolume{
			Boundary: &scene.Sphere{
				Center: types.XYZ(0, 1.2, -3),
				Radius: 1.8,
			},
			PhaseFunction: &material.Isotropic{Albedo: types.XYZ(0.9, 0.9, 0.9)},
			Density:       0.35,
		},
	}

	objects = append(objects, areaLight(
		types.XYZ(-1.5, 4, -1.5),
		types.XYZ(1.5, 4, 1.5),
		types.XYZ(6, 6, 6),
	)...)

	if meshFile != "" {
		data, err := asset.ReadWavefrontFile(meshFile)
		if err != nil {
			return nil, err
		}
		mesh, err := scene.NewMesh(data, &material.Metal{Albedo: types.XYZ(0.8, 0.6, 0.3), Roughness: 0.3}, rng)
		if err != nil {
			return nil, err
		}
		objects = append(objects, mesh)
	}

	return &scene.Scene{
		Objects:       objects,
		PointLightPos: types.XYZ(0, 4, 0),
		Ambient:       types.XYZ(0.1, 0.1, 0.1),
	}, nil
}

// Build a downward-facing rectangular emitter spanning min..max at the
// height of min[1], split into two triangles.
func areaLight(min, max, radiance types.Vec3) []scene.Intersectable {
	emitter := &material.Lambertian{Emissive: radiance}
	y := min[1]
	return []scene.Intersectable{
		&scene.Triangle{
			A:        types.XYZ(min[0], y, min[2]),
			B:        types.XYZ(max[0], y, max[2]),
			C:        types.XYZ(max[0], y, min[2]),
			Material: emitter,
		},
		&scene.Triangle{
			A:        types.XYZ(min[0], y, min[2]),
			B:        types.XYZ(min[0], y, max[2]),
			C:        types.XYZ(max[0], y, max[2]),
			Material: emitter,
		},
	}
}
