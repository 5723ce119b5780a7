// Package tracer implements the shading integrators and the work
// scheduling used by the renderer.
package tracer

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/nlatsos/helios/scene"
	"github.com/nlatsos/helios/types"
)

// Offset applied to secondary ray origins to dodge self-intersection.
const shadowBias float32 = 0.01

// The integrator evaluates radiance along camera rays for a fixed scene.
// It carries no mutable state, so one instance can be shared by any number
// of workers as long as each supplies its own rng.
type Integrator struct {
	scene *scene.Scene
}

func NewIntegrator(sc *scene.Scene) *Integrator {
	return &Integrator{scene: sc}
}

// Evaluate a camera ray with the shading mode selected on the camera.
func (in *Integrator) Trace(ray *scene.Ray, rng *rand.Rand) types.Vec3 {
	if in.scene.Camera.Shading == scene.PhongDebug {
		return in.shadePhong(ray, rng)
	}
	return in.Shade(ray, 0, rng)
}

// Shade recursively estimates the rendering equation for the given ray.
// Recursion walks depth upwards until the camera's path depth is reached;
// a miss or exhausted depth terminates the path with the background color.
func (in *Integrator) Shade(ray *scene.Ray, depth uint32, rng *rand.Rand) types.Vec3 {
	cam := in.scene.Camera

	// Truncate the remaining infinite recursion.
	if depth >= cam.PathDepth {
		return in.scene.BackgroundColor(ray.Dir)
	}

	hit, ok := in.scene.Intersect(ray, 1e-3, cam.MaxTraceDist)
	if !ok {
		return in.scene.BackgroundColor(ray.Dir)
	}

	var integral types.Vec3
	for i := uint32(0); i < cam.PathSamples; i++ {
		next, weight, pdf := hit.Material.Scatter(&hit, ray, rng)

		// A degenerate or non-finite pdf would blow up the estimate;
		// skip the sample instead of propagating inf/nan into the frame.
		if pdf <= 0 || math32.IsNaN(pdf) || math32.IsInf(pdf, 0) {
			continue
		}

		// Cosine term of the rendering equation. Media report a zero
		// normal and weight all directions equally.
		cosine := float32(1.0)
		if hit.Normal.Len2() > 0 {
			cosine = math32.Abs(next.Dir.Dot(hit.Normal))
			if cosine > 1 {
				cosine = 1
			}
		}

		incoming := in.Shade(&next, depth+1, rng)
		integral = integral.Add(weight.MulVec(incoming).Mul(cosine / pdf))
	}
	integral = integral.Mul(1.0 / float32(cam.PathSamples))

	return hit.Material.Emission().Add(integral)
}

// Single-bounce phong shading against the scene's debug point light with a
// binary shadow test. Used to sanity-check geometry and normals without
// waiting on a converged path trace.
func (in *Integrator) shadePhong(ray *scene.Ray, rng *rand.Rand) types.Vec3 {
	cam := in.scene.Camera

	hit, ok := in.scene.Intersect(ray, 0, cam.MaxTraceDist)
	if !ok {
		return in.scene.BackgroundColor(ray.Dir)
	}

	toLight := in.scene.PointLightPos.Sub(hit.Point)
	lightDist := toLight.Len()
	toLight = toLight.Normalize()
	toCamera := cam.Eye.Sub(hit.Point).Normalize()
	reflected := toLight.Neg().Add(hit.Normal.Mul(2.0 * toLight.Dot(hit.Normal)))

	diffuseWeight := toLight.Dot(hit.Normal)
	if diffuseWeight < 0 {
		diffuseWeight = 0
	}
	specularWeight := toCamera.Dot(reflected)
	if specularWeight < 0 {
		specularWeight = 0
	}
	specularWeight = math32.Pow(specularWeight, 40)

	// Hard shadow probe towards the light.
	shadowRay := scene.Ray{
		Origin: hit.Point.Add(hit.Normal.Mul(shadowBias)),
		Dir:    toLight,
	}
	var shadowWeight float32 = 1.0
	if _, blocked := in.scene.Intersect(&shadowRay, 0, lightDist); blocked {
		shadowWeight = 0.3
	}

	_, albedo, _ := hit.Material.Scatter(&hit, ray, rng)
	color := in.scene.Ambient.
		Add(albedo.Mul(diffuseWeight)).
		Add(types.XYZ(0.4, 0.4, 0.4).Mul(specularWeight))
	return color.Mul(shadowWeight)
}
