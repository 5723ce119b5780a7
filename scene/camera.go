package scene

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/nlatsos/helios/types"
)

type ProjectionMode uint8

const (
	Perspective ProjectionMode = iota
	Orthographic
)

type ShadingMode uint8

const (
	// Recursive Monte Carlo evaluation of the rendering equation.
	PathTrace ShadingMode = iota

	// Single-bounce local illumination against the scene's debug point
	// light. Not stochastic; handy for checking geometry and normals.
	PhongDebug
)

// The camera maps pixel coordinates and sample indices to world-space
// rays. Immutable during a render.
type Camera struct {
	// Eye location, view direction through the image plane center and the
	// camera up vector.
	Eye     types.Vec3
	ViewDir types.Vec3
	Up      types.Vec3

	Projection ProjectionMode
	Shading    ShadingMode

	// Frame dims in pixels.
	ScreenW uint32
	ScreenH uint32

	// Distance from eye to the image plane.
	FocalLength float32

	// Thin-lens parameters: everything at FocusDist is sharp, LensRadius
	// controls the blur of everything else. A zero radius gives a pinhole.
	FocusDist  float32
	LensRadius float32

	// Anti-aliasing samples per pixel; expected to be a perfect square so
	// sub-pixel samples stratify into a sqrt(n) x sqrt(n) grid.
	AASamples uint32

	// Recursion depth and per-bounce sample fan-out for path tracing.
	PathDepth   uint32
	PathSamples uint32

	// Intersections beyond this parametric distance are ignored.
	MaxTraceDist float32

	// Output gamma correction.
	Gamma float32
}

// Rotation taking camera space to world space, built from the basis
// (right, up, -view).
func (c *Camera) worldBasis() types.Mat3 {
	return types.Mat3FromCols(
		c.ViewDir.Cross(c.Up).Normalize(),
		c.Up,
		c.ViewDir.Neg(),
	)
}

// Generate the multi-jittered anti-aliasing ray set for the given pixel.
// Each call allocates a fresh slice of AASamples rays; the rng drives
// sub-pixel jitter and lens sampling.
func (c *Camera) GenerateRays(screenX, screenY uint32, rng *rand.Rand) []Ray {
	pixelSize := 1.0 / float32(c.ScreenH)
	rootN := uint32(math32.Sqrt(float32(c.AASamples)))
	if rootN == 0 {
		rootN = 1
	}

	basis := c.worldBasis()
	rays := make([]Ray, 0, c.AASamples)

	for i := uint32(0); i < c.AASamples; i++ {
		// Stratify the pixel into a rootN x rootN grid and jitter within
		// the sub-cell.
		subX := float32(i/rootN) + rng.Float32()
		subY := float32(i%rootN) + rng.Float32()
		offset := types.XY(
			(subX/float32(rootN)-0.5)*pixelSize,
			(subY/float32(rootN)-0.5)*pixelSize,
		)

		// Jittered pixel center on the camera-space image plane. Screen y
		// grows downwards, camera y upwards.
		pixelCenter := types.XYZ(
			pixelSize*(float32(screenX)-0.5*float32(c.ScreenW)+0.5)+offset[0],
			pixelSize*(0.5*float32(c.ScreenH)-float32(screenY)+0.5)+offset[1],
			-c.FocalLength,
		)

		var ray Ray
		switch c.Projection {
		case Orthographic:
			ray = Ray{
				Origin: c.Eye.Add(basis.Mul3x1(types.XYZ(pixelCenter[0], pixelCenter[1], 0))),
				Dir:    basis.Mul3x1(types.XYZ(0, 0, -1)),
			}
		default:
			// Aim from a random point on the lens disk through the point
			// where the pixel direction pierces the focus plane.
			focusPoint := pixelCenter.Normalize().Mul(c.FocusDist)
			lensPoint := RandInUnitDisk(rng).Mul(c.LensRadius)
			ray = Ray{
				Origin: c.Eye.Add(basis.Mul3x1(lensPoint)),
				Dir:    basis.Mul3x1(focusPoint.Sub(lensPoint).Normalize()),
			}
		}

		rays = append(rays, ray)
	}

	return rays
}

// Directions the camera can be moved in.
type CameraDirection uint8

const (
	Forward CameraDirection = iota
	Backward
	Left
	Right
)

// Move the camera eye along one of its basis directions.
func (c *Camera) Move(dir CameraDirection, amount float32) {
	var delta types.Vec3
	switch dir {
	case Forward:
		delta = c.ViewDir.Mul(amount)
	case Backward:
		delta = c.ViewDir.Mul(-amount)
	case Left:
		delta = c.ViewDir.Cross(c.Up).Normalize().Mul(-amount)
	case Right:
		delta = c.ViewDir.Cross(c.Up).Normalize().Mul(amount)
	}
	c.Eye = c.Eye.Add(delta)
}

// Rotate the view direction by the given pitch/yaw angles (radians).
func (c *Camera) Rotate(pitch, yaw float32) {
	pitchAxis := c.ViewDir.Cross(c.Up).Normalize()
	pitchQuat := types.QuatFromAxisAngle(pitchAxis, pitch)
	yawQuat := types.QuatFromAxisAngle(c.Up, yaw)

	orientQuat := pitchQuat.Mul(yawQuat).Normalize()
	c.ViewDir = orientQuat.Rotate(c.ViewDir).Normalize()
}
