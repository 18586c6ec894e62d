// Package camera provides the orbit camera of the shell viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/fairingkit/pkg/fairing"
	"github.com/Faultbox/fairingkit/pkg/math"
)

// OrbitCamera orbits around a center point on a sphere.
type OrbitCamera struct {
	Center math.Vec3

	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around +Y

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	FovY      float32 // radians
	Near, Far float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a camera sized for shells a few meters across.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        6,
		Pitch:           0.35,
		MinDistance:     0.5,
		MaxDistance:     200,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		FovY:            math.DegToRad(45),
		Near:            0.05,
		Far:             500,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp := gomath.Cos(float64(c.Pitch))
	offset := math.Vec3{
		X: c.Distance * float32(cp*gomath.Sin(float64(c.Yaw))),
		Y: c.Distance * float32(gomath.Sin(float64(c.Pitch))),
		Z: c.Distance * float32(cp*gomath.Cos(float64(c.Yaw))),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// ProjectionMatrix returns the perspective projection for the aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleDrag rotates the camera by a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(dx, dy float32) {
	c.Yaw -= dx * c.DragSensitivity
	c.Pitch = math.Clamp(c.Pitch+dy*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom scales the distance by a scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitBounds centers the camera on b and backs off until the whole box fits
// the vertical field of view.
func (c *OrbitCamera) FitBounds(b fairing.Bounds) {
	c.Center = b.Center()

	size := b.Size()
	radius := size.Length() / 2
	if radius <= 0 {
		radius = 1
	}
	d := radius / math.Sin(c.FovY/2)
	c.Distance = math.Clamp(d*1.1, c.MinDistance, c.MaxDistance)
	c.Pitch = 0.35
	c.Yaw = 0
}
